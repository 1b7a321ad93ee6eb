package services

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	sendQueueSize = 256
	writeWait     = 10 * time.Second
	pongWait      = 60 * time.Second
	pingPeriod    = (pongWait * 9) / 10
	maxFrameSize  = 4096
)

// Client 一个 WebSocket 连接
//
// UserID 在连接建立时绑定一次，之后不变。
// 未认证的连接 UserID 为 0，只能挂着，不能进房间也不能发消息。
type Client struct {
	ID       string
	UserID   uint
	Username string
	Avatar   string

	Conn *websocket.Conn
	Send chan []byte

	closeOnce sync.Once
}

// Authenticated 连接是否绑定了用户
func (c *Client) Authenticated() bool {
	return c.UserID != 0
}

// closeSend 关闭发送通道（只关一次）
func (c *Client) closeSend() {
	c.closeOnce.Do(func() {
		close(c.Send)
	})
}

// ReadPump 读循环：收帧、分发给 hub，退出时注销连接
func (c *Client) ReadPump(hub *Hub) {
	defer func() {
		hub.Unregister(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxFrameSize)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				hub.log.Debug("read error", zap.String("conn_id", c.ID), zap.Error(err))
			}
			return
		}
		hub.Dispatch(c, raw)
	}
}

// WritePump 写循环：把 Send 通道里的帧写出去，定时发 ping
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.Send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
