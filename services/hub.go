package services

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// 客户端上行帧
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// 服务端下行帧
type serverFrame struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

type presencePayload struct {
	UserID uint `json:"user_id"`
}

type roomUserPayload struct {
	Room string `json:"room"`
	User string `json:"user"`
}

type typingPayload struct {
	User   string `json:"user"`
	UserID uint   `json:"user_id"`
}

type eventHandler func(c *Client, data json.RawMessage)

// Hub 实时消息中枢
//
// 每个连接一个读协程，所有共享表（clients、Presence、Rooms）
// 的读写都在锁内完成，处理函数之间互不影响：
// 一个连接的出错只影响它自己。
type Hub struct {
	log      *zap.Logger
	store    MessageStore
	presence *Presence
	rooms    *Rooms

	mu      sync.RWMutex
	clients map[string]*Client

	handlers map[string]eventHandler
}

// NewHub 创建 hub，事件表在这里注册
func NewHub(store MessageStore, log *zap.Logger) *Hub {
	h := &Hub{
		log:      log,
		store:    store,
		presence: NewPresence(),
		rooms:    NewRooms(),
		clients:  make(map[string]*Client),
	}
	h.handlers = map[string]eventHandler{
		"join_chat":    h.handleJoinChat,
		"leave_chat":   h.handleLeaveChat,
		"send_message": h.handleSendMessage,
		"typing":       h.handleTyping,
		"stop_typing":  h.handleStopTyping,
	}
	return h
}

// Presence 在线注册表（只读访问）
func (h *Hub) Presence() *Presence {
	return h.presence
}

// Rooms 房间成员表（只读访问）
func (h *Hub) Rooms() *Rooms {
	return h.rooms
}

// Register 连接建立：登记客户端，已认证的连接进在线表并广播上线
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c.ID] = c
	h.mu.Unlock()

	if !c.Authenticated() {
		h.log.Debug("unauthenticated connection", zap.String("conn_id", c.ID))
		return
	}

	if h.presence.Register(c.ID, c.UserID) {
		h.BroadcastAll("user_connected", presencePayload{UserID: c.UserID}, c.ID)
		h.log.Info("client connected",
			zap.String("conn_id", c.ID),
			zap.Uint("user_id", c.UserID),
			zap.String("username", c.Username))
	}
}

// Unregister 连接断开：退出所有房间、注销在线表、广播下线
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	_, known := h.clients[c.ID]
	delete(h.clients, c.ID)
	h.mu.Unlock()
	if !known {
		return
	}

	h.rooms.LeaveAll(c.ID)
	if userID, ok := h.presence.Unregister(c.ID); ok {
		h.BroadcastAll("user_disconnected", presencePayload{UserID: userID}, c.ID)
		h.log.Info("client disconnected",
			zap.String("conn_id", c.ID),
			zap.Uint("user_id", userID))
	}
	c.closeSend()
}

// Dispatch 分发一帧：坏帧和未知事件直接丢弃，不影响连接
func (h *Hub) Dispatch(c *Client, raw []byte) {
	var frame Frame
	if err := json.Unmarshal(raw, &frame); err != nil {
		h.log.Debug("malformed frame", zap.String("conn_id", c.ID), zap.Error(err))
		return
	}
	handler, ok := h.handlers[frame.Event]
	if !ok {
		h.log.Debug("unknown event", zap.String("conn_id", c.ID), zap.String("event", frame.Event))
		return
	}
	handler(c, frame.Data)
}

// BroadcastAll 广播给所有连接，exclude 指定的连接除外
func (h *Hub) BroadcastAll(event string, payload interface{}, exclude string) {
	data, err := json.Marshal(serverFrame{Event: event, Data: payload})
	if err != nil {
		h.log.Error("marshal frame", zap.String("event", event), zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, c := range h.clients {
		if id == exclude {
			continue
		}
		h.trySend(c, data)
	}
}

// BroadcastRoom 广播给房间内所有成员，exclude 指定的连接除外。
// 空房间或成员已经掉线都是静默 no-op。
func (h *Hub) BroadcastRoom(room, event string, payload interface{}, exclude string) {
	members := h.rooms.Members(room)
	if len(members) == 0 {
		return
	}

	data, err := json.Marshal(serverFrame{Event: event, Data: payload})
	if err != nil {
		h.log.Error("marshal frame", zap.String("event", event), zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, id := range members {
		if id == exclude {
			continue
		}
		if c, ok := h.clients[id]; ok {
			h.trySend(c, data)
		}
	}
}

// sendTo 发给单个连接
func (h *Hub) sendTo(c *Client, event string, payload interface{}) {
	data, err := json.Marshal(serverFrame{Event: event, Data: payload})
	if err != nil {
		h.log.Error("marshal frame", zap.String("event", event), zap.Error(err))
		return
	}
	h.trySend(c, data)
}

// trySend 慢客户端不阻塞广播，队列满就丢帧
func (h *Hub) trySend(c *Client, data []byte) {
	select {
	case c.Send <- data:
	default:
		h.log.Warn("send queue full, dropping frame", zap.String("conn_id", c.ID))
	}
}

// 进入房间：发 joined_chat 给房间所有人（包括自己）
func (h *Hub) handleJoinChat(c *Client, data json.RawMessage) {
	if _, ok := h.presence.Lookup(c.ID); !ok {
		return
	}
	var req struct {
		Room string `json:"room"`
	}
	if err := json.Unmarshal(data, &req); err != nil || req.Room == "" {
		return
	}

	h.rooms.Join(c.ID, req.Room)
	h.BroadcastRoom(req.Room, "joined_chat", roomUserPayload{Room: req.Room, User: c.Username}, "")
	h.log.Debug("joined room", zap.String("conn_id", c.ID), zap.String("room", req.Room))
}

// 离开房间：先移出再广播，所以 left_chat 不会发给离开者
func (h *Hub) handleLeaveChat(c *Client, data json.RawMessage) {
	if _, ok := h.presence.Lookup(c.ID); !ok {
		return
	}
	var req struct {
		Room string `json:"room"`
	}
	if err := json.Unmarshal(data, &req); err != nil || req.Room == "" {
		return
	}

	h.rooms.Leave(c.ID, req.Room)
	h.BroadcastRoom(req.Room, "left_chat", roomUserPayload{Room: req.Room, User: c.Username}, "")
}

// 输入提示：只发给房间里其他人，不落库
func (h *Hub) handleTyping(c *Client, data json.RawMessage) {
	h.signal("user_typing", c, data)
}

func (h *Hub) handleStopTyping(c *Client, data json.RawMessage) {
	h.signal("user_stop_typing", c, data)
}

func (h *Hub) signal(event string, c *Client, data json.RawMessage) {
	if _, ok := h.presence.Lookup(c.ID); !ok {
		return
	}
	var req struct {
		Room string `json:"room"`
	}
	if err := json.Unmarshal(data, &req); err != nil || req.Room == "" {
		return
	}
	h.BroadcastRoom(req.Room, event, typingPayload{User: c.Username, UserID: c.UserID}, c.ID)
}
