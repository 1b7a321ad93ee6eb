package services

import (
	"context"
	"encoding/json"
	"time"

	"agora-market/models"

	"go.uber.org/zap"
)

// 实时发送的消息统一用这个主题，和站内信区分开
const chatSubject = "Chat message"

// 聊天历史每次最多取这么多条
const conversationLimit = 50

type sendMessageRequest struct {
	RecipientID uint   `json:"recipient_id"`
	Content     string `json:"content"`
	ItemID      *uint  `json:"item_id"`
	Room        string `json:"room"`
}

type messagePayload struct {
	MessageID     uint   `json:"message_id"`
	SenderID      uint   `json:"sender_id"`
	SenderUser    string `json:"sender_username"`
	SenderAvatar  string `json:"sender_avatar"`
	RecipientID   uint   `json:"recipient_id"`
	Content       string `json:"content"`
	Timestamp     string `json:"timestamp"`
	FullTimestamp string `json:"full_timestamp"`
}

type errorPayload struct {
	Reason string `json:"reason"`
}

// 发送消息：先落库，再广播到房间。
// 落库失败只给发送方回 message_error，不广播。
// 广播不排除发送方，发送方收到自己的回显就算确认。
func (h *Hub) handleSendMessage(c *Client, data json.RawMessage) {
	if _, ok := h.presence.Lookup(c.ID); !ok {
		return
	}

	var req sendMessageRequest
	if err := json.Unmarshal(data, &req); err != nil {
		h.log.Debug("malformed send_message", zap.String("conn_id", c.ID), zap.Error(err))
		return
	}
	if req.RecipientID == 0 || req.Content == "" || req.Room == "" {
		return
	}

	msg := &models.Message{
		SenderID:    c.UserID,
		RecipientID: req.RecipientID,
		ItemID:      req.ItemID,
		Subject:     chatSubject,
		Content:     req.Content,
		Timestamp:   time.Now().UTC(),
	}
	if err := h.store.Create(context.Background(), msg); err != nil {
		h.log.Error("save message",
			zap.Uint("sender_id", c.UserID),
			zap.Uint("recipient_id", req.RecipientID),
			zap.Error(err))
		h.sendTo(c, "message_error", errorPayload{Reason: "failed to save message"})
		return
	}

	// 两种时间格式都从同一个落库时间戳推出来
	payload := messagePayload{
		MessageID:     msg.ID,
		SenderID:      c.UserID,
		SenderUser:    c.Username,
		SenderAvatar:  c.Avatar,
		RecipientID:   req.RecipientID,
		Content:       req.Content,
		Timestamp:     msg.Timestamp.Format("15:04"),
		FullTimestamp: msg.Timestamp.Format("January 2, 2006 at 3:04 PM"),
	}
	h.BroadcastRoom(req.Room, "receive_message", payload, "")

	h.log.Info("message sent",
		zap.Uint("message_id", msg.ID),
		zap.Uint("sender_id", c.UserID),
		zap.String("room", req.Room))
}

// ConversationHistory 取两个用户之间最近的消息，按时间正序返回。
// viewer 作为收件人查看时，返回集里的未读消息顺带批量标记已读
// （读取的副作用，聊天页和历史页都走这里）。
func ConversationHistory(ctx context.Context, store MessageStore, viewerID, otherID uint) ([]models.Message, error) {
	msgs, err := store.Conversation(ctx, viewerID, otherID, conversationLimit)
	if err != nil {
		return nil, err
	}

	var unread []uint
	for _, m := range msgs {
		if m.RecipientID == viewerID && !m.Read {
			unread = append(unread, m.ID)
		}
	}
	if len(unread) > 0 {
		if _, err := store.MarkRead(ctx, viewerID, unread); err != nil {
			return nil, err
		}
		for i := range msgs {
			if msgs[i].RecipientID == viewerID {
				msgs[i].Read = true
			}
		}
	}

	// 查询是倒序的，展示要正序
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}
