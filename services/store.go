package services

import (
	"context"

	"agora-market/models"

	"gorm.io/gorm"
)

// MessageStore 消息持久化接口
//
// MarkRead 只把 read 从 false 改成 true，单条 UPDATE 语句，
// 两个人同时打开会话也不会丢更新。
type MessageStore interface {
	// Create 持久化消息，写入时间戳由调用方设置
	Create(ctx context.Context, msg *models.Message) error
	// Conversation 查询两个用户之间的消息（双向），按时间倒序，最多 limit 条
	Conversation(ctx context.Context, userA, userB uint, limit int) ([]models.Message, error)
	// MarkRead 批量把 viewer 收到的指定消息标记为已读，返回更新条数
	MarkRead(ctx context.Context, viewerID uint, ids []uint) (int64, error)
}

type gormMessageStore struct {
	db *gorm.DB
}

// NewGormMessageStore 基于 GORM 的消息存储
func NewGormMessageStore(db *gorm.DB) MessageStore {
	return &gormMessageStore{db: db}
}

func (s *gormMessageStore) Create(ctx context.Context, msg *models.Message) error {
	return s.db.WithContext(ctx).Create(msg).Error
}

func (s *gormMessageStore) Conversation(ctx context.Context, userA, userB uint, limit int) ([]models.Message, error) {
	var msgs []models.Message
	err := s.db.WithContext(ctx).
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			userA, userB, userB, userA).
		Order("timestamp DESC, id DESC").
		Limit(limit).
		Find(&msgs).Error
	return msgs, err
}

func (s *gormMessageStore) MarkRead(ctx context.Context, viewerID uint, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := s.db.WithContext(ctx).Model(&models.Message{}).
		Where("recipient_id = ? AND `read` = ? AND id IN ?", viewerID, false, ids).
		Update("read", true)
	return res.RowsAffected, res.Error
}
