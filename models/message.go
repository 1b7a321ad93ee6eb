package models

import "time"

// Message 站内消息模型
//
// read 只会从 false 变成 true，不会回退。
// timestamp 在持久化时写入，之后不再修改。
type Message struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	SenderID    uint      `json:"sender_id" gorm:"index;not null"`
	RecipientID uint      `json:"recipient_id" gorm:"index;not null"`
	ItemID      *uint     `json:"item_id" gorm:"index"` // 可选，关联物品
	Subject     string    `json:"subject" gorm:"size:200;not null"`
	Content     string    `json:"content" gorm:"size:1000;not null"`
	Timestamp   time.Time `json:"timestamp" gorm:"index;not null"`
	Read        bool      `json:"read" gorm:"default:false"`

	Sender    User  `gorm:"foreignKey:SenderID" json:"sender"`
	Recipient User  `gorm:"foreignKey:RecipientID" json:"recipient"`
	Item      *Item `gorm:"foreignKey:ItemID" json:"item,omitempty"`
}
