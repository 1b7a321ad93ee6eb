package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// User 用户模型
type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string    `json:"username" gorm:"size:80;unique;not null"`
	Email        string    `json:"email" gorm:"size:120;unique;not null"`
	PasswordHash string    `json:"-" gorm:"size:200;not null"`
	Avatar       string    `json:"avatar" gorm:"size:200;default:'default_avatar.png'"`
	CreatedAt    time.Time `json:"created_at"`
}

// SetPassword 加密并保存密码
func (u *User) SetPassword(password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashed)
	return nil
}

// CheckPassword 验证密码
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// UnreadMessageCount 未读消息数
func (u *User) UnreadMessageCount(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&Message{}).
		Where("recipient_id = ? AND `read` = ?", u.ID, false).
		Count(&count).Error
	return count, err
}
