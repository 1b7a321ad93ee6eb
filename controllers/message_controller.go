package controllers

import (
	"net/http"
	"strconv"
	"time"

	"agora-market/config"
	"agora-market/models"
	"agora-market/services"
	"agora-market/utils"

	"github.com/gin-gonic/gin"
)

// 收件箱（按时间倒序）
func Inbox(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Login required"})
		return
	}

	page, perPage := pagination(c, 20)
	var messages []models.Message
	if err := config.DB.Preload("Sender").Preload("Item").
		Where("recipient_id = ?", user.ID).
		Order("timestamp DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&messages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
		return
	}
	utils.RespondSuccess(c, messages, gin.H{"page": page, "per_page": perPage})
}

// 发件箱
func Sent(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Login required"})
		return
	}

	page, perPage := pagination(c, 20)
	var messages []models.Message
	if err := config.DB.Preload("Recipient").Preload("Item").
		Where("sender_id = ?", user.ID).
		Order("timestamp DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&messages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
		return
	}
	utils.RespondSuccess(c, messages, gin.H{"page": page, "per_page": perPage})
}

// 写站内信
func ComposeMessage(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Login required"})
		return
	}

	var input struct {
		RecipientID uint   `json:"recipient_id" binding:"required"`
		Subject     string `json:"subject" binding:"required,min=3,max=200"`
		Content     string `json:"content" binding:"required,min=10,max=1000"`
		ItemID      *uint  `json:"item_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var recipient models.User
	if err := config.DB.First(&recipient, input.RecipientID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipient not found"})
		return
	}
	if input.ItemID != nil {
		var item models.Item
		if err := config.DB.First(&item, *input.ItemID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
			return
		}
	}

	message := models.Message{
		SenderID:    user.ID,
		RecipientID: input.RecipientID,
		ItemID:      input.ItemID,
		Subject:     input.Subject,
		Content:     input.Content,
		Timestamp:   time.Now().UTC(),
	}
	if err := config.DB.Create(&message).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}
	utils.RespondSuccess(c, message, nil)
}

// 查看单条消息，收件人查看时顺带标记已读
func ViewMessage(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Login required"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message id"})
		return
	}

	var message models.Message
	if err := config.DB.Preload("Sender").Preload("Recipient").Preload("Item").
		First(&message, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
		return
	}

	// 只有收发双方能看
	if message.SenderID != user.ID && message.RecipientID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized access"})
		return
	}

	if message.RecipientID == user.ID && !message.Read {
		if err := config.DB.Model(&message).Update("read", true).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark message as read"})
			return
		}
		message.Read = true
	}
	utils.RespondSuccess(c, message, nil)
}

// 删除消息（硬删除，收发双方都可以删）
func DeleteMessage(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Login required"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message id"})
		return
	}

	var message models.Message
	if err := config.DB.First(&message, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
		return
	}
	if message.SenderID != user.ID && message.RecipientID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized access"})
		return
	}

	if err := config.DB.Delete(&message).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete message"})
		return
	}
	utils.RespondSuccess(c, gin.H{"deleted": message.ID}, nil)
}

// 聊天历史：双向取最近 50 条，正序返回。
// 作为收件人查看时未读的那部分顺带批量置为已读。
func ChatHistory(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Login required"})
		return
	}

	otherID, err := strconv.Atoi(c.Param("user_id"))
	if err != nil || otherID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	var other models.User
	if err := config.DB.First(&other, otherID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	store := services.NewGormMessageStore(config.DB)
	messages, err := services.ConversationHistory(c.Request.Context(), store, user.ID, other.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch conversation"})
		return
	}

	room := services.RoomKey(user.ID, other.ID)
	if itemID, err := strconv.Atoi(c.Query("item_id")); err == nil && itemID > 0 {
		room = services.RoomKeyForItem(user.ID, other.ID, uint(itemID))
	}

	utils.RespondSuccess(c, gin.H{
		"other_user": gin.H{"id": other.ID, "username": other.Username, "avatar": other.Avatar},
		"room":       room,
		"messages":   messages,
	}, nil)
}
