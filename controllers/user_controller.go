package controllers

import (
	"net/http"

	"agora-market/config"
	"agora-market/models"
	"agora-market/services"
	"agora-market/utils"

	"github.com/gin-gonic/gin"
)

type UserInfoResponse struct {
	ID          uint   `json:"id"`
	Username    string `json:"username"`
	Avatar      string `json:"avatar"`
	UnreadCount int64  `json:"unread_count"`
}

// currentUser 从上下文取登录用户（中间件放进去的）
func currentUser(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get("user")
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}

// 用户注册
func Register(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required,min=3,max=80"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 用户名和邮箱都不能重复
	var existing models.User
	if err := config.DB.Where("username = ?", input.Username).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username already taken"})
		return
	}
	if err := config.DB.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
		return
	}

	newUser := models.User{
		Username: input.Username,
		Email:    input.Email,
	}
	if err := newUser.SetPassword(input.Password); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	if err := config.DB.Create(&newUser).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	token, err := services.GenerateToken(newUser)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}
	utils.RespondSuccess(c, gin.H{"token": token}, nil)
}

// 用户登录
func Login(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := config.DB.Where("username = ?", input.Username).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}
	if !user.CheckPassword(input.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	token, err := services.GenerateToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}
	utils.RespondSuccess(c, gin.H{"token": token}, nil)
}

// 当前用户信息（带未读消息数）
func GetUserInfo(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	unread, err := user.UnreadMessageCount(config.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count unread messages"})
		return
	}

	utils.RespondSuccess(c, UserInfoResponse{
		ID:          user.ID,
		Username:    user.Username,
		Avatar:      user.Avatar,
		UnreadCount: unread,
	}, nil)
}

// 公开的用户主页：基本信息加在售物品
func GetProfile(c *gin.Context) {
	username := c.Param("username")

	var user models.User
	if err := config.DB.Where("username = ?", username).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	page, perPage := pagination(c, 9)
	var items []models.Item
	if err := config.DB.Where("seller_id = ?", user.ID).
		Order("created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch items"})
		return
	}

	utils.RespondSuccess(c, gin.H{
		"id":         user.ID,
		"username":   user.Username,
		"avatar":     user.Avatar,
		"created_at": user.CreatedAt,
		"items":      items,
	}, gin.H{"page": page, "per_page": perPage})
}
