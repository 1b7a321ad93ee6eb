package controllers

import (
	"net/http"
	"strconv"

	"agora-market/config"
	"agora-market/models"
	"agora-market/utils"

	"github.com/gin-gonic/gin"
)

// pagination 解析分页参数
func pagination(c *gin.Context, defaultPerPage int) (page, perPage int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	perPage, _ = strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(defaultPerPage)))
	if perPage < 1 || perPage > 100 {
		perPage = defaultPerPage
	}
	return page, perPage
}

// 商品列表，支持分类/稀有度/名称搜索
func ListItems(c *gin.Context) {
	category := c.DefaultQuery("category", "all")
	rarity := c.DefaultQuery("rarity", "all")
	search := c.Query("search")
	page, perPage := pagination(c, 12)

	query := config.DB.Model(&models.Item{}).Preload("Seller")
	if category != "all" {
		query = query.Where("category = ?", category)
	}
	if rarity != "all" {
		query = query.Where("rarity = ?", rarity)
	}
	if search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count items"})
		return
	}

	var items []models.Item
	if err := query.Order("created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch items"})
		return
	}

	utils.RespondSuccess(c, items, gin.H{"page": page, "per_page": perPage, "total": total})
}

// 商品详情
func GetItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item id"})
		return
	}

	var item models.Item
	if err := config.DB.Preload("Seller").First(&item, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}
	utils.RespondSuccess(c, item, nil)
}

type itemInput struct {
	Name        string `json:"name" binding:"required,min=3,max=100"`
	Description string `json:"description" binding:"required,min=10"`
	Category    string `json:"category" binding:"required"`
	Rarity      string `json:"rarity" binding:"required"`
	Image       string `json:"image"`
}

// 上架商品
func CreateItem(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Login required"})
		return
	}

	var input itemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidCategory(input.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
		return
	}
	if !models.ValidRarity(input.Rarity) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid rarity"})
		return
	}

	item := models.Item{
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		Rarity:      input.Rarity,
		SellerID:    user.ID,
	}
	if input.Image != "" {
		item.Image = input.Image
	}

	if err := config.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create item"})
		return
	}
	utils.RespondSuccess(c, item, nil)
}

// 编辑商品（只能改自己的）
func UpdateItem(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Login required"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item id"})
		return
	}

	var item models.Item
	if err := config.DB.First(&item, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}
	if item.SellerID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only edit your own items"})
		return
	}

	var input itemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidCategory(input.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
		return
	}
	if !models.ValidRarity(input.Rarity) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid rarity"})
		return
	}

	item.Name = input.Name
	item.Description = input.Description
	item.Category = input.Category
	item.Rarity = input.Rarity
	if input.Image != "" {
		item.Image = input.Image
	}

	if err := config.DB.Save(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update item"})
		return
	}
	utils.RespondSuccess(c, item, nil)
}

// 下架商品（只能删自己的）
func DeleteItem(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Login required"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item id"})
		return
	}

	var item models.Item
	if err := config.DB.First(&item, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}
	if item.SellerID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own items"})
		return
	}

	if err := config.DB.Delete(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
		return
	}
	utils.RespondSuccess(c, gin.H{"deleted": item.ID}, nil)
}
