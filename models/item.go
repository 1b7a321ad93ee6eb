package models

import "time"

// 物品分类和稀有度的合法取值
var (
	ItemCategories = []string{"weapon", "armor", "potion", "artifact", "scroll", "jewel", "other"}
	ItemRarities   = []string{"common", "uncommon", "rare", "epic", "legendary", "mythical"}
)

// Item 出售物品模型
type Item struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `json:"name" gorm:"size:100;not null"`
	Description string    `json:"description" gorm:"type:text;not null"`
	Image       string    `json:"image" gorm:"size:200;default:'default_item.png'"`
	Category    string    `json:"category" gorm:"size:50;index;not null"`
	Rarity      string    `json:"rarity" gorm:"size:20;index;not null"`
	SellerID    uint      `json:"seller_id" gorm:"index;not null"`
	CreatedAt   time.Time `json:"created_at"`

	Seller User `gorm:"foreignKey:SellerID" json:"seller"`
}

// ValidCategory 校验分类取值
func ValidCategory(c string) bool {
	for _, v := range ItemCategories {
		if v == c {
			return true
		}
	}
	return false
}

// ValidRarity 校验稀有度取值
func ValidRarity(r string) bool {
	for _, v := range ItemRarities {
		if v == r {
			return true
		}
	}
	return false
}
