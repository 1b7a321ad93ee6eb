package models

import "agora-market/config"

// Migrate 自动迁移
func Migrate() error {
	return config.DB.AutoMigrate(
		&User{},
		&Item{},
		&Message{},
	)
}
