package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/d60-Lab/bloghub/internal/model"
)

// AutoMigrate 初始化/升级表结构（幂等）
func AutoMigrate(db *gorm.DB) error {
	// 按外键依赖顺序
	models := []any{&model.User{}, &model.Blog{}, &model.BlogTag{}, &model.Comment{}, &model.Follow{}}
	for _, m := range models {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", m, err)
		}
	}
	return nil
}
