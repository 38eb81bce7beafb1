package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/bloghub/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, u *model.User) error
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	// GetForUpdate 读取并锁定用户行，用于按用户串行化限流检查
	GetForUpdate(ctx context.Context, username string) (*model.User, error)
	Exists(ctx context.Context, username string) (bool, error)
	// ExistsBy 按唯一列（username / email / phone）判断是否已被占用
	ExistsBy(ctx context.Context, column, value string) (bool, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository { return &userRepository{db: db} }

func (r *userRepository) Create(ctx context.Context, u *model.User) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(u).Error
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *userRepository) GetForUpdate(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	// sqlite 方言会忽略 FOR UPDATE，由 BEGIN IMMEDIATE 的库级写锁兜底
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("username = ?", username).
		First(&u).Error
	if err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *userRepository) Exists(ctx context.Context, username string) (bool, error) {
	return r.ExistsBy(ctx, "username", username)
}

func (r *userRepository) ExistsBy(ctx context.Context, column, value string) (bool, error) {
	switch column {
	case "username", "email", "phone":
	default:
		return false, fmt.Errorf("column %q is not a unique user column", column)
	}
	var cnt int64
	if err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where(clause.Eq{Column: clause.Column{Name: column}, Value: value}).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}
