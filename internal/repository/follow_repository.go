package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/bloghub/internal/model"
)

type FollowRepository interface {
	// Create 返回是否新建；已存在时不报错（幂等）
	Create(ctx context.Context, follower, followee string) (bool, error)
	Delete(ctx context.Context, follower, followee string) error
	Exists(ctx context.Context, follower, followee string) (bool, error)
	// ListFollowing follower 关注的人，按 username 升序
	ListFollowing(ctx context.Context, follower string) ([]model.UserSummary, error)
	// ListFollowers 关注 followee 的人，按 username 升序
	ListFollowers(ctx context.Context, followee string) ([]model.UserSummary, error)
}

type followRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepository { return &followRepository{db: db} }

func (r *followRepository) Create(ctx context.Context, follower, followee string) (bool, error) {
	f := &model.Follow{Follower: follower, Followee: followee}
	// 幂等：重复关注不报错，RowsAffected 为 0 表示已存在
	res := r.db.WithContext(ctx).Omit(clause.Associations).Clauses(clause.OnConflict{DoNothing: true}).Create(f)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *followRepository) Delete(ctx context.Context, follower, followee string) error {
	return r.db.WithContext(ctx).
		Where("follower = ? AND followee = ?", follower, followee).
		Delete(&model.Follow{}).Error
}

func (r *followRepository) Exists(ctx context.Context, follower, followee string) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).
		Model(&model.Follow{}).
		Where("follower = ? AND followee = ?", follower, followee).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *followRepository) ListFollowing(ctx context.Context, follower string) ([]model.UserSummary, error) {
	return r.listUsers(ctx, "follows.followee", "follows.follower = ?", follower)
}

func (r *followRepository) ListFollowers(ctx context.Context, followee string) ([]model.UserSummary, error) {
	return r.listUsers(ctx, "follows.follower", "follows.followee = ?", followee)
}

func (r *followRepository) listUsers(ctx context.Context, joinCol, where, arg string) ([]model.UserSummary, error) {
	res := make([]model.UserSummary, 0)
	err := r.db.WithContext(ctx).
		Table("follows").
		Select("users.username", "users.first_name", "users.last_name").
		Joins("JOIN users ON users.username = " + joinCol).
		Where(where, arg).
		Order("users.username ASC").
		Scan(&res).Error
	return res, err
}
