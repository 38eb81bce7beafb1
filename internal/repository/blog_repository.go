package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/bloghub/internal/model"
)

type BlogRepository interface {
	// Create 写入博文及其标签；需在事务内调用以保证要么全部落地要么都不落地
	Create(ctx context.Context, blog *model.Blog) error
	GetByID(ctx context.Context, id string) (*model.Blog, error)
	// CountByOwnerBetween 统计 owner 在 [start, end) 内发布的博文数
	CountByOwnerBetween(ctx context.Context, owner string, start, end time.Time) (int64, error)
	// SearchByTag 按 created_at 倒序
	SearchByTag(ctx context.Context, tag string) ([]*model.Blog, error)
	ListByOwner(ctx context.Context, owner string) ([]*model.Blog, error)
}

type blogRepository struct {
	db *gorm.DB
}

func NewBlogRepository(db *gorm.DB) BlogRepository { return &blogRepository{db: db} }

func (r *blogRepository) Create(ctx context.Context, blog *model.Blog) error {
	db := r.db.WithContext(ctx)
	if err := db.Omit(clause.Associations).Create(blog).Error; err != nil {
		return err
	}
	if len(blog.Tags) == 0 {
		return nil
	}
	for i := range blog.Tags {
		blog.Tags[i].BlogID = blog.ID
	}
	return db.Create(&blog.Tags).Error
}

func (r *blogRepository) GetByID(ctx context.Context, id string) (*model.Blog, error) {
	var b model.Blog
	err := r.db.WithContext(ctx).
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tag") }).
		Where("id = ?", id).
		First(&b).Error
	if err != nil {
		return nil, translate(err)
	}
	return &b, nil
}

func (r *blogRepository) CountByOwnerBetween(ctx context.Context, owner string, start, end time.Time) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&model.Blog{}).
		Where("owner = ? AND created_at >= ? AND created_at < ?", owner, start.UTC(), end.UTC()).
		Count(&cnt).Error
	return cnt, err
}

func (r *blogRepository) SearchByTag(ctx context.Context, tag string) ([]*model.Blog, error) {
	var res []*model.Blog
	err := r.db.WithContext(ctx).
		Select("blogs.*").
		Joins("JOIN blog_tags ON blog_tags.blog_id = blogs.id").
		Where("blog_tags.tag = ?", tag).
		Order("blogs.created_at DESC").
		Find(&res).Error
	return res, err
}

func (r *blogRepository) ListByOwner(ctx context.Context, owner string) ([]*model.Blog, error) {
	var res []*model.Blog
	err := r.db.WithContext(ctx).
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tag") }).
		Where("owner = ?", owner).
		Order("created_at DESC").
		Find(&res).Error
	return res, err
}
