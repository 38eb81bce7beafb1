package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/bloghub/internal/model"
)

type CommentRepository interface {
	Create(ctx context.Context, c *model.Comment) error
	// CountByReviewerBetween 统计 reviewer 在 [start, end) 内的评论数（跨所有博文）
	CountByReviewerBetween(ctx context.Context, reviewer string, start, end time.Time) (int64, error)
	Exists(ctx context.Context, blogID, reviewer string) (bool, error)
	// ListByBlog 按 created_at 倒序，附带评论人显示名
	ListByBlog(ctx context.Context, blogID string) ([]model.CommentView, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository { return &commentRepository{db: db} }

func (r *commentRepository) Create(ctx context.Context, c *model.Comment) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(c).Error
}

func (r *commentRepository) CountByReviewerBetween(ctx context.Context, reviewer string, start, end time.Time) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&model.Comment{}).
		Where("reviewer = ? AND created_at >= ? AND created_at < ?", reviewer, start.UTC(), end.UTC()).
		Count(&cnt).Error
	return cnt, err
}

func (r *commentRepository) Exists(ctx context.Context, blogID, reviewer string) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).
		Model(&model.Comment{}).
		Where("blog_id = ? AND reviewer = ?", blogID, reviewer).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *commentRepository) ListByBlog(ctx context.Context, blogID string) ([]model.CommentView, error) {
	type row struct {
		ID          string
		Reviewer    string
		FirstName   string
		LastName    string
		Sentiment   string
		Description string
		CreatedAt   time.Time
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Table("comments").
		Select("comments.id", "comments.reviewer", "users.first_name", "users.last_name",
			"comments.sentiment", "comments.description", "comments.created_at").
		Joins("JOIN users ON users.username = comments.reviewer").
		Where("comments.blog_id = ?", blogID).
		Order("comments.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	res := make([]model.CommentView, len(rows))
	for i, it := range rows {
		res[i] = model.CommentView{
			ID:           it.ID,
			Reviewer:     it.Reviewer,
			ReviewerName: model.User{FirstName: it.FirstName, LastName: it.LastName}.DisplayName(),
			Sentiment:    it.Sentiment,
			Description:  it.Description,
			CreatedAt:    it.CreatedAt,
		}
	}
	return res, nil
}
