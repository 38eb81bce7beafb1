package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/d60-Lab/bloghub/internal/model"
	"github.com/d60-Lab/bloghub/internal/repository"
	"github.com/d60-Lab/bloghub/pkg/logger"
)

// MaxCommentsPerDay 每个评论人每个自然日最多发表的评论数（跨所有博文）
const MaxCommentsPerDay = 3

// CommentService 评论引擎
type CommentService interface {
	// AddComment 校验顺序（先失败者生效）：博文存在、情感取值、内容非空、
	// 非作者本人、当日评论数、是否已评论过该博文
	AddComment(ctx context.Context, blogID, reviewer, sentiment, description string) (*model.Comment, error)
	ListComments(ctx context.Context, blogID string) ([]model.CommentView, error)
}

type commentService struct {
	store *repository.Store
	cal   *Calendar
	inv   Invalidator
}

func NewCommentService(store *repository.Store, cal *Calendar, inv Invalidator) CommentService {
	return &commentService{store: store, cal: cal, inv: inv}
}

// NormalizeSentiment 大小写不敏感；非法取值返回 false
func NormalizeSentiment(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case model.SentimentPositive, model.SentimentNegative:
		return s, true
	}
	return "", false
}

func (s *commentService) AddComment(ctx context.Context, blogID, reviewer, sentiment, description string) (*model.Comment, error) {
	blogID = strings.TrimSpace(blogID)
	reviewer = strings.TrimSpace(reviewer)
	description = strings.TrimSpace(description)

	var c *model.Comment
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		blog, err := tx.Blogs().GetByID(ctx, blogID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrNotFound
			}
			return err
		}
		normalized, ok := NormalizeSentiment(sentiment)
		if !ok {
			return invalid("sentiment must be positive or negative")
		}
		if description == "" {
			return invalid("description is required")
		}
		if reviewer == blog.Owner {
			return ErrSelfComment
		}

		// 锁住评论人行：同一评论人的限流检查与写入串行
		if _, err := tx.Users().GetForUpdate(ctx, reviewer); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrUnknownUser
			}
			return err
		}
		comments := tx.Comments()
		start, end := s.cal.Today()
		n, err := comments.CountByReviewerBetween(ctx, reviewer, start, end)
		if err != nil {
			return err
		}
		if n >= MaxCommentsPerDay {
			return fmt.Errorf("%w: at most %d comments per day", ErrDailyLimitExceeded, MaxCommentsPerDay)
		}
		exists, err := comments.Exists(ctx, blog.ID, reviewer)
		if err != nil {
			return err
		}
		if exists {
			return ErrAlreadyCommented
		}

		c = &model.Comment{
			ID:          uuid.New().String(),
			BlogID:      blog.ID,
			Reviewer:    reviewer,
			Sentiment:   normalized,
			Description: description,
			CreatedAt:   s.cal.Now(),
		}
		if err := comments.Create(ctx, c); err != nil {
			// (blog_id, reviewer) 唯一索引兜底
			if _, dup := repository.AsUniqueViolation(err); dup {
				return ErrAlreadyCommented
			}
			return err
		}
		return nil
	})
	if err != nil {
		if isCommentOutcome(err) {
			return nil, err
		}
		return nil, fmt.Errorf("add comment: %w", err)
	}

	invalidate(ctx, s.inv)
	logger.Info("comment added",
		zap.String("id", c.ID), zap.String("blog", c.BlogID),
		zap.String("reviewer", reviewer), zap.String("sentiment", c.Sentiment))
	return c, nil
}

func isCommentOutcome(err error) bool {
	for _, target := range []error{ErrNotFound, ErrSelfComment, ErrDailyLimitExceeded, ErrAlreadyCommented, ErrUnknownUser} {
		if errors.Is(err, target) {
			return true
		}
	}
	return IsValidation(err)
}

func (s *commentService) ListComments(ctx context.Context, blogID string) ([]model.CommentView, error) {
	blogID = strings.TrimSpace(blogID)
	if _, err := s.store.Blogs().GetByID(ctx, blogID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get blog: %w", err)
	}
	views, err := s.store.Comments().ListByBlog(ctx, blogID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	if views == nil {
		views = []model.CommentView{}
	}
	return views, nil
}
