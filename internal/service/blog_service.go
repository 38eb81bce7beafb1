package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/d60-Lab/bloghub/internal/model"
	"github.com/d60-Lab/bloghub/internal/repository"
	"github.com/d60-Lab/bloghub/pkg/logger"
)

// MaxBlogsPerDay 每个用户每个自然日最多发布的博文数
const MaxBlogsPerDay = 2

// BlogService 内容存储
type BlogService interface {
	CreateBlog(ctx context.Context, owner, subject, description string, tags []string) (*model.Blog, error)
	SearchByTag(ctx context.Context, tag string) ([]model.BlogSummary, error)
	GetBlog(ctx context.Context, id string) (*model.Blog, error)
	ListByOwner(ctx context.Context, owner string) ([]model.BlogSummary, error)
}

type blogService struct {
	store *repository.Store
	cal   *Calendar
	inv   Invalidator
}

func NewBlogService(store *repository.Store, cal *Calendar, inv Invalidator) BlogService {
	return &blogService{store: store, cal: cal, inv: inv}
}

// NormalizeTags 小写、去空白、去重、丢弃空串，结果有序
func NormalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	res := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		res = append(res, t)
	}
	sort.Strings(res)
	return res
}

// ParseTags 解析逗号分隔的标签串
func ParseTags(raw string) []string {
	return NormalizeTags(strings.Split(raw, ","))
}

func (s *blogService) CreateBlog(ctx context.Context, owner, subject, description string, tags []string) (*model.Blog, error) {
	owner = strings.TrimSpace(owner)
	subject = strings.TrimSpace(subject)
	description = strings.TrimSpace(description)
	if subject == "" || description == "" {
		return nil, invalid("subject and description are required")
	}

	blog := &model.Blog{
		ID:          uuid.New().String(),
		Owner:       owner,
		Subject:     subject,
		Description: description,
		CreatedAt:   s.cal.Now(),
	}
	for _, t := range NormalizeTags(tags) {
		blog.Tags = append(blog.Tags, model.BlogTag{Tag: t})
	}

	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		// 锁住作者行：同一作者的“计数 + 写入”串行执行
		if _, err := tx.Users().GetForUpdate(ctx, owner); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrUnknownUser
			}
			return err
		}
		start, end := s.cal.Today()
		n, err := tx.Blogs().CountByOwnerBetween(ctx, owner, start, end)
		if err != nil {
			return err
		}
		if n >= MaxBlogsPerDay {
			return fmt.Errorf("%w: at most %d blogs per day", ErrDailyLimitExceeded, MaxBlogsPerDay)
		}
		return tx.Blogs().Create(ctx, blog)
	})
	if err != nil {
		if errors.Is(err, ErrUnknownUser) || errors.Is(err, ErrDailyLimitExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("create blog: %w", err)
	}

	invalidate(ctx, s.inv)
	logger.Info("blog created", zap.String("id", blog.ID), zap.String("owner", owner), zap.Strings("tags", blog.TagNames()))
	return blog, nil
}

func (s *blogService) SearchByTag(ctx context.Context, tag string) ([]model.BlogSummary, error) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		return []model.BlogSummary{}, nil
	}
	blogs, err := s.store.Blogs().SearchByTag(ctx, tag)
	if err != nil {
		return nil, fmt.Errorf("search by tag: %w", err)
	}
	return s.summaries(blogs), nil
}

func (s *blogService) GetBlog(ctx context.Context, id string) (*model.Blog, error) {
	b, err := s.store.Blogs().GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get blog: %w", err)
	}
	return b, nil
}

func (s *blogService) ListByOwner(ctx context.Context, owner string) ([]model.BlogSummary, error) {
	blogs, err := s.store.Blogs().ListByOwner(ctx, strings.TrimSpace(owner))
	if err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}
	return s.summaries(blogs), nil
}

func (s *blogService) summaries(blogs []*model.Blog) []model.BlogSummary {
	res := make([]model.BlogSummary, len(blogs))
	for i, b := range blogs {
		res[i] = model.BlogSummary{
			BlogID:    b.ID,
			Subject:   b.Subject,
			Owner:     b.Owner,
			CreatedAt: b.CreatedAt,
			Date:      s.cal.DateOf(b.CreatedAt),
		}
	}
	return res
}
