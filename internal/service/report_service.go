package service

import (
	"context"
	"sort"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/d60-Lab/bloghub/internal/model"
	"github.com/d60-Lab/bloghub/internal/repository"
)

var tracer = otel.Tracer("github.com/d60-Lab/bloghub/internal/service")

// ReportService 七个只读聚合报表，结果按字典序返回
type ReportService interface {
	// CoPostedTags 在同一自然日内，既发过带 tagA 的博文、又发过另一篇带 tagB 的博文的用户
	CoPostedTags(ctx context.Context, tagA, tagB string) ([]string, error)
	// MostBlogsOnDate 指定日期发文最多的用户（并列全部返回）
	MostBlogsOnDate(ctx context.Context, date string) ([]string, error)
	// CommonFollowees userA 与 userB 共同关注的用户
	CommonFollowees(ctx context.Context, userA, userB string) ([]string, error)
	// UsersWithNoBlogs 从未发文的用户
	UsersWithNoBlogs(ctx context.Context) ([]string, error)
	// AllPositiveBlogs owner 的博文中至少有一条评论且没有差评的
	AllPositiveBlogs(ctx context.Context, owner string) ([]model.BlogRef, error)
	// AlwaysNegativeReviewers 发过评论且全部为差评的用户
	AlwaysNegativeReviewers(ctx context.Context) ([]string, error)
	// NeverNegativelyCommentedOwners 至少发过一篇博文、且所有博文都没收到过差评的用户
	NeverNegativelyCommentedOwners(ctx context.Context) ([]string, error)
}

type reportService struct {
	reports repository.ReportRepository
	cal     *Calendar
	cache   ReportCache
}

// NewReportService cache 可为 nil
func NewReportService(store *repository.Store, cal *Calendar, cache ReportCache) ReportService {
	return &reportService{reports: store.Reports(), cal: cal, cache: cache}
}

func (s *reportService) CoPostedTags(ctx context.Context, tagA, tagB string) ([]string, error) {
	tagA = strings.ToLower(strings.TrimSpace(tagA))
	tagB = strings.ToLower(strings.TrimSpace(tagB))
	if tagA == "" || tagB == "" {
		return nil, invalid("both tags are required")
	}
	return traced(ctx, "report.co_posted_tags", []attribute.KeyValue{
		attribute.String("tag_a", tagA), attribute.String("tag_b", tagB),
	}, func(ctx context.Context) ([]string, error) {
		return cached(ctx, s.cache, "q1:"+tagA+":"+tagB, func(ctx context.Context) ([]string, error) {
			pairs, err := s.reports.CoPostedPairs(ctx, tagA, tagB)
			if err != nil {
				return nil, err
			}
			set := make(map[string]struct{})
			for _, p := range pairs {
				if s.cal.DateOf(p.ACreatedAt) == s.cal.DateOf(p.BCreatedAt) {
					set[p.Owner] = struct{}{}
				}
			}
			return sortedKeys(set), nil
		})
	})
}

func (s *reportService) MostBlogsOnDate(ctx context.Context, date string) ([]string, error) {
	date = strings.TrimSpace(date)
	start, end, err := s.cal.Window(date)
	if err != nil {
		return nil, err
	}
	return traced(ctx, "report.most_blogs_on_date", []attribute.KeyValue{attribute.String("date", date)},
		func(ctx context.Context) ([]string, error) {
			return cached(ctx, s.cache, "q2:"+date, func(ctx context.Context) ([]string, error) {
				counts, err := s.reports.OwnerCountsBetween(ctx, start, end)
				if err != nil {
					return nil, err
				}
				var best int64
				res := make([]string, 0)
				for _, c := range counts {
					switch {
					case c.Cnt > best:
						best = c.Cnt
						res = append(res[:0], c.Owner)
					case c.Cnt == best:
						res = append(res, c.Owner)
					}
				}
				sort.Strings(res)
				return res, nil
			})
		})
}

func (s *reportService) CommonFollowees(ctx context.Context, userA, userB string) ([]string, error) {
	userA = strings.TrimSpace(userA)
	userB = strings.TrimSpace(userB)
	if userA == "" || userB == "" {
		return nil, invalid("both users are required")
	}
	return traced(ctx, "report.common_followees", []attribute.KeyValue{
		attribute.String("user_a", userA), attribute.String("user_b", userB),
	}, func(ctx context.Context) ([]string, error) {
		return cached(ctx, s.cache, "q3:"+userA+":"+userB, func(ctx context.Context) ([]string, error) {
			return s.reports.CommonFollowees(ctx, userA, userB)
		})
	})
}

func (s *reportService) UsersWithNoBlogs(ctx context.Context) ([]string, error) {
	return traced(ctx, "report.users_with_no_blogs", nil, func(ctx context.Context) ([]string, error) {
		return cached(ctx, s.cache, "q4", s.reports.UsersWithNoBlogs)
	})
}

func (s *reportService) AllPositiveBlogs(ctx context.Context, owner string) ([]model.BlogRef, error) {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return nil, invalid("owner is required")
	}
	return traced(ctx, "report.all_positive_blogs", []attribute.KeyValue{attribute.String("owner", owner)},
		func(ctx context.Context) ([]model.BlogRef, error) {
			return cached(ctx, s.cache, "q5:"+owner, func(ctx context.Context) ([]model.BlogRef, error) {
				return s.reports.AllPositiveBlogs(ctx, owner)
			})
		})
}

func (s *reportService) AlwaysNegativeReviewers(ctx context.Context) ([]string, error) {
	return traced(ctx, "report.always_negative_reviewers", nil, func(ctx context.Context) ([]string, error) {
		return cached(ctx, s.cache, "q6", s.reports.AlwaysNegativeReviewers)
	})
}

func (s *reportService) NeverNegativelyCommentedOwners(ctx context.Context) ([]string, error) {
	return traced(ctx, "report.never_negative_owners", nil, func(ctx context.Context) ([]string, error) {
		return cached(ctx, s.cache, "q7", s.reports.NeverNegativelyCommentedOwners)
	})
}

// traced 为报表包一层 span，并保证空结果为非 nil 切片
func traced[T any](ctx context.Context, name string, attrs []attribute.KeyValue, fn func(context.Context) ([]T, error)) ([]T, error) {
	ctx, span := tracer.Start(ctx, name, trace.WithAttributes(attrs...))
	defer span.End()

	res, err := fn(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if res == nil {
		res = []T{}
	}
	span.SetAttributes(attribute.Int("rows", len(res)))
	return res, nil
}

func sortedKeys(set map[string]struct{}) []string {
	res := make([]string, 0, len(set))
	for k := range set {
		res = append(res, k)
	}
	sort.Strings(res)
	return res
}
