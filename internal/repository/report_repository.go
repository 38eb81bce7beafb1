package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/d60-Lab/bloghub/internal/model"
)

// CoPostedPair 同一作者的两篇不同博文，分别带 tagA / tagB
type CoPostedPair struct {
	Owner      string
	ACreatedAt time.Time `gorm:"column:a_created_at"`
	BCreatedAt time.Time `gorm:"column:b_created_at"`
}

// OwnerCount 作者 -> 博文数
type OwnerCount struct {
	Owner string
	Cnt   int64
}

// ReportRepository 只读聚合查询
type ReportRepository interface {
	CoPostedPairs(ctx context.Context, tagA, tagB string) ([]CoPostedPair, error)
	OwnerCountsBetween(ctx context.Context, start, end time.Time) ([]OwnerCount, error)
	CommonFollowees(ctx context.Context, userA, userB string) ([]string, error)
	UsersWithNoBlogs(ctx context.Context) ([]string, error)
	AllPositiveBlogs(ctx context.Context, owner string) ([]model.BlogRef, error)
	AlwaysNegativeReviewers(ctx context.Context) ([]string, error)
	NeverNegativelyCommentedOwners(ctx context.Context) ([]string, error)
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository { return &reportRepository{db: db} }

func (r *reportRepository) CoPostedPairs(ctx context.Context, tagA, tagB string) ([]CoPostedPair, error) {
	var res []CoPostedPair
	// 自然日判断依赖时区，交给调用方在 Go 中完成
	err := r.db.WithContext(ctx).Raw(`
		SELECT b1.owner AS owner, b1.created_at AS a_created_at, b2.created_at AS b_created_at
		FROM blogs b1
		JOIN blog_tags t1 ON t1.blog_id = b1.id AND t1.tag = ?
		JOIN blogs b2 ON b2.owner = b1.owner AND b2.id <> b1.id
		JOIN blog_tags t2 ON t2.blog_id = b2.id AND t2.tag = ?
	`, tagA, tagB).Scan(&res).Error
	return res, err
}

func (r *reportRepository) OwnerCountsBetween(ctx context.Context, start, end time.Time) ([]OwnerCount, error) {
	var res []OwnerCount
	err := r.db.WithContext(ctx).
		Model(&model.Blog{}).
		Select("owner, COUNT(*) AS cnt").
		Where("created_at >= ? AND created_at < ?", start.UTC(), end.UTC()).
		Group("owner").
		Order("owner").
		Scan(&res).Error
	return res, err
}

func (r *reportRepository) CommonFollowees(ctx context.Context, userA, userB string) ([]string, error) {
	res := make([]string, 0)
	err := r.db.WithContext(ctx).Raw(`
		SELECT f1.followee
		FROM follows f1
		JOIN follows f2 ON f2.followee = f1.followee AND f2.follower = ?
		WHERE f1.follower = ?
		ORDER BY f1.followee
	`, userB, userA).Scan(&res).Error
	return res, err
}

func (r *reportRepository) UsersWithNoBlogs(ctx context.Context) ([]string, error) {
	res := make([]string, 0)
	err := r.db.WithContext(ctx).Raw(`
		SELECT u.username
		FROM users u
		LEFT JOIN blogs b ON b.owner = u.username
		WHERE b.id IS NULL
		ORDER BY u.username
	`).Scan(&res).Error
	return res, err
}

func (r *reportRepository) AllPositiveBlogs(ctx context.Context, owner string) ([]model.BlogRef, error) {
	res := make([]model.BlogRef, 0)
	// INNER JOIN 保证至少一条评论
	err := r.db.WithContext(ctx).Raw(`
		SELECT b.id AS blog_id, b.subject AS subject
		FROM blogs b
		JOIN comments c ON c.blog_id = b.id
		WHERE b.owner = ?
		GROUP BY b.id, b.subject, b.created_at
		HAVING SUM(CASE WHEN c.sentiment = ? THEN 1 ELSE 0 END) = 0
		ORDER BY b.created_at DESC
	`, owner, model.SentimentNegative).Scan(&res).Error
	return res, err
}

func (r *reportRepository) AlwaysNegativeReviewers(ctx context.Context) ([]string, error) {
	res := make([]string, 0)
	err := r.db.WithContext(ctx).Raw(`
		SELECT reviewer
		FROM comments
		GROUP BY reviewer
		HAVING SUM(CASE WHEN sentiment <> ? THEN 1 ELSE 0 END) = 0
		ORDER BY reviewer
	`, model.SentimentNegative).Scan(&res).Error
	return res, err
}

func (r *reportRepository) NeverNegativelyCommentedOwners(ctx context.Context) ([]string, error) {
	res := make([]string, 0)
	// LEFT JOIN：没有任何评论的博文也算“从未被差评”；没有博文的用户不会出现在分组里
	err := r.db.WithContext(ctx).Raw(`
		SELECT b.owner
		FROM blogs b
		LEFT JOIN comments c ON c.blog_id = b.id
		GROUP BY b.owner
		HAVING SUM(CASE WHEN c.sentiment = ? THEN 1 ELSE 0 END) = 0
		ORDER BY b.owner
	`, model.SentimentNegative).Scan(&res).Error
	return res, err
}
