// Command reportbench 对比报表查询在无缓存、Redis 缓存、缓存+持续写入三种场景下的延迟。
//
//	USERS   用户数（默认 2000）
//	DAYS    博文分布的天数（默认 30）
//	REQS    每个场景的请求数（默认 3000）
//	REDIS_ADDR  默认 localhost:6379
//
// 数据库连接沿用 config（DATABASE_URL / APP_DATABASE_DRIVER）。
package main

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/d60-Lab/bloghub/config"
	"github.com/d60-Lab/bloghub/internal/app"
	"github.com/d60-Lab/bloghub/internal/cache"
	"github.com/d60-Lab/bloghub/internal/model"
	"github.com/d60-Lab/bloghub/internal/repository"
	"github.com/d60-Lab/bloghub/internal/service"
	"github.com/d60-Lab/bloghub/pkg/database"
)

var tagPool = []string{"go", "db", "redis", "k8s", "rust", "ml", "ops", "web"}

type query struct {
	name string
	call func(ctx context.Context, r service.ReportService) error
}

type scenarioResult struct {
	durations []time.Duration
	hits      int64
	misses    int64
	cacheKeys int
	memBytes  int64
}

func main() {
	ctx := context.Background()
	cfg := must(config.Load())
	db := must(database.InitDB(cfg))
	defer database.Close(db)
	mustDo(repository.AutoMigrate(db))
	loc := must(cfg.App.Location())
	cal := service.NewCalendar(loc, nil)

	users := envInt("USERS", 2000)
	days := envInt("DAYS", 30)
	reqs := envInt("REQS", 3000)

	fmt.Println("Setting up test data...")
	names := seed(db, users, days)
	fmt.Printf("Test data ready: %d users over %d days\n", len(names), days)

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()
	if err := client.Ping(ctx).Err(); err != nil {
		panic(fmt.Sprintf("Failed to connect to Redis at %s: %v", addr, err))
	}

	queries := makeQueries(names, cal, days)
	rnd := rand.New(rand.NewSource(42))
	plan := make([]query, reqs)
	for i := range plan {
		plan[i] = queries[rnd.Intn(len(queries))]
	}

	noCache := run(ctx, client, app.NewServices(db, cal, cache.NewReportCache(nil, 0), bcrypt.MinCost), nil, plan, 0, names)
	rc := cache.NewReportCache(client, 10*time.Minute)
	cached := run(ctx, client, app.NewServices(db, cal, rc, bcrypt.MinCost), rc, plan, 0, names)
	rc = cache.NewReportCache(client, 10*time.Minute)
	churn := run(ctx, client, app.NewServices(db, cal, rc, bcrypt.MinCost), rc, plan, 50, names)

	fmt.Printf("\nReport latency (%d req, 7 reports, %s + Redis)\n", reqs, cfg.Database.Driver)
	for _, row := range []struct {
		name string
		res  scenarioResult
	}{{"No cache", noCache}, {"Redis cache", cached}, {"Cache + writes", churn}} {
		fmt.Printf("%-16s avg=%v p95=%v p99=%v hits=%d misses=%d cache_keys=%d mem=%s\n",
			row.name, avg(row.res.durations), pct(row.res.durations, 0.95), pct(row.res.durations, 0.99),
			row.res.hits, row.res.misses, row.res.cacheKeys, formatBytes(row.res.memBytes))
	}
}

// run writeEvery > 0 时每隔 writeEvery 次读做一次关注写入，触发缓存失效
func run(ctx context.Context, client *redis.Client, svcs *app.Services, rc *cache.ReportCache, plan []query, writeEvery int, names []string) scenarioResult {
	client.FlushAll(ctx)
	rnd := rand.New(rand.NewSource(7))
	out := make([]time.Duration, 0, len(plan))
	for i, q := range plan {
		if writeEvery > 0 && i%writeEvery == 0 {
			a, b := names[rnd.Intn(len(names))], names[rnd.Intn(len(names))]
			if a != b {
				_, _ = svcs.Relation.Follow(ctx, a, b)
			}
		}
		start := time.Now()
		if err := q.call(ctx, svcs.Report); err != nil {
			panic(fmt.Sprintf("%s: %v", q.name, err))
		}
		out = append(out, time.Since(start))
	}

	res := scenarioResult{durations: out}
	if rc != nil {
		res.hits, res.misses = rc.Counters()
	}
	keys, _ := client.Keys(ctx, "reports:*").Result()
	res.cacheKeys = len(keys)
	if info, err := client.Info(ctx, "memory").Result(); err == nil {
		res.memBytes = parseRedisMemory(info)
	}
	return res
}

func makeQueries(names []string, cal *service.Calendar, days int) []query {
	today, _ := cal.Today()
	qs := []query{
		{"no-blogs", func(ctx context.Context, r service.ReportService) error {
			_, err := r.UsersWithNoBlogs(ctx)
			return err
		}},
		{"always-negative", func(ctx context.Context, r service.ReportService) error {
			_, err := r.AlwaysNegativeReviewers(ctx)
			return err
		}},
		{"never-negative", func(ctx context.Context, r service.ReportService) error {
			_, err := r.NeverNegativelyCommentedOwners(ctx)
			return err
		}},
	}
	for i := 0; i < 4; i++ {
		a, b := tagPool[i], tagPool[len(tagPool)-1-i]
		qs = append(qs, query{"co-posted " + a + "/" + b, func(ctx context.Context, r service.ReportService) error {
			_, err := r.CoPostedTags(ctx, a, b)
			return err
		}})
	}
	for d := 0; d < days; d += 7 {
		date := cal.DateOf(today.AddDate(0, 0, -d))
		qs = append(qs, query{"most-blogs " + date, func(ctx context.Context, r service.ReportService) error {
			_, err := r.MostBlogsOnDate(ctx, date)
			return err
		}})
	}
	for i := 0; i < 10 && i+1 < len(names); i++ {
		a, b := names[i], names[i+1]
		qs = append(qs,
			query{"common " + a, func(ctx context.Context, r service.ReportService) error {
				_, err := r.CommonFollowees(ctx, a, b)
				return err
			}},
			query{"all-positive " + a, func(ctx context.Context, r service.ReportService) error {
				_, err := r.AllPositiveBlogs(ctx, a)
				return err
			}},
		)
	}
	return qs
}

// seed 直接批量写库，绕过每日额度；每个用户每天最多 2 篇、最多 3 条评论
func seed(db *gorm.DB, users, days int) []string {
	run := "r" + uuid.New().String()[:6]
	rnd := rand.New(rand.NewSource(1))
	hash := string(must(bcrypt.GenerateFromPassword([]byte("p"), bcrypt.MinCost)))
	now := time.Now().UTC()

	names := make([]string, users)
	rows := make([]model.User, users)
	for i := range rows {
		names[i] = fmt.Sprintf("%s_u%05d", run, i)
		rows[i] = model.User{
			Username: names[i], PasswordHash: hash, FirstName: "Bench", LastName: strconv.Itoa(i),
			Email: names[i] + "@example.com", Phone: names[i], CreatedAt: now,
		}
	}
	mustDo(db.CreateInBatches(&rows, 500).Error)

	var blogs []model.Blog
	for i, owner := range names {
		// 约 1/5 的用户不发文
		if i%5 == 0 {
			continue
		}
		for d := 0; d < days; d++ {
			perDay := rnd.Intn(3)
			for k := 0; k < perDay; k++ {
				b := model.Blog{
					ID: uuid.NewString(), Owner: owner, Subject: "bench", Description: "bench",
					CreatedAt: now.AddDate(0, 0, -d).Add(-time.Duration(k) * time.Minute),
				}
				for _, t := range rnd.Perm(len(tagPool))[:1+rnd.Intn(3)] {
					b.Tags = append(b.Tags, model.BlogTag{BlogID: b.ID, Tag: tagPool[t]})
				}
				blogs = append(blogs, b)
			}
		}
	}
	mustDo(db.CreateInBatches(&blogs, 500).Error)

	var comments []model.Comment
	seen := make(map[string]struct{})
	for _, reviewer := range names {
		for k := 0; k < 3 && len(blogs) > 0; k++ {
			b := blogs[rnd.Intn(len(blogs))]
			key := b.ID + reviewer
			if _, ok := seen[key]; ok || b.Owner == reviewer {
				continue
			}
			seen[key] = struct{}{}
			sentiment := model.SentimentPositive
			if rnd.Intn(3) == 0 {
				sentiment = model.SentimentNegative
			}
			comments = append(comments, model.Comment{
				ID: uuid.NewString(), BlogID: b.ID, Reviewer: reviewer, Sentiment: sentiment,
				Description: "bench", CreatedAt: now,
			})
		}
	}
	mustDo(db.CreateInBatches(&comments, 500).Error)

	var follows []model.Follow
	for i, follower := range names {
		picked := make(map[string]struct{})
		for k := 1; k <= 5; k++ {
			followee := names[(i+k*k)%len(names)]
			if _, ok := picked[followee]; ok || followee == follower {
				continue
			}
			picked[followee] = struct{}{}
			follows = append(follows, model.Follow{Follower: follower, Followee: followee, CreatedAt: now})
		}
	}
	mustDo(db.CreateInBatches(&follows, 500).Error)
	return names
}

func parseRedisMemory(info string) int64 {
	for _, line := range strings.Split(info, "\n") {
		if v, ok := strings.CutPrefix(strings.TrimSpace(line), "used_memory:"); ok {
			n, _ := strconv.ParseInt(v, 10, 64)
			return n
		}
	}
	return 0
}

func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

func envInt(key string, def int) int {
	if s := os.Getenv(key); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			return v
		}
	}
	return def
}

func avg(vs []time.Duration) time.Duration {
	if len(vs) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range vs {
		sum += v
	}
	return sum / time.Duration(len(vs))
}

func pct(vs []time.Duration, p float64) time.Duration {
	if len(vs) == 0 {
		return 0
	}
	sorted := append([]time.Duration(nil), vs...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	idx := int(math.Ceil(p*float64(len(sorted)))) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func mustDo(err error) {
	if err != nil {
		panic(err)
	}
}
