// Command limitbench 并发压测写路径上的限流与唯一性规则，结束后校验不变量。
//
//	N      每个作者并发尝试发文次数（默认 20）
//	USERS  作者数（默认 5）
//	CONC   并发度（默认 8）
package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/d60-Lab/bloghub/config"
	"github.com/d60-Lab/bloghub/internal/app"
	"github.com/d60-Lab/bloghub/internal/cache"
	"github.com/d60-Lab/bloghub/internal/repository"
	"github.com/d60-Lab/bloghub/internal/service"
	"github.com/d60-Lab/bloghub/pkg/database"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func envInt(key string, def int) int {
	if s := os.Getenv(key); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			return v
		}
	}
	return def
}

func pct(vs []time.Duration, p float64) time.Duration {
	if len(vs) == 0 {
		return 0
	}
	xs := append([]time.Duration(nil), vs...)
	sort.Slice(xs, func(i, j int) bool { return xs[i] < xs[j] })
	k := int(math.Ceil(p*float64(len(xs)))) - 1
	if k < 0 {
		k = 0
	}
	if k >= len(xs) {
		k = len(xs) - 1
	}
	return xs[k]
}

type result struct {
	d   time.Duration
	err error
}

func main() {
	cfg := must(config.Load())
	db := must(database.InitDB(cfg))
	defer database.Close(db)
	if err := repository.AutoMigrate(db); err != nil {
		panic(err)
	}
	loc := must(cfg.App.Location())
	svcs := app.NewServices(db, service.NewCalendar(loc, nil), cache.NewReportCache(nil, 0), bcrypt.MinCost)
	ctx := context.Background()

	N := envInt("N", 20)
	USERS := envInt("USERS", 5)
	CONC := envInt("CONC", 8)

	run := "b" + uuid.New().String()[:6]
	users := make([]string, USERS)
	for i := range users {
		users[i] = fmt.Sprintf("%s_u%d", run, i)
		_ = must(svcs.Auth.Register(ctx, service.RegisterInput{
			Username: users[i], Password: "p", PasswordConfirm: "p",
			FirstName: "Bench", LastName: strconv.Itoa(i),
			Email: users[i] + "@example.com", Phone: run + strconv.Itoa(i),
		}))
	}

	// 1) 并发发文：每个作者 N 次尝试
	blogRes := fanout(USERS*N, CONC, func(i int) error {
		_, err := svcs.Blog.CreateBlog(ctx, users[i%USERS], "bench", "payload", []string{run})
		return err
	})

	// 2) 并发评论：每个用户对其他作者的所有博文各评论若干次
	blogs := must(svcs.Blog.SearchByTag(ctx, run))
	type job struct{ reviewer, blogID string }
	var jobs []job
	for _, u := range users {
		for _, b := range blogs {
			if b.Owner != u {
				jobs = append(jobs, job{u, b.BlogID}, job{u, b.BlogID})
			}
		}
	}
	commentRes := fanout(len(jobs), CONC, func(i int) error {
		_, err := svcs.Comment.AddComment(ctx, jobs[i].blogID, jobs[i].reviewer, "positive", "nice")
		return err
	})

	report("create blog", blogRes)
	report("add comment", commentRes)

	// 不变量校验
	start, end := svcs.Calendar.Today()
	violations := 0
	for _, u := range users {
		var nb, nc int64
		db.Table("blogs").Where("owner = ? AND created_at >= ? AND created_at < ?", u, start.UTC(), end.UTC()).Count(&nb)
		db.Table("comments").Where("reviewer = ? AND created_at >= ? AND created_at < ?", u, start.UTC(), end.UTC()).Count(&nc)
		if nb > service.MaxBlogsPerDay || nc > service.MaxCommentsPerDay {
			violations++
			fmt.Printf("VIOLATION user=%s blogs=%d comments=%d\n", u, nb, nc)
		}
	}
	var dup int64
	db.Raw(`SELECT COUNT(*) FROM (SELECT blog_id, reviewer FROM comments GROUP BY blog_id, reviewer HAVING COUNT(*) > 1) t`).Scan(&dup)
	var self int64
	db.Raw(`SELECT COUNT(*) FROM comments c JOIN blogs b ON b.id = c.blog_id WHERE c.reviewer = b.owner`).Scan(&self)
	fmt.Printf("duplicate (blog, reviewer) pairs=%d, self comments=%d, limit violations=%d\n", dup, self, violations)
	if dup > 0 || self > 0 || violations > 0 {
		os.Exit(1)
	}
}

func fanout(n, conc int, op func(i int) error) []result {
	if conc > n {
		conc = n
	}
	feed := make(chan int, n)
	for i := 0; i < n; i++ {
		feed <- i
	}
	close(feed)

	var mu sync.Mutex
	res := make([]result, 0, n)
	var wg sync.WaitGroup
	for w := 0; w < conc; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range feed {
				st := time.Now()
				err := op(i)
				mu.Lock()
				res = append(res, result{d: time.Since(st), err: err})
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	return res
}

func report(name string, rs []result) {
	var ok, limited, dup, other int
	ds := make([]time.Duration, 0, len(rs))
	for _, r := range rs {
		ds = append(ds, r.d)
		switch {
		case r.err == nil:
			ok++
		case errors.Is(r.err, service.ErrDailyLimitExceeded):
			limited++
		case errors.Is(r.err, service.ErrAlreadyCommented):
			dup++
		default:
			other++
		}
	}
	fmt.Printf("%s: attempts=%d ok=%d daily_limit=%d already=%d other=%d p50=%v p95=%v p99=%v\n",
		name, len(rs), ok, limited, dup, other, pct(ds, 0.50), pct(ds, 0.95), pct(ds, 0.99))
}
