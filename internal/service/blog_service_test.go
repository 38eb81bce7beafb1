package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTags(t *testing.T) {
	assert.Equal(t, []string{"db", "go"}, NormalizeTags([]string{" Go", "db", "go ", "", "  "}))
	assert.Equal(t, []string{"a", "b"}, ParseTags("b, a,,A"))
	assert.Empty(t, ParseTags(""))
}

func TestCreateBlogDailyLimit(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.register(t, "alice")

	f.blog(t, "alice", "go")
	f.clock.Advance(time.Hour)
	f.blog(t, "alice")

	_, err := f.blogs.CreateBlog(ctx, "alice", "third", "body", nil)
	assert.ErrorIs(t, err, ErrDailyLimitExceeded)

	// 次日（本地时区）额度重置
	f.clock.Advance(14 * time.Hour)
	b := f.blog(t, "alice")
	assert.Equal(t, "2026-04-02", f.cal.DateOf(b.CreatedAt))

	blogs, err := f.blogs.ListByOwner(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, blogs, 3)
}

func TestCreateBlogDayBoundaryFollowsZone(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.register(t, "alice")

	// 本地 23:50 发两篇，00:10 即为新的一天
	f.clock.Set(time.Date(2026, 4, 1, 23, 50, 0, 0, testZone))
	f.blog(t, "alice")
	f.blog(t, "alice")
	_, err := f.blogs.CreateBlog(ctx, "alice", "s", "d", nil)
	require.ErrorIs(t, err, ErrDailyLimitExceeded)

	f.clock.Set(time.Date(2026, 4, 2, 0, 10, 0, 0, testZone))
	f.blog(t, "alice")
}

func TestCreateBlogValidation(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.register(t, "alice")

	_, err := f.blogs.CreateBlog(ctx, "alice", "  ", "body", nil)
	assert.True(t, IsValidation(err))

	_, err = f.blogs.CreateBlog(ctx, "alice", "subject", "", nil)
	assert.True(t, IsValidation(err))

	_, err = f.blogs.CreateBlog(ctx, "ghost", "subject", "body", nil)
	assert.ErrorIs(t, err, ErrUnknownUser)

	// 失败的尝试不占额度
	f.blog(t, "alice")
	f.blog(t, "alice")
}

func TestSearchAndGetBlog(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.register(t, "alice", "bob")

	older := f.blog(t, "alice", "Go", " go", "DB")
	f.clock.Advance(time.Minute)
	newer := f.blog(t, "bob", "go")
	f.blog(t, "bob", "rust")
	assert.Equal(t, []string{"db", "go"}, older.TagNames())

	res, err := f.blogs.SearchByTag(ctx, " GO ")
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, newer.ID, res[0].BlogID)
	assert.Equal(t, older.ID, res[1].BlogID)
	assert.Equal(t, "alice", res[1].Owner)
	assert.Equal(t, "2026-04-01", res[1].Date)

	res, err = f.blogs.SearchByTag(ctx, "")
	require.NoError(t, err)
	assert.NotNil(t, res)
	assert.Empty(t, res)

	got, err := f.blogs.GetBlog(ctx, older.ID)
	require.NoError(t, err)
	assert.Equal(t, older.Subject, got.Subject)
	assert.Equal(t, []string{"db", "go"}, got.TagNames())

	_, err = f.blogs.GetBlog(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateBlogConcurrentLimit(t *testing.T) {
	f := newFixture(t, nil)
	f.register(t, "alice")

	const workers = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		ok      int
		limited int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.blogs.CreateBlog(context.Background(), "alice", "s", "d", []string{"x"})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, ErrDailyLimitExceeded):
				limited++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, MaxBlogsPerDay, ok)
	assert.Equal(t, workers-MaxBlogsPerDay, limited)

	start, end := f.cal.Today()
	n, err := f.store.Blogs().CountByOwnerBetween(context.Background(), "alice", start, end)
	require.NoError(t, err)
	assert.EqualValues(t, MaxBlogsPerDay, n)
}
