package service

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/d60-Lab/bloghub/config"
	"github.com/d60-Lab/bloghub/internal/model"
	"github.com/d60-Lab/bloghub/internal/repository"
	"github.com/d60-Lab/bloghub/pkg/database"
)

// testClock 可手动拨动的时钟
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type fixture struct {
	store    *repository.Store
	clock    *testClock
	cal      *Calendar
	auth     AuthService
	rels     RelationshipService
	blogs    BlogService
	comments CommentService
	reports  ReportService
}

var testZone = time.FixedZone("UTC+8", 8*3600)

func newFixture(t *testing.T, rc ReportCache) *fixture {
	t.Helper()
	cfg := &config.Config{Database: config.DatabaseConfig{
		Driver: "sqlite",
		DSN:    filepath.Join(t.TempDir(), "service.db"),
	}}
	db, err := database.InitDB(cfg)
	require.NoError(t, err)
	require.NoError(t, repository.AutoMigrate(db))
	t.Cleanup(func() { _ = database.Close(db) })

	store := repository.NewStore(db)
	clock := &testClock{now: time.Date(2026, 4, 1, 10, 0, 0, 0, testZone)}
	cal := NewCalendar(testZone, clock.Now)
	var inv Invalidator
	if rc != nil {
		inv = rc
	}
	return &fixture{
		store:    store,
		clock:    clock,
		cal:      cal,
		auth:     NewAuthService(store, cal, inv, bcrypt.MinCost),
		rels:     NewRelationshipService(store, inv),
		blogs:    NewBlogService(store, cal, inv),
		comments: NewCommentService(store, cal, inv),
		reports:  NewReportService(store, cal, rc),
	}
}

func registerInput(username string) RegisterInput {
	return RegisterInput{
		Username:        username,
		Password:        "secret",
		PasswordConfirm: "secret",
		FirstName:       "First" + username,
		LastName:        "Last",
		Email:           username + "@example.com",
		Phone:           "tel-" + username,
	}
}

func (f *fixture) register(t *testing.T, usernames ...string) {
	t.Helper()
	for _, u := range usernames {
		_, err := f.auth.Register(context.Background(), registerInput(u))
		require.NoError(t, err)
	}
}

func (f *fixture) blog(t *testing.T, owner string, tags ...string) *model.Blog {
	t.Helper()
	b, err := f.blogs.CreateBlog(context.Background(), owner, "subject of "+owner, "body", tags)
	require.NoError(t, err)
	return b
}

func (f *fixture) comment(t *testing.T, blogID, reviewer, sentiment string) {
	t.Helper()
	_, err := f.comments.AddComment(context.Background(), blogID, reviewer, sentiment, "text")
	require.NoError(t, err)
}
