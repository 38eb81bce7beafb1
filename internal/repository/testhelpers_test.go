package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/d60-Lab/bloghub/config"
	"github.com/d60-Lab/bloghub/internal/model"
	"github.com/d60-Lab/bloghub/pkg/database"
)

func openTestDB(tb testing.TB) *gorm.DB {
	tb.Helper()
	cfg := &config.Config{Database: config.DatabaseConfig{
		Driver: "sqlite",
		DSN:    filepath.Join(tb.TempDir(), "test.db"),
	}}
	db, err := database.InitDB(cfg)
	require.NoError(tb, err)
	require.NoError(tb, AutoMigrate(db))
	tb.Cleanup(func() { _ = database.Close(db) })
	return db
}

func seedUser(tb testing.TB, s *Store, username string) *model.User {
	tb.Helper()
	u := &model.User{
		Username:     username,
		PasswordHash: "x",
		FirstName:    "First" + username,
		LastName:     "Last",
		Email:        username + "@example.com",
		Phone:        "tel-" + username,
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(tb, s.Users().Create(context.Background(), u))
	return u
}

func seedBlog(tb testing.TB, s *Store, owner string, at time.Time, tags ...string) *model.Blog {
	tb.Helper()
	b := &model.Blog{
		ID:          fmt.Sprintf("%s-%d", owner, at.UnixNano()),
		Owner:       owner,
		Subject:     "subject",
		Description: "description",
		CreatedAt:   at.UTC(),
	}
	for _, t := range tags {
		b.Tags = append(b.Tags, model.BlogTag{Tag: t})
	}
	require.NoError(tb, s.Blogs().Create(context.Background(), b))
	return b
}

func seedComment(tb testing.TB, s *Store, blogID, reviewer, sentiment string, at time.Time) *model.Comment {
	tb.Helper()
	c := &model.Comment{
		ID:          blogID + "/" + reviewer,
		BlogID:      blogID,
		Reviewer:    reviewer,
		Sentiment:   sentiment,
		Description: "text",
		CreatedAt:   at.UTC(),
	}
	require.NoError(tb, s.Comments().Create(context.Background(), c))
	return c
}
