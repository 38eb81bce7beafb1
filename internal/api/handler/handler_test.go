package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/d60-Lab/bloghub/config"
	"github.com/d60-Lab/bloghub/internal/api/handler"
	"github.com/d60-Lab/bloghub/internal/app"
	"github.com/d60-Lab/bloghub/internal/repository"
	"github.com/d60-Lab/bloghub/internal/router"
	"github.com/d60-Lab/bloghub/internal/service"
	"github.com/d60-Lab/bloghub/pkg/auth"
	"github.com/d60-Lab/bloghub/pkg/database"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type server struct {
	t      *testing.T
	engine *gin.Engine
}

func newServer(t *testing.T) *server {
	t.Helper()
	cfg := &config.Config{Database: config.DatabaseConfig{
		Driver: "sqlite",
		DSN:    filepath.Join(t.TempDir(), "api.db"),
	}}
	db, err := database.InitDB(cfg)
	require.NoError(t, err)
	require.NoError(t, repository.AutoMigrate(db))
	t.Cleanup(func() { _ = database.Close(db) })

	cal := service.NewCalendar(time.UTC, nil)
	svcs := app.NewServices(db, cal, nil, bcrypt.MinCost)
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	h := handler.NewHandler(svcs.Auth, svcs.Relation, svcs.Blog, svcs.Comment, svcs.Report, tokens)
	return &server{t: t, engine: router.New(h, tokens, router.Options{Mode: gin.TestMode})}
}

func (s *server) do(method, path, token string, body any) (int, envelope) {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var env envelope
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func (s *server) signupAndLogin(username string) string {
	s.t.Helper()
	code, env := s.do(http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"username": username, "password": "pw", "password_confirm": "pw",
		"first_name": "F" + username, "last_name": "L",
		"email": username + "@example.com", "phone": "tel-" + username,
	})
	require.Equal(s.t, http.StatusCreated, code, env.Message)

	code, env = s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"username": username, "password": "pw"})
	require.Equal(s.t, http.StatusOK, code, env.Message)
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(s.t, json.Unmarshal(env.Data, &login))
	require.NotEmpty(s.t, login.Token)
	return login.Token
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func TestAuthEndpoints(t *testing.T) {
	s := newServer(t)
	token := s.signupAndLogin("alice")

	code, env := s.do(http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, code)
	me := decode[map[string]string](t, env.Data)
	assert.Equal(t, "alice", me["username"])
	assert.Equal(t, "Falice L", me["display_name"])

	code, _ = s.do(http.MethodGet, "/api/v1/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = s.do(http.MethodGet, "/api/v1/auth/me", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, env = s.do(http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"username": "bob", "password": "pw", "password_confirm": "pw",
		"first_name": "B", "last_name": "L", "email": "ALICE@example.com", "phone": "x",
	})
	assert.Equal(t, http.StatusConflict, code)
	assert.Contains(t, env.Message, "email")

	code, env = s.do(http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"username": "bob", "password": "pw", "password_confirm": "other",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "passwords do not match", env.Message)

	code, _ = s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"username": "alice", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestBlogAndCommentEndpoints(t *testing.T) {
	s := newServer(t)
	alice := s.signupAndLogin("alice")
	bob := s.signupAndLogin("bob")

	code, env := s.do(http.MethodPost, "/api/v1/blogs", alice, map[string]any{
		"subject": "Hello", "description": "World", "tags": []string{"Go"}, "tag_list": "db, go",
	})
	require.Equal(t, http.StatusCreated, code, env.Message)
	blog := decode[struct {
		ID    string   `json:"id"`
		Owner string   `json:"owner"`
		Tags  []string `json:"tags"`
	}](t, env.Data)
	assert.Equal(t, "alice", blog.Owner)
	assert.Equal(t, []string{"db", "go"}, blog.Tags)

	code, _ = s.do(http.MethodPost, "/api/v1/blogs", "", map[string]any{"subject": "s", "description": "d"})
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = s.do(http.MethodPost, "/api/v1/blogs", alice, map[string]any{"subject": "2", "description": "d"})
	require.Equal(t, http.StatusCreated, code)
	code, _ = s.do(http.MethodPost, "/api/v1/blogs", alice, map[string]any{"subject": "3", "description": "d"})
	assert.Equal(t, http.StatusTooManyRequests, code)

	code, _ = s.do(http.MethodPost, "/api/v1/blogs", bob, map[string]any{"subject": "", "description": "d"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = s.do(http.MethodGet, "/api/v1/blogs?tag=GO", "", nil)
	require.Equal(t, http.StatusOK, code)
	found := decode[[]struct {
		BlogID string `json:"blog_id"`
	}](t, env.Data)
	require.Len(t, found, 1)
	assert.Equal(t, blog.ID, found[0].BlogID)

	code, _ = s.do(http.MethodGet, "/api/v1/blogs", "", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = s.do(http.MethodGet, "/api/v1/blogs/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, env = s.do(http.MethodGet, "/api/v1/users/alice/blogs", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]json.RawMessage](t, env.Data), 2)

	path := "/api/v1/blogs/" + blog.ID + "/comments"
	code, _ = s.do(http.MethodPost, path, alice, map[string]string{"sentiment": "positive", "description": "me"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = s.do(http.MethodPost, path, bob, map[string]string{"sentiment": "great", "description": "x"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = s.do(http.MethodPost, path, bob, map[string]string{"sentiment": "positive", "description": "nice"})
	require.Equal(t, http.StatusCreated, code)

	code, _ = s.do(http.MethodPost, path, bob, map[string]string{"sentiment": "negative", "description": "again"})
	assert.Equal(t, http.StatusConflict, code)

	code, _ = s.do(http.MethodPost, "/api/v1/blogs/missing/comments", bob, map[string]string{"sentiment": "positive", "description": "x"})
	assert.Equal(t, http.StatusNotFound, code)

	code, env = s.do(http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, code)
	comments := decode[[]struct {
		Reviewer     string `json:"reviewer"`
		ReviewerName string `json:"reviewer_name"`
	}](t, env.Data)
	require.Len(t, comments, 1)
	assert.Equal(t, "Fbob L", comments[0].ReviewerName)
}

func TestRelationAndReportEndpoints(t *testing.T) {
	s := newServer(t)
	alice := s.signupAndLogin("alice")
	bob := s.signupAndLogin("bob")
	s.signupAndLogin("carol")

	code, env := s.do(http.MethodPost, "/api/v1/relations/follow", alice, map[string]string{"username": "carol"})
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"result":"followed"}`, string(env.Data))

	code, env = s.do(http.MethodPost, "/api/v1/relations/follow", alice, map[string]string{"username": "carol"})
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"result":"already following"}`, string(env.Data))

	code, _ = s.do(http.MethodPost, "/api/v1/relations/follow", alice, map[string]string{"username": "alice"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = s.do(http.MethodPost, "/api/v1/relations/follow", alice, map[string]string{"username": "ghost"})
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = s.do(http.MethodPost, "/api/v1/relations/follow", bob, map[string]string{"username": "carol"})
	require.Equal(t, http.StatusOK, code)

	code, env = s.do(http.MethodGet, "/api/v1/relations/carol/followers", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]json.RawMessage](t, env.Data), 2)

	code, env = s.do(http.MethodGet, "/api/v1/reports/common-followees?user_a=alice&user_b=bob", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []string{"carol"}, decode[[]string](t, env.Data))

	code, env = s.do(http.MethodGet, "/api/v1/reports/no-blogs", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []string{"alice", "bob", "carol"}, decode[[]string](t, env.Data))

	code, _ = s.do(http.MethodGet, "/api/v1/reports/most-blogs?date=bad", "", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = s.do(http.MethodGet, "/api/v1/reports/most-blogs?date="+time.Now().UTC().Format("2006-01-02"), "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []string{}, decode[[]string](t, env.Data))

	for _, p := range []string{
		"/api/v1/reports/co-posted-tags?tag_a=x&tag_b=y",
		"/api/v1/reports/all-positive-blogs?owner=alice",
		"/api/v1/reports/always-negative-reviewers",
		"/api/v1/reports/never-negative-owners",
	} {
		code, env = s.do(http.MethodGet, p, "", nil)
		require.Equal(t, http.StatusOK, code, p)
		assert.Equal(t, "[]", string(env.Data), p)
	}

	code, _ = s.do(http.MethodPost, "/api/v1/relations/unfollow", alice, map[string]string{"username": "carol"})
	require.Equal(t, http.StatusOK, code)
	code, env = s.do(http.MethodGet, "/api/v1/relations/alice/following", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "[]", string(env.Data))

	code, _ = s.do(http.MethodGet, "/api/v1/relations/ghost/following", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
}
