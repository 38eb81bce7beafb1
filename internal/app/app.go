// Package app 根据配置组装存储、缓存、服务和 HTTP 路由
package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/d60-Lab/bloghub/config"
	"github.com/d60-Lab/bloghub/internal/api/handler"
	"github.com/d60-Lab/bloghub/internal/cache"
	"github.com/d60-Lab/bloghub/internal/repository"
	"github.com/d60-Lab/bloghub/internal/router"
	"github.com/d60-Lab/bloghub/internal/service"
	"github.com/d60-Lab/bloghub/pkg/auth"
	"github.com/d60-Lab/bloghub/pkg/database"
	"github.com/d60-Lab/bloghub/pkg/logger"
)

// Services 核心操作集合，HTTP 层与压测工具共用
type Services struct {
	Auth     service.AuthService
	Relation service.RelationshipService
	Blog     service.BlogService
	Comment  service.CommentService
	Report   service.ReportService
	Calendar *service.Calendar
}

// App 运行期依赖
type App struct {
	DB       *gorm.DB
	Redis    *redis.Client
	Services *Services
	Tokens   *auth.TokenManager
}

// New 打开数据库、迁移表结构并构建服务
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := database.InitDB(cfg)
	if err != nil {
		return nil, err
	}
	if err := repository.AutoMigrate(db); err != nil {
		_ = database.Close(db)
		return nil, err
	}

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := rdb.Ping(ctx).Err(); err != nil {
			// 缓存不可用不影响正确性，只记录
			logger.Warn("redis unavailable, report cache disabled", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
			_ = rdb.Close()
			rdb = nil
		}
	}

	loc, err := cfg.App.Location()
	if err != nil {
		_ = database.Close(db)
		return nil, fmt.Errorf("load timezone: %w", err)
	}
	cal := service.NewCalendar(loc, nil)
	svcs := NewServices(db, cal, cache.NewReportCache(rdb, cfg.Redis.ReportTTL), 0)

	logger.Info("app initialised",
		zap.String("driver", cfg.Database.Driver),
		zap.String("timezone", loc.String()),
		zap.Bool("report_cache", rdb != nil))
	return &App{
		DB:       db,
		Redis:    rdb,
		Services: svcs,
		Tokens:   auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Expire),
	}, nil
}

// NewServices bcryptCost <= 0 使用默认强度
func NewServices(db *gorm.DB, cal *service.Calendar, rc *cache.ReportCache, bcryptCost int) *Services {
	store := repository.NewStore(db)
	return &Services{
		Auth:     service.NewAuthService(store, cal, rc, bcryptCost),
		Relation: service.NewRelationshipService(store, rc),
		Blog:     service.NewBlogService(store, cal, rc),
		Comment:  service.NewCommentService(store, cal, rc),
		Report:   service.NewReportService(store, cal, rc),
		Calendar: cal,
	}
}

// Router 构建 HTTP 路由
func (a *App) Router(cfg *config.Config, sentryEnabled bool) *gin.Engine {
	s := a.Services
	h := handler.NewHandler(s.Auth, s.Relation, s.Blog, s.Comment, s.Report, a.Tokens)
	return router.New(h, a.Tokens, router.Options{
		Mode:           cfg.Server.Mode,
		ServiceName:    cfg.Tracing.ServiceName,
		Tracing:        cfg.Tracing.Enabled,
		Sentry:         sentryEnabled,
		RateLimitRPS:   cfg.RateLimit.RPS,
		RateLimitBurst: cfg.RateLimit.Burst,
	})
}

// Close 释放连接
func (a *App) Close() error {
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	return database.Close(a.DB)
}
