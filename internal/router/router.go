// Package router 组装 gin 路由与中间件
package router

import (
	"net/http"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	_ "github.com/d60-Lab/bloghub/docs"
	"github.com/d60-Lab/bloghub/internal/api/handler"
	"github.com/d60-Lab/bloghub/internal/api/middleware"
	"github.com/d60-Lab/bloghub/pkg/auth"
)

type Options struct {
	Mode           string
	ServiceName    string
	Tracing        bool
	Sentry         bool
	RateLimitRPS   float64
	RateLimitBurst int
}

func New(h *handler.Handler, tokens *auth.TokenManager, opts Options) *gin.Engine {
	if opts.Mode != "" {
		gin.SetMode(opts.Mode)
	}
	r := gin.New()
	r.Use(middleware.Recovery(), middleware.RequestLogger())
	if opts.Tracing {
		r.Use(otelgin.Middleware(opts.ServiceName))
	}
	if opts.Sentry {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	api.Use(middleware.NewIPRateLimiter(opts.RateLimitRPS, opts.RateLimitBurst).Middleware())
	authed := middleware.JWTAuth(tokens)

	a := api.Group("/auth")
	a.POST("/signup", h.Signup)
	a.POST("/login", h.Login)
	a.GET("/me", authed, h.Me)

	blogs := api.Group("/blogs")
	blogs.GET("", h.SearchBlogs)
	blogs.POST("", authed, h.CreateBlog)
	blogs.GET("/:id", h.GetBlog)
	blogs.GET("/:id/comments", h.ListComments)
	blogs.POST("/:id/comments", authed, h.AddComment)

	api.GET("/users/:username/blogs", h.ListUserBlogs)

	rel := api.Group("/relations")
	rel.POST("/follow", authed, h.Follow)
	rel.POST("/unfollow", authed, h.Unfollow)
	rel.GET("/:username/following", h.ListFollowing)
	rel.GET("/:username/followers", h.ListFollowers)

	rep := api.Group("/reports")
	rep.GET("/co-posted-tags", h.CoPostedTags)
	rep.GET("/most-blogs", h.MostBlogs)
	rep.GET("/common-followees", h.CommonFollowees)
	rep.GET("/no-blogs", h.NoBlogs)
	rep.GET("/all-positive-blogs", h.AllPositiveBlogs)
	rep.GET("/always-negative-reviewers", h.AlwaysNegativeReviewers)
	rep.GET("/never-negative-owners", h.NeverNegativeOwners)

	return r
}
