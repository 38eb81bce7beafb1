package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/bloghub/internal/api/middleware"
	"github.com/d60-Lab/bloghub/internal/model"
	"github.com/d60-Lab/bloghub/internal/service"
	"github.com/d60-Lab/bloghub/pkg/auth"
	"github.com/d60-Lab/bloghub/pkg/response"
)

// Handler HTTP 接入层：解析请求、取出会话身份并显式传给服务
type Handler struct {
	authService    service.AuthService
	relService     service.RelationshipService
	blogService    service.BlogService
	commentService service.CommentService
	reportService  service.ReportService
	tokens         *auth.TokenManager
}

func NewHandler(
	authService service.AuthService,
	relService service.RelationshipService,
	blogService service.BlogService,
	commentService service.CommentService,
	reportService service.ReportService,
	tokens *auth.TokenManager,
) *Handler {
	return &Handler{
		authService:    authService,
		relService:     relService,
		blogService:    blogService,
		commentService: commentService,
		reportService:  reportService,
		tokens:         tokens,
	}
}

// session 受保护路由上的当前身份
func session(c *gin.Context) (*model.Session, bool) {
	s, ok := middleware.SessionFrom(c)
	if !ok {
		response.Unauthorized(c, "login required")
	}
	return s, ok
}

// renderError 业务错误映射为 HTTP 状态码，其余按内部错误处理
func renderError(c *gin.Context, err error) {
	var (
		verr *service.ValidationError
		derr *service.DuplicateFieldError
	)
	switch {
	case errors.As(err, &verr):
		response.BadRequest(c, verr.Message)
	case errors.As(err, &derr):
		response.Conflict(c, derr.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(c, err.Error())
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrUnknownUser):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrAlreadyCommented):
		response.Conflict(c, err.Error())
	case errors.Is(err, service.ErrSelfComment), errors.Is(err, service.ErrSelfFollow):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrDailyLimitExceeded):
		response.TooManyRequests(c, err.Error())
	default:
		response.InternalError(c, err)
	}
}
