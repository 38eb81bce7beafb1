package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/bloghub/internal/model"
	"github.com/d60-Lab/bloghub/internal/service"
	"github.com/d60-Lab/bloghub/pkg/response"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	User      model.Session `json:"user"`
}

// Signup 注册
// @Summary 注册用户
// @Tags 用户
// @Accept json
// @Produce json
// @Param request body service.RegisterInput true "注册信息"
// @Success 201 {object} response.Response{data=model.User}
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/v1/auth/signup [post]
func (h *Handler) Signup(c *gin.Context) {
	var req service.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	u, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		renderError(c, err)
		return
	}
	response.Created(c, u)
}

// Login 登录并签发 token
// @Summary 登录
// @Tags 用户
// @Accept json
// @Produce json
// @Param request body loginRequest true "用户名和密码"
// @Success 200 {object} response.Response{data=loginResponse}
// @Failure 401 {object} response.Response
// @Router /api/v1/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	s, err := h.authService.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		renderError(c, err)
		return
	}
	token, exp, err := h.tokens.Issue(s)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, loginResponse{Token: token, ExpiresAt: exp, User: *s})
}

// Me 当前登录用户
// @Summary 当前用户
// @Tags 用户
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=model.Session}
// @Router /api/v1/auth/me [get]
func (h *Handler) Me(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}
	cur, err := h.authService.Session(c.Request.Context(), s.Username)
	if err != nil {
		renderError(c, err)
		return
	}
	response.Success(c, gin.H{"username": cur.Username, "display_name": cur.DisplayName()})
}
