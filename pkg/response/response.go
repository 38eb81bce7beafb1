// Package response 统一的 JSON 响应格式
package response

import (
	"net/http"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/bloghub/pkg/logger"
)

// Response 所有接口的返回体
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Code: 0, Message: "ok", Data: data})
}

// Created 201
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{Code: 0, Message: "created", Data: data})
}

// Fail 以 HTTP 状态码作为业务码
func Fail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, Response{Code: status, Message: msg})
}

func BadRequest(c *gin.Context, msg string)      { Fail(c, http.StatusBadRequest, msg) }
func Unauthorized(c *gin.Context, msg string)    { Fail(c, http.StatusUnauthorized, msg) }
func NotFound(c *gin.Context, msg string)        { Fail(c, http.StatusNotFound, msg) }
func Conflict(c *gin.Context, msg string)        { Fail(c, http.StatusConflict, msg) }
func TooManyRequests(c *gin.Context, msg string) { Fail(c, http.StatusTooManyRequests, msg) }

// InternalError 未分类的内部错误：记录日志并上报 Sentry，对外只返回通用信息
func InternalError(c *gin.Context, err error) {
	logger.Error("internal error",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Error(err))
	if hub := sentrygin.GetHubFromContext(c); hub != nil {
		hub.CaptureException(err)
	}
	Fail(c, http.StatusInternalServerError, "internal server error")
}
