package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/bloghub/internal/model"
	"github.com/d60-Lab/bloghub/pkg/auth"
	"github.com/d60-Lab/bloghub/pkg/response"
)

const sessionKey = "session"

// JWTAuth 解析 Authorization: Bearer <token>，把会话身份放入请求上下文
func JWTAuth(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			response.Unauthorized(c, "missing bearer token")
			return
		}
		s, err := tokens.Parse(strings.TrimSpace(token))
		if err != nil {
			response.Unauthorized(c, err.Error())
			return
		}
		c.Set(sessionKey, s)
		c.Next()
	}
}

// SessionFrom 取出 JWTAuth 写入的会话；只能用于受保护的路由
func SessionFrom(c *gin.Context) (*model.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil, false
	}
	s, ok := v.(*model.Session)
	return s, ok
}
