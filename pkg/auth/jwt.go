// Package auth 签发与校验会话 token（HS256）
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/d60-Lab/bloghub/internal/model"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims token 载荷：会话身份 + 标准字段
type Claims struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	jwt.RegisteredClaims
}

type TokenManager struct {
	secret []byte
	expire time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, expire time.Duration) *TokenManager {
	if expire <= 0 {
		expire = 24 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), expire: expire, now: time.Now}
}

// Issue 为会话签发 token，subject 为用户名
func (m *TokenManager) Issue(s *model.Session) (string, time.Time, error) {
	now := m.now()
	exp := now.Add(m.expire)
	claims := Claims{
		FirstName: s.FirstName,
		LastName:  s.LastName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return token, exp, nil
}

// Parse 校验签名与过期时间，还原会话身份
func (m *TokenManager) Parse(token string) (*model.Session, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(m.now))
	if err != nil || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return &model.Session{Username: claims.Subject, FirstName: claims.FirstName, LastName: claims.LastName}, nil
}
