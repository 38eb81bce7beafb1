// Package sentry 初始化 Sentry 错误上报；DSN 为空时不启用
package sentry

import (
	"time"

	sentrygo "github.com/getsentry/sentry-go"

	"github.com/d60-Lab/bloghub/config"
)

// Init 返回是否启用及 flush 函数
func Init(cfg config.SentryConfig) (bool, func(), error) {
	if cfg.DSN == "" {
		return false, func() {}, nil
	}
	if err := sentrygo.Init(sentrygo.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
	}); err != nil {
		return false, func() {}, err
	}
	return true, func() { sentrygo.Flush(2 * time.Second) }, nil
}
