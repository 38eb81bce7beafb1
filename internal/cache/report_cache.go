// Package cache 报表结果的 Redis 旁路缓存。
//
// 每次写操作提交后对 reports:gen 自增；报表 key 中带有读取时的代次，
// 因此旧代次的结果在失效后不会再被读到，只等待 TTL 过期。
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/bloghub/pkg/logger"
)

const generationKey = "reports:gen"

// ReportCache 实现 service.ReportCache；client 为 nil 时所有操作直接穿透
type ReportCache struct {
	client *redis.Client
	ttl    time.Duration

	hits   atomic.Int64
	misses atomic.Int64
}

func NewReportCache(client *redis.Client, ttl time.Duration) *ReportCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &ReportCache{client: client, ttl: ttl}
}

func (c *ReportCache) Generation(ctx context.Context) (int64, bool) {
	if c == nil || c.client == nil {
		return 0, false
	}
	gen, err := c.client.Get(ctx, generationKey).Int64()
	switch {
	case err == redis.Nil:
		return 0, true
	case err != nil:
		logger.Warn("report cache unavailable", zap.Error(err))
		return 0, false
	}
	return gen, true
}

func (c *ReportCache) Get(ctx context.Context, gen int64, key string, dest any) bool {
	if c == nil || c.client == nil {
		return false
	}
	data, err := c.client.Get(ctx, c.key(gen, key)).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Warn("report cache get failed", zap.String("key", key), zap.Error(err))
		}
		c.misses.Add(1)
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		c.misses.Add(1)
		return false
	}
	c.hits.Add(1)
	return true
}

func (c *ReportCache) Set(ctx context.Context, gen int64, key string, v any) {
	if c == nil || c.client == nil {
		return
	}
	payload, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.key(gen, key), payload, c.ttl).Err(); err != nil {
		logger.Warn("report cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate 代次自增，使之前缓存的所有报表不可达
func (c *ReportCache) Invalidate(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Incr(ctx, generationKey).Err(); err != nil {
		logger.Warn("report cache invalidate failed", zap.Error(err))
	}
}

func (c *ReportCache) key(gen int64, key string) string {
	return fmt.Sprintf("reports:v%d:%s", gen, key)
}

// Counters 命中 / 未命中计数
func (c *ReportCache) Counters() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}
