package service

import "context"

// Invalidator 写操作提交后通知报表缓存失效
type Invalidator interface {
	Invalidate(ctx context.Context)
}

// ReportCache 报表缓存。Generation 在一次读取中只取一次，
// 写入使用同一代次，保证失效之后的旧结果不会被再次读到
type ReportCache interface {
	Invalidator
	// Generation ok=false 表示缓存不可用，直接查库
	Generation(ctx context.Context) (gen int64, ok bool)
	Get(ctx context.Context, gen int64, key string, dest any) bool
	Set(ctx context.Context, gen int64, key string, v any)
}

func invalidate(ctx context.Context, inv Invalidator) {
	if inv != nil {
		inv.Invalidate(ctx)
	}
}

func cached[T any](ctx context.Context, c ReportCache, key string, load func(context.Context) (T, error)) (T, error) {
	if c == nil {
		return load(ctx)
	}
	gen, ok := c.Generation(ctx)
	if !ok {
		return load(ctx)
	}
	var out T
	if c.Get(ctx, gen, key, &out) {
		return out, nil
	}
	out, err := load(ctx)
	if err != nil {
		return out, err
	}
	c.Set(ctx, gen, key, out)
	return out, nil
}
