package cache

import (
	"context"
	"time"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/stores/cache"
)

// FetchWith is the cache-aside helper behind every cached endpoint. It
// checks the cache, and on a miss invokes fetch and stores the result under
// key for ttl. A nil cache and any cache read or write failure degrade to a
// plain fetch; fetch errors propagate untouched and nothing is stored.
func FetchWith[T any](ctx context.Context, c cache.Cache, key string, ttl time.Duration, fetch func(context.Context) (T, error)) (T, error) {
	if c == nil || ttl <= 0 {
		return fetch(ctx)
	}

	var cached T
	err := c.GetCtx(ctx, key, &cached)
	if err == nil {
		return cached, nil
	}
	if !c.IsNotFound(err) {
		logx.WithContext(ctx).Errorf("cache: read key=%s err=%v", key, err)
	}

	fresh, err := fetch(ctx)
	if err != nil {
		return fresh, err
	}
	if err := c.SetWithExpireCtx(ctx, key, fresh, ttl); err != nil {
		logx.WithContext(ctx).Errorf("cache: write key=%s err=%v", key, err)
	}
	return fresh, nil
}
