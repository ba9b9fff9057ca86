package ratelimit

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// RedisLimiter counts requests per key in fixed windows so every replica
// behind the load balancer enforces the same budget.
type RedisLimiter struct {
	c      *redis.Client
	limit  int64
	window time.Duration
	prefix string
}

func NewRedisLimiter(addr string, limit int64, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		c:      redis.NewClient(&redis.Options{Addr: addr}),
		limit:  limit,
		window: window,
		prefix: "rl:",
	}
}

// Ping verifies the connection at startup.
func (rl *RedisLimiter) Ping(ctx context.Context) error {
	return errors.Wrap(rl.c.Ping(ctx).Err(), "redis ping")
}

// Allow increments the window counter; the TTL is only set when the key is
// created so a steady client still sees the window reset.
func (rl *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	pipe := rl.c.TxPipeline()
	incr := pipe.Incr(ctx, rl.prefix+key)
	pipe.ExpireNX(ctx, rl.prefix+key, rl.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, errors.Wrap(err, "redis ratelimit")
	}
	return incr.Val() <= rl.limit, nil
}

func (rl *RedisLimiter) Shutdown() {
	_ = rl.c.Close()
}
