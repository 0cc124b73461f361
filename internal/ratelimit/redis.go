package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces rate-limit counters in Redis.
const keyPrefix = "portfolio:ratelimit:"

// Redis is a fixed-window limiter shared by every server instance that
// points at the same Redis database.
type Redis struct {
	rdb   *redis.Client
	limit int
}

// NewRedis creates a limiter allowing limit requests per key per Window.
func NewRedis(rdb *redis.Client, limit int) *Redis {
	return &Redis{rdb: rdb, limit: limit}
}

var _ Limiter = (*Redis)(nil)

// Allow increments the key's counter for the current window. The first hit
// in a window, or a counter left without expiry, sets the window's TTL.
func (l *Redis) Allow(ctx context.Context, key string) (Decision, error) {
	k := keyPrefix + key

	pipe := l.rdb.Pipeline()
	incr := pipe.Incr(ctx, k)
	ttl := pipe.PTTL(ctx, k)
	if _, err := pipe.Exec(ctx); err != nil {
		return Decision{}, fmt.Errorf("%w: %w", ErrBackend, err)
	}

	retry := ttl.Val()
	if incr.Val() == 1 || retry < 0 {
		if err := l.rdb.PExpire(ctx, k, Window).Err(); err != nil {
			return Decision{}, fmt.Errorf("%w: %w", ErrBackend, err)
		}
		retry = Window
	}

	if incr.Val() <= int64(l.limit) {
		return Decision{Allowed: true}, nil
	}
	if retry <= 0 {
		retry = time.Second
	}
	return Decision{Allowed: false, RetryAfter: retry}, nil
}
