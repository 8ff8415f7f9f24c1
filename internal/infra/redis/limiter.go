package redis

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"storefront-pricing/internal/pkg/config"
)

type counterStore interface {
	Incr(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error
	TTL(ctx context.Context, key string) (time.Duration, error)
}

type Decision struct {
	Allowed   bool
	Limit     int64
	Remaining int64
	ResetAt   time.Time
}

// RateLimiter counts requests per key in fixed windows. The window starts
// with the first request and the counter expires with it.
type RateLimiter struct {
	store   counterStore
	logger  *slog.Logger
	enabled bool
	limit   int64
	window  time.Duration
	prefix  string
}

func NewRateLimiter(store counterStore, logger *slog.Logger, cfg config.RateLimitConfig, prefix string) *RateLimiter {
	if store == nil || !cfg.Enabled || cfg.Limit <= 0 || cfg.Window <= 0 {
		return &RateLimiter{enabled: false, limit: cfg.Limit, window: cfg.Window}
	}
	return &RateLimiter{
		store:   store,
		logger:  logger,
		enabled: true,
		limit:   cfg.Limit,
		window:  cfg.Window,
		prefix:  prefix,
	}
}

func (r *RateLimiter) Enabled() bool {
	return r.enabled
}

func (r *RateLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	now := time.Now()
	if !r.enabled {
		return Decision{Allowed: true, Limit: r.limit, Remaining: r.limit, ResetAt: now.Add(r.window)}, nil
	}

	redisKey := r.makeKey(key)
	count, err := r.store.Incr(ctx, redisKey)
	if err != nil {
		return Decision{}, fmt.Errorf("rate limiter incr failed: %w", err)
	}

	if count == 1 {
		if err := r.store.Expire(ctx, redisKey, r.window); err != nil {
			r.logger.Warn("failed to set rate limit ttl", "key", redisKey, "error", err.Error())
		}
	}

	ttl, err := r.store.TTL(ctx, redisKey)
	if err != nil || ttl <= 0 {
		if err != nil {
			r.logger.Warn("failed to get rate limit ttl", "key", redisKey, "error", err.Error())
		}
		ttl = r.window
	}

	remaining := r.limit - count
	if remaining < 0 {
		remaining = 0
	}
	return Decision{
		Allowed:   count <= r.limit,
		Limit:     r.limit,
		Remaining: remaining,
		ResetAt:   now.Add(ttl),
	}, nil
}

func (r *RateLimiter) makeKey(key string) string {
	return fmt.Sprintf("%s:%s", r.prefix, strings.ReplaceAll(key, ":", "_"))
}
