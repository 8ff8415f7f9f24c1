package bootstrap

import (
	"context"
	"log/slog"

	"storefront-pricing/internal/handler/middleware"
	redisinfra "storefront-pricing/internal/infra/redis"
	"storefront-pricing/internal/pkg/config"

	"go.uber.org/fx"
)

const verifyRateLimitPrefix = "ratelimit:coupons:verify"

var RedisModule = fx.Module("redis",
	fx.Provide(
		NewRedisClient,
		NewVerifyRateLimiter,
	),
)

// NewRedisClient only connects when rate limiting is enabled; a nil client
// means the limiter runs in pass-through mode.
func NewRedisClient(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (*redisinfra.Client, error) {
	if !cfg.RateLimit.Enabled {
		logger.Info("rate limiting disabled, skipping redis connection")
		return nil, nil
	}

	client, err := redisinfra.Connect(context.Background(), cfg.Redis)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})
	logger.Info("redis connected", "addr", cfg.Redis.Addr)
	return client, nil
}

func NewVerifyRateLimiter(client *redisinfra.Client, cfg config.Config, logger *slog.Logger) middleware.RateLimiter {
	if client == nil {
		return redisinfra.NewRateLimiter(nil, logger, cfg.RateLimit, verifyRateLimitPrefix)
	}
	return redisinfra.NewRateLimiter(client, logger, cfg.RateLimit, verifyRateLimitPrefix)
}
