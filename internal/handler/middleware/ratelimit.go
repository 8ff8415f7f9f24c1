package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"storefront-pricing/internal/handler/httperr"
	redisinfra "storefront-pricing/internal/infra/redis"
	"storefront-pricing/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

var ErrRateLimited = errs.New("rate limit exceeded")

type RateLimiter interface {
	Allow(ctx context.Context, key string) (redisinfra.Decision, error)
}

// RateLimit throttles by client IP. When the limiter backend is unreachable
// the request is let through.
func RateLimit(limiter RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			slog.Warn("rate limiter unavailable", "client_ip", c.ClientIP(), "error", err.Error())
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(decision.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(decision.Remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(decision.ResetAt.Unix(), 10))

		if !decision.Allowed {
			retryAfter := int(time.Until(decision.ResetAt).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			httperr.AbortWithError(c, http.StatusTooManyRequests, ErrRateLimited, "Too many requests", nil)
			return
		}
		c.Next()
	}
}
