package ratelimit

import (
	"adcraft-server/internal/observability"
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Limiter decides whether a request identified by key may proceed
type Limiter interface {
	Allow(ctx context.Context, key string, limit int) (Result, error)
}

// KeyFunc extracts the rate limit key from the request. Returning false skips
// rate limiting for that request.
type KeyFunc func(c *gin.Context) (string, bool)

// Middleware creates a Gin middleware allowing limit requests per minute per key
func Middleware(limiter Limiter, limit int, keyFn KeyFunc, logger *observability.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		key, ok := keyFn(c)
		if !ok {
			c.Next()
			return
		}

		result, err := limiter.Allow(ctx, key, limit)
		if err != nil {
			// Fail open: Meta enforces its own limits downstream
			logger.InfoWithError(ctx, "rate limit check failed", err)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", result.Limit))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", result.Remaining))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", result.ResetAt.Unix()))

		if !result.Allowed {
			retryAfter := (result.RetryAfterMs + 999) / 1000
			c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
			logger.Warn(ctx, "rate limit exceeded",
				observability.Field{Key: "limit", Value: result.Limit},
				observability.Field{Key: "retry_after_ms", Value: result.RetryAfterMs},
			)

			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "Rate limit exceeded",
				"code":        "RATE_LIMIT_EXCEEDED",
				"limit":       result.Limit,
				"retry_after": retryAfter,
				"reset_at":    result.ResetAt.Unix(),
			})
			return
		}

		c.Next()
	}
}
