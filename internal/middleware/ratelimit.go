package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/SscSPs/customer_payment_service/internal/apperrors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	redisstore "github.com/ulule/limiter/v3/drivers/store/redis"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// NewRateLimiter builds a limiter from a formatted rate such as "30-M".
// With a redis client the counters are shared by every replica; without one they are per process.
func NewRateLimiter(formattedRate string, rdb *redis.Client) (*limiter.Limiter, error) {
	rate, err := limiter.NewRateFromFormatted(formattedRate)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit %q: %w", formattedRate, err)
	}

	if rdb == nil {
		return limiter.New(memory.NewStore(), rate), nil
	}

	store, err := redisstore.NewStoreWithOptions(rdb, limiter.StoreOptions{Prefix: "payment_ledger_limiter"})
	if err != nil {
		return nil, fmt.Errorf("failed to create redis limiter store: %w", err)
	}
	return limiter.New(store, rate), nil
}

// RateLimit creates a Gin middleware for rate limiting requests by client IP.
func RateLimit(limiterInstance *limiter.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		logger := GetLoggerFromCtx(c.Request.Context())

		lctx, err := limiterInstance.Get(c.Request.Context(), ip)
		if err != nil {
			logger.Error("Failed to get rate limit context", slog.String("ip", ip), slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"code": apperrors.CodeUnknown, "message": "Internal server error during rate limit check"})
			return
		}

		if lctx.Reached {
			logger.Warn("Rate limit exceeded", slog.String("ip", ip), slog.Int64("limit", lctx.Limit))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"code": apperrors.CodeUnknown, "message": "Too many requests. Please try again later."})
			return
		}

		c.Next()
	}
}
