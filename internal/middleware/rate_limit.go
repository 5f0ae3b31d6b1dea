package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/sanchezegido/recipedia/internal/i18n"
	"github.com/sanchezegido/recipedia/internal/types"
)

// RateLimitConfig defines configuration for rate limiting
type RateLimitConfig struct {
	// Window is the time window for rate limiting
	Window time.Duration
	// Limit is the maximum number of requests allowed in the window
	Limit int
	// Key prefix for Redis keys
	KeyPrefix string
}

// RateLimiter counts requests per user in fixed Redis windows
type RateLimiter struct {
	redis   redis.Cmdable
	config  RateLimitConfig
	catalog *i18n.Catalog
	logger  *zap.Logger
	now     func() time.Time
}

// NewRateLimiter creates a new rate limiter instance
func NewRateLimiter(client redis.Cmdable, config RateLimitConfig, catalog *i18n.Catalog, logger *zap.Logger) *RateLimiter {
	if config.KeyPrefix == "" {
		config.KeyPrefix = "rate_limit"
	}
	return &RateLimiter{
		redis:   client,
		config:  config,
		catalog: catalog,
		logger:  logger.With(zap.String("component", "rate_limiter")),
		now:     time.Now,
	}
}

// Middleware enforces the limit on the user resolved by EnsureUser. A Redis
// failure lets the request through.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			abort(c, rl.catalog, http.StatusUnauthorized, "MISSING_TOKEN")
			return
		}

		allowed, remaining, resetTime, err := rl.IsAllowed(c.Request.Context(), user.ID.String())
		if err != nil {
			rl.logger.Warn("rate limit check failed", zap.String("user_id", user.ID.String()), zap.Error(err))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

		if !allowed {
			retry := int(resetTime.Sub(rl.now()).Seconds())
			if retry < 1 {
				retry = 1
			}
			c.Header("Retry-After", strconv.Itoa(retry))
			lang := rl.catalog.Match(c.GetHeader("Accept-Language"))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, types.ErrorResponse{
				Code:    "RATE_LIMITED",
				Message: rl.catalog.Message(lang, "rate_limited"),
			})
			return
		}

		c.Next()
	}
}

// IsAllowed checks if a request from the given user is allowed
// Returns: allowed, remaining requests, reset time, error
func (rl *RateLimiter) IsAllowed(ctx context.Context, userID string) (bool, int, time.Time, error) {
	windowStart := rl.now().Truncate(rl.config.Window)
	key := fmt.Sprintf("%s:%s:%d", rl.config.KeyPrefix, userID, windowStart.Unix())

	pipe := rl.redis.TxPipeline()
	incrCmd := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, rl.config.Window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, time.Time{}, err
	}

	count := int(incrCmd.Val())
	remaining := rl.config.Limit - count
	if remaining < 0 {
		remaining = 0
	}
	return count <= rl.config.Limit, remaining, windowStart.Add(rl.config.Window), nil
}
