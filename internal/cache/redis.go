package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// BreakerConfig controls when the Redis circuit opens
type BreakerConfig struct {
	// ConsecutiveFailures trips the breaker once reached
	ConsecutiveFailures uint32
	// OpenTimeout is how long the breaker stays open before probing again
	OpenTimeout time.Duration
	// HalfOpenRequests is how many probes are let through while half-open
	HalfOpenRequests uint32
}

// DefaultBreakerConfig trips after five straight failures and retries after 30s
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		ConsecutiveFailures: 5,
		OpenTimeout:         30 * time.Second,
		HalfOpenRequests:    1,
	}
}

// RedisCache stores values in Redis behind a circuit breaker
type RedisCache struct {
	client     redis.Cmdable
	defaultTTL time.Duration
	breaker    *gobreaker.CircuitBreaker
}

// NewRedisCache creates a Redis backed cache. Entries written with a zero ttl
// expire after defaultTTL.
func NewRedisCache(client redis.Cmdable, defaultTTL time.Duration, cfg BreakerConfig, logger *zap.Logger) (*RedisCache, error) {
	if client == nil {
		return nil, fmt.Errorf("%w: redis client is required", ErrInvalidConfig)
	}
	if defaultTTL <= 0 {
		return nil, fmt.Errorf("%w: default ttl must be positive", ErrInvalidConfig)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "redis-cache",
		MaxRequests: cfg.HalfOpenRequests,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.ConsecutiveFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("cache circuit breaker changed state",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})

	return &RedisCache{
		client:     client,
		defaultTTL: defaultTTL,
		breaker:    breaker,
	}, nil
}

// Get returns the stored value. A missing key is a miss, not an error.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	res, err := c.breaker.Execute(func() (interface{}, error) {
		val, err := c.client.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return val, nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	val, _ := res.([]byte)
	if val == nil {
		return nil, false, nil
	}
	return val, true, nil
}

// Set stores value under key
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	_, err := c.breaker.Execute(func() (interface{}, error) {
		return nil, c.client.Set(ctx, key, value, ttl).Err()
	})
	if err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Delete removes every given key in one round trip. Evictions bypass the
// breaker: a skipped DEL would leave stale entries behind once it closes.
func (c *RedisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// Ping checks the connection without going through the breaker
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
