package cache_test

import (
	"context"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sanchezegido/recipedia/internal/cache"
	"github.com/sanchezegido/recipedia/internal/testhelpers"
)

func TestRedisCache(t *testing.T) {
	client := testhelpers.SetupRedis(t)
	ctx := context.Background()

	c, err := cache.NewRedisCache(client, time.Minute, cache.DefaultBreakerConfig(), zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, c.Ping(ctx))

	_, ok, err := c.Get(ctx, cache.RecipeKey("missing"))
	require.NoError(t, err)
	assert.False(t, ok, "redis.Nil must read as a miss")

	for _, key := range cache.RecipeKeys("r1") {
		require.NoError(t, c.Set(ctx, key, []byte(key), 0))
	}
	require.NoError(t, c.Set(ctx, cache.RecipePageKey(0), []byte("page"), cache.PageTTL))

	ttl, err := client.TTL(ctx, cache.RecipePageKey(0)).Result()
	require.NoError(t, err)
	assert.LessOrEqual(t, ttl, cache.PageTTL)

	ttl, err = client.TTL(ctx, cache.RecipeKey("r1")).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, c.Delete(ctx, cache.RecipeKeys("r1")...))
	for _, key := range cache.RecipeKeys("r1") {
		_, ok, err := c.Get(ctx, key)
		require.NoError(t, err)
		assert.False(t, ok, key)
	}

	_, ok, err = c.Get(ctx, cache.RecipePageKey(0))
	require.NoError(t, err)
	assert.True(t, ok, "listing pages survive recipe eviction")
}

func TestRedisCacheBreakerOpensOnUnreachableServer(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	c, err := cache.NewRedisCache(client, time.Minute, cache.BreakerConfig{
		ConsecutiveFailures: 2,
		OpenTimeout:         time.Minute,
		HalfOpenRequests:    1,
	}, zap.NewNop())
	require.NoError(t, err)

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		_, _, err := c.Get(ctx, "k")
		assert.Error(t, err)
	}

	start := time.Now()
	_, _, err = c.Get(ctx, "k")
	assert.Error(t, err)
	assert.Less(t, time.Since(start), 50*time.Millisecond, "open breaker must fail fast")
}

// commandCounter counts commands by name before they reach the connection
type commandCounter struct {
	counts map[string]*atomic.Int32
}

func newCommandCounter(names ...string) *commandCounter {
	c := &commandCounter{counts: make(map[string]*atomic.Int32)}
	for _, n := range names {
		c.counts[n] = new(atomic.Int32)
	}
	return c
}

func (c *commandCounter) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return next(ctx, network, addr)
	}
}

func (c *commandCounter) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		if n, ok := c.counts[cmd.Name()]; ok {
			n.Add(1)
		}
		return next(ctx, cmd)
	}
}

func (c *commandCounter) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

func (c *commandCounter) count(name string) int32 {
	return c.counts[name].Load()
}

func TestRedisCacheDeleteBypassesOpenBreaker(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	counter := newCommandCounter("get", "del")
	client.AddHook(counter)

	c, err := cache.NewRedisCache(client, time.Minute, cache.BreakerConfig{
		ConsecutiveFailures: 1,
		OpenTimeout:         time.Minute,
		HalfOpenRequests:    1,
	}, zap.NewNop())
	require.NoError(t, err)

	ctx := context.Background()
	_, _, err = c.Get(ctx, "k")
	require.Error(t, err)
	require.Equal(t, int32(1), counter.count("get"))

	// Breaker is open now: reads are short-circuited
	_, _, err = c.Get(ctx, "k")
	assert.ErrorContains(t, err, "circuit breaker is open")
	assert.Equal(t, int32(1), counter.count("get"))

	err = c.Delete(ctx, cache.RecipeKeys("r1")...)
	assert.Error(t, err, "server is still unreachable")
	assert.NotContains(t, err.Error(), "circuit breaker is open")
	assert.Equal(t, int32(1), counter.count("del"), "eviction must reach redis while the breaker is open")
}

func TestNewRedisCacheValidates(t *testing.T) {
	_, err := cache.NewRedisCache(nil, time.Minute, cache.DefaultBreakerConfig(), nil)
	assert.ErrorIs(t, err, cache.ErrInvalidConfig)
}
