package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/viccon/sturdyc"
)

// MemoryConfig sizes the in-process backend
type MemoryConfig struct {
	Capacity           int
	NumShards          int
	TTL                time.Duration
	ShortTTL           time.Duration
	EvictionPercentage int
}

// DefaultMemoryConfig keeps 10k entries for ttl and listing pages for PageTTL
func DefaultMemoryConfig(ttl time.Duration) MemoryConfig {
	return MemoryConfig{
		Capacity:           10000,
		NumShards:          64,
		TTL:                ttl,
		ShortTTL:           PageTTL,
		EvictionPercentage: 10,
	}
}

func (c MemoryConfig) validate() error {
	switch {
	case c.Capacity <= 0:
		return fmt.Errorf("%w: capacity must be greater than 0", ErrInvalidConfig)
	case c.NumShards <= 0:
		return fmt.Errorf("%w: shards must be greater than 0", ErrInvalidConfig)
	case c.TTL <= 0 || c.ShortTTL <= 0:
		return fmt.Errorf("%w: ttl must be positive", ErrInvalidConfig)
	case c.EvictionPercentage < 1 || c.EvictionPercentage > 100:
		return fmt.Errorf("%w: eviction percentage must be between 1 and 100", ErrInvalidConfig)
	}
	return nil
}

// MemoryCache keeps entries in process using sturdyc. sturdyc fixes the TTL
// per client, so entries with a TTL at or below ShortTTL go to a second client.
type MemoryCache struct {
	long     *sturdyc.Client[[]byte]
	short    *sturdyc.Client[[]byte]
	shortTTL time.Duration
}

func NewMemoryCache(cfg MemoryConfig) (*MemoryCache, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &MemoryCache{
		long:     sturdyc.New[[]byte](cfg.Capacity, cfg.NumShards, cfg.TTL, cfg.EvictionPercentage),
		short:    sturdyc.New[[]byte](cfg.Capacity, cfg.NumShards, cfg.ShortTTL, cfg.EvictionPercentage),
		shortTTL: cfg.ShortTTL,
	}, nil
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	if v, ok := c.long.Get(key); ok {
		return v, true, nil
	}
	if v, ok := c.short.Get(key); ok {
		return v, true, nil
	}
	return nil, false, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl > 0 && ttl <= c.shortTTL {
		c.long.Delete(key)
		c.short.Set(key, value)
		return nil
	}
	c.short.Delete(key)
	c.long.Set(key, value)
	return nil
}

func (c *MemoryCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		c.long.Delete(k)
		c.short.Delete(k)
	}
	return nil
}

// Ping always succeeds for the in-process backend
func (c *MemoryCache) Ping(context.Context) error {
	return nil
}
