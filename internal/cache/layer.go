package cache

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sanchezegido/recipedia/internal/metrics"
)

// Layer is the best-effort front of a Cache. Backend failures are logged,
// counted and reported to the caller as misses; they never fail a request.
type Layer struct {
	backend Cache
	logger  *zap.Logger
	metrics *metrics.Collector
}

// NewLayer wraps backend. A nil backend disables caching.
func NewLayer(backend Cache, logger *zap.Logger, m *metrics.Collector) *Layer {
	if backend == nil {
		backend = Noop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Layer{
		backend: backend,
		logger:  logger.With(zap.String("component", "cache")),
		metrics: m,
	}
}

// Get returns the cached value, treating any backend error as a miss
func (l *Layer) Get(ctx context.Context, key string) ([]byte, bool) {
	ns := namespace(key)
	val, ok, err := l.backend.Get(ctx, key)
	if err != nil {
		l.logger.Warn("cache read failed, falling back to store", zap.String("key", key), zap.Error(err))
		l.metrics.CacheError("get")
		l.metrics.CacheMiss(ns)
		return nil, false
	}
	if !ok {
		l.metrics.CacheMiss(ns)
		return nil, false
	}
	l.metrics.CacheHit(ns)
	return val, true
}

// Set stores value; failures are logged and dropped
func (l *Layer) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := l.backend.Set(ctx, key, value, ttl); err != nil {
		l.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
		l.metrics.CacheError("set")
	}
}

// EvictRecipe drops the snapshot and every rendered response of a recipe
func (l *Layer) EvictRecipe(ctx context.Context, id string) {
	keys := RecipeKeys(id)
	if err := l.backend.Delete(ctx, keys...); err != nil {
		l.logger.Warn("cache eviction failed", zap.Strings("keys", keys), zap.Error(err))
		l.metrics.CacheError("delete")
	}
}

// Ping reports backend health when the backend supports it
func (l *Layer) Ping(ctx context.Context) error {
	if p, ok := l.backend.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

// namespace maps a key to a low-cardinality metric label
func namespace(key string) string {
	switch {
	case strings.HasPrefix(key, "recipes:page:"):
		return "page"
	case strings.Contains(key, ":response:"):
		return "response"
	default:
		return "recipe"
	}
}
