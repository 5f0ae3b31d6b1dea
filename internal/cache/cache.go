// Package cache holds the key/value cache that fronts the recipe store:
// entity snapshots, rendered responses and listing pages.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrInvalidConfig is returned when a backend is built from unusable settings
var ErrInvalidConfig = errors.New("invalid cache configuration")

// Cache is the capability set the recipe service needs from a cache backend.
// A ttl of zero means the backend default.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// Pinger is implemented by backends that can report their health
type Pinger interface {
	Ping(ctx context.Context) error
}

// Noop is a cache that never stores anything
type Noop struct{}

func (Noop) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (Noop) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (Noop) Delete(context.Context, ...string) error                  { return nil }
