package testhelpers

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

// ErrCacheDown is returned by a FakeCache switched into failure mode
var ErrCacheDown = errors.New("cache unavailable")

// FakeCache is an in-memory cache.Cache that remembers TTLs and can be made to fail
type FakeCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	ttls    map[string]time.Duration
	failing bool
	deletes [][]string
}

func NewFakeCache() *FakeCache {
	return &FakeCache{
		entries: map[string][]byte{},
		ttls:    map[string]time.Duration{},
	}
}

func (f *FakeCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return nil, false, ErrCacheDown
	}
	v, ok := f.entries[key]
	return v, ok, nil
}

func (f *FakeCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return ErrCacheDown
	}
	f.entries[key] = append([]byte(nil), value...)
	f.ttls[key] = ttl
	return nil
}

func (f *FakeCache) Delete(_ context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, append([]string(nil), keys...))
	if f.failing {
		return ErrCacheDown
	}
	for _, k := range keys {
		delete(f.entries, k)
		delete(f.ttls, k)
	}
	return nil
}

// Fail toggles failure mode; every call returns ErrCacheDown while on
func (f *FakeCache) Fail(on bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failing = on
}

// Has reports whether key is currently stored
func (f *FakeCache) Has(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.entries[key]
	return ok
}

// TTL returns the ttl key was written with
func (f *FakeCache) TTL(key string) time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ttls[key]
}

// Put seeds an entry directly
func (f *FakeCache) Put(key string, value []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[key] = value
}

// Keys returns the stored keys in sorted order
func (f *FakeCache) Keys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	keys := make([]string, 0, len(f.entries))
	for k := range f.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Deletes returns every Delete call's keys in call order
func (f *FakeCache) Deletes() [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]string(nil), f.deletes...)
}
