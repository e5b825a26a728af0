package gallery

import (
	"context"
	"sync"
	"time"
)

// URLCache stores resolved URLs keyed by the original storage key.
type URLCache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, url string)
}

type cacheEntry struct {
	url       string
	expiresAt time.Time
}

// MemoryCache is an in-process URLCache whose entries expire after a fixed TTL.
type MemoryCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]cacheEntry
}

// CacheOption configures a MemoryCache.
type CacheOption func(*MemoryCache)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) CacheOption {
	return func(c *MemoryCache) { c.now = now }
}

// NewMemoryCache creates an empty cache.
func NewMemoryCache(ttl time.Duration, opts ...CacheOption) *MemoryCache {
	c := &MemoryCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns a live entry. Expired entries are evicted.
func (c *MemoryCache) Get(_ context.Context, key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return "", false
	}
	if !c.now().Before(e.expiresAt) {
		delete(c.entries, key)
		return "", false
	}
	return e.url, true
}

// Set stores url under key, replacing any previous entry.
func (c *MemoryCache) Set(_ context.Context, key, url string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{url: url, expiresAt: c.now().Add(c.ttl)}
}

// Len returns the number of stored entries, including expired ones not yet
// evicted.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
