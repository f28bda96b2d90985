// Package cache provides an in-memory TTL cache for API responses.
//
// The HoYoLAB endpoints are heavily polled by consumers (dashboards, bots)
// and most of them serve data that only changes daily, so short-lived
// response caching keeps clients well under the service's rate limits.
package cache

import (
	"log/slog"
	"sync"
	"time"
)

// DefaultTTL is the lifetime applied to entries stored without an explicit TTL.
const DefaultTTL = 30 * time.Second

type entry struct {
	value     any
	expiresAt time.Time
}

// Cache is a mutex-guarded key/value store with per-entry expiry.
// Expired entries are dropped lazily on read and swept periodically.
type Cache struct {
	mu         sync.Mutex
	entries    map[string]entry
	defaultTTL time.Duration
	stop       chan struct{}
	stopOnce   sync.Once
}

// New creates a cache with the given default TTL and starts the sweep loop.
// A non-positive ttl falls back to DefaultTTL.
func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &Cache{
		entries:    make(map[string]entry),
		defaultTTL: ttl,
		stop:       make(chan struct{}),
	}
	go c.startCleanup()
	return c
}

// Set stores a value under key with the cache's default TTL.
func (c *Cache) Set(key string, value any) {
	c.SetWithTTL(key, value, c.defaultTTL)
}

// SetWithTTL stores a value with a custom TTL, overwriting any previous entry.
func (c *Cache) SetWithTTL(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	c.mu.Lock()
	c.entries[key] = entry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
	c.mu.Unlock()
	slog.Debug("cache set", "key", key, "ttl", ttl)
}

// Get returns the value stored under key, or false if absent or expired.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		slog.Debug("cache miss", "key", key)
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		delete(c.entries, key)
		slog.Debug("cache expired", "key", key)
		return nil, false
	}
	slog.Debug("cache hit", "key", key)
	return e.value, true
}

// Has reports whether key holds a live entry.
func (c *Cache) Has(key string) bool {
	_, ok := c.Get(key)
	return ok
}

// Del removes the given keys and returns how many live entries were removed.
func (c *Cache) Del(keys ...string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	removed := 0
	for _, key := range keys {
		e, ok := c.entries[key]
		if !ok {
			continue
		}
		delete(c.entries, key)
		if now.Before(e.expiresAt) {
			removed++
		}
	}
	return removed
}

// Stop terminates the background sweep loop. The cache remains usable.
func (c *Cache) Stop() {
	c.stopOnce.Do(func() { close(c.stop) })
}

func (c *Cache) startCleanup() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			now := time.Now()
			c.mu.Lock()
			for key, e := range c.entries {
				if now.After(e.expiresAt) {
					delete(c.entries, key)
				}
			}
			c.mu.Unlock()
		}
	}
}
