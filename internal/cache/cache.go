package cache

import (
	"strings"
	"sync"
	"time"
)

type entry struct {
	value    any
	storedAt time.Time
	ttl      time.Duration
}

func (e entry) expired(now time.Time) bool {
	return now.Sub(e.storedAt) > e.ttl
}

// Cache is a process-wide key/value cache with an independent TTL per
// entry. Values are treated as immutable once stored; writers replace
// the whole value, never mutate in place. Expired entries are evicted
// lazily on the next Get.
type Cache struct {
	mu         sync.Mutex
	entries    map[string]entry
	defaultTTL time.Duration
}

func New(defaultTTL time.Duration) *Cache {
	return &Cache{entries: map[string]entry{}, defaultTTL: defaultTTL}
}

// Set stores value under key. ttl <= 0 means the cache default.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	c.mu.Lock()
	c.entries[key] = entry{value: value, storedAt: time.Now(), ttl: ttl}
	c.mu.Unlock()
}

// Get returns the live value for key. An expired or absent key reports
// false, and a stale entry is removed as a side effect.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if e.expired(time.Now()) {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = map[string]entry{}
	c.mu.Unlock()
}

// Invalidate removes every key containing pattern. An empty pattern
// clears the whole cache.
func (c *Cache) Invalidate(pattern string) {
	if pattern == "" {
		c.Clear()
		return
	}
	c.mu.Lock()
	for k := range c.entries {
		if strings.Contains(k, pattern) {
			delete(c.entries, k)
		}
	}
	c.mu.Unlock()
}

// Len reports the number of stored entries, expired or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
