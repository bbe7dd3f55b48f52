package cache

import (
	"sync"
	"time"
)

// Cache is a thread-safe in-memory store with per-entry expiration.
// Expired entries are dropped lazily on read.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
}

type entry struct {
	value     interface{}
	expiresAt time.Time
}

// NoExpiration keeps an entry until overwritten or deleted.
const NoExpiration time.Duration = 0

// New creates a new empty cache.
func New() *Cache {
	return &Cache{
		entries: make(map[string]entry),
	}
}

// Set adds an item to the cache with a specified key, value and expiration.
// A non-positive expiration stores the entry without expiry.
func (c *Cache) Set(key string, value interface{}, expiration time.Duration) {
	var expiresAt time.Time
	if expiration > 0 {
		expiresAt = time.Now().Add(expiration)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: value, expiresAt: expiresAt}
}

// Get retrieves the value associated with a key. Returns false if the key
// does not exist or the entry expired.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}

	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false
	}

	return e.value, true
}

// Delete removes an item from the cache.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Len returns the number of stored entries, including not-yet-collected
// expired ones.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
