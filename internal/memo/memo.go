// Package memo provides the explicit memoization layer for expensive
// intermediate tables. Keys embed the identity of every input dataset, so a
// changed source file produces a new key and the stale entry is simply
// never hit again.
package memo

import (
	"strings"
	"sync"
)

// Cache is a concurrency-safe string-keyed store for immutable values.
type Cache[T any] struct {
	mu      sync.RWMutex
	entries map[string]T
}

// New returns an empty cache.
func New[T any]() *Cache[T] {
	return &Cache[T]{entries: make(map[string]T)}
}

// Key builds a cache key from a stage name and the identities of its
// inputs (dataset IDs, view mode, parameters).
func Key(stage string, parts ...string) string {
	return stage + "|" + strings.Join(parts, "|")
}

// Get returns the cached value for the key.
func (c *Cache[T]) Get(key string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[key]
	return v, ok
}

// Put stores the value under the key.
func (c *Cache[T]) Put(key string, v T) {
	c.mu.Lock()
	c.entries[key] = v
	c.mu.Unlock()
}

// GetOrCompute returns the cached value, computing and storing it on a
// miss. The compute function may run more than once under contention; the
// first stored value wins.
func (c *Cache[T]) GetOrCompute(key string, compute func() T) T {
	if v, ok := c.Get(key); ok {
		return v
	}
	v := compute()
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.entries[key]; ok {
		return existing
	}
	c.entries[key] = v
	return v
}

// Len returns the number of cached entries.
func (c *Cache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
