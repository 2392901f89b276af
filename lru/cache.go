// Package lru memoizes annotated file diffs in a bounded least-recently-used
// cache built on hashicorp/golang-lru.
package lru

import (
	"strings"
	"sync"

	"github.com/hashicorp/golang-lru/v2/simplelru"
	"github.com/revi-dev/revi"
)

// DefaultCapacity is the number of results kept when no capacity is configured.
const DefaultCapacity = 100

// Cache is a fixed-capacity LRU map from request keys to diff results.
// It is safe for concurrent use.
type Cache struct {
	mu  sync.Mutex
	lru *simplelru.LRU[revi.CacheKey, *revi.FileDiffResult]
}

// NewCache creates a cache holding at most capacity results.
func NewCache(capacity int) (*Cache, error) {
	l, err := simplelru.NewLRU[revi.CacheKey, *revi.FileDiffResult](capacity, nil)
	if err != nil {
		return nil, err
	}
	return &Cache{lru: l}, nil
}

// Get returns the result stored under key and marks it most recently used.
func (c *Cache) Get(key revi.CacheKey) (*revi.FileDiffResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Get(key)
}

// Add stores result under key, evicting the least recently used entry when
// the cache is full.
func (c *Cache) Add(key revi.CacheKey, result *revi.FileDiffResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Add(key, result)
}

// InvalidateRepository removes every entry whose repository root is
// repoRoot or lies beneath it, and returns how many were removed.
// An empty repoRoot matches nothing; use Clear to drop every entry.
func (c *Cache) InvalidateRepository(repoRoot string) int {
	if repoRoot == "" {
		return 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	prefix := strings.TrimSuffix(repoRoot, "/") + "/"
	removed := 0
	for _, key := range c.lru.Keys() {
		if key.RepoRoot == repoRoot || strings.HasPrefix(key.RepoRoot, prefix) {
			c.lru.Remove(key)
			removed++
		}
	}
	return removed
}

// Clear removes every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Purge()
}

// Len returns the number of cached results.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}
