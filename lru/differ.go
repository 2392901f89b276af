package lru

import (
	"context"
	"log/slog"

	"github.com/revi-dev/revi"
)

// Compile-time interface verification.
var (
	_ revi.FileDiffer       = (*Differ)(nil)
	_ revi.CacheInvalidator = (*Differ)(nil)
)

// Differ wraps a FileDiffer with an in-memory LRU cache. Working-tree
// requests always go to the inner differ. Returned results may be shared
// between callers and must not be modified.
type Differ struct {
	inner  revi.FileDiffer
	cache  *Cache
	logger *slog.Logger
}

// NewDiffer creates a caching differ. A nil logger discards output.
func NewDiffer(inner revi.FileDiffer, cache *Cache, logger *slog.Logger) *Differ {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Differ{
		inner:  inner,
		cache:  cache,
		logger: logger,
	}
}

// FileDiff returns a cached result or delegates to the inner differ.
func (d *Differ) FileDiff(ctx context.Context, req revi.FileDiffRequest) (*revi.FileDiffResult, error) {
	if !req.Cacheable() {
		return d.inner.FileDiff(ctx, req)
	}

	key := req.CacheKey()
	if cached, ok := d.cache.Get(key); ok {
		d.logger.Debug("diff cache hit", "key", key.String())
		return cached, nil
	}

	// Cache miss - delegate to inner
	result, err := d.inner.FileDiff(ctx, req)
	if err != nil {
		return nil, err
	}
	d.logger.Debug("diff cache miss", "key", key.String())
	d.cache.Add(key, result)

	return result, nil
}

// InvalidateRepository implements revi.CacheInvalidator.
func (d *Differ) InvalidateRepository(repoRoot string) {
	n := d.cache.InvalidateRepository(repoRoot)
	d.logger.Debug("invalidated diff cache", "repo", repoRoot, "entries", n)
}

// Clear implements revi.CacheInvalidator.
func (d *Differ) Clear() {
	d.cache.Clear()
}
