package solver

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/SeamusWaldron/rubiksify"
	"github.com/SeamusWaldron/rubiksify/internal/logging"
)

// Cache memoizes a Solver by exact cube definition. Entries live as long as
// the Cache and are never evicted. Failures are not stored, so a later call
// retries. Concurrent misses on the same definition share one request.
type Cache struct {
	backend Solver
	logger  *slog.Logger

	mu      sync.RWMutex
	entries map[rubiksify.CubeDefn]string
	sf      singleflight.Group

	hits   atomic.Int64
	misses atomic.Int64
	shared atomic.Int64
}

// NewCache wraps backend with a memoizing cache.
func NewCache(backend Solver, logger *slog.Logger) *Cache {
	return &Cache{
		backend: backend,
		logger:  logging.OrDiscard(logger),
		entries: make(map[rubiksify.CubeDefn]string),
	}
}

// Solve returns the cached generator for defn, or asks the backend once.
func (c *Cache) Solve(ctx context.Context, defn rubiksify.CubeDefn) (string, error) {
	if gen, ok := c.lookup(defn); ok {
		c.hits.Add(1)
		return gen, nil
	}
	c.misses.Add(1)

	// The shared call must not be aborted by whichever waiter arrived first.
	ch := c.sf.DoChan(string(defn), func() (any, error) {
		if gen, ok := c.lookup(defn); ok {
			return gen, nil
		}
		gen, err := c.backend.Solve(context.WithoutCancel(ctx), defn)
		if err != nil {
			c.logger.WarnContext(ctx, "solve failed", "defn", string(defn), "error", err)
			return "", err
		}
		c.mu.Lock()
		c.entries[defn] = gen
		c.mu.Unlock()
		return gen, nil
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Shared {
			c.shared.Add(1)
		}
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

func (c *Cache) lookup(defn rubiksify.CubeDefn) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	gen, ok := c.entries[defn]
	return gen, ok
}

// Len returns the number of cached generators.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats reports cache hits, misses and misses served by a shared request.
type Stats struct {
	Hits   int64
	Misses int64
	Shared int64
}

// Stats returns a snapshot of the cache counters.
func (c *Cache) Stats() Stats {
	return Stats{Hits: c.hits.Load(), Misses: c.misses.Load(), Shared: c.shared.Load()}
}
