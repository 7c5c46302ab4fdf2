// Package batch runs a function over a slice with a bounded number of
// concurrent invocations.
package batch

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// DefaultLimit is the concurrency ceiling used when limit is not positive.
const DefaultLimit = 250

// ProgressFunc is told how many invocations have finished out of total.
type ProgressFunc func(done, total int)

// Map calls fn for every item with at most limit calls in flight and returns
// the results in input order. The first failure cancels the context seen by
// the remaining calls and Map returns that error without partial results.
//
// onProgress, if non-nil, is called once per finished invocation, successful
// or not, and never concurrently with itself.
func Map[T, R any](ctx context.Context, items []T, limit int, fn func(context.Context, T) (R, error), onProgress ProgressFunc) ([]R, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	results := make([]R, len(items))
	if len(items) == 0 {
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	var (
		mu   sync.Mutex
		done int
	)
	report := func() {
		if onProgress == nil {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		done++
		onProgress(done, len(items))
	}

	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			defer report()

			r, err := fn(gctx, item)
			if err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
			results[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
