// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package pathfinder

import (
	"context"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// Fetcher memoizes LinkSource results for the lifetime of one exploration
// run. Entries are keyed by the literal article title, created lazily on
// first fetch, and never invalidated or refetched within the run.
//
// Concurrent fetches of the same title are collapsed by singleflight:
// first-writer-wins, later callers observe the first writer's published
// result. Fetch errors are not cached.
//
// Thread Safety: Safe for concurrent use.
type Fetcher struct {
	source LinkSource

	mu     sync.RWMutex
	cache  map[string][]string
	flight singleflight.Group

	hits   int64
	misses int64
}

// NewFetcher creates a run-scoped cache-backed fetcher over source.
func NewFetcher(source LinkSource) *Fetcher {
	return &Fetcher{
		source: source,
		cache:  make(map[string][]string),
	}
}

// Fetch returns the outgoing links of title, from cache when present.
//
// A cache hit performs no network activity and returns the stored slice
// unchanged. On a miss, exactly one underlying Links call runs per title
// regardless of concurrent callers; the result is stored before it is
// returned.
func (f *Fetcher) Fetch(ctx context.Context, title string) ([]string, error) {
	f.mu.RLock()
	links, ok := f.cache[title]
	f.mu.RUnlock()
	if ok {
		atomic.AddInt64(&f.hits, 1)
		recordCacheHit(ctx)
		return links, nil
	}

	result, err, _ := f.flight.Do(title, func() (interface{}, error) {
		// Re-check under flight: an earlier winner may have published
		// between our read and the Do call.
		f.mu.RLock()
		cached, ok := f.cache[title]
		f.mu.RUnlock()
		if ok {
			return cached, nil
		}

		atomic.AddInt64(&f.misses, 1)
		fetched, err := f.source.Links(ctx, title)
		if err != nil {
			return nil, err
		}

		f.mu.Lock()
		f.cache[title] = fetched
		f.mu.Unlock()
		return fetched, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]string), nil
}

// Cached reports whether an entry exists for title.
func (f *Fetcher) Cached(title string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, ok := f.cache[title]
	return ok
}

// Stats returns the cache hit and miss counts for the run.
func (f *Fetcher) Stats() (hits, misses int64) {
	return atomic.LoadInt64(&f.hits), atomic.LoadInt64(&f.misses)
}
