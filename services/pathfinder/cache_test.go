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
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// stubSource is a map-backed LinkSource that counts calls per title.
type stubSource struct {
	links map[string][]string
	err   error
	delay time.Duration
	calls int64
}

func (s *stubSource) Links(ctx context.Context, title string) ([]string, error) {
	atomic.AddInt64(&s.calls, 1)
	if s.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.delay):
		}
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.links[title], nil
}

func (s *stubSource) callCount() int64 {
	return atomic.LoadInt64(&s.calls)
}

func TestFetcherCachesFirstFetch(t *testing.T) {
	source := &stubSource{links: map[string][]string{
		"Pizza": {"Cheese", "Tomato", "Italy"},
	}}
	fetcher := NewFetcher(source)

	links, err := fetcher.Fetch(context.Background(), "Pizza")
	require.NoError(t, err)
	assert.Equal(t, []string{"Cheese", "Tomato", "Italy"}, links)
	assert.True(t, fetcher.Cached("Pizza"))
	assert.EqualValues(t, 1, source.callCount())
}

func TestFetcherHitIssuesNoRequests(t *testing.T) {
	source := &stubSource{links: map[string][]string{
		"Pizza": {"Cheese"},
	}}
	fetcher := NewFetcher(source)

	first, err := fetcher.Fetch(context.Background(), "Pizza")
	require.NoError(t, err)

	second, err := fetcher.Fetch(context.Background(), "Pizza")
	require.NoError(t, err)

	assert.EqualValues(t, 1, source.callCount(), "cache hit must not touch the source")
	assert.Equal(t, first, second, "cached edge set must be returned unchanged")

	hits, misses := fetcher.Stats()
	assert.EqualValues(t, 1, hits)
	assert.EqualValues(t, 1, misses)
}

func TestFetcherCollapsesConcurrentFetches(t *testing.T) {
	source := &stubSource{
		links: map[string][]string{"Pizza": {"Cheese"}},
		delay: 10 * time.Millisecond,
	}
	fetcher := NewFetcher(source)

	var g errgroup.Group
	for i := 0; i < 8; i++ {
		g.Go(func() error {
			links, err := fetcher.Fetch(context.Background(), "Pizza")
			if err != nil {
				return err
			}
			if len(links) != 1 || links[0] != "Cheese" {
				return errors.New("unexpected links")
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.EqualValues(t, 1, source.callCount(), "concurrent fetches of one title must collapse")
}

func TestFetcherDoesNotCacheErrors(t *testing.T) {
	source := &stubSource{err: ErrFetchFailed}
	fetcher := NewFetcher(source)

	_, err := fetcher.Fetch(context.Background(), "Pizza")
	require.ErrorIs(t, err, ErrFetchFailed)
	assert.False(t, fetcher.Cached("Pizza"), "failed fetches must not create cache entries")

	// A later fetch tries the source again.
	source.err = nil
	source.links = map[string][]string{"Pizza": {"Cheese"}}
	links, err := fetcher.Fetch(context.Background(), "Pizza")
	require.NoError(t, err)
	assert.Equal(t, []string{"Cheese"}, links)
}

func TestFetcherDistinctTitlesFetchIndependently(t *testing.T) {
	source := &stubSource{links: map[string][]string{
		"Pizza":     {"Cheese"},
		"Chocolate": {"Cocoa"},
	}}
	fetcher := NewFetcher(source)

	_, err := fetcher.Fetch(context.Background(), "Pizza")
	require.NoError(t, err)
	_, err = fetcher.Fetch(context.Background(), "Chocolate")
	require.NoError(t, err)

	assert.EqualValues(t, 2, source.callCount())
	assert.True(t, fetcher.Cached("Pizza"))
	assert.True(t, fetcher.Cached("Chocolate"))
}
