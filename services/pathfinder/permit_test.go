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
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestPermitPoolBoundsConcurrency(t *testing.T) {
	const capacity = 3
	const workers = 20

	pool := NewPermitPool(capacity)
	var current, peak int32
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := pool.Acquire(context.Background()); err != nil {
				t.Errorf("Acquire failed: %v", err)
				return
			}
			defer pool.Release()

			n := atomic.AddInt32(&current, 1)
			for {
				p := atomic.LoadInt32(&peak)
				if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&current, -1)
		}()
	}
	wg.Wait()

	if peak > capacity {
		t.Errorf("peak concurrency = %d, want <= %d", peak, capacity)
	}
	if pool.Available() != capacity {
		t.Errorf("Available() = %d after all releases, want %d", pool.Available(), capacity)
	}
}

func TestPermitPoolAcquireCancellation(t *testing.T) {
	pool := NewPermitPool(1)
	if err := pool.Acquire(context.Background()); err != nil {
		t.Fatalf("initial acquire failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- pool.Acquire(ctx)
	}()

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Acquire error = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Acquire did not unwind on cancellation")
	}

	pool.Release()
}

func TestPermitPoolReleaseWithoutAcquirePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Release without Acquire did not panic")
		}
	}()
	NewPermitPool(1).Release()
}

func TestPermitPoolClampsCapacity(t *testing.T) {
	pool := NewPermitPool(0)
	if pool.Available() != 1 {
		t.Errorf("Available() = %d, want 1 (clamped)", pool.Available())
	}
}
