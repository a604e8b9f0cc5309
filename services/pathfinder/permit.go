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

import "context"

// PermitPool is a counting semaphore gating simultaneous in-flight HTTP
// exchanges against the link source. One permit is held around each
// individual exchange, including each retry attempt and each pagination
// page, so fetches for different articles interleave under one global
// limit.
//
// Thread Safety: Safe for concurrent use.
type PermitPool struct {
	ch chan struct{}
}

// NewPermitPool creates a permit pool with the given capacity.
// Capacities below 1 are clamped to 1.
func NewPermitPool(capacity int) *PermitPool {
	if capacity <= 0 {
		capacity = 1
	}
	return &PermitPool{
		ch: make(chan struct{}, capacity),
	}
}

// Acquire takes a permit, blocking until one is available.
//
// Outputs:
//   - error: Non-nil if the context was cancelled while waiting.
func (p *PermitPool) Acquire(ctx context.Context) error {
	select {
	case p.ch <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release returns a permit to the pool.
// Must be called exactly once after a successful Acquire.
func (p *PermitPool) Release() {
	select {
	case <-p.ch:
	default:
		// Pool was empty - this is a bug in caller
		panic("pathfinder: permit released without acquire")
	}
}

// Available returns the number of free permits.
func (p *PermitPool) Available() int {
	return cap(p.ch) - len(p.ch)
}
