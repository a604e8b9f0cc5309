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
	"fmt"
	"time"
)

// RetryConfig configures throttle recovery for a single HTTP exchange.
type RetryConfig struct {
	// MaxAttempts is the maximum number of attempts for one exchange.
	// The MaxAttempts-th consecutive throttle fails the exchange.
	// Default: 5
	MaxAttempts int

	// InitialBackoff is the wait before the first retry.
	// Default: 2s (doubling per attempt: 2s, 4s, 8s, 16s)
	InitialBackoff time.Duration

	// BackoffFactor is the multiplier applied between retries.
	// Default: 2.0
	BackoffFactor float64
}

// DefaultRetryConfig returns the static tunables for link-source
// throttling: up to 5 attempts with 2^attempt-second waits.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:    5,
		InitialBackoff: 2 * time.Second,
		BackoffFactor:  2.0,
	}
}

// Validate checks the retry configuration.
func (c RetryConfig) Validate() error {
	if c.MaxAttempts < 1 {
		return fmt.Errorf("%w: max attempts must be >= 1", ErrInvalidInput)
	}
	if c.InitialBackoff <= 0 {
		return fmt.Errorf("%w: initial backoff must be positive", ErrInvalidInput)
	}
	if c.BackoffFactor < 1.0 {
		return fmt.Errorf("%w: backoff factor must be >= 1", ErrInvalidInput)
	}
	return nil
}

// ExchangeFunc performs one HTTP exchange attempt. It returns ErrThrottled
// (possibly wrapped) when the source throttled the attempt; any other
// error is terminal for the exchange.
type ExchangeFunc func(ctx context.Context, attempt int) error

// retryThrottled executes one logical exchange, retrying only on
// throttling with exponential backoff. It is deliberately separate from
// the pagination loop in WikipediaSource.Links so each can be tested on
// its own.
//
// Outputs:
//   - error: nil on success; ErrMaxRetriesExceeded when every attempt was
//     throttled; the attempt's own error otherwise.
//
// The backoff sleep is context-aware: cancellation unwinds immediately
// without holding any permit (permits are acquired inside fn, per
// attempt).
func retryThrottled(ctx context.Context, config RetryConfig, fn ExchangeFunc) error {
	backoff := config.InitialBackoff

	for attempt := 1; attempt <= config.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := fn(ctx, attempt)
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrThrottled) {
			return err
		}
		if attempt == config.MaxAttempts {
			return fmt.Errorf("%w: throttled %d consecutive times", ErrMaxRetriesExceeded, config.MaxAttempts)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}

		backoff = time.Duration(float64(backoff) * config.BackoffFactor)
	}

	// Unreachable: the loop always returns.
	return fmt.Errorf("%w: throttled %d consecutive times", ErrMaxRetriesExceeded, config.MaxAttempts)
}
