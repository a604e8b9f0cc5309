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

import "errors"

// Sentinel errors for the pathfinder package.
var (
	// ErrFetchFailed indicates the link source returned a non-success,
	// non-throttling status or an unparseable body. Not retried.
	ErrFetchFailed = errors.New("link fetch failed")

	// ErrThrottled indicates a single HTTP exchange was throttled (429).
	// Recovered locally via backoff up to the retry ceiling.
	ErrThrottled = errors.New("throttled by link source")

	// ErrMaxRetriesExceeded indicates throttling persisted past the retry
	// ceiling for one exchange. Aborts the run.
	ErrMaxRetriesExceeded = errors.New("max retries exceeded")

	// ErrOracleFailed indicates the decision oracle was unreachable or
	// returned an unusable reply. Aborts the run.
	ErrOracleFailed = errors.New("oracle decision failed")

	// ErrInvalidInput indicates invalid input was provided.
	ErrInvalidInput = errors.New("invalid input")
)
