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
	"fmt"

	"github.com/google/uuid"

	"github.com/AleutianAI/WikiTrail/pkg/logging"
)

// EdgeFetcher is what the Explorer needs from the fetch layer.
// *Fetcher implements it; tests substitute stubs.
type EdgeFetcher interface {
	Fetch(ctx context.Context, title string) ([]string, error)
}

// Explorer drives one exploration run: termination check, edge fetch,
// oracle decision, validation, advance.
//
// The Explorer holds no state between runs; each Explore call builds its
// own path, visited history, and run ID. Edge caching lives in the
// injected EdgeFetcher, which is what scopes the cache to a run.
type Explorer struct {
	fetcher       EdgeFetcher
	oracle        Oracle
	maxIterations int
	logger        *logging.Logger
}

// ExplorerOption configures an Explorer.
type ExplorerOption func(*Explorer)

// WithMaxIterations bounds the number of navigation steps per run.
func WithMaxIterations(n int) ExplorerOption {
	return func(e *Explorer) {
		if n > 0 {
			e.maxIterations = n
		}
	}
}

// NewExplorer creates an Explorer over the given fetch layer and oracle.
func NewExplorer(fetcher EdgeFetcher, oracle Oracle, logger *logging.Logger, opts ...ExplorerOption) *Explorer {
	if logger == nil {
		logger = logging.Default()
	}
	e := &Explorer{
		fetcher:       fetcher,
		oracle:        oracle,
		maxIterations: DefaultMaxIterations,
		logger:        logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Explore walks from start toward target, one oracle-chosen link per
// iteration, until the target is reached or the iteration budget runs out.
//
// Outputs:
//   - *Result: the accumulated path and outcome. Returned for both
//     OutcomeTargetReached and OutcomeMaxIterations; never nil on success.
//   - error: ErrInvalidInput, a fetch-layer error (ErrFetchFailed,
//     ErrMaxRetriesExceeded), ErrOracleFailed, or context cancellation.
//     Any error aborts the run with no partial result.
//
// Behavior notes:
//
//   - Start and target are compared under whitespace/case normalization,
//     so Explore(ctx, "Pizza", "pizza") returns immediately with a
//     single-element path, zero fetches, and zero oracle calls.
//   - An article with no usable outgoing links stalls the iteration: the
//     path does not grow, but the iteration budget is still consumed.
//     Repeated dead ends can therefore exhaust the budget without
//     progress; Result.Stalls makes that visible.
//   - An oracle proposal that is not an exact member of the candidate set
//     is replaced by the first candidate (first-seen fetch order), with a
//     diagnostic. The oracle's authority is advisory only.
func (e *Explorer) Explore(ctx context.Context, start, target string) (*Result, error) {
	if ctx == nil {
		return nil, ErrInvalidInput
	}
	if start == "" || target == "" {
		return nil, fmt.Errorf("%w: start and target must be non-empty", ErrInvalidInput)
	}

	runID := uuid.NewString()[:8]
	log := e.logger.With("run_id", runID, "start", start, "target", target)
	log.Info("starting exploration", "max_iterations", e.maxIterations)
	recordExploration(ctx)

	current := start
	path := []string{start}
	visited := []string{start}
	result := &Result{RunID: runID}

	for iteration := 1; iteration <= e.maxIterations; iteration++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if sameTitle(current, target) {
			result.Path = path
			result.Outcome = OutcomeTargetReached
			log.Info("target reached", "iterations", result.Iterations, "path_length", len(path))
			return result, nil
		}
		result.Iterations = iteration

		links, err := e.fetcher.Fetch(ctx, current)
		if err != nil {
			return nil, err
		}
		if len(links) == 0 {
			result.Stalls++
			recordStall(ctx)
			log.Warn("no usable links on page, iteration stalled",
				"page", current, "iteration", iteration)
			continue
		}

		nc := NavigationContext{
			Current:    current,
			Target:     target,
			Visited:    append([]string(nil), visited...),
			Candidates: links,
		}
		choice, err := e.oracle.Decide(ctx, nc)
		if err != nil {
			return nil, err
		}

		if !containsTitle(links, choice) {
			result.Fallbacks++
			recordFallback(ctx)
			log.Warn("oracle proposed a link not on the page, falling back",
				"proposed", choice, "fallback", links[0], "iteration", iteration)
			choice = links[0]
		}

		path = append(path, choice)
		visited = append(visited, choice)
		current = choice
		log.Info("moving to next page",
			"page", current, "iteration", iteration, "path_length", len(path))
	}

	result.Path = path
	result.Outcome = OutcomeMaxIterations
	log.Info("iteration budget exhausted",
		"iterations", result.Iterations, "path_length", len(path),
		"stalls", result.Stalls, "fallbacks", result.Fallbacks)
	return result, nil
}

// containsTitle reports whether title is an exact element of links.
func containsTitle(links []string, title string) bool {
	for _, link := range links {
		if link == title {
			return true
		}
	}
	return false
}
