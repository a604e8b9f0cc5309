// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package pathfinder walks the Wikipedia hyperlink graph from a start
// article toward a target article, asking an LLM oracle which outgoing
// link to follow at each step.
//
// The package is built from three layers:
//
//   - WikipediaSource/Fetcher: rate-limited, cache-backed link retrieval
//   - LLMOracle: renders navigation context into a prompt and parses the
//     oracle's proposed next article
//   - Explorer: the iteration state machine that validates proposals and
//     advances the path
//
// All state is scoped to one exploration run. Nothing is persisted.
package pathfinder

import "strings"

// Default tunables for an exploration run.
const (
	// DefaultMaxIterations bounds the number of navigation steps per run.
	DefaultMaxIterations = 100

	// DefaultFetchConcurrency is the permit pool size gating simultaneous
	// in-flight HTTP exchanges against the link source.
	DefaultFetchConcurrency = 5

	// DefaultSettleDelay is observed after each oracle call to respect the
	// oracle endpoint's own rate expectations.
	DefaultSettleDelay = 2 // seconds, see NewLLMOracle
)

// NavigationContext is the immutable input to one oracle decision.
type NavigationContext struct {
	// Current is the article the walk is standing on.
	Current string `json:"current"`

	// Target is the article the walk is trying to reach.
	Target string `json:"target"`

	// Visited is the full history of accepted articles in visiting order.
	// Duplicates are allowed.
	Visited []string `json:"visited"`

	// Candidates are the outgoing links of Current, deduplicated in
	// first-seen order and namespace-filtered.
	Candidates []string `json:"candidates"`
}

// Outcome classifies how an exploration run ended.
type Outcome int

const (
	// OutcomeTargetReached means the current article matched the target.
	OutcomeTargetReached Outcome = iota

	// OutcomeMaxIterations means the iteration budget ran out before the
	// target was reached. This is an ordinary result, not an error.
	OutcomeMaxIterations
)

// String returns the human-readable name of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeTargetReached:
		return "target_reached"
	case OutcomeMaxIterations:
		return "max_iterations"
	default:
		return "unknown"
	}
}

// Result is the record of one exploration run.
type Result struct {
	// RunID is a short unique identifier carried through log records.
	RunID string `json:"run_id"`

	// Path is the ordered sequence of accepted articles, starting with
	// the start article. Authoritative record of the run.
	Path []string `json:"path"`

	// Outcome classifies the terminal state.
	Outcome Outcome `json:"outcome"`

	// Iterations is the number of loop iterations consumed, including
	// stalled iterations that produced no path growth.
	Iterations int `json:"iterations"`

	// Stalls counts iterations where the current article had no usable
	// outgoing links.
	Stalls int `json:"stalls"`

	// Fallbacks counts oracle proposals that were rejected and replaced
	// by the first candidate.
	Fallbacks int `json:"fallbacks"`
}

// normalizeTitle folds an article title for target-equality testing only:
// surrounding whitespace trimmed, case folded, inner whitespace replaced
// with underscores. Cache keys and oracle prompts always use the literal
// title.
func normalizeTitle(title string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(title)), " ", "_")
}

// sameTitle reports whether two titles are equal under normalizeTitle.
func sameTitle(a, b string) bool {
	return normalizeTitle(a) == normalizeTitle(b)
}
