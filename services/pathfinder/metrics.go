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

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Package-level meter for exploration operations.
var meter = otel.Meter("wikitrail.pathfinder")

// Metrics for exploration operations. All recording helpers are nil-safe
// so a failed init degrades to no-op instrumentation rather than a panic.
var (
	explorationsTotal metric.Int64Counter
	pagesFetchedTotal metric.Int64Counter
	throttlesTotal    metric.Int64Counter
	cacheHitsTotal    metric.Int64Counter
	oracleCallsTotal  metric.Int64Counter
	fallbacksTotal    metric.Int64Counter
	stallsTotal       metric.Int64Counter

	metricsOnce sync.Once
)

// initMetrics initializes the counters. Safe to call multiple times.
func initMetrics() {
	metricsOnce.Do(func() {
		explorationsTotal, _ = meter.Int64Counter(
			"pathfinder_explorations_total",
			metric.WithDescription("Exploration runs started"),
		)
		pagesFetchedTotal, _ = meter.Int64Counter(
			"pathfinder_pages_fetched_total",
			metric.WithDescription("Successful link-source pages fetched, including pagination"),
		)
		throttlesTotal, _ = meter.Int64Counter(
			"pathfinder_throttles_total",
			metric.WithDescription("Throttling (429) responses from the link source"),
		)
		cacheHitsTotal, _ = meter.Int64Counter(
			"pathfinder_cache_hits_total",
			metric.WithDescription("Edge-set fetches served from the run cache"),
		)
		oracleCallsTotal, _ = meter.Int64Counter(
			"pathfinder_oracle_calls_total",
			metric.WithDescription("Decision oracle invocations"),
		)
		fallbacksTotal, _ = meter.Int64Counter(
			"pathfinder_fallbacks_total",
			metric.WithDescription("Oracle proposals rejected in favor of the first candidate"),
		)
		stallsTotal, _ = meter.Int64Counter(
			"pathfinder_stalls_total",
			metric.WithDescription("Iterations stalled on an article with no usable links"),
		)
	})
}

func recordExploration(ctx context.Context) {
	initMetrics()
	if explorationsTotal != nil {
		explorationsTotal.Add(ctx, 1)
	}
}

func recordPageFetched(ctx context.Context) {
	initMetrics()
	if pagesFetchedTotal != nil {
		pagesFetchedTotal.Add(ctx, 1)
	}
}

func recordThrottle(ctx context.Context) {
	initMetrics()
	if throttlesTotal != nil {
		throttlesTotal.Add(ctx, 1)
	}
}

func recordCacheHit(ctx context.Context) {
	initMetrics()
	if cacheHitsTotal != nil {
		cacheHitsTotal.Add(ctx, 1)
	}
}

func recordOracleCall(ctx context.Context) {
	initMetrics()
	if oracleCallsTotal != nil {
		oracleCallsTotal.Add(ctx, 1)
	}
}

func recordFallback(ctx context.Context) {
	initMetrics()
	if fallbacksTotal != nil {
		fallbacksTotal.Add(ctx, 1)
	}
}

func recordStall(ctx context.Context) {
	initMetrics()
	if stallsTotal != nil {
		stallsTotal.Add(ctx, 1)
	}
}
