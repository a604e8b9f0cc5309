// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/WikiTrail/pkg/logging"
	"github.com/AleutianAI/WikiTrail/services/llm"
	"github.com/AleutianAI/WikiTrail/services/pathfinder"
)

// newLogger builds the process logger from the global flags.
func newLogger() *logging.Logger {
	level := logging.LevelInfo
	if verbose {
		level = logging.LevelDebug
	}
	return logging.New(logging.Config{
		Level:   level,
		Service: "wikitrail",
		JSON:    jsonLogs,
		Quiet:   quiet,
	})
}

// newOracleClient selects the LLM backend for the decision oracle.
func newOracleClient(ctx context.Context) (llm.LLMClient, error) {
	switch oracleBackend {
	case "gemini":
		return llm.NewGeminiClient(ctx)
	case "openai":
		return llm.NewOpenAIClient()
	default:
		return nil, fmt.Errorf("unknown oracle backend %q (want gemini or openai)", oracleBackend)
	}
}

// newExplorer wires one run's collaborators: link source, run-scoped
// cache, oracle adapter, explorer. No process-wide mutable state.
func newExplorer(client llm.LLMClient, logger *logging.Logger, iterations int) *pathfinder.Explorer {
	sourceOpts := []pathfinder.SourceOption{
		pathfinder.WithFetchConcurrency(concurrency),
	}
	if apiURL != "" {
		sourceOpts = append(sourceOpts, pathfinder.WithAPIURL(apiURL))
	}
	if requestRate > 0 {
		sourceOpts = append(sourceOpts, pathfinder.WithRequestRate(requestRate))
	}

	source := pathfinder.NewWikipediaSource(logger, sourceOpts...)
	fetcher := pathfinder.NewFetcher(source)
	oracle := pathfinder.NewLLMOracle(client, logger, pathfinder.WithSettleDelay(settleDelay))

	return pathfinder.NewExplorer(fetcher, oracle, logger,
		pathfinder.WithMaxIterations(iterations))
}

func runExplore(cmd *cobra.Command, args []string) error {
	start, target := args[0], args[1]

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := newLogger()
	client, err := newOracleClient(ctx)
	if err != nil {
		return err
	}

	explorer := newExplorer(client, logger, maxIterations)
	result, err := explorer.Explore(ctx, start, target)
	if err != nil {
		return fmt.Errorf("exploration failed: %w", err)
	}

	fmt.Println(renderResult(result))
	return nil
}
