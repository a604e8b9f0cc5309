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
	"time"

	"github.com/spf13/cobra"
)

// --- Global Command Variables ---
var (
	oracleBackend string
	apiURL        string
	maxIterations int
	concurrency   int
	requestRate   float64
	settleDelay   time.Duration
	jsonLogs      bool
	verbose       bool
	quiet         bool
	servePort     string

	rootCmd = &cobra.Command{
		Use:   "wikitrail",
		Short: "A cli that walks Wikipedia from one article to another, guided by an LLM",
		Long: `WikiTrail explores the Wikipedia hyperlink graph: starting from one
article it repeatedly asks an LLM oracle which outgoing link is the best
next step toward a target article, and follows that link until the target
is reached or the step budget runs out.`,
	}

	exploreCmd = &cobra.Command{
		Use:   "explore [start] [target]",
		Short: "Walk from the start article toward the target article",
		Args:  cobra.ExactArgs(2),
		RunE:  runExplore, // Defined in cmd_explore.go
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Expose exploration over a small REST API",
		RunE:  runServe, // Defined in cmd_serve.go
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&oracleBackend, "oracle", "gemini",
		"LLM backend for the decision oracle (gemini or openai)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "",
		"Override the MediaWiki API endpoint (default en.wikipedia.org)")
	rootCmd.PersistentFlags().IntVar(&maxIterations, "max-iterations", 100,
		"Maximum navigation steps per run")
	rootCmd.PersistentFlags().IntVar(&concurrency, "concurrency", 5,
		"Maximum simultaneous in-flight requests against the link source")
	rootCmd.PersistentFlags().Float64Var(&requestRate, "rps", 0,
		"Politeness cap on link-source requests per second (0 disables)")
	rootCmd.PersistentFlags().DurationVar(&settleDelay, "settle", 2*time.Second,
		"Pause observed after each oracle call")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false,
		"Emit logs as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"Suppress logs, print only the result")

	serveCmd.Flags().StringVar(&servePort, "port", "12240", "Port for the REST API")

	rootCmd.AddCommand(exploreCmd)
	rootCmd.AddCommand(serveCmd)
}
