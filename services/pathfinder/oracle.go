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
	"strings"
	"time"

	"github.com/AleutianAI/WikiTrail/pkg/logging"
	"github.com/AleutianAI/WikiTrail/services/llm"
)

// Oracle proposes the next article given a navigation context.
//
// The proposal is advisory: the Explorer validates it against the actual
// candidate set and falls back deterministically when it is not a legal
// edge.
type Oracle interface {
	// Decide returns the proposed next article title.
	//
	// Errors:
	//   - ErrOracleFailed: the oracle was unreachable or replied with
	//     nothing usable (aborts the run)
	Decide(ctx context.Context, nc NavigationContext) (string, error)
}

// LLMOracle adapts an llm.LLMClient into an Oracle.
//
// Requests are sent at temperature zero so identical contexts produce
// identical proposals. The reply is trimmed of surrounding whitespace and
// otherwise used verbatim; no fuzzy matching happens here.
//
// Thread Safety: Safe for concurrent use, though the Explorer invokes it
// strictly sequentially.
type LLMOracle struct {
	client llm.LLMClient
	settle time.Duration
	logger *logging.Logger
}

// OracleOption configures an LLMOracle.
type OracleOption func(*LLMOracle)

// WithSettleDelay overrides the unconditional pause observed after each
// oracle call. Tests set this to ~0.
func WithSettleDelay(d time.Duration) OracleOption {
	return func(o *LLMOracle) {
		if d >= 0 {
			o.settle = d
		}
	}
}

// NewLLMOracle creates an oracle adapter over the given LLM client.
func NewLLMOracle(client llm.LLMClient, logger *logging.Logger, opts ...OracleOption) *LLMOracle {
	if logger == nil {
		logger = logging.Default()
	}
	o := &LLMOracle{
		client: client,
		settle: DefaultSettleDelay * time.Second,
		logger: logger,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Decide implements Oracle.
//
// After the LLM call completes, a fixed settling delay is observed before
// returning, to respect the oracle endpoint's rate expectations. The delay
// is unconditional (no backoff, no retry) but context-aware.
func (o *LLMOracle) Decide(ctx context.Context, nc NavigationContext) (string, error) {
	if ctx == nil {
		return "", ErrInvalidInput
	}

	prompt := RenderPrompt(nc)
	o.logger.Debug("asking oracle for next link",
		"current", nc.Current, "target", nc.Target, "candidates", len(nc.Candidates))

	temperature := float32(0)
	reply, err := o.client.Generate(ctx, prompt, llm.GenerationParams{
		Temperature: &temperature,
		System:      oracleSystemPrompt,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrOracleFailed, err)
	}
	recordOracleCall(ctx)

	if err := o.settleDown(ctx); err != nil {
		return "", err
	}

	choice := strings.TrimSpace(reply)
	if choice == "" {
		return "", fmt.Errorf("%w: empty reply", ErrOracleFailed)
	}

	o.logger.Debug("oracle proposed", "proposed", choice)
	return choice, nil
}

// settleDown pauses for the configured settling delay or until the context
// is cancelled.
func (o *LLMOracle) settleDown(ctx context.Context) error {
	if o.settle <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(o.settle):
		return nil
	}
}
