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
	"testing"
	"time"

	"github.com/AleutianAI/WikiTrail/services/llm"
)

func testNavContext() NavigationContext {
	return NavigationContext{
		Current:    "Pizza",
		Target:     "Chocolate",
		Visited:    []string{"Pizza"},
		Candidates: []string{"Cheese", "Tomato", "Italy"},
	}
}

func TestLLMOracleTrimsReply(t *testing.T) {
	client := llm.NewMockClient("  Cheese \n")
	oracle := NewLLMOracle(client, quietLogger(), WithSettleDelay(0))

	choice, err := oracle.Decide(context.Background(), testNavContext())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if choice != "Cheese" {
		t.Errorf("choice = %q, want %q", choice, "Cheese")
	}
}

func TestLLMOracleWrapsClientErrors(t *testing.T) {
	client := llm.NewMockClient("").FailWith(errors.New("connection refused"))
	oracle := NewLLMOracle(client, quietLogger(), WithSettleDelay(0))

	_, err := oracle.Decide(context.Background(), testNavContext())
	if !errors.Is(err, ErrOracleFailed) {
		t.Errorf("error = %v, want ErrOracleFailed", err)
	}
}

func TestLLMOracleRejectsEmptyReply(t *testing.T) {
	client := llm.NewMockClient("   \n\t ")
	oracle := NewLLMOracle(client, quietLogger(), WithSettleDelay(0))

	_, err := oracle.Decide(context.Background(), testNavContext())
	if !errors.Is(err, ErrOracleFailed) {
		t.Errorf("error = %v, want ErrOracleFailed for whitespace-only reply", err)
	}
}

func TestLLMOracleSendsDeterministicRequest(t *testing.T) {
	client := llm.NewMockClient("Cheese")
	oracle := NewLLMOracle(client, quietLogger(), WithSettleDelay(0))
	nc := testNavContext()

	if _, err := oracle.Decide(context.Background(), nc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	calls := client.Calls()
	if len(calls) != 1 {
		t.Fatalf("recorded %d calls, want 1", len(calls))
	}
	call := calls[0]
	if call.Prompt != RenderPrompt(nc) {
		t.Errorf("prompt sent does not match RenderPrompt output:\n%q", call.Prompt)
	}
	if call.Params.Temperature == nil || *call.Params.Temperature != 0 {
		t.Errorf("Temperature = %v, want pinned to 0", call.Params.Temperature)
	}
	if call.Params.System != oracleSystemPrompt {
		t.Errorf("System prompt not attached: %q", call.Params.System)
	}
}

func TestLLMOracleObservesSettleDelay(t *testing.T) {
	const settle = 50 * time.Millisecond
	client := llm.NewMockClient("Cheese")
	oracle := NewLLMOracle(client, quietLogger(), WithSettleDelay(settle))

	start := time.Now()
	if _, err := oracle.Decide(context.Background(), testNavContext()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < settle {
		t.Errorf("Decide returned after %v, want at least %v", elapsed, settle)
	}
}

func TestLLMOracleSettleDelayHonorsCancellation(t *testing.T) {
	client := llm.NewMockClient("Cheese")
	oracle := NewLLMOracle(client, quietLogger(), WithSettleDelay(time.Minute))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := oracle.Decide(ctx, testNavContext())
		done <- err
	}()

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("error = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Decide did not unwind on cancellation during settle delay")
	}
}
