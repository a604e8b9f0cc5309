// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package logging

import (
	"log/slog"
	"testing"
)

func TestLevelString(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(42), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.level.String(); got != tt.want {
				t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.want)
			}
		})
	}
}

func TestLevelToSlogLevel(t *testing.T) {
	tests := []struct {
		level Level
		want  slog.Level
	}{
		{LevelDebug, slog.LevelDebug},
		{LevelInfo, slog.LevelInfo},
		{LevelWarn, slog.LevelWarn},
		{LevelError, slog.LevelError},
		{Level(42), slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := tt.level.toSlogLevel(); got != tt.want {
			t.Errorf("Level(%d).toSlogLevel() = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestDefaultLogger(t *testing.T) {
	logger := Default()
	if logger == nil {
		t.Fatal("Default() returned nil")
	}
	if logger.Slog() == nil {
		t.Fatal("underlying slog.Logger is nil")
	}
}

func TestWithReturnsChild(t *testing.T) {
	parent := New(Config{Quiet: true})
	child := parent.With("run_id", "abc123")

	if child == nil {
		t.Fatal("With() returned nil")
	}
	if child == parent {
		t.Error("With() returned the parent, want a child")
	}

	// Both must remain usable.
	parent.Info("parent message")
	child.Info("child message")
}

func TestQuietLoggerDiscards(t *testing.T) {
	logger := New(Config{Quiet: true, Level: LevelDebug})
	// Must not panic or write anywhere observable.
	logger.Debug("dropped")
	logger.Error("also dropped")
}
