// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package logging provides structured logging for WikiTrail components.
//
// The logger is a thin layer over Go's standard library slog package:
// stderr output by default (Unix CLI convention), optional JSON format
// for machine consumption, and child loggers via With for attaching
// run-scoped attributes.
//
// Basic usage:
//
//	logger := logging.Default()
//	logger.Info("starting exploration", "start", start, "target", target)
//	runLog := logger.With("run_id", runID)
//	runLog.Warn("link source throttled", "attempt", attempt)
package logging

import (
	"log/slog"
	"os"
)

// Level represents log severity levels, ordered Debug < Info < Warn < Error.
type Level int

const (
	// LevelDebug is for development troubleshooting.
	LevelDebug Level = iota

	// LevelInfo is for normal operational messages.
	LevelInfo

	// LevelWarn is for recoverable issues (retry attempts, fallbacks).
	LevelWarn

	// LevelError is for operation failures.
	LevelError
)

// String returns the human-readable name of the level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// toSlogLevel bridges our Level type to the standard library.
func (l Level) toSlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Config configures the Logger. A zero-value Config creates a logger that
// writes Info+ messages to stderr in text format.
type Config struct {
	// Level sets the minimum log level. Default: LevelInfo.
	Level Level

	// Service identifies the component generating logs; included in every
	// entry as the "service" attribute. Default: "" (no attribute).
	Service string

	// JSON enables machine-parseable JSON output. Default: text.
	JSON bool

	// Quiet discards all output. Useful when the CLI renders its own
	// result and logs would clutter a pipe.
	Quiet bool
}

// Logger provides structured logging. Safe for concurrent use.
type Logger struct {
	slog *slog.Logger
}

// New creates a Logger with the given configuration.
func New(config Config) *Logger {
	opts := &slog.HandlerOptions{
		Level: config.Level.toSlogLevel(),
	}

	var handler slog.Handler
	switch {
	case config.Quiet:
		handler = slog.NewTextHandler(discardWriter{}, opts)
	case config.JSON:
		handler = slog.NewJSONHandler(os.Stderr, opts)
	default:
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	if config.Service != "" {
		handler = handler.WithAttrs([]slog.Attr{
			slog.String("service", config.Service),
		})
	}

	return &Logger{slog: slog.New(handler)}
}

// Default returns a logger with Info level, stderr text output, and the
// "wikitrail" service attribute.
func Default() *Logger {
	return New(Config{
		Level:   LevelInfo,
		Service: "wikitrail",
	})
}

// Debug logs a message at Debug level with key-value attributes.
func (l *Logger) Debug(msg string, args ...any) {
	l.slog.Debug(msg, args...)
}

// Info logs a message at Info level with key-value attributes.
func (l *Logger) Info(msg string, args ...any) {
	l.slog.Info(msg, args...)
}

// Warn logs a message at Warn level with key-value attributes.
func (l *Logger) Warn(msg string, args ...any) {
	l.slog.Warn(msg, args...)
}

// Error logs a message at Error level with key-value attributes.
func (l *Logger) Error(msg string, args ...any) {
	l.slog.Error(msg, args...)
}

// With returns a child Logger carrying additional attributes. The parent
// is not modified.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{slog: l.slog.With(args...)}
}

// Slog returns the underlying slog.Logger for features not exposed here.
func (l *Logger) Slog() *slog.Logger {
	return l.slog
}

// discardWriter drops all output.
type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }
