/*
Copyright © 2025 Schemaguard Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package logging configures the process-wide slog default logger.
package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Setup installs the default logger used by the CLI. Logs go to stderr so
// report output on stdout stays machine-parseable. The LOG_LEVEL
// environment variable is honored unless debug forces verbose output.
func Setup(debug, jsonOutput bool) {
	level := levelFromEnv()
	if debug {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if jsonOutput {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// SetDefaultStructuredLogger installs a JSON logger stamped with the
// service name and version on every record. Used by long-running servers.
func SetDefaultStructuredLogger(name, version string) {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: levelFromEnv()})
	slog.SetDefault(slog.New(handler).With(
		"service", name,
		"version", version,
	))
}

func levelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
