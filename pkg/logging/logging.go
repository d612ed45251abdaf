// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging configures structured logging for the pipeline using
// zerolog: human-readable console output on terminals, JSON otherwise.
package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Nop discards all events; stage tests use it.
var Nop = zerolog.Nop()

// New builds the pipeline logger writing to stderr. level is a zerolog
// level name ("debug", "info", "warn", ...); an empty or unknown value
// falls back to info. Set format to "json" to force JSON output off a
// terminal-detected console.
func New(level, format string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if format != "json" && isTerminal() {
		logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.Kitchen,
			NoColor:    os.Getenv("NO_COLOR") != "",
		})
	} else {
		logger = zerolog.New(os.Stderr)
	}

	return logger.Level(lvl).With().Timestamp().Logger()
}

func isTerminal() bool {
	info, err := os.Stderr.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
