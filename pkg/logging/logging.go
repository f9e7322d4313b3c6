// Package logging configures colored structured logging with tint.
//
// Usage:
//
//	logging.Setup()                          // level from SPLITSCAN_LOG_LEVEL
//	logging.SetupWithLevel(slog.LevelDebug)  // explicit level override
//
// Environment variables:
//
//	SPLITSCAN_LOG_LEVEL: debug, info, warn, error (default: info)
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Setup configures colored logging at the level specified by
// SPLITSCAN_LOG_LEVEL (default: INFO).
func Setup() *slog.Logger {
	return SetupWithLevel(LevelFromEnv())
}

// SetupWithLevel configures colored logging on stderr at the given level and
// installs it as the default logger.
func SetupWithLevel(level slog.Level) *slog.Logger {
	logger := New(os.Stderr, level)
	slog.SetDefault(logger)
	return logger
}

// New returns a tint logger writing to w. Colors are disabled unless w is
// stderr or stdout.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		AddSource:  true,
		NoColor:    w != os.Stderr && w != os.Stdout,
	}))
}

// LevelFromEnv reads SPLITSCAN_LOG_LEVEL, defaulting to INFO.
func LevelFromEnv() slog.Level {
	level, _ := ParseLevel(os.Getenv("SPLITSCAN_LOG_LEVEL"))
	return level
}

// ParseLevel maps debug, info, warn (or warning) and error to slog levels.
// Unknown names report false and INFO.
func ParseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
