// Package config loads runtime settings from the environment.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/language"

	"github.com/mmynk/splitscan/internal/dedupe"
	"github.com/mmynk/splitscan/internal/money"
	"github.com/mmynk/splitscan/pkg/logging"
)

// Environment variables read by Load.
const (
	EnvCurrency       = "SPLITSCAN_CURRENCY"
	EnvLocale         = "SPLITSCAN_LOCALE"
	EnvLogLevel       = "SPLITSCAN_LOG_LEVEL"
	EnvDedupThreshold = "SPLITSCAN_DEDUP_THRESHOLD"
	EnvPriceTolerance = "SPLITSCAN_PRICE_TOLERANCE"
)

// Config holds settings shared by the engine and the CLI.
type Config struct {
	Currency       string
	Locale         language.Tag
	LogLevel       slog.Level
	DedupThreshold float64
	PriceTolerance float64
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Currency:       money.DefaultCurrency,
		Locale:         language.AmericanEnglish,
		LogLevel:       slog.LevelInfo,
		DedupThreshold: dedupe.DefaultThreshold,
		PriceTolerance: dedupe.DefaultPriceTolerance,
	}
}

// Load reads Config from the environment. Invalid values keep their
// defaults and are logged as warnings.
func Load() Config {
	cfg := Default()

	cfg.Currency = strings.ToUpper(getEnv(EnvCurrency, cfg.Currency))

	if v := getEnv(EnvLocale, ""); v != "" {
		if tag, err := language.Parse(v); err == nil {
			cfg.Locale = tag
		} else {
			slog.Warn("Ignoring invalid locale", "env", EnvLocale, "value", v, "error", err)
		}
	}

	if v := getEnv(EnvLogLevel, ""); v != "" {
		if level, ok := logging.ParseLevel(v); ok {
			cfg.LogLevel = level
		} else {
			slog.Warn("Ignoring invalid log level", "env", EnvLogLevel, "value", v)
		}
	}

	cfg.DedupThreshold = getRatio(EnvDedupThreshold, cfg.DedupThreshold)
	cfg.PriceTolerance = getRatio(EnvPriceTolerance, cfg.PriceTolerance)
	return cfg
}

// Suppressor returns the duplicate suppressor configured by cfg.
func (c Config) Suppressor() dedupe.Suppressor {
	return dedupe.Suppressor{Threshold: c.DedupThreshold, PriceTolerance: c.PriceTolerance}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getRatio parses a float in [0, 1].
func getRatio(key string, fallback float64) float64 {
	v := getEnv(key, "")
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 || f > 1 {
		slog.Warn("Ignoring invalid ratio", "env", key, "value", v)
		return fallback
	}
	return f
}
