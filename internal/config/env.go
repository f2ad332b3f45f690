// SPDX-License-Identifier: MIT

package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/ManuGH/playlistgen/internal/log"
	"github.com/rs/zerolog"
)

// EnvPrefix is shared by every environment key the Loader reads.
const EnvPrefix = "PLAYLISTGEN_"

// Environment keys read by the Loader.
const (
	EnvInput           = "PLAYLISTGEN_INPUT"
	EnvOutput          = "PLAYLISTGEN_OUTPUT"
	EnvParallelism     = "PLAYLISTGEN_PARALLELISM"
	EnvDryRun          = "PLAYLISTGEN_DRY_RUN"
	EnvWatch           = "PLAYLISTGEN_WATCH"
	EnvLogLevel        = "PLAYLISTGEN_LOG_LEVEL"
	EnvLogService      = "PLAYLISTGEN_LOG_SERVICE"
	EnvMetricsTextfile = "PLAYLISTGEN_METRICS_TEXTFILE"
	EnvTracingEnabled  = "PLAYLISTGEN_TRACING_ENABLED"
	EnvTracingExporter = "PLAYLISTGEN_TRACING_EXPORTER"
	EnvTracingEndpoint = "PLAYLISTGEN_TRACING_ENDPOINT"
	EnvTracingSampling = "PLAYLISTGEN_TRACING_SAMPLING_RATE"
	EnvEnvironment     = "PLAYLISTGEN_ENV"
)

var knownEnvKeys = []string{
	EnvInput,
	EnvOutput,
	EnvParallelism,
	EnvDryRun,
	EnvWatch,
	EnvLogLevel,
	EnvLogService,
	EnvMetricsTextfile,
	EnvTracingEnabled,
	EnvTracingExporter,
	EnvTracingEndpoint,
	EnvTracingSampling,
	EnvEnvironment,
}

// KnownEnvKeys returns all env keys read by the Loader.
func KnownEnvKeys() []string {
	out := make([]string, len(knownEnvKeys))
	copy(out, knownEnvKeys)
	return out
}

// ParseString reads a string from environment variable or returns default value.
// It logs the source (environment or default) for observability.
func ParseString(key, defaultValue string) string {
	return parseStringWithLogger(log.WithComponent("config"), key, defaultValue)
}

func parseStringWithLogger(logger zerolog.Logger, key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		if value == "" {
			logger.Debug().
				Str("key", key).
				Str("default", defaultValue).
				Str("source", "default").
				Msg("using default value (environment variable is empty)")
			return defaultValue
		}
		logger.Debug().
			Str("key", key).
			Str("value", value).
			Str("source", "environment").
			Msg("using environment variable")
		return value
	}
	logger.Debug().
		Str("key", key).
		Str("default", defaultValue).
		Str("source", "default").
		Msg("using default value")
	return defaultValue
}

// ParseInt reads an integer from environment variable or returns default value.
// It validates the input and falls back to default on parse errors.
func ParseInt(key string, defaultValue int) int {
	logger := log.WithComponent("config")
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			logger.Debug().
				Str("key", key).
				Int("value", i).
				Str("source", "environment").
				Msg("using environment variable")
			return i
		}
		logger.Warn().
			Str("key", key).
			Str("value", v).
			Int("default", defaultValue).
			Msg("invalid integer in environment variable, using default")
		return defaultValue
	}
	logger.Debug().
		Str("key", key).
		Int("default", defaultValue).
		Str("source", "default").
		Msg("using default value")
	return defaultValue
}

// ParseBool reads a boolean from environment variable or returns default value.
// It accepts "true", "false", "1", "0", "yes", "no" (case-insensitive).
func ParseBool(key string, defaultValue bool) bool {
	logger := log.WithComponent("config")
	if v, ok := os.LookupEnv(key); ok && v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "1", "yes":
			logger.Debug().Str("key", key).Bool("value", true).Str("source", "environment").Msg("using environment variable")
			return true
		case "false", "0", "no":
			logger.Debug().Str("key", key).Bool("value", false).Str("source", "environment").Msg("using environment variable")
			return false
		default:
			logger.Warn().
				Str("key", key).
				Str("value", v).
				Bool("default", defaultValue).
				Msg("invalid boolean in environment variable, using default")
			return defaultValue
		}
	}
	logger.Debug().
		Str("key", key).
		Bool("default", defaultValue).
		Str("source", "default").
		Msg("using default value")
	return defaultValue
}

// ParseFloat reads a float64 from environment variable or returns default value.
func ParseFloat(key string, defaultValue float64) float64 {
	logger := log.WithComponent("config")
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			logger.Debug().
				Str("key", key).
				Float64("value", f).
				Str("source", "environment").
				Msg("using environment variable")
			return f
		}
		logger.Warn().
			Str("key", key).
			Str("value", v).
			Float64("default", defaultValue).
			Msg("invalid float in environment variable, using default")
		return defaultValue
	}
	return defaultValue
}
