// SPDX-License-Identifier: MIT

package config

import (
	"github.com/ManuGH/playlistgen/internal/validate"
)

var (
	inputExtensions = []string{".json"}
	traceExporters  = []string{"grpc", "http"}
)

// Validate checks a resolved configuration.
// The input file is not required to exist here: a missing input is reported
// by the job itself so it can name the expected location.
func Validate(cfg AppConfig) error {
	v := validate.New()

	v.FilePath("InputPath", cfg.InputPath)
	if cfg.InputPath != "" {
		v.Extension("InputPath", cfg.InputPath, inputExtensions)
	}
	v.FilePath("OutputPath", cfg.OutputPath)
	if cfg.InputPath != "" && cfg.OutputPath != "" {
		v.DistinctPaths("OutputPath", cfg.InputPath, cfg.OutputPath)
	}

	v.Range("Parallelism", cfg.Parallelism, 0, MaxParallelism)
	if _, err := validate.ParseLogLevel(cfg.LogLevel); err != nil {
		v.AddError("LogLevel", err.Error(), cfg.LogLevel)
	}

	if cfg.MetricsTextfile != "" {
		v.FilePath("MetricsTextfile", cfg.MetricsTextfile)
		v.Extension("MetricsTextfile", cfg.MetricsTextfile, []string{".prom"})
	}

	if cfg.Tracing.Enabled {
		v.OneOf("Tracing.Exporter", cfg.Tracing.Exporter, traceExporters)
		v.NotEmpty("Tracing.Endpoint", cfg.Tracing.Endpoint)
		v.Ratio("Tracing.SamplingRate", cfg.Tracing.SamplingRate)
	}

	return v.Err()
}
