// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"path/filepath"
)

// Defaults
const (
	DefaultOutputName     = "playlistVideos.json"
	DefaultLogService     = "playlistgen"
	DefaultLogLevel       = "info"
	DefaultTraceExporter  = "grpc"
	DefaultTraceEndpoint  = "localhost:4317"
	DefaultEnvFile        = ".env"
	DefaultEnvironment    = "development"
	MaxParallelism        = 64
	DefaultSamplingRate   = 1.0
	defaultInputDirectory = "frontend/src/data"
	defaultInputName      = "playlist_raw.json"
)

// DefaultInputPath is where the downloader drops the raw playlist export.
var DefaultInputPath = filepath.Join(filepath.FromSlash(defaultInputDirectory), defaultInputName)

// AppConfig is the resolved configuration of a generation run.
type AppConfig struct {
	InputPath       string
	OutputPath      string
	Parallelism     int // 0 or 1 hydrates sequentially
	DryRun          bool
	Watch           bool
	LogLevel        string
	LogService      string
	MetricsTextfile string // optional Prometheus textfile collector target
	Tracing         TracingConfig
	Version         string
}

// TracingConfig controls OpenTelemetry span export.
type TracingConfig struct {
	Enabled      bool
	Exporter     string // "grpc" or "http"
	Endpoint     string
	SamplingRate float64
	Environment  string
}

// FileConfig is the on-disk YAML representation.
type FileConfig struct {
	Input       string         `yaml:"input,omitempty"`
	Output      string         `yaml:"output,omitempty"`
	Parallelism *int           `yaml:"parallelism,omitempty"`
	DryRun      *bool          `yaml:"dryRun,omitempty"`
	Watch       *bool          `yaml:"watch,omitempty"`
	LogLevel    string         `yaml:"logLevel,omitempty"`
	Metrics     MetricsConfig  `yaml:"metrics,omitempty"`
	Tracing     TracingSection `yaml:"tracing,omitempty"`
}

// MetricsConfig is the metrics section of the YAML file.
type MetricsConfig struct {
	Textfile string `yaml:"textfile,omitempty"`
}

// TracingSection is the tracing section of the YAML file.
type TracingSection struct {
	Enabled      *bool    `yaml:"enabled,omitempty"`
	Exporter     string   `yaml:"exporter,omitempty"`
	Endpoint     string   `yaml:"endpoint,omitempty"`
	SamplingRate *float64 `yaml:"samplingRate,omitempty"`
	Environment  string   `yaml:"environment,omitempty"`
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() AppConfig {
	return AppConfig{
		InputPath:   DefaultInputPath,
		Parallelism: 0,
		LogLevel:    DefaultLogLevel,
		LogService:  DefaultLogService,
		Tracing: TracingConfig{
			Exporter:     DefaultTraceExporter,
			Endpoint:     DefaultTraceEndpoint,
			SamplingRate: DefaultSamplingRate,
			Environment:  DefaultEnvironment,
		},
	}
}

// ResolveOutputPath fills OutputPath with the default sibling of InputPath when unset.
func (c *AppConfig) ResolveOutputPath() {
	if c.OutputPath == "" {
		c.OutputPath = filepath.Join(filepath.Dir(c.InputPath), DefaultOutputName)
	}
}

// String implements fmt.Stringer for log output.
func (c AppConfig) String() string {
	return fmt.Sprintf("input=%s output=%s parallelism=%d dry_run=%t watch=%t tracing=%t",
		c.InputPath, c.OutputPath, c.Parallelism, c.DryRun, c.Watch, c.Tracing.Enabled)
}
