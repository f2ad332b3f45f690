// SPDX-License-Identifier: MIT

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ManuGH/playlistgen/internal/log"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Loader handles configuration loading with precedence
type Loader struct {
	configPath string
	version    string

	// EnvFile is an optional dotenv file loaded before the environment is read.
	// Variables already present in the process environment win.
	EnvFile string

	ConsumedEnvKeys map[string]struct{} // Mechanical tracking of consumed keys
}

// NewLoader creates a new configuration loader
func NewLoader(configPath, version string) *Loader {
	return &Loader{
		configPath:      configPath,
		version:         version,
		EnvFile:         DefaultEnvFile,
		ConsumedEnvKeys: make(map[string]struct{}),
	}
}

func (l *Loader) envString(key, defaultVal string) string {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseString(key, defaultVal)
}

func (l *Loader) envBool(key string, defaultVal bool) bool {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseBool(key, defaultVal)
}

func (l *Loader) envInt(key string, defaultVal int) int {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseInt(key, defaultVal)
}

func (l *Loader) envFloat(key string, defaultVal float64) float64 {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseFloat(key, defaultVal)
}

// Load loads configuration with precedence: ENV > File > Defaults.
// The result is validated; flags applied afterwards must be re-validated by the caller.
func (l *Loader) Load() (AppConfig, error) {
	cfg := Defaults()

	if err := l.loadEnvFile(); err != nil {
		return cfg, fmt.Errorf("load env file: %w", err)
	}

	if l.configPath != "" {
		fileCfg, err := l.loadFile(l.configPath)
		if err != nil {
			return cfg, fmt.Errorf("load config file: %w", err)
		}
		l.mergeFileConfig(&cfg, fileCfg)
	}

	l.mergeEnvConfig(&cfg)
	l.warnUnknownEnvKeys()

	cfg.Version = l.version
	cfg.ResolveOutputPath()

	if err := Validate(cfg); err != nil {
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// UnknownEnvKeys lists PLAYLISTGEN_* variables of the process environment
// that Load did not consume, sorted. They are usually misspelled keys.
func (l *Loader) UnknownEnvKeys() []string {
	var unknown []string
	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if !strings.HasPrefix(key, EnvPrefix) {
			continue
		}
		if _, ok := l.ConsumedEnvKeys[key]; ok {
			continue
		}
		unknown = append(unknown, key)
	}
	slices.Sort(unknown)
	return unknown
}

func (l *Loader) warnUnknownEnvKeys() {
	logger := log.WithComponent("config")
	for _, key := range l.UnknownEnvKeys() {
		logger.Warn().
			Str(log.FieldEvent, "config.unknown_env").
			Str("key", key).
			Msg("ignoring unknown environment variable")
	}
}

func (l *Loader) loadEnvFile() error {
	if l.EnvFile == "" {
		return nil
	}
	if _, err := os.Stat(l.EnvFile); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return godotenv.Load(l.EnvFile)
}

// loadFile loads configuration from a YAML file with STRICT parsing.
// Unknown fields will cause a fatal error to prevent misconfiguration.
func (l *Loader) loadFile(path string) (*FileConfig, error) {
	path = filepath.Clean(path)

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return nil, fmt.Errorf("unsupported config format: %s (only YAML supported)", ext)
	}

	// #nosec G304 -- configuration file paths are provided by the operator via CLI/ENV
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return decodeStrict(data)
}

func decodeStrict(data []byte) (*FileConfig, error) {
	var fileCfg FileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true) // Reject unknown fields

	if err := dec.Decode(&fileCfg); err != nil {
		if err == io.EOF {
			return &FileConfig{}, nil
		}
		if strings.Contains(err.Error(), "field") && strings.Contains(err.Error(), "not found") {
			return nil, fmt.Errorf("strict config parse error: %w: %v", ErrUnknownConfigField, err)
		}
		return nil, fmt.Errorf("strict config parse error: %w", err)
	}

	// Strict: Ensure no multiple documents or trailing content
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("config file contains multiple documents or trailing content")
	}

	return &fileCfg, nil
}

// mergeFileConfig merges file configuration into dst
func (l *Loader) mergeFileConfig(dst *AppConfig, src *FileConfig) {
	if src.Input != "" {
		dst.InputPath = expandEnv(src.Input)
	}
	if src.Output != "" {
		dst.OutputPath = expandEnv(src.Output)
	}
	if src.Parallelism != nil {
		dst.Parallelism = *src.Parallelism
	}
	if src.DryRun != nil {
		dst.DryRun = *src.DryRun
	}
	if src.Watch != nil {
		dst.Watch = *src.Watch
	}
	if src.LogLevel != "" {
		dst.LogLevel = src.LogLevel
	}
	if src.Metrics.Textfile != "" {
		dst.MetricsTextfile = expandEnv(src.Metrics.Textfile)
	}

	t := src.Tracing
	if t.Enabled != nil {
		dst.Tracing.Enabled = *t.Enabled
	}
	if t.Exporter != "" {
		dst.Tracing.Exporter = t.Exporter
	}
	if t.Endpoint != "" {
		dst.Tracing.Endpoint = t.Endpoint
	}
	if t.SamplingRate != nil {
		dst.Tracing.SamplingRate = *t.SamplingRate
	}
	if t.Environment != "" {
		dst.Tracing.Environment = t.Environment
	}
}

// mergeEnvConfig merges environment variables into cfg (highest priority)
func (l *Loader) mergeEnvConfig(cfg *AppConfig) {
	cfg.InputPath = l.envString(EnvInput, cfg.InputPath)
	cfg.OutputPath = l.envString(EnvOutput, cfg.OutputPath)
	cfg.Parallelism = l.envInt(EnvParallelism, cfg.Parallelism)
	cfg.DryRun = l.envBool(EnvDryRun, cfg.DryRun)
	cfg.Watch = l.envBool(EnvWatch, cfg.Watch)
	cfg.LogLevel = l.envString(EnvLogLevel, cfg.LogLevel)
	cfg.LogService = l.envString(EnvLogService, cfg.LogService)
	cfg.MetricsTextfile = l.envString(EnvMetricsTextfile, cfg.MetricsTextfile)

	cfg.Tracing.Enabled = l.envBool(EnvTracingEnabled, cfg.Tracing.Enabled)
	cfg.Tracing.Exporter = l.envString(EnvTracingExporter, cfg.Tracing.Exporter)
	cfg.Tracing.Endpoint = l.envString(EnvTracingEndpoint, cfg.Tracing.Endpoint)
	cfg.Tracing.SamplingRate = l.envFloat(EnvTracingSampling, cfg.Tracing.SamplingRate)
	cfg.Tracing.Environment = l.envString(EnvEnvironment, cfg.Tracing.Environment)
}

// expandEnv expands ${VAR} references in file-provided paths.
func expandEnv(s string) string {
	return os.ExpandEnv(s)
}
