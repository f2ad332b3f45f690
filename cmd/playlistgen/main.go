// SPDX-License-Identifier: MIT

// playlistgen turns a raw playlist export into the categorized video dataset
// consumed by the front-end.
//
// Usage:
//
//	playlistgen
//	playlistgen -input export.json -output public/videos.json
//	playlistgen -watch
//
// Exit codes:
//   - 0: Output written (or dry run completed)
//   - 1: Generation failed (missing input, decode, write, configuration)
//   - 2: Usage error
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/ManuGH/playlistgen/internal/config"
	"github.com/ManuGH/playlistgen/internal/jobs"
	plog "github.com/ManuGH/playlistgen/internal/log"
	"github.com/ManuGH/playlistgen/internal/metrics"
	"github.com/ManuGH/playlistgen/internal/telemetry"
	"github.com/ManuGH/playlistgen/internal/version"
	"github.com/google/uuid"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type options struct {
	configPath      string
	envFile         string
	input           string
	output          string
	parallelism     int
	dryRun          bool
	watch           bool
	logLevel        string
	metricsTextfile string
	showVersion     bool

	set map[string]bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("playlistgen", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&o.configPath, "config", "", "path to config file (YAML)")
	fs.StringVar(&o.envFile, "env-file", config.DefaultEnvFile, "dotenv file loaded before the environment, if present")
	fs.StringVar(&o.input, "input", "", "raw playlist export (default "+config.DefaultInputPath+")")
	fs.StringVar(&o.output, "output", "", "output file (default "+config.DefaultOutputName+" next to the input)")
	fs.IntVar(&o.parallelism, "parallelism", 0, "hydration workers (0 or 1 = sequential)")
	fs.BoolVar(&o.dryRun, "dry-run", false, "run the pipeline without writing the output")
	fs.BoolVar(&o.watch, "watch", false, "regenerate whenever the input changes")
	fs.StringVar(&o.logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	fs.StringVar(&o.metricsTextfile, "metrics-textfile", "", "write Prometheus metrics to this .prom file after each run")
	fs.BoolVar(&o.showVersion, "version", false, "print version and exit")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage of playlistgen:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nEnvironment (overridden by flags):\n  %s\n", strings.Join(config.KnownEnvKeys(), "\n  "))
	}

	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
		fs.Usage()
		return o, errors.New("unexpected arguments")
	}

	o.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { o.set[f.Name] = true })
	return o, nil
}

// apply overlays explicitly set flags on the loaded configuration.
func (o options) apply(cfg *config.AppConfig) {
	if o.set["input"] {
		// An output derived from the previous input follows the new one.
		derived := filepath.Join(filepath.Dir(cfg.InputPath), config.DefaultOutputName)
		if cfg.OutputPath == derived {
			cfg.OutputPath = ""
		}
		cfg.InputPath = o.input
	}
	if o.set["output"] {
		cfg.OutputPath = o.output
	}
	if o.set["parallelism"] {
		cfg.Parallelism = o.parallelism
	}
	if o.set["dry-run"] {
		cfg.DryRun = o.dryRun
	}
	if o.set["watch"] {
		cfg.Watch = o.watch
	}
	if o.set["log-level"] {
		cfg.LogLevel = o.logLevel
	}
	if o.set["metrics-textfile"] {
		cfg.MetricsTextfile = o.metricsTextfile
	}
	cfg.ResolveOutputPath()
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if opts.showVersion {
		fmt.Fprintln(stdout, version.String())
		return 0
	}

	// Configure logger with safe defaults until config is loaded
	plog.Configure(plog.Config{
		Level:   config.DefaultLogLevel,
		Output:  stderr,
		Service: config.DefaultLogService,
		Version: version.Version,
	})
	logger := plog.WithComponent("cli")

	loader := config.NewLoader(strings.TrimSpace(opts.configPath), version.Version)
	loader.EnvFile = opts.envFile
	cfg, err := loader.Load()
	if err != nil {
		logger.Error().
			Err(err).
			Str(plog.FieldEvent, "config.load_failed").
			Str(plog.FieldConfigPath, opts.configPath).
			Msg("failed to load configuration")
		fmt.Fprintf(stderr, "Configuration error: %v\n", err)
		return 1
	}

	opts.apply(&cfg)
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(stderr, "Configuration error: %v\n", err)
		return 1
	}

	plog.Configure(plog.Config{
		Level:   cfg.LogLevel,
		Output:  stderr,
		Service: cfg.LogService,
		Version: cfg.Version,
	})
	logger = plog.WithComponent("cli")
	logger.Debug().
		Str(plog.FieldEvent, "config.loaded").
		Str(plog.FieldConfigPath, opts.configPath).
		Stringer("config", cfg).
		Msg("configuration loaded")

	provider, err := telemetry.NewProvider(ctx, telemetry.Config{
		Enabled:        cfg.Tracing.Enabled,
		ServiceName:    cfg.LogService,
		ServiceVersion: cfg.Version,
		Environment:    cfg.Tracing.Environment,
		ExporterType:   cfg.Tracing.Exporter,
		Endpoint:       cfg.Tracing.Endpoint,
		SamplingRate:   cfg.Tracing.SamplingRate,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Tracing setup failed: %v\n", err)
		return 1
	}
	defer func() {
		if err := provider.Shutdown(context.Background()); err != nil {
			logger.Warn().Err(err).Msg("tracer shutdown")
		}
	}()

	ctx = plog.ContextWithJobID(ctx, uuid.NewString())
	deps := jobs.Deps{Metrics: metrics.Recorder{}}

	report := func(status *jobs.Status, err error) {
		if cfg.MetricsTextfile != "" {
			if werr := metrics.WriteTextfile(cfg.MetricsTextfile); werr != nil {
				logger.Warn().Err(werr).Str(plog.FieldPath, cfg.MetricsTextfile).Msg("metrics textfile not written")
			}
		}
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return
		}
		if status.DryRun {
			fmt.Fprintf(stdout, "Dry run: %d videos for %s\n", status.Videos, status.Output)
			return
		}
		fmt.Fprintf(stdout, "Wrote %d videos to %s\n", status.Videos, status.Output)
	}

	if cfg.Watch {
		deps.OnGenerate = report
		if err := jobs.Watch(ctx, cfg, deps); err != nil {
			return 1
		}
		return 0
	}

	status, err := jobs.Generate(ctx, cfg, deps)
	report(status, err)
	if err != nil {
		return 1
	}
	return 0
}
