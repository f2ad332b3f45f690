// SPDX-License-Identifier: MIT

// Package jobs runs the playlist generation batch job.
package jobs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ManuGH/playlistgen/internal/category"
	"github.com/ManuGH/playlistgen/internal/config"
	plog "github.com/ManuGH/playlistgen/internal/log"
	"github.com/ManuGH/playlistgen/internal/playlist"
	"github.com/ManuGH/playlistgen/internal/telemetry"
	"github.com/rs/zerolog"
)

// ErrInputNotFound reports that the raw playlist export does not exist.
// The returned error wraps it together with the expected path.
var ErrInputNotFound = errors.New("raw playlist export not found")

// Failure stages used in metrics and span attributes.
const (
	stageConfig  = "config"
	stageInput   = "input"
	stageDecode  = "decode"
	stageHydrate = "hydrate"
	stageEncode  = "encode"
	stageWrite   = "write"
)

// Generate reads the raw export at cfg.InputPath, hydrates every entry and
// writes the result array to cfg.OutputPath. Nothing is written unless every
// step succeeds.
func Generate(ctx context.Context, cfg config.AppConfig, deps Deps) (*Status, error) {
	deps = deps.withDefaults()
	cfg.ResolveOutputPath()

	logger := plog.WithComponentFromContext(ctx, "jobs")
	ctx = logger.WithContext(ctx)

	ctx, span := telemetry.StartStage(ctx, "generate",
		telemetry.RunAttributes(cfg.InputPath, cfg.OutputPath, cfg.Parallelism, cfg.DryRun)...)
	defer span.End()

	status := &Status{
		RunID:   plog.JobIDFromContext(ctx),
		Input:   cfg.InputPath,
		Output:  cfg.OutputPath,
		DryRun:  cfg.DryRun,
		Started: deps.Clock(),
	}

	logger.Info().
		Str(plog.FieldEvent, "generate.start").
		Str(plog.FieldInputPath, cfg.InputPath).
		Str(plog.FieldOutputPath, cfg.OutputPath).
		Int(plog.FieldWorkers, cfg.Parallelism).
		Bool("dry_run", cfg.DryRun).
		Msg("starting playlist generation")

	fail := func(stage string, err error) (*Status, error) {
		status.Finished = deps.Clock()
		deps.Metrics.IncFailure(stage)
		deps.Metrics.RecordRun(false, status.Started, status.Finished)
		telemetry.RecordError(span, err, stage)
		logger.Error().
			Err(err).
			Str(plog.FieldEvent, "generate.failed").
			Str(plog.FieldStage, stage).
			Msg("playlist generation failed")
		return nil, err
	}

	if err := config.Validate(cfg); err != nil {
		return fail(stageConfig, err)
	}

	export, err := readExport(ctx, cfg.InputPath)
	if err != nil {
		if errors.Is(err, ErrInputNotFound) {
			return fail(stageInput, err)
		}
		return fail(stageDecode, err)
	}
	status.Entries = len(export.Entries)
	deps.Metrics.RecordEntriesRead(status.Entries)

	videos, err := hydrate(ctx, export.Entries, cfg.Parallelism)
	if err != nil {
		return fail(stageHydrate, fmt.Errorf("hydrate entries: %w", err))
	}

	status.Videos = len(videos)
	status.Categories = playlist.CountByCategory(videos)
	for _, v := range videos {
		if !v.DurationSeconds.IsSet() {
			status.WithoutDuration++
		}
	}

	logCategoryScores(logger, videos)

	var buf bytes.Buffer
	if err := playlist.EncodeVideos(&buf, videos); err != nil {
		return fail(stageEncode, fmt.Errorf("encode videos: %w", err))
	}

	if cfg.DryRun {
		logger.Info().
			Str(plog.FieldEvent, "output.skip").
			Str(plog.FieldOutputPath, cfg.OutputPath).
			Int("bytes", buf.Len()).
			Msg("dry run, output not written")
	} else {
		if err := writeOutput(ctx, deps.FileWriter, cfg.OutputPath, buf.Bytes()); err != nil {
			return fail(stageWrite, err)
		}
		logger.Info().
			Str(plog.FieldEvent, "output.write").
			Str(plog.FieldOutputPath, cfg.OutputPath).
			Int(plog.FieldVideos, status.Videos).
			Msg("output written")
	}

	status.Finished = deps.Clock()
	deps.Metrics.RecordVideosWritten(status.Videos)
	deps.Metrics.RecordVideosWithoutDuration(status.WithoutDuration)
	deps.Metrics.RecordCategoryCounts(status.Categories)
	deps.Metrics.RecordRun(true, status.Started, status.Finished)
	span.SetAttributes(telemetry.CountAttributes(status.Entries, status.Videos)...)

	event := logger.Info().
		Str(plog.FieldEvent, "generate.success").
		Int(plog.FieldEntries, status.Entries).
		Int(plog.FieldVideos, status.Videos).
		Dur("duration", status.Duration())
	for cat, n := range status.Categories {
		event = event.Int(plog.FieldCategory+"."+cat.String(), n)
	}
	event.Msg("playlist generation completed")

	return status, nil
}

// logCategoryScores explains each classification at trace level.
func logCategoryScores(logger zerolog.Logger, videos []playlist.Video) {
	if !logger.Trace().Enabled() {
		return
	}
	for _, v := range videos {
		scores := zerolog.Dict()
		for _, sc := range category.Scores(v.Title) {
			scores = scores.Int(sc.Category.String(), sc.Score)
		}
		logger.Trace().
			Str(plog.FieldEvent, "video.categorized").
			Int("order", v.Order).
			Str("title", v.Title).
			Str(plog.FieldCategory, v.Category.String()).
			Dict("scores", scores).
			Msg("video categorized")
	}
}

func readExport(ctx context.Context, path string) (playlist.Export, error) {
	_, span := telemetry.StartStage(ctx, stageDecode)
	defer span.End()

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return playlist.Export{}, fmt.Errorf("%w: expected %s", ErrInputNotFound, path)
		}
		return playlist.Export{}, fmt.Errorf("stat input: %w", err)
	}
	if info.IsDir() {
		return playlist.Export{}, fmt.Errorf("%w: %s is a directory", ErrInputNotFound, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return playlist.Export{}, fmt.Errorf("open input: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			plog.FromContext(ctx).Debug().Err(cerr).Str(plog.FieldPath, path).Msg("close input")
		}
	}()

	export, err := playlist.DecodeExport(f)
	if err != nil {
		telemetry.RecordError(span, err, stageDecode)
		return playlist.Export{}, err
	}
	span.SetAttributes(telemetry.CountAttributes(len(export.Entries), 0)...)
	return export, nil
}

func hydrate(ctx context.Context, entries []playlist.RawEntry, workers int) ([]playlist.Video, error) {
	ctx, span := telemetry.StartStage(ctx, stageHydrate)
	defer span.End()

	videos, err := playlist.HydrateParallel(ctx, entries, workers)
	if err != nil {
		telemetry.RecordError(span, err, stageHydrate)
		return nil, err
	}
	span.SetAttributes(telemetry.CountAttributes(len(entries), len(videos))...)
	return videos, nil
}

func writeOutput(ctx context.Context, w FileWriter, path string, data []byte) error {
	ctx, span := telemetry.StartStage(ctx, stageWrite)
	defer span.End()

	if err := w.WriteAtomic(ctx, path, data); err != nil {
		err = fmt.Errorf("write output: %w", err)
		telemetry.RecordError(span, err, stageWrite)
		return err
	}
	return nil
}
