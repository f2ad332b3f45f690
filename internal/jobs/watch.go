// SPDX-License-Identifier: MIT

package jobs

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/ManuGH/playlistgen/internal/config"
	plog "github.com/ManuGH/playlistgen/internal/log"
	"github.com/fsnotify/fsnotify"
)

// Watch runs Generate once and then again whenever the input file changes,
// until ctx is cancelled. Only the first run is fatal; later failures are
// logged and reported through deps.OnGenerate.
func Watch(ctx context.Context, cfg config.AppConfig, deps Deps) error {
	deps = deps.withDefaults()
	logger := plog.WithComponentFromContext(ctx, "watch")

	status, err := Generate(ctx, cfg, deps)
	notify(deps, status, err)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() {
		if err := watcher.Close(); err != nil {
			logger.Debug().Err(err).Msg("close watcher")
		}
	}()

	// Watch the directory: editors and downloaders replace the file by rename,
	// which drops a watch placed on the file itself.
	target := filepath.Clean(cfg.InputPath)
	dir := filepath.Dir(target)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	logger.Info().
		Str(plog.FieldEvent, "watch.start").
		Str(plog.FieldInputPath, target).
		Dur("debounce", deps.Debounce).
		Msg("watching input for changes")

	trigger := make(chan struct{}, 1)
	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			logger.Info().Str(plog.FieldEvent, "watch.stop").Msg("watcher stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			logger.Debug().
				Str(plog.FieldEvent, "watch.change").
				Str("op", event.Op.String()).
				Msg("input changed")

			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(deps.Debounce, func() {
				select {
				case trigger <- struct{}{}:
				default:
				}
			})

		case <-trigger:
			status, err := Generate(ctx, cfg, deps)
			if err != nil {
				logger.Warn().
					Err(err).
					Str(plog.FieldEvent, "watch.regenerate_failed").
					Msg("regeneration failed, keeping previous output")
			}
			notify(deps, status, err)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error().Err(err).Str(plog.FieldEvent, "watch.error").Msg("watcher error")
		}
	}
}

func notify(deps Deps, status *Status, err error) {
	if deps.OnGenerate != nil {
		deps.OnGenerate(status, err)
	}
}
