// SPDX-License-Identifier: MIT

//go:build windows

package jobs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	plog "github.com/ManuGH/playlistgen/internal/log"
)

// AtomicWriter writes files through a sibling temp file and rename.
// Windows has no durable rename, so this is best effort.
type AtomicWriter struct{}

// WriteAtomic replaces path with data.
func (AtomicWriter) WriteAtomic(ctx context.Context, path string, data []byte) error {
	logger := plog.FromContext(ctx)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, ".playlistgen-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp output file: %w", err)
	}
	tmpPath := tmpFile.Name()
	committed := false
	defer func() {
		if committed {
			return
		}
		_ = tmpFile.Close()
		if err := os.Remove(tmpPath); err != nil && !os.IsNotExist(err) {
			logger.Debug().Err(err).Msg("cleanup temp output file")
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("write output data: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("sync temp output file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp output file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replace output file: %w", err)
	}
	committed = true
	return nil
}
