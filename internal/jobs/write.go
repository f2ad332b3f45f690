// SPDX-License-Identifier: MIT

//go:build !windows

package jobs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	plog "github.com/ManuGH/playlistgen/internal/log"
	"github.com/google/renameio/v2"
)

// AtomicWriter writes files through renameio: temp file, fsync, rename.
// A failed write never touches the existing file.
type AtomicWriter struct{}

// WriteAtomic replaces path with data.
func (AtomicWriter) WriteAtomic(ctx context.Context, path string, data []byte) error {
	logger := plog.FromContext(ctx)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	pendingFile, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o644))
	if err != nil {
		return fmt.Errorf("create pending output file: %w", err)
	}
	defer func() {
		// No-op once CloseAtomicallyReplace succeeded
		if err := pendingFile.Cleanup(); err != nil {
			logger.Debug().Err(err).Msg("cleanup pending output file")
		}
	}()

	if _, err := pendingFile.Write(data); err != nil {
		return fmt.Errorf("write output data: %w", err)
	}

	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace output file: %w", err)
	}

	return nil
}
