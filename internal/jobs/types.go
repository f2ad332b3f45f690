// SPDX-License-Identifier: MIT

package jobs

import (
	"context"
	"time"

	"github.com/ManuGH/playlistgen/internal/category"
)

// DefaultDebounce is how long Watch waits for the input to settle.
const DefaultDebounce = 500 * time.Millisecond

// MetricsRecorder defines the interface for recording metrics
type MetricsRecorder interface {
	RecordEntriesRead(n int)
	RecordVideosWritten(n int)
	RecordVideosWithoutDuration(n int)
	RecordCategoryCounts(counts map[category.Category]int)
	IncFailure(stage string)
	RecordRun(success bool, started, finished time.Time)
}

// FileWriter defines the interface for writing files atomically
type FileWriter interface {
	WriteAtomic(ctx context.Context, path string, data []byte) error
}

// Deps holds the injectable collaborators of a generation run.
// Zero values fall back to the production implementations.
type Deps struct {
	Metrics    MetricsRecorder
	FileWriter FileWriter
	Clock      func() time.Time

	// Debounce overrides DefaultDebounce in Watch.
	Debounce time.Duration
	// OnGenerate is called after every run started by Watch.
	OnGenerate func(*Status, error)
}

func (d Deps) withDefaults() Deps {
	if d.Metrics == nil {
		d.Metrics = nopMetrics{}
	}
	if d.FileWriter == nil {
		d.FileWriter = AtomicWriter{}
	}
	if d.Clock == nil {
		d.Clock = time.Now
	}
	if d.Debounce <= 0 {
		d.Debounce = DefaultDebounce
	}
	return d
}

// Status summarizes a finished generation run.
type Status struct {
	RunID           string                    `json:"run_id,omitempty"`
	Input           string                    `json:"input"`
	Output          string                    `json:"output"`
	Entries         int                       `json:"entries"`
	Videos          int                       `json:"videos"`
	WithoutDuration int                       `json:"without_duration"`
	Categories      map[category.Category]int `json:"categories"`
	DryRun          bool                      `json:"dry_run"`
	Started         time.Time                 `json:"started"`
	Finished        time.Time                 `json:"finished"`
}

// Duration is the wall time of the run.
func (s *Status) Duration() time.Duration {
	return s.Finished.Sub(s.Started)
}

type nopMetrics struct{}

func (nopMetrics) RecordEntriesRead(int)                          {}
func (nopMetrics) RecordVideosWritten(int)                        {}
func (nopMetrics) RecordVideosWithoutDuration(int)                {}
func (nopMetrics) RecordCategoryCounts(map[category.Category]int) {}
func (nopMetrics) IncFailure(string)                              {}
func (nopMetrics) RecordRun(bool, time.Time, time.Time)           {}
