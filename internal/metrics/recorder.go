// SPDX-License-Identifier: MIT

package metrics

import (
	"time"

	"github.com/ManuGH/playlistgen/internal/category"
)

// Recorder adapts the package metrics to the job's recorder interface.
type Recorder struct{}

func (Recorder) RecordEntriesRead(n int)           { RecordEntriesRead(n) }
func (Recorder) RecordVideosWritten(n int)         { RecordVideosWritten(n) }
func (Recorder) RecordVideosWithoutDuration(n int) { RecordVideosWithoutDuration(n) }
func (Recorder) IncFailure(stage string)           { IncFailure(stage) }

func (Recorder) RecordCategoryCounts(counts map[category.Category]int) {
	plain := make(map[string]int, len(counts))
	for c, n := range counts {
		plain[c.String()] = n
	}
	RecordCategoryCounts(plain)
}

func (Recorder) RecordRun(success bool, started, finished time.Time) {
	ObserveRunDuration(finished.Sub(started).Seconds())
	RecordRun(success, float64(finished.Unix()))
}
