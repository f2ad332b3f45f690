// SPDX-License-Identifier: MIT

// Package metrics holds the Prometheus metrics of a generation run.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds every playlistgen metric. It is kept apart from the default
// registry so the textfile export contains only job metrics.
var Registry = prometheus.NewRegistry()

var (
	factory = promauto.With(Registry)

	entriesRead = factory.NewGauge(prometheus.GaugeOpts{
		Name: "playlistgen_entries_read",
		Help: "Number of raw playlist entries read (last run)",
	})

	videosWritten = factory.NewGauge(prometheus.GaugeOpts{
		Name: "playlistgen_videos_written",
		Help: "Number of hydrated videos written (last run)",
	})

	videosByCategory = factory.NewGaugeVec(prometheus.GaugeOpts{
		Name: "playlistgen_videos_by_category",
		Help: "Hydrated videos per category (last run)",
	}, []string{"category"})

	videosWithoutDuration = factory.NewGauge(prometheus.GaugeOpts{
		Name: "playlistgen_videos_without_duration",
		Help: "Hydrated videos without a duration (last run)",
	})

	runsTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "playlistgen_runs_total",
		Help: "Generation runs by outcome",
	}, []string{"outcome"}) // outcome=success|failure

	failuresTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "playlistgen_failures_total",
		Help: "Generation failures by stage",
	}, []string{"stage"}) // stage=config|input|decode|hydrate|encode|write

	runDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
		Name:    "playlistgen_run_duration_seconds",
		Help:    "Wall time of a generation run",
		Buckets: prometheus.DefBuckets,
	})

	lastSuccessTimestamp = factory.NewGauge(prometheus.GaugeOpts{
		Name: "playlistgen_last_success_timestamp_seconds",
		Help: "Unix time of the last successful run",
	})
)

func RecordEntriesRead(n int)            { entriesRead.Set(float64(n)) }
func RecordVideosWritten(n int)          { videosWritten.Set(float64(n)) }
func RecordVideosWithoutDuration(n int)  { videosWithoutDuration.Set(float64(n)) }
func IncFailure(stage string)            { failuresTotal.WithLabelValues(stage).Inc() }
func ObserveRunDuration(seconds float64) { runDurationSeconds.Observe(seconds) }

// RecordCategoryCounts replaces the per-category gauges.
func RecordCategoryCounts(counts map[string]int) {
	for category, n := range counts {
		videosByCategory.WithLabelValues(category).Set(float64(n))
	}
}

// RecordRun counts a finished run; a successful run also stamps the time.
func RecordRun(success bool, unixSeconds float64) {
	if success {
		runsTotal.WithLabelValues("success").Inc()
		lastSuccessTimestamp.Set(unixSeconds)
		return
	}
	runsTotal.WithLabelValues("failure").Inc()
}

// WriteTextfile writes the registry in the node_exporter textfile format.
// The file is replaced atomically.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, Registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
