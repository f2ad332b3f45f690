// SPDX-License-Identifier: MIT

package jobs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ManuGH/playlistgen/internal/category"
	"github.com/ManuGH/playlistgen/internal/config"
	plog "github.com/ManuGH/playlistgen/internal/log"
	"github.com/ManuGH/playlistgen/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleExport = `{"entries": [{"id": "x1", "title": "03 Haul Truck Operation A", "duration": 95, "thumbnails": [{"url": "lo.jpg"}, {"url": "hi.jpg"}], "channel": "MSHA"}]}`

const sampleOutput = "[\n" +
	"  {\n" +
	"    \"id\": \"x1\",\n" +
	"    \"order\": 1,\n" +
	"    \"title\": \"Haul Truck Operation (Module A)\",\n" +
	"    \"description\": \"Haul Truck Operation (Module A) — Operational best practices for mining vehicles and plant systems.\",\n" +
	"    \"url\": null,\n" +
	"    \"thumbnail\": \"hi.jpg\",\n" +
	"    \"category\": \"equipment\",\n" +
	"    \"durationSeconds\": 95,\n" +
	"    \"duration\": \"1:35\",\n" +
	"    \"channel\": \"MSHA\"\n" +
	"  }\n" +
	"]\n"

type fakeMetrics struct {
	mu         sync.Mutex
	entries    int
	written    int
	noDuration int
	categories map[category.Category]int
	failures   []string
	runs       []bool
}

func (m *fakeMetrics) RecordEntriesRead(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = n
}

func (m *fakeMetrics) RecordVideosWritten(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.written = n
}

func (m *fakeMetrics) RecordVideosWithoutDuration(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.noDuration = n
}

func (m *fakeMetrics) RecordCategoryCounts(counts map[category.Category]int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categories = counts
}

func (m *fakeMetrics) IncFailure(stage string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures = append(m.failures, stage)
}

func (m *fakeMetrics) RecordRun(success bool, _, _ time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs = append(m.runs, success)
}

type failingWriter struct{ err error }

func (w failingWriter) WriteAtomic(context.Context, string, []byte) error { return w.err }

func writeInput(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "playlist_raw.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func testConfig(input string) config.AppConfig {
	cfg := config.Defaults()
	cfg.InputPath = input
	cfg.ResolveOutputPath()
	return cfg
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestGenerate_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(writeInput(t, dir, sampleExport))
	m := &fakeMetrics{}

	ctx := plog.ContextWithJobID(context.Background(), "run-1")
	status, err := Generate(ctx, cfg, Deps{Metrics: m})
	require.NoError(t, err)

	assert.Equal(t, sampleOutput, readFile(t, filepath.Join(dir, "playlistVideos.json")))
	assert.Equal(t, "run-1", status.RunID)
	assert.Equal(t, 1, status.Entries)
	assert.Equal(t, 1, status.Videos)
	assert.Equal(t, 0, status.WithoutDuration)
	assert.Equal(t, 1, status.Categories[category.Equipment])
	assert.False(t, status.DryRun)

	assert.Equal(t, 1, m.entries)
	assert.Equal(t, 1, m.written)
	assert.Equal(t, []bool{true}, m.runs)
	assert.Empty(t, m.failures)
}

func TestGenerate_MissingInput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "playlist_raw.json")
	cfg := testConfig(input)
	m := &fakeMetrics{}

	status, err := Generate(context.Background(), cfg, Deps{Metrics: m})
	require.Error(t, err)
	assert.Nil(t, status)
	assert.True(t, errors.Is(err, ErrInputNotFound))
	assert.Contains(t, err.Error(), input)

	_, statErr := os.Stat(cfg.OutputPath)
	assert.True(t, os.IsNotExist(statErr), "no output may be written")
	assert.Equal(t, []string{stageInput}, m.failures)
	assert.Equal(t, []bool{false}, m.runs)
}

func TestGenerate_DryRun(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(writeInput(t, dir, sampleExport))
	cfg.DryRun = true

	status, err := Generate(context.Background(), cfg, Deps{})
	require.NoError(t, err)
	assert.True(t, status.DryRun)
	assert.Equal(t, 1, status.Videos)

	_, statErr := os.Stat(cfg.OutputPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestGenerate_FailedWriteKeepsPreviousOutput(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(writeInput(t, dir, sampleExport))
	require.NoError(t, os.WriteFile(cfg.OutputPath, []byte("previous"), 0o600))
	m := &fakeMetrics{}

	_, err := Generate(context.Background(), cfg, Deps{
		Metrics:    m,
		FileWriter: failingWriter{err: errors.New("disk full")},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write output: disk full")
	assert.Equal(t, "previous", readFile(t, cfg.OutputPath))
	assert.Equal(t, []string{stageWrite}, m.failures)
}

func TestGenerate_DecodeErrorWritesNothing(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(writeInput(t, dir, `{"entries": [`))

	_, err := Generate(context.Background(), cfg, Deps{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode export")
	assert.False(t, errors.Is(err, ErrInputNotFound))

	_, statErr := os.Stat(cfg.OutputPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestGenerate_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(writeInput(t, dir, sampleExport))
	cfg.Parallelism = config.MaxParallelism + 1

	_, err := Generate(context.Background(), cfg, Deps{})
	var verr validate.ValidationError
	require.True(t, errors.As(err, &verr), "got %v", err)
	assert.Equal(t, "Parallelism", verr.Errors()[0].Field)
}

func TestGenerate_ReplacesExistingOutput(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(writeInput(t, dir, sampleExport))
	require.NoError(t, os.WriteFile(cfg.OutputPath, []byte("stale"), 0o600))

	_, err := Generate(context.Background(), cfg, Deps{})
	require.NoError(t, err)
	assert.Equal(t, sampleOutput, readFile(t, cfg.OutputPath))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "temp files must not be left behind")
}

func TestGenerate_CreatesOutputDirectory(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(writeInput(t, dir, sampleExport))
	cfg.OutputPath = filepath.Join(dir, "public", "data", "videos.json")

	_, err := Generate(context.Background(), cfg, Deps{})
	require.NoError(t, err)
	assert.Equal(t, sampleOutput, readFile(t, cfg.OutputPath))
}

func TestGenerate_ParallelMatchesSequential(t *testing.T) {
	var b strings.Builder
	b.WriteString(`{"entries": [`)
	for i := 0; i < 200; i++ {
		if i > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, `{"id": %d, "title": "%02d Rescue drill PROXY", "duration": %d}`, i, i, i*7)
	}
	b.WriteString(`]}`)

	dir := t.TempDir()
	input := writeInput(t, dir, b.String())

	seq := testConfig(input)
	seq.OutputPath = filepath.Join(dir, "seq.json")
	par := testConfig(input)
	par.OutputPath = filepath.Join(dir, "par.json")
	par.Parallelism = 8

	_, err := Generate(context.Background(), seq, Deps{})
	require.NoError(t, err)
	status, err := Generate(context.Background(), par, Deps{})
	require.NoError(t, err)

	assert.Equal(t, 200, status.Videos)
	assert.Equal(t, 200, status.Categories[category.Emergency])
	assert.Equal(t, readFile(t, seq.OutputPath), readFile(t, par.OutputPath))
}

func TestGenerate_CountsMissingDurations(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(writeInput(t, dir, `{"entries": [{"title": "a"}, {"title": "b", "duration": 0}, {"title": "c", "duration": null}]}`))
	m := &fakeMetrics{}

	status, err := Generate(context.Background(), cfg, Deps{Metrics: m})
	require.NoError(t, err)
	assert.Equal(t, 2, status.WithoutDuration)
	assert.Equal(t, 2, m.noDuration)
	assert.Equal(t, 3, m.categories[category.Hazards])
}

func TestGenerate_EmptyExport(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(writeInput(t, dir, `{}`))

	status, err := Generate(context.Background(), cfg, Deps{})
	require.NoError(t, err)
	assert.Equal(t, 0, status.Videos)
	assert.Equal(t, "[]\n", readFile(t, cfg.OutputPath))
}

func TestGenerate_TraceLogsCategoryScores(t *testing.T) {
	var buf bytes.Buffer
	plog.Configure(plog.Config{Level: "trace", Output: &buf})
	t.Cleanup(func() { plog.Configure(plog.Config{}) })

	dir := t.TempDir()
	cfg := testConfig(writeInput(t, dir, sampleExport))
	_, err := Generate(context.Background(), cfg, Deps{})
	require.NoError(t, err)

	var line string
	for _, l := range strings.Split(buf.String(), "\n") {
		if strings.Contains(l, `"video.categorized"`) {
			line = l
		}
	}
	require.NotEmpty(t, line, "trace output: %s", buf.String())
	assert.Contains(t, line, `"category":"equipment"`)
	assert.Contains(t, line, `"scores":{"equipment":2,"emergency":0,"hazards":0,"compliance":0}`)
}
