// SPDX-License-Identifier: MIT

package telemetry

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Common attribute keys for consistent tracing across the pipeline.
const (
	StageKey      = "pipeline.stage"
	InputPathKey  = "pipeline.input_path"
	OutputPathKey = "pipeline.output_path"
	EntriesKey    = "pipeline.entries"
	VideosKey     = "pipeline.videos"
	WorkersKey    = "pipeline.workers"
	DryRunKey     = "pipeline.dry_run"
	ErrorKey      = "error"
	ErrorTypeKey  = "error.type"
)

// StageAttribute names the pipeline stage of a span.
func StageAttribute(stage string) attribute.KeyValue {
	return attribute.String(StageKey, stage)
}

// RunAttributes describes a whole generation run.
func RunAttributes(input, output string, workers int, dryRun bool) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(InputPathKey, input),
		attribute.String(OutputPathKey, output),
		attribute.Int(WorkersKey, workers),
		attribute.Bool(DryRunKey, dryRun),
	}
}

// CountAttributes records how many entries went in and videos came out.
func CountAttributes(entries, videos int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int(EntriesKey, entries),
		attribute.Int(VideosKey, videos),
	}
}

// ErrorAttributes creates error-related span attributes.
func ErrorAttributes(errorType string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Bool(ErrorKey, true),
		attribute.String(ErrorTypeKey, errorType),
	}
}

// RecordError marks span as failed at the given stage.
func RecordError(span trace.Span, err error, stage string) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetAttributes(ErrorAttributes(stage)...)
	span.SetStatus(codes.Error, err.Error())
}
