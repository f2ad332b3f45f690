// SPDX-License-Identifier: MIT

package log

// Canonical field name constants for structured logging.
const (
	// Identity fields
	FieldJobID = "job_id"

	// Process / pipeline fields
	FieldEvent     = "event"
	FieldComponent = "component"
	FieldStage     = "stage"

	// Path fields
	FieldPath       = "path"
	FieldInputPath  = "input_path"
	FieldOutputPath = "output_path"
	FieldConfigPath = "config_path"

	// Result fields
	FieldEntries  = "entries"
	FieldVideos   = "videos"
	FieldCategory = "category"
	FieldWorkers  = "workers"
)
