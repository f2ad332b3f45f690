// SPDX-License-Identifier: MIT

package playlist

import (
	"encoding/json"

	"github.com/ManuGH/playlistgen/internal/category"
)

// Export is the raw playlist export as produced by the downloader.
// Only the fields the pipeline reads are declared; everything else is ignored.
type Export struct {
	Entries []RawEntry `json:"entries"`
}

// RawEntry is a single playlist item of the export.
// Duration is kept in whole seconds: a fractional value such as 95.7 is
// floored to 95, and values outside the int64 range are rejected.
type RawEntry struct {
	ID         json.RawMessage `json:"id,omitempty"`
	Title      string          `json:"title,omitempty"`
	URL        *string         `json:"url,omitempty"`
	Duration   Seconds         `json:"duration"`
	Thumbnails []Thumbnail     `json:"thumbnails,omitempty"`
	Channel    *string         `json:"channel,omitempty"`
}

// Thumbnail is one rendition of the entry preview image.
// Exports list them smallest to largest.
type Thumbnail struct {
	URL string `json:"url"`
}

// Video is the hydrated record consumed by the front-end.
// Field order is the serialization order.
type Video struct {
	ID              json.RawMessage   `json:"id"`
	Order           int               `json:"order"`
	Title           string            `json:"title"`
	Description     string            `json:"description"`
	URL             *string           `json:"url"`
	Thumbnail       string            `json:"thumbnail"`
	Category        category.Category `json:"category"`
	DurationSeconds Seconds           `json:"durationSeconds"`
	Duration        *string           `json:"duration"`
	Channel         *string           `json:"channel"`
}
