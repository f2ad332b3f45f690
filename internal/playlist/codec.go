// SPDX-License-Identifier: MIT

package playlist

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DecodeExport reads a whole playlist export. A leading UTF-8 byte order
// mark is stripped. A missing or null "entries" field yields no entries.
func DecodeExport(r io.Reader) (Export, error) {
	var exp Export

	dec := json.NewDecoder(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	if err := dec.Decode(&exp); err != nil {
		return Export{}, fmt.Errorf("decode export: %w", err)
	}

	// Reject trailing content after the top-level object
	if _, err := dec.Token(); err != io.EOF {
		return Export{}, fmt.Errorf("decode export: unexpected data after top-level object")
	}

	if exp.Entries == nil {
		exp.Entries = []RawEntry{}
	}
	return exp, nil
}

// EncodeVideos writes videos as an indented JSON array. HTML characters are
// not escaped and an empty list is written as [] rather than null.
func EncodeVideos(w io.Writer, videos []Video) error {
	if videos == nil {
		videos = []Video{}
	}

	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(videos); err != nil {
		return fmt.Errorf("encode videos: %w", err)
	}

	_, err := io.Copy(w, buf)
	return err
}
