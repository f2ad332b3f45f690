// SPDX-License-Identifier: MIT

// Package playlist turns raw playlist exports into hydrated video records.
package playlist

import (
	"context"

	"github.com/ManuGH/playlistgen/internal/category"
	"github.com/ManuGH/playlistgen/internal/normalize"
	"golang.org/x/sync/errgroup"
)

const descriptionSeparator = " \u2014 "

// Hydrate converts entries into videos, preserving input order.
// Order values are assigned 1..N by position.
func Hydrate(entries []RawEntry) []Video {
	videos := make([]Video, len(entries))
	for i, e := range entries {
		videos[i] = HydrateEntry(e, i+1)
	}
	return videos
}

// HydrateParallel is Hydrate spread over at most workers goroutines.
// Each goroutine fills only its own slot, so the result is identical to Hydrate.
func HydrateParallel(ctx context.Context, entries []RawEntry, workers int) ([]Video, error) {
	if workers <= 1 || len(entries) < 2 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return Hydrate(entries), nil
	}

	videos := make([]Video, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range entries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			videos[i] = HydrateEntry(entries[i], i+1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return videos, nil
}

// HydrateEntry builds the video record for the entry at 1-based position order.
func HydrateEntry(e RawEntry, order int) Video {
	title := normalize.Title(e.Title, order)
	cat := category.Of(title)

	return Video{
		ID:              e.ID,
		Order:           order,
		Title:           title,
		Description:     title + descriptionSeparator + category.Bio(cat),
		URL:             e.URL,
		Thumbnail:       largestThumbnail(e.Thumbnails),
		Category:        cat,
		DurationSeconds: e.Duration,
		Duration:        FormatDuration(e.Duration),
		Channel:         e.Channel,
	}
}

// largestThumbnail picks the last rendition, which exports list as the largest.
func largestThumbnail(thumbs []Thumbnail) string {
	if len(thumbs) == 0 {
		return ""
	}
	return thumbs[len(thumbs)-1].URL
}

// CountByCategory tallies videos per category. Every known category is present.
func CountByCategory(videos []Video) map[category.Category]int {
	counts := make(map[category.Category]int, len(category.All()))
	for _, c := range category.All() {
		counts[c] = 0
	}
	for _, v := range videos {
		counts[v.Category]++
	}
	return counts
}
