// SPDX-License-Identifier: MIT

package playlist

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/ManuGH/playlistgen/internal/category"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHydrateEntry_EndToEndRecord(t *testing.T) {
	e := RawEntry{
		ID:         json.RawMessage(`"x1"`),
		Title:      "03 Haul Truck Operation A",
		Duration:   SecondsOf(95),
		Thumbnails: []Thumbnail{{URL: "lo.jpg"}, {URL: "hi.jpg"}},
		Channel:    strPtr("MSHA"),
	}

	want := Video{
		ID:              json.RawMessage(`"x1"`),
		Order:           1,
		Title:           "Haul Truck Operation (Module A)",
		Description:     "Haul Truck Operation (Module A) — Operational best practices for mining vehicles and plant systems.",
		URL:             nil,
		Thumbnail:       "hi.jpg",
		Category:        category.Equipment,
		DurationSeconds: SecondsOf(95),
		Duration:        strPtr("1:35"),
		Channel:         strPtr("MSHA"),
	}

	got := HydrateEntry(e, 1)
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(Seconds{})); diff != "" {
		t.Fatalf("HydrateEntry mismatch (-want +got):\n%s", diff)
	}
}

func TestHydrate_OrderFollowsPosition(t *testing.T) {
	entries := []RawEntry{
		{ID: json.RawMessage(`"z"`), Title: "9 Crane Rigging"},
		{ID: json.RawMessage(`7`)},
		{ID: nil, Title: "First Aid"},
	}

	got := Hydrate(entries)
	require.Len(t, got, len(entries))
	for i, v := range got {
		assert.Equal(t, i+1, v.Order)
	}
	assert.Equal(t, "Crane Rigging", got[0].Title)
	assert.Equal(t, "Video 2", got[1].Title)
	assert.Equal(t, json.RawMessage(`7`), got[1].ID)
	assert.Nil(t, got[2].ID)
}

func TestHydrate_Empty(t *testing.T) {
	assert.Empty(t, Hydrate(nil))
	assert.NotNil(t, Hydrate(nil))
}

func TestHydrateEntry_Defaults(t *testing.T) {
	v := HydrateEntry(RawEntry{}, 4)

	assert.Equal(t, "Video 4", v.Title)
	assert.Equal(t, category.Hazards, v.Category)
	assert.Equal(t, "Video 4 — Identifying and controlling site hazards before they escalate.", v.Description)
	assert.Equal(t, "", v.Thumbnail)
	assert.False(t, v.DurationSeconds.IsSet())
	assert.Nil(t, v.Duration)
	assert.Nil(t, v.URL)
	assert.Nil(t, v.Channel)
}

func TestHydrateEntry_ZeroDuration(t *testing.T) {
	v := HydrateEntry(RawEntry{Title: "Rescue", Duration: SecondsOf(0)}, 1)
	require.NotNil(t, v.Duration)
	assert.Equal(t, "0:00", *v.Duration)
	assert.True(t, v.DurationSeconds.IsSet())
}

func TestHydrateEntry_SingleThumbnail(t *testing.T) {
	v := HydrateEntry(RawEntry{Thumbnails: []Thumbnail{{URL: "only.jpg"}}}, 1)
	assert.Equal(t, "only.jpg", v.Thumbnail)
}

func TestHydrateParallel_MatchesSequential(t *testing.T) {
	entries := make([]RawEntry, 0, 200)
	titles := []string{"01 Fire Evacuation Drill", "Haul Truck A", "MSHA Rights PROXY", "", "Confined  Space"}
	for i := 0; i < 200; i++ {
		entries = append(entries, RawEntry{
			ID:       json.RawMessage(fmt.Sprintf(`"id-%d"`, i)),
			Title:    titles[i%len(titles)],
			Duration: SecondsOf(int64(i * 7)),
		})
	}

	want := Hydrate(entries)
	for _, workers := range []int{0, 1, 4, 64} {
		got, err := HydrateParallel(context.Background(), entries, workers)
		require.NoError(t, err)
		if diff := cmp.Diff(want, got, cmp.AllowUnexported(Seconds{})); diff != "" {
			t.Fatalf("workers=%d mismatch (-want +got):\n%s", workers, diff)
		}
	}
}

func TestHydrateParallel_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := HydrateParallel(ctx, make([]RawEntry, 10), 4)
	require.ErrorIs(t, err, context.Canceled)
}

func TestCountByCategory(t *testing.T) {
	videos := Hydrate([]RawEntry{
		{Title: "Fire Evacuation Drill"},
		{Title: "Random Unrelated Topic"},
		{Title: "Haul Truck"},
	})
	counts := CountByCategory(videos)
	assert.Equal(t, map[category.Category]int{
		category.Equipment:  1,
		category.Emergency:  1,
		category.Hazards:    1,
		category.Compliance: 0,
	}, counts)
}
