// SPDX-License-Identifier: MIT

// Package category classifies training videos into a closed set of topics
// using keyword heuristics over the normalized title.
package category

import (
	"fmt"
	"strings"

	"github.com/ManuGH/playlistgen/internal/normalize"
)

// Category is one of the fixed topical buckets shown by the front-end.
type Category string

const (
	Equipment  Category = "equipment"
	Emergency  Category = "emergency"
	Hazards    Category = "hazards"
	Compliance Category = "compliance"
)

// Default wins when no keyword matches.
const Default = Hazards

type rule struct {
	category Category
	keywords []string
}

// rules are evaluated in order; an earlier category keeps its place on equal scores.
// Keywords may appear in more than one category.
var rules = []rule{
	{Equipment, []string{
		"equipment", "operator", "haul", "truck", "dozer", "loader", "excavator", "crane", "man lift",
		"plant", "maintenance", "respiratory", "arc", "lock out", "hoist", "rigging", "night",
	}},
	{Emergency, []string{
		"fire", "firefighting", "evacuation", "first aid", "water safety", "respiratory", "rescue",
	}},
	{Hazards, []string{
		"hazard", "highwall", "blind", "spotter", "confined", "accident", "work place", "workplace",
		"arc", "lock out", "rules to live", "haz com",
	}},
	{Compliance, []string{
		"contractor", "independent", "training", "statutory", "mine act", "rules and procedures",
		"inspection", "records", "forms", "rights", "msha",
	}},
}

var bios = map[Category]string{
	Equipment:  "Operational best practices for mining vehicles and plant systems.",
	Emergency:  "Emergency readiness covering evacuation, medical, and fire response.",
	Hazards:    "Identifying and controlling site hazards before they escalate.",
	Compliance: "Regulatory duties, documentation, and MSHA expectations.",
}

// Of returns the best-scoring category for a normalized title.
// The score of a category is the number of its keywords found as substrings
// of the lowercased title. Ties go to the category listed first; a title
// without any match is Default.
func Of(title string) Category {
	lowered := normalize.Token(title)

	best, bestScore := Default, 0
	for _, r := range rules {
		if score := r.score(lowered); score > bestScore {
			best, bestScore = r.category, score
		}
	}
	return best
}

// Scores reports the per-category keyword score in rule order.
func Scores(title string) []Score {
	lowered := normalize.Token(title)
	out := make([]Score, 0, len(rules))
	for _, r := range rules {
		out = append(out, Score{Category: r.category, Score: r.score(lowered)})
	}
	return out
}

// Score pairs a category with its keyword hit count.
type Score struct {
	Category Category
	Score    int
}

func (r rule) score(lowered string) int {
	n := 0
	for _, kw := range r.keywords {
		if strings.Contains(lowered, kw) {
			n++
		}
	}
	return n
}

// Bio returns the fixed description sentence for c, or "" for an unknown category.
func Bio(c Category) string {
	return bios[c]
}

// All returns the closed set of categories in rule order.
func All() []Category {
	out := make([]Category, len(rules))
	for i, r := range rules {
		out[i] = r.category
	}
	return out
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	_, ok := bios[c]
	return ok
}

func (c Category) String() string {
	return string(c)
}

// MarshalText keeps unknown categories out of encoded output.
func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("unknown category %q", string(c))
	}
	return []byte(c), nil
}
