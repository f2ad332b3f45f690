// SPDX-License-Identifier: MIT

// Package normalize cleans raw playlist titles and matching tokens.
package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// The whitespace class covers Unicode separators as well as ASCII space
// characters, matching what exporters put into titles.
const ws = `[\s\v\p{Z}\x{85}]`

var (
	ordinalPrefix = regexp.MustCompile(`^\p{Nd}+` + ws + `+`)
	whitespaceRun = regexp.MustCompile(ws + `{2,}`)
	suffixToken   = regexp.MustCompile(`(?i)` + ws + `+(A|PROXY)$`)
)

// Token normalizes a string token for matching:
// - trims Unicode whitespace + invisible edge characters
// - lowercases for case-insensitive comparisons
func Token(s string) string {
	return strings.ToLower(strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) ||
			r == '\u200B' || // Zero Width Space
			r == '\u200C' || // Zero Width Non-Joiner
			r == '\u200D' || // Zero Width Joiner
			r == '\uFEFF' // Zero Width Non-Breaking Space (BOM)
	}))
}

// FallbackTitle is the synthesized title for an entry without one.
func FallbackTitle(order int) string {
	return "Video " + strconv.Itoa(order)
}

// Title cleans a raw playlist title:
//   - strips a single leading ordinal ("12  Fire Safety" -> "Fire Safety")
//   - collapses whitespace runs into one space
//   - rewrites a trailing "A" into " (Module A)" and "PROXY" into " (Proxy)"
//
// An empty raw title, or one that cleans down to nothing, yields
// FallbackTitle(fallbackOrder). Title never returns an empty string.
func Title(raw string, fallbackOrder int) string {
	if raw == "" {
		raw = FallbackTitle(fallbackOrder)
	}

	cleaned := strings.TrimSpace(ordinalPrefix.ReplaceAllLiteralString(raw, ""))
	cleaned = whitespaceRun.ReplaceAllLiteralString(cleaned, " ")
	cleaned = suffixToken.ReplaceAllStringFunc(cleaned, rewriteSuffix)
	cleaned = strings.TrimSpace(cleaned)

	if cleaned == "" {
		return FallbackTitle(fallbackOrder)
	}
	return cleaned
}

// rewriteSuffix maps the matched trailing token to its annotation.
// A lowercase "a" matches the pattern but neither branch, so the suffix is dropped.
func rewriteSuffix(match string) string {
	token := strings.TrimLeftFunc(match, isSpace)
	switch {
	case token == "A":
		return " (Module A)"
	case strings.ToUpper(token) == "PROXY":
		return " (Proxy)"
	default:
		return ""
	}
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || unicode.Is(unicode.Z, r)
}
