package analysis

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// Matches percentage annotations that label text carries inline,
	// bracketed or bare: "(12%)", "12%", "3.5 %".
	percentPattern = regexp.MustCompile(`\(?\d+(?:\.\d+)?\s*%\)?`)

	whitespaceRuns = regexp.MustCompile(`\s+`)

	residualBrackets = strings.NewReplacer("(", "", ")", "", "[", "", "]", "")

	titleCaser = cases.Title(language.BritishEnglish)
)

// NormalizeIngredients cleans one reaction's raw suspected-ingredient list.
// OCR'd label text arrives messy: run-on comma lists, percentage
// annotations, parenthesised source declarations ("butter (milk)"). The
// output is a deduplicated ordered list of cleaned strings; deduplication is
// case-insensitive, scoped to this one list, first occurrence wins.
func NormalizeIngredients(raw []string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, r := range raw {
		for _, cleaned := range normalizeOne(r) {
			key := strings.ToLower(cleaned)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, cleaned)
		}
	}
	return out
}

// normalizeOne cleans a single raw token. It can emit zero, one or several
// ingredients: comma-bearing label fragments are split apart, and a
// parenthesised component that names something new ("butter (milk)") is
// emitted alongside its parent.
func normalizeOne(raw string) []string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}

	// Label text sometimes arrives as one collapsed comma-separated run.
	// Commas inside brackets stay put so "stabiliser (e410, e412)" keeps
	// its sub-list intact for the parenthesis pass below.
	if parts := splitOutsideBrackets(s); len(parts) > 1 {
		var out []string
		for _, p := range parts {
			out = append(out, normalizeOne(p)...)
		}
		return out
	}

	s = percentPattern.ReplaceAllString(s, "")

	// Balanced parentheses split into main and sub components. The sub is
	// only worth keeping when it names something the main doesn't already
	// say: "butter (milk)" yields both, "cocoa butter (butter)" collapses.
	open := strings.Index(s, "(")
	closing := strings.Index(s, ")")
	if open >= 0 && closing > open {
		main := cleanResidual(s[:open] + " " + s[closing+1:])
		sub := strings.TrimSpace(s[open+1 : closing])
		if sub != "" && !strings.Contains(strings.ToLower(main), strings.ToLower(cleanResidual(sub))) {
			out := []string{}
			if main != "" {
				out = append(out, main)
			}
			out = append(out, normalizeOne(sub)...)
			return out
		}
		if main == "" {
			return nil
		}
		return []string{main}
	}

	s = cleanResidual(s)
	if s == "" {
		return nil
	}
	return []string{s}
}

// cleanResidual strips stray bracket characters and collapses internal
// whitespace runs to single spaces.
func cleanResidual(s string) string {
	s = residualBrackets.Replace(s)
	s = whitespaceRuns.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// splitOutsideBrackets splits s on commas that sit outside any bracket pair.
func splitOutsideBrackets(s string) []string {
	depth := 0
	var parts []string
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '(', '[':
			depth++
		case ')', ']':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				parts = append(parts, b.String())
				b.Reset()
				continue
			}
		}
		b.WriteRune(r)
	}
	parts = append(parts, b.String())

	trimmed := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			trimmed = append(trimmed, p)
		}
	}
	return trimmed
}

// DisplayLabel renders a normalized ingredient for display. Matching is
// always done on the lower-cased form; this is presentation only.
func DisplayLabel(ingredient string) string {
	return titleCaser.String(strings.ToLower(ingredient))
}
