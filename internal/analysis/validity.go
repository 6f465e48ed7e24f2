package analysis

import (
	"regexp"
	"strings"
	"unicode"
)

// FilterConfig controls the garbage-rejection heuristics applied to
// normalized ingredient candidates. Thresholds are configuration rather than
// per-call-site constants: the standard path caps candidates at 50
// characters while the pre-split path (raw label text that has not been
// broken on commas yet) allows 80.
type FilterConfig struct {
	MinLength         int
	MaxLength         int
	ExclusionKeywords []string
	VitaminKeywords   []string
	FragmentPrefixes  []string
}

// DefaultFilterConfig returns the filter used for normalized candidates.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		MinLength:         2,
		MaxLength:         50,
		ExclusionKeywords: defaultExclusionKeywords,
		VitaminKeywords:   defaultVitaminKeywords,
		FragmentPrefixes:  defaultFragmentPrefixes,
	}
}

// PreSplitFilterConfig returns the more permissive filter applied before a
// raw label string has been split on commas.
func PreSplitFilterConfig() FilterConfig {
	cfg := DefaultFilterConfig()
	cfg.MaxLength = 80
	return cfg
}

// Label boilerplate that marks a candidate as not an ingredient. Matched
// case-insensitively as substrings.
var defaultExclusionKeywords = []string{
	"allergen",
	"allergy advice",
	"storage",
	"store in",
	"keep refrigerated",
	"nutrition",
	"typical values",
	"warning",
	"contains",
	"may contain",
	"best before",
	"use by",
	"per 100g",
	"reference intake",
	"energy",
	"ingredients",
	"produced in",
	"packaged in",
	"recyclable",
	"customer services",
}

// Vitamins and minerals are fortification, not triggers.
var defaultVitaminKeywords = []string{
	"vitamin",
	"niacin",
	"riboflavin",
	"thiamin",
	"folic acid",
	"folate",
	"biotin",
	"zinc",
	"iron",
	"calcium carbonate",
	"pantothenic",
	"iodine",
	"selenium",
}

// Connective fragments that OCR leaves dangling at the start of a candidate.
var defaultFragmentPrefixes = []string{
	"contains",
	"in addition to",
	"minimum",
	"maximum",
	"age adult",
	"and ",
	"with ",
	"of ",
	"made in",
	"free from",
}

var (
	urlMarkers = []string{"www.", "http", ".com", ".co.uk"}

	// Nutrition-table fragment, e.g. "28g 11%".
	gramsPercentPattern = regexp.MustCompile(`(?i)\d+(?:\.\d+)?\s*g\s+\d+(?:\.\d+)?\s*%`)

	datePattern = regexp.MustCompile(`\d{2}/\d{2}/\d{2}`)

	exactENumberPattern = regexp.MustCompile(`(?i)^e\d{3,4}[a-z]?$`)
)

// IsValidIngredient reports whether a normalized candidate looks like a real
// ingredient. The heuristics fail closed: anything ambiguous is rejected,
// because a false trigger misleads users about their own health.
func (cfg FilterConfig) IsValidIngredient(candidate string) bool {
	s := strings.TrimSpace(candidate)
	if len(s) < cfg.MinLength || len(s) > cfg.MaxLength {
		return false
	}

	lower := strings.ToLower(s)
	for _, m := range urlMarkers {
		if strings.Contains(lower, m) {
			return false
		}
	}

	// E-number codes trip the digit heuristics below but are real
	// additive identities the classifier needs to see.
	if exactENumberPattern.MatchString(s) {
		return true
	}

	digits := 0
	letters := 0
	upper := 0
	for _, r := range s {
		switch {
		case unicode.IsDigit(r):
			digits++
		case unicode.IsLetter(r):
			letters++
			if unicode.IsUpper(r) {
				upper++
			}
		}
	}

	// Phone numbers and batch codes carry digit runs real ingredients don't.
	if digits >= 5 {
		return false
	}
	if letters > 0 && upper*2 > letters && digits > 2 {
		return false
	}

	if gramsPercentPattern.MatchString(s) {
		return false
	}
	if datePattern.MatchString(s) {
		return false
	}

	// Repeated-word OCR artifacts, e.g. "wheat flour wheat flour".
	words := strings.Fields(lower)
	if len(words) >= 4 {
		unique := make(map[string]struct{}, len(words))
		for _, w := range words {
			unique[w] = struct{}{}
		}
		if float64(len(unique))/float64(len(words)) < 0.6 {
			return false
		}
	}

	for _, p := range cfg.FragmentPrefixes {
		if strings.HasPrefix(lower, p) {
			return false
		}
	}

	// Colons mark label headers; multiple periods mark sentence fragments.
	if strings.Contains(s, ":") {
		return false
	}
	if strings.Count(s, ".") > 1 {
		return false
	}

	for _, kw := range cfg.ExclusionKeywords {
		if strings.Contains(lower, kw) {
			return false
		}
	}
	for _, kw := range cfg.VitaminKeywords {
		if strings.Contains(lower, kw) {
			return false
		}
	}

	return true
}
