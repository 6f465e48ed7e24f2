package analysis

import (
	"regexp"
	"strings"
)

// eNumberPattern matches food-additive codes: "E" followed by 3-4 digits
// and an optional letter, e.g. E220, E1105, E479b.
var eNumberPattern = regexp.MustCompile(`(?i)\be\d{3,4}[a-z]?\b`)

// Classification is the result of mapping one normalized ingredient against
// the allergen and additive taxonomies.
type Classification struct {
	BaseAllergenCategory AllergenCategory `json:"base_allergen_category,omitempty"`
	IsAllergen           bool             `json:"is_allergen"`
	IsAdditive           bool             `json:"is_additive"`
}

// Classify maps a normalized ingredient to an allergen category and/or
// additive flag. The allergen-derivation table is consulted before generic
// keyword matching, so additive identities that hide their source (E221,
// lysozyme, soy lecithin) still land on the right category. Ambiguity never
// fails: an unrecognised ingredient classifies as plain.
func Classify(ingredient string) Classification {
	lower := strings.ToLower(strings.TrimSpace(ingredient))
	if lower == "" {
		return Classification{}
	}

	c := Classification{IsAdditive: isAdditive(lower)}

	for _, d := range allergenDerivedAdditives {
		if strings.Contains(lower, d.keyword) {
			c.BaseAllergenCategory = d.category
			c.IsAllergen = true
			// Derived identities are additive codes or processing aids;
			// the name list doesn't carry all of them.
			c.IsAdditive = true
			return c
		}
	}

	for _, cat := range CategoryOrder {
		for _, kw := range AllergenKeywords[cat] {
			if strings.Contains(lower, kw) {
				c.BaseAllergenCategory = cat
				c.IsAllergen = true
				return c
			}
		}
	}

	return c
}

func isAdditive(lower string) bool {
	if eNumberPattern.MatchString(lower) {
		return true
	}
	for _, name := range AdditiveNames {
		if strings.Contains(lower, name) {
			return true
		}
	}
	return false
}
