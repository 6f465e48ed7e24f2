package analysis

import (
	"math"
	"sort"
	"strings"
	"time"
)

// Thresholds for surfacing results. A trigger only headlines the insight
// when it appears in at least 30% of reactions; an allergen group is only
// reported once an ingredient in it has recurred.
const (
	topTriggerMinPercentage  = 30
	allergenGroupMinOccurred = 2
)

// Analyzer runs the trigger-analysis pipeline. It holds configuration only;
// every computation is a pure function of (reactions, now) and two calls
// with the same input produce identical output. Callers re-run the whole
// pipeline on each snapshot; caching, if wanted, is theirs to own.
type Analyzer struct {
	filter FilterConfig
}

// NewAnalyzer returns an Analyzer with the default validity filter.
func NewAnalyzer() *Analyzer {
	return &Analyzer{filter: DefaultFilterConfig()}
}

// NewAnalyzerWithFilter returns an Analyzer with a custom validity filter.
func NewAnalyzerWithFilter(cfg FilterConfig) *Analyzer {
	return &Analyzer{filter: cfg}
}

// ComputeReport is a convenience wrapper around a default Analyzer.
func ComputeReport(reactions []Reaction, now time.Time) TriggerReport {
	return NewAnalyzer().ComputeReport(reactions, now)
}

// ingredientStat accumulates everything the report needs about one distinct
// normalized ingredient across the reaction set.
type ingredientStat struct {
	label       string
	count       int
	occurrences []time.Time
	foods       []string
}

// ComputeReport runs the full pipeline over a snapshot of reactions.
// Fewer than three reactions yields an empty-trigger report with a
// building-state insight, not an error.
func (a *Analyzer) ComputeReport(reactions []Reaction, now time.Time) TriggerReport {
	total := len(reactions)
	confidence := ConfidenceFor(total)

	if total < minReactionsForReport {
		text, chips := buildingInsight(total)
		return TriggerReport{
			AllTriggers:      []Trigger{},
			AllergenGroups:   []AllergenGroup{},
			AdditiveTriggers: []Trigger{},
			OtherTriggers:    []Trigger{},
			Confidence:       confidence,
			InsightText:      text,
			ContextChips:     chips,
		}
	}

	stats := make(map[string]*ingredientStat)
	var order []string
	// Which allergen categories each reaction touches, for symptom
	// correlation per group.
	reactionCategories := make([]map[AllergenCategory]struct{}, total)

	for i, r := range reactions {
		reactionCategories[i] = make(map[AllergenCategory]struct{})
		for _, cleaned := range NormalizeIngredients(r.SuspectedIngredients) {
			if !a.filter.IsValidIngredient(cleaned) {
				continue
			}
			key := strings.ToLower(cleaned)
			st, ok := stats[key]
			if !ok {
				st = &ingredientStat{label: DisplayLabel(cleaned)}
				stats[key] = st
				order = append(order, key)
			}
			// NormalizeIngredients dedups within the reaction, so each
			// ingredient counts at most once per reaction here.
			st.count++
			st.occurrences = append(st.occurrences, r.OccurredAt)
			if !containsString(st.foods, r.FoodName) {
				st.foods = append(st.foods, r.FoodName)
			}
			if c := Classify(key); c.IsAllergen {
				reactionCategories[i][c.BaseAllergenCategory] = struct{}{}
			}
		}
	}

	triggers := make([]Trigger, 0, len(order))
	triggerFoods := make(map[string][]string, len(order))
	for _, key := range order {
		st := stats[key]
		c := Classify(key)
		triggers = append(triggers, Trigger{
			IngredientLabel:       st.label,
			OccurrenceCount:       st.count,
			PercentageOfReactions: percentage(st.count, total),
			Trend:                 TrendFor(st.occurrences, now),
			IsAllergen:            c.IsAllergen,
			IsAdditive:            c.IsAdditive,
			BaseAllergenCategory:  c.BaseAllergenCategory,
		})
		triggerFoods[st.label] = st.foods
	}

	sortTriggers(triggers)

	var allergenTriggers, additiveTriggers, otherTriggers []Trigger
	for _, t := range triggers {
		switch {
		case t.IsAllergen:
			allergenTriggers = append(allergenTriggers, t)
		case t.IsAdditive:
			additiveTriggers = append(additiveTriggers, t)
		default:
			otherTriggers = append(otherTriggers, t)
		}
	}

	groups := buildAllergenGroups(allergenTriggers, reactions, reactionCategories)

	text, chips := composeInsight(reactions, triggers, groups, triggerFoods, confidence)

	return TriggerReport{
		AllTriggers:      triggers,
		AllergenGroups:   groups,
		AdditiveTriggers: emptyIfNil(additiveTriggers),
		OtherTriggers:    emptyIfNil(otherTriggers),
		Confidence:       confidence,
		InsightText:      text,
		ContextChips:     chips,
	}
}

// percentage rounds against the total reaction count supplied, never a
// filtered subset.
func percentage(count, total int) int {
	return int(math.Round(float64(count) / float64(total) * 100))
}

// sortTriggers orders by occurrence count descending, ties broken ascending
// alphabetically by display label. This order is load-bearing: the UI and
// the tests both depend on it being deterministic.
func sortTriggers(triggers []Trigger) {
	sort.SliceStable(triggers, func(i, j int) bool {
		if triggers[i].OccurrenceCount != triggers[j].OccurrenceCount {
			return triggers[i].OccurrenceCount > triggers[j].OccurrenceCount
		}
		return triggers[i].IngredientLabel < triggers[j].IngredientLabel
	})
}

func buildAllergenGroups(allergenTriggers []Trigger, reactions []Reaction, reactionCategories []map[AllergenCategory]struct{}) []AllergenGroup {
	members := make(map[AllergenCategory][]Trigger)
	for _, t := range allergenTriggers {
		members[t.BaseAllergenCategory] = append(members[t.BaseAllergenCategory], t)
	}

	groups := make([]AllergenGroup, 0, len(members))
	for cat, ts := range members {
		maxPct := 0
		maxCount := 0
		for _, t := range ts {
			if t.PercentageOfReactions > maxPct {
				maxPct = t.PercentageOfReactions
			}
			if t.OccurrenceCount > maxCount {
				maxCount = t.OccurrenceCount
			}
		}
		// One-off matches don't make a reportable group.
		if maxCount < allergenGroupMinOccurred {
			continue
		}
		groups = append(groups, AllergenGroup{
			Category:           cat,
			CategoryPercentage: maxPct,
			Members:            ts,
			TopSymptoms:        topSymptomsFor(cat, reactions, reactionCategories),
		})
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].CategoryPercentage != groups[j].CategoryPercentage {
			return groups[i].CategoryPercentage > groups[j].CategoryPercentage
		}
		return groups[i].Category < groups[j].Category
	})

	return groups
}

// topSymptomsFor returns up to three symptoms most often logged alongside
// reactions that mention the given allergen category.
func topSymptomsFor(cat AllergenCategory, reactions []Reaction, reactionCategories []map[AllergenCategory]struct{}) []SymptomCount {
	counts := make(map[string]int)
	display := make(map[string]string)
	for i, r := range reactions {
		if _, ok := reactionCategories[i][cat]; !ok {
			continue
		}
		seen := make(map[string]struct{})
		for _, sym := range r.Symptoms {
			key := strings.ToLower(strings.TrimSpace(sym))
			if key == "" {
				continue
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			counts[key]++
			if _, ok := display[key]; !ok {
				display[key] = strings.TrimSpace(sym)
			}
		}
	}

	out := make([]SymptomCount, 0, len(counts))
	for key, n := range counts {
		out = append(out, SymptomCount{Symptom: display[key], Count: n})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Symptom < out[j].Symptom
	})
	if len(out) > 3 {
		out = out[:3]
	}
	return out
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func emptyIfNil(ts []Trigger) []Trigger {
	if ts == nil {
		return []Trigger{}
	}
	return ts
}
