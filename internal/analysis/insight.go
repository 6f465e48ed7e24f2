package analysis

import (
	"fmt"
	"sort"
	"strings"
)

// Time-of-day buckets for the peak-time phrase, in fixed priority order for
// tie-breaking: Morning, Afternoon, Evening, Night.
type dayPart int

const (
	morning dayPart = iota
	afternoon
	evening
	night
)

func (d dayPart) String() string {
	switch d {
	case morning:
		return "morning"
	case afternoon:
		return "afternoon"
	case evening:
		return "evening"
	default:
		return "night"
	}
}

// bucketFor places an hour-of-day into a bucket: Morning [5,12),
// Afternoon [12,17), Evening [17,21), Night [21,5).
func bucketFor(hour int) dayPart {
	switch {
	case hour >= 5 && hour < 12:
		return morning
	case hour >= 12 && hour < 17:
		return afternoon
	case hour >= 17 && hour < 21:
		return evening
	default:
		return night
	}
}

// peakTimeOfDay returns the modal bucket of the reaction timestamps. Ties
// resolve by bucket priority order, so the result is deterministic.
func peakTimeOfDay(reactions []Reaction) dayPart {
	var counts [4]int
	for _, r := range reactions {
		// The timestamp's own location is the user's wall clock.
		counts[bucketFor(r.OccurredAt.Hour())]++
	}
	peak := morning
	for d := morning; d <= night; d++ {
		if counts[d] > counts[peak] {
			peak = d
		}
	}
	return peak
}

// mostCommonSymptom returns the symptom logged in the most reactions, each
// reaction counting a symptom at most once. Ties resolve alphabetically.
func mostCommonSymptom(reactions []Reaction) (string, int) {
	counts := make(map[string]int)
	display := make(map[string]string)
	for _, r := range reactions {
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

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	best := ""
	bestCount := 0
	for _, k := range keys {
		if counts[k] > bestCount {
			best = k
			bestCount = counts[k]
		}
	}
	return display[best], bestCount
}

// buildingInsight is the fixed message shown while the reaction history is
// still too small to analyse.
func buildingInsight(total int) (string, []string) {
	needed := minReactionsForReport - total
	plural := "reactions"
	if needed == 1 {
		plural = "reaction"
	}
	text := fmt.Sprintf("Your trigger analysis is still building. Log %d more %s to unlock it.", needed, plural)
	chips := []string{fmt.Sprintf("%d more %s needed", needed, plural)}
	return text, chips
}

// composeInsight renders the aggregate results into a short narrative plus
// context chips. Pure formatting: every number here was computed upstream.
func composeInsight(reactions []Reaction, triggers []Trigger, groups []AllergenGroup, triggerFoods map[string][]string, confidence ConfidenceLevel) (string, []string) {
	var b strings.Builder
	chips := []string{}

	symptom, symptomCount := mostCommonSymptom(reactions)
	peak := peakTimeOfDay(reactions)

	if symptom != "" {
		fmt.Fprintf(&b, "%s has appeared in most of your logged reactions, most often in the %s.", DisplayLabel(symptom), peak)
		chips = append(chips, fmt.Sprintf("Most common: %s (%dx)", DisplayLabel(symptom), symptomCount))
		chips = append(chips, fmt.Sprintf("Peak time: %s", titleCaser.String(peak.String())))
	}

	if top := topTrigger(triggers); top != nil {
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		foods := triggerFoods[top.IngredientLabel]
		if len(foods) > 2 {
			foods = foods[:2]
		}
		if len(foods) > 0 {
			fmt.Fprintf(&b, "%s appears in %d%% of reactions (in %s).",
				top.IngredientLabel, top.PercentageOfReactions, strings.Join(foods, " and "))
		} else {
			fmt.Fprintf(&b, "%s appears in %d%% of reactions.",
				top.IngredientLabel, top.PercentageOfReactions)
		}
		chips = append(chips, fmt.Sprintf("Top trigger: %s (%d%%)", top.IngredientLabel, top.PercentageOfReactions))
	}

	if len(groups) > 0 {
		chips = append(chips, fmt.Sprintf("Watch: %s", groups[0].Category))
	}
	chips = append(chips, fmt.Sprintf("%d reactions logged", len(reactions)))

	text := b.String()
	if text == "" {
		text = confidence.Description
	}
	return text, chips
}

// topTrigger returns the leading trigger if it clears the reporting
// threshold, nil otherwise. Below the threshold nothing headlines.
func topTrigger(triggers []Trigger) *Trigger {
	if len(triggers) == 0 {
		return nil
	}
	if triggers[0].PercentageOfReactions < topTriggerMinPercentage {
		return nil
	}
	return &triggers[0]
}
