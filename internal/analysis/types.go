package analysis

import "time"

// Severity indicates how strong a logged reaction was.
type Severity string

const (
	SeverityMild     Severity = "mild"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
)

// Reaction is the read-only input record for the analysis pipeline. It is a
// snapshot of what the user logged; the pipeline never mutates it.
type Reaction struct {
	ID                   string    `json:"id"`
	FoodName             string    `json:"food_name"`
	OccurredAt           time.Time `json:"occurred_at"`
	Severity             Severity  `json:"severity"`
	Symptoms             []string  `json:"symptoms"`
	SuspectedIngredients []string  `json:"suspected_ingredients"`
	Notes                string    `json:"notes,omitempty"`
}

// Trend describes how often an ingredient has shown up recently compared to
// the preceding 30-day window.
type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendStable     Trend = "stable"
	TrendDecreasing Trend = "decreasing"
)

// Trigger is an ingredient statistically associated with logged reactions.
type Trigger struct {
	IngredientLabel       string           `json:"ingredient_label"`
	OccurrenceCount       int              `json:"occurrence_count"`
	PercentageOfReactions int              `json:"percentage_of_reactions"`
	Trend                 Trend            `json:"trend"`
	IsAllergen            bool             `json:"is_allergen"`
	IsAdditive            bool             `json:"is_additive"`
	BaseAllergenCategory  AllergenCategory `json:"base_allergen_category,omitempty"`
}

// SymptomCount pairs a symptom with the number of reactions it appeared in.
type SymptomCount struct {
	Symptom string `json:"symptom"`
	Count   int    `json:"count"`
}

// AllergenGroup collects the triggers attributed to one regulatory allergen
// category.
type AllergenGroup struct {
	Category           AllergenCategory `json:"category"`
	CategoryPercentage int              `json:"category_percentage"`
	Members            []Trigger        `json:"members"`
	TopSymptoms        []SymptomCount   `json:"top_symptoms"`
}

// TriggerReport is the single output of the pipeline. It is recomputed from
// scratch on every invocation and never persisted by this package.
type TriggerReport struct {
	AllTriggers      []Trigger       `json:"all_triggers"`
	AllergenGroups   []AllergenGroup `json:"allergen_groups"`
	AdditiveTriggers []Trigger       `json:"additive_triggers"`
	OtherTriggers    []Trigger       `json:"other_triggers"`
	Confidence       ConfidenceLevel `json:"confidence"`
	InsightText      string          `json:"insight_text"`
	ContextChips     []string        `json:"context_chips"`
}
