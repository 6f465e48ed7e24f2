package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucketBoundaries(t *testing.T) {
	cases := []struct {
		hour int
		want dayPart
	}{
		{5, morning},
		{11, morning},
		{12, afternoon},
		{16, afternoon},
		{17, evening},
		{20, evening},
		{21, night},
		{23, night},
		{0, night},
		{4, night},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, bucketFor(tc.hour), "hour %d", tc.hour)
	}
}

func TestPeakTimeOfDayTieBreaksByPriority(t *testing.T) {
	// One reaction in the evening, one at night: Evening wins the tie.
	reactions := []Reaction{
		{OccurredAt: time.Date(2026, 8, 29, 18, 0, 0, 0, time.UTC)},
		{OccurredAt: time.Date(2026, 8, 29, 22, 0, 0, 0, time.UTC)},
	}
	assert.Equal(t, evening, peakTimeOfDay(reactions))

	// Morning outranks everything at equal counts.
	reactions = append(reactions, Reaction{OccurredAt: time.Date(2026, 8, 29, 8, 0, 0, 0, time.UTC)})
	assert.Equal(t, morning, peakTimeOfDay(reactions))
}

func TestMostCommonSymptomCountsOncePerReaction(t *testing.T) {
	reactions := []Reaction{
		{Symptoms: []string{"Bloating", "bloating", "cramps"}},
		{Symptoms: []string{"bloating"}},
		{Symptoms: []string{"cramps"}},
	}
	symptom, count := mostCommonSymptom(reactions)
	assert.Equal(t, "Bloating", symptom)
	assert.Equal(t, 2, count)
}

func TestMostCommonSymptomTieBreaksAlphabetically(t *testing.T) {
	reactions := []Reaction{
		{Symptoms: []string{"itching"}},
		{Symptoms: []string{"bloating"}},
	}
	symptom, count := mostCommonSymptom(reactions)
	assert.Equal(t, "bloating", symptom)
	assert.Equal(t, 1, count)
}

func TestInsightNarrative(t *testing.T) {
	var reactions []Reaction
	for i := 0; i < 4; i++ {
		r := reactionAt(i+1, "Latte", []string{"bloating"}, []string{"milk"})
		r.OccurredAt = time.Date(2026, 8, 20+i, 18, 30, 0, 0, time.UTC)
		reactions = append(reactions, r)
	}
	reactions = append(reactions,
		reactionAt(6, "Apple", []string{"headache"}, []string{"apple"}),
	)

	report := ComputeReport(reactions, testNow)

	assert.Contains(t, report.InsightText, "Bloating has appeared in most of your logged reactions")
	assert.Contains(t, report.InsightText, "evening")
	assert.Contains(t, report.InsightText, "Milk appears in 80% of reactions")
	assert.Contains(t, report.InsightText, "(in Latte)")

	assert.Contains(t, report.ContextChips, "Top trigger: Milk (80%)")
	assert.Contains(t, report.ContextChips, "5 reactions logged")
}

func TestInsightOmitsTopTriggerBelowThreshold(t *testing.T) {
	// Every ingredient sits at 25%, under the 30% reporting threshold.
	reactions := []Reaction{
		reactionAt(1, "A", []string{"hives"}, []string{"apple"}),
		reactionAt(2, "B", []string{"hives"}, []string{"pear"}),
		reactionAt(3, "C", []string{"hives"}, []string{"plum"}),
		reactionAt(4, "D", []string{"hives"}, []string{"grape"}),
	}
	report := ComputeReport(reactions, testNow)

	assert.NotContains(t, report.InsightText, "appears in 25%")
	for _, chip := range report.ContextChips {
		assert.NotContains(t, chip, "Top trigger")
	}
}

func TestInsightBuildingState(t *testing.T) {
	report := ComputeReport([]Reaction{
		reactionAt(1, "Latte", []string{"bloating"}, []string{"milk"}),
	}, testNow)

	require.NotEmpty(t, report.InsightText)
	assert.Contains(t, report.InsightText, "2 more reactions")
	assert.Contains(t, report.ContextChips, "2 more reactions needed")
}

func TestInsightLimitsFoodNamesToTwo(t *testing.T) {
	reactions := []Reaction{
		reactionAt(1, "Latte", nil, []string{"milk"}),
		reactionAt(2, "Shake", nil, []string{"milk"}),
		reactionAt(3, "Flat White", nil, []string{"milk"}),
	}
	report := ComputeReport(reactions, testNow)

	assert.Contains(t, report.InsightText, "(in Latte and Shake)")
	assert.NotContains(t, report.InsightText, "Flat White")
}
