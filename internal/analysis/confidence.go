package analysis

import "fmt"

// ConfidenceLabel is a qualitative tier of statistical reliability, a pure
// function of sample size.
type ConfidenceLabel string

const (
	ConfidenceNotEnoughData ConfidenceLabel = "not_enough_data"
	ConfidenceLow           ConfidenceLabel = "low"
	ConfidenceModerate      ConfidenceLabel = "moderate"
	ConfidenceGood          ConfidenceLabel = "good"
	ConfidenceHigh          ConfidenceLabel = "high"
)

// ConfidenceLevel pairs the tier with a human-readable description.
type ConfidenceLevel struct {
	Label       ConfidenceLabel `json:"label"`
	Description string          `json:"description"`
}

// minReactionsForReport is the smallest reaction set that produces triggers.
const minReactionsForReport = 3

// ConfidenceFor maps a total reaction count to a confidence tier. The
// boundaries are inclusive: 3 is Low, 6 is Moderate, 11 is Good, 21 is High.
func ConfidenceFor(reactionCount int) ConfidenceLevel {
	switch {
	case reactionCount < minReactionsForReport:
		return ConfidenceLevel{
			Label:       ConfidenceNotEnoughData,
			Description: "Log at least 3 reactions to see your trigger analysis",
		}
	case reactionCount <= 5:
		return ConfidenceLevel{
			Label:       ConfidenceLow,
			Description: fmt.Sprintf("Early signals from %d logged reactions; patterns may shift as you log more", reactionCount),
		}
	case reactionCount <= 10:
		return ConfidenceLevel{
			Label:       ConfidenceModerate,
			Description: fmt.Sprintf("Emerging patterns from %d logged reactions", reactionCount),
		}
	case reactionCount <= 20:
		return ConfidenceLevel{
			Label:       ConfidenceGood,
			Description: fmt.Sprintf("Reliable patterns from %d logged reactions", reactionCount),
		}
	default:
		return ConfidenceLevel{
			Label:       ConfidenceHigh,
			Description: fmt.Sprintf("Strong patterns from %d logged reactions", reactionCount),
		}
	}
}
