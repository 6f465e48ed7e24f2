package analysis

import "time"

const trendWindow = 30 * 24 * time.Hour

// TrendFor compares how many of the given occurrences fall inside the last
// 30 days against the preceding 30-day window. Windows are anchored on the
// caller-supplied now, never the system clock, so results are
// reproducible. The recent window is [now-30d, now]; the previous window is
// [now-60d, now-30d).
func TrendFor(occurrences []time.Time, now time.Time) Trend {
	recentStart := now.Add(-trendWindow)
	previousStart := now.Add(-2 * trendWindow)

	var recent, previous int
	for _, t := range occurrences {
		switch {
		case !t.Before(recentStart) && !t.After(now):
			recent++
		case !t.Before(previousStart) && t.Before(recentStart):
			previous++
		}
	}

	switch {
	case recent > previous:
		return TrendIncreasing
	case recent < previous:
		return TrendDecreasing
	default:
		return TrendStable
	}
}
