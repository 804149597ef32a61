package scoring

import "github.com/ternarybob/aestimo/internal/models"

// Composite score component caps.
const (
	maxZPoints             = 40.0
	maxCoveragePoints      = 25.0
	maxLeveragePoints      = 20.0
	maxProfitabilityPoints = 15.0
	maxCompositeScore      = 100.0
)

// CompositeScore blends the ratio set and Z-Score into a 0-100 credit
// score plus its per-component breakdown. The undefined-ratio cases are
// asymmetric: undefined interest coverage (no interest burden) saturates
// its component, while undefined debt-to-equity (no equity) zeroes its
// component.
func CompositeScore(r models.RatioSet, z float64) (float64, models.ScoreBreakdown) {
	b := models.ScoreBreakdown{
		ZScorePoints:        clamp(z*10, 0, maxZPoints),
		CoveragePoints:      coveragePoints(r.InterestCoverage),
		LeveragePoints:      leveragePoints(r.DebtToEquity),
		ProfitabilityPoints: clamp(r.ReturnOnAssets*100, 0, maxProfitabilityPoints),
	}

	total := b.ZScorePoints + b.CoveragePoints + b.LeveragePoints + b.ProfitabilityPoints
	if total > maxCompositeScore {
		total = maxCompositeScore
	}
	return total, b
}

// coveragePoints awards up to 25 points for interest coverage. A company
// with no interest burden at all earns the full component.
func coveragePoints(ic models.Ratio) float64 {
	v, ok := ic.Value()
	if !ok {
		return maxCoveragePoints
	}
	return clamp(v*2, 0, maxCoveragePoints)
}

// leveragePoints awards up to 20 points for low leverage. An undefined
// debt-to-equity ratio means zero or negative equity, the maximum
// leverage risk, and earns nothing.
func leveragePoints(de models.Ratio) float64 {
	v, ok := de.Value()
	if !ok {
		return 0
	}
	return clamp(20-v*5, 0, maxLeveragePoints)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
