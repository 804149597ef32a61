package scoring

import "github.com/ternarybob/aestimo/internal/models"

// Weights of the five-factor public-company Altman model.
const (
	weightWorkingCapital   = 1.2
	weightRetainedEarnings = 1.4
	weightEBIT             = 3.3
	weightMarketEquity     = 0.6
	weightSales            = 1.0
)

// equityToDebtCap bounds the market-equity factor so near-zero-debt
// companies cannot dominate the sum. An undefined equity-to-debt ratio
// (no debt at all) takes the cap; the sentinel never reaches the
// arithmetic unclamped.
const equityToDebtCap = 10.0

// Z-Score zone thresholds. Both comparisons are strict: a score of
// exactly 2.99 is grey, exactly 1.8 is distressed.
const (
	SafeThreshold     = 2.99
	DistressThreshold = 1.8
)

// ZScore combines a ratio set into the Altman Z-Score. The result is an
// unbounded real number.
func ZScore(r models.RatioSet) float64 {
	equityToDebt := r.EquityToDebt.Or(equityToDebtCap)
	if equityToDebt > equityToDebtCap {
		equityToDebt = equityToDebtCap
	}

	return weightWorkingCapital*r.WorkingCapitalToAssets +
		weightRetainedEarnings*r.RetainedEarningsToAssets +
		weightEBIT*r.EBITToAssets +
		weightMarketEquity*equityToDebt +
		weightSales*r.SalesToAssets
}

// ClassifyZone maps a Z-Score to its risk zone.
func ClassifyZone(z float64) models.RiskZone {
	switch {
	case z > SafeThreshold:
		return models.ZoneSafe
	case z > DistressThreshold:
		return models.ZoneGrey
	default:
		return models.ZoneDistress
	}
}
