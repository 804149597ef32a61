package scoring

import "github.com/ternarybob/aestimo/internal/models"

// Assess runs the full scoring pipeline for one snapshot: ratios, Z-Score,
// zone, composite. It never fails: a snapshot of all-default values still
// yields a well-defined assessment, with the undefined equity-to-debt
// ratio taking the Z-Score cap. Assessing the same snapshot twice yields
// identical results.
func Assess(s models.FinancialSnapshot) models.Assessment {
	ratios := ComputeRatios(s)
	z := ZScore(ratios)
	total, breakdown := CompositeScore(ratios, z)

	return models.Assessment{
		Ticker:         s.Ticker,
		Name:           s.Name,
		Snapshot:       s,
		Ratios:         ratios,
		ZScore:         z,
		Zone:           ClassifyZone(z),
		Breakdown:      breakdown,
		CompositeScore: total,
	}
}
