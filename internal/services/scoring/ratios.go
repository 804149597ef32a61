// Package scoring derives solvency ratios from financial snapshots and
// combines them into an Altman Z-Score, a risk zone, and a bounded 0-100
// composite credit score. Every function here is pure and total: division
// is guarded and undefined ratios stay explicit, so no call can fail.
package scoring

import (
	"github.com/ternarybob/aestimo/internal/models"
)

// ComputeRatios derives the full ratio set for one snapshot. Asset-scaled
// ratios fall back to 0 when total assets are not positive; the guarded
// ratios become undefined when their denominators are not positive.
func ComputeRatios(s models.FinancialSnapshot) models.RatioSet {
	rs := models.RatioSet{
		EquityToDebt:     guardedRatio(s.MarketCap, s.TotalDebt),
		DebtToEquity:     guardedRatio(s.TotalDebt, s.TotalEquity),
		InterestCoverage: guardedRatio(s.EBIT, s.InterestExpense),
	}

	if s.TotalAssets > 0 {
		workingCapital := s.CurrentAssets - s.CurrentLiabilities
		rs.WorkingCapitalToAssets = workingCapital / s.TotalAssets
		rs.RetainedEarningsToAssets = s.RetainedEarnings / s.TotalAssets
		rs.EBITToAssets = s.EBIT / s.TotalAssets
		rs.SalesToAssets = s.Revenue / s.TotalAssets
		rs.ReturnOnAssets = s.NetIncome / s.TotalAssets
	}

	return rs
}

// guardedRatio divides num by den, returning the undefined sentinel when
// the denominator is not positive.
func guardedRatio(num, den float64) models.Ratio {
	if den <= 0 {
		return models.UndefinedRatio()
	}
	return models.FiniteRatio(num / den)
}
