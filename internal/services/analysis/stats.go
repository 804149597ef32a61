package analysis

import (
	"sort"

	"github.com/ternarybob/aestimo/internal/models"
)

// computeSummary aggregates scan-level statistics. An empty scan yields
// a zero summary rather than an error.
func computeSummary(assessments []models.Assessment) models.SummaryStats {
	stats := models.SummaryStats{Companies: len(assessments)}
	if len(assessments) == 0 {
		return stats
	}

	var zTotal float64
	for _, a := range assessments {
		zTotal += a.ZScore
		switch a.Zone {
		case models.ZoneSafe:
			stats.SafeCount++
		case models.ZoneGrey:
			stats.GreyCount++
		case models.ZoneDistress:
			stats.DistressCount++
		}
	}
	stats.MeanZScore = zTotal / float64(len(assessments))
	stats.MedianComposite = medianComposite(assessments)

	return stats
}

// medianComposite returns the median composite score. Even-sized scans
// average the two middle values.
func medianComposite(assessments []models.Assessment) float64 {
	scores := make([]float64, len(assessments))
	for i, a := range assessments {
		scores[i] = a.CompositeScore
	}
	sort.Float64s(scores)

	mid := len(scores) / 2
	if len(scores)%2 == 1 {
		return scores[mid]
	}
	return (scores[mid-1] + scores[mid]) / 2
}
