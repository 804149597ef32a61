package analysis

import (
	"fmt"
	"strings"

	"github.com/ternarybob/aestimo/internal/models"
)

// recommendationCount bounds the strongest/weakest lists.
const recommendationCount = 3

// strongest returns the top n assessments. Callers pass the ranked
// slice, so this is a prefix.
func strongest(assessments []models.Assessment, n int) []models.Recommendation {
	if n > len(assessments) {
		n = len(assessments)
	}
	recs := make([]models.Recommendation, 0, n)
	for _, a := range assessments[:n] {
		recs = append(recs, recommendationFrom(a))
	}
	return recs
}

// weakest returns the bottom n assessments ordered worst first.
func weakest(assessments []models.Assessment, n int) []models.Recommendation {
	if n > len(assessments) {
		n = len(assessments)
	}
	recs := make([]models.Recommendation, 0, n)
	for i := 0; i < n; i++ {
		recs = append(recs, recommendationFrom(assessments[len(assessments)-1-i]))
	}
	return recs
}

func recommendationFrom(a models.Assessment) models.Recommendation {
	return models.Recommendation{
		Ticker:         a.Ticker,
		Name:           a.Name,
		CompositeScore: a.CompositeScore,
		Zone:           a.Zone,
	}
}

// buildInsights derives the plain-language findings attached to a report.
func buildInsights(assessments []models.Assessment, skipped []models.SkippedTicker) []string {
	var insights []string

	if len(assessments) == 0 {
		insights = append(insights, "No companies could be analyzed in this scan.")
		if len(skipped) > 0 {
			insights = append(insights, fmt.Sprintf("%d ticker(s) were skipped because fundamentals were unavailable.", len(skipped)))
		}
		return insights
	}

	var safe, grey, distress []string
	for _, a := range assessments {
		switch a.Zone {
		case models.ZoneSafe:
			safe = append(safe, a.Ticker)
		case models.ZoneGrey:
			grey = append(grey, a.Ticker)
		case models.ZoneDistress:
			distress = append(distress, a.Ticker)
		}
	}

	insights = append(insights, fmt.Sprintf(
		"%d of %d companies score in the Safe Zone, %d in the Grey Zone, %d in the Distress Zone.",
		len(safe), len(assessments), len(grey), len(distress)))

	top := assessments[0]
	insights = append(insights, fmt.Sprintf(
		"%s posts the strongest composite score (%.1f, %s).",
		top.Ticker, top.CompositeScore, top.Zone))

	if len(assessments) > 1 {
		bottom := assessments[len(assessments)-1]
		insights = append(insights, fmt.Sprintf(
			"%s ranks weakest with a Z-Score of %.2f (%s).",
			bottom.Ticker, bottom.ZScore, bottom.Zone))
	}

	if len(distress) > 0 {
		insights = append(insights, fmt.Sprintf(
			"Distress Zone names warrant a closer look at refinancing risk: %s.",
			strings.Join(distress, ", ")))
	}

	if len(skipped) > 0 {
		insights = append(insights, fmt.Sprintf(
			"%d ticker(s) were skipped because fundamentals were unavailable.", len(skipped)))
	}

	return insights
}
