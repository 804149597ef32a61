package models

import (
	"fmt"
	"time"
)

// RiskZone is the qualitative bucket derived from the Altman Z-Score.
type RiskZone string

const (
	ZoneSafe     RiskZone = "Safe Zone"
	ZoneGrey     RiskZone = "Grey Zone"
	ZoneDistress RiskZone = "Distress Zone"
)

// ScoreBreakdown itemizes the composite score. Each component is clamped
// to its own range before summing; the sum is capped at 100.
type ScoreBreakdown struct {
	ZScorePoints        float64 `json:"z_score_points"`       // 0-40
	CoveragePoints      float64 `json:"coverage_points"`      // 0-25
	LeveragePoints      float64 `json:"leverage_points"`      // 0-20
	ProfitabilityPoints float64 `json:"profitability_points"` // 0-15
}

// Assessment is the per-company scoring result. Constructed once by the
// scoring pipeline and never mutated afterwards.
type Assessment struct {
	Ticker         string            `json:"ticker"`
	Name           string            `json:"name,omitempty"`
	Snapshot       FinancialSnapshot `json:"snapshot"`
	Ratios         RatioSet          `json:"ratios"`
	ZScore         float64           `json:"z_score"`
	Zone           RiskZone          `json:"zone"`
	Breakdown      ScoreBreakdown    `json:"breakdown"`
	CompositeScore float64           `json:"composite_score"`
}

// DisplayRow is the formatted reporting view of an assessment. Undefined
// ratios render as "N/A".
type DisplayRow struct {
	Ticker           string
	ZScore           string // 2 decimals
	Zone             string
	Composite        string // 1 decimal
	DebtToEquity     string // 2 decimals or N/A
	InterestCoverage string // 2 decimals or N/A
	ROAPercent       string // percentage, 2 decimals
	WorkingCapital   string // 3 decimals
	AssetTurnover    string // 2 decimals
}

// DisplayRow returns the formatted view used by console and report output.
func (a Assessment) DisplayRow() DisplayRow {
	return DisplayRow{
		Ticker:           a.Ticker,
		ZScore:           fmt.Sprintf("%.2f", a.ZScore),
		Zone:             string(a.Zone),
		Composite:        fmt.Sprintf("%.1f", a.CompositeScore),
		DebtToEquity:     a.Ratios.DebtToEquity.Format(2),
		InterestCoverage: a.Ratios.InterestCoverage.Format(2),
		ROAPercent:       fmt.Sprintf("%.2f", a.Ratios.ReturnOnAssets*100),
		WorkingCapital:   fmt.Sprintf("%.3f", a.Ratios.WorkingCapitalToAssets),
		AssetTurnover:    fmt.Sprintf("%.2f", a.Ratios.SalesToAssets),
	}
}

// SummaryStats aggregates a completed scan.
type SummaryStats struct {
	Companies       int     `json:"companies"`
	MeanZScore      float64 `json:"mean_z_score"`
	MedianComposite float64 `json:"median_composite"`
	SafeCount       int     `json:"safe_count"`
	GreyCount       int     `json:"grey_count"`
	DistressCount   int     `json:"distress_count"`
}

// Recommendation points at a company in the strongest or weakest list.
type Recommendation struct {
	Ticker         string   `json:"ticker"`
	Name           string   `json:"name,omitempty"`
	CompositeScore float64  `json:"composite_score"`
	Zone           RiskZone `json:"zone"`
}

// SkippedTicker records a company excluded from a scan because its
// fundamentals could not be retrieved.
type SkippedTicker struct {
	Ticker string `json:"ticker"`
	Reason string `json:"reason"`
}

// PortfolioReport is the terminal artifact of one scan: the ordered
// assessment collection plus derived summary material.
type PortfolioReport struct {
	ID            string           `json:"id"`
	PortfolioName string           `json:"portfolio_name,omitempty"`
	GeneratedAt   time.Time        `json:"generated_at"`
	Assessments   []Assessment     `json:"assessments"` // sorted by composite score, descending
	Summary       SummaryStats     `json:"summary"`
	Strongest     []Recommendation `json:"strongest,omitempty"`
	Weakest       []Recommendation `json:"weakest,omitempty"`
	Insights      []string         `json:"insights,omitempty"`
	Skipped       []SkippedTicker  `json:"skipped,omitempty"`
}

// SnapshotRecord is a cached snapshot with fetch metadata.
type SnapshotRecord struct {
	Ticker    string            `json:"ticker"`
	Snapshot  FinancialSnapshot `json:"snapshot"`
	Source    string            `json:"source"`
	FetchedAt time.Time         `json:"fetched_at"`
}

// Fresh reports whether the record is younger than ttl. A non-positive
// ttl means records never expire.
func (r *SnapshotRecord) Fresh(ttl time.Duration) bool {
	if ttl <= 0 {
		return true
	}
	return time.Since(r.FetchedAt) < ttl
}
