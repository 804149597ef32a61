package fundamentals

import (
	"context"
	"fmt"

	"github.com/ternarybob/aestimo/internal/common"
	"github.com/ternarybob/aestimo/internal/interfaces"
	"github.com/ternarybob/aestimo/internal/models"
	"github.com/ternarybob/arbor"
)

// SampleProvider serves bundled FY2024-shaped fundamentals for the
// default ticker universe. It backs offline mode and demos, so runs
// work without an EODHD subscription.
type SampleProvider struct {
	logger arbor.ILogger
}

var _ interfaces.SnapshotProvider = (*SampleProvider)(nil)

// NewSampleProvider creates the offline provider.
func NewSampleProvider(logger arbor.ILogger) *SampleProvider {
	return &SampleProvider{logger: logger}
}

// Name identifies the provider in logs and cached records.
func (p *SampleProvider) Name() string {
	return "sample"
}

// Snapshot returns the bundled snapshot for a ticker, or
// interfaces.ErrNotAvailable for symbols outside the sample universe.
func (p *SampleProvider) Snapshot(ctx context.Context, ticker string) (*models.FinancialSnapshot, error) {
	parsed := common.ParseTicker(ticker)
	input, ok := sampleInputs[parsed.Code]
	if !ok {
		return nil, fmt.Errorf("%s: %w", ticker, interfaces.ErrNotAvailable)
	}

	input.Ticker = parsed.String()
	snapshot := models.NewFinancialSnapshot(input)

	p.logger.Debug().Str("ticker", input.Ticker).Msg("Snapshot served from sample data")
	return &snapshot, nil
}

// sampleInput builds a fully populated input from figures in billions of USD.
func sampleInput(name string, assets, currentAssets, currentLiabilities, debt, equity, retained, revenue, ebit, netIncome, interest, marketCap float64) models.SnapshotInput {
	b := func(v float64) *float64 {
		return models.Float64Ptr(v * 1e9)
	}
	return models.SnapshotInput{
		Name:               name,
		Currency:           "USD",
		PeriodEnd:          "2024-12-31",
		TotalAssets:        b(assets),
		CurrentAssets:      b(currentAssets),
		CurrentLiabilities: b(currentLiabilities),
		TotalDebt:          b(debt),
		TotalEquity:        b(equity),
		RetainedEarnings:   b(retained),
		Revenue:            b(revenue),
		EBIT:               b(ebit),
		NetIncome:          b(netIncome),
		InterestExpense:    b(interest),
		MarketCap:          b(marketCap),
	}
}

// Figures approximate FY2024 filings, rounded. Banks score poorly on an
// asset-heavy model like this, which the insights call out.
var sampleInputs = map[string]models.SnapshotInput{
	"AAPL":  sampleInput("Apple Inc", 365, 153, 176, 107, 57, -19.2, 391, 123.2, 93.7, 3.8, 3400),
	"MSFT":  sampleInput("Microsoft Corporation", 512, 160, 125, 97, 268, 173.1, 245.1, 109.4, 88.1, 2.9, 3100),
	"GOOGL": sampleInput("Alphabet Inc", 450.3, 163.7, 89.1, 28.1, 325.1, 211, 350, 112.4, 100.1, 0.3, 2100),
	"TSLA":  sampleInput("Tesla Inc", 122.1, 58.4, 28.8, 8.2, 72.9, 32.7, 97.7, 7.6, 7.1, 0.35, 1000),
	"AMZN":  sampleInput("Amazon.com Inc", 624.9, 190.9, 179.4, 130.9, 285.9, 172.9, 638, 68.6, 59.2, 2.4, 2300),
	"META":  sampleInput("Meta Platforms Inc", 276.1, 100.1, 33.6, 49.1, 182.6, 96.1, 164.5, 69.4, 62.4, 0.7, 1800),
	"NVDA":  sampleInput("NVIDIA Corporation", 111.6, 80.1, 18, 11, 79.3, 68, 130.5, 81.5, 72.9, 0.25, 3300),
	"JPM":   sampleInput("JPMorgan Chase & Co", 4002.8, 1500, 1300, 750, 344.8, 310, 177.6, 61, 58.5, 110, 680),
	"BAC":   sampleInput("Bank of America Corp", 3261.5, 1200, 1100, 640, 295.6, 210, 101.9, 29, 27.1, 90, 330),
	"WMT":   sampleInput("Walmart Inc", 260.8, 79.5, 96.6, 60.2, 91, 94.4, 681, 29.3, 19.4, 2.7, 700),
}
