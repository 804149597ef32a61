// Package analysis orchestrates portfolio risk scans: concurrent
// snapshot fetches, per-company scoring, and report assembly.
package analysis

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ternarybob/aestimo/internal/interfaces"
	"github.com/ternarybob/aestimo/internal/models"
	"github.com/ternarybob/aestimo/internal/services/scoring"
	"github.com/ternarybob/arbor"
)

// Service runs portfolio scans against a snapshot provider.
type Service struct {
	provider    interfaces.SnapshotProvider
	concurrency int
	logger      arbor.ILogger
}

var _ interfaces.AnalysisService = (*Service)(nil)

// NewService creates an analysis service. concurrency bounds the
// parallel snapshot fetches.
func NewService(provider interfaces.SnapshotProvider, concurrency int, logger arbor.ILogger) *Service {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Service{
		provider:    provider,
		concurrency: concurrency,
		logger:      logger,
	}
}

// Run scans the tickers and assembles the portfolio report. Tickers
// whose fundamentals cannot be retrieved are logged, recorded in the
// report, and excluded; a failed ticker never aborts the batch.
func (s *Service) Run(ctx context.Context, portfolioName string, tickers []string) (*models.PortfolioReport, error) {
	if len(tickers) == 0 {
		return nil, fmt.Errorf("no tickers to analyze")
	}

	started := time.Now()
	s.logger.Info().
		Str("portfolio", portfolioName).
		Int("tickers", len(tickers)).
		Str("provider", s.provider.Name()).
		Msg("Starting risk scan")

	type outcome struct {
		assessment *models.Assessment
		skipped    *models.SkippedTicker
	}

	outcomes := make([]outcome, len(tickers))
	sem := make(chan struct{}, s.concurrency)
	var wg sync.WaitGroup

	for i, ticker := range tickers {
		wg.Add(1)
		go func(i int, ticker string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			snapshot, err := s.provider.Snapshot(ctx, ticker)
			if err != nil {
				s.logger.Warn().Err(err).Str("ticker", ticker).Msg("Skipping ticker")
				outcomes[i] = outcome{skipped: &models.SkippedTicker{
					Ticker: ticker,
					Reason: err.Error(),
				}}
				return
			}

			assessment := scoring.Assess(*snapshot)
			s.logger.Debug().
				Str("ticker", assessment.Ticker).
				Str("zone", string(assessment.Zone)).
				Msg("Company scored")
			outcomes[i] = outcome{assessment: &assessment}
		}(i, ticker)
	}

	wg.Wait()

	assessments := make([]models.Assessment, 0, len(tickers))
	var skipped []models.SkippedTicker
	for _, o := range outcomes {
		if o.assessment != nil {
			assessments = append(assessments, *o.assessment)
		}
		if o.skipped != nil {
			skipped = append(skipped, *o.skipped)
		}
	}

	// Rank by composite score; ties fall back to ticker for stable output.
	sort.SliceStable(assessments, func(a, b int) bool {
		if assessments[a].CompositeScore != assessments[b].CompositeScore {
			return assessments[a].CompositeScore > assessments[b].CompositeScore
		}
		return assessments[a].Ticker < assessments[b].Ticker
	})

	report := &models.PortfolioReport{
		ID:            uuid.New().String(),
		PortfolioName: portfolioName,
		GeneratedAt:   time.Now(),
		Assessments:   assessments,
		Summary:       computeSummary(assessments),
		Strongest:     strongest(assessments, recommendationCount),
		Weakest:       weakest(assessments, recommendationCount),
		Insights:      buildInsights(assessments, skipped),
		Skipped:       skipped,
	}

	s.logger.Info().
		Str("report_id", report.ID).
		Int("analyzed", len(assessments)).
		Int("skipped", len(skipped)).
		Str("duration", time.Since(started).Round(time.Millisecond).String()).
		Msg("Risk scan complete")

	return report, nil
}
