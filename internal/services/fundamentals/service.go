// Package fundamentals resolves company financial snapshots from EODHD
// with a cache-first strategy.
package fundamentals

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ternarybob/aestimo/internal/common"
	"github.com/ternarybob/aestimo/internal/eodhd"
	"github.com/ternarybob/aestimo/internal/interfaces"
	"github.com/ternarybob/aestimo/internal/models"
	"github.com/ternarybob/arbor"
)

// FundamentalsAPI is the slice of the EODHD client this service uses.
type FundamentalsAPI interface {
	GetFundamentals(ctx context.Context, symbol string) (*eodhd.FundamentalsResponse, error)
}

// Service serves snapshots from the cache while records are fresh and
// fetches from EODHD with write-through otherwise. A nil cache disables
// caching entirely.
type Service struct {
	api    FundamentalsAPI
	cache  interfaces.SnapshotStorage
	ttl    time.Duration
	logger arbor.ILogger
}

var _ interfaces.SnapshotProvider = (*Service)(nil)

// NewService creates a fundamentals provider. ttl controls cache
// freshness; zero or negative means records never expire.
func NewService(api FundamentalsAPI, cache interfaces.SnapshotStorage, ttl time.Duration, logger arbor.ILogger) *Service {
	return &Service{
		api:    api,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

// Name identifies the provider in logs and cached records.
func (s *Service) Name() string {
	return "eodhd"
}

// Snapshot returns the financial snapshot for an exchange-qualified or
// bare ticker symbol.
func (s *Service) Snapshot(ctx context.Context, ticker string) (*models.FinancialSnapshot, error) {
	parsed := common.ParseTicker(ticker)
	if parsed.Code == "" {
		return nil, fmt.Errorf("invalid ticker %q", ticker)
	}
	key := parsed.String()

	if s.cache != nil {
		rec, err := s.cache.Get(key)
		if err == nil && rec.Fresh(s.ttl) {
			s.logger.Debug().Str("ticker", key).Msg("Snapshot served from cache")
			snapshot := rec.Snapshot
			return &snapshot, nil
		}
		if err != nil && !errors.Is(err, interfaces.ErrNotFound) {
			s.logger.Warn().Err(err).Str("ticker", key).Msg("Snapshot cache read failed")
		}
	}

	resp, err := s.api.GetFundamentals(ctx, parsed.EODHDSymbol())
	if err != nil {
		return nil, fmt.Errorf("fundamentals fetch for %s: %w", key, err)
	}

	input, err := eodhd.ExtractInput(resp)
	if err != nil {
		if errors.Is(err, eodhd.ErrNoStatements) {
			return nil, fmt.Errorf("%s: %w", key, interfaces.ErrNotAvailable)
		}
		return nil, fmt.Errorf("fundamentals extract for %s: %w", key, err)
	}
	input.Ticker = key

	snapshot := models.NewFinancialSnapshot(*input)

	if s.cache != nil {
		rec := &models.SnapshotRecord{
			Ticker:    key,
			Snapshot:  snapshot,
			Source:    s.Name(),
			FetchedAt: time.Now(),
		}
		if err := s.cache.Save(rec); err != nil {
			s.logger.Warn().Err(err).Str("ticker", key).Msg("Snapshot cache write failed")
		}
	}

	s.logger.Debug().
		Str("ticker", key).
		Str("period", snapshot.PeriodEnd).
		Msg("Snapshot fetched from EODHD")

	return &snapshot, nil
}
