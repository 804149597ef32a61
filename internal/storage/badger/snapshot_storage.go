package badger

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/aestimo/internal/interfaces"
	"github.com/ternarybob/aestimo/internal/models"
	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"
)

// SnapshotStorage persists fetched financial snapshots between runs so
// repeated scans skip the fundamentals API while records are fresh.
type SnapshotStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

var _ interfaces.SnapshotStorage = (*SnapshotStorage)(nil)

// NewSnapshotStorage creates a snapshot storage backed by the given connection.
func NewSnapshotStorage(db *BadgerDB, logger arbor.ILogger) *SnapshotStorage {
	return &SnapshotStorage{
		db:     db,
		logger: logger,
	}
}

// Save upserts a snapshot record keyed by ticker.
func (s *SnapshotStorage) Save(rec *models.SnapshotRecord) error {
	if rec == nil || rec.Ticker == "" {
		return fmt.Errorf("snapshot record requires a ticker")
	}

	if rec.FetchedAt.IsZero() {
		rec.FetchedAt = time.Now()
	}

	key := storageKey(rec.Ticker)
	if err := s.db.Store().Upsert(key, rec); err != nil {
		return fmt.Errorf("failed to save snapshot for %s: %w", rec.Ticker, err)
	}

	s.logger.Debug().Str("ticker", rec.Ticker).Str("source", rec.Source).Msg("Snapshot cached")
	return nil
}

// Get retrieves a snapshot record by ticker. Returns
// interfaces.ErrNotFound when no record exists.
func (s *SnapshotStorage) Get(ticker string) (*models.SnapshotRecord, error) {
	var rec models.SnapshotRecord
	err := s.db.Store().Get(storageKey(ticker), &rec)
	if errors.Is(err, badgerhold.ErrNotFound) {
		return nil, interfaces.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot for %s: %w", ticker, err)
	}
	return &rec, nil
}

// Delete removes a cached snapshot. Missing records are not an error.
func (s *SnapshotStorage) Delete(ticker string) error {
	err := s.db.Store().Delete(storageKey(ticker), models.SnapshotRecord{})
	if errors.Is(err, badgerhold.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to delete snapshot for %s: %w", ticker, err)
	}
	return nil
}

// Close closes the underlying connection.
func (s *SnapshotStorage) Close() error {
	return s.db.Close()
}

// storageKey normalizes tickers so "nyse:jpm" and "NYSE:JPM" share a record.
func storageKey(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}
