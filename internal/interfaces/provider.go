// Package interfaces provides service interfaces for dependency injection.
package interfaces

import (
	"context"
	"errors"

	"github.com/ternarybob/aestimo/internal/models"
)

// ErrNotAvailable signals that a company's fundamentals could not be
// retrieved at all. The scoring pipeline is never given a null snapshot;
// callers record the ticker as skipped and continue the batch.
var ErrNotAvailable = errors.New("fundamentals not available")

// SnapshotProvider fetches normalized financial figures for one company.
// Implementations perform any network I/O and apply the construction-time
// field defaulting; they return an error wrapping ErrNotAvailable when the
// underlying filing data does not exist.
type SnapshotProvider interface {
	// Name identifies the provider in logs and cache records
	Name() string

	// Snapshot returns the most recent financial snapshot for a ticker
	Snapshot(ctx context.Context, ticker string) (*models.FinancialSnapshot, error)
}
