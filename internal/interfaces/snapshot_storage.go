package interfaces

import (
	"errors"

	"github.com/ternarybob/aestimo/internal/models"
)

// ErrNotFound signals a cache miss.
var ErrNotFound = errors.New("snapshot not cached")

// SnapshotStorage caches fetched snapshots between scans. Storage failures
// must degrade to a live fetch, never fail the scan.
type SnapshotStorage interface {
	// Save upserts a snapshot record keyed by ticker
	Save(rec *models.SnapshotRecord) error

	// Get returns the cached record for a ticker, or an error wrapping
	// ErrNotFound on a miss
	Get(ticker string) (*models.SnapshotRecord, error)

	// Delete removes a cached record; deleting a missing record is not an error
	Delete(ticker string) error

	// Close releases the underlying store
	Close() error
}
