// Package badger persists snapshot records in an embedded Badger store
// via badgerhold, so repeated scans reuse fetched fundamentals.
package badger

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ternarybob/aestimo/internal/common"
	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"
)

// BadgerDB wraps the badgerhold store backing the snapshot cache.
type BadgerDB struct {
	store *badgerhold.Store
}

// NewBadgerDB opens the snapshot cache at the configured path, creating
// the directory as needed. reset_on_startup wipes the store first so a
// scan runs against live data only.
func NewBadgerDB(logger arbor.ILogger, config *common.CacheConfig) (*BadgerDB, error) {
	if config.ResetOnStartup {
		resetStore(logger, config.Path)
	}

	if err := os.MkdirAll(filepath.Dir(config.Path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	options := badgerhold.DefaultOptions
	options.Dir = config.Path
	options.ValueDir = config.Path
	options.Logger = nil // Disable default badger logger to use arbor

	store, err := badgerhold.Open(options)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger database: %w", err)
	}

	logger.Debug().Str("path", config.Path).Msg("Snapshot cache opened")

	return &BadgerDB{store: store}, nil
}

// resetStore deletes an existing store directory. Failures are logged and
// ignored; opening the stale store is better than refusing to run.
func resetStore(logger arbor.ILogger, path string) {
	if _, err := os.Stat(path); err != nil {
		return
	}
	logger.Debug().Str("path", path).Msg("Deleting existing cache (reset_on_startup=true)")
	if err := os.RemoveAll(path); err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("Failed to delete cache directory")
	}
}

// Store returns the underlying badgerhold store
func (b *BadgerDB) Store() *badgerhold.Store {
	return b.store
}

// Close closes the database connection
func (b *BadgerDB) Close() error {
	if b.store != nil {
		return b.store.Close()
	}
	return nil
}
