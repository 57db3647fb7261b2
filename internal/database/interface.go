// Package database persists evaluated pairs. Implementations exist
// for SQLite (default) and MySQL behind the Store interface.
package database

import (
	"context"
	"fmt"

	"github.com/pairsentry/pairsentry/internal/config"
	"github.com/pairsentry/pairsentry/models"
)

// Store is the pair storage interface used throughout pairsentry.
type Store interface {
	// SavePair records one evaluated pair. The security score column is
	// null when the pair's security check failed.
	SavePair(ctx context.Context, pair models.PairData) error

	// RecentPairs returns the most recently evaluated pairs, newest first.
	RecentPairs(ctx context.Context, limit int) ([]models.PairData, error)

	// FindPair returns the latest evaluation of a pair by token symbol
	// (case-insensitive), or nil when the token was never seen.
	FindPair(ctx context.Context, token string) (*models.PairData, error)

	// Migrate applies pending schema migrations in order.
	Migrate(ctx context.Context) error

	// Ping verifies the database connection is alive.
	Ping(ctx context.Context) error

	// Close releases the database connection.
	Close() error

	// Driver returns the backend name: "sqlite" or "mysql".
	Driver() string
}

// New returns a Store implementation matching cfg.Driver.
// SQLite is the default when driver is empty or unrecognised.
func New(cfg config.DatabaseConfig) (Store, error) {
	switch cfg.Driver {
	case "mysql":
		return NewMySQL(cfg)
	case "sqlite", "sqlite3", "":
		return NewSQLite(cfg)
	default:
		return nil, fmt.Errorf("unsupported database driver %q (supported: sqlite, mysql)", cfg.Driver)
	}
}
