// Package persist saves and restores runs. A run is captured as a Snapshot,
// encoded with CBOR, checksummed with blake2b and kept in a SQLite file or a
// Postgres table, one row per slot.
package persist

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/l1jgo/delve/internal/config"
)

// Store keeps at most one snapshot per slot.
type Store interface {
	Save(ctx context.Context, snap *Snapshot) error
	// Load returns ErrNoSave when the slot is empty.
	Load(ctx context.Context) (*Snapshot, error)
	Delete(ctx context.Context) error
	Exists(ctx context.Context) (bool, error)
	Close() error
}

// Open returns the store selected by cfg.Driver.
func Open(ctx context.Context, cfg config.SaveConfig, log *zap.Logger) (Store, error) {
	switch cfg.Driver {
	case "sqlite":
		s, err := OpenSQLite(ctx, cfg, log)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return s, nil
	case "postgres":
		s, err := OpenPostgres(ctx, cfg, log)
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}
		return s, nil
	}
	return nil, fmt.Errorf("unknown save driver %q", cfg.Driver)
}
