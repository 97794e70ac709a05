package persist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/l1jgo/delve/internal/config"
)

// SQLiteStore keeps snapshots in a local SQLite file. It is the default
// store for single-player runs.
type SQLiteStore struct {
	db   *sql.DB
	slot string
	log  *zap.Logger
}

func OpenSQLite(ctx context.Context, cfg config.SaveConfig, log *zap.Logger) (*SQLiteStore, error) {
	if strings.TrimSpace(cfg.Path) == "" {
		return nil, fmt.Errorf("save path is required")
	}
	dsn := filepath.Clean(cfg.Path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := RunMigrations(ctx, db, "sqlite3"); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db, slot: cfg.Slot, log: log}, nil
}

func (s *SQLiteStore) Save(ctx context.Context, snap *Snapshot) error {
	payload, err := Encode(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO saves (slot, depth, payload, saved_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT (slot) DO UPDATE SET depth = excluded.depth, payload = excluded.payload, saved_at = excluded.saved_at`,
		s.slot, snap.Depth, payload, time.Now().UTC().UnixMilli())
	if err != nil {
		return fmt.Errorf("save slot %s: %w", s.slot, err)
	}
	s.log.Debug("snapshot saved", zap.String("slot", s.slot), zap.Int("bytes", len(payload)))
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context) (*Snapshot, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM saves WHERE slot = ?`, s.slot).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSave
	}
	if err != nil {
		return nil, fmt.Errorf("load slot %s: %w", s.slot, err)
	}
	return Decode(payload)
}

func (s *SQLiteStore) Delete(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM saves WHERE slot = ?`, s.slot); err != nil {
		return fmt.Errorf("delete slot %s: %w", s.slot, err)
	}
	return nil
}

func (s *SQLiteStore) Exists(ctx context.Context) (bool, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM saves WHERE slot = ?`, s.slot).Scan(&n); err != nil {
		return false, fmt.Errorf("check slot %s: %w", s.slot, err)
	}
	return n > 0, nil
}

func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
