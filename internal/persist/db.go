package persist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"

	"github.com/l1jgo/delve/internal/config"
)

// PostgresStore keeps snapshots in the saves table of a Postgres database.
type PostgresStore struct {
	Pool *pgxpool.Pool
	slot string
	log  *zap.Logger
}

func OpenPostgres(ctx context.Context, cfg config.SaveConfig, log *zap.Logger) (*PostgresStore, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	poolCfg.MaxConns = int32(cfg.MaxOpenConns)
	poolCfg.MinConns = int32(cfg.MaxIdleConns)
	poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect to db: %w", err)
	}

	// Verify connection
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()
	if err := RunMigrations(ctx, db, "postgres"); err != nil {
		pool.Close()
		return nil, err
	}

	return &PostgresStore{Pool: pool, slot: cfg.Slot, log: log}, nil
}

func (s *PostgresStore) Save(ctx context.Context, snap *Snapshot) error {
	payload, err := Encode(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	_, err = s.Pool.Exec(ctx,
		`INSERT INTO saves (slot, depth, payload, saved_at) VALUES ($1, $2, $3, now())
		 ON CONFLICT (slot) DO UPDATE SET depth = EXCLUDED.depth, payload = EXCLUDED.payload, saved_at = now()`,
		s.slot, snap.Depth, payload)
	if err != nil {
		return fmt.Errorf("save slot %s: %w", s.slot, err)
	}
	s.log.Debug("snapshot saved", zap.String("slot", s.slot), zap.Int("bytes", len(payload)))
	return nil
}

func (s *PostgresStore) Load(ctx context.Context) (*Snapshot, error) {
	var payload []byte
	err := s.Pool.QueryRow(ctx, `SELECT payload FROM saves WHERE slot = $1`, s.slot).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoSave
	}
	if err != nil {
		return nil, fmt.Errorf("load slot %s: %w", s.slot, err)
	}
	return Decode(payload)
}

func (s *PostgresStore) Delete(ctx context.Context) error {
	if _, err := s.Pool.Exec(ctx, `DELETE FROM saves WHERE slot = $1`, s.slot); err != nil {
		return fmt.Errorf("delete slot %s: %w", s.slot, err)
	}
	return nil
}

func (s *PostgresStore) Exists(ctx context.Context) (bool, error) {
	var ok bool
	err := s.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM saves WHERE slot = $1)`, s.slot).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("check slot %s: %w", s.slot, err)
	}
	return ok, nil
}

func (s *PostgresStore) Close() error {
	s.Pool.Close()
	return nil
}
