// Package sqlite stores the application snapshot in an SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/example/office-agenda/internal/domain"
	"github.com/example/office-agenda/internal/persistence"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS snapshots (
		key        TEXT PRIMARY KEY,
		payload    TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS schema_migrations (
		version    INTEGER PRIMARY KEY,
		applied_at TEXT NOT NULL
	)`,
}

const schemaVersion = 1

// Storage implements persistence.SnapshotStore.
type Storage struct {
	pool  *ConnectionPool
	retry RetryConfig
	key   string
	now   func() time.Time
}

var _ persistence.SnapshotStore = (*Storage)(nil)

// Open opens the database at dsn with production settings.
func Open(dsn string) (*Storage, error) {
	if dsn == ":memory:" {
		return OpenConfig(InMemoryConfig())
	}
	return OpenConfig(DefaultConfig(dsn))
}

// OpenConfig opens a database with explicit settings.
func OpenConfig(config Config) (*Storage, error) {
	pool, err := NewConnectionPool(config)
	if err != nil {
		return nil, err
	}
	return &Storage{
		pool:  pool,
		retry: DefaultRetryConfig(),
		key:   persistence.SnapshotKey,
		now:   time.Now,
	}, nil
}

// Close releases the database.
func (s *Storage) Close() error {
	return s.pool.Close()
}

// Migrate creates the schema when missing.
func (s *Storage) Migrate(ctx context.Context) error {
	return s.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		for _, stmt := range schema {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("sqlite: migrate: %w", err)
			}
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO schema_migrations (version, applied_at) VALUES (?, ?) ON CONFLICT(version) DO NOTHING`,
			schemaVersion, s.now().UTC().Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("sqlite: record schema version: %w", err)
		}
		return nil
	})
}

// Load implements persistence.SnapshotStore.
func (s *Storage) Load(ctx context.Context) (domain.Snapshot, error) {
	var payload string
	err := withRetry(ctx, s.retry, func() error {
		return s.pool.DB().QueryRowContext(ctx, `SELECT payload FROM snapshots WHERE key = ?`, s.key).Scan(&payload)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Snapshot{}, persistence.ErrNotFound
	}
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("sqlite: load snapshot: %w", err)
	}
	return persistence.DecodeSnapshot([]byte(payload))
}

// Save implements persistence.SnapshotStore by overwriting the stored record.
func (s *Storage) Save(ctx context.Context, snapshot domain.Snapshot) error {
	payload, err := persistence.EncodeSnapshot(snapshot)
	if err != nil {
		return err
	}
	return s.SaveRaw(ctx, payload)
}

// SaveRaw stores an already encoded document as is.
func (s *Storage) SaveRaw(ctx context.Context, payload []byte) error {
	updated := s.now().UTC().Format(time.RFC3339Nano)
	err := withRetry(ctx, s.retry, func() error {
		return s.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO snapshots (key, payload, updated_at) VALUES (?, ?, ?)
				ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
				s.key, string(payload), updated,
			)
			return err
		})
	})
	if err != nil {
		return fmt.Errorf("sqlite: save snapshot: %w", err)
	}
	return nil
}

// UpdatedAt returns when the snapshot was last written.
func (s *Storage) UpdatedAt(ctx context.Context) (time.Time, error) {
	var raw string
	err := s.pool.DB().QueryRowContext(ctx, `SELECT updated_at FROM snapshots WHERE key = ?`, s.key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, persistence.ErrNotFound
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("sqlite: read timestamp: %w", err)
	}
	return time.Parse(time.RFC3339Nano, raw)
}
