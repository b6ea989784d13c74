package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	_ "modernc.org/sqlite"
)

// ConnectionPool wraps the database handle with transaction helpers.
type ConnectionPool struct {
	db     *sql.DB
	config Config
}

// NewConnectionPool opens the database described by config. Every pooled
// connection runs the configured pragmas when it is opened.
func NewConnectionPool(config Config) (*ConnectionPool, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if path := config.path(); path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("sqlite: create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", config.connectionDSN())
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	if config.MaxOpenConns > 0 {
		db.SetMaxOpenConns(config.MaxOpenConns)
	}
	if config.MaxIdleConns > 0 {
		db.SetMaxIdleConns(config.MaxIdleConns)
	}
	if config.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(config.ConnMaxLifetime)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}

	return &ConnectionPool{db: db, config: config}, nil
}

// DB returns the underlying handle.
func (cp *ConnectionPool) DB() *sql.DB {
	return cp.db
}

// Close closes the pool.
func (cp *ConnectionPool) Close() error {
	if cp.db != nil {
		return cp.db.Close()
	}
	return nil
}

// TransactionFunc runs inside a transaction.
type TransactionFunc func(tx *sql.Tx) error

// WithTransaction commits when fn succeeds and rolls back otherwise,
// including when fn panics.
func (cp *ConnectionPool) WithTransaction(ctx context.Context, fn TransactionFunc) (err error) {
	tx, err := cp.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("transaction failed (rollback error: %v): %w", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit: %w", err)
	}
	return nil
}

// ErrLocked marks failures caused by another writer holding the database.
var ErrLocked = errors.New("sqlite: database locked")

// mapError classifies driver errors.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	for _, marker := range []string{"database is locked", "database locked", "SQLITE_BUSY"} {
		if strings.Contains(msg, marker) {
			return fmt.Errorf("%w: %v", ErrLocked, err)
		}
	}
	return err
}

// RetryConfig configures retries of operations that hit a locked database.
type RetryConfig struct {
	MaxRetries    uint
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
}

// DefaultRetryConfig returns the retry settings used by Storage.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:    3,
		InitialDelay:  100 * time.Millisecond,
		MaxDelay:      2 * time.Second,
		BackoffFactor: 2.0,
	}
}

// withRetry runs fn, retrying with exponential backoff while it fails with
// ErrLocked. Other failures are returned at once.
func withRetry(ctx context.Context, cfg RetryConfig, fn func() error) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = cfg.InitialDelay
	policy.MaxInterval = cfg.MaxDelay
	policy.Multiplier = cfg.BackoffFactor
	policy.RandomizationFactor = 0

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		err := mapError(fn())
		if err != nil && !errors.Is(err, ErrLocked) {
			return struct{}{}, backoff.Permanent(err)
		}
		return struct{}{}, err
	}, backoff.WithBackOff(policy), backoff.WithMaxTries(cfg.MaxRetries+1))
	return err
}
