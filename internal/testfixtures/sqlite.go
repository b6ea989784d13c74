package testfixtures

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/example/office-agenda/internal/domain"
	"github.com/example/office-agenda/internal/persistence/sqlite"
)

// SQLiteHarness wraps a migrated SQLite snapshot store backed by a temporary
// file for integration-style tests.
type SQLiteHarness struct {
	Storage *sqlite.Storage
	Path    string

	cleanup func()
}

// Close releases resources associated with the harness.
func (h *SQLiteHarness) Close() {
	if h != nil && h.cleanup != nil {
		h.cleanup()
		h.cleanup = nil
	}
}

// Seed stores snapshot as the current state, failing the test on error.
func (h *SQLiteHarness) Seed(tb testing.TB, snapshot domain.Snapshot) {
	tb.Helper()

	if err := h.Storage.Save(context.Background(), snapshot); err != nil {
		tb.Fatalf("failed to seed snapshot: %v", err)
	}
}

// NewSQLiteHarness constructs a SQLiteHarness using a temporary file that is
// migrated automatically. Callers may optionally invoke Close, but the helper
// will also register a cleanup callback with the provided testing.TB.
func NewSQLiteHarness(tb testing.TB) *SQLiteHarness {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "agenda.db")

	storage, err := sqlite.Open(path)
	if err != nil {
		tb.Fatalf("failed to open storage: %v", err)
	}

	if err := storage.Migrate(context.Background()); err != nil {
		_ = storage.Close()
		tb.Fatalf("failed to migrate storage: %v", err)
	}

	harness := &SQLiteHarness{
		Storage: storage,
		Path:    path,
		cleanup: func() {
			_ = storage.Close()
		},
	}
	tb.Cleanup(harness.Close)
	return harness
}
