package testfixtures

import (
	"context"
	"testing"

	"github.com/example/office-agenda/internal/domain"
	"github.com/example/office-agenda/internal/persistence"
)

// NewMemoryBackend returns an in-memory snapshot store already holding
// snapshot. The seeding save is not counted by Saves.
func NewMemoryBackend(tb testing.TB, snapshot domain.Snapshot) *persistence.MemoryStore {
	tb.Helper()

	data, err := persistence.EncodeSnapshot(snapshot)
	if err != nil {
		tb.Fatalf("failed to encode snapshot: %v", err)
	}
	store := persistence.NewMemoryStore()
	store.Raw(data)
	return store
}

// MustLoad reads the snapshot currently held by backend.
func MustLoad(tb testing.TB, backend persistence.SnapshotStore) domain.Snapshot {
	tb.Helper()

	snapshot, err := backend.Load(context.Background())
	if err != nil {
		tb.Fatalf("failed to load snapshot: %v", err)
	}
	return snapshot
}
