package persistence

import (
	"context"

	"github.com/example/office-agenda/internal/domain"
)

// SnapshotKey names the single stored record.
const SnapshotKey = "siagenda_db_v2"

// SnapshotStore persists the whole application state as one record. Every
// save overwrites the previous snapshot.
type SnapshotStore interface {
	// Load returns the stored snapshot or ErrNotFound when nothing has been
	// saved yet.
	Load(ctx context.Context) (domain.Snapshot, error)
	Save(ctx context.Context, snapshot domain.Snapshot) error
}
