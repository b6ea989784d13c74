package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/example/office-agenda/internal/domain"
	"github.com/example/office-agenda/internal/persistence"
)

// Store holds the in-memory snapshot and writes it through to the backend
// after every change.
type Store struct {
	mu      sync.RWMutex
	backend persistence.SnapshotStore
	state   domain.Snapshot
	logger  *slog.Logger
}

// OpenStore loads the snapshot from backend. A fresh backend is seeded with
// the default snapshot, which is saved right away. A corrupt record is
// replaced in memory by the defaults and left untouched on disk until the
// next change.
func OpenStore(ctx context.Context, backend persistence.SnapshotStore, logger *slog.Logger) (*Store, error) {
	if backend == nil {
		return nil, fmt.Errorf("snapshot backend not configured")
	}
	s := &Store{backend: backend, logger: defaultLogger(logger)}
	log := serviceLogger(ctx, s.logger, "Store", "Open")

	snapshot, err := backend.Load(ctx)
	switch {
	case err == nil:
		s.state = snapshot
	case errors.Is(err, persistence.ErrNotFound):
		s.state = persistence.DefaultSnapshot()
		if err := backend.Save(ctx, s.state); err != nil {
			return nil, fmt.Errorf("seed default snapshot: %w", err)
		}
		log.InfoContext(ctx, "seeded default snapshot")
	case errors.Is(err, persistence.ErrCorruptSnapshot):
		s.state = persistence.DefaultSnapshot()
		log.WarnContext(ctx, "stored snapshot unreadable, using defaults", "error", err, "error_kind", ErrorKind(err))
	default:
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	return s, nil
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Update applies fn to a working copy and saves it. The in-memory state only
// changes when both fn and the save succeed.
func (s *Store) Update(ctx context.Context, fn func(*domain.Snapshot) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	working := s.state.Clone()
	if err := fn(&working); err != nil {
		return err
	}
	if err := s.backend.Save(ctx, working); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	s.state = working
	return nil
}

// Replace swaps in a whole snapshot, as an import does.
func (s *Store) Replace(ctx context.Context, snapshot domain.Snapshot) error {
	return s.Update(ctx, func(current *domain.Snapshot) error {
		*current = snapshot.Clone()
		return nil
	})
}
