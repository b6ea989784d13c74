package persistence

import (
	"context"
	"sync"

	"github.com/example/office-agenda/internal/domain"
)

// MemoryStore keeps the snapshot in process memory. It stores the encoded
// document so loads go through the same decoding as durable stores.
type MemoryStore struct {
	mu   sync.RWMutex
	data []byte
	// SaveErr, when set, makes every Save fail with it.
	SaveErr error
	saves   int
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load implements SnapshotStore.
func (m *MemoryStore) Load(ctx context.Context) (domain.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return domain.Snapshot{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.data == nil {
		return domain.Snapshot{}, ErrNotFound
	}
	return DecodeSnapshot(m.data)
}

// Save implements SnapshotStore.
func (m *MemoryStore) Save(ctx context.Context, snapshot domain.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SaveErr != nil {
		return m.SaveErr
	}
	data, err := EncodeSnapshot(snapshot)
	if err != nil {
		return err
	}
	m.data = data
	m.saves++
	return nil
}

// Raw replaces the stored document, bypassing encoding.
func (m *MemoryStore) Raw(data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), data...)
}

// Saves returns the number of successful saves.
func (m *MemoryStore) Saves() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saves
}
