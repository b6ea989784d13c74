package application

import (
	"context"
	"errors"
	"testing"

	"github.com/example/office-agenda/internal/domain"
	"github.com/example/office-agenda/internal/persistence"
	"github.com/example/office-agenda/internal/testfixtures"
)

func newTestStore(t *testing.T, snapshot domain.Snapshot) (*Store, *persistence.MemoryStore) {
	t.Helper()

	backend := testfixtures.NewMemoryBackend(t, snapshot)
	store, err := OpenStore(context.Background(), backend, nil)
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	return store, backend
}

func TestOpenStoreSeedsDefaults(t *testing.T) {
	t.Parallel()

	backend := persistence.NewMemoryStore()
	store, err := OpenStore(context.Background(), backend, nil)
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}

	if backend.Saves() != 1 {
		t.Fatalf("expected the default snapshot to be saved once, got %d", backend.Saves())
	}
	snapshot := store.Snapshot()
	if len(snapshot.Identities) != 5 {
		t.Fatalf("expected 5 default identities, got %d", len(snapshot.Identities))
	}
	if admin, ok := snapshot.FindIdentity("u1"); !ok || !admin.IsAdmin() {
		t.Fatalf("expected u1 to be the admin, got %+v", admin)
	}
}

func TestOpenStoreCorruptFallsBackWithoutSaving(t *testing.T) {
	t.Parallel()

	backend := persistence.NewMemoryStore()
	backend.Raw([]byte("{not json"))

	store, err := OpenStore(context.Background(), backend, nil)
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	if backend.Saves() != 0 {
		t.Fatalf("corrupt record must not be overwritten on open, got %d saves", backend.Saves())
	}
	if got := store.Snapshot().Letterhead.SigningCity; got != "Sekayu" {
		t.Fatalf("expected default letterhead, got %q", got)
	}
}

func TestOpenStoreRequiresBackend(t *testing.T) {
	t.Parallel()

	if _, err := OpenStore(context.Background(), nil, nil); err == nil {
		t.Fatal("expected error for nil backend")
	}
}

func TestStoreUpdateRollsBackOnSaveError(t *testing.T) {
	t.Parallel()

	store, backend := newTestStore(t, testfixtures.NewSnapshot().Build())
	backend.SaveErr = errors.New("disk full")

	err := store.Update(context.Background(), func(snapshot *domain.Snapshot) error {
		snapshot.Letterhead.SigningCity = "Palembang"
		return nil
	})
	if err == nil {
		t.Fatal("expected save error")
	}
	if got := store.Snapshot().Letterhead.SigningCity; got != "Sekayu" {
		t.Fatalf("state changed despite failed save: %q", got)
	}
}

func TestStoreUpdateRollsBackOnCallbackError(t *testing.T) {
	t.Parallel()

	store, backend := newTestStore(t, testfixtures.NewSnapshot().Build())
	sentinel := errors.New("stop")

	err := store.Update(context.Background(), func(snapshot *domain.Snapshot) error {
		snapshot.Persons = nil
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel, got %v", err)
	}
	if len(store.Snapshot().Persons) == 0 {
		t.Fatal("persons cleared despite callback error")
	}
	if backend.Saves() != 0 {
		t.Fatalf("expected no save, got %d", backend.Saves())
	}
}

func TestStoreSnapshotIsACopy(t *testing.T) {
	t.Parallel()

	group := testfixtures.NewGroup("2026-01-07")
	item := testfixtures.NewItem(group.ID, testfixtures.WithAttendees("p1"))
	store, _ := newTestStore(t, testfixtures.NewSnapshot().WithGroup(group, item).Build())

	snapshot := store.Snapshot()
	snapshot.Items[0].AttendeeIDs[0] = "changed"
	snapshot.Persons[0].Name = "changed"

	fresh := store.Snapshot()
	if fresh.Items[0].AttendeeIDs[0] != "p1" || fresh.Persons[0].Name == "changed" {
		t.Fatalf("mutating a returned snapshot leaked into the store: %+v", fresh)
	}
}
