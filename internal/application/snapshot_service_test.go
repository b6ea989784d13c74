package application

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/example/office-agenda/internal/domain"
	"github.com/example/office-agenda/internal/testfixtures"
)

func TestSnapshotExportImportRoundTrip(t *testing.T) {
	t.Parallel()

	group := testfixtures.NewGroup("2026-01-07")
	source, sourceStore := newSnapshotHarness(t, group)

	var buf bytes.Buffer
	if err := source.Export(&buf); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !strings.Contains(buf.String(), "\n  ") {
		t.Fatal("expected indented JSON")
	}

	target, targetStore := newSnapshotHarness(t)
	if err := target.Import(context.Background(), adminActor(t, targetStore), &buf); err != nil {
		t.Fatalf("Import: %v", err)
	}
	imported := targetStore.Snapshot()
	if len(imported.Groups) != 1 || imported.Groups[0].ID != group.ID {
		t.Fatalf("expected imported group, got %+v", imported.Groups)
	}
	if len(imported.Identities) != len(sourceStore.Snapshot().Identities) {
		t.Fatalf("identity count changed across import")
	}
}

func TestSnapshotImportRejections(t *testing.T) {
	t.Parallel()

	service, store := newSnapshotHarness(t)
	admin := adminActor(t, store)
	ctx := context.Background()

	if err := service.Import(ctx, testfixtures.NewIdentity(), strings.NewReader("{}")); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if err := service.Import(ctx, admin, strings.NewReader("[broken")); err == nil {
		t.Fatal("expected decode error")
	}
	var vErr *ValidationError
	if err := service.Import(ctx, admin, strings.NewReader(`{"users":[]}`)); !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError for a snapshot without identities, got %v", err)
	}
	if len(store.Snapshot().Identities) != 5 {
		t.Fatal("rejected import changed the state")
	}
}

func newSnapshotHarness(t *testing.T, groups ...domain.ActivityGroup) (*SnapshotService, *Store) {
	t.Helper()

	builder := testfixtures.NewSnapshot()
	for _, group := range groups {
		builder.WithGroup(group)
	}
	store, _ := newTestStore(t, builder.Build())
	return NewSnapshotService(store, nil), store
}
