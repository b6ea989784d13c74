package application

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/example/office-agenda/internal/domain"
	"github.com/example/office-agenda/internal/persistence"
)

// SnapshotService moves the whole state in and out as a JSON document.
type SnapshotService struct {
	store  *Store
	logger *slog.Logger
}

// NewSnapshotService constructs a snapshot service.
func NewSnapshotService(store *Store, logger *slog.Logger) *SnapshotService {
	return &SnapshotService{store: store, logger: defaultLogger(logger)}
}

// Export writes the current snapshot as indented JSON.
func (s *SnapshotService) Export(w io.Writer) error {
	data, err := persistence.EncodeSnapshot(s.store.Snapshot())
	if err != nil {
		return err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, data, "", "  "); err != nil {
		return fmt.Errorf("indent snapshot: %w", err)
	}
	out.WriteByte('\n')
	_, err = out.WriteTo(w)
	return err
}

// Import replaces the whole state with the document read from r. Only admins
// may import.
func (s *SnapshotService) Import(ctx context.Context, actor domain.Identity, r io.Reader) (err error) {
	logger := serviceLogger(ctx, s.logger, "SnapshotService", "Import", "actor_id", actor.ID)
	defer logOutcome(ctx, logger, "snapshot imported", "failed to import snapshot", &err)

	if !domain.CanGrantAccess(actor) {
		return ErrUnauthorized
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}
	snapshot, err := persistence.DecodeSnapshot(data)
	if err != nil {
		return err
	}
	if len(snapshot.Identities) == 0 {
		vErr := &ValidationError{}
		vErr.add("users", "snapshot must contain at least one identity")
		return vErr
	}
	return s.store.Replace(ctx, snapshot)
}
