package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/example/office-agenda/internal/agenda"
	"github.com/example/office-agenda/internal/domain"
	"github.com/example/office-agenda/internal/report"
)

// previewGroupID marks the transient group rendered for an unsaved agenda.
const previewGroupID = "temp"

// ExportService renders stored or draft agendas as documents.
type ExportService struct {
	store    *Store
	renderer *report.Renderer
	loc      *time.Location
	logger   *slog.Logger
}

// NewExportService constructs an export service.
func NewExportService(store *Store, renderer *report.Renderer, loc *time.Location, logger *slog.Logger) *ExportService {
	if loc == nil {
		loc = time.Local
	}
	return &ExportService{store: store, renderer: renderer, loc: loc, logger: defaultLogger(logger)}
}

func (s *ExportService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "ExportService", operation, attrs...)
}

// ExportGroup renders the group with the given ID, signed by author.
func (s *ExportService) ExportGroup(ctx context.Context, author domain.Identity, groupID string) (*report.Document, error) {
	snapshot := s.store.Snapshot()
	group, ok := snapshot.FindGroup(groupID)
	if !ok {
		err := fmt.Errorf("group %s: %w", groupID, ErrNotFound)
		s.loggerWith(ctx, "ExportGroup", "group_id", groupID).WarnContext(ctx, "export failed", "error_kind", ErrorKind(err))
		return nil, err
	}
	return s.render(ctx, "ExportGroup", group, agenda.ItemsOfGroup(group.ID, snapshot.Items), author, snapshot)
}

// ExportDate renders the first group recorded for day.
func (s *ExportService) ExportDate(ctx context.Context, author domain.Identity, day time.Time) (*report.Document, error) {
	snapshot := s.store.Snapshot()
	group, ok := agenda.GroupForDay(day.In(s.loc), snapshot.Groups)
	if !ok {
		err := fmt.Errorf("no agenda on %s: %w", domain.FormatDate(day.In(s.loc)), ErrNotFound)
		s.loggerWith(ctx, "ExportDate").WarnContext(ctx, "export failed", "error_kind", ErrorKind(err))
		return nil, err
	}
	return s.render(ctx, "ExportDate", group, agenda.ItemsOfGroup(group.ID, snapshot.Items), author, snapshot)
}

// Preview renders an agenda that has not been saved.
func (s *ExportService) Preview(ctx context.Context, author domain.Identity, date string, inputs []ItemInput) (*report.Document, error) {
	snapshot := s.store.Snapshot()
	group := domain.ActivityGroup{ID: previewGroupID, Date: date, CreatorID: author.ID}
	items := make([]domain.ActivityItem, 0, len(inputs))
	for i, input := range inputs {
		items = append(items, domain.ActivityItem{
			ID:          fmt.Sprintf("%s-%d", previewGroupID, i),
			GroupID:     previewGroupID,
			Time:        input.Time,
			Place:       input.Place,
			Title:       input.Title,
			Notes:       input.Notes,
			AttendeeIDs: uniqueIDs(input.AttendeeIDs),
		})
	}
	return s.render(ctx, "Preview", group, items, author, snapshot)
}

func (s *ExportService) render(ctx context.Context, operation string, group domain.ActivityGroup, items []domain.ActivityItem, author domain.Identity, snapshot domain.Snapshot) (*report.Document, error) {
	logger := s.loggerWith(ctx, operation, "group_id", group.ID, "author_id", author.ID)
	doc, err := s.renderer.Render(group, items, snapshot.Letterhead, author, snapshot.Persons)
	if err != nil {
		logger.ErrorContext(ctx, "render failed", "error", err, "error_kind", ErrorKind(err))
		return nil, err
	}
	logger.InfoContext(ctx, "document rendered", "pages", doc.PageCount(), "rows", len(doc.Rows), "date_fallback", doc.DateFallback)
	return doc, nil
}
