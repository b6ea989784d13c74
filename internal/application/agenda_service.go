package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/office-agenda/internal/agenda"
	"github.com/example/office-agenda/internal/domain"
)

// Defaults for a freshly added activity row.
const (
	DefaultItemTime  = "08:00"
	DefaultItemPlace = "Ruang Rapat"
)

// ItemInput is one submitted activity row. An empty ID asks for a new one.
type ItemInput struct {
	ID          string
	Time        string
	Place       string
	Title       string
	Notes       string
	AttendeeIDs []string
}

// DefaultItem returns the row a new agenda starts with.
func DefaultItem() ItemInput {
	return ItemInput{Time: DefaultItemTime, Place: DefaultItemPlace}
}

// SaveAgendaParams describes a create (empty GroupID) or an edit.
type SaveAgendaParams struct {
	Actor   domain.Identity
	GroupID string
	Date    string
	Items   []ItemInput
}

// GroupSummary is a group with the number of its items.
type GroupSummary struct {
	Group     domain.ActivityGroup
	ItemCount int
}

// AgendaService records activity groups and projects them onto weeks.
type AgendaService struct {
	store    *Store
	groupIDs func() string
	itemIDs  func() string
	now      func() time.Time
	loc      *time.Location
	logger   *slog.Logger
}

// NewAgendaService constructs an agenda service with the provided dependencies.
func NewAgendaService(store *Store, groupIDs, itemIDs func() string, now func() time.Time, loc *time.Location) *AgendaService {
	return NewAgendaServiceWithLogger(store, groupIDs, itemIDs, now, loc, nil)
}

// NewAgendaServiceWithLogger constructs an agenda service with a specified logger.
func NewAgendaServiceWithLogger(store *Store, groupIDs, itemIDs func() string, now func() time.Time, loc *time.Location, logger *slog.Logger) *AgendaService {
	if groupIDs == nil {
		groupIDs = func() string { return "" }
	}
	if itemIDs == nil {
		itemIDs = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	return &AgendaService{store: store, groupIDs: groupIDs, itemIDs: itemIDs, now: now, loc: loc, logger: defaultLogger(logger)}
}

func (s *AgendaService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "AgendaService", operation, attrs...)
}

// SaveAgenda creates or replaces a group together with its items. A new
// group is placed first; the submitted items replace whatever the group held
// and are appended after every other group's items.
func (s *AgendaService) SaveAgenda(ctx context.Context, params SaveAgendaParams) (group domain.ActivityGroup, err error) {
	if s == nil {
		err = fmt.Errorf("AgendaService is nil")
		return
	}

	logger := s.loggerWith(ctx, "SaveAgenda", "actor_id", params.Actor.ID, "group_id", params.GroupID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to save agenda", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger = logger.With("group_id", group.ID, "items", len(params.Items))
		logger.InfoContext(ctx, "agenda saved")
		if conflicts := agenda.DetectConflicts(agenda.ItemsOfGroup(group.ID, s.store.Snapshot().Items)); len(conflicts) > 0 {
			logger.WarnContext(ctx, "agenda has clashing activities", "conflicts", len(conflicts))
		}
	}()

	day, vErr := validateAgenda(params, s.loc)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	err = s.store.Update(ctx, func(snapshot *domain.Snapshot) error {
		index := -1
		if params.GroupID != "" {
			for i, existing := range snapshot.Groups {
				if existing.ID == params.GroupID {
					index = i
					break
				}
			}
			if index < 0 {
				return fmt.Errorf("group %s: %w", params.GroupID, ErrNotFound)
			}
		}

		group = domain.ActivityGroup{
			ID:        params.GroupID,
			Date:      domain.FormatDate(day),
			CreatedAt: day,
			CreatorID: params.Actor.ID,
		}
		if index < 0 {
			group.ID = s.groupIDs()
			snapshot.Groups = append([]domain.ActivityGroup{group}, snapshot.Groups...)
		} else {
			snapshot.Groups[index] = group
		}

		kept := make([]domain.ActivityItem, 0, len(snapshot.Items)+len(params.Items))
		for _, item := range snapshot.Items {
			if item.GroupID != group.ID {
				kept = append(kept, item)
			}
		}
		for _, input := range params.Items {
			kept = append(kept, s.buildItem(group.ID, input))
		}
		snapshot.Items = kept
		return nil
	})
	return
}

func (s *AgendaService) buildItem(groupID string, input ItemInput) domain.ActivityItem {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		id = s.itemIDs()
	}
	return domain.ActivityItem{
		ID:          id,
		GroupID:     groupID,
		Time:        strings.TrimSpace(input.Time),
		Place:       strings.TrimSpace(input.Place),
		Title:       strings.TrimSpace(input.Title),
		Notes:       strings.TrimSpace(input.Notes),
		AttendeeIDs: uniqueIDs(input.AttendeeIDs),
	}
}

func validateAgenda(params SaveAgendaParams, loc *time.Location) (time.Time, *ValidationError) {
	vErr := &ValidationError{}
	var day time.Time

	if strings.TrimSpace(params.Date) == "" {
		vErr.add("date", "date is required")
	} else if parsed, err := domain.ParseDate(params.Date, loc); err != nil {
		vErr.add("date", "date must be a calendar date such as 2026-01-02")
	} else {
		day = domain.StartOfDay(parsed)
	}

	if len(params.Items) == 0 {
		vErr.add("items", "at least one activity is required")
	}
	if params.Actor.ID == "" {
		vErr.add("actor", "an identity is required")
	}
	return day, vErr
}

// uniqueIDs drops blanks and repeats, keeping first occurrences in order.
func uniqueIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// DeleteGroup removes a group and every item that belongs to it.
func (s *AgendaService) DeleteGroup(ctx context.Context, actor domain.Identity, groupID string) (err error) {
	if s == nil {
		return fmt.Errorf("AgendaService is nil")
	}

	logger := s.loggerWith(ctx, "DeleteGroup", "actor_id", actor.ID, "group_id", groupID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to delete group", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "group deleted")
	}()

	return s.store.Update(ctx, func(snapshot *domain.Snapshot) error {
		groups := snapshot.Groups[:0]
		found := false
		for _, group := range snapshot.Groups {
			if group.ID == groupID {
				found = true
				continue
			}
			groups = append(groups, group)
		}
		if !found {
			return fmt.Errorf("group %s: %w", groupID, ErrNotFound)
		}
		snapshot.Groups = groups

		items := snapshot.Items[:0]
		for _, item := range snapshot.Items {
			if item.GroupID != groupID {
				items = append(items, item)
			}
		}
		snapshot.Items = items
		return nil
	})
}

// Week returns the seven days of anchor's week with their groups.
func (s *AgendaService) Week(anchor time.Time) []agenda.Day {
	snapshot := s.store.Snapshot()
	return agenda.Week(anchor.In(s.loc), s.now().In(s.loc), snapshot.Groups, snapshot.Items)
}

// Groups lists every group in stored order with its item count.
func (s *AgendaService) Groups() []GroupSummary {
	snapshot := s.store.Snapshot()
	summaries := make([]GroupSummary, 0, len(snapshot.Groups))
	for _, group := range snapshot.Groups {
		summaries = append(summaries, GroupSummary{Group: group, ItemCount: agenda.CountItems(group.ID, snapshot.Items)})
	}
	return summaries
}

// Group returns a group and its items.
func (s *AgendaService) Group(groupID string) (domain.ActivityGroup, []domain.ActivityItem, error) {
	snapshot := s.store.Snapshot()
	group, ok := snapshot.FindGroup(groupID)
	if !ok {
		return domain.ActivityGroup{}, nil, fmt.Errorf("group %s: %w", groupID, ErrNotFound)
	}
	return group, agenda.ItemsOfGroup(group.ID, snapshot.Items), nil
}

// Conflicts reports clashing activities within a group.
func (s *AgendaService) Conflicts(groupID string) ([]agenda.Conflict, error) {
	_, items, err := s.Group(groupID)
	if err != nil {
		return nil, err
	}
	return agenda.DetectConflicts(items), nil
}
