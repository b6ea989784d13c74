package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/office-agenda/internal/domain"
)

// PersonInput carries editable roster fields.
type PersonInput struct {
	Name          string
	NIP           string
	Position      string
	PositionClass string
}

// PositionClass pairs a position title with its class.
type PositionClass struct {
	Position string
	Class    string
}

// RosterService manages the employee roster.
type RosterService struct {
	store       *Store
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewRosterService constructs a roster service with the provided dependencies.
func NewRosterService(store *Store, idGenerator func() string, now func() time.Time) *RosterService {
	return NewRosterServiceWithLogger(store, idGenerator, now, nil)
}

// NewRosterServiceWithLogger constructs a roster service with a specified logger.
func NewRosterServiceWithLogger(store *Store, idGenerator func() string, now func() time.Time, logger *slog.Logger) *RosterService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &RosterService{store: store, idGenerator: idGenerator, now: now, logger: defaultLogger(logger)}
}

func (s *RosterService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "RosterService", operation, attrs...)
}

// List returns persons whose name or position contains query, ignoring case.
// An empty query returns everyone.
func (s *RosterService) List(query string) []domain.Person {
	persons := s.store.Snapshot().Persons
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return persons
	}
	matched := make([]domain.Person, 0, len(persons))
	for _, person := range persons {
		if strings.Contains(strings.ToLower(person.Name), needle) || strings.Contains(strings.ToLower(person.Position), needle) {
			matched = append(matched, person)
		}
	}
	return matched
}

// PositionClasses lists the distinct (position, class) pairs where both are
// set and the class is not the placeholder.
func (s *RosterService) PositionClasses() []PositionClass {
	var out []PositionClass
	seen := make(map[PositionClass]struct{})
	for _, person := range s.store.Snapshot().Persons {
		pair := PositionClass{Position: person.Position, Class: person.PositionClass}
		if pair.Position == "" || pair.Class == "" || pair.Class == domain.PlaceholderPositionClass {
			continue
		}
		if _, dup := seen[pair]; dup {
			continue
		}
		seen[pair] = struct{}{}
		out = append(out, pair)
	}
	return out
}

// Add appends a person to the roster.
func (s *RosterService) Add(ctx context.Context, actor domain.Identity, input PersonInput) (person domain.Person, err error) {
	if s == nil {
		err = fmt.Errorf("RosterService is nil")
		return
	}

	logger := s.loggerWith(ctx, "Add", "actor_id", actor.ID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to add person", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("person_id", person.ID).InfoContext(ctx, "person added")
	}()

	if !domain.CanManageSettings(actor, s.now()) {
		err = ErrUnauthorized
		return
	}
	if vErr := validatePerson(input); vErr.HasErrors() {
		err = vErr
		return
	}

	person = normalizePerson(s.idGenerator(), input)
	err = s.store.Update(ctx, func(snapshot *domain.Snapshot) error {
		snapshot.Persons = append(snapshot.Persons, person)
		return nil
	})
	return
}

// Update replaces the fields of an existing person.
func (s *RosterService) Update(ctx context.Context, actor domain.Identity, id string, input PersonInput) (person domain.Person, err error) {
	if s == nil {
		err = fmt.Errorf("RosterService is nil")
		return
	}

	logger := s.loggerWith(ctx, "Update", "actor_id", actor.ID, "person_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update person", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "person updated")
	}()

	if !domain.CanManageSettings(actor, s.now()) {
		err = ErrUnauthorized
		return
	}
	if vErr := validatePerson(input); vErr.HasErrors() {
		err = vErr
		return
	}

	person = normalizePerson(id, input)
	err = s.store.Update(ctx, func(snapshot *domain.Snapshot) error {
		for i := range snapshot.Persons {
			if snapshot.Persons[i].ID == id {
				snapshot.Persons[i] = person
				return nil
			}
		}
		return fmt.Errorf("person %s: %w", id, ErrNotFound)
	})
	return
}

// Delete removes a person. Attendee lists keep the stale ID; views skip it.
func (s *RosterService) Delete(ctx context.Context, actor domain.Identity, id string) (err error) {
	if s == nil {
		return fmt.Errorf("RosterService is nil")
	}

	logger := s.loggerWith(ctx, "Delete", "actor_id", actor.ID, "person_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to delete person", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "person deleted")
	}()

	if !domain.CanManageSettings(actor, s.now()) {
		return ErrUnauthorized
	}
	return s.store.Update(ctx, func(snapshot *domain.Snapshot) error {
		for i, person := range snapshot.Persons {
			if person.ID == id {
				snapshot.Persons = append(snapshot.Persons[:i], snapshot.Persons[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("person %s: %w", id, ErrNotFound)
	})
}

func validatePerson(input PersonInput) *ValidationError {
	vErr := &ValidationError{}
	if strings.TrimSpace(input.Name) == "" {
		vErr.add("name", "name is required")
	}
	return vErr
}

func normalizePerson(id string, input PersonInput) domain.Person {
	person := domain.Person{
		ID:            id,
		Name:          strings.TrimSpace(input.Name),
		NIP:           strings.TrimSpace(input.NIP),
		Position:      strings.TrimSpace(input.Position),
		PositionClass: strings.TrimSpace(input.PositionClass),
	}
	if person.PositionClass == "" {
		person.PositionClass = domain.PlaceholderPositionClass
	}
	return person
}
