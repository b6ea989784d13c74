package agenda

import (
	"strings"

	"github.com/example/office-agenda/internal/domain"
)

// ConflictType describes the type of clash found between two activities of
// the same day.
type ConflictType string

const (
	// ConflictTypeAttendee indicates a person is listed at two activities
	// sharing a time slot.
	ConflictTypeAttendee ConflictType = "attendee"
	// ConflictTypePlace indicates two activities share a time slot and place.
	ConflictTypePlace ConflictType = "place"
)

// Conflict pairs two activities that clash. ItemID is the later of the two in
// stored order.
type Conflict struct {
	ItemID     string
	WithItemID string
	Type       ConflictType
	Time       string
	// PersonID is set for attendee conflicts.
	PersonID string
	// Place is set for place conflicts.
	Place string
}

// DetectConflicts compares the items of one day pairwise. Times and places are
// free text, so slots match when they are equal ignoring case and surrounding
// spaces. Items without a time never clash.
func DetectConflicts(items []domain.ActivityItem) []Conflict {
	var conflicts []Conflict
	for i := 1; i < len(items); i++ {
		later := items[i]
		slot := normalizeSlot(later.Time)
		if slot == "" {
			continue
		}
		for _, earlier := range items[:i] {
			if normalizeSlot(earlier.Time) != slot {
				continue
			}
			if place := normalizeSlot(later.Place); place != "" && place == normalizeSlot(earlier.Place) {
				conflicts = append(conflicts, Conflict{
					ItemID:     later.ID,
					WithItemID: earlier.ID,
					Type:       ConflictTypePlace,
					Time:       strings.TrimSpace(later.Time),
					Place:      strings.TrimSpace(later.Place),
				})
			}
			for _, personID := range sharedAttendees(earlier.AttendeeIDs, later.AttendeeIDs) {
				conflicts = append(conflicts, Conflict{
					ItemID:     later.ID,
					WithItemID: earlier.ID,
					Type:       ConflictTypeAttendee,
					Time:       strings.TrimSpace(later.Time),
					PersonID:   personID,
				})
			}
		}
	}
	return conflicts
}

func normalizeSlot(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// sharedAttendees returns the IDs present in both lists, in b's order.
func sharedAttendees(a, b []string) []string {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	inA := make(map[string]struct{}, len(a))
	for _, id := range a {
		inA[id] = struct{}{}
	}
	var shared []string
	for _, id := range b {
		if _, ok := inA[id]; ok {
			shared = append(shared, id)
			delete(inA, id)
		}
	}
	return shared
}
