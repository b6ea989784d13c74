// Package agenda derives day and week views from the flat group and item
// collections of a snapshot. Every function is read-only over its inputs.
package agenda

import (
	"time"

	"github.com/example/office-agenda/internal/domain"
)

// ItemsOfGroup returns the items belonging to groupID in their stored order.
func ItemsOfGroup(groupID string, items []domain.ActivityItem) []domain.ActivityItem {
	matched := make([]domain.ActivityItem, 0)
	for _, item := range items {
		if item.GroupID == groupID {
			matched = append(matched, item.Clone())
		}
	}
	return matched
}

// CountItems returns how many items belong to groupID.
func CountItems(groupID string, items []domain.ActivityItem) int {
	count := 0
	for _, item := range items {
		if item.GroupID == groupID {
			count++
		}
	}
	return count
}

// GroupForDay returns the first group whose date falls on the calendar day of
// day, evaluated in day's location. Groups with unparsable dates never match.
// Later groups sharing the same date are ignored.
func GroupForDay(day time.Time, groups []domain.ActivityGroup) (domain.ActivityGroup, bool) {
	loc := day.Location()
	for _, group := range groups {
		parsed, err := group.Day(loc)
		if err != nil {
			continue
		}
		if domain.SameDay(parsed, day) {
			return group, true
		}
	}
	return domain.ActivityGroup{}, false
}

// AttendeesOf resolves the item's attendee IDs against the roster in the
// order of the ID list. Unknown IDs are dropped.
func AttendeesOf(item domain.ActivityItem, persons []domain.Person) []domain.Person {
	if len(item.AttendeeIDs) == 0 {
		return nil
	}
	byID := make(map[string]domain.Person, len(persons))
	for _, person := range persons {
		if _, seen := byID[person.ID]; seen {
			continue
		}
		byID[person.ID] = person
	}

	resolved := make([]domain.Person, 0, len(item.AttendeeIDs))
	for _, id := range item.AttendeeIDs {
		if person, ok := byID[id]; ok {
			resolved = append(resolved, person)
		}
	}
	return resolved
}
