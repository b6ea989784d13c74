package agenda

import (
	"testing"

	"github.com/example/office-agenda/internal/domain"
)

func TestDetectConflicts(t *testing.T) {
	t.Parallel()

	t.Run("attendee overlap produces conflict", func(t *testing.T) {
		items := []domain.ActivityItem{
			{ID: "a", Time: "08:00", Place: "Aula", AttendeeIDs: []string{"p1", "p2"}},
			{ID: "b", Time: " 08:00 ", Place: "Desa Sukamaju", AttendeeIDs: []string{"p3", "p2"}},
		}
		conflicts := DetectConflicts(items)
		if len(conflicts) != 1 {
			t.Fatalf("expected 1 conflict, got %+v", conflicts)
		}
		got := conflicts[0]
		if got.Type != ConflictTypeAttendee || got.ItemID != "b" || got.WithItemID != "a" || got.PersonID != "p2" || got.Time != "08:00" {
			t.Fatalf("unexpected conflict %+v", got)
		}
	})

	t.Run("place overlap produces conflict", func(t *testing.T) {
		items := []domain.ActivityItem{
			{ID: "a", Time: "10:00", Place: "Ruang Rapat"},
			{ID: "b", Time: "13:00", Place: "Ruang Rapat"},
			{ID: "c", Time: "10:00", Place: "ruang rapat"},
		}
		conflicts := DetectConflicts(items)
		if len(conflicts) != 1 || conflicts[0].Type != ConflictTypePlace || conflicts[0].ItemID != "c" || conflicts[0].WithItemID != "a" {
			t.Fatalf("unexpected conflicts %+v", conflicts)
		}
	})

	t.Run("different or missing times yield no conflicts", func(t *testing.T) {
		items := []domain.ActivityItem{
			{ID: "a", Time: "08:00", Place: "Aula", AttendeeIDs: []string{"p1"}},
			{ID: "b", Time: "09:00", Place: "Aula", AttendeeIDs: []string{"p1"}},
			{ID: "c", Time: "", Place: "Aula", AttendeeIDs: []string{"p1"}},
			{ID: "d", Time: "", Place: "Aula", AttendeeIDs: []string{"p1"}},
		}
		if conflicts := DetectConflicts(items); len(conflicts) != 0 {
			t.Fatalf("expected no conflicts, got %+v", conflicts)
		}
	})
}
