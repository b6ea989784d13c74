package agenda

import (
	"testing"
	"time"

	"github.com/example/office-agenda/internal/domain"
)

func TestWeekProjection(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("WIB", 7*60*60)
	start := time.Date(2025, 12, 22, 0, 0, 0, 0, loc)

	// Every day of four consecutive weeks, including a year boundary.
	for offset := 0; offset < 28; offset++ {
		anchor := start.AddDate(0, 0, offset).Add(13 * time.Hour)
		days := WeekProjection(anchor)

		if len(days) != DaysPerWeek {
			t.Fatalf("anchor %s: expected 7 days, got %d", anchor, len(days))
		}
		if days[0].Weekday() != time.Monday {
			t.Fatalf("anchor %s: week starts on %s", anchor, days[0].Weekday())
		}
		if days[0].After(anchor) {
			t.Fatalf("anchor %s: week starts after anchor", anchor)
		}
		contains := false
		for i, day := range days {
			if i > 0 {
				y1, m1, d1 := days[i-1].AddDate(0, 0, 1).Date()
				y2, m2, d2 := day.Date()
				if y1 != y2 || m1 != m2 || d1 != d2 {
					t.Fatalf("anchor %s: days %d and %d are not consecutive", anchor, i-1, i)
				}
			}
			if domain.SameDay(anchor, day) {
				contains = true
			}
		}
		if !contains {
			t.Fatalf("anchor %s not contained in its week", anchor)
		}
	}
}

func TestStartOfWeekOnSunday(t *testing.T) {
	t.Parallel()

	sunday := time.Date(2026, 1, 4, 10, 0, 0, 0, time.UTC)
	got := StartOfWeek(sunday)
	want := time.Date(2025, 12, 29, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestShiftWeek(t *testing.T) {
	t.Parallel()

	anchor := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	if got := ShiftWeek(anchor, -1); !got.Equal(time.Date(2025, 12, 26, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("previous week: got %s", got)
	}
	if got := ShiftWeek(anchor, 2); !got.Equal(time.Date(2026, 1, 16, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("two weeks ahead: got %s", got)
	}
}

func TestWeek(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("WIB", 7*60*60)
	anchor := time.Date(2026, 1, 2, 0, 0, 0, 0, loc)
	now := time.Date(2026, 1, 1, 8, 0, 0, 0, loc)

	groups := []domain.ActivityGroup{
		{ID: "g-fri", Date: "2026-01-02"},
		{ID: "g-mon", Date: "2025-12-29"},
		{ID: "g-dup", Date: "2026-01-02"},
		{ID: "g-bad", Date: "??"},
	}
	items := []domain.ActivityItem{
		{ID: "i1", GroupID: "g-fri"},
		{ID: "i2", GroupID: "g-fri"},
		{ID: "i3", GroupID: "g-mon"},
		{ID: "i4", GroupID: "g-dup"},
	}

	days := Week(anchor, now, groups, items)
	if len(days) != 7 {
		t.Fatalf("expected 7 days, got %d", len(days))
	}

	monday := days[0]
	if !monday.Scheduled() || monday.Group.ID != "g-mon" || monday.ItemCount != 1 {
		t.Fatalf("unexpected monday: %+v", monday)
	}
	friday := days[4]
	if !friday.Scheduled() || friday.Group.ID != "g-fri" || friday.ItemCount != 2 {
		t.Fatalf("unexpected friday: %+v", friday)
	}
	if !days[3].Today {
		t.Fatalf("expected thursday to be today")
	}
	for i, day := range days {
		if i != 3 && day.Today {
			t.Fatalf("day %d unexpectedly flagged as today", i)
		}
	}
	if !HasGaps(days) {
		t.Fatalf("expected the week to contain gaps")
	}
}
