package testfixtures

import (
	"testing"
	"time"
)

func TestClockDefaultsToReferenceTime(t *testing.T) {
	t.Parallel()

	clock := NewClock(time.Time{})
	if !clock.Now().Equal(ReferenceTime()) {
		t.Fatalf("expected ReferenceTime, got %v", clock.Now())
	}
	if clock.Now().Location() != Location() {
		t.Fatalf("expected fixture location, got %v", clock.Now().Location())
	}
}

func TestClockAdvanceAndSet(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, time.March, 2, 9, 26, 0, 0, Location())
	clock := NewClock(start)

	updated := clock.Advance(90 * time.Minute)
	if !updated.Equal(start.Add(90 * time.Minute)) {
		t.Fatalf("advance returned %v", updated)
	}

	clock.Set(start.Add(2 * time.Hour))
	if got := clock.Now(); !got.Equal(start.Add(2 * time.Hour)) {
		t.Fatalf("expected %v, got %v", start.Add(2*time.Hour), got)
	}
}

func TestClockOnAndNextDay(t *testing.T) {
	t.Parallel()

	clock := ClockOn("2026-01-31")
	if clock.Today() != "2026-01-31" {
		t.Fatalf("expected 2026-01-31, got %s", clock.Today())
	}
	clock.NextDay()
	if clock.Today() != "2026-02-01" {
		t.Fatalf("expected 2026-02-01 after NextDay, got %s", clock.Today())
	}
}

func TestClockNowFunc(t *testing.T) {
	t.Parallel()

	clock := ClockOn("2026-01-05")
	nowFn := clock.NowFunc()

	clock.Advance(time.Minute)
	if got := nowFn(); !got.Equal(clock.Now()) {
		t.Fatalf("expected updated time %v, got %v", clock.Now(), got)
	}
}
