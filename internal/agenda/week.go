package agenda

import (
	"time"

	"github.com/example/office-agenda/internal/domain"
)

// DaysPerWeek is the length of a week projection.
const DaysPerWeek = 7

// StartOfWeek returns midnight of the Monday on or before t, in t's location.
func StartOfWeek(t time.Time) time.Time {
	start := domain.StartOfDay(t)
	// Go numbers Sunday as 0; shift so Monday is the first day.
	offset := (int(start.Weekday()) + 6) % 7
	return start.AddDate(0, 0, -offset)
}

// WeekProjection returns the seven consecutive days of the Monday-start week
// containing anchor.
func WeekProjection(anchor time.Time) []time.Time {
	start := StartOfWeek(anchor)
	days := make([]time.Time, DaysPerWeek)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

// ShiftWeek moves anchor by the given number of weeks.
func ShiftWeek(anchor time.Time, weeks int) time.Time {
	return anchor.AddDate(0, 0, DaysPerWeek*weeks)
}

// Day is one row of the weekly calendar.
type Day struct {
	Date      time.Time
	Group     *domain.ActivityGroup
	ItemCount int
	Today     bool
}

// Scheduled reports whether a group was found for the day.
func (d Day) Scheduled() bool {
	return d.Group != nil
}

// Week resolves every day of anchor's week against groups, counting the items
// of the matched group and flagging the day that shares a calendar day with now.
func Week(anchor, now time.Time, groups []domain.ActivityGroup, items []domain.ActivityItem) []Day {
	projection := WeekProjection(anchor)
	days := make([]Day, 0, len(projection))
	for _, date := range projection {
		day := Day{Date: date, Today: domain.SameDay(now, date)}
		if group, ok := GroupForDay(date, groups); ok {
			matched := group
			day.Group = &matched
			day.ItemCount = CountItems(group.ID, items)
		}
		days = append(days, day)
	}
	return days
}

// HasGaps reports whether any day of the week has no group.
func HasGaps(days []Day) bool {
	for _, day := range days {
		if !day.Scheduled() {
			return true
		}
	}
	return false
}
