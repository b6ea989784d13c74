package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the storage format of group dates and access stamps.
const DateLayout = "2006-01-02"

var errEmptyDate = errors.New("empty date")

// ParseError reports a stored date string that is not a calendar date.
type ParseError struct {
	Value string
	Err   error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("domain: invalid date %q", e.Value)
}

// Unwrap exposes the underlying time parse failure.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

var localLayouts = []string{
	DateLayout,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

// ParseDate parses a stored date. Plain dates and zone-less timestamps are read
// in loc; timestamps carrying an offset are converted to loc. A nil loc means
// time.Local.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, &ParseError{Value: value, Err: errEmptyDate}
	}

	var firstErr error
	for _, layout := range localLayouts {
		t, err := time.ParseInLocation(layout, trimmed, loc)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.In(loc), nil
		}
	}
	return time.Time{}, &ParseError{Value: value, Err: firstErr}
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day in b's location.
func SameDay(a, b time.Time) bool {
	a = a.In(b.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// FormatDate renders t in DateLayout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Day parses the group's date in loc.
func (g ActivityGroup) Day(loc *time.Location) (time.Time, error) {
	return ParseDate(g.Date, loc)
}
