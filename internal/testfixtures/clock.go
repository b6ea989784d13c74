package testfixtures

import (
	"sync"
	"time"
)

// Clock provides a controllable time source for tests. It reports times in
// the fixture location so day boundaries match the seeded agenda dates.
type Clock struct {
	mu      sync.Mutex
	current time.Time
}

// NewClock returns a clock initialised to the supplied time. When start is the
// zero value, the shared ReferenceTime is used.
func NewClock(start time.Time) *Clock {
	if start.IsZero() {
		start = ReferenceTime()
	}
	return &Clock{current: start.In(Location())}
}

// ClockOn returns a clock set to 09:00 on the given YYYY-MM-DD date in the
// fixture location. It panics on a malformed date.
func ClockOn(date string) *Clock {
	day, err := time.ParseInLocation("2006-01-02", date, Location())
	if err != nil {
		panic(err)
	}
	return NewClock(day.Add(9 * time.Hour))
}

// Now returns the current instant tracked by the clock.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// NowFunc exposes Now as a function suitable for dependency injection.
func (c *Clock) NowFunc() func() time.Time {
	if c == nil {
		return time.Now
	}
	return c.Now
}

// Set updates the clock to the provided time.
func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	c.current = t.In(Location())
	c.mu.Unlock()
}

// Advance moves the clock forward by the provided duration and returns the
// updated time.
func (c *Clock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	c.current = c.current.Add(d)
	updated := c.current
	c.mu.Unlock()
	return updated
}

// NextDay moves the clock to the same wall time on the following calendar day.
func (c *Clock) NextDay() time.Time {
	c.mu.Lock()
	c.current = c.current.AddDate(0, 0, 1)
	updated := c.current
	c.mu.Unlock()
	return updated
}

// Today returns the clock's calendar date as YYYY-MM-DD.
func (c *Clock) Today() string {
	return c.Now().Format("2006-01-02")
}
