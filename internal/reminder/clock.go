package reminder

import "time"

// Clock supplies the current calendar date.
type Clock interface {
	Today() time.Time
}

// SystemClock reads the local wall clock.
type SystemClock struct{}

// Today returns the local calendar date.
func (SystemClock) Today() time.Time {
	return Day(time.Now())
}

// FixedClock is a Clock that stays on one date until advanced.
type FixedClock struct {
	date time.Time
}

// NewFixedClock returns a clock standing on the given date.
func NewFixedClock(year int, month time.Month, day int) *FixedClock {
	return &FixedClock{date: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (c *FixedClock) Today() time.Time {
	return c.date
}

// Advance moves the clock forward by days.
func (c *FixedClock) Advance(days int) {
	c.date = addDays(c.date, days)
}

// AdvanceTo moves the clock to the next date (today included) on weekday.
func (c *FixedClock) AdvanceTo(weekday time.Weekday) {
	c.date = nextWeekday(c.date, weekday)
}
