package reminder

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the on-disk and display format for calendar dates.
const DateLayout = "2006-01-02"

// Unit is the step size of an interval schedule.
type Unit int

const (
	Days Unit = iota + 1
	Weeks
)

func (u Unit) days() int {
	switch u {
	case Days:
		return 1
	case Weeks:
		return 7
	}
	panic(fmt.Sprintf("reminder: unknown unit %d", int(u)))
}

func (u Unit) String() string {
	switch u {
	case Days:
		return "day"
	case Weeks:
		return "week"
	}
	return fmt.Sprintf("unit(%d)", int(u))
}

// MaxIntervalDays bounds the step of an interval schedule to about a
// century.
const MaxIntervalDays = 36500

// Schedule is one of OneOff, EveryWeekday or EveryInterval.
type Schedule interface {
	fmt.Stringer
	schedule()
	validate() error
}

// OneOff fires exactly once, on Date.
type OneOff struct {
	Date time.Time
}

// EveryWeekday fires on every occurrence of Weekday.
type EveryWeekday struct {
	Weekday time.Weekday
}

// EveryInterval fires every Count units, measured from the reminder's anchor date.
type EveryInterval struct {
	Count int
	Unit  Unit
}

func (OneOff) schedule()        {}
func (EveryWeekday) schedule()  {}
func (EveryInterval) schedule() {}

func (s OneOff) validate() error {
	if s.Date.IsZero() {
		return &ValidationError{Field: "date"}
	}
	return nil
}

func (s EveryWeekday) validate() error {
	if s.Weekday < time.Sunday || s.Weekday > time.Saturday {
		return &ValidationError{Field: "weekday", Value: fmt.Sprint(int(s.Weekday))}
	}
	return nil
}

func (s EveryInterval) validate() error {
	_, err := Every(s.Count, s.Unit)
	return err
}

func (s OneOff) String() string        { return Render(s) }
func (s EveryWeekday) String() string  { return Render(s) }
func (s EveryInterval) String() string { return Render(s) }

// On returns a one-off schedule for the calendar date of t.
func On(t time.Time) OneOff {
	return OneOff{Date: Day(t)}
}

// Every returns an interval schedule. The count must be positive and the
// step no longer than MaxIntervalDays.
func Every(count int, unit Unit) (EveryInterval, error) {
	if unit != Days && unit != Weeks {
		return EveryInterval{}, &ValidationError{Field: "unit", Value: unit.String()}
	}
	if count < 1 || count > MaxIntervalDays/unit.days() {
		return EveryInterval{}, &ValidationError{Field: "count", Value: fmt.Sprint(count)}
	}
	return EveryInterval{Count: count, Unit: unit}, nil
}

// Render formats a schedule for display.
func Render(s Schedule) string {
	switch s := s.(type) {
	case OneOff:
		return s.Date.Format(DateLayout)
	case EveryWeekday:
		return "every " + s.Weekday.String()
	case EveryInterval:
		switch s.Unit {
		case Days:
			return fmt.Sprintf("every %d Days", s.Count)
		case Weeks:
			return fmt.Sprintf("every %d Weeks", s.Count)
		}
	}
	panic(fmt.Sprintf("reminder: unhandled schedule %T", s))
}

// Reminder is a message attached to a schedule.
type Reminder struct {
	ID       string
	Message  string
	Schedule Schedule
	// Anchor is the creation date; interval schedules are measured from it.
	Anchor time.Time
}

// Entry is a reminder as shown by list, with its transient 1-based position.
type Entry struct {
	Index    int
	Schedule string
	Message  string
	Reminder Reminder
}

// Day truncates t to its calendar date, expressed as midnight UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func addDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

func normalizeMessage(message string) string {
	return strings.TrimSpace(message)
}
