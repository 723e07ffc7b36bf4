package reminder

import (
	"fmt"
	"time"
)

// NextDue returns the next occurrence of s relative to from. Weekday
// schedules look strictly after from; intervals include from itself.
func NextDue(s Schedule, anchor, from time.Time) time.Time {
	anchor, from = Day(anchor), Day(from)

	switch s := s.(type) {
	case OneOff:
		return Day(s.Date)
	case EveryWeekday:
		return nextWeekday(addDays(from, 1), s.Weekday)
	case EveryInterval:
		return nextInterval(s, anchor, from)
	}
	panic(fmt.Sprintf("reminder: unhandled schedule %T", s))
}

// IsDue reports whether s has an occurrence on today. It depends only on
// the calendar date, so asking twice on the same day gives the same answer.
func IsDue(s Schedule, anchor, today time.Time) bool {
	today = Day(today)

	switch s.(type) {
	case OneOff, EveryWeekday:
		return NextDue(s, anchor, addDays(today, -1)).Equal(today)
	case EveryInterval:
		return NextDue(s, anchor, today).Equal(today)
	}
	panic(fmt.Sprintf("reminder: unhandled schedule %T", s))
}

func nextInterval(s EveryInterval, anchor, from time.Time) time.Time {
	if !from.After(anchor) {
		return anchor
	}
	step := s.Count * s.Unit.days()
	elapsed := daysBetween(anchor, from)
	k := (elapsed + step - 1) / step
	return addDays(anchor, k*step)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
