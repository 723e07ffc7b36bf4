package reminder

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Mode selects which grammar rules apply to an expression.
type Mode int

const (
	// OnceMode parses the argument of --on into a OneOff schedule.
	OnceMode Mode = iota + 1
	// RecurringMode parses the argument of --every.
	RecurringMode
)

func (m Mode) String() string {
	switch m {
	case OnceMode:
		return "on"
	case RecurringMode:
		return "every"
	}
	return "unknown"
}

var (
	datePattern     = regexp.MustCompile(`^(\d{1,2})\.([a-z]{3,4})(?:\.(\d{4}))?$`)
	intervalPattern = regexp.MustCompile(`^([1-9]\d*)\.(day|days|week|weeks)$`)
)

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Parse turns a user expression into a Schedule. today resolves weekday
// names and year-less dates under OnceMode.
func Parse(raw string, mode Mode, today time.Time) (Schedule, error) {
	expr := strings.ToLower(strings.TrimSpace(raw))
	today = Day(today)

	if weekday, ok := weekdays[expr]; ok {
		switch mode {
		case OnceMode:
			return OneOff{Date: nextWeekday(addDays(today, 1), weekday)}, nil
		case RecurringMode:
			return EveryWeekday{Weekday: weekday}, nil
		}
	}

	if m := datePattern.FindStringSubmatch(expr); m != nil && mode == OnceMode {
		if date, ok := parseDate(m[1], m[2], m[3], today); ok {
			if date.Before(today) {
				return nil, &ParseError{Raw: raw, Mode: mode, Reason: "the date is in the past"}
			}
			return OneOff{Date: date}, nil
		}
	}

	if m := intervalPattern.FindStringSubmatch(expr); m != nil && mode == RecurringMode {
		unit := Days
		if strings.HasPrefix(m[2], "week") {
			unit = Weeks
		}
		count, err := strconv.Atoi(m[1])
		if err != nil || count > MaxIntervalDays/unit.days() {
			reason := fmt.Sprintf("intervals are limited to %d days", MaxIntervalDays)
			return nil, &ParseError{Raw: raw, Mode: mode, Reason: reason}
		}
		return EveryInterval{Count: count, Unit: unit}, nil
	}

	return nil, &ParseError{Raw: raw, Mode: mode}
}

func parseDate(dayText, monthText, yearText string, today time.Time) (time.Time, bool) {
	month, ok := lookupMonth(monthText)
	if !ok {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(dayText)
	if err != nil {
		return time.Time{}, false
	}

	if yearText != "" {
		year, err := strconv.Atoi(yearText)
		if err != nil {
			return time.Time{}, false
		}
		return calendarDate(year, month, day)
	}

	// Without a year the date is the next one that has not passed yet;
	// 29.Feb may need to skip ahead to a leap year.
	for year := today.Year(); year <= today.Year()+8; year++ {
		date, ok := calendarDate(year, month, day)
		if ok && !date.Before(today) {
			return date, true
		}
	}
	return time.Time{}, false
}

// calendarDate rejects days that time.Date would normalize into the next month.
func calendarDate(year int, month time.Month, day int) (time.Time, bool) {
	date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if date.Year() != year || date.Month() != month || date.Day() != day {
		return time.Time{}, false
	}
	return date, true
}

func lookupMonth(abbrev string) (time.Month, bool) {
	for m := time.January; m <= time.December; m++ {
		if strings.HasPrefix(strings.ToLower(m.String()), abbrev) {
			return m, true
		}
	}
	return 0, false
}

// nextWeekday returns the first date on or after from that falls on weekday.
func nextWeekday(from time.Time, weekday time.Weekday) time.Time {
	offset := (int(weekday) - int(from.Weekday()) + 7) % 7
	return addDays(from, offset)
}
