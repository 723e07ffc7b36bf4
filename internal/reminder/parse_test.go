package reminder

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestParse_RecurringWeekdayRendersBack(t *testing.T) {
	today := date(2022, time.January, 5)
	for _, name := range []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"} {
		s, err := Parse(name, RecurringMode, today)
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", name, err)
		}
		if got, want := Render(s), "every "+name; got != want {
			t.Errorf("Render(Parse(%q)) = %q, want %q", name, got, want)
		}
	}
}

func TestParse_WeekdayIsCaseInsensitive(t *testing.T) {
	s, err := Parse("  fRiDaY ", RecurringMode, date(2022, time.January, 5))
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}
	if s != (EveryWeekday{Weekday: time.Friday}) {
		t.Errorf("got %#v", s)
	}
}

func TestParse_OnceWeekdayResolvesToNextDate(t *testing.T) {
	tests := []struct {
		name    string
		today   time.Time
		weekday string
		want    time.Time
	}{
		{"wednesday to monday", date(2022, time.January, 5), "Monday", date(2022, time.January, 10)},
		{"same weekday skips today", date(2022, time.January, 10), "monday", date(2022, time.January, 17)},
		{"tomorrow", date(2022, time.January, 5), "Thursday", date(2022, time.January, 6)},
		{"across year end", date(2021, time.December, 30), "Saturday", date(2022, time.January, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Parse(tt.weekday, OnceMode, tt.today)
			if err != nil {
				t.Fatalf("Parse error = %v", err)
			}
			oneOff, ok := s.(OneOff)
			if !ok {
				t.Fatalf("expected OneOff, got %T", s)
			}
			if !oneOff.Date.Equal(tt.want) {
				t.Errorf("date = %s, want %s", oneOff.Date.Format(DateLayout), tt.want.Format(DateLayout))
			}
		})
	}
}

func TestParse_Dates(t *testing.T) {
	today := date(2022, time.March, 15)
	tests := []struct {
		raw  string
		want time.Time
	}{
		{"20.Mar", date(2022, time.March, 20)},
		{"15.mar", date(2022, time.March, 15)},
		{"14.Mar", date(2023, time.March, 14)},
		{"1.Jan", date(2023, time.January, 1)},
		{"3.Sept", date(2022, time.September, 3)},
		{"30.June", date(2022, time.June, 30)},
		{"24.Dec.2025", date(2025, time.December, 24)},
		{"15.Mar.2022", date(2022, time.March, 15)},
		{"29.Feb", date(2024, time.February, 29)},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			s, err := Parse(tt.raw, OnceMode, today)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.raw, err)
			}
			if got := s.(OneOff).Date; !got.Equal(tt.want) {
				t.Errorf("Parse(%q) = %s, want %s", tt.raw, got.Format(DateLayout), tt.want.Format(DateLayout))
			}
		})
	}
}

func TestParse_Intervals(t *testing.T) {
	today := date(2022, time.January, 1)
	for _, n := range []int{1, 2, 3, 10, 365} {
		for _, unit := range []Unit{Days, Weeks} {
			for _, suffix := range []string{"", "s"} {
				raw := fmt.Sprintf("%d.%s%s", n, unit, suffix)
				s, err := Parse(raw, RecurringMode, today)
				if err != nil {
					t.Fatalf("Parse(%q) error = %v", raw, err)
				}
				want := EveryInterval{Count: n, Unit: unit}
				if s != want {
					t.Errorf("Parse(%q) = %#v, want %#v", raw, s, want)
				}
			}
		}
	}
}

func TestParse_Rejects(t *testing.T) {
	today := date(2022, time.January, 1)
	tests := []struct {
		raw  string
		mode Mode
	}{
		{"", OnceMode},
		{"tomorrow", OnceMode},
		{"Mon", RecurringMode},
		{"0.days", RecurringMode},
		{"-1.days", RecurringMode},
		{"01.days", RecurringMode},
		{"1.5.days", RecurringMode},
		{"3.months", RecurringMode},
		{"3.dayz", RecurringMode},
		{"three.days", RecurringMode},
		{"3 days", RecurringMode},
		{"3.days", OnceMode},
		{"24.Dec", RecurringMode},
		{"31.Feb", OnceMode},
		{"30.Feb.2024", OnceMode},
		{"12.Foo", OnceMode},
		{"12.Ma", OnceMode},
		{"12.Decem", OnceMode},
		{"123.Dec", OnceMode},
		{"12.Dec.24", OnceMode},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String()+"/"+tt.raw, func(t *testing.T) {
			_, err := Parse(tt.raw, tt.mode, today)
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("Parse(%q) error = %v, want *ParseError", tt.raw, err)
			}
			if parseErr.Raw != tt.raw {
				t.Errorf("ParseError.Raw = %q, want %q", parseErr.Raw, tt.raw)
			}
		})
	}
}

func TestParse_RejectsPastExplicitYear(t *testing.T) {
	today := date(2022, time.March, 15)
	for _, raw := range []string{"1.Jan.2020", "14.Mar.2022"} {
		_, err := Parse(raw, OnceMode, today)
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("Parse(%q) error = %v, want *ParseError", raw, err)
		}
		if parseErr.Reason == "" || !strings.Contains(err.Error(), "past") {
			t.Errorf("Parse(%q) error = %q, want a past-date reason", raw, err)
		}
	}
}

func TestParse_RejectsOversizedIntervals(t *testing.T) {
	today := date(2022, time.January, 1)
	tests := []string{
		"7905747460161236407.weeks",
		"99999999999999999999999.days",
		"36501.days",
		"5215.weeks",
	}
	for _, raw := range tests {
		_, err := Parse(raw, RecurringMode, today)
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Errorf("Parse(%q) error = %v, want *ParseError", raw, err)
		}
	}

	for _, raw := range []string{"36500.days", "5214.weeks"} {
		s, err := Parse(raw, RecurringMode, today)
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", raw, err)
		}
		if IsDue(s, today, date(2022, time.January, 2)) {
			t.Errorf("%s is due the day after its anchor", raw)
		}
	}
}

func TestEvery_RejectsOversizedCount(t *testing.T) {
	for _, tt := range []struct {
		count int
		unit  Unit
	}{
		{MaxIntervalDays + 1, Days},
		{MaxIntervalDays/7 + 1, Weeks},
		{1 << 62, Weeks},
	} {
		_, err := Every(tt.count, tt.unit)
		var validationErr *ValidationError
		if !errors.As(err, &validationErr) || validationErr.Field != "count" {
			t.Errorf("Every(%d, %s) error = %v, want ValidationError on count", tt.count, tt.unit, err)
		}
	}
}

func TestEvery_RejectsNonPositiveCount(t *testing.T) {
	for _, n := range []int{0, -3} {
		_, err := Every(n, Days)
		var validationErr *ValidationError
		if !errors.As(err, &validationErr) || validationErr.Field != "count" {
			t.Errorf("Every(%d) error = %v, want ValidationError on count", n, err)
		}
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		schedule Schedule
		want     string
	}{
		{OneOff{Date: date(2022, time.January, 4)}, "2022-01-04"},
		{EveryWeekday{Weekday: time.Tuesday}, "every Tuesday"},
		{EveryInterval{Count: 3, Unit: Days}, "every 3 Days"},
		{EveryInterval{Count: 1, Unit: Weeks}, "every 1 Weeks"},
	}
	for _, tt := range tests {
		if got := Render(tt.schedule); got != tt.want {
			t.Errorf("Render(%#v) = %q, want %q", tt.schedule, got, tt.want)
		}
		if got := tt.schedule.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
