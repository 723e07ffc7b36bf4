package reminder

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Schedule discriminators in the persisted document.
const (
	typeOneOff        = "one_off"
	typeEveryWeekday  = "every_weekday"
	typeEveryInterval = "every_interval"
)

type document struct {
	Reminders []record `yaml:"reminders"`
}

type record struct {
	ID         string         `yaml:"id"`
	Message    string         `yaml:"message"`
	Schedule   scheduleRecord `yaml:"schedule"`
	AnchorDate string         `yaml:"anchor_date"`
}

type scheduleRecord struct {
	Type  string    `yaml:"type"`
	Value yaml.Node `yaml:"value"`
}

type intervalValue struct {
	Count int    `yaml:"count"`
	Unit  string `yaml:"unit"`
}

func encodeReminder(r Reminder) (record, error) {
	rec := record{
		ID:         r.ID,
		Message:    r.Message,
		AnchorDate: r.Anchor.Format(DateLayout),
	}

	var value any
	switch s := r.Schedule.(type) {
	case OneOff:
		rec.Schedule.Type = typeOneOff
		value = s.Date.Format(DateLayout)
	case EveryWeekday:
		rec.Schedule.Type = typeEveryWeekday
		value = s.Weekday.String()
	case EveryInterval:
		rec.Schedule.Type = typeEveryInterval
		value = intervalValue{Count: s.Count, Unit: s.Unit.String()}
	default:
		panic(fmt.Sprintf("reminder: unhandled schedule %T", s))
	}

	if err := rec.Schedule.Value.Encode(value); err != nil {
		return record{}, fmt.Errorf("encoding schedule of %s: %w", r.ID, err)
	}
	return rec, nil
}

func decodeReminder(rec record) (Reminder, error) {
	anchor, err := time.Parse(DateLayout, rec.AnchorDate)
	if err != nil {
		return Reminder{}, fmt.Errorf("reminder %s: invalid anchor_date %q", rec.ID, rec.AnchorDate)
	}
	if rec.ID == "" {
		return Reminder{}, fmt.Errorf("reminder %q has no id", rec.Message)
	}

	schedule, err := decodeSchedule(rec.Schedule)
	if err != nil {
		return Reminder{}, fmt.Errorf("reminder %s: %w", rec.ID, err)
	}

	return Reminder{
		ID:       rec.ID,
		Message:  rec.Message,
		Schedule: schedule,
		Anchor:   anchor,
	}, nil
}

func decodeSchedule(rec scheduleRecord) (Schedule, error) {
	switch rec.Type {
	case typeOneOff:
		var text string
		if err := rec.Value.Decode(&text); err != nil {
			return nil, fmt.Errorf("invalid date: %w", err)
		}
		date, err := time.Parse(DateLayout, text)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q", text)
		}
		return OneOff{Date: date}, nil

	case typeEveryWeekday:
		var text string
		if err := rec.Value.Decode(&text); err != nil {
			return nil, fmt.Errorf("invalid weekday: %w", err)
		}
		weekday, ok := weekdays[strings.ToLower(text)]
		if !ok {
			return nil, fmt.Errorf("invalid weekday %q", text)
		}
		return EveryWeekday{Weekday: weekday}, nil

	case typeEveryInterval:
		var value intervalValue
		if err := rec.Value.Decode(&value); err != nil {
			return nil, fmt.Errorf("invalid interval: %w", err)
		}
		unit := Days
		switch value.Unit {
		case "day":
		case "week":
			unit = Weeks
		default:
			return nil, fmt.Errorf("invalid interval unit %q", value.Unit)
		}
		return Every(value.Count, unit)
	}
	return nil, fmt.Errorf("unknown schedule type %q", rec.Type)
}
