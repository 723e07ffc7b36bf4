package reminder

import (
	"log/slog"
	"time"
)

// Service implements the reminder use-cases. Every call opens the store,
// applies one change and writes it back.
type Service struct {
	path   string
	clock  Clock
	logger *slog.Logger
}

// NewService creates a Service over the store file at path.
func NewService(path string, clock Clock, logger *slog.Logger) *Service {
	if clock == nil {
		clock = SystemClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{path: path, clock: clock, logger: logger}
}

// New parses expr in the given mode and stores a reminder anchored today.
func (s *Service) New(mode Mode, expr, message string) (Reminder, error) {
	today := s.clock.Today()

	schedule, err := Parse(expr, mode, today)
	if err != nil {
		return Reminder{}, err
	}

	store, err := Open(s.path)
	if err != nil {
		return Reminder{}, err
	}

	r, err := store.Add(message, schedule, today)
	if err != nil {
		return Reminder{}, err
	}

	s.logger.Info("added reminder", "id", r.ID, "schedule", Render(r.Schedule), "path", s.path)
	return r, nil
}

// List returns the numbered reminders.
func (s *Service) List() ([]Entry, error) {
	store, err := Open(s.path)
	if err != nil {
		return nil, err
	}
	return store.List(), nil
}

// Delete removes the reminder shown at index by the last list.
func (s *Service) Delete(index int) (Reminder, error) {
	store, err := Open(s.path)
	if err != nil {
		return Reminder{}, err
	}

	r, err := store.Delete(index)
	if err != nil {
		return Reminder{}, err
	}

	s.logger.Info("deleted reminder", "id", r.ID, "index", index, "remaining", store.Len())
	return r, nil
}

// DeleteByID removes the reminder with the given ID. Unlike display
// indexes, IDs stay valid while other reminders come and go.
func (s *Service) DeleteByID(id string) (Reminder, int, error) {
	store, err := Open(s.path)
	if err != nil {
		return Reminder{}, 0, err
	}

	r, index, err := store.DeleteByID(id)
	if err != nil {
		return Reminder{}, 0, err
	}

	s.logger.Info("deleted reminder", "id", r.ID, "index", index, "remaining", store.Len())
	return r, index, nil
}

// DueToday returns the messages due on the clock's current date.
func (s *Service) DueToday() ([]string, error) {
	return s.DueOn(s.clock.Today())
}

// DueOn returns the messages due on date.
func (s *Service) DueOn(date time.Time) ([]string, error) {
	store, err := Open(s.path)
	if err != nil {
		return nil, err
	}

	due := store.DueOn(date)
	s.logger.Debug("reminders due", "date", Day(date).Format(DateLayout), "count", len(due))
	return due, nil
}
