package reminder

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Store is the persisted, ordered list of reminders. It is loaded in full
// by Open and every mutation writes the whole file back.
type Store struct {
	path      string
	reminders []Reminder
}

// Open loads the store at path. A missing file is an empty store.
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, &StorageError{Op: "read", Path: path, Err: err}
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &StorageError{Op: "parse", Path: path, Err: err}
	}

	for _, rec := range doc.Reminders {
		r, err := decodeReminder(rec)
		if err != nil {
			return nil, &StorageError{Op: "parse", Path: path, Err: err}
		}
		s.reminders = append(s.reminders, r)
	}
	return s, nil
}

// Path returns the file backing the store.
func (s *Store) Path() string {
	return s.path
}

// Len returns the number of reminders.
func (s *Store) Len() int {
	return len(s.reminders)
}

// Reminders returns a copy of the reminders in insertion order.
func (s *Store) Reminders() []Reminder {
	out := make([]Reminder, len(s.reminders))
	copy(out, s.reminders)
	return out
}

// Add appends a reminder with a fresh ID and persists the store.
func (s *Store) Add(message string, schedule Schedule, anchor time.Time) (Reminder, error) {
	message = normalizeMessage(message)
	if message == "" {
		return Reminder{}, &ValidationError{Field: "message"}
	}
	if schedule == nil {
		return Reminder{}, &ValidationError{Field: "schedule"}
	}
	if err := schedule.validate(); err != nil {
		return Reminder{}, err
	}

	r := Reminder{
		ID:       uuid.NewString(),
		Message:  message,
		Schedule: schedule,
		Anchor:   Day(anchor),
	}

	next := append(s.Reminders(), r)
	if err := s.write(next); err != nil {
		return Reminder{}, err
	}
	s.reminders = next
	return r, nil
}

// List numbers the reminders 1..N in their current order.
func (s *Store) List() []Entry {
	entries := make([]Entry, 0, len(s.reminders))
	for i, r := range s.reminders {
		entries = append(entries, Entry{
			Index:    i + 1,
			Schedule: Render(r.Schedule),
			Message:  r.Message,
			Reminder: r,
		})
	}
	return entries
}

// Delete removes the reminder at the 1-based display index and persists
// the remaining ones.
func (s *Store) Delete(index int) (Reminder, error) {
	if index < 1 || index > len(s.reminders) {
		return Reminder{}, &IndexError{Requested: index, Available: len(s.reminders)}
	}

	removed := s.reminders[index-1]
	next := make([]Reminder, 0, len(s.reminders)-1)
	next = append(next, s.reminders[:index-1]...)
	next = append(next, s.reminders[index:]...)

	if err := s.write(next); err != nil {
		return Reminder{}, err
	}
	s.reminders = next
	return removed, nil
}

// DeleteByID removes the reminder with the given ID and returns it with the
// display index it had.
func (s *Store) DeleteByID(id string) (Reminder, int, error) {
	for i, r := range s.reminders {
		if r.ID == id {
			removed, err := s.Delete(i + 1)
			return removed, i + 1, err
		}
	}
	return Reminder{}, 0, &ValidationError{Field: "id", Value: id}
}

// DueOn returns the messages of reminders due on the given date.
func (s *Store) DueOn(today time.Time) []string {
	var due []string
	for _, r := range s.reminders {
		if IsDue(r.Schedule, r.Anchor, today) {
			due = append(due, r.Message)
		}
	}
	return due
}

// Save writes the store back unchanged.
func (s *Store) Save() error {
	return s.write(s.reminders)
}

func (s *Store) write(reminders []Reminder) error {
	doc := document{Reminders: make([]record, 0, len(reminders))}
	for _, r := range reminders {
		rec, err := encodeReminder(r)
		if err != nil {
			return &StorageError{Op: "encode", Path: s.path, Err: err}
		}
		doc.Reminders = append(doc.Reminders, rec)
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return &StorageError{Op: "encode", Path: s.path, Err: err}
	}

	if err := writeFileAtomic(s.path, data); err != nil {
		return &StorageError{Op: "write", Path: s.path, Err: err}
	}
	return nil
}

// writeFileAtomic replaces path with data via a temporary file in the same
// directory, so a crash leaves either the old or the new content.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temporary file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing temporary file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("syncing temporary file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temporary file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("setting permissions: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming into place: %w", err)
	}

	if parent, err := os.Open(dir); err == nil {
		parent.Sync()
		parent.Close()
	}
	return nil
}
