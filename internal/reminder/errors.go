package reminder

import "fmt"

// ParseError reports an expression that matched no grammar rule, or one
// that names a schedule that can never fire.
type ParseError struct {
	Raw    string
	Mode   Mode
	Reason string
}

func (e *ParseError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("cannot use %q: %s", e.Raw, e.Reason)
	}
	switch e.Mode {
	case OnceMode:
		return fmt.Sprintf("could not understand date %q (use a weekday like Monday, or 24.Dec / 24.Dec.2025)", e.Raw)
	case RecurringMode:
		return fmt.Sprintf("could not understand recurrence %q (use a weekday like Monday, or 3.days / 2.weeks)", e.Raw)
	}
	return fmt.Sprintf("could not understand %q", e.Raw)
}

// ValidationError reports a field that failed validation.
type ValidationError struct {
	Field string
	Value string
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: must not be empty", e.Field)
	}
	return fmt.Sprintf("invalid %s: %q", e.Field, e.Value)
}

// IndexError reports a display index outside 1..Available.
type IndexError struct {
	Requested int
	Available int
}

func (e *IndexError) Error() string {
	if e.Available == 0 {
		return fmt.Sprintf("no reminder at index %d: there are no reminders", e.Requested)
	}
	return fmt.Sprintf("no reminder at index %d: choose a number between 1 and %d", e.Requested, e.Available)
}

// StorageError wraps a failure to read or write the reminder file.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("failed to %s reminders at %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
