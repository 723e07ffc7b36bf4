package cli

import (
	"errors"

	"github.com/notexe/journal/internal/reminder"
)

const (
	ExitOK = iota
	ExitGeneric
	ExitParse
	ExitValidation
	ExitIndex
	ExitStorage
	ExitConfig
)

// ConfigError reports a missing, unreadable or invalid configuration.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string { return e.Err.Error() }

func (e *ConfigError) Unwrap() error { return e.Err }

// ExitCode maps an error returned by a command to the process exit code.
func ExitCode(err error) int {
	var (
		parseErr      *reminder.ParseError
		validationErr *reminder.ValidationError
		indexErr      *reminder.IndexError
		storageErr    *reminder.StorageError
		configErr     *ConfigError
	)

	switch {
	case err == nil:
		return ExitOK
	case errors.As(err, &parseErr):
		return ExitParse
	case errors.As(err, &validationErr):
		return ExitValidation
	case errors.As(err, &indexErr):
		return ExitIndex
	case errors.As(err, &storageErr):
		return ExitStorage
	case errors.As(err, &configErr):
		return ExitConfig
	default:
		return ExitGeneric
	}
}
