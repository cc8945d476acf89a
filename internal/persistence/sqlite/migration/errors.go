package migration

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidMigrationFile indicates a file name or body that cannot be used as a migration.
	ErrInvalidMigrationFile = errors.New("invalid migration file")
	// ErrDuplicateVersion indicates that two files share a version number.
	ErrDuplicateVersion = errors.New("duplicate migration version")
)

// Error wraps a migration failure with the version and step that failed.
type Error struct {
	Version   string
	File      string
	Operation string
	Err       error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Version != "" {
		return fmt.Sprintf("migration %s (%s): %s: %v", e.Version, e.File, e.Operation, e.Err)
	}
	return fmt.Sprintf("migration (%s): %s: %v", e.File, e.Operation, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

func newError(version, file, operation string, err error) *Error {
	return &Error{Version: version, File: file, Operation: operation, Err: err}
}
