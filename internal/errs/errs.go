// ABOUTME: Error taxonomy shared by the stores, validation and migration.
// ABOUTME: Sentinels are matched with errors.Is, typed errors with errors.As.
package errs

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates a requested record, photo or plan does not exist.
// Absence is a normal outcome; callers check for it with errors.Is.
var ErrNotFound = errors.New("not found")

// ValidationError reports a user-supplied value that breaks a business rule.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Invalid builds a ValidationError with a formatted message.
func Invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// NotInitializedError is returned when a store is used before it is open.
type NotInitializedError struct {
	Store string
}

func (e *NotInitializedError) Error() string {
	return e.Store + " store not initialized"
}

// MigrationError wraps any failure during schema migration.
type MigrationError struct {
	Step string
	Err  error
}

func (e *MigrationError) Error() string {
	return fmt.Sprintf("migration failed at %s: %v", e.Step, e.Err)
}

func (e *MigrationError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotInitialized reports whether err carries a NotInitializedError.
func IsNotInitialized(err error) bool {
	var ne *NotInitializedError
	return errors.As(err, &ne)
}
