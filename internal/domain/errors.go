package domain

import (
	"errors"
	"fmt"
)

// Common domain errors that can occur while loading candidates, running a
// session or persisting results.
var (
	// ErrDuplicateNickname indicates that two loaded candidates share a nickname.
	ErrDuplicateNickname = errors.New("duplicate candidate nickname")

	// ErrNoCandidates indicates that no candidate profile could be found.
	ErrNoCandidates = errors.New("no candidates loaded")

	// ErrEmptySelection indicates that a session was started without any
	// selected candidate.
	ErrEmptySelection = errors.New("no candidate selected")

	// ErrUnknownCandidate indicates that a name or nickname does not match
	// any loaded candidate.
	ErrUnknownCandidate = errors.New("unknown candidate")

	// ErrInvalidDisplayName indicates that a user display name cannot be
	// used as a result file name.
	ErrInvalidDisplayName = errors.New("invalid display name")

	// ErrInvalidConfiguration indicates that configuration is invalid or incomplete.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// MissingFieldError reports a candidate profile that lacks a required key.
type MissingFieldError struct {
	// File is the profile the key was expected in.
	File string

	// Field is the missing JSON key.
	Field string
}

// Error implements the error interface for MissingFieldError.
func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("candidate profile %s: missing required field %q", e.File, e.Field)
}

// RatingFormatError reports rating input that is not a number.
// It wraps the conversion error returned by strconv.
type RatingFormatError struct {
	// Input is the raw text typed by the user.
	Input string

	// Err is the underlying conversion error.
	Err error
}

// Error implements the error interface for RatingFormatError.
func (e *RatingFormatError) Error() string {
	return fmt.Sprintf("rating %q is not a number: %v", e.Input, e.Err)
}

// Unwrap returns the underlying conversion error.
func (e *RatingFormatError) Unwrap() error { return e.Err }

// ValidationError represents an error that occurred during validation.
// It can contain multiple validation failures.
type ValidationError struct {
	// Entity is the name of the entity that failed validation.
	Entity string

	// Errors contains the list of validation error messages.
	Errors []string
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation error for %s: %s", e.Entity, e.Errors[0])
	}
	return fmt.Sprintf("validation errors for %s: %v", e.Entity, e.Errors)
}

// Unwrap lets callers match any ValidationError against ErrInvalidConfiguration.
func (e *ValidationError) Unwrap() error { return ErrInvalidConfiguration }

// AddError adds a new error message to the validation error.
func (e *ValidationError) AddError(msg string) { e.Errors = append(e.Errors, msg) }

// HasErrors returns true if there are any validation errors.
func (e *ValidationError) HasErrors() bool { return len(e.Errors) > 0 }

// NewValidationError creates a new ValidationError for the given entity.
func NewValidationError(entity string) *ValidationError {
	return &ValidationError{
		Entity: entity,
		Errors: make([]string, 0),
	}
}
