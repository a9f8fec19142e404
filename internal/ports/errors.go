package ports

import (
	"errors"
)

// Common infrastructure errors that can occur while talking to storage or
// the terminal.
var (
	// ErrResultNotFound indicates that no result was saved for a display name.
	ErrResultNotFound = errors.New("result not found")

	// ErrInputClosed indicates that the input stream ended before an answer
	// was given.
	ErrInputClosed = errors.New("input closed")

	// ErrUnrecognizedAnswer indicates that a yes/no answer matched none of
	// the accepted tokens.
	ErrUnrecognizedAnswer = errors.New("unrecognized answer")
)
