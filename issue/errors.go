package issue

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyHistory is returned when undo is requested with nothing to undo.
	ErrEmptyHistory = errors.New("nothing to undo")

	// ErrEmptyDescription is returned when a description is empty after trimming.
	ErrEmptyDescription = errors.New("description cannot be empty")

	// ErrNoIndices is returned when a batch operation is given no indices.
	ErrNoIndices = errors.New("no issue indices given")

	// ErrInvalidState is returned when a state name is not recognized.
	ErrInvalidState = errors.New("invalid state")

	// ErrInvalidDirection is returned when a reordering direction is not recognized.
	ErrInvalidDirection = errors.New("invalid direction")

	// ErrInvalidDate is returned when a date is not in DateLayout.
	ErrInvalidDate = errors.New("invalid date")

	// ErrMalformedState is returned when a stored board cannot be decoded or
	// breaks the board's invariants.
	ErrMalformedState = errors.New("malformed board state")

	// ErrUnknownRecord is returned when a stored undo record has an unknown kind.
	ErrUnknownRecord = errors.New("unknown undo record")
)

// InvalidBoardError reports that the board does not match its history, so a
// recorded mutation cannot be reversed. It indicates corrupted data, not bad
// user input.
type InvalidBoardError struct {
	Reason string
}

func (e *InvalidBoardError) Error() string {
	return "invalid board: " + e.Reason
}

func invalidBoard(format string, args ...any) error {
	return &InvalidBoardError{Reason: fmt.Sprintf(format, args...)}
}

// EditorError wraps a failure of the external editing step.
type EditorError struct {
	Err error
}

func (e *EditorError) Error() string {
	return "editor: " + e.Err.Error()
}

func (e *EditorError) Unwrap() error {
	return e.Err
}
