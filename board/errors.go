package board

import (
	"errors"
	"fmt"
)

// ErrEntityNotFound is returned when an ID is not present on the board.
var ErrEntityNotFound = errors.New("entity not found")

// IndexOutOfRangeError reports a position beyond the current collection.
type IndexOutOfRangeError struct {
	Index int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("index %d is out of range", e.Index)
}

// IndexErrors returns every IndexOutOfRangeError contained in err, in order.
// It looks through wrapped errors and errors joined with errors.Join.
func IndexErrors(err error) []*IndexOutOfRangeError {
	switch e := err.(type) {
	case nil:
		return nil
	case *IndexOutOfRangeError:
		return []*IndexOutOfRangeError{e}
	case interface{ Unwrap() []error }:
		var found []*IndexOutOfRangeError
		for _, inner := range e.Unwrap() {
			found = append(found, IndexErrors(inner)...)
		}
		return found
	case interface{ Unwrap() error }:
		return IndexErrors(e.Unwrap())
	default:
		return nil
	}
}

func notFound(id ID) error {
	return fmt.Errorf("%w: %s", ErrEntityNotFound, id)
}
