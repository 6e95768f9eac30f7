// Package issue implements the issue board: the issue record, the mutation
// operations, and the undo engine that reverses them.
//
// Every mutation validates its input, changes the board, and pushes exactly
// one undo record onto the history. Nothing is changed when an operation
// fails. The exported operations mirror the CLI commands:
//   - Add, Delete, Move, Prio, Edit, SetDue, Flush for mutations
//   - Undo to reverse the most recent mutation
package issue

import (
	"strings"
	"time"

	"github.com/amonks/kanban/board"
	"github.com/amonks/kanban/history"
	"github.com/amonks/kanban/internal/validation"
)

// State is the workflow category of an issue.
type State string

const (
	// StateOpen indicates the issue has not been started or is in progress.
	StateOpen State = "open"

	// StateReview indicates the issue is waiting for review.
	StateReview State = "review"

	// StateDone indicates the issue is finished.
	StateDone State = "done"
)

// States returns every state in display order.
func States() []State {
	return []State{StateOpen, StateReview, StateDone}
}

// IsValid returns true if the state is a known value.
func (s State) IsValid() bool {
	for _, valid := range States() {
		if s == valid {
			return true
		}
	}
	return false
}

// ParseState parses a state name case-insensitively.
func ParseState(value string) (State, error) {
	state := State(strings.ToLower(strings.TrimSpace(value)))
	if !state.IsValid() {
		return "", validation.FormatInvalidValueError(ErrInvalidState, State(value), States())
	}
	return state, nil
}

// Issue is a single tracked piece of work.
type Issue struct {
	// Description is the non-empty, trimmed text of the issue.
	Description string `json:"description"`

	// State is the issue's category on the board.
	State State `json:"state"`

	// TimeCreated is when the issue was added.
	TimeCreated time.Time `json:"time_created"`

	// Due is the optional due date.
	Due *Date `json:"due_date,omitempty"`
}

// Category implements board.Categorized.
func (i Issue) Category() string {
	return string(i.State)
}

// Board is a board of issues.
type Board = board.Board[Issue]

// Entity is an issue with its identifier.
type Entity = board.Entity[Issue]

// History is the undo stack for a board of issues.
type History = history.History[Undoable]

// NewHistory returns an empty history.
func NewHistory() *History {
	return &History{}
}

// Direction selects a category reordering.
type Direction string

const (
	// Top moves an issue ahead of all issues in its state.
	Top Direction = "top"

	// Bottom moves an issue behind all issues in its state.
	Bottom Direction = "bottom"

	// Up moves an issue ahead of the previous issue in its state.
	Up Direction = "up"

	// Down moves an issue behind the next issue in its state.
	Down Direction = "down"
)

// Directions returns every reordering direction.
func Directions() []Direction {
	return []Direction{Top, Bottom, Up, Down}
}

// ParseDirection parses a reordering direction.
func ParseDirection(value string) (Direction, error) {
	switch d := Direction(strings.ToLower(strings.TrimSpace(value))); d {
	case Top, Bottom, Up, Down:
		return d, nil
	default:
		return "", validation.FormatInvalidValueError(ErrInvalidDirection, Direction(value), Directions())
	}
}

// NormalizeDescription trims the description and rejects empty text.
func NormalizeDescription(description string) (string, error) {
	trimmed := strings.TrimSpace(description)
	if trimmed == "" {
		return "", ErrEmptyDescription
	}
	return trimmed, nil
}
