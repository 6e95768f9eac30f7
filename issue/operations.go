package issue

import (
	"time"

	"github.com/amonks/kanban/board"
)

// Editor replaces a piece of text, usually by handing it to a person.
type Editor interface {
	EditText(text string) (string, error)
}

// Add creates an open issue at the top of the board and returns its ID.
func Add(b *Board, h *History, description string, due *Date, now time.Time) (board.ID, error) {
	description, err := NormalizeDescription(description)
	if err != nil {
		return board.ID{}, err
	}

	id := b.Append(Issue{
		Description: description,
		State:       StateOpen,
		TimeCreated: now,
		Due:         due,
	})
	h.Push(AddRecord{})
	return id, nil
}

// Delete soft-deletes the issues at indices. Every invalid index is reported
// and nothing is deleted if any index is invalid. An index given more than
// once is deleted once.
func Delete(b *Board, h *History, indices []int) error {
	if len(indices) == 0 {
		return ErrNoIndices
	}
	targets, err := resolve(b, indices)
	if err != nil {
		return err
	}

	record := DeleteRecord{Positions: make([]int, 0, len(targets))}
	for _, id := range targets {
		position, err := b.Position(id)
		if err != nil {
			return err
		}
		if err := b.MarkAsDeleted(id); err != nil {
			return err
		}
		record.Positions = append(record.Positions, position)
	}

	h.Push(record)
	return nil
}

// Move changes the state of the issues at indices. Issues moved to done are
// also moved to the top of the done issues. Every invalid index is reported
// and nothing is moved if any index is invalid.
func Move(b *Board, h *History, state State, indices []int) error {
	if !state.IsValid() {
		return ErrInvalidState
	}
	if len(indices) == 0 {
		return ErrNoIndices
	}

	targets, err := resolve(b, indices)
	if err != nil {
		return err
	}

	record := MoveRecord{Steps: make([]MoveStep, 0, len(targets))}
	for _, id := range targets {
		original, err := b.Position(id)
		if err != nil {
			return err
		}
		entity, err := b.Get(id)
		if err != nil {
			return err
		}

		step := MoveStep{
			OriginalIndex: original,
			OriginalState: entity.Content.State,
			NewIndex:      original,
		}
		entity.Content.State = state

		if state == StateDone {
			step.NewIndex, err = b.PrioTopInCategory(id)
			if err != nil {
				return err
			}
		}
		record.Steps = append(record.Steps, step)
	}

	h.Push(record)
	return nil
}

// Prio reorders the issue at index within its state and returns its new index.
func Prio(b *Board, h *History, direction Direction, index int) (int, error) {
	id, err := b.FindIDByIndex(index)
	if err != nil {
		return 0, err
	}

	var reorder func(board.ID) (int, error)
	switch direction {
	case Top:
		reorder = b.PrioTopInCategory
	case Bottom:
		reorder = b.PrioBottomInCategory
	case Up:
		reorder = b.PrioUpInCategory
	case Down:
		reorder = b.PrioDownInCategory
	default:
		return 0, ErrInvalidDirection
	}

	newIndex, err := reorder(id)
	if err != nil {
		return 0, err
	}

	h.Push(PrioRecord{OriginalIndex: index, NewIndex: newIndex})
	return newIndex, nil
}

// Edit replaces the description of the issue at index with the editor's
// result. A failing editor aborts the edit with an *EditorError.
func Edit(b *Board, h *History, index int, editor Editor) error {
	id, err := b.FindIDByIndex(index)
	if err != nil {
		return err
	}
	entity, err := b.Get(id)
	if err != nil {
		return err
	}

	original := entity.Content.Description
	edited, err := editor.EditText(original)
	if err != nil {
		return &EditorError{Err: err}
	}
	edited, err = NormalizeDescription(edited)
	if err != nil {
		return err
	}

	entity.Content.Description = edited
	h.Push(EditRecord{OriginalDescription: original, Index: index})
	return nil
}

// SetDue sets or, when due is nil, clears the due date of the issue at index.
func SetDue(b *Board, h *History, index int, due *Date) error {
	id, err := b.FindIDByIndex(index)
	if err != nil {
		return err
	}
	entity, err := b.Get(id)
	if err != nil {
		return err
	}

	previous := entity.Content.Due
	entity.Content.Due = due
	h.Push(DueRecord{Index: index, PreviousDue: previous})
	return nil
}

// Flush soft-deletes every issue that is not done and returns how many were
// removed.
func Flush(b *Board, h *History) int {
	count := b.Flush(func(i Issue) bool {
		return i.State != StateDone
	})
	h.Push(FlushRecord{Count: count})
	return count
}

// resolve validates indices and returns their IDs without duplicates, in
// order of first appearance.
func resolve(b *Board, indices []int) ([]board.ID, error) {
	resolved, err := b.FindIDsByIndices(indices)
	if err != nil {
		return nil, err
	}

	seen := make(map[board.ID]bool, len(resolved))
	unique := resolved[:0]
	for _, id := range resolved {
		if seen[id] {
			continue
		}
		seen[id] = true
		unique = append(unique, id)
	}
	return unique, nil
}
