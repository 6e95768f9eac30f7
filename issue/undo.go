package issue

import (
	"errors"

	"github.com/amonks/kanban/board"
)

// Undo reverses the most recent mutation recorded in h and returns its record.
//
// The reversal is applied to a copy of the board. Only when every step
// succeeds is the copy committed and the record popped; on failure b and h
// are left exactly as they were. A board that no longer matches its history
// produces an *InvalidBoardError.
func Undo(b *Board, h *History) (Undoable, error) {
	record, ok := h.Peek()
	if !ok {
		return nil, ErrEmptyHistory
	}

	work := b.Clone()
	var err error
	switch r := record.(type) {
	case AddRecord:
		err = undoAdd(work)
	case DeleteRecord:
		err = undoDelete(work, r)
	case MoveRecord:
		err = undoMove(work, r)
	case PrioRecord:
		err = undoPrio(work, r)
	case EditRecord:
		err = undoEdit(work, r)
	case FlushRecord:
		err = undoFlush(work, r)
	case DueRecord:
		err = undoDue(work, r)
	default:
		err = invalidBoard("unsupported record %T", record)
	}
	if err != nil {
		return nil, err
	}

	*b = *work
	h.Pop()
	return record, nil
}

func undoAdd(b *Board) error {
	id, err := lookup(b, 0)
	if err != nil {
		return err
	}
	if _, err := b.Remove(id); err != nil {
		return invalidBoard("%v", err)
	}
	return nil
}

func undoDelete(b *Board, r DeleteRecord) error {
	n := len(r.Positions)
	if n > b.DeletedLen() {
		return invalidBoard("%d deletions recorded but only %d deleted issues", n, b.DeletedLen())
	}

	restored, err := b.TakeDeleted(n)
	if err != nil {
		return invalidBoard("%v", err)
	}
	// restored[0] was deleted last, so it pairs with the last position.
	for i, entity := range restored {
		position := r.Positions[n-1-i]
		if err := b.TryInsert(position, entity); err != nil {
			return invalidBoard("cannot restore deleted issue: %v", err)
		}
	}
	return nil
}

func undoMove(b *Board, r MoveRecord) error {
	for i := len(r.Steps) - 1; i >= 0; i-- {
		step := r.Steps[i]
		if !step.OriginalState.IsValid() {
			return invalidBoard("move recorded unknown state %q", step.OriginalState)
		}

		id, err := lookup(b, step.NewIndex)
		if err != nil {
			return err
		}
		if step.NewIndex != step.OriginalIndex {
			if err := b.MoveTo(id, step.OriginalIndex); err != nil {
				return invalidBoard("cannot return moved issue: %v", err)
			}
		}

		entity, err := b.Get(id)
		if err != nil {
			return invalidBoard("%v", err)
		}
		entity.Content.State = step.OriginalState
	}
	return nil
}

func undoPrio(b *Board, r PrioRecord) error {
	id, err := lookup(b, r.NewIndex)
	if err != nil {
		return err
	}
	if err := b.MoveTo(id, r.OriginalIndex); err != nil {
		return invalidBoard("cannot return reprioritized issue: %v", err)
	}
	return nil
}

func undoEdit(b *Board, r EditRecord) error {
	entity, err := lookupEntity(b, r.Index)
	if err != nil {
		return err
	}
	entity.Content.Description = r.OriginalDescription
	return nil
}

func undoFlush(b *Board, r FlushRecord) error {
	if r.Count > b.DeletedLen() {
		return invalidBoard("%d flushed issues recorded but only %d deleted issues", r.Count, b.DeletedLen())
	}

	restored, err := b.TakeDeleted(r.Count)
	if err != nil {
		return invalidBoard("%v", err)
	}
	for _, entity := range restored {
		b.Insert(0, entity)
	}
	return nil
}

func undoDue(b *Board, r DueRecord) error {
	entity, err := lookupEntity(b, r.Index)
	if err != nil {
		return err
	}
	entity.Content.Due = r.PreviousDue
	return nil
}

// lookup resolves a recorded index, treating an out of range index as
// corruption rather than user error.
func lookup(b *Board, index int) (board.ID, error) {
	id, err := b.FindIDByIndex(index)
	if err != nil {
		var indexErr *board.IndexOutOfRangeError
		if errors.As(err, &indexErr) {
			return board.ID{}, invalidBoard("recorded index %d is out of range", indexErr.Index)
		}
		return board.ID{}, err
	}
	return id, nil
}

func lookupEntity(b *Board, index int) (*Entity, error) {
	id, err := lookup(b, index)
	if err != nil {
		return nil, err
	}
	entity, err := b.Get(id)
	if err != nil {
		return nil, invalidBoard("%v", err)
	}
	return entity, nil
}
