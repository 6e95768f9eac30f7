package issue

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestUndo_RoundTrip(t *testing.T) {
	base := []seed{
		{"a", StateOpen},
		{"gone", StateReview},
		{"b", StateOpen},
		{"d", StateDone},
		{"c", StateOpen},
		{"e", StateReview},
	}

	cases := []struct {
		name   string
		seeds  []seed
		mutate func(*Board, *History) error
	}{
		{
			name: "add",
			mutate: func(b *Board, h *History) error {
				_, err := Add(b, h, "new", datePtr(2024, 6, 1), testNow)
				return err
			},
		},
		{
			name: "delete",
			mutate: func(b *Board, h *History) error {
				return Delete(b, h, []int{4, 0, 2})
			},
		},
		{
			name: "move to done",
			mutate: func(b *Board, h *History) error {
				return Move(b, h, StateDone, []int{4, 1, 0})
			},
		},
		{
			name: "move to review",
			mutate: func(b *Board, h *History) error {
				return Move(b, h, StateReview, []int{2, 3})
			},
		},
		{
			name: "prio top",
			mutate: func(b *Board, h *History) error {
				_, err := Prio(b, h, Top, 3)
				return err
			},
		},
		{
			name: "prio bottom",
			mutate: func(b *Board, h *History) error {
				_, err := Prio(b, h, Bottom, 0)
				return err
			},
		},
		{
			name: "prio up",
			mutate: func(b *Board, h *History) error {
				_, err := Prio(b, h, Up, 3)
				return err
			},
		},
		{
			name: "prio down",
			mutate: func(b *Board, h *History) error {
				_, err := Prio(b, h, Down, 1)
				return err
			},
		},
		{
			name: "edit",
			mutate: func(b *Board, h *History) error {
				return Edit(b, h, 1, &fakeEditor{result: "rewritten"})
			},
		},
		{
			name: "set due",
			mutate: func(b *Board, h *History) error {
				return SetDue(b, h, 2, datePtr(2024, 5, 1))
			},
		},
		{
			name: "flush",
			seeds: []seed{
				{"a", StateOpen},
				{"gone", StateReview},
				{"b", StateOpen},
				{"c", StateReview},
				{"d", StateDone},
			},
			mutate: func(b *Board, h *History) error {
				Flush(b, h)
				return nil
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			seeds := tc.seeds
			if seeds == nil {
				seeds = base
			}
			b, h := newTestBoard(t, seeds...)
			// Leave an older record and deleted issue for the undo to skip.
			if err := Delete(b, h, []int{1}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			before := snap(b, h)

			if err := tc.mutate(b, h); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			record, err := Undo(b, h)
			if err != nil {
				t.Fatalf("unexpected undo error: %v", err)
			}
			if record == nil {
				t.Fatalf("expected undone record")
			}
			requireSnapshot(t, before, b, h)
		})
	}
}

func TestUndo_DeleteMultipleIndices(t *testing.T) {
	b, h := newTestBoard(t,
		seed{"a", StateOpen}, seed{"b", StateOpen}, seed{"c", StateOpen}, seed{"d", StateOpen})

	if err := Delete(b, h, []int{1, 0, 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := Undo(b, h); err != nil {
		t.Fatalf("unexpected undo error: %v", err)
	}

	if diff := cmp.Diff([]string{"a", "b", "c", "d"}, descriptions(b.Entities)); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}
	if b.DeletedLen() != 0 || h.Len() != 0 {
		t.Fatalf("expected deleted stack and history to be empty")
	}
}

func TestUndo_FlushRestoresInOriginalOrder(t *testing.T) {
	b, h := newTestBoard(t,
		seed{"one", StateOpen},
		seed{"two", StateDone},
		seed{"three", StateReview},
		seed{"four", StateOpen},
	)

	Flush(b, h)
	if _, err := Undo(b, h); err != nil {
		t.Fatalf("unexpected undo error: %v", err)
	}

	if diff := cmp.Diff([]string{"one", "three", "four", "two"}, descriptions(b.Entities)); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}
}

func TestUndo_EmptyHistory(t *testing.T) {
	b, h := newTestBoard(t, seed{"a", StateOpen})
	before := snap(b, h)

	if _, err := Undo(b, h); !errors.Is(err, ErrEmptyHistory) {
		t.Fatalf("expected ErrEmptyHistory, got %v", err)
	}
	requireSnapshot(t, before, b, h)
}

func TestUndo_InvalidBoard(t *testing.T) {
	cases := []struct {
		name    string
		records []Undoable
		seeds   []seed
		deleted int
	}{
		{
			name:    "flush of more issues than are deleted",
			records: []Undoable{FlushRecord{Count: 3}},
			seeds:   []seed{{"x", StateDone}, {"y", StateOpen}, {"z", StateOpen}},
			deleted: 2,
		},
		{
			name:    "delete of more issues than are deleted",
			records: []Undoable{DeleteRecord{Positions: []int{0, 0}}},
			seeds:   []seed{{"x", StateOpen}},
		},
		{
			name:    "delete restoring past the end",
			records: []Undoable{DeleteRecord{Positions: []int{5}}},
			seeds:   []seed{{"x", StateOpen}, {"y", StateOpen}},
			deleted: 1,
		},
		{
			name:    "add on an empty board",
			records: []Undoable{AddRecord{}},
		},
		{
			name:    "move from a missing index",
			records: []Undoable{MoveRecord{Steps: []MoveStep{{OriginalIndex: 0, OriginalState: StateOpen, NewIndex: 4}}}},
			seeds:   []seed{{"x", StateDone}},
		},
		{
			name: "move back past the end",
			records: []Undoable{MoveRecord{Steps: []MoveStep{
				{OriginalIndex: 0, OriginalState: StateOpen, NewIndex: 0},
				{OriginalIndex: 3, OriginalState: StateOpen, NewIndex: 0},
			}}},
			seeds: []seed{{"x", StateDone}},
		},
		{
			name:    "prio from a missing index",
			records: []Undoable{PrioRecord{OriginalIndex: 0, NewIndex: 2}},
			seeds:   []seed{{"x", StateOpen}},
		},
		{
			name:    "edit of a missing index",
			records: []Undoable{EditRecord{OriginalDescription: "old", Index: 1}},
			seeds:   []seed{{"x", StateOpen}},
		},
		{
			name:    "due of a missing index",
			records: []Undoable{DueRecord{Index: 0}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b, _ := newTestBoard(t, tc.seeds...)
			if tc.deleted > 0 {
				if err := b.MarkAsDeleted(b.Entities[b.Len()-1].ID); err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if tc.deleted > 1 {
					if err := b.MarkAsDeleted(b.Entities[b.Len()-1].ID); err != nil {
						t.Fatalf("unexpected error: %v", err)
					}
				}
			}
			h := NewHistory()
			for _, record := range tc.records {
				h.Push(record)
			}
			before := snap(b, h)

			_, err := Undo(b, h)

			var invalid *InvalidBoardError
			if !errors.As(err, &invalid) {
				t.Fatalf("expected InvalidBoardError, got %v", err)
			}
			requireSnapshot(t, before, b, h)
		})
	}
}
