package issue

import (
	"errors"
	"testing"

	"github.com/amonks/kanban/board"
	"github.com/google/go-cmp/cmp"
)

func TestAdd(t *testing.T) {
	b, h := newTestBoard(t, seed{"existing", StateOpen})
	due := datePtr(2024, 3, 9)

	id, err := Add(b, h, "  write docs \n", due, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if b.Entities[0].ID != id {
		t.Fatalf("expected new issue at index 0")
	}
	got := b.Entities[0].Content
	want := Issue{Description: "write docs", State: StateOpen, TimeCreated: testNow, Due: due}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected issue (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]Undoable{AddRecord{}}, h.Elements()); diff != "" {
		t.Fatalf("unexpected history (-want +got):\n%s", diff)
	}
}

func TestAdd_RejectsEmptyDescription(t *testing.T) {
	b, h := newTestBoard(t)

	if _, err := Add(b, h, "   ", nil, testNow); !errors.Is(err, ErrEmptyDescription) {
		t.Fatalf("expected ErrEmptyDescription, got %v", err)
	}
	if b.Len() != 0 || h.Len() != 0 {
		t.Fatalf("expected no changes")
	}
}

func TestDelete_RecordsPositionsInDeletionOrder(t *testing.T) {
	b, h := newTestBoard(t,
		seed{"a", StateOpen}, seed{"b", StateOpen}, seed{"c", StateOpen}, seed{"d", StateOpen})

	if err := Delete(b, h, []int{1, 0, 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if diff := cmp.Diff([]string{"d"}, descriptions(b.Entities)); diff != "" {
		t.Fatalf("unexpected active issues (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"c", "a", "b"}, descriptions(b.Deleted)); diff != "" {
		t.Fatalf("unexpected deleted issues (-want +got):\n%s", diff)
	}
	want := []Undoable{DeleteRecord{Positions: []int{1, 0, 0}}}
	if diff := cmp.Diff(want, h.Elements()); diff != "" {
		t.Fatalf("unexpected history (-want +got):\n%s", diff)
	}
}

func TestDelete_ReportsEveryInvalidIndex(t *testing.T) {
	b, h := newTestBoard(t, seed{"a", StateOpen}, seed{"b", StateOpen})
	before := snap(b, h)

	err := Delete(b, h, []int{0, 5, 1, 7})

	var got []int
	for _, e := range board.IndexErrors(err) {
		got = append(got, e.Index)
	}
	if diff := cmp.Diff([]int{5, 7}, got); diff != "" {
		t.Fatalf("unexpected index errors (-want +got):\n%s", diff)
	}
	requireSnapshot(t, before, b, h)
}

func TestDelete_DuplicateIndexDeletesOnce(t *testing.T) {
	b, h := newTestBoard(t, seed{"a", StateOpen}, seed{"b", StateOpen})

	if err := Delete(b, h, []int{0, 0}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"b"}, descriptions(b.Entities)); diff != "" {
		t.Fatalf("unexpected active issues (-want +got):\n%s", diff)
	}
	if b.DeletedLen() != 1 {
		t.Fatalf("expected 1 deleted issue, got %d", b.DeletedLen())
	}
}

func TestBatchOperations_RejectEmptyIndices(t *testing.T) {
	b, h := newTestBoard(t, seed{"a", StateOpen})

	if err := Delete(b, h, nil); !errors.Is(err, ErrNoIndices) {
		t.Fatalf("expected ErrNoIndices from Delete, got %v", err)
	}
	if err := Move(b, h, StateDone, []int{}); !errors.Is(err, ErrNoIndices) {
		t.Fatalf("expected ErrNoIndices from Move, got %v", err)
	}

	if h.Len() != 0 {
		t.Fatalf("expected empty history, got %d records", h.Len())
	}
	if diff := cmp.Diff([]string{"a"}, descriptions(b.Entities)); diff != "" {
		t.Fatalf("unexpected board (-want +got):\n%s", diff)
	}
	if b.Entities[0].Content.State != StateOpen {
		t.Fatalf("expected issue to stay open")
	}
}

func TestMove(t *testing.T) {
	b, h := newTestBoard(t,
		seed{"a", StateOpen},
		seed{"done1", StateDone},
		seed{"b", StateOpen},
		seed{"c", StateReview},
	)

	if err := Move(b, h, StateDone, []int{3, 0}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if diff := cmp.Diff([]string{"a", "c", "done1", "b"}, descriptions(b.Entities)); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}
}

func TestMove_ToDoneRepositions(t *testing.T) {
	b, h := newTestBoard(t,
		seed{"a", StateOpen},
		seed{"done1", StateDone},
		seed{"b", StateOpen},
	)

	if err := Move(b, h, StateDone, []int{2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if diff := cmp.Diff([]string{"a", "b", "done1"}, descriptions(b.Entities)); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}
	if b.Entities[1].Content.State != StateDone {
		t.Fatalf("expected moved issue to be done, got %q", b.Entities[1].Content.State)
	}
	want := []Undoable{MoveRecord{Steps: []MoveStep{{OriginalIndex: 2, OriginalState: StateOpen, NewIndex: 1}}}}
	if diff := cmp.Diff(want, h.Elements()); diff != "" {
		t.Fatalf("unexpected history (-want +got):\n%s", diff)
	}
}

func TestMove_ToReviewKeepsPosition(t *testing.T) {
	b, h := newTestBoard(t, seed{"a", StateOpen}, seed{"b", StateOpen})

	if err := Move(b, h, StateReview, []int{1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if b.Entities[1].Content.State != StateReview {
		t.Fatalf("expected review, got %q", b.Entities[1].Content.State)
	}
	want := []Undoable{MoveRecord{Steps: []MoveStep{{OriginalIndex: 1, OriginalState: StateOpen, NewIndex: 1}}}}
	if diff := cmp.Diff(want, h.Elements()); diff != "" {
		t.Fatalf("unexpected history (-want +got):\n%s", diff)
	}
}

func TestPrio(t *testing.T) {
	b, h := newTestBoard(t,
		seed{"a", StateOpen},
		seed{"r", StateReview},
		seed{"b", StateOpen},
	)

	newIndex, err := Prio(b, h, Top, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if newIndex != 0 {
		t.Fatalf("expected new index 0, got %d", newIndex)
	}
	if diff := cmp.Diff([]string{"b", "a", "r"}, descriptions(b.Entities)); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]Undoable{PrioRecord{OriginalIndex: 2, NewIndex: 0}}, h.Elements()); diff != "" {
		t.Fatalf("unexpected history (-want +got):\n%s", diff)
	}
}

func TestPrio_InvalidIndex(t *testing.T) {
	b, h := newTestBoard(t, seed{"a", StateOpen})

	_, err := Prio(b, h, Down, 1)
	var indexErr *board.IndexOutOfRangeError
	if !errors.As(err, &indexErr) || indexErr.Index != 1 {
		t.Fatalf("expected out of range error for 1, got %v", err)
	}
	if h.Len() != 0 {
		t.Fatalf("expected no history")
	}
}

func TestEdit(t *testing.T) {
	b, h := newTestBoard(t, seed{"old", StateOpen})
	editor := &fakeEditor{result: "new text\n"}

	if err := Edit(b, h, 0, editor); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if editor.got != "old" {
		t.Fatalf("expected editor to receive %q, got %q", "old", editor.got)
	}
	if got := b.Entities[0].Content.Description; got != "new text" {
		t.Fatalf("expected %q, got %q", "new text", got)
	}
	if diff := cmp.Diff([]Undoable{EditRecord{OriginalDescription: "old", Index: 0}}, h.Elements()); diff != "" {
		t.Fatalf("unexpected history (-want +got):\n%s", diff)
	}
}

func TestEdit_EditorFailureChangesNothing(t *testing.T) {
	b, h := newTestBoard(t, seed{"old", StateOpen})
	before := snap(b, h)
	cause := errors.New("exit status 1")

	err := Edit(b, h, 0, &fakeEditor{err: cause})

	var editorErr *EditorError
	if !errors.As(err, &editorErr) {
		t.Fatalf("expected EditorError, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected editor error to wrap cause")
	}
	requireSnapshot(t, before, b, h)
}

func TestEdit_EmptyResultChangesNothing(t *testing.T) {
	b, h := newTestBoard(t, seed{"old", StateOpen})
	before := snap(b, h)

	if err := Edit(b, h, 0, &fakeEditor{result: " \n"}); !errors.Is(err, ErrEmptyDescription) {
		t.Fatalf("expected ErrEmptyDescription, got %v", err)
	}
	requireSnapshot(t, before, b, h)
}

func TestSetDue(t *testing.T) {
	b, h := newTestBoard(t, seed{"a", StateOpen})
	due := datePtr(2024, 4, 1)

	if err := SetDue(b, h, 0, due); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := SetDue(b, h, 0, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if b.Entities[0].Content.Due != nil {
		t.Fatalf("expected due date to be cleared")
	}
	want := []Undoable{
		DueRecord{Index: 0, PreviousDue: nil},
		DueRecord{Index: 0, PreviousDue: due},
	}
	if diff := cmp.Diff(want, h.Elements()); diff != "" {
		t.Fatalf("unexpected history (-want +got):\n%s", diff)
	}
}

func TestFlush(t *testing.T) {
	b, h := newTestBoard(t,
		seed{"one", StateOpen},
		seed{"two", StateDone},
		seed{"three", StateReview},
		seed{"four", StateOpen},
	)

	if n := Flush(b, h); n != 3 {
		t.Fatalf("expected 3 flushed, got %d", n)
	}
	if diff := cmp.Diff([]string{"two"}, descriptions(b.Entities)); diff != "" {
		t.Fatalf("unexpected active issues (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"four", "three", "one"}, descriptions(b.Deleted)); diff != "" {
		t.Fatalf("unexpected deleted issues (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]Undoable{FlushRecord{Count: 3}}, h.Elements()); diff != "" {
		t.Fatalf("unexpected history (-want +got):\n%s", diff)
	}
}

func TestParseState(t *testing.T) {
	cases := []struct {
		input   string
		want    State
		wantErr bool
	}{
		{input: "open", want: StateOpen},
		{input: " Review ", want: StateReview},
		{input: "DONE", want: StateDone},
		{input: "closed", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseState(tc.input)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidState) {
					t.Fatalf("expected ErrInvalidState, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestParseDirection(t *testing.T) {
	for _, input := range []string{"top", "Bottom", " up", "DOWN"} {
		if _, err := ParseDirection(input); err != nil {
			t.Fatalf("unexpected error for %q: %v", input, err)
		}
	}

	_, err := ParseDirection("sideways")
	if !errors.Is(err, ErrInvalidDirection) {
		t.Fatalf("expected ErrInvalidDirection, got %v", err)
	}
	want := `invalid direction: "sideways" (valid: top, bottom, up, down)`
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}
