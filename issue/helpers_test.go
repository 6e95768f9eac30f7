package issue

import (
	"testing"
	"time"

	"github.com/amonks/kanban/board"
	"github.com/amonks/kanban/internal/ids"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var testNow = time.Date(2024, time.March, 4, 9, 30, 0, 0, time.UTC)

type seed struct {
	description string
	state       State
}

// newTestBoard builds a board whose issues appear in the given order.
func newTestBoard(t *testing.T, seeds ...seed) (*Board, *History) {
	t.Helper()

	b := board.New[Issue](&ids.Sequence{})
	for i := len(seeds) - 1; i >= 0; i-- {
		b.Append(Issue{
			Description: seeds[i].description,
			State:       seeds[i].state,
			TimeCreated: testNow,
		})
	}
	return b, NewHistory()
}

func descriptions(entities []Entity) []string {
	out := make([]string, len(entities))
	for i, e := range entities {
		out[i] = e.Content.Description
	}
	return out
}

// snapshot captures a board and history for later comparison.
type snapshot struct {
	Entities []Entity
	Deleted  []Entity
	History  []Undoable
}

func snap(b *Board, h *History) snapshot {
	clone := b.Clone()
	return snapshot{Entities: clone.Entities, Deleted: clone.Deleted, History: h.Elements()}
}

func requireSnapshot(t *testing.T, want snapshot, b *Board, h *History) {
	t.Helper()
	if diff := cmp.Diff(want, snap(b, h), cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("state mismatch (-want +got):\n%s", diff)
	}
}

type fakeEditor struct {
	result string
	err    error
	got    string
}

func (e *fakeEditor) EditText(text string) (string, error) {
	e.got = text
	return e.result, e.err
}

func datePtr(year int, month time.Month, day int) *Date {
	return &Date{Year: year, Month: month, Day: day}
}
