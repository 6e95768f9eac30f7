package board

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestReorder(t *testing.T) {
	cards := []card{
		{Name: "r1", Color: "red"},
		{Name: "b1", Color: "blue"},
		{Name: "r2", Color: "red"},
		{Name: "b2", Color: "blue"},
		{Name: "r3", Color: "red"},
	}

	cases := []struct {
		name      string
		target    string
		op        func(*Board[card], ID) (int, error)
		wantOrder []string
		wantIndex int
	}{
		{
			name:      "top",
			target:    "r3",
			op:        (*Board[card]).PrioTopInCategory,
			wantOrder: []string{"r3", "r1", "b1", "r2", "b2"},
			wantIndex: 0,
		},
		{
			name:      "top of second category",
			target:    "b2",
			op:        (*Board[card]).PrioTopInCategory,
			wantOrder: []string{"r1", "b2", "b1", "r2", "r3"},
			wantIndex: 1,
		},
		{
			name:      "bottom",
			target:    "r1",
			op:        (*Board[card]).PrioBottomInCategory,
			wantOrder: []string{"b1", "r2", "b2", "r3", "r1"},
			wantIndex: 4,
		},
		{
			name:      "up",
			target:    "r3",
			op:        (*Board[card]).PrioUpInCategory,
			wantOrder: []string{"r1", "b1", "r3", "r2", "b2"},
			wantIndex: 2,
		},
		{
			name:      "up when first",
			target:    "r1",
			op:        (*Board[card]).PrioUpInCategory,
			wantOrder: []string{"r1", "b1", "r2", "b2", "r3"},
			wantIndex: 0,
		},
		{
			name:      "down",
			target:    "b1",
			op:        (*Board[card]).PrioDownInCategory,
			wantOrder: []string{"r1", "r2", "b2", "b1", "r3"},
			wantIndex: 3,
		},
		{
			name:      "down when last",
			target:    "r3",
			op:        (*Board[card]).PrioDownInCategory,
			wantOrder: []string{"r1", "b1", "r2", "b2", "r3"},
			wantIndex: 4,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := newBoard(cards...)
			var id ID
			for _, e := range b.Entities {
				if e.Content.Name == tc.target {
					id = e.ID
				}
			}

			index, err := tc.op(b, id)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if index != tc.wantIndex {
				t.Fatalf("expected index %d, got %d", tc.wantIndex, index)
			}
			if diff := cmp.Diff(tc.wantOrder, names(b.Entities)); diff != "" {
				t.Fatalf("unexpected order (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReorder_SoleMemberIsNoop(t *testing.T) {
	ops := map[string]func(*Board[card], ID) (int, error){
		"top":    (*Board[card]).PrioTopInCategory,
		"bottom": (*Board[card]).PrioBottomInCategory,
		"up":     (*Board[card]).PrioUpInCategory,
		"down":   (*Board[card]).PrioDownInCategory,
	}

	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			b := newBoard(
				card{Name: "r1", Color: "red"},
				card{Name: "g", Color: "green"},
				card{Name: "r2", Color: "red"},
			)
			before := b.Clone()

			index, err := op(b, b.Entities[1].ID)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if index != 1 {
				t.Fatalf("expected index 1, got %d", index)
			}
			if diff := cmp.Diff(before.Entities, b.Entities); diff != "" {
				t.Fatalf("board changed (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMoveTo(t *testing.T) {
	b := newBoard(card{Name: "a"}, card{Name: "b"}, card{Name: "c"})

	if err := b.MoveTo(b.Entities[0].ID, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"b", "c", "a"}, names(b.Entities)); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}

	if err := b.MoveTo(b.Entities[0].ID, 3); err == nil {
		t.Fatalf("expected out of range error")
	}
}
