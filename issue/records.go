package issue

// Kind names an undo record variant in storage and output.
type Kind string

const (
	KindAdd    Kind = "add"
	KindDelete Kind = "delete"
	KindMove   Kind = "move"
	KindPrio   Kind = "prio"
	KindEdit   Kind = "edit"
	KindFlush  Kind = "flush"
	KindDue    Kind = "due"
)

// Undoable is a history record holding what is needed to reverse one
// mutation. The set of implementations is closed; they are the *Record types
// in this package.
type Undoable interface {
	Kind() Kind
	undoable()
}

// AddRecord reverses Add by removing the issue at position 0.
type AddRecord struct{}

// DeleteRecord reverses Delete. Positions holds each deleted issue's index at
// the moment it was deleted, in deletion order.
type DeleteRecord struct {
	Positions []int `json:"positions"`
}

// MoveStep is one issue's change in a Move.
type MoveStep struct {
	OriginalIndex int   `json:"original_index"`
	OriginalState State `json:"original_state"`
	NewIndex      int   `json:"new_index"`
}

// MoveRecord reverses Move. Steps are in the order they were applied.
type MoveRecord struct {
	Steps []MoveStep `json:"moves"`
}

// PrioRecord reverses Prio.
type PrioRecord struct {
	OriginalIndex int `json:"original_index"`
	NewIndex      int `json:"new_index"`
}

// EditRecord reverses Edit.
type EditRecord struct {
	OriginalDescription string `json:"original_description"`
	Index               int    `json:"index"`
}

// FlushRecord reverses Flush.
type FlushRecord struct {
	Count int `json:"count"`
}

// DueRecord reverses SetDue.
type DueRecord struct {
	Index       int   `json:"index"`
	PreviousDue *Date `json:"previous_due"`
}

func (AddRecord) Kind() Kind    { return KindAdd }
func (DeleteRecord) Kind() Kind { return KindDelete }
func (MoveRecord) Kind() Kind   { return KindMove }
func (PrioRecord) Kind() Kind   { return KindPrio }
func (EditRecord) Kind() Kind   { return KindEdit }
func (FlushRecord) Kind() Kind  { return KindFlush }
func (DueRecord) Kind() Kind    { return KindDue }

func (AddRecord) undoable()    {}
func (DeleteRecord) undoable() {}
func (MoveRecord) undoable()   {}
func (PrioRecord) undoable()   {}
func (EditRecord) undoable()   {}
func (FlushRecord) undoable()  {}
func (DueRecord) undoable()    {}
