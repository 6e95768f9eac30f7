// Package tracker runs issue operations against persistent storage.
//
// Each call is one load → operate → save sequence. The board is saved only
// when the operation succeeds, so a failed command leaves storage untouched.
package tracker

import (
	"errors"
	"strings"
	"time"

	"github.com/amonks/kanban/board"
	"github.com/amonks/kanban/issue"
	"github.com/rs/zerolog"
)

// ErrNoEditor is returned by Edit when no editor was configured.
var ErrNoEditor = errors.New("no editor configured")

// Storage loads and saves a board together with its history.
type Storage interface {
	Load() (*issue.Board, *issue.History, error)
	Save(*issue.Board, *issue.History) error
}

// Updater is implemented by storage that can hold a lock across a load and
// save. When the storage implements it, the tracker uses it for mutations.
type Updater interface {
	Update(fn func(*issue.Board, *issue.History) error) error
}

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the local wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time {
	return time.Now()
}

// DateResolver turns human date text into a date relative to today. A nil
// date with a nil error means the text asks for no date.
type DateResolver interface {
	Resolve(text string, today issue.Date) (*issue.Date, error)
}

// Options configures a Tracker.
type Options struct {
	// Storage is required.
	Storage Storage

	// Editor is used by Edit.
	Editor issue.Editor

	// Clock defaults to SystemClock.
	Clock Clock

	// Dates resolves due date text. Without it only DateLayout is accepted.
	Dates DateResolver

	// Logger receives debug and warning events. Defaults to a no-op logger.
	Logger *zerolog.Logger

	// HistoryLimit caps the number of undo records kept. Zero keeps all.
	HistoryLimit int
}

// Tracker applies issue operations to stored boards.
type Tracker struct {
	storage      Storage
	editor       issue.Editor
	clock        Clock
	dates        DateResolver
	log          zerolog.Logger
	historyLimit int
}

// New returns a Tracker for opts.
func New(opts Options) (*Tracker, error) {
	if opts.Storage == nil {
		return nil, errors.New("tracker: storage is required")
	}
	if opts.HistoryLimit < 0 {
		return nil, errors.New("tracker: history limit cannot be negative")
	}

	t := &Tracker{
		storage:      opts.Storage,
		editor:       opts.Editor,
		clock:        opts.Clock,
		dates:        opts.Dates,
		log:          zerolog.Nop(),
		historyLimit: opts.HistoryLimit,
	}
	if t.clock == nil {
		t.clock = SystemClock{}
	}
	if opts.Logger != nil {
		t.log = *opts.Logger
	}
	return t, nil
}

// Now returns the clock's current time.
func (t *Tracker) Now() time.Time {
	return t.clock.Now()
}

// Today returns the clock's current date.
func (t *Tracker) Today() issue.Date {
	return issue.DateOf(t.clock.Now())
}

// Board loads the current board without changing it.
func (t *Tracker) Board() (*issue.Board, error) {
	b, _, err := t.storage.Load()
	return b, err
}

// History loads the undo records, oldest first.
func (t *Tracker) History() ([]issue.Undoable, error) {
	_, h, err := t.storage.Load()
	if err != nil {
		return nil, err
	}
	return h.Elements(), nil
}

// Add creates an issue. dueText may be empty for no due date.
func (t *Tracker) Add(description, dueText string) (board.ID, error) {
	due, err := t.ResolveDate(dueText)
	if err != nil {
		return board.ID{}, err
	}

	var id board.ID
	err = t.mutate(issue.KindAdd, []int{0}, func(b *issue.Board, h *issue.History) error {
		var err error
		id, err = issue.Add(b, h, description, due, t.clock.Now())
		return err
	})
	return id, err
}

// Delete soft-deletes the issues at indices.
func (t *Tracker) Delete(indices []int) error {
	return t.mutate(issue.KindDelete, indices, func(b *issue.Board, h *issue.History) error {
		return issue.Delete(b, h, indices)
	})
}

// Move changes the state of the issues at indices.
func (t *Tracker) Move(state issue.State, indices []int) error {
	return t.mutate(issue.KindMove, indices, func(b *issue.Board, h *issue.History) error {
		return issue.Move(b, h, state, indices)
	})
}

// Prio reorders the issue at index within its state and returns its new index.
func (t *Tracker) Prio(direction issue.Direction, index int) (int, error) {
	var newIndex int
	err := t.mutate(issue.KindPrio, []int{index}, func(b *issue.Board, h *issue.History) error {
		var err error
		newIndex, err = issue.Prio(b, h, direction, index)
		return err
	})
	return newIndex, err
}

// Edit opens the description of the issue at index in the editor.
func (t *Tracker) Edit(index int) error {
	if t.editor == nil {
		return ErrNoEditor
	}
	return t.mutate(issue.KindEdit, []int{index}, func(b *issue.Board, h *issue.History) error {
		return issue.Edit(b, h, index, t.editor)
	})
}

// Due sets the due date of the issue at index from text. Empty text clears it.
func (t *Tracker) Due(index int, text string) error {
	due, err := t.ResolveDate(text)
	if err != nil {
		return err
	}
	return t.mutate(issue.KindDue, []int{index}, func(b *issue.Board, h *issue.History) error {
		return issue.SetDue(b, h, index, due)
	})
}

// Flush soft-deletes every issue that is not done and returns the count.
func (t *Tracker) Flush() (int, error) {
	var count int
	err := t.mutate(issue.KindFlush, nil, func(b *issue.Board, h *issue.History) error {
		count = issue.Flush(b, h)
		return nil
	})
	return count, err
}

// Undo reverses the most recent mutation and returns its record.
func (t *Tracker) Undo() (issue.Undoable, error) {
	var undone issue.Undoable
	err := t.transact(func(b *issue.Board, h *issue.History) error {
		var err error
		undone, err = issue.Undo(b, h)
		return err
	})
	if err != nil {
		var invalid *issue.InvalidBoardError
		if errors.As(err, &invalid) {
			t.log.Warn().Str("reason", invalid.Reason).Msg("undo failed")
		}
		return nil, err
	}

	t.log.Debug().Str("kind", string(undone.Kind())).Msg("undone")
	return undone, nil
}

// ResolveDate turns text into a due date. Empty text means no date.
func (t *Tracker) ResolveDate(text string) (*issue.Date, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	if t.dates != nil {
		return t.dates.Resolve(text, t.Today())
	}

	d, err := issue.ParseDate(text)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (t *Tracker) mutate(kind issue.Kind, indices []int, fn func(*issue.Board, *issue.History) error) error {
	err := t.transact(func(b *issue.Board, h *issue.History) error {
		if err := fn(b, h); err != nil {
			return err
		}
		if dropped := h.Trim(t.historyLimit); dropped > 0 {
			t.log.Debug().Int("dropped", dropped).Int("limit", t.historyLimit).Msg("trimmed history")
		}
		return nil
	})
	if err != nil {
		return err
	}

	t.log.Debug().Str("kind", string(kind)).Ints("indices", indices).Msg("mutation committed")
	return nil
}

func (t *Tracker) transact(fn func(*issue.Board, *issue.History) error) error {
	if u, ok := t.storage.(Updater); ok {
		return u.Update(fn)
	}

	b, h, err := t.storage.Load()
	if err != nil {
		return err
	}
	if err := fn(b, h); err != nil {
		return err
	}
	return t.storage.Save(b, h)
}
