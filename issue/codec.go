package issue

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/amonks/kanban/board"
	"github.com/amonks/kanban/history"
	"github.com/amonks/kanban/internal/ids"
)

// DocumentVersion is the version of the stored document layout.
const DocumentVersion = 1

// document is the stored form of a board and its history.
type document struct {
	Version  int        `json:"version"`
	Entities []Entity   `json:"entities"`
	Deleted  []Entity   `json:"deleted_entities"`
	History  []envelope `json:"history"`
}

type envelope struct {
	Kind Kind            `json:"kind"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Encode serializes b and h into the stored document form.
func Encode(b *Board, h *History) ([]byte, error) {
	doc := document{
		Version:  DocumentVersion,
		Entities: nonNil(b.Entities),
		Deleted:  nonNil(b.Deleted),
		History:  make([]envelope, 0, h.Len()),
	}

	for _, record := range h.Elements() {
		env, err := encodeRecord(record)
		if err != nil {
			return nil, err
		}
		doc.History = append(doc.History, env)
	}

	return json.MarshalIndent(doc, "", "  ")
}

// Decode parses a stored document. Empty data decodes to an empty board and
// history. gen becomes the board's identifier source.
func Decode(data []byte, gen ids.Generator) (*Board, *History, error) {
	b := board.New[Issue](gen)
	if len(data) == 0 {
		return b, NewHistory(), nil
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformedState, err)
	}
	if doc.Version > DocumentVersion {
		return nil, nil, fmt.Errorf("%w: unsupported version %d", ErrMalformedState, doc.Version)
	}

	records := make([]Undoable, 0, len(doc.History))
	for i, env := range doc.History {
		record, err := decodeRecord(env)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: history record %d: %w", ErrMalformedState, i, err)
		}
		records = append(records, record)
	}

	b.Entities = doc.Entities
	b.Deleted = doc.Deleted
	if err := Validate(b); err != nil {
		return nil, nil, err
	}
	return b, history.FromSlice(records), nil
}

// Validate checks the invariants a stored board must satisfy: unique IDs
// across active and deleted issues, known states, and non-empty trimmed
// descriptions.
func Validate(b *Board) error {
	seen := make(map[board.ID]bool, len(b.Entities)+len(b.Deleted))
	var errs []error
	check := func(where string, i int, e Entity) {
		if seen[e.ID] {
			errs = append(errs, fmt.Errorf("%s %d: duplicate id %s", where, i, e.ID))
		}
		seen[e.ID] = true
		if !e.Content.State.IsValid() {
			errs = append(errs, fmt.Errorf("%s %d: %w: %q", where, i, ErrInvalidState, e.Content.State))
		}
		switch d := e.Content.Description; {
		case d == "":
			errs = append(errs, fmt.Errorf("%s %d: %w", where, i, ErrEmptyDescription))
		case strings.TrimSpace(d) != d:
			errs = append(errs, fmt.Errorf("%s %d: description has surrounding whitespace", where, i))
		}
	}
	for i, e := range b.Entities {
		check("issue", i, e)
	}
	for i, e := range b.Deleted {
		check("deleted issue", i, e)
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrMalformedState, errors.Join(errs...))
	}
	return nil
}

// EncodeRecord serializes a single undo record.
func EncodeRecord(record Undoable) ([]byte, error) {
	env, err := encodeRecord(record)
	if err != nil {
		return nil, err
	}
	return json.Marshal(env)
}

func encodeRecord(record Undoable) (envelope, error) {
	env := envelope{Kind: record.Kind()}
	if _, ok := record.(AddRecord); ok {
		return env, nil
	}

	data, err := json.Marshal(record)
	if err != nil {
		return envelope{}, fmt.Errorf("encode %s record: %w", record.Kind(), err)
	}
	env.Data = data
	return env, nil
}

func decodeRecord(env envelope) (Undoable, error) {
	switch env.Kind {
	case KindAdd:
		return AddRecord{}, nil
	case KindDelete:
		return decodeData[DeleteRecord](env)
	case KindMove:
		return decodeData[MoveRecord](env)
	case KindPrio:
		return decodeData[PrioRecord](env)
	case KindEdit:
		return decodeData[EditRecord](env)
	case KindFlush:
		return decodeData[FlushRecord](env)
	case KindDue:
		return decodeData[DueRecord](env)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRecord, env.Kind)
	}
}

func decodeData[R Undoable](env envelope) (Undoable, error) {
	var record R
	if len(env.Data) == 0 {
		return nil, fmt.Errorf("%s record has no data", env.Kind)
	}
	if err := json.Unmarshal(env.Data, &record); err != nil {
		return nil, fmt.Errorf("decode %s record: %w", env.Kind, err)
	}
	return record, nil
}

func nonNil(entities []Entity) []Entity {
	if entities == nil {
		return []Entity{}
	}
	return entities
}
