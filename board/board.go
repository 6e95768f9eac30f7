package board

import (
	"errors"
	"slices"

	"github.com/amonks/kanban/internal/ids"
)

// Board holds the active entities in priority order and the soft-deleted
// entities, most recently deleted first.
//
// The zero value is an empty board that generates random identifiers.
type Board[T Categorized] struct {
	// Entities are the active entities. Lower index means higher priority.
	Entities []Entity[T] `json:"entities"`

	// Deleted are soft-deleted entities. Index 0 is the most recently deleted.
	Deleted []Entity[T] `json:"deleted_entities"`

	ids ids.Generator
}

// New returns an empty board that draws identifiers from gen.
// A nil gen uses random identifiers.
func New[T Categorized](gen ids.Generator) *Board[T] {
	return &Board[T]{ids: gen}
}

// Len returns the number of active entities.
func (b *Board[T]) Len() int {
	return len(b.Entities)
}

// FindIDByIndex returns the ID of the entity at index.
func (b *Board[T]) FindIDByIndex(index int) (ID, error) {
	if index < 0 || index >= len(b.Entities) {
		return ID{}, &IndexOutOfRangeError{Index: index}
	}
	return b.Entities[index].ID, nil
}

// FindIDsByIndices resolves every index to an ID, preserving order and
// duplicates. If any index is invalid, the returned error joins one
// IndexOutOfRangeError per invalid index, in input order, and no IDs are
// returned.
func (b *Board[T]) FindIDsByIndices(indices []int) ([]ID, error) {
	resolved := make([]ID, 0, len(indices))
	var errs []error
	for _, index := range indices {
		id, err := b.FindIDByIndex(index)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		resolved = append(resolved, id)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return resolved, nil
}

// Append wraps content in a new entity and inserts it at the highest priority.
func (b *Board[T]) Append(content T) ID {
	if b.ids == nil {
		b.ids = ids.Random{}
	}

	entity := Entity[T]{ID: b.ids.New(), Content: content}
	b.Insert(0, entity)
	return entity.ID
}

// Insert places entity at index. It panics if index > Len().
func (b *Board[T]) Insert(index int, entity Entity[T]) {
	b.Entities = slices.Insert(b.Entities, index, entity)
}

// TryInsert places entity at index, or reports IndexOutOfRangeError if
// index > Len().
func (b *Board[T]) TryInsert(index int, entity Entity[T]) error {
	if index < 0 || index > len(b.Entities) {
		return &IndexOutOfRangeError{Index: index}
	}
	b.Insert(index, entity)
	return nil
}

// Position returns the current index of id.
func (b *Board[T]) Position(id ID) (int, error) {
	for i := range b.Entities {
		if b.Entities[i].ID == id {
			return i, nil
		}
	}
	return 0, notFound(id)
}

// Get returns the entity with the given id. The pointer is valid until the
// next call that adds or removes entities.
func (b *Board[T]) Get(id ID) (*Entity[T], error) {
	position, err := b.Position(id)
	if err != nil {
		return nil, err
	}
	return &b.Entities[position], nil
}

// Remove takes the entity out of the board entirely.
func (b *Board[T]) Remove(id ID) (Entity[T], error) {
	position, err := b.Position(id)
	if err != nil {
		return Entity[T]{}, err
	}

	entity := b.Entities[position]
	b.Entities = slices.Delete(b.Entities, position, position+1)
	return entity, nil
}

// MarkAsDeleted moves the entity to the front of the deleted stack.
func (b *Board[T]) MarkAsDeleted(id ID) error {
	entity, err := b.Remove(id)
	if err != nil {
		return err
	}

	b.Deleted = slices.Insert(b.Deleted, 0, entity)
	return nil
}

// DeletedLen returns the number of soft-deleted entities.
func (b *Board[T]) DeletedLen() int {
	return len(b.Deleted)
}

// TakeDeleted removes the n most recently deleted entities from the deleted
// stack and returns them, most recent first. It reports IndexOutOfRangeError
// if fewer than n entities are deleted.
func (b *Board[T]) TakeDeleted(n int) ([]Entity[T], error) {
	if n < 0 || n > len(b.Deleted) {
		return nil, &IndexOutOfRangeError{Index: n}
	}

	taken := slices.Clone(b.Deleted[:n])
	b.Deleted = slices.Delete(b.Deleted, 0, n)
	return taken, nil
}

// Flush soft-deletes every active entity for which remove reports true.
// Each removed entity is pushed onto the front of the deleted stack in
// removal order, so the last one removed ends up first. It returns the number
// of entities removed.
func (b *Board[T]) Flush(remove func(T) bool) int {
	kept := make([]Entity[T], 0, len(b.Entities))
	removed := 0
	for _, entity := range b.Entities {
		if !remove(entity.Content) {
			kept = append(kept, entity)
			continue
		}
		b.Deleted = slices.Insert(b.Deleted, 0, entity)
		removed++
	}

	b.Entities = kept
	return removed
}

// Clone returns a copy of the board whose entity slices can be modified
// without affecting b. Content values are copied, not deep-cloned.
func (b *Board[T]) Clone() *Board[T] {
	return &Board[T]{
		Entities: slices.Clone(b.Entities),
		Deleted:  slices.Clone(b.Deleted),
		ids:      b.ids,
	}
}
