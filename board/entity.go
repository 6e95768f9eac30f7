// Package board implements an ordered, prioritized collection of entities
// with soft deletion.
//
// Position encodes priority: index 0 is the highest priority entity. Each
// entity's content belongs to a category, and the reordering operations
// permute entities only relative to the other members of their category.
// Deleted entities are kept on a stack, most recently deleted first, so that
// deletions can be reversed.
package board

import "github.com/google/uuid"

// ID identifies an entity for its whole lifetime.
type ID = uuid.UUID

// Categorized is implemented by entity content that belongs to exactly one category.
type Categorized interface {
	Category() string
}

// Entity pairs a stable identifier with mutable content.
type Entity[T any] struct {
	ID      ID `json:"id"`
	Content T  `json:"content"`
}
