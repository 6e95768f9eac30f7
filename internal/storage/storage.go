// Package storage persists issue boards and their undo history.
package storage

import (
	"errors"
	"fmt"

	"github.com/amonks/kanban/issue"
)

// Backend names a storage implementation.
type Backend string

const (
	// BackendJSON stores the board as a JSON document on disk.
	BackendJSON Backend = "json"

	// BackendSQLite stores the board document in a SQLite database.
	BackendSQLite Backend = "sqlite"
)

// ErrUnknownBackend is returned by Open for an unrecognized backend.
var ErrUnknownBackend = errors.New("unknown storage backend")

// Store loads and saves a board and its history.
type Store interface {
	// Load returns the stored board, or an empty board if nothing is stored.
	Load() (*issue.Board, *issue.History, error)

	// Save replaces the stored board.
	Save(*issue.Board, *issue.History) error

	// Update loads the board, applies fn, and saves the result while holding
	// an exclusive lock. Nothing is saved if fn fails.
	Update(fn func(*issue.Board, *issue.History) error) error

	// Close releases any resources held by the store.
	Close() error
}

// Open returns the store for backend at path.
func Open(backend Backend, path string) (Store, error) {
	switch backend {
	case BackendJSON, "":
		return NewJSONStore(path), nil
	case BackendSQLite:
		store, err := OpenSQLite(path)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}
