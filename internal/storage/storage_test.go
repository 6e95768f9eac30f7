package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/amonks/kanban/issue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var created = time.Date(2024, time.January, 2, 3, 4, 5, 0, time.UTC)

func openStores(t *testing.T) map[string]Store {
	t.Helper()

	dir := t.TempDir()
	sqlite, err := Open(BackendSQLite, filepath.Join(dir, "board.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqlite.Close() })

	json, err := Open(BackendJSON, filepath.Join(dir, "nested", "board.json"))
	require.NoError(t, err)

	return map[string]Store{"json": json, "sqlite": sqlite}
}

func TestStore_EmptyLoad(t *testing.T) {
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			b, h, err := store.Load()
			require.NoError(t, err)
			assert.Equal(t, 0, b.Len())
			assert.Equal(t, 0, b.DeletedLen())
			assert.Equal(t, 0, h.Len())
		})
	}
}

func TestStore_SaveLoad(t *testing.T) {
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			b, h, err := store.Load()
			require.NoError(t, err)

			_, err = issue.Add(b, h, "first", nil, created)
			require.NoError(t, err)
			_, err = issue.Add(b, h, "second", &issue.Date{Year: 2024, Month: time.February, Day: 1}, created)
			require.NoError(t, err)
			require.NoError(t, issue.Delete(b, h, []int{1}))
			require.NoError(t, store.Save(b, h))

			loaded, history, err := store.Load()
			require.NoError(t, err)
			assert.Equal(t, b.Entities[0].ID, loaded.Entities[0].ID)
			assert.Equal(t, "second", loaded.Entities[0].Content.Description)
			assert.Equal(t, "2024-02-01", loaded.Entities[0].Content.Due.String())
			assert.Equal(t, "first", loaded.Deleted[0].Content.Description)
			assert.Equal(t, h.Elements(), history.Elements())
		})
	}
}

func TestStore_UpdateCommitsOnSuccess(t *testing.T) {
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			err := store.Update(func(b *issue.Board, h *issue.History) error {
				_, err := issue.Add(b, h, "kept", nil, created)
				return err
			})
			require.NoError(t, err)

			b, h, err := store.Load()
			require.NoError(t, err)
			assert.Equal(t, 1, b.Len())
			assert.Equal(t, 1, h.Len())
		})
	}
}

func TestStore_UpdateDiscardsOnFailure(t *testing.T) {
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			boom := errors.New("boom")
			err := store.Update(func(b *issue.Board, h *issue.History) error {
				if _, err := issue.Add(b, h, "dropped", nil, created); err != nil {
					return err
				}
				return boom
			})
			require.ErrorIs(t, err, boom)

			b, _, err := store.Load()
			require.NoError(t, err)
			assert.Equal(t, 0, b.Len())
		})
	}
}

func TestJSONStore_ToleratesHandEdits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.json")
	content := `{
	// edited by hand
	"version": 1,
	"entities": [
		{
			"id": "6f1c2a8e-3b4d-4e5f-8a9b-0c1d2e3f4a5b",
			"content": {"description": "hand written", "state": "review", "time_created": "2024-01-01T00:00:00Z",},
		},
	],
	"deleted_entities": [],
	"history": [],
}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	b, _, err := NewJSONStore(path).Load()
	require.NoError(t, err)
	require.Equal(t, 1, b.Len())
	assert.Equal(t, issue.StateReview, b.Entities[0].Content.State)
}

func TestJSONStore_RejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"entities": [`), 0644))

	_, _, err := NewJSONStore(path).Load()
	require.ErrorIs(t, err, issue.ErrMalformedState)
	assert.True(t, strings.Contains(err.Error(), path))
}

func TestJSONStore_WritesReadableDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.json")
	store := NewJSONStore(path)

	err := store.Update(func(b *issue.Board, h *issue.History) error {
		_, err := issue.Add(b, h, "visible", nil, created)
		return err
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"deleted_entities": []`)
	assert.Contains(t, string(data), `"kind": "add"`)
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, err := Open("csv", filepath.Join(t.TempDir(), "board.csv"))
	require.ErrorIs(t, err, ErrUnknownBackend)
}
