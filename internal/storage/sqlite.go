package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/amonks/kanban/issue"
	_ "github.com/mattn/go-sqlite3"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS board_state (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	data TEXT NOT NULL,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`

// SQLiteStore keeps the board document in a one-row SQLite table.
type SQLiteStore struct {
	db *sql.DB
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryRow(query string, args ...any) *sql.Row
	Exec(query string, args ...any) (sql.Result, error)
}

// OpenSQLite opens or creates the database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create board dir: %w", err)
	}

	// Update's transaction takes the write lock when it begins.
	db, err := sql.Open("sqlite3", "file:"+path+"?_txlock=immediate&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create board_state table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Load reads the board. Returns an empty board if none has been saved.
func (s *SQLiteStore) Load() (*issue.Board, *issue.History, error) {
	return load(s.db)
}

// Save replaces the stored board.
func (s *SQLiteStore) Save(b *issue.Board, h *issue.History) error {
	return save(s.db, b, h)
}

// Update loads, modifies, and saves the board in one transaction.
func (s *SQLiteStore) Update(fn func(*issue.Board, *issue.History) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	b, h, err := load(tx)
	if err != nil {
		return err
	}
	if err := fn(b, h); err != nil {
		return err
	}
	if err := save(tx, b, h); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func load(q queryer) (*issue.Board, *issue.History, error) {
	var data string
	err := q.QueryRow("SELECT data FROM board_state WHERE id = 1").Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return issue.Decode(nil, nil)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("query board: %w", err)
	}

	return issue.Decode([]byte(data), nil)
}

func save(q queryer, b *issue.Board, h *issue.History) error {
	data, err := issue.Encode(b, h)
	if err != nil {
		return fmt.Errorf("encode board: %w", err)
	}

	_, err = q.Exec(`
		INSERT INTO board_state (id, data, updated_at)
		VALUES (1, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			data = excluded.data,
			updated_at = CURRENT_TIMESTAMP
	`, string(data))
	if err != nil {
		return fmt.Errorf("upsert board: %w", err)
	}
	return nil
}
