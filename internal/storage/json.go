package storage

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/amonks/kanban/issue"
	"github.com/natefinch/atomic"
	"github.com/tailscale/hujson"
)

// JSONStore keeps the board in a single JSON file. Reads accept comments and
// trailing commas so the file can be edited by hand.
type JSONStore struct {
	path string
}

// NewJSONStore returns a store for the file at path.
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

// Path returns the board file path.
func (s *JSONStore) Path() string {
	return s.path
}

func (s *JSONStore) lockPath() string {
	return s.path + ".lock"
}

// Load reads the board from disk. Returns an empty board if the file doesn't exist.
func (s *JSONStore) Load() (*issue.Board, *issue.History, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return issue.Decode(nil, nil)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read board file: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return issue.Decode(nil, nil)
	}
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %v", issue.ErrMalformedState, s.path, err)
	}

	b, h, err := issue.Decode(standardized, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", s.path, err)
	}
	return b, h, nil
}

// Save writes the board to disk.
func (s *JSONStore) Save(b *issue.Board, h *issue.History) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create board dir: %w", err)
	}

	data, err := issue.Encode(b, h)
	if err != nil {
		return fmt.Errorf("encode board: %w", err)
	}
	data = append(data, '\n')

	if existing, err := os.ReadFile(s.path); err == nil {
		if bytes.Equal(existing, data) {
			return nil
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("read board file: %w", err)
	}

	if err := atomic.WriteFile(s.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write board file: %w", err)
	}
	return nil
}

// Update reads, modifies, and writes the board while holding an exclusive
// lock on a sibling lock file.
func (s *JSONStore) Update(fn func(*issue.Board, *issue.History) error) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create board dir: %w", err)
	}

	lockFile, err := os.OpenFile(s.lockPath(), os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return fmt.Errorf("open lock file: %w", err)
	}
	defer lockFile.Close()

	if err := syscall.Flock(int(lockFile.Fd()), syscall.LOCK_EX); err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	defer syscall.Flock(int(lockFile.Fd()), syscall.LOCK_UN)

	b, h, err := s.Load()
	if err != nil {
		return err
	}
	if err := fn(b, h); err != nil {
		return err
	}
	return s.Save(b, h)
}

// Close is a no-op; the file is only open during each call.
func (s *JSONStore) Close() error {
	return nil
}
