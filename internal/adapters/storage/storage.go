// Package storage implements the persistence ports. The default backend is
// a JSON state file next to a plain text history log; a SQLite backend
// keeps both in one database.
package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xvierd/discipline-tracker/internal/ports"
)

// File names inside the data directory.
const (
	StateFileName   = "pomodoro_state.json"
	HistoryFileName = "history.txt"
	DatabaseName    = "discipline.db"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

type fileStorage struct {
	state   *StateFile
	history *HistoryFile
}

var _ ports.Storage = (*fileStorage)(nil)

// NewFiles returns file backed storage rooted at dir.
func NewFiles(dir string) ports.Storage {
	return &fileStorage{
		state:   NewStateFile(filepath.Join(dir, StateFileName)),
		history: NewHistoryFile(filepath.Join(dir, HistoryFileName)),
	}
}

func (s *fileStorage) States() ports.StateStore {
	return s.state
}

func (s *fileStorage) History() ports.HistoryLog {
	return s.history
}

func (s *fileStorage) Close() error {
	return nil
}

// Open creates dir when missing and returns the storage for backend.
func Open(backend, dir string) (ports.Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	switch backend {
	case BackendFile, "":
		return NewFiles(dir), nil
	case BackendSQLite:
		return NewSQLite(filepath.Join(dir, DatabaseName))
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
