package storage

import (
	"database/sql"
	"fmt"

	"github.com/xvierd/discipline-tracker/internal/ports"
	_ "modernc.org/sqlite"
)

// sqliteStorage implements ports.Storage on a single SQLite database.
type sqliteStorage struct {
	db      *sql.DB
	states  *sqliteStateStore
	history *sqliteHistoryLog
}

var _ ports.Storage = (*sqliteStorage)(nil)

// NewSQLite opens or creates the database at dbPath and migrates it.
func NewSQLite(dbPath string) (ports.Storage, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps :memory: databases alive across calls.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	s := &sqliteStorage{
		db:      db,
		states:  &sqliteStateStore{db: db},
		history: &sqliteHistoryLog{db: db},
	}
	if err := s.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

// NewMemory creates an in-memory SQLite storage for tests.
func NewMemory() (ports.Storage, error) {
	return NewSQLite(":memory:")
}

func (s *sqliteStorage) States() ports.StateStore {
	return s.states
}

func (s *sqliteStorage) History() ports.HistoryLog {
	return s.history
}

// Close closes the database connection.
func (s *sqliteStorage) Close() error {
	return s.db.Close()
}

// Migrate creates the database schema.
func (s *sqliteStorage) Migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS timer_state (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		is_running INTEGER NOT NULL,
		mode TEXT NOT NULL,
		remaining INTEGER NOT NULL,
		work_sessions INTEGER NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS contributions (
		day TEXT PRIMARY KEY,
		count INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS history (
		id TEXT PRIMARY KEY,
		completed_at DATETIME NOT NULL,
		mode TEXT NOT NULL,
		line TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_history_completed ON history(completed_at);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}
