package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xvierd/discipline-tracker/internal/domain"
	"github.com/xvierd/discipline-tracker/internal/ports"
)

var errCorruptState = errors.New("corrupt state")

// StateFile stores the timer state as a JSON document.
type StateFile struct {
	path string
}

var _ ports.StateStore = (*StateFile)(nil)

// NewStateFile returns a store backed by the file at path.
func NewStateFile(path string) *StateFile {
	return &StateFile{path: path}
}

// Path returns the location of the state file.
func (f *StateFile) Path() string {
	return f.path
}

// Load reads the state file. A missing file yields a fresh state and no
// error. An unreadable or corrupt file yields a fresh state and an error
// explaining why; the corrupt file is kept next to the original with a
// .corrupt suffix.
func (f *StateFile) Load(ctx context.Context) (*domain.TimerState, error) {
	state, err := f.Inspect(ctx)
	if errors.Is(err, errCorruptState) {
		backup := f.path + ".corrupt"
		_ = os.Rename(f.path, backup)
		return state, fmt.Errorf("%w (backed up to %s)", err, backup)
	}
	return state, err
}

// Inspect reads the state file like Load but never touches the file system:
// a corrupt file stays where it is.
func (f *StateFile) Inspect(ctx context.Context) (*domain.TimerState, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return domain.NewTimerState(), nil
	}
	if err != nil {
		return domain.NewTimerState(), fmt.Errorf("failed to read state file %s: %w", f.path, err)
	}

	state, err := decodeState(data)
	if err != nil {
		return domain.NewTimerState(), fmt.Errorf("%w in %s: %w", errCorruptState, f.path, err)
	}
	return state, nil
}

// Save atomically replaces the state file.
func (f *StateFile) Save(ctx context.Context, state *domain.TimerState) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace state file: %w", err)
	}
	return nil
}

func decodeState(data []byte) (*domain.TimerState, error) {
	var state domain.TimerState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	if state.Contributions == nil {
		state.Contributions = make(map[domain.Date]int)
	}
	if err := state.Validate(); err != nil {
		return nil, err
	}
	return &state, nil
}
