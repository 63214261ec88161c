// Package ports defines the interfaces between the timer core and the
// infrastructure around it. Adapters implement the driven ports; the UI
// shells drive the core through TimerCommand values.
package ports

import (
	"context"

	"github.com/xvierd/discipline-tracker/internal/domain"
)

// StateStore persists the timer state.
type StateStore interface {
	// Load always returns a usable state. When the stored state is missing
	// it returns a fresh one and a nil error; when it is unreadable or
	// corrupt it returns a fresh one together with an error describing why
	// the stored state was discarded.
	Load(ctx context.Context) (*domain.TimerState, error)

	// Save overwrites the stored state.
	Save(ctx context.Context, state *domain.TimerState) error
}

// HistoryLog is the append-only record of completed phases.
type HistoryLog interface {
	// Append adds one entry to the end of the log.
	Append(ctx context.Context, entry domain.HistoryEntry) error

	// Recent returns up to limit lines, most recent first. A missing log
	// yields an empty slice.
	Recent(ctx context.Context, limit int) ([]string, error)
}

// Storage bundles the stores of one backend.
type Storage interface {
	States() StateStore
	History() HistoryLog
	Close() error
}
