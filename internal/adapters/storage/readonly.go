package storage

import (
	"context"
	"errors"

	"github.com/xvierd/discipline-tracker/internal/domain"
	"github.com/xvierd/discipline-tracker/internal/ports"
)

// ErrReadOnly is returned for writes through ReadOnly storage.
var ErrReadOnly = errors.New("storage is read-only")

// inspector is implemented by state stores that can load without repairing
// what they find.
type inspector interface {
	Inspect(ctx context.Context) (*domain.TimerState, error)
}

type readOnly struct {
	inner ports.Storage
}

var _ ports.Storage = readOnly{}

// ReadOnly wraps inner so that nothing written through it reaches the data
// directory. Loading a corrupt state file leaves the file in place.
func ReadOnly(inner ports.Storage) ports.Storage {
	return readOnly{inner: inner}
}

func (r readOnly) States() ports.StateStore { return readOnlyStates{r.inner.States()} }
func (r readOnly) History() ports.HistoryLog { return readOnlyHistory{r.inner.History()} }
func (r readOnly) Close() error { return r.inner.Close() }

type readOnlyStates struct {
	inner ports.StateStore
}

func (s readOnlyStates) Load(ctx context.Context) (*domain.TimerState, error) {
	if i, ok := s.inner.(inspector); ok {
		return i.Inspect(ctx)
	}
	return s.inner.Load(ctx)
}

func (s readOnlyStates) Save(ctx context.Context, state *domain.TimerState) error {
	return ErrReadOnly
}

type readOnlyHistory struct {
	inner ports.HistoryLog
}

func (h readOnlyHistory) Append(ctx context.Context, entry domain.HistoryEntry) error {
	return ErrReadOnly
}

func (h readOnlyHistory) Recent(ctx context.Context, limit int) ([]string, error) {
	return h.inner.Recent(ctx, limit)
}
