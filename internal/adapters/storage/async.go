package storage

import (
	"context"
	"errors"
	"sync"

	"github.com/xvierd/discipline-tracker/internal/domain"
	"github.com/xvierd/discipline-tracker/internal/ports"
)

// ErrWriterClosed is returned for writes queued after Close.
var ErrWriterClosed = errors.New("async writer closed")

type writeOp struct {
	state *domain.TimerState
	entry *domain.HistoryEntry
}

// AsyncWriter moves saves and appends onto a background goroutine. Writes
// are applied in the order they were queued. Errors go to the OnError
// callback since the caller has already moved on.
type AsyncWriter struct {
	inner   ports.Storage
	queue   chan writeOp
	onError func(error)

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

var _ ports.Storage = (*AsyncWriter)(nil)

// NewAsyncWriter wraps inner. onError may be nil.
func NewAsyncWriter(inner ports.Storage, onError func(error)) *AsyncWriter {
	if onError == nil {
		onError = func(error) {}
	}
	w := &AsyncWriter{
		inner:   inner,
		queue:   make(chan writeOp, 32),
		onError: onError,
	}
	w.wg.Add(1)
	go w.run()
	return w
}

func (w *AsyncWriter) run() {
	defer w.wg.Done()
	ctx := context.Background()
	for op := range w.queue {
		if op.entry != nil {
			if err := w.inner.History().Append(ctx, *op.entry); err != nil {
				w.onError(err)
			}
		}
		if op.state != nil {
			if err := w.inner.States().Save(ctx, op.state); err != nil {
				w.onError(err)
			}
		}
	}
}

func (w *AsyncWriter) enqueue(op writeOp) error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		return ErrWriterClosed
	}
	w.queue <- op
	return nil
}

func (w *AsyncWriter) States() ports.StateStore {
	return asyncStates{w}
}

func (w *AsyncWriter) History() ports.HistoryLog {
	return asyncHistory{w}
}

// Close drains the queue and closes the wrapped storage.
func (w *AsyncWriter) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.queue)
	w.mu.Unlock()

	w.wg.Wait()
	return w.inner.Close()
}

type asyncStates struct{ w *AsyncWriter }

// Load reads synchronously; it is only needed at startup.
func (a asyncStates) Load(ctx context.Context) (*domain.TimerState, error) {
	return a.w.inner.States().Load(ctx)
}

// Save queues a snapshot of state.
func (a asyncStates) Save(ctx context.Context, state *domain.TimerState) error {
	return a.w.enqueue(writeOp{state: state.Clone()})
}

type asyncHistory struct{ w *AsyncWriter }

func (a asyncHistory) Append(ctx context.Context, entry domain.HistoryEntry) error {
	return a.w.enqueue(writeOp{entry: &entry})
}

// Recent waits for nothing; entries still in the queue are not visible yet.
func (a asyncHistory) Recent(ctx context.Context, limit int) ([]string, error) {
	return a.w.inner.History().Recent(ctx, limit)
}
