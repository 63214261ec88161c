package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/xvierd/discipline-tracker/internal/domain"
)

func TestOpen(t *testing.T) {
	tests := []struct {
		backend  string
		wantFile string
		wantErr  bool
	}{
		{"", "", false},
		{BackendFile, "", false},
		{BackendSQLite, DatabaseName, false},
		{"postgres", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "data")
			s, err := Open(tt.backend, dir)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Open() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			defer func() { _ = s.Close() }()

			if _, err := os.Stat(dir); err != nil {
				t.Errorf("data directory not created: %v", err)
			}
			if tt.wantFile != "" {
				if _, err := os.Stat(filepath.Join(dir, tt.wantFile)); err != nil {
					t.Errorf("%s not created: %v", tt.wantFile, err)
				}
			}
		})
	}
}

func TestFiles_Layout(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := NewFiles(dir)

	if err := s.States().Save(ctx, domain.NewTimerState()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := s.History().Append(ctx, domain.HistoryEntry{At: time.Now(), Mode: domain.ModeWork}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	for _, name := range []string{StateFileName, HistoryFileName} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s not written: %v", name, err)
		}
	}
}

func TestAsyncWriter_DrainsOnClose(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	w := NewAsyncWriter(NewFiles(dir), nil)

	state := sampleState()
	start := time.Date(2026, 10, 14, 9, 0, 0, 0, time.Local)
	for i := 0; i < 10; i++ {
		entry := domain.HistoryEntry{At: start.Add(time.Duration(i) * time.Minute), Mode: domain.ModeWork}
		if err := w.History().Append(ctx, entry); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}
	if err := w.States().Save(ctx, state); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// Mutating after queueing must not change what gets written.
	want := state.Clone()
	state.Reset(domain.ModeLongBreak)

	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	files := NewFiles(dir)
	got, err := files.States().Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
	lines, _ := files.History().Recent(ctx, 100)
	if len(lines) != 10 {
		t.Errorf("len(Recent()) = %d, want 10", len(lines))
	}

	if err := w.States().Save(ctx, state); !errors.Is(err, ErrWriterClosed) {
		t.Errorf("Save() after Close error = %v, want ErrWriterClosed", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestAsyncWriter_ReportsErrors(t *testing.T) {
	dir := t.TempDir()
	// A directory where the state file should be makes the rename fail.
	if err := os.Mkdir(filepath.Join(dir, StateFileName), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, StateFileName, "keep"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	var (
		mu   sync.Mutex
		errs []error
	)
	w := NewAsyncWriter(NewFiles(dir), func(err error) {
		mu.Lock()
		defer mu.Unlock()
		errs = append(errs, err)
	})

	if err := w.States().Save(context.Background(), domain.NewTimerState()); err != nil {
		t.Fatalf("Save() should only queue, got %v", err)
	}
	_ = w.Close()

	mu.Lock()
	defer mu.Unlock()
	if len(errs) != 1 {
		t.Errorf("reported %d errors, want 1", len(errs))
	}
}
