package storage

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/xvierd/discipline-tracker/internal/domain"
)

func sampleState() *domain.TimerState {
	s := domain.NewTimerState()
	now := time.Date(2026, 10, 14, 10, 0, 0, 0, time.Local)
	s.Complete(now)
	s.Reset(domain.ModeWork)
	s.Complete(now.AddDate(0, 0, -3))
	s.Start()
	s.Remaining = 120
	return s
}

func TestStateFile_RoundTrip(t *testing.T) {
	ctx := context.Background()
	f := NewStateFile(filepath.Join(t.TempDir(), StateFileName))

	want := sampleState()
	if err := f.Save(ctx, want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := f.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
}

func TestStateFile_Format(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), StateFileName)
	f := NewStateFile(path)

	s := domain.NewTimerState()
	s.Contributions[domain.Date{Year: 2026, Month: 3, Day: 7}] = 2
	s.Reset(domain.ModeShortBreak)
	if err := f.Save(ctx, s); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	for _, want := range []string{
		`"is_running": false`,
		`"mode": "Short"`,
		`"remaining": 300`,
		`"work_sessions": 0`,
		`"2026-03-07": 2`,
	} {
		if !strings.Contains(string(data), want) {
			t.Errorf("state file missing %s:\n%s", want, data)
		}
	}
}

func TestStateFile_Load(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{"corrupt json", "{not json", true},
		{"unknown mode", `{"mode":"Nap","remaining":10}`, true},
		{"remaining out of range", `{"mode":"Short","remaining":5000}`, true},
		{"bad date key", `{"mode":"Work","remaining":10,"contributions":{"yesterday":1}}`, true},
		{"missing contributions", `{"mode":"Long","remaining":900,"work_sessions":4}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), StateFileName)
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}

			got, err := NewStateFile(path).Load(context.Background())
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got == nil {
				t.Fatal("Load() must always return a state")
			}
			if got.Contributions == nil {
				t.Error("Load() should never return nil contributions")
			}
			if tt.wantErr {
				if !reflect.DeepEqual(got, domain.NewTimerState()) {
					t.Errorf("Load() = %+v, want default state", got)
				}
				if _, err := os.Stat(path + ".corrupt"); err != nil {
					t.Errorf("corrupt file should be backed up: %v", err)
				}
			}
		})
	}
}

func TestStateFile_LoadMissing(t *testing.T) {
	f := NewStateFile(filepath.Join(t.TempDir(), "nope", StateFileName))

	got, err := f.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(got, domain.NewTimerState()) {
		t.Errorf("Load() = %+v, want default state", got)
	}
}

func TestStateFile_SaveCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", StateFileName)
	if err := NewStateFile(path).Save(context.Background(), domain.NewTimerState()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("state file not created: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file should not be left behind")
	}
}
