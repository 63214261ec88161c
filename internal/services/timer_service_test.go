package services

import (
	"bytes"
	"context"
	"errors"
	"log"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/xvierd/discipline-tracker/internal/adapters/storage"
	"github.com/xvierd/discipline-tracker/internal/domain"
	"github.com/xvierd/discipline-tracker/internal/ports"
)

var testNow = time.Date(2026, 10, 14, 9, 0, 0, 0, time.Local)

func setupTestStorage(t *testing.T) ports.Storage {
	t.Helper()
	store, err := storage.NewMemory()
	if err != nil {
		t.Fatalf("Failed to create test storage: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

type fakeNotifier struct {
	got []domain.Completion
	err error
}

func (f *fakeNotifier) NotifyCompletion(c domain.Completion) error {
	f.got = append(f.got, c)
	return f.err
}

type fakeSound struct {
	plays int
}

func (f *fakeSound) Play() { f.plays++ }

// failingStorage fails every write.
type failingStorage struct{}

func (failingStorage) States() ports.StateStore { return failingStates{} }

func (failingStorage) History() ports.HistoryLog { return failingHistory{} }

func (failingStorage) Close() error { return nil }

type failingStates struct{}

func (failingStates) Load(context.Context) (*domain.TimerState, error) {
	return domain.NewTimerState(), errors.New("corrupt")
}

func (failingStates) Save(context.Context, *domain.TimerState) error { return errors.New("disk full") }

type failingHistory struct{}

func (failingHistory) Append(context.Context, domain.HistoryEntry) error {
	return errors.New("read-only")
}

func (failingHistory) Recent(context.Context, int) ([]string, error) {
	return nil, errors.New("read-only")
}

func newService(t *testing.T, store ports.Storage, opts ...Option) (*TimerService, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	opts = append([]Option{
		WithClock(func() time.Time { return testNow }),
		WithLogger(log.New(&logs, "", 0)),
	}, opts...)
	return NewTimerService(store, opts...), &logs
}

func TestTimerService_TickCompletesAndPersists(t *testing.T) {
	ctx := context.Background()
	store := setupTestStorage(t)
	notifier := &fakeNotifier{}
	sound := &fakeSound{}
	svc, _ := newService(t, store, WithNotifier(notifier), WithSound(sound))

	var heard []domain.Completion
	svc.OnComplete(func(c domain.Completion) { heard = append(heard, c) })

	svc.Start()
	var completion *domain.Completion
	for i := 0; i < domain.ModeWork.Seconds(); i++ {
		c, err := svc.Tick(ctx)
		if err != nil {
			t.Fatalf("Tick() error = %v", err)
		}
		if c != nil {
			completion = c
		}
	}

	if completion == nil {
		t.Fatal("work phase did not complete after 1500 ticks")
	}
	if svc.Mode() != domain.ModeShortBreak || svc.IsRunning() || svc.Remaining() != 300 {
		t.Errorf("state after completion = %v running=%v remaining=%d", svc.Mode(), svc.IsRunning(), svc.Remaining())
	}

	stored, err := store.States().Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(stored, svc.State()) {
		t.Errorf("stored = %+v, want %+v", stored, svc.State())
	}

	lines, _ := svc.RecentHistory(ctx, 50)
	if want := []string{"2026-10-14 09:00:00 — Work"}; !reflect.DeepEqual(lines, want) {
		t.Errorf("history = %q, want %q", lines, want)
	}

	if len(notifier.got) != 1 || sound.plays != 1 || len(heard) != 1 {
		t.Errorf("notifications=%d plays=%d listeners=%d, want 1 each", len(notifier.got), sound.plays, len(heard))
	}
}

func TestTimerService_TicksAreNotPersisted(t *testing.T) {
	ctx := context.Background()
	store := setupTestStorage(t)
	svc, _ := newService(t, store)

	svc.Start()
	for i := 0; i < 10; i++ {
		if _, err := svc.Tick(ctx); err != nil {
			t.Fatalf("Tick() error = %v", err)
		}
	}

	stored, _ := store.States().Load(ctx)
	if stored.Remaining != 1500 {
		t.Errorf("stored remaining = %d, plain ticks should not be saved", stored.Remaining)
	}
}

func TestTimerService_BreakCompletionHasNoSound(t *testing.T) {
	ctx := context.Background()
	sound := &fakeSound{}
	notifier := &fakeNotifier{}
	svc, _ := newService(t, setupTestStorage(t), WithSound(sound), WithNotifier(notifier))

	svc.Reset(domain.ModeShortBreak)
	c, err := svc.Skip(ctx)
	if err != nil {
		t.Fatalf("Skip() error = %v", err)
	}

	if !c.Skipped || c.Ended != domain.ModeShortBreak || c.Next != domain.ModeWork {
		t.Errorf("completion = %+v", c)
	}
	if sound.plays != 0 {
		t.Errorf("break completion played %d sounds, want 0", sound.plays)
	}
	if len(notifier.got) != 1 {
		t.Errorf("break completion sent %d notifications, want 1", len(notifier.got))
	}
}

func TestTimerService_Apply(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		cmds     []ports.TimerCommand
		mode     domain.TimerMode
		running  bool
		sessions int
	}{
		{"start", []ports.TimerCommand{ports.CmdStart}, domain.ModeWork, true, 0},
		{"start then pause", []ports.TimerCommand{ports.CmdStart, ports.CmdPause}, domain.ModeWork, false, 0},
		{"toggle twice", []ports.TimerCommand{ports.CmdToggle, ports.CmdToggle}, domain.ModeWork, false, 0},
		{"short preset", []ports.TimerCommand{ports.CmdStart, ports.CmdPresetShortBreak}, domain.ModeShortBreak, false, 0},
		{"long preset", []ports.TimerCommand{ports.CmdPresetLongBreak}, domain.ModeLongBreak, false, 0},
		{"reset returns to work", []ports.TimerCommand{ports.CmdPresetLongBreak, ports.CmdReset}, domain.ModeWork, false, 0},
		{"skip work", []ports.TimerCommand{ports.CmdSkip}, domain.ModeShortBreak, false, 1},
		{"skip cycle", []ports.TimerCommand{
			ports.CmdSkip, ports.CmdSkip, ports.CmdSkip, ports.CmdSkip,
			ports.CmdSkip, ports.CmdSkip, ports.CmdSkip,
		}, domain.ModeLongBreak, false, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newService(t, setupTestStorage(t))
			for _, cmd := range tt.cmds {
				if _, err := svc.Apply(ctx, cmd); err != nil {
					t.Fatalf("Apply(%v) error = %v", cmd, err)
				}
			}
			state := svc.State()
			if state.Mode != tt.mode || state.IsRunning != tt.running || state.WorkSessions != tt.sessions {
				t.Errorf("state = %v running=%v sessions=%d, want %v running=%v sessions=%d",
					state.Mode, state.IsRunning, state.WorkSessions, tt.mode, tt.running, tt.sessions)
			}
			if state.Remaining != state.Mode.Seconds() && !state.IsRunning {
				t.Errorf("remaining = %d, want full %v", state.Remaining, state.Mode)
			}
		})
	}

	svc, _ := newService(t, setupTestStorage(t))
	if _, err := svc.Apply(ctx, ports.TimerCommand(99)); err == nil {
		t.Error("Apply() should reject an unknown command")
	}
}

func TestTimerService_Load(t *testing.T) {
	ctx := context.Background()
	store := setupTestStorage(t)

	saved := domain.NewTimerState()
	saved.Complete(testNow)
	if err := store.States().Save(ctx, saved); err != nil {
		t.Fatal(err)
	}

	svc, _ := newService(t, store)
	if err := svc.Load(ctx); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(svc.State(), saved) {
		t.Errorf("State() = %+v, want %+v", svc.State(), saved)
	}
}

func TestTimerService_WriteFailuresAreReported(t *testing.T) {
	ctx := context.Background()
	svc, logs := newService(t, failingStorage{})

	if err := svc.Load(ctx); err == nil {
		t.Error("Load() should report the discarded state")
	}
	if svc.Mode() != domain.ModeWork || svc.Remaining() != 1500 {
		t.Error("Load() failure should leave a fresh state")
	}

	c, err := svc.Skip(ctx)
	if err == nil {
		t.Fatal("Skip() should return the write failures")
	}
	if !strings.Contains(err.Error(), "disk full") || !strings.Contains(err.Error(), "read-only") {
		t.Errorf("error = %v, want both failures", err)
	}
	if c.Ended != domain.ModeWork || svc.State().WorkSessions != 1 {
		t.Error("the completion itself should still happen")
	}
	if !strings.Contains(logs.String(), "not fully recorded") {
		t.Errorf("logs = %q, want the failure logged", logs.String())
	}

	if _, err := svc.RecentHistory(ctx, 5); err == nil {
		t.Error("RecentHistory() should return the read failure")
	}
	if err := svc.Persist(ctx); err == nil {
		t.Error("Persist() should return the save failure")
	}
}

func TestTimerService_NotificationFailureIsOnlyLogged(t *testing.T) {
	svc, logs := newService(t, setupTestStorage(t), WithNotifier(&fakeNotifier{err: errors.New("no dbus")}))

	if _, err := svc.Skip(context.Background()); err != nil {
		t.Fatalf("Skip() error = %v", err)
	}
	if !strings.Contains(logs.String(), "no dbus") {
		t.Errorf("logs = %q, want the notification failure", logs.String())
	}
}

func TestTimerService_StateIsACopy(t *testing.T) {
	svc, _ := newService(t, setupTestStorage(t))
	s := svc.State()
	s.Start()
	s.Contributions[domain.DateOf(testNow)] = 3

	if svc.IsRunning() || svc.State().TotalContributions() != 0 {
		t.Error("changing the snapshot should not change the service")
	}
}
