// Package services holds the use cases that sit between the UI shells and
// the adapters.
package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/xvierd/discipline-tracker/internal/domain"
	"github.com/xvierd/discipline-tracker/internal/ports"
)

// TimerService owns the timer state. It is driven from a single goroutine
// (the UI event loop) and applies every command serially; it does no
// locking of its own.
type TimerService struct {
	storage   ports.Storage
	state     *domain.TimerState
	notifier  ports.Notifier
	sound     ports.SoundPlayer
	logger    *log.Logger
	now       func() time.Time
	listeners []func(domain.Completion)
}

// Option configures a TimerService.
type Option func(*TimerService)

// WithNotifier announces completions on the desktop.
func WithNotifier(n ports.Notifier) Option {
	return func(s *TimerService) { s.notifier = n }
}

// WithSound plays a sound when a work session completes.
func WithSound(p ports.SoundPlayer) Option {
	return func(s *TimerService) { s.sound = p }
}

// WithLogger sets where persistence and notification failures are logged.
func WithLogger(l *log.Logger) Option {
	return func(s *TimerService) { s.logger = l }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *TimerService) { s.now = now }
}

// NewTimerService creates a service with a fresh state. Call Load to pick up
// the persisted one.
func NewTimerService(storage ports.Storage, opts ...Option) *TimerService {
	s := &TimerService{
		storage: storage,
		state:   domain.NewTimerState(),
		logger:  log.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the in-memory state with the stored one. The returned error
// only explains why a stored state was discarded; the service is usable
// either way.
func (s *TimerService) Load(ctx context.Context) error {
	state, err := s.storage.States().Load(ctx)
	if state == nil {
		state = domain.NewTimerState()
	}
	s.state = state
	if err != nil {
		s.logger.Printf("failed to load state, starting fresh: %v", err)
		return fmt.Errorf("failed to load state: %w", err)
	}
	return nil
}

// OnComplete registers fn to run after every completion, once the result has
// been handed to storage.
func (s *TimerService) OnComplete(fn func(domain.Completion)) {
	s.listeners = append(s.listeners, fn)
}

// State returns a copy of the current state.
func (s *TimerService) State() *domain.TimerState {
	return s.state.Clone()
}

// Mode returns the current phase.
func (s *TimerService) Mode() domain.TimerMode {
	return s.state.Mode
}

// Remaining returns the seconds left in the current phase.
func (s *TimerService) Remaining() int {
	return s.state.Remaining
}

// IsRunning reports whether the countdown is advancing.
func (s *TimerService) IsRunning() bool {
	return s.state.IsRunning
}

// Start resumes the countdown.
func (s *TimerService) Start() {
	s.state.Start()
}

// Pause stops the countdown.
func (s *TimerService) Pause() {
	s.state.Pause()
}

// Toggle starts a paused timer and pauses a running one.
func (s *TimerService) Toggle() {
	if s.state.IsRunning {
		s.state.Pause()
		return
	}
	s.state.Start()
}

// Reset rewinds to the full length of mode without recording anything.
func (s *TimerService) Reset(mode domain.TimerMode) {
	s.state.Reset(mode)
}

// Tick advances the countdown by one second. When the phase runs out the
// completion is recorded and returned. A non-nil error means the completion
// happened but could not be fully persisted.
func (s *TimerService) Tick(ctx context.Context) (*domain.Completion, error) {
	c := s.state.Tick(s.now())
	if c == nil {
		return nil, nil
	}
	return c, s.finish(ctx, *c)
}

// Skip ends the current phase immediately and records it as completed.
func (s *TimerService) Skip(ctx context.Context) (domain.Completion, error) {
	c := s.state.Skip(s.now())
	return c, s.finish(ctx, c)
}

// Apply runs a UI command. Only CmdSkip produces a completion.
func (s *TimerService) Apply(ctx context.Context, cmd ports.TimerCommand) (*domain.Completion, error) {
	switch cmd {
	case ports.CmdStart:
		s.Start()
	case ports.CmdPause:
		s.Pause()
	case ports.CmdToggle:
		s.Toggle()
	case ports.CmdReset, ports.CmdPresetWork:
		s.Reset(domain.ModeWork)
	case ports.CmdPresetShortBreak:
		s.Reset(domain.ModeShortBreak)
	case ports.CmdPresetLongBreak:
		s.Reset(domain.ModeLongBreak)
	case ports.CmdSkip:
		c, err := s.Skip(ctx)
		return &c, err
	default:
		return nil, fmt.Errorf("unknown timer command %d", int(cmd))
	}
	return nil, nil
}

// RecentHistory returns up to limit history lines, newest first.
func (s *TimerService) RecentHistory(ctx context.Context, limit int) ([]string, error) {
	lines, err := s.storage.History().Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	return lines, nil
}

// Persist saves the current state outside of a completion, for commands
// that change it offline.
func (s *TimerService) Persist(ctx context.Context) error {
	if err := s.storage.States().Save(ctx, s.state); err != nil {
		s.logger.Printf("failed to save state: %v", err)
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}

func (s *TimerService) finish(ctx context.Context, c domain.Completion) error {
	var errs []error
	if err := s.storage.States().Save(ctx, s.state); err != nil {
		errs = append(errs, fmt.Errorf("failed to save state: %w", err))
	}
	if err := s.storage.History().Append(ctx, c.Entry); err != nil {
		errs = append(errs, fmt.Errorf("failed to append history: %w", err))
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyCompletion(c); err != nil {
			s.logger.Printf("failed to send notification: %v", err)
		}
	}
	if s.sound != nil && c.WasWork() {
		s.sound.Play()
	}
	for _, fn := range s.listeners {
		fn(c)
	}

	err := errors.Join(errs...)
	if err != nil {
		s.logger.Printf("%s completed but was not fully recorded: %v", c.Ended.Label(), err)
	}
	return err
}
