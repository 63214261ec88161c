package domain

import (
	"fmt"
	"time"
)

// TimerState is the single mutable record behind the timer. It is owned by
// one goroutine; none of its methods are safe for concurrent use.
type TimerState struct {
	IsRunning     bool         `json:"is_running"`
	Mode          TimerMode    `json:"mode"`
	Remaining     int          `json:"remaining"`
	WorkSessions  int          `json:"work_sessions"`
	Contributions map[Date]int `json:"contributions"`
}

// Completion describes a finished phase and what the timer moved to.
type Completion struct {
	Entry        HistoryEntry
	Ended        TimerMode
	Next         TimerMode
	WorkSessions int
	Skipped      bool
}

// WasWork reports whether the completed phase was a work session.
func (c Completion) WasWork() bool {
	return c.Ended == ModeWork
}

// NewTimerState returns a paused work phase with no history.
func NewTimerState() *TimerState {
	return &TimerState{
		Mode:          ModeWork,
		Remaining:     ModeWork.Seconds(),
		Contributions: make(map[Date]int),
	}
}

// Start resumes the countdown.
func (s *TimerState) Start() {
	s.IsRunning = true
}

// Pause stops the countdown without touching the remaining time.
func (s *TimerState) Pause() {
	s.IsRunning = false
}

// Reset pauses and rewinds to the full length of mode.
func (s *TimerState) Reset(mode TimerMode) {
	if !mode.Valid() {
		mode = ModeWork
	}
	s.IsRunning = false
	s.Mode = mode
	s.Remaining = mode.Seconds()
}

// Tick advances the countdown by one second. It returns the completion when
// the phase ran out and nil otherwise. Ticks while paused do nothing.
func (s *TimerState) Tick(now time.Time) *Completion {
	if !s.IsRunning {
		return nil
	}
	s.Remaining--
	if s.Remaining > 0 {
		return nil
	}
	s.Remaining = 0
	s.IsRunning = false
	c := s.Complete(now)
	return &c
}

// Skip completes the current phase immediately. It counts exactly like a
// phase that ran out.
func (s *TimerState) Skip(now time.Time) Completion {
	c := s.Complete(now)
	c.Skipped = true
	return c
}

// Complete ends the current phase at now and moves to the next one.
func (s *TimerState) Complete(now time.Time) Completion {
	ended := s.Mode
	next := ModeWork

	if ended == ModeWork {
		s.WorkSessions++
		if s.Contributions == nil {
			s.Contributions = make(map[Date]int)
		}
		s.Contributions[DateOf(now)]++

		next = ModeShortBreak
		if s.WorkSessions%SessionsBeforeLongBreak == 0 {
			next = ModeLongBreak
		}
	}

	s.Reset(next)

	return Completion{
		Entry:        HistoryEntry{At: now, Mode: ended},
		Ended:        ended,
		Next:         next,
		WorkSessions: s.WorkSessions,
	}
}

// RemainingDuration returns the remaining time as a duration.
func (s *TimerState) RemainingDuration() time.Duration {
	return time.Duration(s.Remaining) * time.Second
}

// Progress returns how much of the current phase has elapsed, from 0 to 1.
func (s *TimerState) Progress() float64 {
	total := s.Mode.Seconds()
	if total == 0 {
		return 0
	}
	return float64(total-s.Remaining) / float64(total)
}

// ContributionsOn returns the number of work sessions completed on d.
func (s *TimerState) ContributionsOn(d Date) int {
	return s.Contributions[d]
}

// TotalContributions returns the number of work sessions across all days.
func (s *TimerState) TotalContributions() int {
	total := 0
	for _, n := range s.Contributions {
		total += n
	}
	return total
}

// Validate checks the invariants of a state read from storage.
func (s *TimerState) Validate() error {
	if !s.Mode.Valid() {
		return fmt.Errorf("%w: unknown mode %d", ErrInvalidState, int(s.Mode))
	}
	if s.Remaining < 0 || s.Remaining > s.Mode.Seconds() {
		return fmt.Errorf("%w: remaining %d outside [0, %d]", ErrInvalidState, s.Remaining, s.Mode.Seconds())
	}
	if s.Remaining == 0 && s.IsRunning {
		return fmt.Errorf("%w: running with no time left", ErrInvalidState)
	}
	if s.WorkSessions < 0 {
		return fmt.Errorf("%w: negative work session count", ErrInvalidState)
	}
	for day, n := range s.Contributions {
		if n < 0 {
			return fmt.Errorf("%w: negative contribution on %s", ErrInvalidState, day)
		}
	}
	return nil
}

// Clone returns a deep copy of s.
func (s *TimerState) Clone() *TimerState {
	c := *s
	c.Contributions = make(map[Date]int, len(s.Contributions))
	for day, n := range s.Contributions {
		c.Contributions[day] = n
	}
	return &c
}
