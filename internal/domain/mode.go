// Package domain contains the timer state machine and the values it works with.
// Nothing in here performs I/O; callers supply the wall-clock time.
package domain

import (
	"fmt"
	"strings"
	"time"
)

// TimerMode is one of the three phases the timer cycles through.
type TimerMode int

const (
	ModeWork TimerMode = iota
	ModeShortBreak
	ModeLongBreak
)

// SessionsBeforeLongBreak is how many work sessions separate two long breaks.
const SessionsBeforeLongBreak = 4

var modeSeconds = [...]int{
	ModeWork:       1500,
	ModeShortBreak: 300,
	ModeLongBreak:  900,
}

// AllModes lists the modes in preset order.
func AllModes() []TimerMode {
	return []TimerMode{ModeWork, ModeShortBreak, ModeLongBreak}
}

// Valid reports whether m is one of the known modes.
func (m TimerMode) Valid() bool {
	return m >= ModeWork && m <= ModeLongBreak
}

// Seconds returns the full length of the phase in seconds.
func (m TimerMode) Seconds() int {
	if !m.Valid() {
		return 0
	}
	return modeSeconds[m]
}

// FormatClock formats a number of seconds as MM:SS. Negative values show as
// 00:00.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// Duration returns the full length of the phase.
func (m TimerMode) Duration() time.Duration {
	return time.Duration(m.Seconds()) * time.Second
}

// IsBreak reports whether m is a short or long break.
func (m TimerMode) IsBreak() bool {
	return m == ModeShortBreak || m == ModeLongBreak
}

// Label returns the human readable name used in the history log and the UI.
func (m TimerMode) Label() string {
	switch m {
	case ModeWork:
		return "Work"
	case ModeShortBreak:
		return "Short Break"
	case ModeLongBreak:
		return "Long Break"
	default:
		return "Unknown"
	}
}

// String returns the compact name stored in the state file.
func (m TimerMode) String() string {
	switch m {
	case ModeWork:
		return "Work"
	case ModeShortBreak:
		return "Short"
	case ModeLongBreak:
		return "Long"
	default:
		return fmt.Sprintf("TimerMode(%d)", int(m))
	}
}

// ParseMode accepts the stored name, the display label, or a lowercase
// shorthand such as "short" or "long_break".
func ParseMode(s string) (TimerMode, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer(" ", "", "_", "", "-", "").Replace(key)
	switch key {
	case "work", "w":
		return ModeWork, nil
	case "short", "shortbreak", "s":
		return ModeShortBreak, nil
	case "long", "longbreak", "l":
		return ModeLongBreak, nil
	}
	return ModeWork, fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

// MarshalText implements encoding.TextMarshaler.
func (m TimerMode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMode, int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *TimerMode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
