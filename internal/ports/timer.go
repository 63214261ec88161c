package ports

import "github.com/xvierd/discipline-tracker/internal/domain"

// TimerCommand represents a user action on the timer.
type TimerCommand int

const (
	CmdStart TimerCommand = iota
	CmdPause
	CmdToggle
	CmdReset
	CmdSkip
	CmdPresetWork
	CmdPresetShortBreak
	CmdPresetLongBreak
)

func (c TimerCommand) String() string {
	switch c {
	case CmdStart:
		return "start"
	case CmdPause:
		return "pause"
	case CmdToggle:
		return "toggle"
	case CmdReset:
		return "reset"
	case CmdSkip:
		return "skip"
	case CmdPresetWork:
		return "preset-work"
	case CmdPresetShortBreak:
		return "preset-short"
	case CmdPresetLongBreak:
		return "preset-long"
	default:
		return "unknown"
	}
}

// Notifier announces a finished phase to the desktop.
type Notifier interface {
	NotifyCompletion(c domain.Completion) error
}

// SoundPlayer plays the completion sound. Play must not block; each call
// starts its own playback.
type SoundPlayer interface {
	Play()
}
