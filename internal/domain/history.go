package domain

import (
	"fmt"
	"strings"
	"time"
)

// HistoryTimeLayout is the timestamp format of a history line.
const HistoryTimeLayout = "2006-01-02 15:04:05"

const historySeparator = " — "

// HistoryEntry records one completed phase.
type HistoryEntry struct {
	At   time.Time
	Mode TimerMode
}

// String formats the entry as a single history log line.
func (e HistoryEntry) String() string {
	return e.At.Format(HistoryTimeLayout) + historySeparator + e.Mode.Label()
}

// ParseHistoryLine parses a line produced by HistoryEntry.String. The
// timestamp is interpreted in loc.
func ParseHistoryLine(line string, loc *time.Location) (HistoryEntry, error) {
	stamp, label, ok := strings.Cut(strings.TrimRight(line, "\r\n"), historySeparator)
	if !ok {
		return HistoryEntry{}, fmt.Errorf("%w: %q", ErrInvalidEntry, line)
	}
	at, err := time.ParseInLocation(HistoryTimeLayout, stamp, loc)
	if err != nil {
		return HistoryEntry{}, fmt.Errorf("%w: %q", ErrInvalidEntry, line)
	}
	mode, err := ParseMode(label)
	if err != nil {
		return HistoryEntry{}, fmt.Errorf("%w: %q", ErrInvalidEntry, line)
	}
	return HistoryEntry{At: at, Mode: mode}, nil
}
