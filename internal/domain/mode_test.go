package domain

import (
	"errors"
	"testing"
	"time"
)

func TestTimerMode_Durations(t *testing.T) {
	tests := []struct {
		mode    TimerMode
		seconds int
		label   string
		stored  string
	}{
		{ModeWork, 1500, "Work", "Work"},
		{ModeShortBreak, 300, "Short Break", "Short"},
		{ModeLongBreak, 900, "Long Break", "Long"},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			if got := tt.mode.Seconds(); got != tt.seconds {
				t.Errorf("Seconds() = %d, want %d", got, tt.seconds)
			}
			if got := tt.mode.Duration(); got != time.Duration(tt.seconds)*time.Second {
				t.Errorf("Duration() = %v", got)
			}
			if got := tt.mode.Label(); got != tt.label {
				t.Errorf("Label() = %q, want %q", got, tt.label)
			}
			if got := tt.mode.String(); got != tt.stored {
				t.Errorf("String() = %q, want %q", got, tt.stored)
			}
		})
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{1500, "25:00"},
		{330, "05:30"},
		{90, "01:30"},
		{45, "00:45"},
		{0, "00:00"},
		{-4, "00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatClock(tt.seconds); got != tt.want {
				t.Errorf("FormatClock(%d) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    TimerMode
		wantErr bool
	}{
		{"Work", ModeWork, false},
		{"Short", ModeShortBreak, false},
		{"Long", ModeLongBreak, false},
		{"Short Break", ModeShortBreak, false},
		{"long_break", ModeLongBreak, false},
		{" work ", ModeWork, false},
		{"nap", ModeWork, true},
		{"", ModeWork, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidMode) {
				t.Errorf("error should wrap ErrInvalidMode, got %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestTimerMode_MarshalText(t *testing.T) {
	if _, err := TimerMode(9).MarshalText(); err == nil {
		t.Error("MarshalText() should reject an unknown mode")
	}

	var m TimerMode
	if err := m.UnmarshalText([]byte("Long")); err != nil {
		t.Fatalf("UnmarshalText() error = %v", err)
	}
	if m != ModeLongBreak {
		t.Errorf("UnmarshalText() = %v, want Long", m)
	}
}

func TestDate(t *testing.T) {
	d, err := ParseDate("2024-02-28")
	if err != nil {
		t.Fatalf("ParseDate() error = %v", err)
	}
	if got := d.AddDays(1).String(); got != "2024-02-29" {
		t.Errorf("AddDays(1) = %s, want 2024-02-29", got)
	}
	if got := d.AddDays(-59).String(); got != "2023-12-31" {
		t.Errorf("AddDays(-59) = %s, want 2023-12-31", got)
	}
	if d.Weekday() != time.Wednesday {
		t.Errorf("Weekday() = %v, want Wednesday", d.Weekday())
	}
	if _, err := ParseDate("28/02/2024"); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("ParseDate() error = %v, want ErrInvalidDate", err)
	}
}

func TestHistoryEntry(t *testing.T) {
	at := time.Date(2026, 10, 14, 8, 5, 9, 0, time.Local)
	entry := HistoryEntry{At: at, Mode: ModeShortBreak}

	line := entry.String()
	if line != "2026-10-14 08:05:09 — Short Break" {
		t.Errorf("String() = %q", line)
	}

	parsed, err := ParseHistoryLine(line, time.Local)
	if err != nil {
		t.Fatalf("ParseHistoryLine() error = %v", err)
	}
	if !parsed.At.Equal(at) || parsed.Mode != ModeShortBreak {
		t.Errorf("ParseHistoryLine() = %+v, want %+v", parsed, entry)
	}

	for _, bad := range []string{"", "A", "2026-10-14 — Work", "2026-10-14 08:05:09 — Nap"} {
		if _, err := ParseHistoryLine(bad, time.Local); !errors.Is(err, ErrInvalidEntry) {
			t.Errorf("ParseHistoryLine(%q) error = %v, want ErrInvalidEntry", bad, err)
		}
	}
}
