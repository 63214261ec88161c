package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/xvierd/discipline-tracker/internal/domain"
)

var historyStart = time.Date(2026, 10, 14, 9, 0, 0, 0, time.Local)

func appendN(t *testing.T, h *HistoryFile, n int) []string {
	t.Helper()
	var lines []string
	for i := 0; i < n; i++ {
		entry := domain.HistoryEntry{
			At:   historyStart.Add(time.Duration(i) * time.Minute),
			Mode: domain.AllModes()[i%3],
		}
		if err := h.Append(context.Background(), entry); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
		lines = append(lines, entry.String())
	}
	return lines
}

func reversed(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[len(lines)-1-i] = l
	}
	return out
}

func TestHistoryFile_Recent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), HistoryFileName)
	if err := os.WriteFile(path, []byte("A\nB\nC\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	h := NewHistoryFile(path)

	tests := []struct {
		limit int
		want  []string
	}{
		{0, []string{}},
		{1, []string{"C"}},
		{2, []string{"C", "B"}},
		{3, []string{"C", "B", "A"}},
		{50, []string{"C", "B", "A"}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.limit), func(t *testing.T) {
			got, err := h.Recent(ctx, tt.limit)
			if err != nil {
				t.Fatalf("Recent() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Recent(%d) = %q, want %q", tt.limit, got, tt.want)
			}
		})
	}
}

func TestHistoryFile_RecentWithoutTrailingNewline(t *testing.T) {
	path := filepath.Join(t.TempDir(), HistoryFileName)
	if err := os.WriteFile(path, []byte("A\r\nB\r\nC"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := NewHistoryFile(path).Recent(context.Background(), 2)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if want := []string{"C", "B"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Recent() = %q, want %q", got, want)
	}
}

func TestHistoryFile_RecentBlankLines(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{"empty file", "", []string{}},
		{"single newline", "\n", []string{""}},
		{"blank line kept", "A\n\nB\n", []string{"B", "", "A"}},
		{"blank last line", "A\n\n", []string{"", "A"}},
		{"blank crlf line", "A\r\n\r\n", []string{"", "A"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), HistoryFileName)
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			got, err := NewHistoryFile(path).Recent(context.Background(), 50)
			if err != nil {
				t.Fatalf("Recent() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Recent() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHistoryFile_Missing(t *testing.T) {
	got, err := NewHistoryFile(filepath.Join(t.TempDir(), HistoryFileName)).Recent(context.Background(), 50)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Recent() = %q, want empty", got)
	}
}

func TestHistoryFile_AppendFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", HistoryFileName)
	h := NewHistoryFile(path)
	appendN(t, h, 2)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	want := "2026-10-14 09:00:00 — Work\n2026-10-14 09:01:00 — Short Break\n"
	if string(data) != want {
		t.Errorf("history file = %q, want %q", data, want)
	}
}

func TestHistoryFile_TailAcrossChunks(t *testing.T) {
	old := tailChunk
	tailChunk = 16
	t.Cleanup(func() { tailChunk = old })

	h := NewHistoryFile(filepath.Join(t.TempDir(), HistoryFileName))
	lines := appendN(t, h, 40)

	for _, limit := range []int{1, 5, 39, 40, 60} {
		got, err := h.Recent(context.Background(), limit)
		if err != nil {
			t.Fatalf("Recent(%d) error = %v", limit, err)
		}
		want := reversed(lines)
		if limit < len(want) {
			want = want[:limit]
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Recent(%d) = %q, want %q", limit, got, want)
		}
	}
}
