package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xvierd/discipline-tracker/internal/domain"
	"github.com/xvierd/discipline-tracker/internal/ports"
)

// tailChunk is how many bytes Recent reads per step from the end of the log.
var tailChunk int64 = 4096

// HistoryFile is a plain text log with one completed phase per line.
type HistoryFile struct {
	path string
}

var _ ports.HistoryLog = (*HistoryFile)(nil)

// NewHistoryFile returns a log backed by the file at path.
func NewHistoryFile(path string) *HistoryFile {
	return &HistoryFile{path: path}
}

// Path returns the location of the log.
func (h *HistoryFile) Path() string {
	return h.path
}

// Append writes entry as a new line, creating the file when needed.
func (h *HistoryFile) Append(ctx context.Context, entry domain.HistoryEntry) error {
	if err := os.MkdirAll(filepath.Dir(h.path), 0o755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}
	f, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open history log: %w", err)
	}
	if _, err := f.WriteString(entry.String() + "\n"); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to append history: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close history log: %w", err)
	}
	return nil
}

// Recent reads the log backwards from its end and returns at most limit
// lines, newest first. Only the tail of the file that holds those lines is
// read.
func (h *HistoryFile) Recent(ctx context.Context, limit int) ([]string, error) {
	if limit <= 0 {
		return []string{}, nil
	}

	f, err := os.Open(h.path)
	if errors.Is(err, os.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open history log: %w", err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat history log: %w", err)
	}

	offset := info.Size()
	var tail []byte
	for offset > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		n := tailChunk
		if n > offset {
			n = offset
		}
		offset -= n

		chunk := make([]byte, n)
		if _, err := f.ReadAt(chunk, offset); err != nil {
			return nil, fmt.Errorf("failed to read history log: %w", err)
		}
		tail = append(chunk, tail...)

		if bytes.Count(bytes.TrimSuffix(tail, []byte("\n")), []byte("\n")) >= limit {
			break
		}
	}

	if len(tail) == 0 {
		return []string{}, nil
	}
	// a trailing newline ends the last line; it does not start an empty one
	lines := strings.Split(strings.TrimSuffix(string(tail), "\n"), "\n")
	if offset > 0 {
		// the first line may have been cut in half
		lines = lines[1:]
	}

	recent := make([]string, 0, min(limit, len(lines)))
	for i := len(lines) - 1; i >= 0 && len(recent) < limit; i-- {
		recent = append(recent, strings.TrimSuffix(lines[i], "\r"))
	}
	return recent, nil
}
