package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/xvierd/discipline-tracker/internal/domain"
)

type sqliteHistoryLog struct {
	db *sql.DB
}

func (r *sqliteHistoryLog) Append(ctx context.Context, entry domain.HistoryEntry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO history (id, completed_at, mode, line) VALUES (?, ?, ?, ?)`,
		domain.NewID(), entry.At.UTC(), entry.Mode.String(), entry.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to append history: %w", err)
	}
	return nil
}

// Recent orders by rowid, which follows insertion order in an append-only
// table.
func (r *sqliteHistoryLog) Recent(ctx context.Context, limit int) ([]string, error) {
	if limit <= 0 {
		return []string{}, nil
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT line FROM history ORDER BY rowid DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	lines := []string{}
	for rows.Next() {
		var line string
		if err := rows.Scan(&line); err != nil {
			return nil, fmt.Errorf("failed to scan history: %w", err)
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}
