package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/xvierd/discipline-tracker/internal/domain"
)

type sqliteStateStore struct {
	db *sql.DB
}

func (r *sqliteStateStore) Load(ctx context.Context) (*domain.TimerState, error) {
	var (
		running  bool
		modeName string
		state    domain.TimerState
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT is_running, mode, remaining, work_sessions FROM timer_state WHERE id = 1`,
	).Scan(&running, &modeName, &state.Remaining, &state.WorkSessions)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewTimerState(), nil
	}
	if err != nil {
		return domain.NewTimerState(), fmt.Errorf("failed to query timer state: %w", err)
	}

	state.IsRunning = running
	if state.Mode, err = domain.ParseMode(modeName); err != nil {
		return domain.NewTimerState(), fmt.Errorf("corrupt timer state: %w", err)
	}

	state.Contributions, err = r.contributions(ctx)
	if err != nil {
		return domain.NewTimerState(), err
	}
	if err := state.Validate(); err != nil {
		return domain.NewTimerState(), fmt.Errorf("corrupt timer state: %w", err)
	}
	return &state, nil
}

func (r *sqliteStateStore) contributions(ctx context.Context) (map[domain.Date]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT day, count FROM contributions`)
	if err != nil {
		return nil, fmt.Errorf("failed to query contributions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := make(map[domain.Date]int)
	for rows.Next() {
		var (
			day   string
			count int
		)
		if err := rows.Scan(&day, &count); err != nil {
			return nil, fmt.Errorf("failed to scan contribution: %w", err)
		}
		d, err := domain.ParseDate(day)
		if err != nil {
			return nil, fmt.Errorf("corrupt contribution row: %w", err)
		}
		result[d] = count
	}
	return result, rows.Err()
}

// Save replaces the single state row and the contribution table in one
// transaction.
func (r *sqliteStateStore) Save(ctx context.Context, state *domain.TimerState) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO timer_state (id, is_running, mode, remaining, work_sessions, updated_at)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			is_running = excluded.is_running,
			mode = excluded.mode,
			remaining = excluded.remaining,
			work_sessions = excluded.work_sessions,
			updated_at = excluded.updated_at
	`, state.IsRunning, state.Mode.String(), state.Remaining, state.WorkSessions, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save timer state: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM contributions`); err != nil {
		return fmt.Errorf("failed to clear contributions: %w", err)
	}
	for day, count := range state.Contributions {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO contributions (day, count) VALUES (?, ?)`, day.String(), count,
		); err != nil {
			return fmt.Errorf("failed to save contribution for %s: %w", day, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit timer state: %w", err)
	}
	return nil
}
