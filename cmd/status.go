package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/xvierd/discipline-tracker/internal/domain"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the timer state",
	Long:  `Display the persisted timer state: mode, remaining time and completed work sessions.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		state := app.timer.State()
		today := domain.DateOf(time.Now())

		if jsonOutput {
			return outputStatusJSON(cmd.OutOrStdout(), state, today)
		}
		printStatusText(cmd.OutOrStdout(), state, today)
		return nil
	},
}

type statusView struct {
	Mode          string  `json:"mode" yaml:"mode"`
	ModeLabel     string  `json:"mode_label" yaml:"mode_label"`
	IsRunning     bool    `json:"is_running" yaml:"is_running"`
	Remaining     string  `json:"remaining" yaml:"remaining"`
	RemainingSecs int     `json:"remaining_seconds" yaml:"remaining_seconds"`
	Progress      float64 `json:"progress" yaml:"progress"`
	WorkSessions  int     `json:"work_sessions" yaml:"work_sessions"`
	Today         int     `json:"today" yaml:"today"`
	Total         int     `json:"total_contributions" yaml:"total_contributions"`
}

func newStatusView(state *domain.TimerState, today domain.Date) statusView {
	return statusView{
		Mode:          state.Mode.String(),
		ModeLabel:     state.Mode.Label(),
		IsRunning:     state.IsRunning,
		Remaining:     domain.FormatClock(state.Remaining),
		RemainingSecs: state.Remaining,
		Progress:      state.Progress(),
		WorkSessions:  state.WorkSessions,
		Today:         state.ContributionsOn(today),
		Total:         state.TotalContributions(),
	}
}

// outputStatusJSON outputs the status in JSON format
func outputStatusJSON(w io.Writer, state *domain.TimerState, today domain.Date) error {
	jsonData, err := json.MarshalIndent(newStatusView(state, today), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal status: %w", err)
	}
	fmt.Fprintln(w, string(jsonData))
	return nil
}

// printStatusText prints the status in plain text format
func printStatusText(w io.Writer, state *domain.TimerState, today domain.Date) {
	v := newStatusView(state, today)
	status := "paused"
	if v.IsRunning {
		status = "running"
	}
	fmt.Fprintf(w, "🍅 %s (%s)\n", v.ModeLabel, status)
	fmt.Fprintf(w, "   Remaining: %s\n", v.Remaining)
	fmt.Fprintf(w, "   Progress: %.0f%%\n", v.Progress*100)
	fmt.Fprintf(w, "\n📊 Work sessions:\n")
	fmt.Fprintf(w, "   Today: %d\n", v.Today)
	fmt.Fprintf(w, "   All time: %d\n", v.Total)
	fmt.Fprintf(w, "   Cycle count: %d\n", v.WorkSessions)
}
