package cmd

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"
)

var (
	historyLimit  int
	historyFilter string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently completed phases",
	Long: `List the most recent entries of the history log, newest first.
--filter keeps only entries that fuzzy-match the query, e.g. "long" or "10-14".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit := historyLimit
		if limit <= 0 {
			limit = app.config.History.DisplayLimit
		}

		lines, err := app.timer.RecentHistory(cmd.Context(), limit)
		if err != nil {
			return err
		}
		lines = filterHistory(lines, historyFilter)

		out := cmd.OutOrStdout()
		if jsonOutput {
			data, err := json.MarshalIndent(lines, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal history: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		if len(lines) == 0 {
			fmt.Fprintln(out, "No sessions recorded yet.")
			return nil
		}
		for _, line := range lines {
			fmt.Fprintln(out, line)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "Maximum number of entries (default: history.display_limit)")
	historyCmd.Flags().StringVarP(&historyFilter, "filter", "f", "", "Fuzzy filter applied to the entries")
}

// filterHistory keeps the lines matching query, preserving their order.
func filterHistory(lines []string, query string) []string {
	if query == "" {
		return lines
	}
	matches := fuzzy.Find(query, lines)
	idx := make([]int, 0, len(matches))
	for _, m := range matches {
		idx = append(idx, m.Index)
	}
	slices.Sort(idx)

	filtered := make([]string, 0, len(idx))
	for _, i := range idx {
		filtered = append(filtered, lines[i])
	}
	return filtered
}
