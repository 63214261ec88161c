package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
	"github.com/xvierd/discipline-tracker/internal/adapters/tui"
	"github.com/xvierd/discipline-tracker/internal/domain"
	"github.com/xvierd/discipline-tracker/internal/heatmap"
)

var heatmapCmd = &cobra.Command{
	Use:   "heatmap",
	Short: "Print the contribution heatmap",
	Long: `Print one cell per day for the last 53 weeks, most recent week on the
left, colored by the number of work sessions completed that day.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		g := heatmap.Build(app.timer.State().Contributions, domain.DateOf(time.Now()))
		out := cmd.OutOrStdout()

		if jsonOutput {
			levels := make([][]int, heatmap.Days)
			for d := range levels {
				levels[d] = make([]int, heatmap.Weeks)
				for w := 0; w < heatmap.Weeks; w++ {
					levels[d][w] = int(g[w][d].Bucket)
				}
			}
			data, err := json.Marshal(map[string]any{"total": g.Total(), "rows": levels})
			if err != nil {
				return fmt.Errorf("failed to marshal heatmap: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		width := heatmap.Weeks * 2
		if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
			width = w
		}
		fmt.Fprintln(out, tui.RenderHeatmap(&g, width))
		return nil
	},
}
