package cmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/xvierd/discipline-tracker/internal/domain"
	"gopkg.in/yaml.v3"
)

var (
	exportFormat string
	exportOutput string
	exportLimit  int
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export state, contributions and history",
	Long: `Export the timer state, the per-day contribution counts and the history
log as JSON or YAML. CSV holds the history only, one row per completed phase.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if exportOutput != "" {
			f, err := os.Create(exportOutput)
			if err != nil {
				return fmt.Errorf("failed to create export file: %w", err)
			}
			defer f.Close()
			out = f
		}
		return runExport(cmd, out)
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "Output format: json, yaml or csv")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to a file instead of stdout")
	exportCmd.Flags().IntVar(&exportLimit, "limit", 0, "Only export the newest N history entries (default: all)")
}

type contributionRow struct {
	Date  string `json:"date" yaml:"date"`
	Count int    `json:"count" yaml:"count"`
}

type historyRow struct {
	Time string `json:"time" yaml:"time"`
	Mode string `json:"mode" yaml:"mode"`
}

type exportDocument struct {
	ExportedAt    string            `json:"exported_at" yaml:"exported_at"`
	State         statusView        `json:"state" yaml:"state"`
	Contributions []contributionRow `json:"contributions" yaml:"contributions"`
	History       []historyRow      `json:"history" yaml:"history"`
}

func runExport(cmd *cobra.Command, out io.Writer) error {
	limit := exportLimit
	if limit <= 0 {
		limit = math.MaxInt32
	}
	lines, err := app.timer.RecentHistory(cmd.Context(), limit)
	if err != nil {
		return err
	}

	now := time.Now()
	doc := buildExport(app.timer.State(), lines, now, cmd.ErrOrStderr())

	switch exportFormat {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
	case "yaml", "yml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
	case "csv":
		return exportCSV(out, doc.History)
	default:
		return fmt.Errorf("unknown export format %q (want json, yaml or csv)", exportFormat)
	}
	return nil
}

// buildExport assembles the document. History is oldest first; lines that
// do not parse are reported on warn and left out.
func buildExport(state *domain.TimerState, lines []string, now time.Time, warn io.Writer) exportDocument {
	doc := exportDocument{
		ExportedAt:    now.Format(time.RFC3339),
		State:         newStatusView(state, domain.DateOf(now)),
		Contributions: make([]contributionRow, 0, len(state.Contributions)),
		History:       make([]historyRow, 0, len(lines)),
	}

	for day, n := range state.Contributions {
		doc.Contributions = append(doc.Contributions, contributionRow{Date: day.String(), Count: n})
	}
	sort.Slice(doc.Contributions, func(i, j int) bool {
		return doc.Contributions[i].Date < doc.Contributions[j].Date
	})

	for i := len(lines) - 1; i >= 0; i-- {
		entry, err := domain.ParseHistoryLine(lines[i], time.Local)
		if err != nil {
			fmt.Fprintf(warn, "Warning: skipping history line: %v\n", err)
			continue
		}
		doc.History = append(doc.History, historyRow{
			Time: entry.At.Format(domain.HistoryTimeLayout),
			Mode: entry.Mode.Label(),
		})
	}
	return doc
}

func exportCSV(out io.Writer, rows []historyRow) error {
	w := csv.NewWriter(out)
	if err := w.Write([]string{"time", "mode"}); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	for _, r := range rows {
		if err := w.Write([]string{r.Time, r.Mode}); err != nil {
			return fmt.Errorf("failed to write csv: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}
