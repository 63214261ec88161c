// Package cmd provides the CLI commands for discipline-tracker.
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/xvierd/discipline-tracker/internal/adapters/tui"
)

var (
	// Version info (set at build time via ldflags)
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"

	// Global flags
	dataDir     string
	backendFlag string
	jsonOutput  bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "discipline",
	Short: "discipline - a Pomodoro timer with a contribution heatmap",
	Long: `discipline is a Pomodoro timer that counts every finished work session
on a year-long heatmap and keeps a plain-text history of every phase.

Run "discipline" with no arguments to open the terminal timer, or
"discipline gui" for the desktop window.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeServices(cmd)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return cleanupServices()
	},
	RunE: runTUI,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Directory holding state, history and config (default: per-user data dir)")
	rootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "", "Storage backend: file or sqlite (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results in JSON format")

	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("discipline-tracker\nVersion: {{.Version}}\n")

	rootCmd.AddCommand(guiCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(heatmapCmd)
	rootCmd.AddCommand(skipCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(mcpCmd)
}

// runTUI opens the full screen terminal timer.
func runTUI(cmd *cobra.Command, args []string) error {
	ctx := setupSignalHandler()

	m := tui.NewModel(ctx, app.timer, tui.Options{
		Projects:     app.projects(ctx),
		HistoryLimit: app.config.History.DisplayLimit,
		TickInterval: time.Duration(app.config.UI.TickInterval),
		Theme:        &app.config.Theme,
	})
	if err := tui.Run(ctx, m); err != nil {
		return fmt.Errorf("timer error: %w", err)
	}
	return nil
}
