package cmd

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the configuration",
	Long: `Show where the configuration file lives and the values in effect after
environment overrides (DISCIPLINE_SECTION_KEY) and command-line flags.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		cfg := app.config

		if jsonOutput {
			data, err := json.MarshalIndent(map[string]any{
				"path":   app.configPath,
				"config": cfg,
			}, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		onOff := func(b bool) string {
			if b {
				return "on"
			}
			return "off"
		}

		fmt.Fprintln(out)
		fmt.Fprintf(out, "  Config file:  %s\n", app.configPath)
		fmt.Fprintf(out, "  Data dir:     %s\n", cfg.Storage.DataDir)
		fmt.Fprintf(out, "  Log file:     %s\n", cfg.LogPath())
		fmt.Fprintln(out)
		fmt.Fprintf(out, "  Storage backend:  %s\n", cfg.Storage.Backend)
		fmt.Fprintf(out, "  Async writes:     %s\n", onOff(cfg.Storage.AsyncWrites))
		fmt.Fprintf(out, "  Notifications:    %s\n", onOff(cfg.Notifications.Enabled))
		fmt.Fprintf(out, "  Sound:            %s (%s)\n", onOff(cfg.Notifications.Sound), cfg.SoundPath())
		fmt.Fprintf(out, "  History shown:    %d\n", cfg.History.DisplayLimit)
		fmt.Fprintf(out, "  Tick interval:    %s\n", time.Duration(cfg.UI.TickInterval))
		fmt.Fprintf(out, "  Projects:         %s\n", strings.Join(cfg.UI.Projects, ", "))
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Edit the file to change these values.")
		return nil
	},
}
