package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/xvierd/discipline-tracker/internal/adapters/gui"
)

var guiCmd = &cobra.Command{
	Use:   "gui",
	Short: "Open the desktop timer window",
	Long: `Open the desktop window with the project and history sidebar, the
countdown, the mode presets and the contribution heatmap. A tray menu is
added where the desktop supports one.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := setupSignalHandler()

		err := gui.Run(ctx, app.timer, gui.Options{
			Projects:     app.projects(ctx),
			HistoryLimit: app.config.History.DisplayLimit,
			TickInterval: time.Duration(app.config.UI.TickInterval),
			Theme:        &app.config.Theme,
		}, app.logger)
		if err != nil {
			return fmt.Errorf("desktop window error: %w", err)
		}
		return nil
	},
}
