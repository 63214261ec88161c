package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xvierd/discipline-tracker/internal/domain"
)

var resetCmd = &cobra.Command{
	Use:   "reset [work|short|long]",
	Short: "Reset the timer",
	Long:  `Pause the timer and rewind it to the full length of a mode, Work by default.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode := domain.ModeWork
		if len(args) == 1 {
			var err error
			mode, err = domain.ParseMode(args[0])
			if err != nil {
				return err
			}
		}

		app.timer.Reset(mode)
		if err := app.timer.Persist(cmd.Context()); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "⟲ Reset to %s (%s)\n", mode.Label(), domain.FormatClock(mode.Seconds()))
		return nil
	},
}
