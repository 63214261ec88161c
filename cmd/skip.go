package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xvierd/discipline-tracker/internal/domain"
)

var skipCmd = &cobra.Command{
	Use:   "skip",
	Short: "Finish the current phase now",
	Long: `Complete the current phase immediately. It counts exactly like a phase
that ran out: it is written to the history and a work session adds a
contribution for today.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := app.timer.Skip(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✓ %s complete. Next: %s (%s)\n",
			c.Ended.Label(), c.Next.Label(), domain.FormatClock(c.Next.Seconds()))
		return nil
	},
}
