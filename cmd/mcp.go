package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xvierd/discipline-tracker/internal/adapters/mcp"
)

// annotationReadOnly marks commands that must never change the stored state
// or history.
const annotationReadOnly = "read-only"

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:         "mcp",
	Annotations: map[string]string{annotationReadOnly: "true"},
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol (MCP) server for integration with AI assistants.
The server offers read-only tools for the timer state, the history and the heatmap.
It never changes the stored state or history, not even to set aside a corrupt
state file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// stdout carries the protocol
		errOut := cmd.ErrOrStderr()
		fmt.Fprintln(errOut, "🚀 Starting MCP server...")
		fmt.Fprintln(errOut, "   The server will communicate via stdio")
		fmt.Fprintln(errOut, "   Press Ctrl+C to stop")

		ctx := setupSignalHandler()

		server := mcp.NewServer(app.storage.States(), app.storage.History(), app.config.History.DisplayLimit)
		if err := server.Start(ctx); err != nil {
			return fmt.Errorf("MCP server error: %w", err)
		}
		return nil
	},
}
