package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xvierd/focuswatch/internal/adapters/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol (MCP) server for integration with AI assistants.
The server provides tools for reading the live focus status and session history,
and for starting and ending sessions. It communicates over stdio.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// stdout belongs to the protocol.
		fmt.Fprintln(cmd.ErrOrStderr(), "🚀 Starting MCP server on stdio (Ctrl+C to stop)")

		server := mcp.NewServer(app.api, app.locale, app.logger, Version)
		if err := server.Serve(); err != nil {
			return fmt.Errorf("MCP server error: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
