package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a focus session",
	Long: `Ask the focus service to begin tracking a new session. Use the dashboard
or "focuswatch status" to follow it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.api.StartSession(cmd.Context()); err != nil {
			return fmt.Errorf("failed to start session: %w", err)
		}
		app.logger.Info("session started", "server", app.api.BaseURL())

		fmt.Fprintln(cmd.OutOrStdout(), "▶ Session started")
		return nil
	},
}
