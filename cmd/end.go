package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/xvierd/focuswatch/internal/domain"
)

// endCmd represents the end command
var endCmd = &cobra.Command{
	Use:     "end",
	Aliases: []string{"stop"},
	Short:   "End the current focus session",
	Long:    `Ask the focus service to stop tracking and record the session, then show its summary.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if err := app.api.EndSession(ctx); err != nil {
			return fmt.Errorf("failed to end session: %w", err)
		}
		app.logger.Info("session ended", "server", app.api.BaseURL())

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "■ Session ended")

		sessions, err := app.api.History(ctx)
		if err != nil {
			app.logger.Warn("history fetch failed", "err", err)
			return nil
		}
		if len(sessions) > 0 {
			printSessionSummary(out, sessions[0], app.locale)
		}
		return nil
	},
}

// printSessionSummary prints the totals of one recorded session.
func printSessionSummary(w io.Writer, s domain.Session, loc domain.Locale) {
	fmt.Fprintf(w, "   %s %s %s\n", loc.Session, s.Date, s.StartTime)
	fmt.Fprintf(w, "   %s: %s\n", loc.Focus, domain.FormatDurationLong(s.TotalFocus, loc))
	fmt.Fprintf(w, "   %s: %s\n", loc.Unfocus, domain.FormatDurationLong(s.TotalUnfocus, loc))
	fmt.Fprintf(w, "   %s (%s)\n", domain.FormatPercent(s.FocusPercentage), domain.Classify(s.FocusPercentage))
}
