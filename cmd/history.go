package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/xvierd/focuswatch/internal/adapters/tui"
	"github.com/xvierd/focuswatch/internal/domain"
	"github.com/xvierd/focuswatch/internal/services"
)

var historyFormat string

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past sessions",
	Long: `List past sessions in the order the service returns them, each with its
focus/unfocus timeline, followed by the focus trend chart.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sessions, err := app.api.History(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get history: %w", err)
		}

		format := historyFormat
		if jsonOutput {
			format = "json"
		}
		return writeHistory(cmd.OutOrStdout(), sessions, format)
	},
}

func init() {
	historyCmd.Flags().StringVar(&historyFormat, "format", "text", "Output format: text, json or yaml")
}

func writeHistory(w io.Writer, sessions []domain.Session, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(sessions, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal history: %w", err)
		}
		fmt.Fprintln(w, string(data))
		return nil
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(sessions); err != nil {
			return fmt.Errorf("failed to marshal history: %w", err)
		}
		return enc.Close()
	case "text", "":
		printer := tui.NewPrinter(w, app.locale, app.config.Theme, tui.WithWidth(min(tui.TerminalWidth()-4, 80)))
		services.NewHistoryRenderer(printer, app.locale).Render(sessions)
		return nil
	default:
		return fmt.Errorf("unknown format %q: must be text, json or yaml", format)
	}
}
