package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/xvierd/focuswatch/internal/adapters/tui"
	"github.com/xvierd/focuswatch/internal/domain"
	"github.com/xvierd/focuswatch/internal/services"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current status",
	Long:  `Fetch the live gaze state and the running session stats once and print them.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		live, err := app.api.LiveState(ctx)
		if err != nil {
			return fmt.Errorf("failed to get live state: %w", err)
		}
		stats, err := app.api.Stats(ctx)
		if err != nil {
			return fmt.Errorf("failed to get stats: %w", err)
		}

		if jsonOutput {
			return outputStatusJSON(cmd.OutOrStdout(), live, stats)
		}

		printer := tui.NewPrinter(cmd.OutOrStdout(), app.locale, app.config.Theme)
		services.NewLiveStatusRenderer(printer, app.locale, app.config.Theme.Icons(), app.logger).Render(live)
		services.NewStatsRenderer(printer, app.locale).Render(stats)
		return nil
	},
}

// statusJSON is the --json shape of the status command.
type statusJSON struct {
	Direction       domain.Direction `json:"direction"`
	Label           string           `json:"label"`
	Warned          bool             `json:"warned"`
	TotalFocus      float64          `json:"total_focus"`
	TotalUnfocus    float64          `json:"total_unfocus"`
	FocusPercentage float64          `json:"focus_percentage"`
	Tier            domain.Tier      `json:"tier"`
}

// outputStatusJSON outputs the status in JSON format
func outputStatusJSON(w io.Writer, live domain.LiveState, stats domain.Stats) error {
	result := statusJSON{
		Direction:       live.Direction,
		Label:           app.locale.DirectionLabel(live.Direction),
		Warned:          live.Warned,
		TotalFocus:      stats.TotalFocus,
		TotalUnfocus:    stats.TotalUnfocus,
		FocusPercentage: stats.FocusPercentage,
		Tier:            domain.Classify(stats.FocusPercentage),
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal status: %w", err)
	}
	fmt.Fprintln(w, string(jsonData))
	return nil
}
