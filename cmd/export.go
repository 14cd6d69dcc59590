package cmd

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/xvierd/focuswatch/internal/domain"
)

var exportFormat string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export session history",
	Long:  "Export your session history in markdown or CSV format.",
	RunE: func(cmd *cobra.Command, args []string) error {
		sessions, err := app.api.History(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to fetch sessions: %w", err)
		}

		switch exportFormat {
		case "csv":
			return exportCSV(cmd.OutOrStdout(), sessions)
		case "md", "":
			exportMarkdown(cmd.OutOrStdout(), sessions, app.locale, time.Now())
			return nil
		default:
			return fmt.Errorf("unknown format %q: must be md or csv", exportFormat)
		}
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&exportFormat, "format", "md", "Output format: md or csv")
}

func exportMarkdown(w io.Writer, sessions []domain.Session, loc domain.Locale, now time.Time) {
	fmt.Fprintf(w, "# focuswatch session export\n\n")
	fmt.Fprintf(w, "Generated: %s\n\n", now.Format("2006-01-02 15:04"))

	if len(sessions) == 0 {
		fmt.Fprintln(w, "_No sessions recorded._")
		return
	}

	for _, s := range sessions {
		title := fmt.Sprintf("%s %s", s.Date, s.StartTime)
		if s.EndTime != "" {
			title += "–" + s.EndTime
		}
		if s.ID != 0 {
			title = fmt.Sprintf("#%d · %s", s.ID, title)
		}
		fmt.Fprintf(w, "## %s\n", title)
		fmt.Fprintf(w, "- Focus: %s\n", domain.FormatDurationLong(s.TotalFocus, loc))
		fmt.Fprintf(w, "- Unfocus: %s\n", domain.FormatDurationLong(s.TotalUnfocus, loc))
		fmt.Fprintf(w, "- Score: %s (%s)\n", domain.FormatPercent(s.FocusPercentage), domain.Classify(s.FocusPercentage))
		if len(s.Periods) > 0 {
			fmt.Fprintf(w, "- Periods (%d):\n", len(s.Periods))
			for _, p := range s.Periods {
				fmt.Fprintf(w, "  - %s %s\n", loc.PeriodLabel(p.Type), domain.FormatDurationLong(p.Duration, loc))
			}
		}
		fmt.Fprintln(w)
	}
}

func exportCSV(w io.Writer, sessions []domain.Session) error {
	cw := csv.NewWriter(w)

	_ = cw.Write([]string{
		"id", "date", "start_time", "end_time", "total_focus_sec",
		"total_unfocus_sec", "focus_percentage", "tier", "periods",
	})

	for _, s := range sessions {
		id := ""
		if s.ID != 0 {
			id = strconv.FormatInt(s.ID, 10)
		}
		_ = cw.Write([]string{
			id,
			s.Date,
			s.StartTime,
			s.EndTime,
			strconv.FormatFloat(s.TotalFocus, 'f', 0, 64),
			strconv.FormatFloat(s.TotalUnfocus, 'f', 0, 64),
			strconv.FormatFloat(s.FocusPercentage, 'f', 1, 64),
			string(domain.Classify(s.FocusPercentage)),
			strconv.Itoa(len(s.Periods)),
		})
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}
