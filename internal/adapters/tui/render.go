package tui

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"

	"github.com/xvierd/focuswatch/internal/config"
	"github.com/xvierd/focuswatch/internal/domain"
)

const (
	chartRows     = 6
	chartColWidth = 7
	minBarWidth   = 10
)

// TerminalWidth returns the current terminal width, defaulting to 80.
func TerminalWidth() int {
	w, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil || w < 40 {
		return 80
	}
	return w
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(f.Fd())
}

// palette holds the styles for one lipgloss renderer and theme.
type palette struct {
	title   lipgloss.Style
	help    lipgloss.Style
	warning lipgloss.Style
	focus   lipgloss.Style
	unfocus lipgloss.Style
	tiers   map[domain.Tier]lipgloss.Style
}

func newPalette(r *lipgloss.Renderer, theme config.ThemeConfig) palette {
	color := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}
	return palette{
		title:   color(theme.ColorTitle).Bold(true),
		help:    color(theme.ColorHelp),
		warning: color(theme.ColorWarning).Bold(true),
		focus:   color(theme.ColorFocus),
		unfocus: color(theme.ColorUnfocus),
		tiers: map[domain.Tier]lipgloss.Style{
			domain.TierHigh:   color(theme.ColorHigh).Bold(true),
			domain.TierMedium: color(theme.ColorMedium).Bold(true),
			domain.TierLow:    color(theme.ColorLow).Bold(true),
		},
	}
}

func (p palette) tier(t domain.Tier) lipgloss.Style {
	if s, ok := p.tiers[t]; ok {
		return s
	}
	return p.tiers[domain.TierLow]
}

// segmentCells converts fractional segment widths into whole cells of a
// row that is width cells wide. Boundaries are rounded from the running
// total, so the cells never add up to more than width.
func segmentCells(segments []domain.SegmentView, width int) []int {
	cells := make([]int, len(segments))
	if width <= 0 {
		return cells
	}

	cum, prev := 0.0, 0
	for i, s := range segments {
		w := s.Width
		if math.IsNaN(w) || w < 0 {
			w = 0
		}
		cum = math.Min(cum+w, 1)
		pos := int(math.Round(cum * float64(width)))
		cells[i] = pos - prev
		prev = pos
	}
	return cells
}

// renderSegments draws the focus/unfocus strip of one session.
func renderSegments(segments []domain.SegmentView, width int, p palette) string {
	if width < minBarWidth {
		width = minBarWidth
	}

	var b strings.Builder
	used := 0
	for i, n := range segmentCells(segments, width) {
		if n == 0 {
			continue
		}
		style := p.unfocus
		if segments[i].Type == domain.PeriodFocus {
			style = p.focus
		}
		b.WriteString(style.Render(strings.Repeat("█", n)))
		used += n
	}
	if used < width {
		b.WriteString(p.help.Render(strings.Repeat("░", width-used)))
	}
	return b.String()
}

// renderSession draws one history row.
func renderSession(v domain.SessionView, width int, loc domain.Locale, p palette) string {
	header := fmt.Sprintf("%s  %s", p.title.Render(v.Title), p.tier(v.Tier).Render(v.Percentage))
	totals := fmt.Sprintf("  %s %s · %s %s", loc.Focus, v.FocusTime, loc.Unfocus, v.UnfocusTime)
	bar := "  " + renderSegments(v.Segments, width-4, p)
	return strings.Join([]string{header, p.help.Render(totals), bar}, "\n")
}

// renderHistory draws every history row, in the order given.
func renderHistory(views []domain.SessionView, width int, loc domain.Locale, p palette) string {
	rows := make([]string, 0, len(views))
	for _, v := range views {
		rows = append(rows, renderSession(v, width, loc, p))
	}
	return strings.Join(rows, "\n\n")
}

// renderChart draws the trend chart as vertical bars with a label column
// under each bar. Bars and labels share an index.
func renderChart(chart *domain.ChartView, p palette) string {
	if chart == nil || len(chart.Bars) == 0 {
		return ""
	}

	filled := make([]int, len(chart.Bars))
	for i, bar := range chart.Bars {
		filled[i] = int(math.Round(bar.Height * chartRows))
	}

	var lines []string
	for row := chartRows; row >= 1; row-- {
		var b strings.Builder
		for i := range chart.Bars {
			cell := strings.Repeat(" ", chartColWidth)
			if filled[i] >= row {
				cell = " " + p.focus.Render(strings.Repeat("█", chartColWidth-2)) + " "
			}
			b.WriteString(cell)
		}
		lines = append(lines, strings.TrimRight(b.String(), " "))
	}

	var dates, values strings.Builder
	for i := range chart.Bars {
		var label domain.ChartLabel
		if i < len(chart.Labels) {
			label = chart.Labels[i]
		}
		dates.WriteString(fitCell(shortDate(label.Date), chartColWidth))
		values.WriteString(fitCell(label.Value, chartColWidth))
	}
	lines = append(lines, p.help.Render(dates.String()), p.help.Render(values.String()))
	return strings.Join(lines, "\n")
}

// shortDate trims a YYYY-MM-DD date to MM-DD.
func shortDate(date string) string {
	if len(date) == len("2006-01-02") && date[4] == '-' {
		return date[5:]
	}
	return date
}

// fitCell centers s in a cell of width w, truncating when it does not fit.
func fitCell(s string, w int) string {
	r := []rune(s)
	if len(r) >= w {
		return string(r[:w-1]) + " "
	}
	pad := w - len(r)
	return strings.Repeat(" ", pad/2) + s + strings.Repeat(" ", pad-pad/2)
}
