package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// glyphs is a three-row block font for percentages.
var glyphs = map[rune][3]string{
	'0': {"█▀█", "█ █", "▀▀▀"},
	'1': {"▀█ ", " █ ", "▀▀▀"},
	'2': {"▀▀█", "█▀▀", "▀▀▀"},
	'3': {"▀▀█", " ▀█", "▀▀▀"},
	'4': {"█ █", "▀▀█", "  ▀"},
	'5': {"█▀▀", "▀▀█", "▀▀▀"},
	'6': {"█▀▀", "█▀█", "▀▀▀"},
	'7': {"▀▀█", "  █", "  ▀"},
	'8': {"█▀█", "█▀█", "▀▀▀"},
	'9': {"█▀█", "▀▀█", "▀▀▀"},
	'.': {" ", " ", "▀"},
	'%': {"█ ▄", "▄▀ ", "▀ █"},
}

// renderBigPercent draws a percentage such as "66.9%" in the block font.
// Narrow terminals get a single bold line instead.
func renderBigPercent(pct string, style lipgloss.Style, width int) string {
	if width < 40 {
		return style.Bold(true).Render(pct)
	}

	var rows [3]strings.Builder
	for _, ch := range pct {
		g, ok := glyphs[ch]
		if !ok {
			continue
		}
		for i := range rows {
			if rows[i].Len() > 0 {
				rows[i].WriteString(" ")
			}
			rows[i].WriteString(g[i])
		}
	}

	lines := make([]string, len(rows))
	for i := range rows {
		lines[i] = style.Render(rows[i].String())
	}
	return strings.Join(lines, "\n")
}
