package tui

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/xvierd/focuswatch/internal/config"
	"github.com/xvierd/focuswatch/internal/domain"
	"github.com/xvierd/focuswatch/internal/ports"
)

// Printer is a line-oriented display for pipes, logs and the --plain
// dashboard. Colors are dropped automatically when out is not a terminal.
type Printer struct {
	mu        sync.Mutex
	out       io.Writer
	locale    domain.Locale
	palette   palette
	width     int
	timestamp bool

	lastStats string
}

// PrinterOption configures a Printer.
type PrinterOption func(*Printer)

// WithWidth sets the width of history bars.
func WithWidth(w int) PrinterOption {
	return func(p *Printer) { p.width = w }
}

// WithTimestamps prefixes live lines with the wall clock time.
func WithTimestamps() PrinterOption {
	return func(p *Printer) { p.timestamp = true }
}

// NewPrinter creates a Printer writing to out.
func NewPrinter(out io.Writer, locale domain.Locale, theme config.ThemeConfig, opts ...PrinterOption) *Printer {
	p := &Printer{
		out:     out,
		locale:  locale,
		palette: newPalette(lipgloss.NewRenderer(out), theme),
		width:   60,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Printer) prefix() string {
	if !p.timestamp {
		return ""
	}
	return p.palette.help.Render(time.Now().Format("15:04:05")) + " "
}

// ShowStatus prints one line per status change.
func (p *Printer) ShowStatus(v domain.StatusView) {
	p.mu.Lock()
	defer p.mu.Unlock()

	line := fmt.Sprintf("%s %s", v.Icon, v.Label)
	if v.Warning {
		line = p.palette.warning.Render(line + "  ⚠")
	}
	fmt.Fprintf(p.out, "%s%s\n", p.prefix(), line)
}

// ShowStats prints the stats line when it differs from the last one.
func (p *Printer) ShowStats(v domain.StatsView) {
	p.mu.Lock()
	defer p.mu.Unlock()

	line := fmt.Sprintf("%s %s · %s %s · %s",
		p.locale.Focus, v.FocusTime, p.locale.Unfocus, v.UnfocusTime, v.Percentage)
	if line == p.lastStats {
		return
	}
	p.lastStats = line
	fmt.Fprintf(p.out, "%s%s\n", p.prefix(), p.palette.help.Render(line))
}

// ShowHistory prints every session row.
func (p *Printer) ShowHistory(views []domain.SessionView) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(views) == 0 {
		fmt.Fprintln(p.out, p.palette.help.Render("No sessions recorded yet."))
		return
	}
	fmt.Fprintln(p.out, renderHistory(views, p.width, p.locale, p.palette))
}

// ShowChart prints the trend chart. A nil chart prints nothing.
func (p *Printer) ShowChart(chart *domain.ChartView) {
	if chart == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, p.palette.title.Render("📈 Focus trend"))
	fmt.Fprintln(p.out, renderChart(chart, p.palette))
}

// ShowControls prints the keys that apply in the new state.
func (p *Printer) ShowControls(v domain.ControlsView) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var hint string
	switch {
	case v.EndEnabled:
		hint = "session running · Ctrl+C to stop watching"
	case v.StartEnabled:
		hint = "idle · run `focuswatch start` to begin"
	default:
		return
	}
	fmt.Fprintf(p.out, "%s%s\n", p.prefix(), p.palette.help.Render(hint))
}

// Ensure Printer implements the display ports.
var (
	_ ports.Display      = (*Printer)(nil)
	_ ports.ChartDisplay = (*Printer)(nil)
)
