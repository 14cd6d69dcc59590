// Package tui provides the terminal user interface implementation
// using the Bubbletea framework, plus a plain line printer for
// non-interactive output.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/xvierd/focuswatch/internal/config"
	"github.com/xvierd/focuswatch/internal/domain"
	"github.com/xvierd/focuswatch/internal/ports"
)

// maxHistoryRows caps how many sessions the dashboard lists.
const maxHistoryRows = 5

type opKind string

const (
	opNone  opKind = ""
	opStart opKind = "start"
	opEnd   opKind = "end"
)

// opDoneMsg reports the outcome of a start or end request.
type opDoneMsg struct {
	op  opKind
	err error
}

// notifyMsg carries a notification toggle made outside the dashboard.
type notifyMsg bool

// Options configures the dashboard.
type Options struct {
	Locale domain.Locale
	Theme  config.ThemeConfig
	// Idle is the status shown before the first live update.
	Idle domain.StatusView
	// Notify is the initial state of focus-lost alerts.
	Notify bool
	// OnNotifyToggle is called when the user toggles alerts.
	OnNotifyToggle func(bool)
}

// Model represents the dashboard state.
type Model struct {
	ctx     context.Context
	control ports.SessionControl
	opts    Options
	palette palette

	keys     keyMap
	help     help.Model
	spinner  spinner.Model
	progress progress.Model

	status   domain.StatusView
	stats    domain.StatsView
	history  []domain.SessionView
	chart    *domain.ChartView
	controls domain.ControlsView
	loaded   bool

	pending opKind
	lastErr error
	notify  bool

	width  int
	height int
}

// NewModel creates a dashboard model driving control.
func NewModel(ctx context.Context, control ports.SessionControl, opts Options) Model {
	theme := opts.Theme
	if theme == (config.ThemeConfig{}) {
		theme = config.DefaultThemeConfig()
	}
	opts.Theme = theme
	if opts.Locale.Code == "" {
		opts.Locale = domain.LocaleEN
	}

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColorFocus))

	pbar := progress.New(
		progress.WithGradient(theme.ColorLow, theme.ColorHigh),
		progress.WithoutPercentage(),
	)
	pbar.Width = 40

	keys := defaultKeyMap()
	keys.syncControls(false, false, false)

	return Model{
		ctx:      ctx,
		control:  control,
		opts:     opts,
		palette:  newPalette(lipgloss.DefaultRenderer(), theme),
		keys:     keys,
		help:     help.New(),
		spinner:  sp,
		progress: pbar,
		status:   opts.Idle,
		notify:   opts.Notify,
		width:    TerminalWidth(),
	}
}

// Init loads the history and starts the spinner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(loadCmd(m.ctx, m.control), m.spinner.Tick)
}

func loadCmd(ctx context.Context, control ports.SessionControl) tea.Cmd {
	return func() tea.Msg {
		control.Load(ctx)
		return nil
	}
}

func startCmd(ctx context.Context, control ports.SessionControl) tea.Cmd {
	return func() tea.Msg {
		return opDoneMsg{op: opStart, err: control.Start(ctx)}
	}
}

func endCmd(ctx context.Context, control ports.SessionControl) tea.Cmd {
	return func() tea.Msg {
		return opDoneMsg{op: opEnd, err: control.End(ctx)}
	}
}

func reloadCmd(ctx context.Context, control ports.SessionControl) tea.Cmd {
	return func() tea.Msg {
		control.ReloadHistory(ctx)
		return nil
	}
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.progress.Width = min(max(msg.Width-24, 10), 50)
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)

	case opDoneMsg:
		m.pending = opNone
		m.lastErr = msg.err
		m.keys.syncControls(m.controls.StartEnabled, m.controls.EndEnabled, false)
		return m, nil

	case statusMsg:
		m.status = domain.StatusView(msg)
		return m, nil

	case statsMsg:
		m.stats = domain.StatsView(msg)
		return m, nil

	case historyMsg:
		m.history = msg
		m.loaded = true
		return m, nil

	case chartMsg:
		m.chart = msg.chart
		return m, nil

	case controlsMsg:
		m.controls = domain.ControlsView(msg)
		m.keys.syncControls(m.controls.StartEnabled, m.controls.EndEnabled, m.pending != opNone)
		return m, nil

	case notifyMsg:
		m.notify = bool(msg)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Start):
		m.pending = opStart
		m.lastErr = nil
		m.keys.syncControls(m.controls.StartEnabled, m.controls.EndEnabled, true)
		return m, startCmd(m.ctx, m.control)

	case key.Matches(msg, m.keys.End):
		m.pending = opEnd
		m.lastErr = nil
		m.keys.syncControls(m.controls.StartEnabled, m.controls.EndEnabled, true)
		return m, endCmd(m.ctx, m.control)

	case key.Matches(msg, m.keys.Reload):
		return m, reloadCmd(m.ctx, m.control)

	case key.Matches(msg, m.keys.Notify):
		m.notify = !m.notify
		if m.opts.OnNotifyToggle != nil {
			m.opts.OnNotifyToggle(m.notify)
		}
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}
	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	sections := []string{
		m.palette.title.Render("👁  focuswatch"),
		m.viewStatus(),
		m.viewStats(),
	}
	if m.lastErr != nil {
		sections = append(sections, m.palette.warning.Render("✗ "+m.lastErr.Error()))
	}
	sections = append(sections, "", m.viewHistory())
	if chart := renderChart(m.chart, m.palette); chart != "" {
		sections = append(sections, "", m.palette.title.Render("📈 Focus trend"), chart)
	}
	sections = append(sections, "", m.viewHelp())

	return lipgloss.NewStyle().Padding(1, 2).Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) viewStatus() string {
	line := fmt.Sprintf("%s  %s", m.status.Icon, m.status.Label)
	switch {
	case m.pending == opStart:
		return m.spinner.View() + " starting session…"
	case m.pending == opEnd:
		return m.spinner.View() + " ending session…"
	case m.status.Warning:
		return m.palette.warning.Render(line + "  ⚠ eyes off screen")
	case m.controls.EndEnabled:
		return line + " " + m.spinner.View()
	}
	return line
}

func (m Model) viewStats() string {
	if !m.controls.EndEnabled && m.stats == (domain.StatsView{}) {
		return m.palette.help.Render("no active session")
	}
	loc := m.opts.Locale
	tier := domain.Classify(m.stats.FocusFraction * 100)
	totals := fmt.Sprintf("%s %s · %s %s", loc.Focus, m.stats.FocusTime, loc.Unfocus, m.stats.UnfocusTime)
	return lipgloss.JoinVertical(lipgloss.Left,
		renderBigPercent(m.stats.Percentage, m.palette.tier(tier), m.width),
		m.palette.help.Render(totals),
		m.progress.ViewAs(m.stats.FocusFraction),
	)
}

func (m Model) viewHistory() string {
	if !m.loaded {
		return m.palette.help.Render("loading history…")
	}
	if len(m.history) == 0 {
		return m.palette.help.Render("No sessions recorded yet.")
	}

	rows := m.history
	more := 0
	if len(rows) > maxHistoryRows {
		more = len(rows) - maxHistoryRows
		rows = rows[:maxHistoryRows]
	}
	out := renderHistory(rows, min(m.width-4, 80), m.opts.Locale, m.palette)
	if more > 0 {
		out += "\n" + m.palette.help.Render(fmt.Sprintf("… %d more (focuswatch history)", more))
	}
	return out
}

func (m Model) viewHelp() string {
	alerts := "off"
	if m.notify {
		alerts = "on"
	}
	var b strings.Builder
	b.WriteString(m.help.View(m.keys))
	b.WriteString(m.palette.help.Render("  · alerts " + alerts))
	return b.String()
}
