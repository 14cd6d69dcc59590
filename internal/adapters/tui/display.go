package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/xvierd/focuswatch/internal/domain"
	"github.com/xvierd/focuswatch/internal/ports"
)

type statusMsg domain.StatusView

type statsMsg domain.StatsView

type historyMsg []domain.SessionView

type chartMsg struct {
	chart *domain.ChartView
}

type controlsMsg domain.ControlsView

// sender is the part of tea.Program the display uses.
type sender interface {
	Send(msg tea.Msg)
}

// ProgramDisplay forwards every view to a running bubbletea program as a
// message. Views arriving before a program is attached are dropped.
type ProgramDisplay struct {
	mu      sync.RWMutex
	program sender
}

// NewProgramDisplay creates a display with no program attached.
func NewProgramDisplay() *ProgramDisplay {
	return &ProgramDisplay{}
}

func (d *ProgramDisplay) attach(p sender) {
	d.mu.Lock()
	d.program = p
	d.mu.Unlock()
}

func (d *ProgramDisplay) send(msg tea.Msg) {
	d.mu.RLock()
	p := d.program
	d.mu.RUnlock()

	if p != nil {
		p.Send(msg)
	}
}

// ShowStatus implements ports.StatusDisplay.
func (d *ProgramDisplay) ShowStatus(v domain.StatusView) { d.send(statusMsg(v)) }

// ShowStats implements ports.StatsDisplay.
func (d *ProgramDisplay) ShowStats(v domain.StatsView) { d.send(statsMsg(v)) }

// ShowHistory implements ports.HistoryDisplay.
func (d *ProgramDisplay) ShowHistory(v []domain.SessionView) { d.send(historyMsg(v)) }

// ShowChart implements ports.ChartDisplay.
func (d *ProgramDisplay) ShowChart(c *domain.ChartView) { d.send(chartMsg{chart: c}) }

// ShowControls implements ports.ControlsDisplay.
func (d *ProgramDisplay) ShowControls(v domain.ControlsView) { d.send(controlsMsg(v)) }

// Ensure ProgramDisplay implements the display ports.
var (
	_ ports.Display      = (*ProgramDisplay)(nil)
	_ ports.ChartDisplay = (*ProgramDisplay)(nil)
)
