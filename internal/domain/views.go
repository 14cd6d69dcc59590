package domain

// Icons maps directions to the status glyph.
type Icons struct {
	Center  string
	Left    string
	Right   string
	Default string
}

// DefaultIcons is the glyph set used when the theme does not override it.
var DefaultIcons = Icons{
	Center:  "👌",
	Left:    "👈",
	Right:   "👉",
	Default: "👁️",
}

// For returns the glyph for d.
func (i Icons) For(d Direction) string {
	switch d {
	case DirectionCenter:
		return i.Center
	case DirectionLeft:
		return i.Left
	case DirectionRight:
		return i.Right
	default:
		return i.Default
	}
}

// StatusView is what the live status area shows.
// An empty StateClass is the idle state.
type StatusView struct {
	Direction  Direction
	Label      string
	Icon       string
	StateClass string
	Warning    bool
}

// StatsView is what the current-session stats area shows.
type StatsView struct {
	FocusTime   string
	UnfocusTime string
	Percentage  string
	// FocusFraction is the focus percentage scaled to [0,1] for bar widgets.
	FocusFraction float64
}

// ControlsView tells the display which session controls are usable.
type ControlsView struct {
	StartEnabled bool
	EndEnabled   bool
}

// SegmentView is one period drawn inside a session row.
// Width is the fraction of the row the segment covers.
type SegmentView struct {
	Type  PeriodType
	Width float64
	Title string
}

// SessionView is one row of the history list.
type SessionView struct {
	Title       string
	Date        string
	StartTime   string
	Percentage  string
	Tier        Tier
	FocusTime   string
	UnfocusTime string
	Segments    []SegmentView
}

// ChartBar is one bar of the trend chart. Height is in [0,1].
type ChartBar struct {
	Height float64
}

// ChartLabel annotates the bar with the same index.
type ChartLabel struct {
	Date  string
	Value string
}

// ChartView is the focus trend across sessions, oldest first.
type ChartView struct {
	Bars   []ChartBar
	Labels []ChartLabel
}
