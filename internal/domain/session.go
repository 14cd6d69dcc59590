package domain

// PeriodType distinguishes focused from unfocused stretches of a session.
type PeriodType string

const (
	PeriodFocus   PeriodType = "focus"
	PeriodUnfocus PeriodType = "unfocus"
)

// Period is one contiguous stretch of a single state inside a session.
type Period struct {
	Type     PeriodType `json:"type" yaml:"type"`
	Duration float64    `json:"duration" yaml:"duration"`
}

// Session is one entry of the history returned by the focus service.
// The client never mutates a Session; it only renders it.
type Session struct {
	ID              int64    `json:"id,omitempty" yaml:"id,omitempty"`
	Date            string   `json:"date" yaml:"date"`
	StartTime       string   `json:"start_time" yaml:"start_time"`
	EndTime         string   `json:"end_time,omitempty" yaml:"end_time,omitempty"`
	TotalFocus      float64  `json:"total_focus" yaml:"total_focus"`
	TotalUnfocus    float64  `json:"total_unfocus" yaml:"total_unfocus"`
	FocusPercentage float64  `json:"focus_percentage" yaml:"focus_percentage"`
	Periods         []Period `json:"periods" yaml:"periods"`
}

// TotalTime returns the tracked time of the session in seconds.
func (s Session) TotalTime() float64 {
	return clampSeconds(s.TotalFocus) + clampSeconds(s.TotalUnfocus)
}

// Fraction returns the share of the session's tracked time that p covers.
// A session with no tracked time yields 0 for every period.
func (s Session) Fraction(p Period) float64 {
	total := s.TotalTime()
	if total <= 0 {
		return 0
	}
	f := clampSeconds(p.Duration) / total
	if isBad(f) {
		return 0
	}
	return f
}
