package domain

import "strings"

// Direction is the gaze classification reported by the focus service.
// Values outside the known set are kept verbatim so they can still drive
// change detection and the state class.
type Direction string

const (
	DirectionCenter  Direction = "CENTER"
	DirectionLeft    Direction = "LEFT"
	DirectionRight   Direction = "RIGHT"
	DirectionUnknown Direction = "UNKNOWN"
)

// NormalizeDirection trims the raw value and maps an empty one to DirectionUnknown.
func NormalizeDirection(raw string) Direction {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DirectionUnknown
	}
	return Direction(raw)
}

// IsKnown reports whether d is one of CENTER, LEFT or RIGHT.
func (d Direction) IsKnown() bool {
	switch d {
	case DirectionCenter, DirectionLeft, DirectionRight:
		return true
	}
	return false
}

// StateClass is the lower-case state indicator shown for d.
func (d Direction) StateClass() string {
	return strings.ToLower(string(d))
}

// LiveState is one poll of the current gaze state.
type LiveState struct {
	Direction Direction `json:"direction"`
	Warned    bool      `json:"warned"`
}

// Stats is the running aggregate of the current session.
// Absent fields decode as zero.
type Stats struct {
	TotalFocus      float64 `json:"total_focus"`
	TotalUnfocus    float64 `json:"total_unfocus"`
	FocusPercentage float64 `json:"focus_percentage"`
}

// SessionState is the client-side lifecycle of a tracking session.
type SessionState string

const (
	SessionIdle   SessionState = "idle"
	SessionActive SessionState = "active"
)

// Controls returns which session controls are usable in state s.
func (s SessionState) Controls() ControlsView {
	if s == SessionActive {
		return ControlsView{StartEnabled: false, EndEnabled: true}
	}
	return ControlsView{StartEnabled: true, EndEnabled: false}
}
