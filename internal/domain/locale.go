package domain

import (
	"fmt"
	"strings"
)

// Locale holds the user-visible words for one display language.
type Locale struct {
	Code       string
	HourUnit   string
	MinuteUnit string
	SecondUnit string

	Center   string
	Left     string
	Right    string
	Tracking string
	Ready    string

	Focus   string
	Unfocus string
	Session string
}

// LocaleEN is the default English table.
var LocaleEN = Locale{
	Code:       "en",
	HourUnit:   "h",
	MinuteUnit: "min",
	SecondUnit: "sec",
	Center:     "good focus",
	Left:       "looking left",
	Right:      "looking right",
	Tracking:   "tracking…",
	Ready:      "ready to start",
	Focus:      "focus",
	Unfocus:    "unfocus",
	Session:    "Session",
}

// LocaleAR is the Arabic table.
var LocaleAR = Locale{
	Code:       "ar",
	HourUnit:   "ساعة",
	MinuteUnit: "دقيقة",
	SecondUnit: "ثانية",
	Center:     "تركيز جيد",
	Left:       "ينظر لليسار",
	Right:      "ينظر لليمين",
	Tracking:   "جاري التتبع...",
	Ready:      "جاهز للبدء",
	Focus:      "تركيز",
	Unfocus:    "عدم تركيز",
	Session:    "جلسة",
}

// LookupLocale returns the table for code. The empty code means English.
func LookupLocale(code string) (Locale, error) {
	switch strings.ToLower(strings.TrimSpace(code)) {
	case "", "en":
		return LocaleEN, nil
	case "ar":
		return LocaleAR, nil
	}
	return Locale{}, fmt.Errorf("%w %q: must be one of en, ar", ErrUnknownLocale, code)
}

// DirectionLabel returns the status label for d.
func (l Locale) DirectionLabel(d Direction) string {
	switch d {
	case DirectionCenter:
		return l.Center
	case DirectionLeft:
		return l.Left
	case DirectionRight:
		return l.Right
	default:
		return l.Tracking
	}
}

// PeriodLabel returns the word used for a period of type t.
func (l Locale) PeriodLabel(t PeriodType) string {
	if t == PeriodFocus {
		return l.Focus
	}
	return l.Unfocus
}
