package models

import (
	"fmt"
	"time"

	"github.com/julianstephens/ritual/internal/constants"
)

// TimeOfDay is a wall-clock time without a date.
type TimeOfDay struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

// ParseTimeOfDay parses an HH:MM string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse(constants.TimeFormat, s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q (expected HH:MM): %w", s, err)
	}
	return TimeOfDay{Hours: t.Hour(), Minutes: t.Minute()}, nil
}

// MustTimeOfDay is ParseTimeOfDay for compile-time constants.
func MustTimeOfDay(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

// SinceMidnight returns the number of minutes from midnight.
func (t TimeOfDay) SinceMidnight() int {
	return t.Hours*60 + t.Minutes
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hours, t.Minutes)
}

// TimeWindow is a recurring daily interval. Windows never span midnight.
type TimeWindow struct {
	Start TimeOfDay `json:"start"`
	End   TimeOfDay `json:"end"`
}

// Contains reports whether minutes-since-midnight m lies in the window, inclusive at both ends.
func (w TimeWindow) Contains(m int) bool {
	return w.Start.SinceMidnight() <= m && m <= w.End.SinceMidnight()
}

func (w TimeWindow) String() string {
	return fmt.Sprintf("%s–%s", w.Start, w.End)
}

// WindowConfig holds the two victory windows. Fallback replaces Primary in meeting mode.
type WindowConfig struct {
	Primary  TimeWindow `json:"primary"`
	Fallback TimeWindow `json:"fallback"`
}

// DefaultWindowConfig returns the 05:45–06:15 primary and 07:15–07:45 fallback windows.
func DefaultWindowConfig() WindowConfig {
	return WindowConfig{
		Primary: TimeWindow{
			Start: MustTimeOfDay(constants.DefaultPrimaryStart),
			End:   MustTimeOfDay(constants.DefaultPrimaryEnd),
		},
		Fallback: TimeWindow{
			Start: MustTimeOfDay(constants.DefaultFallbackStart),
			End:   MustTimeOfDay(constants.DefaultFallbackEnd),
		},
	}
}

type WindowState string

const (
	WindowActive   WindowState = constants.WindowStateActive
	WindowMissed   WindowState = constants.WindowStateMissed
	WindowFallback WindowState = constants.WindowStateFallback
)

// WindowResult is the outcome of a single window evaluation.
type WindowResult struct {
	InWindow bool        `json:"in_window"`
	State    WindowState `json:"state"`
}

// Countdown is the time left until a window next opens.
type Countdown struct {
	Hours    int  `json:"hours"`
	Minutes  int  `json:"minutes"`
	Tomorrow bool `json:"tomorrow"`
}

// CountdownFromMinutes splits a minute total into hours and minutes.
func CountdownFromMinutes(total int, tomorrow bool) Countdown {
	return Countdown{Hours: total / 60, Minutes: total % 60, Tomorrow: tomorrow}
}

func (c Countdown) TotalMinutes() int {
	return c.Hours*60 + c.Minutes
}

func (c Countdown) String() string {
	when := "today"
	if c.Tomorrow {
		when = "tomorrow"
	}
	if c.Hours == 0 {
		return fmt.Sprintf("%dm (%s)", c.Minutes, when)
	}
	return fmt.Sprintf("%dh %02dm (%s)", c.Hours, c.Minutes, when)
}
