// Package window decides whether an instant falls inside the daily victory
// window and how long remains until the window next opens.
//
// Every function reads hour and minute from the supplied time.Time in its own
// location. Callers choose the zone by converting the instant first (see
// utils.InTimezone); nothing here consults the ambient clock.
package window

import (
	"time"

	"github.com/julianstephens/ritual/internal/constants"
	"github.com/julianstephens/ritual/internal/models"
	"github.com/julianstephens/ritual/internal/utils"
)

// Select returns the window in force for the given mode.
func Select(useFallback bool, cfg models.WindowConfig) models.TimeWindow {
	if useFallback {
		return cfg.Fallback
	}
	return cfg.Primary
}

// Evaluate reports whether now lies within the selected window, bounds inclusive.
func Evaluate(now time.Time, useFallback bool, cfg models.WindowConfig) models.WindowResult {
	m := utils.MinutesSinceMidnight(now)

	if !Select(useFallback, cfg).Contains(m) {
		return models.WindowResult{InWindow: false, State: models.WindowMissed}
	}
	if useFallback {
		return models.WindowResult{InWindow: true, State: models.WindowFallback}
	}
	return models.WindowResult{InWindow: true, State: models.WindowActive}
}

// TimeUntilNextOpen returns the countdown to the selected window's next start.
// Once now has reached the start, the countdown targets tomorrow's opening,
// including while the window is still open.
func TimeUntilNextOpen(now time.Time, useFallback bool, cfg models.WindowConfig) models.Countdown {
	m := utils.MinutesSinceMidnight(now)
	start := Select(useFallback, cfg).Start.SinceMidnight()

	if m < start {
		return models.CountdownFromMinutes(start-m, false)
	}
	return models.CountdownFromMinutes(constants.MinutesPerDay-m+start, true)
}

// NextOpen returns the instant the selected window next opens, in now's location.
func NextOpen(now time.Time, useFallback bool, cfg models.WindowConfig) time.Time {
	start := Select(useFallback, cfg).Start
	open := time.Date(now.Year(), now.Month(), now.Day(), start.Hours, start.Minutes, 0, 0, now.Location())
	if utils.MinutesSinceMidnight(now) >= start.SinceMidnight() {
		open = open.AddDate(0, 0, 1)
	}
	return open
}
