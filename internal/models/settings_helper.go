package models

import (
	"fmt"

	"github.com/julianstephens/ritual/internal/constants"
)

// MapToSettings converts a map of key-value pairs to a Settings struct.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{}

	for key, value := range data {
		switch key {
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingDisplayName:
			settings.DisplayName = value
		case constants.SettingPrimaryStart:
			settings.PrimaryStart = value
		case constants.SettingPrimaryEnd:
			settings.PrimaryEnd = value
		case constants.SettingFallbackStart:
			settings.FallbackStart = value
		case constants.SettingFallbackEnd:
			settings.FallbackEnd = value
		case constants.SettingTickIntervalSec:
			if _, err := fmt.Sscanf(value, "%d", &settings.TickIntervalSec); err != nil {
				return Settings{}, fmt.Errorf("parsing tick_interval_sec: %w", err)
			}
		case constants.SettingHistoryDays:
			if _, err := fmt.Sscanf(value, "%d", &settings.HistoryDays); err != nil {
				return Settings{}, fmt.Errorf("parsing history_days: %w", err)
			}
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingTimezone:        settings.Timezone,
		constants.SettingDisplayName:     settings.DisplayName,
		constants.SettingPrimaryStart:    settings.PrimaryStart,
		constants.SettingPrimaryEnd:      settings.PrimaryEnd,
		constants.SettingFallbackStart:   settings.FallbackStart,
		constants.SettingFallbackEnd:     settings.FallbackEnd,
		constants.SettingTickIntervalSec: fmt.Sprintf("%d", settings.TickIntervalSec),
		constants.SettingHistoryDays:     fmt.Sprintf("%d", settings.HistoryDays),
	}
}

// DefaultSettings returns settings with every default applied.
func DefaultSettings() Settings {
	s := Settings{}
	ApplyDefaultSettings(&s)
	return s
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
	if settings.PrimaryStart == "" {
		settings.PrimaryStart = constants.DefaultPrimaryStart
	}
	if settings.PrimaryEnd == "" {
		settings.PrimaryEnd = constants.DefaultPrimaryEnd
	}
	if settings.FallbackStart == "" {
		settings.FallbackStart = constants.DefaultFallbackStart
	}
	if settings.FallbackEnd == "" {
		settings.FallbackEnd = constants.DefaultFallbackEnd
	}
	if settings.TickIntervalSec <= 0 {
		settings.TickIntervalSec = constants.DefaultTickIntervalSec
	}
	if settings.HistoryDays <= 0 {
		settings.HistoryDays = constants.DefaultHistoryDays
	}
}

// WindowConfig parses the configured window bounds.
func (s Settings) WindowConfig() (WindowConfig, error) {
	bounds := []struct {
		name  string
		value string
	}{
		{constants.SettingPrimaryStart, s.PrimaryStart},
		{constants.SettingPrimaryEnd, s.PrimaryEnd},
		{constants.SettingFallbackStart, s.FallbackStart},
		{constants.SettingFallbackEnd, s.FallbackEnd},
	}
	parsed := make([]TimeOfDay, len(bounds))
	for i, b := range bounds {
		t, err := ParseTimeOfDay(b.value)
		if err != nil {
			return WindowConfig{}, fmt.Errorf("%s: %w", b.name, err)
		}
		parsed[i] = t
	}
	return WindowConfig{
		Primary:  TimeWindow{Start: parsed[0], End: parsed[1]},
		Fallback: TimeWindow{Start: parsed[2], End: parsed[3]},
	}, nil
}
