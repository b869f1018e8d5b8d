package constants

const (
	SettingTimezone        = "timezone"
	SettingDisplayName     = "display_name"
	SettingPrimaryStart    = "primary_window_start"
	SettingPrimaryEnd      = "primary_window_end"
	SettingFallbackStart   = "fallback_window_start"
	SettingFallbackEnd     = "fallback_window_end"
	SettingTickIntervalSec = "tick_interval_sec"
	SettingHistoryDays     = "history_days"

	// Default Settings Values
	DefaultTimezone    = "Local" // Use system local timezone by default
	DefaultDisplayName = ""
)
