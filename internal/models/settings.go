package models

// Settings represents application-wide settings
type Settings struct {
	Timezone        string `json:"timezone"`              // IANA timezone name (e.g. "America/New_York", or "Local" for system timezone)
	DisplayName     string `json:"display_name"`          // substituted for the placeholder identity in greetings
	PrimaryStart    string `json:"primary_window_start"`  // HH:MM
	PrimaryEnd      string `json:"primary_window_end"`    // HH:MM
	FallbackStart   string `json:"fallback_window_start"` // HH:MM, used in meeting mode
	FallbackEnd     string `json:"fallback_window_end"`   // HH:MM
	TickIntervalSec int    `json:"tick_interval_sec"`     // dashboard re-evaluation interval
	HistoryDays     int    `json:"history_days"`          // span of the history grid
}
