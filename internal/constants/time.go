package constants

const (
	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	MinutesPerDay = 24 * 60

	// Default victory windows
	DefaultPrimaryStart  = "05:45"
	DefaultPrimaryEnd    = "06:15"
	DefaultFallbackStart = "07:15"
	DefaultFallbackEnd   = "07:45"

	// DefaultTickIntervalSec is how often the dashboard re-evaluates the window.
	DefaultTickIntervalSec = 30

	// DefaultHistoryDays is the span of the history grid (four weeks).
	DefaultHistoryDays = 28
)
