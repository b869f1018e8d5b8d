package constants

const (
	AppName            = "ritual"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/ritual/ritual.db"
	DefaultProfilePath = "~/.config/ritual/profile.yaml"
	EnvDBConnection    = "RITUAL_DB_CONNECTION"
	Version            = "v0.3.0"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "ritual-"
	BackupFileSuffix = ".db"

	// Window state literals
	WindowStateActive   = "active"
	WindowStateMissed   = "missed"
	WindowStateFallback = "fallback"

	// Day rating literals
	RatingPerfect = "perfect"
	RatingPartial = "partial"
	RatingMissed  = "missed"
	// RatingMeeting is accepted in the persisted day_rating column but never derived.
	RatingMeeting = "meeting"

	// Stack literals
	StackMorning = "morning"
	StackEvening = "evening"

	// PlaceholderIdentity is returned by the greeting resolver when no rule matches.
	PlaceholderIdentity = "Friend"
	// FallbackPeriod labels hours outside every period rule.
	FallbackPeriod = "Night"
)

// SessionState represents the current view of the dashboard
type SessionState int

const (
	StateToday SessionState = iota
	StateHistory
	StateReadings
	StateAddReading
	StateConfirmDelete
)
