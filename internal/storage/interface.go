package storage

import (
	"errors"

	"github.com/julianstephens/ritual/internal/models"
)

// ErrNotFound is returned by single-row lookups with no match.
var ErrNotFound = errors.New("not found")

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Daily summaries
	GetSummary(day string) (models.SummaryRow, error)
	UpsertSummary(models.SummaryRow) error
	// GetSummaries returns rows whose stored date falls in [startDay, endDay]
	// by its first ten characters.
	GetSummaries(startDay, endDay string) ([]models.SummaryRow, error)

	// Reading logs
	AddReadingLog(models.ReadingLog) error
	GetReadingLogs(startDay, endDay string) ([]models.ReadingLog, error)
	DeleteReadingLog(id string) error

	// Habit checks
	GetHabitChecks(day string) ([]models.HabitCheck, error)
	SetHabitCheck(check models.HabitCheck, checked bool) error

	// Utils
	GetConfigPath() string
}
