package models

import (
	"time"

	"github.com/julianstephens/ritual/internal/constants"
)

// DayRating is the derived classification of a day.
type DayRating string

const (
	RatingPerfect DayRating = constants.RatingPerfect
	RatingPartial DayRating = constants.RatingPartial
	RatingMissed  DayRating = constants.RatingMissed
	RatingMeeting DayRating = constants.RatingMeeting
)

// ParseDayRating maps a persisted day_rating value to a DayRating.
// The second result is false for unknown values.
func ParseDayRating(s string) (DayRating, bool) {
	switch DayRating(s) {
	case RatingPerfect, RatingPartial, RatingMissed, RatingMeeting:
		return DayRating(s), true
	}
	return "", false
}

type Stack string

const (
	StackMorning Stack = constants.StackMorning
	StackEvening Stack = constants.StackEvening
)

func (s Stack) Valid() bool {
	return s == StackMorning || s == StackEvening
}

// Habit is one item of a stack checklist.
type Habit struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
}

// DayRecord is the normalized per-day state used by ratings and the history grid.
type DayRecord struct {
	Date                 string    `json:"date"` // YYYY-MM-DD, local calendar day
	MorningStackComplete bool      `json:"morning_stack_complete"`
	EveningStackComplete bool      `json:"evening_stack_complete"`
	WakeUpCompleted      bool      `json:"wake_up_completed"`
	MeetingMode          bool      `json:"meeting_mode"`
	HasReadingLog        bool      `json:"has_reading_log"`
	Rating               DayRating `json:"rating"`
}

// SummaryRow is a raw daily_summaries row. Nil flags are NULL columns.
type SummaryRow struct {
	ID           string    `json:"id"`
	Date         string    `json:"date"` // as stored; may be a timestamp
	MorningStack *bool     `json:"morning_stack_complete,omitempty"`
	EveningStack *bool     `json:"evening_stack_complete,omitempty"`
	WakeUp       *bool     `json:"wake_up_completed,omitempty"`
	MeetingMode  *bool     `json:"meeting_mode,omitempty"`
	DayRating    *string   `json:"day_rating,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasStackSignal reports whether either stack flag carries a value.
func (r SummaryRow) HasStackSignal() bool {
	return r.MorningStack != nil || r.EveningStack != nil
}

// ReadingLog is a raw reading_logs row.
type ReadingLog struct {
	ID           string    `json:"id"`
	Date         string    `json:"date"` // as stored; may be a timestamp
	BookTitle    string    `json:"book_title"`
	ChaptersRead int       `json:"chapters_read"`
	Note         string    `json:"note"`
	CreatedAt    time.Time `json:"created_at"`
}

// HabitCheck marks a stack habit done on a day.
type HabitCheck struct {
	Date      string    `json:"date"`
	HabitID   string    `json:"habit_id"`
	Stack     Stack     `json:"stack"`
	CheckedAt time.Time `json:"checked_at"`
}

// BoolPtr returns a pointer to b, for building SummaryRow values.
func BoolPtr(b bool) *bool {
	return &b
}

func boolValue(b *bool) bool {
	return b != nil && *b
}

// Flags returns the non-null boolean fields of the row, treating NULL as false.
func (r SummaryRow) Flags() (morning, evening, wakeUp, meeting bool) {
	return boolValue(r.MorningStack), boolValue(r.EveningStack), boolValue(r.WakeUp), boolValue(r.MeetingMode)
}
