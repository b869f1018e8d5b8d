// Package daystatus derives day ratings from completion flags and merges
// independently dated summaries and reading logs into a per-day history.
package daystatus

import (
	"time"

	"github.com/julianstephens/ritual/internal/models"
	"github.com/julianstephens/ritual/internal/utils"
)

// DeriveDayRating classifies a day from its boolean signals.
//
//	perfect: both stacks complete
//	partial: either stack complete, or any reading logged
//	missed:  otherwise
func DeriveDayRating(rec models.DayRecord) models.DayRating {
	switch {
	case rec.MorningStackComplete && rec.EveningStackComplete:
		return models.RatingPerfect
	case rec.MorningStackComplete || rec.EveningStackComplete || rec.HasReadingLog:
		return models.RatingPartial
	default:
		return models.RatingMissed
	}
}

// Rated returns a copy of rec with Rating recomputed from its booleans.
func Rated(rec models.DayRecord) models.DayRecord {
	rec.Rating = DeriveDayRating(rec)
	return rec
}

// persistedRating interprets a stored day_rating for days with no boolean signal.
// The meeting literal is never derived; a stored one counts as partial credit.
func persistedRating(stored *string) models.DayRating {
	if stored == nil {
		return models.RatingMissed
	}
	r, ok := models.ParseDayRating(*stored)
	if !ok {
		return models.RatingMissed
	}
	if r == models.RatingMeeting {
		return models.RatingPartial
	}
	return r
}

// RecordFromSummary builds the DayRecord for a summary row. The persisted
// day_rating is used only when the row has no stack signal and no reading log.
func RecordFromSummary(row models.SummaryRow, hasReadingLog bool, loc *time.Location) (models.DayRecord, error) {
	day, err := utils.CanonicalDay(row.Date, loc)
	if err != nil {
		return models.DayRecord{}, err
	}

	morning, evening, wakeUp, meeting := row.Flags()
	rec := models.DayRecord{
		Date:                 day,
		MorningStackComplete: morning,
		EveningStackComplete: evening,
		WakeUpCompleted:      wakeUp,
		MeetingMode:          meeting,
		HasReadingLog:        hasReadingLog,
	}

	if !row.HasStackSignal() && !hasReadingLog {
		rec.Rating = persistedRating(row.DayRating)
		return rec, nil
	}
	return Rated(rec), nil
}

// SummaryFromRecord converts a record back into a row for the store.
// The derived rating is written alongside the flags.
func SummaryFromRecord(rec models.DayRecord, id string, updatedAt time.Time) models.SummaryRow {
	rating := string(DeriveDayRating(rec))
	return models.SummaryRow{
		ID:           id,
		Date:         rec.Date,
		MorningStack: models.BoolPtr(rec.MorningStackComplete),
		EveningStack: models.BoolPtr(rec.EveningStackComplete),
		WakeUp:       models.BoolPtr(rec.WakeUpCompleted),
		MeetingMode:  models.BoolPtr(rec.MeetingMode),
		DayRating:    &rating,
		UpdatedAt:    updatedAt,
	}
}

// EmptyRecord is the all-false record for a day with no data.
func EmptyRecord(day string) models.DayRecord {
	return Rated(models.DayRecord{Date: day})
}
