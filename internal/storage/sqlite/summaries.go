package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/ritual/internal/models"
	"github.com/julianstephens/ritual/internal/storage"
)

const summaryColumns = `id, date, morning_stack_complete, evening_stack_complete,
	wake_up_completed, meeting_mode, day_rating, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func nullBoolPtr(b sql.NullBool) *bool {
	if !b.Valid {
		return nil
	}
	return models.BoolPtr(b.Bool)
}

func nullStringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

func scanSummary(row scanner) (models.SummaryRow, error) {
	var r models.SummaryRow
	var morning, evening, wakeUp, meeting sql.NullBool
	var rating sql.NullString
	var updatedAt string

	if err := row.Scan(&r.ID, &r.Date, &morning, &evening, &wakeUp, &meeting, &rating, &updatedAt); err != nil {
		return models.SummaryRow{}, err
	}

	r.MorningStack = nullBoolPtr(morning)
	r.EveningStack = nullBoolPtr(evening)
	r.WakeUp = nullBoolPtr(wakeUp)
	r.MeetingMode = nullBoolPtr(meeting)
	r.DayRating = nullStringPtr(rating)

	t, err := time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return models.SummaryRow{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}
	r.UpdatedAt = t
	return r, nil
}

func (s *Store) GetSummary(day string) (models.SummaryRow, error) {
	row := s.db.QueryRow(`SELECT `+summaryColumns+` FROM daily_summaries WHERE substr(date, 1, 10) = ?
		ORDER BY updated_at DESC LIMIT 1`, day)

	r, err := scanSummary(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SummaryRow{}, fmt.Errorf("summary for %s: %w", day, storage.ErrNotFound)
	}
	return r, err
}

// UpsertSummary writes the row keyed by date. An existing row keeps its id.
func (s *Store) UpsertSummary(r models.SummaryRow) error {
	var rating any
	if r.DayRating != nil {
		rating = *r.DayRating
	}
	_, err := s.db.Exec(`
		INSERT INTO daily_summaries (`+summaryColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			morning_stack_complete = excluded.morning_stack_complete,
			evening_stack_complete = excluded.evening_stack_complete,
			wake_up_completed = excluded.wake_up_completed,
			meeting_mode = excluded.meeting_mode,
			day_rating = excluded.day_rating,
			updated_at = excluded.updated_at`,
		r.ID, r.Date, boolArg(r.MorningStack), boolArg(r.EveningStack),
		boolArg(r.WakeUp), boolArg(r.MeetingMode), rating,
		r.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert summary for %s: %w", r.Date, err)
	}
	return nil
}

func boolArg(b *bool) any {
	if b == nil {
		return nil
	}
	return *b
}

func (s *Store) GetSummaries(startDay, endDay string) ([]models.SummaryRow, error) {
	rows, err := s.db.Query(`SELECT `+summaryColumns+` FROM daily_summaries
		WHERE substr(date, 1, 10) BETWEEN ? AND ?
		ORDER BY date`, startDay, endDay)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.SummaryRow
	for rows.Next() {
		r, err := scanSummary(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
