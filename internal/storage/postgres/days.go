package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/ritual/internal/models"
	"github.com/julianstephens/ritual/internal/storage"
)

// Dates are rendered server-side so the DATE column is never shifted by the session zone.
const summaryColumns = `id, to_char(date, 'YYYY-MM-DD'), morning_stack_complete, evening_stack_complete,
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

func scanSummary(row scanner) (models.SummaryRow, error) {
	var r models.SummaryRow
	var morning, evening, wakeUp, meeting sql.NullBool
	var rating sql.NullString

	if err := row.Scan(&r.ID, &r.Date, &morning, &evening, &wakeUp, &meeting, &rating, &r.UpdatedAt); err != nil {
		return models.SummaryRow{}, err
	}
	r.MorningStack = nullBoolPtr(morning)
	r.EveningStack = nullBoolPtr(evening)
	r.WakeUp = nullBoolPtr(wakeUp)
	r.MeetingMode = nullBoolPtr(meeting)
	if rating.Valid {
		v := rating.String
		r.DayRating = &v
	}
	return r, nil
}

func (s *Store) GetSummary(day string) (models.SummaryRow, error) {
	r, err := scanSummary(s.db.QueryRow(`SELECT `+summaryColumns+` FROM daily_summaries WHERE date = $1`, day))
	if errors.Is(err, sql.ErrNoRows) {
		return models.SummaryRow{}, fmt.Errorf("summary for %s: %w", day, storage.ErrNotFound)
	}
	return r, err
}

func (s *Store) UpsertSummary(r models.SummaryRow) error {
	_, err := s.db.Exec(`
		INSERT INTO daily_summaries (id, date, morning_stack_complete, evening_stack_complete,
			wake_up_completed, meeting_mode, day_rating, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (date) DO UPDATE SET
			morning_stack_complete = EXCLUDED.morning_stack_complete,
			evening_stack_complete = EXCLUDED.evening_stack_complete,
			wake_up_completed = EXCLUDED.wake_up_completed,
			meeting_mode = EXCLUDED.meeting_mode,
			day_rating = EXCLUDED.day_rating,
			updated_at = EXCLUDED.updated_at`,
		r.ID, r.Date, r.MorningStack, r.EveningStack, r.WakeUp, r.MeetingMode, r.DayRating, r.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert summary for %s: %w", r.Date, err)
	}
	return nil
}

func (s *Store) GetSummaries(startDay, endDay string) ([]models.SummaryRow, error) {
	rows, err := s.db.Query(`SELECT `+summaryColumns+` FROM daily_summaries
		WHERE date BETWEEN $1 AND $2 ORDER BY date`, startDay, endDay)
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

func (s *Store) AddReadingLog(l models.ReadingLog) error {
	_, err := s.db.Exec(`
		INSERT INTO reading_logs (id, date, book_title, chapters_read, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		l.ID, l.Date, l.BookTitle, l.ChaptersRead, l.Note, l.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to add reading log: %w", err)
	}
	return nil
}

func (s *Store) GetReadingLogs(startDay, endDay string) ([]models.ReadingLog, error) {
	rows, err := s.db.Query(`
		SELECT id, to_char(date, 'YYYY-MM-DD'), book_title, chapters_read, note, created_at
		FROM reading_logs WHERE date BETWEEN $1 AND $2
		ORDER BY date, created_at`, startDay, endDay)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.ReadingLog
	for rows.Next() {
		var l models.ReadingLog
		if err := rows.Scan(&l.ID, &l.Date, &l.BookTitle, &l.ChaptersRead, &l.Note, &l.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func (s *Store) DeleteReadingLog(id string) error {
	res, err := s.db.Exec("DELETE FROM reading_logs WHERE id = $1", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("reading log %s: %w", id, storage.ErrNotFound)
	}
	return nil
}

func (s *Store) GetHabitChecks(day string) ([]models.HabitCheck, error) {
	rows, err := s.db.Query(`
		SELECT to_char(date, 'YYYY-MM-DD'), habit_id, stack, checked_at FROM habit_checks
		WHERE date = $1 ORDER BY checked_at`, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var checks []models.HabitCheck
	for rows.Next() {
		var c models.HabitCheck
		var stack string
		if err := rows.Scan(&c.Date, &c.HabitID, &stack, &c.CheckedAt); err != nil {
			return nil, err
		}
		c.Stack = models.Stack(stack)
		checks = append(checks, c)
	}
	return checks, rows.Err()
}

func (s *Store) SetHabitCheck(c models.HabitCheck, checked bool) error {
	if !checked {
		_, err := s.db.Exec(`DELETE FROM habit_checks WHERE date = $1 AND stack = $2 AND habit_id = $3`,
			c.Date, string(c.Stack), c.HabitID)
		return err
	}
	_, err := s.db.Exec(`
		INSERT INTO habit_checks (date, stack, habit_id, checked_at) VALUES ($1, $2, $3, $4)
		ON CONFLICT (date, stack, habit_id) DO NOTHING`,
		c.Date, string(c.Stack), c.HabitID, c.CheckedAt)
	if err != nil {
		return fmt.Errorf("failed to check habit %s: %w", c.HabitID, err)
	}
	return nil
}
