package sqlite

import (
	"fmt"
	"time"

	"github.com/julianstephens/ritual/internal/models"
)

func (s *Store) GetHabitChecks(day string) ([]models.HabitCheck, error) {
	rows, err := s.db.Query(`
		SELECT date, habit_id, stack, checked_at FROM habit_checks
		WHERE date = ? ORDER BY checked_at`, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var checks []models.HabitCheck
	for rows.Next() {
		var c models.HabitCheck
		var stack, checkedAt string
		if err := rows.Scan(&c.Date, &c.HabitID, &stack, &checkedAt); err != nil {
			return nil, err
		}
		c.Stack = models.Stack(stack)
		c.CheckedAt, err = time.Parse(time.RFC3339, checkedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse checked_at: %w", err)
		}
		checks = append(checks, c)
	}
	return checks, rows.Err()
}

// SetHabitCheck records or clears one habit for a day.
func (s *Store) SetHabitCheck(c models.HabitCheck, checked bool) error {
	if !checked {
		_, err := s.db.Exec(`DELETE FROM habit_checks WHERE date = ? AND stack = ? AND habit_id = ?`,
			c.Date, string(c.Stack), c.HabitID)
		return err
	}
	_, err := s.db.Exec(`
		INSERT INTO habit_checks (date, stack, habit_id, checked_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(date, stack, habit_id) DO NOTHING`,
		c.Date, string(c.Stack), c.HabitID, c.CheckedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to check habit %s: %w", c.HabitID, err)
	}
	return nil
}
