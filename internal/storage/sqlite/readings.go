package sqlite

import (
	"fmt"
	"time"

	"github.com/julianstephens/ritual/internal/models"
	"github.com/julianstephens/ritual/internal/storage"
)

func (s *Store) AddReadingLog(l models.ReadingLog) error {
	_, err := s.db.Exec(`
		INSERT INTO reading_logs (id, date, book_title, chapters_read, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		l.ID, l.Date, l.BookTitle, l.ChaptersRead, l.Note, l.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to add reading log: %w", err)
	}
	return nil
}

func (s *Store) GetReadingLogs(startDay, endDay string) ([]models.ReadingLog, error) {
	rows, err := s.db.Query(`
		SELECT id, date, book_title, chapters_read, note, created_at
		FROM reading_logs
		WHERE substr(date, 1, 10) BETWEEN ? AND ?
		ORDER BY date, created_at`, startDay, endDay)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.ReadingLog
	for rows.Next() {
		var l models.ReadingLog
		var createdAt string
		if err := rows.Scan(&l.ID, &l.Date, &l.BookTitle, &l.ChaptersRead, &l.Note, &createdAt); err != nil {
			return nil, err
		}
		l.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func (s *Store) DeleteReadingLog(id string) error {
	res, err := s.db.Exec("DELETE FROM reading_logs WHERE id = ?", id)
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
