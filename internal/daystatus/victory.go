package daystatus

import (
	"errors"

	"github.com/julianstephens/ritual/internal/models"
)

var (
	ErrAlreadyClaimed = errors.New("victory already claimed today")
	ErrOutsideWindow  = errors.New("victory window is closed")
)

// ClaimVictory marks the wake-up as completed. A claim is only accepted while
// the evaluated window is open and never clears an earlier claim.
func ClaimVictory(rec models.DayRecord, result models.WindowResult) (models.DayRecord, error) {
	if rec.WakeUpCompleted {
		return rec, ErrAlreadyClaimed
	}
	if !result.InWindow {
		return rec, ErrOutsideWindow
	}
	rec.WakeUpCompleted = true
	return Rated(rec), nil
}
