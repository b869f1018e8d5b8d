package history

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/julianstephens/ritual/internal/models"
)

func records(ratings ...models.DayRating) []models.DayRecord {
	out := make([]models.DayRecord, len(ratings))
	for i, r := range ratings {
		out[i] = models.DayRecord{Date: fmt.Sprintf("2026-03-%02d", i+1), Rating: r}
	}
	return out
}

func TestGridRows(t *testing.T) {
	recs := records(
		models.RatingPerfect, models.RatingPartial, models.RatingMissed,
		models.RatingMissed, models.RatingMissed, models.RatingMissed, models.RatingMissed,
		models.RatingPerfect, models.RatingPerfect,
	)
	out := Grid(recs, "2026-03-09")

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d rows, want 2:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "03-01") || !strings.Contains(lines[1], "03-08") {
		t.Errorf("row labels missing:\n%s", out)
	}
	if got := strings.Count(out, perfectGlyph); got != 3 {
		t.Errorf("perfect cells = %d, want 3", got)
	}
	if got := strings.Count(out, partialGlyph); got != 1 {
		t.Errorf("partial cells = %d, want 1", got)
	}
	if got := strings.Count(out, missedGlyph); got != 5 {
		t.Errorf("missed cells = %d, want 5", got)
	}
}

func TestLegend(t *testing.T) {
	out := Legend(records(models.RatingPerfect, models.RatingPartial, models.RatingPartial), 3)
	for _, want := range []string{"perfect 1", "partial 2", "missed 0", "streak 3"} {
		if !strings.Contains(out, want) {
			t.Errorf("legend %q missing %q", out, want)
		}
	}
}

func TestModelView(t *testing.T) {
	m := New()
	if got := m.View(); !strings.Contains(got, "Loading") {
		t.Errorf("empty view = %q", got)
	}
	m.SetError(errors.New("boom"))
	if got := m.View(); !strings.Contains(got, "boom") {
		t.Errorf("error view = %q", got)
	}
	m.SetRecords(records(models.RatingPerfect), "2026-03-01", 1)
	if got := m.View(); !strings.Contains(got, "streak 1") {
		t.Errorf("view = %q", got)
	}
}
