// Package history renders the day-rating grid shared by the dashboard and
// the history command.
package history

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/ritual/internal/daystatus"
	"github.com/julianstephens/ritual/internal/models"
)

const (
	perfectGlyph = "■"
	partialGlyph = "▣"
	missedGlyph  = "□"
	weekLength   = 7
)

var (
	perfectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	partialStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	missedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	todayStyle   = lipgloss.NewStyle().Underline(true)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Width(7)
	legendStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
)

// Cell returns the styled glyph for a rating.
func Cell(r models.DayRating) string {
	switch r {
	case models.RatingPerfect:
		return perfectStyle.Render(perfectGlyph)
	case models.RatingPartial:
		return partialStyle.Render(partialGlyph)
	default:
		return missedStyle.Render(missedGlyph)
	}
}

// Grid lays records out a week per row, oldest first. Each row is labelled
// with the date of its first day (MM-DD).
func Grid(records []models.DayRecord, today string) string {
	var b strings.Builder
	for start := 0; start < len(records); start += weekLength {
		end := min(start+weekLength, len(records))
		week := records[start:end]

		label := ""
		if d := week[0].Date; len(d) == len("2006-01-02") {
			label = d[5:]
		}
		b.WriteString(labelStyle.Render(label))

		cells := make([]string, len(week))
		for i, rec := range week {
			cell := Cell(rec.Rating)
			if rec.Date == today {
				cell = todayStyle.Render(cell)
			}
			cells[i] = cell
		}
		b.WriteString(strings.Join(cells, " "))
		b.WriteString("\n")
	}
	return b.String()
}

// Legend summarises the span: counts per rating and the current streak.
func Legend(records []models.DayRecord, streak int) string {
	t := daystatus.Tally(records)
	return legendStyle.Render(fmt.Sprintf("%s perfect %d  %s partial %d  %s missed %d  streak %d",
		perfectGlyph, t[models.RatingPerfect],
		partialGlyph, t[models.RatingPartial],
		missedGlyph, t[models.RatingMissed],
		streak))
}

type Model struct {
	records []models.DayRecord
	today   string
	streak  int
	err     error
}

func New() Model {
	return Model{}
}

func (m *Model) SetRecords(records []models.DayRecord, today string, streak int) {
	m.records = records
	m.today = today
	m.streak = streak
	m.err = nil
}

func (m *Model) SetError(err error) {
	m.err = err
}

func (m Model) Records() []models.DayRecord {
	return m.records
}

func (m Model) View() string {
	if m.err != nil {
		return fmt.Sprintf("Unable to load history: %v", m.err)
	}
	if len(m.records) == 0 {
		return "Loading history..."
	}
	return Grid(m.records, m.today) + "\n" + Legend(m.records, m.streak)
}
