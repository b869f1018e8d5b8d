package daystatus

import (
	"iter"
	"slices"
	"time"

	"github.com/julianstephens/ritual/internal/constants"
	"github.com/julianstephens/ritual/internal/logger"
	"github.com/julianstephens/ritual/internal/models"
	"github.com/julianstephens/ritual/internal/utils"
)

// BuildHistory merges summaries and reading logs into one record per local
// calendar day, ascending by date.
//
// Rows whose date cannot be normalized are skipped. A day with reading logs
// but no summary is rated partial. When several summaries share a day the one
// with the latest UpdatedAt wins, later rows breaking ties.
//
// The inputs are copied; each range over the result re-derives the same records.
func BuildHistory(summaries []models.SummaryRow, logs []models.ReadingLog, loc *time.Location) iter.Seq[models.DayRecord] {
	summaries = slices.Clone(summaries)
	logs = slices.Clone(logs)

	return func(yield func(models.DayRecord) bool) {
		for _, rec := range mergeHistory(summaries, logs, loc) {
			if !yield(rec) {
				return
			}
		}
	}
}

func mergeHistory(summaries []models.SummaryRow, logs []models.ReadingLog, loc *time.Location) []models.DayRecord {
	readingDays := make(map[string]bool)
	for _, l := range logs {
		day, err := utils.CanonicalDay(l.Date, loc)
		if err != nil {
			logger.Warn("Skipping reading log with malformed date", "id", l.ID, "date", l.Date, "error", err)
			continue
		}
		readingDays[day] = true
	}

	type keyed struct {
		day string
		row models.SummaryRow
	}
	latest := make(map[string]keyed)
	for _, row := range summaries {
		day, err := utils.CanonicalDay(row.Date, loc)
		if err != nil {
			logger.Warn("Skipping daily summary with malformed date", "id", row.ID, "date", row.Date, "error", err)
			continue
		}
		if prev, ok := latest[day]; ok && prev.row.UpdatedAt.After(row.UpdatedAt) {
			continue
		}
		latest[day] = keyed{day: day, row: row}
	}

	byDay := make(map[string]models.DayRecord, len(latest)+len(readingDays))
	for day, k := range latest {
		row := k.row
		row.Date = day
		rec, err := RecordFromSummary(row, readingDays[day], loc)
		if err != nil {
			// Unreachable for canonical days; kept so a bad row never aborts the merge.
			logger.Warn("Skipping daily summary", "id", row.ID, "error", err)
			continue
		}
		byDay[day] = rec
	}
	for day := range readingDays {
		if _, ok := byDay[day]; ok {
			continue
		}
		byDay[day] = Rated(models.DayRecord{Date: day, HasReadingLog: true})
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	slices.Sort(days)

	out := make([]models.DayRecord, 0, len(days))
	for _, day := range days {
		out = append(out, byDay[day])
	}
	return out
}

// Span lays history out over every day from startDay to endDay inclusive.
// Days absent from history become all-false records. Records outside the span
// are dropped.
func Span(history iter.Seq[models.DayRecord], startDay, endDay string) ([]models.DayRecord, error) {
	start, err := time.Parse(constants.DateFormat, startDay)
	if err != nil {
		return nil, err
	}
	end, err := time.Parse(constants.DateFormat, endDay)
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]models.DayRecord)
	for rec := range history {
		byDay[rec.Date] = rec
	}

	var out []models.DayRecord
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		day := d.Format(constants.DateFormat)
		if rec, ok := byDay[day]; ok {
			out = append(out, rec)
			continue
		}
		out = append(out, EmptyRecord(day))
	}
	return out, nil
}

// Streak counts consecutive non-missed days at the end of records.
func Streak(records []models.DayRecord) int {
	n := 0
	for i := len(records) - 1; i >= 0; i-- {
		if records[i].Rating == models.RatingMissed {
			break
		}
		n++
	}
	return n
}

// Tally counts records per rating.
func Tally(records []models.DayRecord) map[models.DayRating]int {
	counts := map[models.DayRating]int{
		models.RatingPerfect: 0,
		models.RatingPartial: 0,
		models.RatingMissed:  0,
	}
	for _, r := range records {
		counts[r.Rating]++
	}
	return counts
}
