package daystatus

import (
	"slices"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/ritual/internal/models"
)

func TestBuildHistoryMerge(t *testing.T) {
	loc := time.FixedZone("EST", -5*60*60)
	summaries := []models.SummaryRow{
		{ID: "s2", Date: "2026-02-22", MorningStack: models.BoolPtr(true), EveningStack: models.BoolPtr(true)},
		{ID: "s1", Date: "2026-02-20", MorningStack: models.BoolPtr(true), WakeUp: models.BoolPtr(true)},
	}
	logs := []models.ReadingLog{
		// 23:50 local on the 21st
		{ID: "r1", Date: "2026-02-22T04:50:00Z", BookTitle: "Dune"},
		{ID: "r2", Date: "2026-02-20", BookTitle: "Dune"},
	}

	got := slices.Collect(BuildHistory(summaries, logs, loc))
	want := []models.DayRecord{
		{Date: "2026-02-20", MorningStackComplete: true, WakeUpCompleted: true, HasReadingLog: true, Rating: models.RatingPartial},
		{Date: "2026-02-21", HasReadingLog: true, Rating: models.RatingPartial},
		{Date: "2026-02-22", MorningStackComplete: true, EveningStackComplete: true, Rating: models.RatingPerfect},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("BuildHistory() mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildHistoryReadingOnly(t *testing.T) {
	got := slices.Collect(BuildHistory(nil, []models.ReadingLog{{ID: "r", Date: "2026-03-01"}}, time.UTC))
	want := []models.DayRecord{{Date: "2026-03-01", HasReadingLog: true, Rating: models.RatingPartial}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildHistoryEmpty(t *testing.T) {
	if got := slices.Collect(BuildHistory(nil, nil, time.UTC)); len(got) != 0 {
		t.Errorf("expected empty history, got %v", got)
	}
}

func TestBuildHistorySkipsMalformed(t *testing.T) {
	summaries := []models.SummaryRow{
		{ID: "bad", Date: "not a date", MorningStack: models.BoolPtr(true)},
		{ID: "ok", Date: "2026-02-20", EveningStack: models.BoolPtr(true)},
	}
	logs := []models.ReadingLog{{ID: "bad", Date: "02/20/2026"}}

	got := slices.Collect(BuildHistory(summaries, logs, time.UTC))
	want := []models.DayRecord{{Date: "2026-02-20", EveningStackComplete: true, Rating: models.RatingPartial}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildHistoryDuplicateSummaries(t *testing.T) {
	early := time.Date(2026, 2, 20, 6, 0, 0, 0, time.UTC)
	late := early.Add(time.Hour)
	summaries := []models.SummaryRow{
		{ID: "new", Date: "2026-02-20", MorningStack: models.BoolPtr(true), EveningStack: models.BoolPtr(true), UpdatedAt: late},
		{ID: "old", Date: "2026-02-20T06:00:00Z", MorningStack: models.BoolPtr(false), UpdatedAt: early},
	}
	got := slices.Collect(BuildHistory(summaries, nil, time.UTC))
	if len(got) != 1 {
		t.Fatalf("expected one record, got %d", len(got))
	}
	if got[0].Rating != models.RatingPerfect {
		t.Errorf("Rating = %q, want perfect from the newer row", got[0].Rating)
	}
}

func TestBuildHistoryRestartable(t *testing.T) {
	summaries := []models.SummaryRow{
		{ID: "a", Date: "2026-02-21", MorningStack: models.BoolPtr(true)},
		{ID: "b", Date: "2026-02-19"},
	}
	logs := []models.ReadingLog{{ID: "r", Date: "2026-02-20"}}
	seq := BuildHistory(summaries, logs, time.UTC)

	first := slices.Collect(seq)
	// Mutating the caller's slices must not leak into the sequence.
	summaries[0].MorningStack = models.BoolPtr(false)
	logs[0].Date = "2026-01-01"
	second := slices.Collect(seq)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second iteration differs (-first +second):\n%s", diff)
	}
	if !slices.IsSortedFunc(first, func(a, b models.DayRecord) int {
		switch {
		case a.Date < b.Date:
			return -1
		case a.Date > b.Date:
			return 1
		}
		return 0
	}) {
		t.Errorf("history not ascending: %v", first)
	}
}

func TestBuildHistoryEarlyStop(t *testing.T) {
	logs := []models.ReadingLog{{Date: "2026-02-20"}, {Date: "2026-02-21"}, {Date: "2026-02-22"}}
	n := 0
	for range BuildHistory(nil, logs, time.UTC) {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Errorf("iterated %d records, want 2", n)
	}
}

func TestBuildHistoryIdempotentRating(t *testing.T) {
	summaries := []models.SummaryRow{
		{ID: "a", Date: "2026-02-20", MorningStack: models.BoolPtr(true)},
		{ID: "b", Date: "2026-02-21", DayRating: strPtr("perfect")},
	}
	for rec := range BuildHistory(summaries, nil, time.UTC) {
		if rec.MorningStackComplete || rec.EveningStackComplete || rec.HasReadingLog {
			if rec.Rating != DeriveDayRating(rec) {
				t.Errorf("%s: rating %q not derived from flags", rec.Date, rec.Rating)
			}
		}
	}
}

func TestSpan(t *testing.T) {
	history := BuildHistory([]models.SummaryRow{
		{Date: "2026-02-18", MorningStack: models.BoolPtr(true)},
		{Date: "2026-02-20", MorningStack: models.BoolPtr(true), EveningStack: models.BoolPtr(true)},
		{Date: "2026-02-25", MorningStack: models.BoolPtr(true)},
	}, nil, time.UTC)

	got, err := Span(history, "2026-02-19", "2026-02-21")
	if err != nil {
		t.Fatal(err)
	}
	want := []models.DayRecord{
		{Date: "2026-02-19", Rating: models.RatingMissed},
		{Date: "2026-02-20", MorningStackComplete: true, EveningStackComplete: true, Rating: models.RatingPerfect},
		{Date: "2026-02-21", Rating: models.RatingMissed},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Span() mismatch (-want +got):\n%s", diff)
	}

	if _, err := Span(history, "bad", "2026-02-21"); err == nil {
		t.Error("expected error for bad start day")
	}
}

func TestStreakAndTally(t *testing.T) {
	records := []models.DayRecord{
		{Rating: models.RatingPerfect},
		{Rating: models.RatingMissed},
		{Rating: models.RatingPartial},
		{Rating: models.RatingPerfect},
	}
	if got := Streak(records); got != 2 {
		t.Errorf("Streak() = %d, want 2", got)
	}
	if got := Streak(nil); got != 0 {
		t.Errorf("Streak(nil) = %d, want 0", got)
	}

	want := map[models.DayRating]int{
		models.RatingPerfect: 2,
		models.RatingPartial: 1,
		models.RatingMissed:  1,
	}
	if diff := cmp.Diff(want, Tally(records)); diff != "" {
		t.Errorf("Tally() mismatch (-want +got):\n%s", diff)
	}
}
