package tracker

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/ritual/internal/daystatus"
	"github.com/julianstephens/ritual/internal/models"
	"github.com/julianstephens/ritual/internal/profile"
	"github.com/julianstephens/ritual/internal/storage"
	"github.com/julianstephens/ritual/internal/storage/sqlite"
)

func setupTracker(t *testing.T, now time.Time) (*Tracker, *sqlite.Store) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "ritual.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatal(err)
	}
	settings.Timezone = "UTC"
	if err := store.SaveSettings(settings); err != nil {
		t.Fatal(err)
	}
	return New(store, profile.Default(), WithClock(func() time.Time { return now })), store
}

func at(h, m int) time.Time {
	return time.Date(2026, 3, 2, h, m, 0, 0, time.UTC)
}

func TestSnapshotEmptyDay(t *testing.T) {
	tr, _ := setupTracker(t, at(5, 50))

	snap, err := tr.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if snap.Day != "2026-03-02" {
		t.Errorf("Day = %q", snap.Day)
	}
	if diff := cmp.Diff(daystatus.EmptyRecord("2026-03-02"), snap.Record); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}
	if !snap.Result.InWindow || snap.Result.State != models.WindowActive {
		t.Errorf("Result = %+v, want active", snap.Result)
	}
	if snap.Greeting != "Good Morning, Athlete" {
		t.Errorf("Greeting = %q", snap.Greeting)
	}
	if snap.MorningProgress != 0 || snap.EveningProgress != 0 {
		t.Errorf("progress = %d/%d, want 0/0", snap.MorningProgress, snap.EveningProgress)
	}
}

func TestClaimVictory(t *testing.T) {
	tr, store := setupTracker(t, at(6, 0))

	rec, _, err := tr.ClaimVictory()
	if err != nil {
		t.Fatalf("ClaimVictory() error = %v", err)
	}
	if !rec.WakeUpCompleted {
		t.Error("expected wake-up completed")
	}
	// Wake-up alone does not rate the day.
	if rec.Rating != models.RatingMissed {
		t.Errorf("Rating = %q, want missed", rec.Rating)
	}

	row, err := store.GetSummary("2026-03-02")
	if err != nil {
		t.Fatalf("GetSummary() error = %v", err)
	}
	if row.WakeUp == nil || !*row.WakeUp {
		t.Error("wake-up not persisted")
	}

	if _, _, err := tr.ClaimVictory(); !errors.Is(err, daystatus.ErrAlreadyClaimed) {
		t.Errorf("second claim error = %v, want ErrAlreadyClaimed", err)
	}
}

func TestClaimVictoryOutsideWindow(t *testing.T) {
	tr, store := setupTracker(t, at(7, 30))

	_, result, err := tr.ClaimVictory()
	if !errors.Is(err, daystatus.ErrOutsideWindow) {
		t.Fatalf("error = %v, want ErrOutsideWindow", err)
	}
	if result.State != models.WindowMissed {
		t.Errorf("State = %q, want missed", result.State)
	}
	if _, err := store.GetSummary("2026-03-02"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetSummary() error = %v, want ErrNotFound", err)
	}

	// Meeting mode moves the window to cover 07:30.
	if _, err := tr.SetMeetingMode(true); err != nil {
		t.Fatalf("SetMeetingMode() error = %v", err)
	}
	_, result, err = tr.ClaimVictory()
	if err != nil {
		t.Fatalf("ClaimVictory() in meeting mode error = %v", err)
	}
	if result.State != models.WindowFallback {
		t.Errorf("State = %q, want fallback", result.State)
	}
}

func TestToggleHabitCompletesStack(t *testing.T) {
	tr, _ := setupTracker(t, at(6, 30))

	var out daystatus.Outcome
	for _, h := range models.DefaultMorningStack() {
		var checked bool
		var err error
		out, checked, err = tr.ToggleHabit(h.ID)
		if err != nil {
			t.Fatalf("ToggleHabit(%s) error = %v", h.ID, err)
		}
		if !checked {
			t.Errorf("ToggleHabit(%s) checked = false", h.ID)
		}
	}
	if !out.Committed || !out.Record.MorningStackComplete {
		t.Fatalf("outcome = %+v, want committed morning stack", out)
	}
	if out.Record.Rating != models.RatingPartial {
		t.Errorf("Rating = %q, want partial", out.Record.Rating)
	}

	snap, err := tr.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	if snap.MorningProgress != 100 {
		t.Errorf("MorningProgress = %d, want 100", snap.MorningProgress)
	}

	// Unchecking one habit clears the stack flag again.
	out, checked, err := tr.ToggleHabit("water")
	if err != nil {
		t.Fatal(err)
	}
	if checked || out.Record.MorningStackComplete {
		t.Errorf("after untoggle checked=%v complete=%v", checked, out.Record.MorningStackComplete)
	}
	if out.Record.Rating != models.RatingMissed {
		t.Errorf("Rating = %q, want missed", out.Record.Rating)
	}
}

func TestToggleHabitUnknown(t *testing.T) {
	tr, _ := setupTracker(t, at(6, 30))
	if _, _, err := tr.ToggleHabit("nope"); err == nil {
		t.Error("expected error for unknown habit")
	}
}

type failingStore struct {
	storage.Provider
}

func (failingStore) UpsertSummary(models.SummaryRow) error {
	return errors.New("disk full")
}

func TestMutationRollsBackOnCommitFailure(t *testing.T) {
	tr, store := setupTracker(t, at(9, 0))
	if err := store.UpsertSummary(models.SummaryRow{
		ID: "s1", Date: "2026-03-02",
		MorningStack: models.BoolPtr(true), EveningStack: models.BoolPtr(false),
		UpdatedAt: at(8, 0),
	}); err != nil {
		t.Fatal(err)
	}

	tr.store = failingStore{store}
	out, err := tr.SetMeetingMode(true)
	if err == nil {
		t.Fatal("expected commit error")
	}
	if out.Committed || out.ReloadErr != nil {
		t.Errorf("outcome = %+v", out)
	}
	if out.Record.MeetingMode {
		t.Error("optimistic meeting mode survived a failed commit")
	}
	if !out.Record.MorningStackComplete || out.Record.Rating != models.RatingPartial {
		t.Errorf("reloaded record = %+v", out.Record)
	}
}

func TestToggleHabitUndoesCheckOnCommitFailure(t *testing.T) {
	tr, store := setupTracker(t, at(6, 30))
	tr.profile.Morning = []models.Habit{{ID: "water", Label: "Drink water"}}

	tr.store = failingStore{store}
	out, checked, err := tr.ToggleHabit("water")
	if err == nil {
		t.Fatal("expected commit error")
	}
	if checked || out.Committed || out.Record.MorningStackComplete {
		t.Errorf("checked=%v outcome=%+v, want nothing applied", checked, out)
	}

	tr.store = store
	checks, err := store.GetHabitChecks("2026-03-02")
	if err != nil {
		t.Fatal(err)
	}
	if len(checks) != 0 {
		t.Errorf("persisted checks = %+v, want none", checks)
	}
	snap, err := tr.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	if snap.MorningProgress != 0 || snap.Record.MorningStackComplete {
		t.Errorf("progress=%d complete=%v, want 0 and false", snap.MorningProgress, snap.Record.MorningStackComplete)
	}
}

func TestReadingsAffectHistory(t *testing.T) {
	tr, _ := setupTracker(t, at(20, 0))

	l, err := tr.AddReading("Dune", 2, "")
	if err != nil {
		t.Fatalf("AddReading() error = %v", err)
	}
	if _, err := tr.AddReading("", 1, ""); err == nil {
		t.Error("expected error for empty title")
	}

	records, now, err := tr.History(7)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(records) != 7 {
		t.Fatalf("len = %d, want 7", len(records))
	}
	last := records[6]
	if last.Date != "2026-03-02" || !last.HasReadingLog || last.Rating != models.RatingPartial {
		t.Errorf("today = %+v", last)
	}
	if got := CurrentStreak(records, now.Format("2006-01-02")); got != 1 {
		t.Errorf("CurrentStreak() = %d, want 1", got)
	}

	if err := tr.DeleteReading(l.ID); err != nil {
		t.Fatalf("DeleteReading() error = %v", err)
	}
	if err := tr.DeleteReading(l.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("second DeleteReading() error = %v, want ErrNotFound", err)
	}
}

func TestCurrentStreak(t *testing.T) {
	rec := func(day string, r models.DayRating) models.DayRecord {
		return models.DayRecord{Date: day, Rating: r}
	}
	records := []models.DayRecord{
		rec("2026-03-01", models.RatingMissed),
		rec("2026-03-02", models.RatingPerfect),
		rec("2026-03-03", models.RatingPartial),
		rec("2026-03-04", models.RatingMissed),
	}
	if got := CurrentStreak(records, "2026-03-04"); got != 2 {
		t.Errorf("unrated today: got %d, want 2", got)
	}
	if got := CurrentStreak(records, "2026-03-05"); got != 0 {
		t.Errorf("missed yesterday: got %d, want 0", got)
	}
}
