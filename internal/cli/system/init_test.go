package system

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/ritual/internal/cli"
	"github.com/julianstephens/ritual/internal/models"
	"github.com/julianstephens/ritual/internal/storage/sqlite"
)

func setupTestInitDB(t *testing.T) (*cli.Context, string) {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	store := sqlite.NewStore(dbPath)
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})
	return cli.NewContext(store, nil, filepath.Join(dir, "profile.yaml")), dbPath
}

func TestInitCmd_Success(t *testing.T) {
	ctx, dbPath := setupTestInitDB(t)

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("init command failed: %v", err)
	}
	if _, err := os.Stat(dbPath); err != nil {
		t.Errorf("database file was not created at %s: %v", dbPath, err)
	}
	if _, err := os.Stat(ctx.ProfilePath); err != nil {
		t.Errorf("default profile was not written: %v", err)
	}
}

func TestInitCmd_Idempotent(t *testing.T) {
	ctx, _ := setupTestInitDB(t)

	for i := range 2 {
		if err := (&InitCmd{}).Run(ctx); err != nil {
			t.Fatalf("init #%d failed: %v", i+1, err)
		}
	}
}

func TestInitCmd_ForceResets(t *testing.T) {
	ctx, _ := setupTestInitDB(t)
	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	settings := models.DefaultSettings()
	settings.DisplayName = "Sam"
	if err := ctx.Store.SaveSettings(settings); err != nil {
		t.Fatal(err)
	}

	if err := (&InitCmd{Force: true}).Run(ctx); err != nil {
		t.Fatalf("force init failed: %v", err)
	}
	got, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatal(err)
	}
	if got.DisplayName != "" {
		t.Errorf("DisplayName = %q after reset, want empty", got.DisplayName)
	}
}

func TestInitCmd_ForceRejectsSameSource(t *testing.T) {
	ctx, dbPath := setupTestInitDB(t)
	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if err := (&InitCmd{Force: true, Source: dbPath}).Run(ctx); err == nil {
		t.Error("expected error when source equals destination")
	}
}

func TestInitCmd_CopiesSource(t *testing.T) {
	srcPath := filepath.Join(t.TempDir(), "source.db")
	src := sqlite.NewStore(srcPath)
	if err := src.Init(); err != nil {
		t.Fatal(err)
	}
	updated := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	row := models.SummaryRow{
		ID: "s1", Date: "2026-03-01",
		MorningStack: models.BoolPtr(true), EveningStack: models.BoolPtr(false),
		WakeUp: models.BoolPtr(true), MeetingMode: models.BoolPtr(false),
		UpdatedAt: updated,
	}
	log := models.ReadingLog{ID: "r1", Date: "2026-03-01", BookTitle: "Dune", ChaptersRead: 2, CreatedAt: updated}
	check := models.HabitCheck{Date: "2026-03-01", HabitID: "water", Stack: models.StackMorning, CheckedAt: updated}
	for _, err := range []error{
		src.UpsertSummary(row),
		src.AddReadingLog(log),
		src.SetHabitCheck(check, true),
		src.Close(),
	} {
		if err != nil {
			t.Fatal(err)
		}
	}

	ctx, _ := setupTestInitDB(t)
	if err := (&InitCmd{Source: srcPath}).Run(ctx); err != nil {
		t.Fatalf("init with source failed: %v", err)
	}

	gotRow, err := ctx.Store.GetSummary("2026-03-01")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(row, gotRow); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}
	logs, err := ctx.Store.GetReadingLogs("2026-03-01", "2026-03-01")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]models.ReadingLog{log}, logs); diff != "" {
		t.Errorf("reading logs mismatch (-want +got):\n%s", diff)
	}
	checks, err := ctx.Store.GetHabitChecks("2026-03-01")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]models.HabitCheck{check}, checks); diff != "" {
		t.Errorf("habit checks mismatch (-want +got):\n%s", diff)
	}
}
