package postgres

import (
	"os"
	"testing"
	"time"

	"github.com/julianstephens/ritual/internal/models"
)

// Set POSTGRES_TEST_URL to run, e.g.
// POSTGRES_TEST_URL="postgres://ritual@localhost:5432/ritual_test?sslmode=disable"
func TestStore_Integration(t *testing.T) {
	connStr := os.Getenv("POSTGRES_TEST_URL")
	if connStr == "" {
		t.Skip("POSTGRES_TEST_URL not set, skipping PostgreSQL integration test")
	}

	store := New(connStr)
	if err := store.Init(); err != nil {
		t.Fatalf("Failed to initialize store: %v", err)
	}
	defer store.Close()

	t.Run("Settings", func(t *testing.T) {
		settings, err := store.GetSettings()
		if err != nil {
			t.Fatalf("Failed to get settings: %v", err)
		}
		if settings.PrimaryStart == "" || settings.TickIntervalSec == 0 {
			t.Errorf("defaults not applied: %+v", settings)
		}
	})

	t.Run("Summaries", func(t *testing.T) {
		day := time.Now().Format("2006-01-02")
		row := models.SummaryRow{
			ID:           "it-" + day,
			Date:         day,
			MorningStack: models.BoolPtr(true),
			UpdatedAt:    time.Now().UTC().Truncate(time.Second),
		}
		if err := store.UpsertSummary(row); err != nil {
			t.Fatalf("UpsertSummary: %v", err)
		}
		got, err := store.GetSummary(day)
		if err != nil {
			t.Fatalf("GetSummary: %v", err)
		}
		if got.Date != day || got.MorningStack == nil || !*got.MorningStack || got.EveningStack != nil {
			t.Errorf("unexpected row %+v", got)
		}
	})
}
