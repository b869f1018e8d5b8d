package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/ritual/internal/constants"
	"github.com/julianstephens/ritual/internal/models"
	"github.com/julianstephens/ritual/internal/profile"
	"github.com/julianstephens/ritual/internal/storage/sqlite"
	"github.com/julianstephens/ritual/internal/tracker"
	"github.com/julianstephens/ritual/internal/tui/components/today"
)

func setupModel(t *testing.T) Model {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "ritual.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })

	settings := models.DefaultSettings()
	settings.Timezone = "UTC"
	if err := store.SaveSettings(settings); err != nil {
		t.Fatal(err)
	}
	now := time.Date(2026, 3, 2, 6, 0, 0, 0, time.UTC)
	tr := tracker.New(store, profile.Default(), tracker.WithClock(func() time.Time { return now }))
	return NewModel(tr)
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTickRearmsOnlyOnToday(t *testing.T) {
	m := setupModel(t)

	if _, cmd := update(t, m, tickMsg{id: m.tickID}); cmd == nil {
		t.Fatal("current tick on Today should re-arm")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.state != constants.StateHistory {
		t.Fatalf("state = %v, want history", m.state)
	}
	if _, cmd := update(t, m, tickMsg{id: 0}); cmd != nil {
		t.Error("stale tick re-armed after leaving Today")
	}
	if _, cmd := update(t, m, tickMsg{id: m.tickID}); cmd != nil {
		t.Error("tick re-armed while Today is hidden")
	}

	// Back on Today a new generation starts; the old id stays dead.
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.state != constants.StateToday {
		t.Fatalf("state = %v, want today", m.state)
	}
	if _, cmd := update(t, m, tickMsg{id: 0}); cmd != nil {
		t.Error("tick from an earlier generation re-armed")
	}
	if _, cmd := update(t, m, tickMsg{id: m.tickID}); cmd == nil {
		t.Error("current tick should re-arm")
	}
}

func TestHistoryLastWriteWins(t *testing.T) {
	m := setupModel(t)
	m.historyReq = 2

	older := []models.DayRecord{{Date: "2026-03-01", Rating: models.RatingPerfect}}
	newer := []models.DayRecord{
		{Date: "2026-03-01", Rating: models.RatingMissed},
		{Date: "2026-03-02", Rating: models.RatingMissed},
	}

	m, _ = update(t, m, historyMsg{req: 2, records: newer, today: "2026-03-02"})
	m, _ = update(t, m, historyMsg{req: 1, records: older, today: "2026-03-02"})

	if got := len(m.historyModel.Records()); got != 2 {
		t.Errorf("history has %d records, want the newer response's 2", got)
	}
}

func TestSnapshotAndToggle(t *testing.T) {
	m := setupModel(t)

	msg := m.loadSnapshot()()
	m, _ = update(t, m, msg)
	if m.err != nil {
		t.Fatalf("snapshot error = %v", m.err)
	}
	if got := m.todayModel.Snapshot().Day; got != "2026-03-02" {
		t.Errorf("snapshot day = %q", got)
	}
	if got := len(m.todayModel.Items()); got != 6 {
		t.Errorf("checklist has %d items, want 6", got)
	}

	_, cmd := update(t, m, today.ToggleHabitMsg{ID: "water"})
	if cmd == nil {
		t.Fatal("toggle produced no command")
	}
	out := cmd()
	res, ok := out.(actionMsg)
	if !ok {
		t.Fatalf("toggle command returned %T", out)
	}
	if res.err != nil || res.status != "Checked water" {
		t.Errorf("toggle result = %+v", res)
	}
}

func TestVictoryKey(t *testing.T) {
	m := setupModel(t)

	_, cmd := update(t, m, runes("v"))
	if cmd == nil {
		t.Fatal("v produced no command")
	}
	res := cmd().(actionMsg)
	if res.err != nil || res.status != "Victory claimed!" {
		t.Errorf("first claim = %+v", res)
	}

	_, cmd = update(t, m, runes("v"))
	res = cmd().(actionMsg)
	if res.status != "Victory already claimed today" {
		t.Errorf("second claim = %+v", res)
	}
}

func TestReadingFormEscape(t *testing.T) {
	m := setupModel(t)
	m.state = constants.StateReadings

	m.openReadingForm()
	if m.state != constants.StateAddReading || m.form == nil {
		t.Fatalf("form not opened: state=%v", m.state)
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != constants.StateReadings || m.form != nil {
		t.Errorf("escape left state=%v form=%v", m.state, m.form != nil)
	}
}

func TestConfirmDeleteCancel(t *testing.T) {
	m := setupModel(t)
	m.state = constants.StateReadings

	m.pendingDeleteID = "r1"
	m.previousState = m.state
	m.state = constants.StateConfirmDelete

	m, cmd := update(t, m, runes("n"))
	if cmd != nil {
		t.Error("cancel should not issue a delete")
	}
	if m.state != constants.StateReadings || m.pendingDeleteID != "" {
		t.Errorf("after cancel state=%v pending=%q", m.state, m.pendingDeleteID)
	}
}

func TestConfirmDeleteView(t *testing.T) {
	m := setupModel(t)
	m.previousState = constants.StateReadings
	m.state = constants.StateConfirmDelete
	m.pendingDeleteID = "r1"
	m.pendingTitle = "Meditations"

	view := m.View()
	for _, want := range []string{"Today", "History", "Readings", "Delete reading session?", "Meditations", "y to delete"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
}
