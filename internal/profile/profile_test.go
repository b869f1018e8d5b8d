package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/ritual/internal/models"
)

func TestLoadMissingFile(t *testing.T) {
	p, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff(Default(), p); diff != "" {
		t.Errorf("profile mismatch (-want +got):\n%s", diff)
	}
	if err := p.Validate(); err != nil {
		t.Errorf("default profile invalid: %v", err)
	}
}

func TestLoadPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	content := `
morning:
  - id: run
    label: Run 5k
identities:
  - {start: 0, end: 12, label: Early}
  - {start: 12, end: 24, label: Late}
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff([]models.Habit{{ID: "run", Label: "Run 5k"}}, p.Morning); diff != "" {
		t.Errorf("morning mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(models.DefaultEveningStack(), p.Evening); diff != "" {
		t.Errorf("evening should default (-want +got):\n%s", diff)
	}
	want := []models.HourRule{{StartHour: 0, EndHour: 12, Label: "Early"}, {StartHour: 12, EndHour: 24, Label: "Late"}}
	if diff := cmp.Diff(want, p.Identities); diff != "" {
		t.Errorf("identities mismatch (-want +got):\n%s", diff)
	}
	if err := p.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	if err := os.WriteFile(path, []byte("morning: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidateRejectsGaps(t *testing.T) {
	p := Default()
	p.Identities = []models.HourRule{{StartHour: 0, EndHour: 20, Label: "Day"}}
	if err := p.Validate(); err == nil {
		t.Error("expected uncovered hours to be rejected")
	}
}

func TestValidateRejectsSharedHabitID(t *testing.T) {
	p := Default()
	p.Evening = append(p.Evening, models.Habit{ID: "water", Label: "Drink water"})
	if err := p.Validate(); err == nil {
		t.Error("expected a habit id used in both stacks to be rejected")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "profile.yaml")
	p := Default()
	p.Placeholder = "Champ"
	if err := p.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(p, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestHabitLookup(t *testing.T) {
	p := Default()
	h, stack, ok := p.Habit("read")
	if !ok || stack != models.StackEvening || h.Label != "Read" {
		t.Errorf("Habit(read) = %+v, %q, %v", h, stack, ok)
	}
	if _, _, ok := p.Habit("missing"); ok {
		t.Error("expected missing habit lookup to fail")
	}
}
