package greeting

import (
	"testing"
	"time"

	"github.com/julianstephens/ritual/internal/constants"
	"github.com/julianstephens/ritual/internal/models"
)

func atHour(h int) time.Time {
	return time.Date(2026, 2, 21, h, 30, 0, 0, time.UTC)
}

func TestResolve_DefaultRules(t *testing.T) {
	rules := models.DefaultIdentityRules()

	tests := []struct {
		hour int
		want string
	}{
		{0, "Recover"},
		{4, "Recover"},
		{5, "Athlete"},
		{7, "Athlete"},
		{8, "Builder"},
		{17, "Builder"},
		{18, "Reader"},
		{21, "Reader"},
		{22, "Recover"},
		{23, "Recover"},
	}

	for _, tt := range tests {
		if got := Resolve(atHour(tt.hour), rules, constants.PlaceholderIdentity); got != tt.want {
			t.Errorf("Resolve(hour %d) = %q, want %q", tt.hour, got, tt.want)
		}
	}
}

func TestResolve_NoMatchUsesPlaceholder(t *testing.T) {
	rules := []models.HourRule{{StartHour: 5, EndHour: 8, Label: "Athlete"}}

	if got := Resolve(atHour(4), rules, constants.PlaceholderIdentity); got != constants.PlaceholderIdentity {
		t.Errorf("Resolve(hour 4) = %q, want placeholder", got)
	}
	if got := Resolve(atHour(9), nil, "Pal"); got != "Pal" {
		t.Errorf("Resolve with no rules = %q, want Pal", got)
	}
}

func TestResolve_FirstMatchWins(t *testing.T) {
	rules := []models.HourRule{
		{StartHour: 5, EndHour: 10, Label: "First"},
		{StartHour: 6, EndHour: 8, Label: "Second"},
	}
	if got := Resolve(atHour(7), rules, ""); got != "First" {
		t.Errorf("Resolve() = %q, want First", got)
	}
}

func TestPeriod_DefaultRules(t *testing.T) {
	rules := models.DefaultPeriodRules()

	tests := []struct {
		hour int
		want string
	}{
		{4, "Night"},
		{5, "Morning"},
		{7, "Morning"},
		{11, "Morning"},
		{12, "Afternoon"},
		{16, "Afternoon"},
		{17, "Evening"},
		{21, "Evening"},
		{22, "Night"},
		{23, "Night"},
	}

	for _, tt := range tests {
		if got := Period(atHour(tt.hour), rules, constants.FallbackPeriod); got != tt.want {
			t.Errorf("Period(hour %d) = %q, want %q", tt.hour, got, tt.want)
		}
	}
}

func TestPartitionsAreIndependent(t *testing.T) {
	// At 17:xx the identity partition still says Builder while the period says Evening.
	now := atHour(17)
	if id := Resolve(now, models.DefaultIdentityRules(), ""); id != "Builder" {
		t.Errorf("identity = %q, want Builder", id)
	}
	if p := Period(now, models.DefaultPeriodRules(), constants.FallbackPeriod); p != "Evening" {
		t.Errorf("period = %q, want Evening", p)
	}
}

func TestCompose(t *testing.T) {
	opts := Options{
		IdentityRules: models.DefaultIdentityRules(),
		PeriodRules:   models.DefaultPeriodRules(),
		Placeholder:   constants.PlaceholderIdentity,
		NightLabel:    constants.FallbackPeriod,
	}

	if got := Compose(atHour(7), opts); got != "Good Morning, Athlete" {
		t.Errorf("Compose(07) = %q", got)
	}
	if got := Compose(atHour(2), opts); got != "Good Night, Recover" {
		t.Errorf("Compose(02) = %q", got)
	}

	opts.IdentityRules = nil
	opts.DisplayName = "Sam"
	if got := Compose(atHour(13), opts); got != "Good Afternoon, Sam" {
		t.Errorf("Compose with display name = %q", got)
	}
}
