// Package greeting maps the hour of an instant to an identity label and,
// separately, to a coarse time-of-day period. The two partitions are
// configured independently and may disagree at their edges.
package greeting

import (
	"fmt"
	"time"

	"github.com/julianstephens/ritual/internal/models"
)

// Resolve returns the label of the first identity rule containing now's hour,
// or placeholder when no rule matches.
func Resolve(now time.Time, rules []models.HourRule, placeholder string) string {
	return match(now.Hour(), rules, placeholder)
}

// Period returns the time-of-day label for now's hour from the period partition,
// or fallback when no rule matches.
func Period(now time.Time, rules []models.HourRule, fallback string) string {
	return match(now.Hour(), rules, fallback)
}

func match(hour int, rules []models.HourRule, fallback string) string {
	for _, r := range rules {
		if r.Matches(hour) {
			return r.Label
		}
	}
	return fallback
}

// Options configures Compose.
type Options struct {
	IdentityRules []models.HourRule
	PeriodRules   []models.HourRule
	Placeholder   string // identity when no rule matches
	NightLabel    string // period when no rule matches
	DisplayName   string // replaces Placeholder when set
}

// Compose renders "Good <period>, <identity>".
func Compose(now time.Time, opts Options) string {
	identity := Resolve(now, opts.IdentityRules, opts.Placeholder)
	if identity == opts.Placeholder && opts.DisplayName != "" {
		identity = opts.DisplayName
	}
	return fmt.Sprintf("Good %s, %s", Period(now, opts.PeriodRules, opts.NightLabel), identity)
}
