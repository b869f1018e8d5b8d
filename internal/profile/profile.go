// Package profile loads the user's habit stacks and greeting partitions from YAML.
package profile

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/ritual/internal/constants"
	"github.com/julianstephens/ritual/internal/models"
	"github.com/julianstephens/ritual/internal/validation"
)

// Profile is the on-disk shape:
//
//	morning:
//	  - {id: water, label: Drink water}
//	evening:
//	  - {id: read, label: Read}
//	identities:
//	  - {start: 0, end: 5, label: Recover}
//	periods:
//	  - {start: 5, end: 12, label: Morning}
//	placeholder: Friend
//	night: Night
type Profile struct {
	Morning     []models.Habit    `yaml:"morning"`
	Evening     []models.Habit    `yaml:"evening"`
	Identities  []models.HourRule `yaml:"identities"`
	Periods     []models.HourRule `yaml:"periods"`
	Placeholder string            `yaml:"placeholder"`
	Night       string            `yaml:"night"`
}

func Default() *Profile {
	return &Profile{
		Morning:     models.DefaultMorningStack(),
		Evening:     models.DefaultEveningStack(),
		Identities:  models.DefaultIdentityRules(),
		Periods:     models.DefaultPeriodRules(),
		Placeholder: constants.PlaceholderIdentity,
		Night:       constants.FallbackPeriod,
	}
}

// Load reads path, filling any omitted section with its default.
// A missing file yields the defaults.
func Load(path string) (*Profile, error) {
	p := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return p, nil
		}
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	var file Profile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse profile %s: %w", path, err)
	}
	p.merge(file)

	return p, nil
}

func (p *Profile) merge(o Profile) {
	if len(o.Morning) > 0 {
		p.Morning = o.Morning
	}
	if len(o.Evening) > 0 {
		p.Evening = o.Evening
	}
	if len(o.Identities) > 0 {
		p.Identities = o.Identities
	}
	if len(o.Periods) > 0 {
		p.Periods = o.Periods
	}
	if o.Placeholder != "" {
		p.Placeholder = o.Placeholder
	}
	if o.Night != "" {
		p.Night = o.Night
	}
}

// Validate checks the stacks and partitions.
func (p *Profile) Validate() error {
	v := validation.New()
	result := validation.ValidationResult{}
	for _, r := range []validation.ValidationResult{
		v.ValidateHourPartition("identities", p.Identities, false),
		v.ValidateHourPartition("periods", p.Periods, true),
		v.ValidateHabits(models.StackMorning, p.Morning),
		v.ValidateHabits(models.StackEvening, p.Evening),
		v.ValidateStacks(p.Morning, p.Evening),
	} {
		result.Conflicts = append(result.Conflicts, r.Conflicts...)
	}
	return result.Err()
}

// Stack returns the habit list for s.
func (p *Profile) Stack(s models.Stack) []models.Habit {
	if s == models.StackEvening {
		return p.Evening
	}
	return p.Morning
}

// Habit finds a habit by id in either stack.
func (p *Profile) Habit(id string) (models.Habit, models.Stack, bool) {
	for _, s := range []models.Stack{models.StackMorning, models.StackEvening} {
		for _, h := range p.Stack(s) {
			if h.ID == id {
				return h, s, true
			}
		}
	}
	return models.Habit{}, "", false
}

// Save writes the profile as YAML, creating the directory if needed.
func (p *Profile) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create profile directory: %w", err)
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}
	return nil
}
