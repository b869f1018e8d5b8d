package validation

import (
	"fmt"
	"strings"

	"github.com/julianstephens/ritual/internal/models"
)

// ConflictType represents the type of configuration problem
type ConflictType string

const (
	ConflictWindowOrder      ConflictType = "window_order"
	ConflictHourOutOfRange   ConflictType = "hour_out_of_range"
	ConflictHourUncovered    ConflictType = "hour_uncovered"
	ConflictHourOverlap      ConflictType = "hour_overlap"
	ConflictEmptyLabel       ConflictType = "empty_label"
	ConflictMissingHabitID   ConflictType = "missing_habit_id"
	ConflictDuplicateHabitID ConflictType = "duplicate_habit_id"
	ConflictEmptyStack       ConflictType = "empty_stack"
	ConflictSharedHabitID    ConflictType = "shared_habit_id"
)

// Conflict is a single detected problem
type Conflict struct {
	Type        ConflictType
	Description string
	Items       []string
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

func (vr *ValidationResult) add(t ConflictType, items []string, format string, args ...any) {
	vr.Conflicts = append(vr.Conflicts, Conflict{
		Type:        t,
		Description: fmt.Sprintf(format, args...),
		Items:       items,
	})
}

func (vr *ValidationResult) merge(other ValidationResult) {
	vr.Conflicts = append(vr.Conflicts, other.Conflicts...)
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d conflict(s):\n", len(vr.Conflicts))
	for _, c := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", c.Description)
	}
	return b.String()
}

// Err returns the report as an error, or nil when there are no conflicts.
func (vr *ValidationResult) Err() error {
	if !vr.HasConflicts() {
		return nil
	}
	return fmt.Errorf("invalid configuration: %s", strings.TrimSpace(vr.FormatReport()))
}

// Validator checks window, partition and habit configuration
type Validator struct{}

func New() *Validator {
	return &Validator{}
}

// ValidateWindowConfig checks that neither window spans midnight.
func (v *Validator) ValidateWindowConfig(cfg models.WindowConfig) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}
	for _, w := range []struct {
		name   string
		window models.TimeWindow
	}{
		{"primary", cfg.Primary},
		{"fallback", cfg.Fallback},
	} {
		if w.window.Start.SinceMidnight() > w.window.End.SinceMidnight() {
			result.add(ConflictWindowOrder, []string{w.name},
				"%s window %s starts after it ends", w.name, w.window)
		}
	}
	return result
}

// ValidateHourPartition checks that rules cover every hour 0-23 exactly once.
// When partial is set, uncovered hours are allowed but overlaps are not.
func (v *Validator) ValidateHourPartition(name string, rules []models.HourRule, partial bool) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}
	var owner [24]string

	for i, r := range rules {
		label := r.Label
		if strings.TrimSpace(label) == "" {
			label = fmt.Sprintf("rule %d", i+1)
			result.add(ConflictEmptyLabel, []string{label}, "%s: %s has an empty label", name, label)
		}
		if r.StartHour < 0 || r.EndHour > 24 || r.StartHour >= r.EndHour {
			result.add(ConflictHourOutOfRange, []string{label},
				"%s: %q has invalid range %d-%d", name, label, r.StartHour, r.EndHour)
			continue
		}
		for h := r.StartHour; h < r.EndHour; h++ {
			if owner[h] != "" {
				result.add(ConflictHourOverlap, []string{owner[h], label},
					"%s: hour %d is claimed by both %q and %q", name, h, owner[h], label)
				continue
			}
			owner[h] = label
		}
	}

	if partial {
		return result
	}
	for h, label := range owner {
		if label == "" {
			result.add(ConflictHourUncovered, nil, "%s: hour %d is not covered by any rule", name, h)
		}
	}
	return result
}

// ValidateHabits checks a stack's habit list for missing and repeated ids.
func (v *Validator) ValidateHabits(stack models.Stack, habits []models.Habit) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}
	if len(habits) == 0 {
		result.add(ConflictEmptyStack, []string{string(stack)}, "%s stack has no habits", stack)
		return result
	}

	seen := make(map[string]bool, len(habits))
	for i, h := range habits {
		if strings.TrimSpace(h.ID) == "" {
			result.add(ConflictMissingHabitID, []string{h.Label},
				"%s stack: habit %d (%q) has no id", stack, i+1, h.Label)
			continue
		}
		if seen[h.ID] {
			result.add(ConflictDuplicateHabitID, []string{h.ID},
				"%s stack: duplicate habit id %q", stack, h.ID)
			continue
		}
		seen[h.ID] = true
	}
	return result
}

// ValidateStacks checks that no habit id appears in both stacks, since
// habits are looked up by id alone.
func (v *Validator) ValidateStacks(morning, evening []models.Habit) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}
	inMorning := make(map[string]bool, len(morning))
	for _, h := range morning {
		inMorning[h.ID] = true
	}
	for _, h := range evening {
		if h.ID != "" && inMorning[h.ID] {
			result.add(ConflictSharedHabitID, []string{h.ID},
				"habit id %q is used in both the morning and evening stacks", h.ID)
		}
	}
	return result
}

// ValidateAll runs every check. The identity partition must be complete;
// the period partition may leave hours to the fallback label.
func (v *Validator) ValidateAll(cfg models.WindowConfig, identities, periods []models.HourRule, morning, evening []models.Habit) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}
	result.merge(v.ValidateWindowConfig(cfg))
	result.merge(v.ValidateHourPartition("identities", identities, false))
	result.merge(v.ValidateHourPartition("periods", periods, true))
	result.merge(v.ValidateHabits(models.StackMorning, morning))
	result.merge(v.ValidateHabits(models.StackEvening, evening))
	result.merge(v.ValidateStacks(morning, evening))
	return result
}
