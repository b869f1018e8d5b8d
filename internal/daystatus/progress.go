package daystatus

import "github.com/julianstephens/ritual/internal/models"

func checkedSet(stack models.Stack, checks []models.HabitCheck) map[string]bool {
	set := make(map[string]bool, len(checks))
	for _, c := range checks {
		if c.Stack == stack {
			set[c.HabitID] = true
		}
	}
	return set
}

// Progress returns the whole percentage of habits in the stack checked off.
// Checks for habits no longer in the list are ignored. An empty list is 0%.
func Progress(stack models.Stack, habits []models.Habit, checks []models.HabitCheck) int {
	if len(habits) == 0 {
		return 0
	}
	done := checkedSet(stack, checks)
	n := 0
	for _, h := range habits {
		if done[h.ID] {
			n++
		}
	}
	return n * 100 / len(habits)
}

// StackComplete reports whether every habit in a non-empty list is checked.
func StackComplete(stack models.Stack, habits []models.Habit, checks []models.HabitCheck) bool {
	return len(habits) > 0 && Progress(stack, habits, checks) == 100
}

// WithStacks returns a copy of rec whose stack flags reflect checks.
func WithStacks(rec models.DayRecord, morning, evening []models.Habit, checks []models.HabitCheck) models.DayRecord {
	rec.MorningStackComplete = StackComplete(models.StackMorning, morning, checks)
	rec.EveningStackComplete = StackComplete(models.StackEvening, evening, checks)
	return Rated(rec)
}

// ToggleCheck adds or removes the check for habitID, returning a new slice.
func ToggleCheck(checks []models.HabitCheck, check models.HabitCheck) ([]models.HabitCheck, bool) {
	out := make([]models.HabitCheck, 0, len(checks)+1)
	removed := false
	for _, c := range checks {
		if c.Stack == check.Stack && c.HabitID == check.HabitID {
			removed = true
			continue
		}
		out = append(out, c)
	}
	if removed {
		return out, false
	}
	return append(out, check), true
}
