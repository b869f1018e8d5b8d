package models

// HourRule labels the half-open hour range [StartHour, EndHour).
type HourRule struct {
	StartHour int    `json:"start_hour" yaml:"start"`
	EndHour   int    `json:"end_hour" yaml:"end"`
	Label     string `json:"label" yaml:"label"`
}

// Matches reports whether hour falls in the rule's range.
func (r HourRule) Matches(hour int) bool {
	return hour >= r.StartHour && hour < r.EndHour
}

// DefaultIdentityRules partitions the whole day into identity labels.
func DefaultIdentityRules() []HourRule {
	return []HourRule{
		{StartHour: 0, EndHour: 5, Label: "Recover"},
		{StartHour: 5, EndHour: 8, Label: "Athlete"},
		{StartHour: 8, EndHour: 18, Label: "Builder"},
		{StartHour: 18, EndHour: 22, Label: "Reader"},
		{StartHour: 22, EndHour: 24, Label: "Recover"},
	}
}

// DefaultPeriodRules are the coarse time-of-day buckets used for the greeting prefix.
// Hours outside every rule are labelled constants.FallbackPeriod.
func DefaultPeriodRules() []HourRule {
	return []HourRule{
		{StartHour: 5, EndHour: 12, Label: "Morning"},
		{StartHour: 12, EndHour: 17, Label: "Afternoon"},
		{StartHour: 17, EndHour: 22, Label: "Evening"},
	}
}

// DefaultMorningStack and DefaultEveningStack are used when no profile is configured.
func DefaultMorningStack() []Habit {
	return []Habit{
		{ID: "water", Label: "Drink water"},
		{ID: "stretch", Label: "Stretch"},
		{ID: "journal", Label: "Journal"},
	}
}

func DefaultEveningStack() []Habit {
	return []Habit{
		{ID: "plan", Label: "Plan tomorrow"},
		{ID: "screens-off", Label: "Screens off"},
		{ID: "read", Label: "Read"},
	}
}
