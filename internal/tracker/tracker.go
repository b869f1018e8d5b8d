// Package tracker ties the pure day-state core to a store and a profile.
// Both the CLI and the dashboard go through it, so a day is always read,
// rated and written the same way.
package tracker

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/ritual/internal/constants"
	"github.com/julianstephens/ritual/internal/daystatus"
	"github.com/julianstephens/ritual/internal/greeting"
	"github.com/julianstephens/ritual/internal/logger"
	"github.com/julianstephens/ritual/internal/models"
	"github.com/julianstephens/ritual/internal/profile"
	"github.com/julianstephens/ritual/internal/storage"
	"github.com/julianstephens/ritual/internal/utils"
	"github.com/julianstephens/ritual/internal/window"
)

type Tracker struct {
	store   storage.Provider
	profile *profile.Profile
	clock   func() time.Time
	newID   func() string
}

type Option func(*Tracker)

// WithClock replaces time.Now, for tests.
func WithClock(clock func() time.Time) Option {
	return func(t *Tracker) { t.clock = clock }
}

func New(store storage.Provider, prof *profile.Profile, opts ...Option) *Tracker {
	if prof == nil {
		prof = profile.Default()
	}
	t := &Tracker{
		store:   store,
		profile: prof,
		clock:   time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Tracker) Profile() *profile.Profile {
	return t.profile
}

func (t *Tracker) Store() storage.Provider {
	return t.store
}

// Settings returns stored settings with defaults filled in.
func (t *Tracker) Settings() (models.Settings, error) {
	settings, err := t.store.GetSettings()
	if err != nil {
		return models.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}
	models.ApplyDefaultSettings(&settings)
	return settings, nil
}

// Now captures one instant in the configured time zone. Every evaluation
// of a single refresh should share it.
func (t *Tracker) Now() (time.Time, models.Settings, error) {
	settings, err := t.Settings()
	if err != nil {
		return time.Time{}, models.Settings{}, err
	}
	now, err := utils.InTimezone(t.clock(), settings.Timezone)
	if err != nil {
		return time.Time{}, models.Settings{}, err
	}
	return now, settings, nil
}

func (t *Tracker) greetingOptions(settings models.Settings) greeting.Options {
	return greeting.Options{
		IdentityRules: t.profile.Identities,
		PeriodRules:   t.profile.Periods,
		Placeholder:   t.profile.Placeholder,
		NightLabel:    t.profile.Night,
		DisplayName:   settings.DisplayName,
	}
}

// Snapshot is everything the dashboard shows for today, evaluated at one instant.
type Snapshot struct {
	Now             time.Time
	Day             string
	Record          models.DayRecord
	Checks          []models.HabitCheck
	Readings        []models.ReadingLog
	Window          models.TimeWindow
	Result          models.WindowResult
	Countdown       models.Countdown
	Greeting        string
	Identity        string
	MorningProgress int
	EveningProgress int
}

func (t *Tracker) Snapshot() (Snapshot, error) {
	now, settings, err := t.Now()
	if err != nil {
		return Snapshot{}, err
	}
	cfg, err := settings.WindowConfig()
	if err != nil {
		return Snapshot{}, fmt.Errorf("invalid window settings: %w", err)
	}

	day := now.Format(constants.DateFormat)
	rec, err := t.LoadDay(day, now.Location())
	if err != nil {
		return Snapshot{}, err
	}
	checks, err := t.store.GetHabitChecks(day)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to get habit checks: %w", err)
	}
	readings, err := t.store.GetReadingLogs(day, day)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to get reading logs: %w", err)
	}

	opts := t.greetingOptions(settings)
	return Snapshot{
		Now:             now,
		Day:             day,
		Record:          rec,
		Checks:          checks,
		Readings:        readings,
		Window:          window.Select(rec.MeetingMode, cfg),
		Result:          window.Evaluate(now, rec.MeetingMode, cfg),
		Countdown:       window.TimeUntilNextOpen(now, rec.MeetingMode, cfg),
		Greeting:        greeting.Compose(now, opts),
		Identity:        greeting.Resolve(now, opts.IdentityRules, opts.Placeholder),
		MorningProgress: daystatus.Progress(models.StackMorning, t.profile.Morning, checks),
		EveningProgress: daystatus.Progress(models.StackEvening, t.profile.Evening, checks),
	}, nil
}

// history fetches and merges rows for [start, end], padded a day each side so
// timestamped rows that reproject across midnight are not lost.
func (t *Tracker) history(start, end time.Time, loc *time.Location) ([]models.DayRecord, error) {
	from := start.AddDate(0, 0, -1).Format(constants.DateFormat)
	to := end.AddDate(0, 0, 1).Format(constants.DateFormat)

	summaries, err := t.store.GetSummaries(from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily summaries: %w", err)
	}
	logs, err := t.store.GetReadingLogs(from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get reading logs: %w", err)
	}
	return daystatus.Span(daystatus.BuildHistory(summaries, logs, loc),
		start.Format(constants.DateFormat), end.Format(constants.DateFormat))
}

// LoadDay returns the authoritative record for day. A day with no data is all false.
func (t *Tracker) LoadDay(day string, loc *time.Location) (models.DayRecord, error) {
	d, err := utils.ParseDateInLocation(day, loc)
	if err != nil {
		return models.DayRecord{}, err
	}
	records, err := t.history(d, d, loc)
	if err != nil {
		return models.DayRecord{}, err
	}
	return records[0], nil
}

// History returns one record per day for the last days days, ending today.
func (t *Tracker) History(days int) ([]models.DayRecord, time.Time, error) {
	now, settings, err := t.Now()
	if err != nil {
		return nil, time.Time{}, err
	}
	if days <= 0 {
		days = settings.HistoryDays
	}
	today, err := utils.ParseDateInLocation(now.Format(constants.DateFormat), now.Location())
	if err != nil {
		return nil, time.Time{}, err
	}
	records, err := t.history(today.AddDate(0, 0, -(days-1)), today, now.Location())
	return records, now, err
}

// CurrentStreak counts the run of rated days ending today. An unrated today
// does not break a streak that ran through yesterday.
func CurrentStreak(records []models.DayRecord, today string) int {
	if n := len(records); n > 0 && records[n-1].Date == today && records[n-1].Rating == models.RatingMissed {
		records = records[:n-1]
	}
	return daystatus.Streak(records)
}

func (t *Tracker) commit(rec models.DayRecord) error {
	return t.store.UpsertSummary(daystatus.SummaryFromRecord(rec, t.newID(), t.clock()))
}

func (t *Tracker) mutate(day string, loc *time.Location, muts ...daystatus.Mutation) (daystatus.Outcome, error) {
	rec, err := t.LoadDay(day, loc)
	if err != nil {
		return daystatus.Outcome{}, err
	}
	out := daystatus.Reconcile(daystatus.Apply(rec, muts...), t.commit,
		func(day string) (models.DayRecord, error) { return t.LoadDay(day, loc) })
	return out, out.Err
}

// ToggleHabit flips one habit for today and re-derives that stack's flag.
func (t *Tracker) ToggleHabit(habitID string) (daystatus.Outcome, bool, error) {
	habit, stack, ok := t.profile.Habit(habitID)
	if !ok {
		return daystatus.Outcome{}, false, fmt.Errorf("unknown habit %q", habitID)
	}
	now, _, err := t.Now()
	if err != nil {
		return daystatus.Outcome{}, false, err
	}
	day := now.Format(constants.DateFormat)

	checks, err := t.store.GetHabitChecks(day)
	if err != nil {
		return daystatus.Outcome{}, false, fmt.Errorf("failed to get habit checks: %w", err)
	}
	check := models.HabitCheck{Date: day, HabitID: habit.ID, Stack: stack, CheckedAt: now}
	checks, checked := daystatus.ToggleCheck(checks, check)
	if err := t.store.SetHabitCheck(check, checked); err != nil {
		return daystatus.Outcome{}, false, fmt.Errorf("failed to save habit check: %w", err)
	}

	complete := daystatus.StackComplete(stack, t.profile.Stack(stack), checks)
	logger.Debug("Toggled habit", "habit", habit.ID, "stack", stack, "checked", checked, "complete", complete)
	out, err := t.mutate(day, now.Location(), daystatus.SetStackComplete(stack, complete))
	if err != nil {
		// The summary was not saved, so the check must not outlive it.
		if undoErr := t.store.SetHabitCheck(check, !checked); undoErr != nil {
			logger.Error("Failed to undo habit check", "habit", habit.ID, "error", undoErr)
			return out, !checked, errors.Join(err, fmt.Errorf("failed to undo habit check: %w", undoErr))
		}
		return out, !checked, err
	}
	return out, checked, nil
}

// SetMeetingMode switches today between the primary and fallback windows.
func (t *Tracker) SetMeetingMode(on bool) (daystatus.Outcome, error) {
	now, _, err := t.Now()
	if err != nil {
		return daystatus.Outcome{}, err
	}
	return t.mutate(now.Format(constants.DateFormat), now.Location(), daystatus.SetMeetingMode(on))
}

// ClaimVictory records today's wake-up if the active window is open.
func (t *Tracker) ClaimVictory() (models.DayRecord, models.WindowResult, error) {
	now, settings, err := t.Now()
	if err != nil {
		return models.DayRecord{}, models.WindowResult{}, err
	}
	cfg, err := settings.WindowConfig()
	if err != nil {
		return models.DayRecord{}, models.WindowResult{}, fmt.Errorf("invalid window settings: %w", err)
	}

	day := now.Format(constants.DateFormat)
	rec, err := t.LoadDay(day, now.Location())
	if err != nil {
		return models.DayRecord{}, models.WindowResult{}, err
	}
	result := window.Evaluate(now, rec.MeetingMode, cfg)

	claimed, err := daystatus.ClaimVictory(rec, result)
	if err != nil {
		return rec, result, err
	}
	if err := t.commit(claimed); err != nil {
		return rec, result, fmt.Errorf("failed to save victory: %w", err)
	}
	logger.Info("Victory claimed", "date", day, "state", result.State)
	return claimed, result, nil
}

// AddReading logs a reading session for today.
func (t *Tracker) AddReading(title string, chapters int, note string) (models.ReadingLog, error) {
	if title == "" {
		return models.ReadingLog{}, errors.New("book title cannot be empty")
	}
	if chapters < 0 {
		return models.ReadingLog{}, errors.New("chapters read cannot be negative")
	}
	now, _, err := t.Now()
	if err != nil {
		return models.ReadingLog{}, err
	}
	l := models.ReadingLog{
		ID:           t.newID(),
		Date:         now.Format(constants.DateFormat),
		BookTitle:    title,
		ChaptersRead: chapters,
		Note:         note,
		CreatedAt:    now,
	}
	if err := t.store.AddReadingLog(l); err != nil {
		return models.ReadingLog{}, err
	}
	return l, nil
}

func (t *Tracker) DeleteReading(id string) error {
	return t.store.DeleteReadingLog(id)
}

// Readings lists reading logs from the last days days.
func (t *Tracker) Readings(days int) ([]models.ReadingLog, error) {
	now, _, err := t.Now()
	if err != nil {
		return nil, err
	}
	if days <= 0 {
		days = 1
	}
	start := now.AddDate(0, 0, -(days - 1)).Format(constants.DateFormat)
	return t.store.GetReadingLogs(start, now.Format(constants.DateFormat))
}
