package daystatus

import (
	"fmt"

	"github.com/julianstephens/ritual/internal/logger"
	"github.com/julianstephens/ritual/internal/models"
)

// Mutation is a pure edit applied to a day record.
type Mutation func(models.DayRecord) models.DayRecord

func SetMeetingMode(on bool) Mutation {
	return func(r models.DayRecord) models.DayRecord {
		r.MeetingMode = on
		return r
	}
}

func SetStackComplete(stack models.Stack, done bool) Mutation {
	return func(r models.DayRecord) models.DayRecord {
		switch stack {
		case models.StackMorning:
			r.MorningStackComplete = done
		case models.StackEvening:
			r.EveningStackComplete = done
		}
		return r
	}
}

func SetReadingLog(has bool) Mutation {
	return func(r models.DayRecord) models.DayRecord {
		r.HasReadingLog = has
		return r
	}
}

// Candidate pairs the state before an edit with the optimistic state after it.
type Candidate struct {
	Previous models.DayRecord
	Next     models.DayRecord
}

// Apply runs the mutations in order and re-derives the rating.
func Apply(rec models.DayRecord, muts ...Mutation) Candidate {
	next := rec
	for _, m := range muts {
		next = m(next)
	}
	return Candidate{Previous: rec, Next: Rated(next)}
}

// Outcome is the state to display once a candidate has been committed or rolled back.
type Outcome struct {
	Record    models.DayRecord
	Committed bool
	// Err is the commit error, if any.
	Err error
	// ReloadErr is set when the authoritative reload also failed; Record is then Previous.
	ReloadErr error
}

// Reconcile commits the candidate. On failure the authoritative record is
// reloaded for the same day and returned in place of the optimistic one.
func Reconcile(c Candidate, commit func(models.DayRecord) error, reload func(day string) (models.DayRecord, error)) Outcome {
	err := commit(c.Next)
	if err == nil {
		return Outcome{Record: c.Next, Committed: true}
	}

	logger.Warn("Optimistic update failed, reloading", "date", c.Next.Date, "error", err)
	out := Outcome{Err: fmt.Errorf("failed to save day %s: %w", c.Next.Date, err)}

	rec, rerr := reload(c.Next.Date)
	if rerr != nil {
		out.ReloadErr = fmt.Errorf("failed to reload day %s: %w", c.Next.Date, rerr)
		out.Record = c.Previous
		return out
	}
	out.Record = rec
	return out
}
