package habits

import (
	"errors"
	"fmt"

	"github.com/julianstephens/ritual/internal/cli"
	"github.com/julianstephens/ritual/internal/models"
)

type HabitCmd struct {
	List   HabitListCmd   `cmd:"" help:"List the habits in each stack."`
	Toggle HabitToggleCmd `cmd:"" help:"Check or uncheck a habit for today."`
	Today  HabitTodayCmd  `cmd:"" help:"Show today's stack progress." default:"1"`
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	prof := ctx.Tracker.Profile()
	for _, stack := range []models.Stack{models.StackMorning, models.StackEvening} {
		fmt.Printf("%s stack:\n", stack)
		habits := prof.Stack(stack)
		if len(habits) == 0 {
			fmt.Println("  (empty)")
		}
		for _, h := range habits {
			fmt.Printf("  %-14s %s\n", h.ID, h.Label)
		}
	}
	return nil
}

type HabitToggleCmd struct {
	ID string `arg:"" help:"Habit id (see 'ritual habit list')."`
}

func (c *HabitToggleCmd) Run(ctx *cli.Context) error {
	out, checked, err := ctx.Tracker.ToggleHabit(c.ID)
	if err != nil {
		if out.ReloadErr != nil {
			return errors.Join(err, out.ReloadErr)
		}
		return err
	}

	habit, stack, _ := ctx.Tracker.Profile().Habit(c.ID)
	if checked {
		fmt.Printf("✓ %s\n", habit.Label)
	} else {
		fmt.Printf("○ %s\n", habit.Label)
	}

	complete := out.Record.MorningStackComplete
	if stack == models.StackEvening {
		complete = out.Record.EveningStackComplete
	}
	if complete {
		fmt.Printf("%s stack complete.\n", stack)
	}
	return nil
}

type HabitTodayCmd struct{}

func (c *HabitTodayCmd) Run(ctx *cli.Context) error {
	snap, err := ctx.Tracker.Snapshot()
	if err != nil {
		return err
	}

	done := make(map[string]bool, len(snap.Checks))
	for _, ch := range snap.Checks {
		done[string(ch.Stack)+"/"+ch.HabitID] = true
	}

	prof := ctx.Tracker.Profile()
	for _, s := range []struct {
		stack    models.Stack
		progress int
	}{
		{models.StackMorning, snap.MorningProgress},
		{models.StackEvening, snap.EveningProgress},
	} {
		fmt.Printf("%s stack (%d%%):\n", s.stack, s.progress)
		for _, h := range prof.Stack(s.stack) {
			mark := "○"
			if done[string(s.stack)+"/"+h.ID] {
				mark = "✓"
			}
			fmt.Printf("  %s %s\n", mark, h.Label)
		}
	}
	return nil
}
