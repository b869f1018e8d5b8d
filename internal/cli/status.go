package cli

import (
	"errors"
	"fmt"

	"github.com/julianstephens/ritual/internal/daystatus"
	"github.com/julianstephens/ritual/internal/models"
)

type StatusCmd struct{}

func (c *StatusCmd) Run(ctx *Context) error {
	snap, err := ctx.Tracker.Snapshot()
	if err != nil {
		return err
	}

	fmt.Println(snap.Greeting)
	fmt.Printf("%s  %s\n\n", snap.Day, snap.Now.Format("15:04 MST"))

	mode := "primary"
	if snap.Record.MeetingMode {
		mode = "meeting (fallback)"
	}
	fmt.Printf("  Window:   %s  [%s]\n", snap.Window, mode)
	switch {
	case snap.Record.WakeUpCompleted:
		fmt.Println("  Victory:  claimed ✓")
	case snap.Result.InWindow:
		fmt.Printf("  Victory:  window open (%s), claim with 'ritual victory'\n", snap.Result.State)
	default:
		fmt.Printf("  Victory:  window closed, opens in %s\n", snap.Countdown)
	}
	fmt.Printf("  Morning:  %3d%%\n", snap.MorningProgress)
	fmt.Printf("  Evening:  %3d%%\n", snap.EveningProgress)
	fmt.Printf("  Reading:  %d session(s)\n", len(snap.Readings))
	fmt.Printf("\n  Today is rated: %s\n", snap.Record.Rating)
	return nil
}

type VictoryCmd struct{}

func (c *VictoryCmd) Run(ctx *Context) error {
	rec, result, err := ctx.Tracker.ClaimVictory()
	switch {
	case errors.Is(err, daystatus.ErrAlreadyClaimed):
		fmt.Println("Victory already claimed today.")
		return nil
	case errors.Is(err, daystatus.ErrOutsideWindow):
		return fmt.Errorf("%w: no victory recorded", err)
	case err != nil:
		return err
	}

	if result.State == models.WindowFallback {
		fmt.Println("✓ Victory claimed in the fallback window.")
	} else {
		fmt.Println("✓ Victory claimed.")
	}
	fmt.Printf("  Today is rated: %s\n", rec.Rating)
	return nil
}

type MeetingCmd struct {
	State string `arg:"" optional:"" enum:"on,off,toggle" default:"toggle" help:"on, off or toggle (default)."`
}

func (c *MeetingCmd) Run(ctx *Context) error {
	var on bool
	switch c.State {
	case "on":
		on = true
	case "off":
		on = false
	default:
		snap, err := ctx.Tracker.Snapshot()
		if err != nil {
			return err
		}
		on = !snap.Record.MeetingMode
	}

	out, err := ctx.Tracker.SetMeetingMode(on)
	if err != nil {
		if out.ReloadErr != nil {
			return errors.Join(err, out.ReloadErr)
		}
		return err
	}
	if out.Record.MeetingMode {
		fmt.Println("Meeting mode on: the fallback window applies today.")
	} else {
		fmt.Println("Meeting mode off: the primary window applies today.")
	}
	return nil
}
