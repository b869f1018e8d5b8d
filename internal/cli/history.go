package cli

import (
	"fmt"

	"github.com/julianstephens/ritual/internal/constants"
	"github.com/julianstephens/ritual/internal/tracker"
	"github.com/julianstephens/ritual/internal/tui/components/history"
)

type HistoryCmd struct {
	Days int `help:"Number of days to show (default: history_days setting)." default:"0"`
}

func (c *HistoryCmd) Run(ctx *Context) error {
	if c.Days < 0 {
		return fmt.Errorf("--days must be positive")
	}
	records, now, err := ctx.Tracker.History(c.Days)
	if err != nil {
		return err
	}

	today := now.Format(constants.DateFormat)
	fmt.Printf("Last %d days:\n\n", len(records))
	fmt.Print(history.Grid(records, today))
	fmt.Println()
	fmt.Println(history.Legend(records, tracker.CurrentStreak(records, today)))
	return nil
}
