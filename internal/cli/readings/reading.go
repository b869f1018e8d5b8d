package readings

import (
	"errors"
	"fmt"

	"github.com/julianstephens/ritual/internal/cli"
	"github.com/julianstephens/ritual/internal/storage"
)

type ReadCmd struct {
	Add    ReadAddCmd    `cmd:"" help:"Log a reading session for today."`
	List   ReadListCmd   `cmd:"" help:"List recent reading sessions." default:"1"`
	Delete ReadDeleteCmd `cmd:"" help:"Delete a reading session."`
}

type ReadAddCmd struct {
	Title    string `arg:"" help:"Book title."`
	Chapters int    `help:"Chapters read." short:"c" default:"1"`
	Note     string `help:"Optional note." short:"n"`
}

func (c *ReadAddCmd) Run(ctx *cli.Context) error {
	l, err := ctx.Tracker.AddReading(c.Title, c.Chapters, c.Note)
	if err != nil {
		return err
	}
	fmt.Printf("Logged %d chapter(s) of %s (%s)\n", l.ChaptersRead, l.BookTitle, l.ID)
	return nil
}

type ReadListCmd struct {
	Days int `help:"How many days back to list." default:"7"`
}

func (c *ReadListCmd) Run(ctx *cli.Context) error {
	logs, err := ctx.Tracker.Readings(c.Days)
	if err != nil {
		return err
	}
	if len(logs) == 0 {
		fmt.Println("No reading sessions found.")
		return nil
	}
	for _, l := range logs {
		fmt.Printf("%s  %-30s %2d ch  %s\n", l.Date, l.BookTitle, l.ChaptersRead, l.ID)
		if l.Note != "" {
			fmt.Printf("            %s\n", l.Note)
		}
	}
	return nil
}

type ReadDeleteCmd struct {
	ID string `arg:"" help:"Reading session id."`
}

func (c *ReadDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Tracker.DeleteReading(c.ID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("reading session %q not found", c.ID)
		}
		return err
	}
	fmt.Println("Reading session deleted.")
	return nil
}
