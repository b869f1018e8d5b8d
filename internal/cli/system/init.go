package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/ritual/internal/cli"
	"github.com/julianstephens/ritual/internal/profile"
	"github.com/julianstephens/ritual/internal/storage"
	"github.com/julianstephens/ritual/internal/utils"
)

// The whole stored range; dates are compared by their first ten characters.
const (
	firstDay = "0000-01-01"
	lastDay  = "9999-12-31"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing database before initialization."`
	Source string `help:"Source database path or connection string to copy data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized ritual storage at: %s\n", ctx.Store.GetConfigPath())

	if ctx.ProfilePath != "" {
		if _, err := os.Stat(ctx.ProfilePath); os.IsNotExist(err) {
			if err := profile.Default().Save(ctx.ProfilePath); err != nil {
				return err
			}
			fmt.Printf("Wrote default profile to: %s\n", ctx.ProfilePath)
		}
	}

	if c.Source != "" {
		fmt.Printf("Copying data from: %s\n", c.Source)
		if err := c.copyData(ctx); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Println("Migration completed successfully!")
	}
	return nil
}

func (c *InitCmd) reset(ctx *cli.Context) error {
	dbPath := ctx.Store.GetConfigPath()
	if abs, err := filepath.Abs(dbPath); err == nil {
		dbPath = abs
	}
	if c.Source != "" {
		if src, err := utils.ExpandHome(c.Source); err == nil {
			if abs, err := filepath.Abs(src); err == nil && abs == dbPath {
				return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
			}
		}
	}

	_, err := os.Stat(dbPath)
	switch {
	case os.IsNotExist(err):
		return nil
	case err != nil:
		return fmt.Errorf("failed to access existing database: %w", err)
	}

	if err := ctx.Store.Close(); err != nil {
		return fmt.Errorf("failed to close existing database: %w", err)
	}
	for _, p := range []string{dbPath, dbPath + "-wal", dbPath + "-shm"} {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to delete existing database: %w", err)
		}
	}
	fmt.Printf("Deleted existing database at: %s\n", dbPath)
	return nil
}

func (c *InitCmd) copyData(ctx *cli.Context) error {
	source, err := cli.OpenStore(c.Source, cli.SourceFlag)
	if err != nil {
		return err
	}
	if err := source.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer source.Close()

	return copyStore(source, ctx.Store)
}

func copyStore(src, dst storage.Provider) error {
	fmt.Println("  Copying settings...")
	settings, err := src.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings from source: %w", err)
	}
	if err := dst.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings to destination: %w", err)
	}

	fmt.Println("  Copying daily summaries...")
	summaries, err := src.GetSummaries(firstDay, lastDay)
	if err != nil {
		return fmt.Errorf("failed to get summaries from source: %w", err)
	}
	days := make(map[string]bool)
	for _, row := range summaries {
		if err := dst.UpsertSummary(row); err != nil {
			return fmt.Errorf("failed to copy summary for %s: %w", row.Date, err)
		}
		if len(row.Date) >= len(firstDay) {
			days[row.Date[:len(firstDay)]] = true
		}
	}

	fmt.Println("  Copying reading logs...")
	logs, err := src.GetReadingLogs(firstDay, lastDay)
	if err != nil {
		return fmt.Errorf("failed to get reading logs from source: %w", err)
	}
	for _, l := range logs {
		if err := dst.AddReadingLog(l); err != nil {
			return fmt.Errorf("failed to copy reading log %s: %w", l.ID, err)
		}
	}

	fmt.Println("  Copying habit checks...")
	checked := 0
	for day := range days {
		checks, err := src.GetHabitChecks(day)
		if err != nil {
			return fmt.Errorf("failed to get habit checks for %s: %w", day, err)
		}
		for _, ch := range checks {
			if err := dst.SetHabitCheck(ch, true); err != nil {
				return fmt.Errorf("failed to copy habit check for %s: %w", day, err)
			}
			checked++
		}
	}

	fmt.Printf("  Copied %d summaries, %d reading logs and %d habit checks\n", len(summaries), len(logs), checked)
	return nil
}
