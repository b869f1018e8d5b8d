package system

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/ritual/internal/backup"
	"github.com/julianstephens/ritual/internal/cli"
	"github.com/julianstephens/ritual/internal/storage/sqlite"
	"github.com/julianstephens/ritual/internal/utils"
	"github.com/julianstephens/ritual/internal/validation"
)

type DoctorCmd struct{}

type check struct {
	name     string
	needsDB  bool
	warnOnly bool
	run      func(*cli.Context) error
}

var checks = []check{
	{name: "Database reachable", run: checkDBReachable},
	{name: "Migrations complete", needsDB: true, run: checkMigrationsComplete},
	{name: "Settings valid", needsDB: true, run: checkSettings},
	{name: "Profile valid", run: checkProfile},
	{name: "Clock/timezone", needsDB: true, run: checkClockTimezone},
	{name: "Backups present", warnOnly: true, run: checkBackupsPresent},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	failed := 0
	dbReachable := false
	for i, c := range checks {
		if c.needsDB && !dbReachable {
			fmt.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", c.name)
			if i == 0 {
				dbReachable = true
			}
		case c.warnOnly:
			fmt.Printf("⚠ %s: WARNING\n", c.name)
			fmt.Printf("   %v\n", err)
		default:
			fmt.Printf("❌ %s: FAIL\n", c.name)
			fmt.Printf("   Error: %v\n", err)
			failed++
		}
	}

	fmt.Println()
	if failed > 0 {
		return fmt.Errorf("%d check(s) failed", failed)
	}
	fmt.Println("All checks passed.")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	return ctx.Store.Load()
}

func checkMigrationsComplete(ctx *cli.Context) error {
	m, ok := ctx.Store.(cli.Migrator)
	if !ok {
		return nil
	}
	st, err := m.MigrationStatus()
	if err != nil {
		return err
	}
	if len(st.Pending) > 0 {
		return fmt.Errorf("%d pending migration(s), run 'ritual migrate'", len(st.Pending))
	}
	return nil
}

func checkSettings(ctx *cli.Context) error {
	settings, err := ctx.Tracker.Settings()
	if err != nil {
		return err
	}
	if !utils.ValidateTimezone(settings.Timezone) {
		return fmt.Errorf("invalid timezone %q", settings.Timezone)
	}
	cfg, err := settings.WindowConfig()
	if err != nil {
		return err
	}
	result := validation.New().ValidateWindowConfig(cfg)
	return result.Err()
}

func checkProfile(ctx *cli.Context) error {
	return ctx.Tracker.Profile().Validate()
}

func checkClockTimezone(ctx *cli.Context) error {
	now, _, err := ctx.Tracker.Now()
	if err != nil {
		return err
	}
	if now.Year() < 2000 {
		return fmt.Errorf("system clock looks wrong: %s", now.Format(time.RFC3339))
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*sqlite.Store); !ok {
		return nil
	}
	backups, err := backup.NewManager(ctx.Store.GetConfigPath()).ListBackups()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return errors.New("no backups found, create one with 'ritual backup create'")
	}
	if age := time.Since(backups[0].Timestamp); age > 7*24*time.Hour {
		return fmt.Errorf("latest backup is %d days old", int(age.Hours()/24))
	}
	return nil
}
