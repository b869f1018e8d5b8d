package settings

import (
	"fmt"

	"github.com/julianstephens/ritual/internal/cli"
	"github.com/julianstephens/ritual/internal/utils"
	"github.com/julianstephens/ritual/internal/validation"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Timezone      *string `help:"IANA timezone name, or Local."`
	DisplayName   *string `help:"Name used in the greeting when no identity applies."`
	PrimaryStart  *string `help:"Primary window start (HH:MM)."`
	PrimaryEnd    *string `help:"Primary window end (HH:MM)."`
	FallbackStart *string `help:"Fallback window start (HH:MM)."`
	FallbackEnd   *string `help:"Fallback window end (HH:MM)."`
	TickInterval  *int    `help:"Dashboard refresh interval in seconds."`
	HistoryDays   *int    `help:"Days shown in the history grid."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Tracker.Settings()
	if err != nil {
		return err
	}

	if c.List {
		fmt.Println("Current Settings:")
		fmt.Printf("  Timezone:          %s\n", settings.Timezone)
		fmt.Printf("  Display Name:      %s\n", settings.DisplayName)
		fmt.Printf("  Primary Window:    %s–%s\n", settings.PrimaryStart, settings.PrimaryEnd)
		fmt.Printf("  Fallback Window:   %s–%s\n", settings.FallbackStart, settings.FallbackEnd)
		fmt.Printf("  Tick Interval:     %ds\n", settings.TickIntervalSec)
		fmt.Printf("  History Days:      %d\n", settings.HistoryDays)
		return nil
	}

	updated := false
	for _, f := range []struct {
		flag *string
		dst  *string
	}{
		{c.Timezone, &settings.Timezone},
		{c.DisplayName, &settings.DisplayName},
		{c.PrimaryStart, &settings.PrimaryStart},
		{c.PrimaryEnd, &settings.PrimaryEnd},
		{c.FallbackStart, &settings.FallbackStart},
		{c.FallbackEnd, &settings.FallbackEnd},
	} {
		if f.flag != nil {
			*f.dst = *f.flag
			updated = true
		}
	}
	if c.TickInterval != nil {
		if *c.TickInterval <= 0 {
			return fmt.Errorf("tick interval must be positive")
		}
		settings.TickIntervalSec = *c.TickInterval
		updated = true
	}
	if c.HistoryDays != nil {
		if *c.HistoryDays <= 0 {
			return fmt.Errorf("history days must be positive")
		}
		settings.HistoryDays = *c.HistoryDays
		updated = true
	}

	if !updated {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}

	if !utils.ValidateTimezone(settings.Timezone) {
		return fmt.Errorf("invalid timezone %q", settings.Timezone)
	}
	cfg, err := settings.WindowConfig()
	if err != nil {
		return err
	}
	if result := validation.New().ValidateWindowConfig(cfg); result.HasConflicts() {
		return result.Err()
	}

	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Println("Settings updated successfully.")
	return nil
}
