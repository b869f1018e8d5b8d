package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/ritual/internal/cli"
	"github.com/julianstephens/ritual/internal/cli/backups"
	"github.com/julianstephens/ritual/internal/cli/habits"
	"github.com/julianstephens/ritual/internal/cli/readings"
	"github.com/julianstephens/ritual/internal/cli/settings"
	"github.com/julianstephens/ritual/internal/cli/system"
	"github.com/julianstephens/ritual/internal/constants"
	rerrors "github.com/julianstephens/ritual/internal/errors"
	"github.com/julianstephens/ritual/internal/logger"
	"github.com/julianstephens/ritual/internal/profile"
	"github.com/julianstephens/ritual/internal/storage/sqlite"
	"github.com/julianstephens/ritual/internal/utils"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"SQLite path or PostgreSQL connection string. PostgreSQL passwords belong in the OS keyring or RITUAL_DB_CONNECTION, not here." type:"string" default:"${defaultConfig}"`
	Profile string `help:"Habit and greeting profile (YAML)." type:"string" default:"${defaultProfile}"`
	Debug   bool   `help:"Log debug output to stderr."`

	Init     system.InitCmd       `cmd:"" help:"Initialize ritual storage."`
	Migrate  system.MigrateCmd    `cmd:"" help:"Run database migrations."`
	Doctor   system.DoctorCmd     `cmd:"" help:"Run health checks and diagnostics."`
	Tui      system.TuiCmd        `cmd:"" help:"Launch the dashboard." default:"1"`
	Status   cli.StatusCmd        `cmd:"" help:"Show today's window, stacks and rating."`
	Victory  cli.VictoryCmd       `cmd:"" help:"Claim today's wake-up victory."`
	Meeting  cli.MeetingCmd       `cmd:"" help:"Switch today to the fallback window."`
	History  cli.HistoryCmd       `cmd:"" help:"Show the day-rating grid."`
	Habit    habits.HabitCmd      `cmd:"" help:"Check off stack habits."`
	Read     readings.ReadCmd     `cmd:"" help:"Log reading sessions."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
	Backup   backups.BackupCmd    `cmd:"" help:"Manage database backups."`
	Keyring  system.KeyringCmd    `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
}

// Commands that open the store themselves.
var selfLoading = map[string]bool{
	"init":    true,
	"migrate": true,
	"doctor":  true,
	"keyring": true,
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Morning-victory and habit-stack dashboard"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":        constants.Version,
			"defaultConfig":  constants.DefaultConfigPath,
			"defaultProfile": constants.DefaultProfilePath,
		},
	)

	config, source := cli.ResolveConfig(CLI.Config)
	store, err := cli.OpenStore(config, source)
	if err != nil {
		rerrors.Fatal(err)
	}

	configDir, err := utils.ExpandHome(filepath.Dir(constants.DefaultConfigPath))
	if err != nil {
		rerrors.Fatal(err)
	}
	if _, ok := store.(*sqlite.Store); ok {
		configDir = filepath.Dir(store.GetConfigPath())
	}
	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: configDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}
	logger.Debug("Starting", "version", constants.Version, "storage", source)

	profilePath, err := utils.ExpandHome(CLI.Profile)
	if err != nil {
		rerrors.Fatal(err)
	}
	prof, err := profile.Load(profilePath)
	if err != nil {
		rerrors.Fatal(err)
	}

	command := strings.Fields(ctx.Command())[0]
	if !selfLoading[command] {
		if err := prof.Validate(); err != nil {
			rerrors.Fatal(rerrors.WithHint(err, "fix "+profilePath+" or run 'ritual doctor'"))
		}
	}

	appCtx := cli.NewContext(store, prof, profilePath)
	defer store.Close()

	if !selfLoading[command] {
		if err := appCtx.Load(); err != nil {
			rerrors.Fatal(err)
		}
	} else if command == "migrate" {
		if err := store.Load(); err != nil {
			rerrors.Fatal(err)
		}
	}

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		rerrors.Fatal(err)
	}
}
