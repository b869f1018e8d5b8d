package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/ritual/internal/backup"
	"github.com/julianstephens/ritual/internal/constants"
	rerrors "github.com/julianstephens/ritual/internal/errors"
	"github.com/julianstephens/ritual/internal/keyring"
	"github.com/julianstephens/ritual/internal/logger"
	"github.com/julianstephens/ritual/internal/migration"
	"github.com/julianstephens/ritual/internal/profile"
	"github.com/julianstephens/ritual/internal/storage"
	"github.com/julianstephens/ritual/internal/storage/postgres"
	"github.com/julianstephens/ritual/internal/storage/sqlite"
	"github.com/julianstephens/ritual/internal/tracker"
	"github.com/julianstephens/ritual/internal/utils"
)

type Context struct {
	Store       storage.Provider
	Tracker     *tracker.Tracker
	ProfilePath string
}

func NewContext(store storage.Provider, prof *profile.Profile, profilePath string) *Context {
	return &Context{
		Store:       store,
		Tracker:     tracker.New(store, prof),
		ProfilePath: profilePath,
	}
}

// Migrator is implemented by stores that carry a versioned schema.
type Migrator interface {
	Migrate(logFn func(string)) (int, error)
	MigrationStatus() (migration.Status, error)
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// Load opens the store and refuses to run against a schema with pending migrations.
func (c *Context) Load() error {
	if err := c.Store.Load(); err != nil {
		return err
	}
	m, ok := c.Store.(Migrator)
	if !ok {
		return nil
	}
	st, err := m.MigrationStatus()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if len(st.Pending) > 0 {
		return rerrors.WithHint(
			fmt.Errorf("database schema is at version %d, latest is %d", st.Current, st.Latest),
			"run 'ritual migrate' to upgrade")
	}
	return nil
}

// Source names where the storage location came from.
type Source string

const (
	SourceEnv     Source = "environment"
	SourceKeyring Source = "keyring"
	SourceFlag    Source = "flag"
)

// ResolveConfig picks the storage location. The environment wins, then a
// keyring entry when --config was left at its default, then the flag itself.
func ResolveConfig(config string) (string, Source) {
	if v := os.Getenv(constants.EnvDBConnection); v != "" {
		return v, SourceEnv
	}
	if config == constants.DefaultConfigPath {
		connStr, err := keyring.GetConnectionString()
		switch {
		case err == nil:
			return connStr, SourceKeyring
		case !errors.Is(err, keyring.ErrNotFound):
			logger.Debug("Keyring lookup failed", "error", err)
		}
	}
	return config, SourceFlag
}

// OpenStore builds the provider for a resolved location. Passwords are only
// accepted from the keyring or the environment.
func OpenStore(config string, source Source) (storage.Provider, error) {
	if postgres.IsConnString(config) {
		if err := postgres.ValidateConnString(config); err != nil {
			if !errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, err
			}
			if source == SourceFlag {
				return nil, rerrors.WithHint(err,
					"store it with 'ritual keyring set' or export "+constants.EnvDBConnection+" instead")
			}
		}
		return postgres.New(config), nil
	}

	path, err := utils.ExpandHome(config)
	if err != nil {
		return nil, err
	}
	return sqlite.NewStore(path), nil
}
