package system

import (
	"fmt"

	"github.com/julianstephens/ritual/internal/cli"
)

type MigrateCmd struct {
	Status bool `help:"Show the schema version and pending migrations without applying them."`
}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	m, ok := ctx.Store.(cli.Migrator)
	if !ok {
		return fmt.Errorf("storage backend %T does not support migrations", ctx.Store)
	}
	defer ctx.Store.Close()

	if c.Status {
		st, err := m.MigrationStatus()
		if err != nil {
			return fmt.Errorf("failed to read migration status: %w", err)
		}
		fmt.Printf("Schema version: %d (latest %d)\n", st.Current, st.Latest)
		if len(st.Pending) == 0 {
			fmt.Println("No pending migrations.")
			return nil
		}
		fmt.Println("Pending migrations:")
		for _, p := range st.Pending {
			fmt.Printf("  %03d_%s\n", p.Version, p.Name)
		}
		return nil
	}

	count, err := m.Migrate(func(msg string) {
		fmt.Println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		fmt.Println("No migrations to apply. Database is up to date.")
	} else {
		fmt.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}
	return nil
}
