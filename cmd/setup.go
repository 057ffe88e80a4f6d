package main

import (
	"context"
	"fmt"

	"github.com/giuliopime/crossfade/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupConfig writes a starter configuration file.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("path")

	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}

	return r.writePlainln("Created %s. Fill in the credentials for the platforms you use.", path)
}

// SetupDatabase initializes the SQLite database and applies migrations.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.openStore(); err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}

	return r.writePlainln("Database ready at %s", r.config.Database.Path)
}

// SetupRollback rolls back the most recently applied migration.
func (r *Runner) SetupRollback(ctx context.Context, cmd *cli.Command) error {
	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := shared.RollbackMigration(db); err != nil {
		return err
	}

	return r.writePlainln("Rolled back the latest migration")
}
