package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/listenr/internal/repositories"
	"github.com/desertthunder/listenr/internal/shared"
)

// Setup writes the example config when none exists and migrates the database.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	if _, err := shared.LoadConfig(r.configPath); errors.Is(err, shared.ErrMissingConfig) {
		r.logger.Info("config file not found, creating from template", "path", r.configPath)
		if err := shared.CreateConfigFile(r.configPath); err != nil {
			return err
		}
		r.writePlain("✓ Wrote %s\n", r.configPath)
	} else if err != nil {
		return err
	}

	r.logger.Info("initializing database", "path", r.config.Database.Path)
	db, err := shared.OpenDatabase(r.config.Database)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}
	defer db.Close()

	keys, err := repositories.NewMetadataRepository(db).Keys(ctx)
	if err != nil {
		return err
	}

	r.writePlain("✓ Database ready at %s (%d stored keys)\n", r.config.Database.Path, len(keys))
	return nil
}
