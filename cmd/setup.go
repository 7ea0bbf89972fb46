package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"vitrine/internal/shared"
)

func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize the database, run migrations and apply the demo seed",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.BoolFlag{
				Name:  "skip-seed",
				Usage: "Skip the one-time demo seed",
			},
		},
		Action: r.Setup,
	}
}

// Setup initializes the database and runs migrations, creating a config
// file from the embedded template when none exists.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if _, err := os.Stat(configPath); err == nil {
		if config, err := shared.LoadConfig(configPath); err == nil {
			r.config = config
		} else {
			r.logger.Warn("failed to load config, using defaults", "error", err)
		}
	} else {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
		} else if config, err := shared.LoadConfig(configPath); err == nil {
			r.config = config
		}
	}
	if fromEnv := os.Getenv("DB_FILE"); fromEnv != "" {
		r.config.Database.Path = fromEnv
	}

	r.logger.Info("initializing database", "path", r.config.Database.Path)

	s, err := r.openStore()
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}
	defer r.closeStore(s)

	if !s.Available() {
		return fmt.Errorf("%w: setup needs a reachable database", shared.ErrStoreUnavailable)
	}

	if !cmd.Bool("skip-seed") {
		if err := s.SeedDemo(); err != nil {
			return fmt.Errorf("failed to apply demo seed: %w", err)
		}
	}

	r.logger.Infof("setup complete for database: %v", r.config.Database.Path)
	return nil
}
