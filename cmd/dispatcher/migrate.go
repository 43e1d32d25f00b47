package main

import (
	"fmt"

	"github.com/shenikar/incident_dispatch/pkg/postgres"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	var (
		down bool
		dir  string
	)
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			log.WithField("down", down).Info("Running database migrations...")
			if err := postgres.Migrate(cfg.DatabaseURL, dir, down); err != nil {
				return err
			}
			log.Info("Database migrations applied successfully")
			return nil
		},
	}
	cmd.Flags().BoolVar(&down, "down", false, "roll back all migrations")
	cmd.Flags().StringVar(&dir, "dir", "migrations", "directory with migration files")
	return cmd
}
