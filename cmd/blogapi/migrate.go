package main

import (
	"context"

	"github.com/ErlanBelekov/blog-api/config"
	"github.com/ErlanBelekov/blog-api/internal/infrastructure/postgres"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
}

func migrateAction(step func(*postgres.Migrator, context.Context) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		return migrate(cmd.Context(), cfg.DatabaseURL, step)
	}
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE:  migrateAction((*postgres.Migrator).Up),
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the most recent migration",
	RunE:  migrateAction((*postgres.Migrator).Down),
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the status of every migration",
	RunE:  migrateAction((*postgres.Migrator).Status),
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateStatusCmd)
}

func migrate(ctx context.Context, databaseURL string, step func(*postgres.Migrator, context.Context) error) error {
	m, err := postgres.NewMigrator(databaseURL)
	if err != nil {
		return err
	}
	defer func() { _ = m.Close() }()
	return step(m, ctx)
}
