package main

import (
	"context"
	"errors"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/portfolio/backend/internal/config"
	"github.com/portfolio/backend/internal/logging"
)

func main() {
	_ = godotenv.Load("../.env")
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("failed to load config", "error", err)
	}
	logging.Setup(cfg.LogLevel)

	if err := newRootCmd(cfg.DatabaseURL).Execute(); err != nil {
		logging.Fatal("migrate failed", "error", err)
	}
}

// newRootCmd builds the CLI against the same database the server uses.
func newRootCmd(databaseURL string) *cobra.Command {
	var dir string

	withMigrator := func(run func(ctx context.Context, m *migrator) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, _ []string) error {
			if databaseURL == "" {
				return errors.New("DATABASE_URL is not set")
			}
			ctx := cmd.Context()
			pool, err := pgxpool.New(ctx, databaseURL)
			if err != nil {
				return err
			}
			defer pool.Close()
			return run(ctx, &migrator{db: pool, dir: dir})
		}
	}

	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Apply pending contact_submissions schema migrations",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: withMigrator(func(ctx context.Context, m *migrator) error {
			_, err := m.incremental(ctx)
			return err
		}),
	}
	root.PersistentFlags().StringVar(&dir, "dir", findMigrationDir(), "directory holding *.up.sql files")

	root.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Drop all tables and recreate them from 000_consolidated.sql",
		RunE: withMigrator(func(ctx context.Context, m *migrator) error {
			if err := m.dropAll(ctx); err != nil {
				return err
			}
			return m.consolidated(ctx)
		}),
	})
	root.AddCommand(&cobra.Command{
		Use:   "fresh",
		Short: "Drop all tables and apply every migration in order",
		RunE: withMigrator(func(ctx context.Context, m *migrator) error {
			if err := m.dropAll(ctx); err != nil {
				return err
			}
			_, err := m.incremental(ctx)
			return err
		}),
	})
	return root
}

func findMigrationDir() string {
	dir := "migrations"
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		dir = "../migrations"
	}
	return dir
}
