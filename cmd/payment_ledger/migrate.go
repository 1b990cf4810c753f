package main

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/cobra"

	"github.com/SscSPs/customer_payment_service/internal/platform/config"
)

func migrateCmd() *cobra.Command {
	var down bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Long: `Apply every pending "up" migration, or roll back the most recent one.

Examples:
  payment_ledger migrate
  payment_ledger migrate --down`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, cfg, err := bootstrap()
			if err != nil {
				return err
			}
			if down {
				return rollbackMigration(cfg, logger)
			}
			return runMigrations(cfg, logger)
		},
	}
	cmd.Flags().BoolVar(&down, "down", false, "roll back the most recent migration")
	return cmd
}

// openMigrator opens a temporary database/sql connection through the pgx stdlib driver so the
// migrations run on the same driver as the application pool.
func openMigrator(cfg *config.Config) (*migrate.Migrate, func(), error) {
	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database connection for migrations: %w", err)
	}
	if err := migrationDB.Ping(); err != nil {
		_ = migrationDB.Close()
		return nil, nil, fmt.Errorf("failed to ping database for migrations: %w", err)
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		_ = migrationDB.Close()
		return nil, nil, fmt.Errorf("could not create postgres driver instance for migrations: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(cfg.MigrationsPath, "postgres", driver)
	if err != nil {
		_ = migrationDB.Close()
		return nil, nil, fmt.Errorf("could not create migrate instance: %w", err)
	}

	closeFn := func() {
		sourceErr, dbErr := m.Close()
		if sourceErr != nil {
			slog.Error("Migration source error", slog.String("error", sourceErr.Error()))
		}
		if dbErr != nil {
			slog.Error("Migration database error", slog.String("error", dbErr.Error()))
		}
	}
	return m, closeFn, nil
}

func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...", slog.String("source", cfg.MigrationsPath))
	m, closeFn, err := openMigrator(cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	logger.Info("Database migrations applied successfully.")
	return nil
}

func rollbackMigration(cfg *config.Config, logger *slog.Logger) error {
	m, closeFn, err := openMigrator(cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	if err := m.Steps(-1); err != nil {
		return fmt.Errorf("failed to roll back migration: %w", err)
	}
	version, dirty, _ := m.Version()
	logger.Info("Rolled back one migration", slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))
	return nil
}
