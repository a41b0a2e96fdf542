// Package migrate implements the `nodal migrate` cobra command group:
// up, down, and status against the MySQL schema (spec.md §9 "Migrations").
package migrate

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"nodal/internal/infrastructure/config"
	"nodal/internal/infrastructure/database"
	"nodal/internal/infrastructure/persistence/migrations"
	applogger "nodal/internal/shared/logger"
)

const defaultScriptsPath = "internal/infrastructure/persistence/migrations/scripts"

var (
	scriptsPath string
	steps       int
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  "Apply, roll back, or inspect the status of nodal's versioned SQL migrations.",
	}
	cmd.PersistentFlags().StringVar(&scriptsPath, "scripts", defaultScriptsPath, "path to the migration scripts directory")

	cmd.AddCommand(newUpCommand(), newDownCommand(), newStatusCommand())
	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE:  runUp,
	}
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE:  runDown,
	}
	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "number of migrations to roll back")
	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current migration version",
		RunE:  runStatus,
	}
}

func connect() (*migrations.Migrator, *sql.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	applogger.Init(applogger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("unwrap sql.DB: %w", err)
	}

	return migrations.NewMigrator(scriptsPath), sqlDB, nil
}

func runUp(cmd *cobra.Command, args []string) error {
	m, sqlDB, err := connect()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	log := applogger.Get()
	log.Info("running migrations up", "scripts", scriptsPath)

	if err := m.Up(sqlDB); err != nil {
		log.Error("migration failed", "error", err)
		return err
	}
	log.Info("migrations applied successfully")
	return nil
}

func runDown(cmd *cobra.Command, args []string) error {
	m, sqlDB, err := connect()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	log := applogger.Get()
	log.Info("rolling back migrations", "steps", steps)

	if err := m.Down(sqlDB, steps); err != nil {
		log.Error("rollback failed", "error", err)
		return err
	}
	log.Info("rollback completed successfully")
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	m, sqlDB, err := connect()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	version, dirty, err := m.Version(sqlDB)
	if err != nil {
		return fmt.Errorf("read migration version: %w", err)
	}

	fmt.Printf("current version: %d\n", version)
	fmt.Printf("dirty: %v\n", dirty)
	return nil
}
