// Package migrations wraps golang-migrate so schema changes are
// version-controlled SQL files instead of GORM AutoMigrate against
// production databases (spec.md §9 "Migrations").
package migrations

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	applogger "nodal/internal/shared/logger"
)

// Migrator runs versioned SQL migrations against MySQL. Sqlite-backed
// integration tests bypass this and call gorm.AutoMigrate directly against
// an in-memory database instead (see database/testdb.go).
type Migrator struct {
	scriptsPath string
}

func NewMigrator(scriptsPath string) *Migrator {
	return &Migrator{scriptsPath: scriptsPath}
}

func (m *Migrator) Up(sqlDB *sql.DB) error {
	inst, err := m.newMigrate(sqlDB)
	if err != nil {
		return err
	}
	defer inst.Close()

	version, dirty, err := inst.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("read migration version: %w", err)
	}
	if dirty {
		return fmt.Errorf("database is dirty at version %d, fix manually before migrating", version)
	}

	if err := inst.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}

	final, _, _ := inst.Version()
	applogger.Get().Info("migrations applied", "from_version", version, "to_version", final)
	return nil
}

func (m *Migrator) Down(sqlDB *sql.DB, steps int) error {
	inst, err := m.newMigrate(sqlDB)
	if err != nil {
		return err
	}
	defer inst.Close()

	if err := inst.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run down migrations: %w", err)
	}
	return nil
}

// Version reports the currently-applied migration version and whether the
// database is left in a dirty state by a previously-failed migration.
func (m *Migrator) Version(sqlDB *sql.DB) (version uint, dirty bool, err error) {
	inst, err := m.newMigrate(sqlDB)
	if err != nil {
		return 0, false, err
	}
	defer inst.Close()

	version, dirty, err = inst.Version()
	if err != nil && errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}

func (m *Migrator) newMigrate(sqlDB *sql.DB) (*migrate.Migrate, error) {
	sourceURL := fmt.Sprintf("file://%s", m.scriptsPath)
	driver, err := mysql.WithInstance(sqlDB, &mysql.Config{})
	if err != nil {
		return nil, fmt.Errorf("mysql driver: %w", err)
	}
	return migrate.NewWithDatabaseInstance(sourceURL, "mysql", driver)
}
