package database

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"nodal/internal/infrastructure/persistence/models"
)

// OpenTest opens an in-memory sqlite database and auto-migrates every
// model, for use by package integration tests (spec.md §8).
func OpenTest() (*gorm.DB, error) {
	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open test db: %w", err)
	}
	if err := gdb.AutoMigrate(
		&models.UserModel{},
		&models.PackageModel{},
		&models.OrderModel{},
		&models.UserPackageModel{},
		&models.NodeModel{},
		&models.SubscriptionModel{},
		&models.CoinTransactionModel{},
		&models.ProcessedWebhookEventModel{},
		&models.TrafficLogModel{},
		&models.AccessLogModel{},
		&models.AdminLogModel{},
	); err != nil {
		return nil, fmt.Errorf("automigrate test db: %w", err)
	}
	return gdb, nil
}
