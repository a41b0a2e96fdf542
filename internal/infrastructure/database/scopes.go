package database

import "gorm.io/gorm"

// NotDeleted filters out soft-deleted rows for queries that bypass GORM's
// automatic scoping (raw Model().Count() style aggregates).
func NotDeleted() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("deleted_at IS NULL")
	}
}
