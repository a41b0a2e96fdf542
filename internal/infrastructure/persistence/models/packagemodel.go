package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PackageModel persists the purchasable catalog entries. Description is an
// opaque localized-text document, so it's kept as raw JSON rather than
// exploded into columns (spec.md §9).
type PackageModel struct {
	ID            uint           `gorm:"primarykey"`
	Name          string         `gorm:"not null;size:100"`
	TrafficAmount uint64         `gorm:"not null"`
	Price         int64          `gorm:"not null"`
	DurationDays  int            `gorm:"not null"`
	Description   datatypes.JSON `gorm:"column:description"`
	IsActive      bool           `gorm:"not null;default:true;index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

func (PackageModel) TableName() string { return TablePackages }
