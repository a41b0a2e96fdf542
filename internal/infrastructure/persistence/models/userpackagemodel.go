package models

import "time"

type UserPackageModel struct {
	ID           uint      `gorm:"primarykey"`
	UserID       uint      `gorm:"not null;index:idx_user_packages_current"`
	PackageID    uint      `gorm:"not null;index"`
	OrderID      uint      `gorm:"uniqueIndex;not null"` // at most one UserPackage per Order
	TrafficQuota uint64    `gorm:"not null"`
	TrafficUsed  uint64    `gorm:"not null;default:0"`
	ExpiresAt    time.Time `gorm:"index:idx_user_packages_current"`
	Status       string    `gorm:"not null;default:active;size:20;index:idx_user_packages_current"`
	CreatedAt    time.Time
}

func (UserPackageModel) TableName() string { return TableUserPackages }
