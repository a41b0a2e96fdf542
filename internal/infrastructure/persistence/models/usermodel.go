package models

import (
	"time"

	"gorm.io/gorm"
)

// UserModel is the anti-corruption layer between the user domain aggregate
// and the database row.
type UserModel struct {
	ID           uint   `gorm:"primarykey"`
	Email        string `gorm:"uniqueIndex;not null;size:255"`
	PasswordHash string `gorm:"not null;size:255"`
	CoinBalance  int64  `gorm:"not null;default:0"`
	TrafficQuota uint64 `gorm:"not null;default:0"`
	TrafficUsed  uint64 `gorm:"not null;default:0"`
	ReferralCode string `gorm:"uniqueIndex;not null;size:20"`
	ReferredBy   *uint  `gorm:"index"`
	Status       string `gorm:"not null;default:active;size:20"`
	IsAdmin      bool   `gorm:"not null;default:false;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (UserModel) TableName() string { return TableUsers }

func (m *UserModel) BeforeCreate(tx *gorm.DB) error {
	if m.Status == "" {
		m.Status = "active"
	}
	return nil
}
