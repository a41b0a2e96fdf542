package models

import "time"

type SubscriptionModel struct {
	ID           uint   `gorm:"primarykey"`
	UserID       uint   `gorm:"uniqueIndex;not null"`
	Token        string `gorm:"uniqueIndex;not null;size:64"`
	LastAccessed *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (SubscriptionModel) TableName() string { return TableSubscriptions }
