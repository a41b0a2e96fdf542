package models

import "time"

type TrafficLogModel struct {
	ID         uint      `gorm:"primarykey"`
	UserID     uint      `gorm:"not null;index"`
	NodeID     uint      `gorm:"not null;index"`
	Upload     uint64    `gorm:"not null"`
	Download   uint64    `gorm:"not null"`
	RecordedAt time.Time `gorm:"index"`
}

func (TrafficLogModel) TableName() string { return TableTrafficLogs }
