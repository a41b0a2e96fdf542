package models

import "time"

type AccessLogModel struct {
	ID                uint      `gorm:"primarykey"`
	UserID            *uint     `gorm:"index"`
	SubscriptionToken string    `gorm:"size:64;index"`
	IP                string    `gorm:"size:45"`
	UserAgent         string    `gorm:"size:500"`
	Status            string    `gorm:"not null;size:20;index"`
	Ts                time.Time `gorm:"index"`
}

func (AccessLogModel) TableName() string { return TableAccessLogs }

type AdminLogModel struct {
	ID      uint      `gorm:"primarykey"`
	UserID  uint      `gorm:"not null;index"`
	Action  string    `gorm:"not null;size:100"`
	Target  string    `gorm:"size:100"`
	Details string    `gorm:"type:text"`
	IP      string    `gorm:"size:45"`
	Ts      time.Time `gorm:"index"`
}

func (AdminLogModel) TableName() string { return TableAdminLogs }
