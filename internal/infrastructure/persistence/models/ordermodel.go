package models

import "time"

type OrderModel struct {
	ID          uint   `gorm:"primarykey"`
	OrderNo     string `gorm:"uniqueIndex;not null;size:64"`
	UserID      uint   `gorm:"not null;index"`
	PackageID   uint   `gorm:"not null;index"`
	Amount      int64  `gorm:"not null"`
	Status      string `gorm:"not null;default:pending;size:20;index"`
	CreatedAt   time.Time
	CompletedAt *time.Time
}

func (OrderModel) TableName() string { return TableOrders }
