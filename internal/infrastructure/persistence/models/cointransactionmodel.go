package models

import "time"

type CoinTransactionModel struct {
	ID            uint   `gorm:"primarykey"`
	UserID        uint   `gorm:"not null;index"`
	Amount        int64  `gorm:"not null"`
	Type          string `gorm:"not null;size:20;index"`
	Description   string `gorm:"size:500"`
	RelatedUserID *uint  `gorm:"index"`
	CreatedAt     time.Time
}

func (CoinTransactionModel) TableName() string { return TableCoinTransactions }

// ProcessedWebhookEventModel de-duplicates Stripe webhook deliveries, which
// arrive at-least-once.
type ProcessedWebhookEventModel struct {
	EventID     string `gorm:"primarykey;size:255"`
	ProcessedAt time.Time
}

func (ProcessedWebhookEventModel) TableName() string { return TableProcessedWebhook }
