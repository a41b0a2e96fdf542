// Package payment holds the CoinTransaction ledger entry (spec.md §3).
// Every balance mutation inserts exactly one CoinTransaction in the same
// transaction, so the ledger sum always equals the balance delta
// (spec.md §8 invariant 1).
package payment

import (
	"context"
	"time"
)

type Type string

const (
	TypeRecharge Type = "recharge"
	TypePurchase Type = "purchase"
	TypeReferral Type = "referral"
	TypeAdmin    Type = "admin"
)

type CoinTransaction struct {
	ID          uint
	UserID      uint
	Amount      int64 // signed
	Type        Type
	Description string
	// RelatedUserID tags a referral transaction with the referee whose
	// purchase triggered it, so ExistsReferralForReferee can enforce
	// "at most once per referee" without scanning Description text.
	RelatedUserID *uint
	CreatedAt     time.Time
}

type Repository interface {
	Create(ctx context.Context, t *CoinTransaction) error
	ListRecentByUser(ctx context.Context, userID uint, limit int) ([]*CoinTransaction, error)
	// ExistsReferralForReferee guards spec.md §3 invariant 3 / §8 invariant 6:
	// at most one referral CoinTransaction per referee, ever.
	ExistsReferralForReferee(ctx context.Context, refereeUserID uint) (bool, error)
	// ExistsProcessedWebhookEvent / MarkWebhookEventProcessed guard against
	// Stripe's at-least-once webhook delivery reprocessing the same event.
	ExistsProcessedWebhookEvent(ctx context.Context, eventID string) (bool, error)
	MarkWebhookEventProcessed(ctx context.Context, eventID string) error
	// SumReferralEarnings totals the referral rebates a user has earned as
	// a referrer, for GET /api/user/referral/stats.
	SumReferralEarnings(ctx context.Context, referrerUserID uint) (int64, error)
}
