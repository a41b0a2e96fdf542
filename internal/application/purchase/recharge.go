package purchase

import (
	"context"

	"nodal/internal/domain/payment"
	domainuser "nodal/internal/domain/user"
	"nodal/internal/infrastructure/database"
	infrapayment "nodal/internal/infrastructure/payment"
	"nodal/internal/shared/apperror"
)

type CreateRechargeRequest struct {
	UserID        uint
	AmountCents   int64
	Currency      string
	CoinsGranted  int64
	CustomerEmail string
}

type CreateRechargeResult struct {
	CheckoutURL string `json:"checkout_url"`
	SessionID   string `json:"session_id"`
}

// CreateRechargeUseCase starts a Stripe checkout for a coin top-up
// (recharge supplement).
type CreateRechargeUseCase struct {
	stripe *infrapayment.Client
}

func NewCreateRechargeUseCase(stripe *infrapayment.Client) *CreateRechargeUseCase {
	return &CreateRechargeUseCase{stripe: stripe}
}

func (uc *CreateRechargeUseCase) Execute(ctx context.Context, req CreateRechargeRequest) (*CreateRechargeResult, error) {
	session, err := uc.stripe.CreateRechargeSession(infrapayment.CreateRechargeSessionRequest{
		UserID:        req.UserID,
		AmountCents:   req.AmountCents,
		Currency:      req.Currency,
		CoinsGranted:  req.CoinsGranted,
		CustomerEmail: req.CustomerEmail,
	})
	if err != nil {
		return nil, apperror.Internal("create stripe checkout session", err)
	}
	return &CreateRechargeResult{CheckoutURL: session.URL, SessionID: session.ID}, nil
}

// RechargeWebhookUseCase credits a user's balance when Stripe confirms a
// checkout, inside a row-locked transaction, and is idempotent against
// Stripe's at-least-once webhook delivery (recharge
// supplement).
type RechargeWebhookUseCase struct {
	stripe       *infrapayment.Client
	users        domainuser.Repository
	transactions payment.Repository
	txManager    *database.TransactionManager
	metrics      PurchaseMetrics
}

func NewRechargeWebhookUseCase(stripe *infrapayment.Client, users domainuser.Repository, transactions payment.Repository, txManager *database.TransactionManager, metrics PurchaseMetrics) *RechargeWebhookUseCase {
	return &RechargeWebhookUseCase{stripe: stripe, users: users, transactions: transactions, txManager: txManager, metrics: metrics}
}

// Execute verifies the webhook payload and, for a not-yet-processed
// checkout.session.completed event, credits the user's balance. Unknown or
// already-processed events return nil so the caller 200s them without
// retry.
func (uc *RechargeWebhookUseCase) Execute(ctx context.Context, payload []byte, signature string) error {
	event, ok, err := uc.stripe.ParseWebhook(payload, signature)
	if err != nil {
		return apperror.Validation("invalid stripe webhook: " + err.Error())
	}
	if !ok {
		return nil
	}

	return uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		processed, err := uc.transactions.ExistsProcessedWebhookEvent(ctx, event.EventID)
		if err != nil {
			return apperror.Internal("check processed webhook event", err)
		}
		if processed {
			return nil
		}

		u, err := uc.users.GetByIDForUpdate(ctx, event.UserID)
		if err != nil {
			return apperror.Internal("load user for update", err)
		}
		if u == nil {
			return apperror.NotFound("user not found")
		}

		u.Credit(event.CoinsGranted)
		if err := uc.users.Update(ctx, u); err != nil {
			return apperror.Internal("update user balance", err)
		}
		if err := uc.transactions.Create(ctx, &payment.CoinTransaction{
			UserID:      event.UserID,
			Amount:      event.CoinsGranted,
			Type:        payment.TypeRecharge,
			Description: "Stripe recharge: " + event.SessionID,
		}); err != nil {
			return apperror.Internal("record recharge transaction", err)
		}
		if err := uc.transactions.MarkWebhookEventProcessed(ctx, event.EventID); err != nil {
			return apperror.Internal("mark webhook processed", err)
		}

		if uc.metrics != nil {
			uc.metrics.ObserveRecharge("completed", event.CoinsGranted)
		}
		return nil
	})
}
