package purchase

import (
	"context"
	"math"

	"nodal/internal/domain/order"
	"nodal/internal/domain/payment"
	domainuser "nodal/internal/domain/user"
	"nodal/internal/infrastructure/database"
	applogger "nodal/internal/shared/logger"
)

// defaultReferralRate is the fraction of the purchase price credited back
// to the referrer on a referee's first completed order (spec.md §4.2).
const defaultReferralRate = 0.10

// ReferralRebateUseCase runs the referral rebate protocol in its own
// transaction so a rebate failure never rolls back the purchase that
// triggered it (spec.md §4.2 step 8).
type ReferralRebateUseCase struct {
	users        domainuser.Repository
	orders       order.Repository
	transactions payment.Repository
	txManager    *database.TransactionManager
	rate         float64
}

func NewReferralRebateUseCase(users domainuser.Repository, orders order.Repository, transactions payment.Repository, txManager *database.TransactionManager) *ReferralRebateUseCase {
	return &ReferralRebateUseCase{
		users:        users,
		orders:       orders,
		transactions: transactions,
		txManager:    txManager,
		rate:         defaultReferralRate,
	}
}

// Execute attempts to credit refereeUserID's referrer for its just-completed
// purchase of the given price. Errors are logged, never returned to the
// caller, matching the purchase transactor's fire-and-forget contract.
func (uc *ReferralRebateUseCase) Execute(ctx context.Context, refereeUserID uint, price int64) {
	err := uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		referee, err := uc.users.GetByID(ctx, refereeUserID)
		if err != nil {
			return err
		}
		if referee == nil || referee.ReferredBy == nil || *referee.ReferredBy == refereeUserID {
			return nil
		}

		completed, err := uc.orders.CountCompleted(ctx, refereeUserID)
		if err != nil {
			return err
		}
		if completed > 1 {
			return nil
		}
		alreadyRebated, err := uc.transactions.ExistsReferralForReferee(ctx, refereeUserID)
		if err != nil {
			return err
		}
		if alreadyRebated {
			return nil
		}

		referrer, err := uc.users.GetByIDForUpdate(ctx, *referee.ReferredBy)
		if err != nil {
			return err
		}
		if referrer == nil {
			return nil
		}

		amount := int64(math.Floor(float64(price) * uc.rate))
		if amount <= 0 {
			return nil
		}
		referrer.Credit(amount)
		if err := uc.users.Update(ctx, referrer); err != nil {
			return err
		}
		related := refereeUserID
		return uc.transactions.Create(ctx, &payment.CoinTransaction{
			UserID:        referrer.ID,
			Amount:        amount,
			Type:          payment.TypeReferral,
			Description:   "Referral rebate",
			RelatedUserID: &related,
		})
	})
	if err != nil {
		applogger.Get().Warn("referral rebate failed", "referee_user_id", refereeUserID, "error", err)
	}
}
