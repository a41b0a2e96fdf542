// Package purchase implements the purchase transactor (spec.md §4.2): a
// single serializable transaction that turns a coin balance into a traffic
// entitlement, plus the post-commit referral rebate it triggers.
package purchase

import (
	"context"
	"time"

	"nodal/internal/domain/catalog"
	"nodal/internal/domain/entitlement"
	"nodal/internal/domain/order"
	"nodal/internal/domain/payment"
	domainuser "nodal/internal/domain/user"
	"nodal/internal/infrastructure/database"
	"nodal/internal/shared/apperror"
	"nodal/internal/shared/goroutine"
)

type Result struct {
	OrderID    uint      `json:"order_id"`
	OrderNo    string    `json:"order_no"`
	NewBalance int64     `json:"new_balance"`
	NewQuota   uint64    `json:"new_traffic_quota"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// CacheInvalidator drops the cached entitlement projection for a user
// (spec.md §4.5 `user:package:{user_id}`), declared locally so this use
// case does not import the Redis client directly.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, userID uint) error
}

// PurchaseMetrics records outcome counters; satisfied by
// infrastructure/metrics.Metrics.
type PurchaseMetrics interface {
	ObservePurchase(status string)
	ObserveRecharge(status string, amount int64)
}

type UseCase struct {
	packages     catalog.Repository
	users        domainuser.Repository
	orders       order.Repository
	transactions payment.Repository
	entitlements entitlement.Repository
	txManager    *database.TransactionManager
	cache        CacheInvalidator
	dispatcher   *goroutine.Dispatcher
	metrics      PurchaseMetrics
	rebate       *ReferralRebateUseCase
}

func NewUseCase(
	packages catalog.Repository,
	users domainuser.Repository,
	orders order.Repository,
	transactions payment.Repository,
	entitlements entitlement.Repository,
	txManager *database.TransactionManager,
	cache CacheInvalidator,
	dispatcher *goroutine.Dispatcher,
	metrics PurchaseMetrics,
	rebate *ReferralRebateUseCase,
) *UseCase {
	return &UseCase{
		packages:     packages,
		users:        users,
		orders:       orders,
		transactions: transactions,
		entitlements: entitlements,
		txManager:    txManager,
		cache:        cache,
		dispatcher:   dispatcher,
		metrics:      metrics,
		rebate:       rebate,
	}
}

// Execute runs the purchase protocol (spec.md §4.2 steps 1-7) inside a
// single transaction, then fires the post-commit cache invalidation and
// referral rebate attempt (step 8).
func (uc *UseCase) Execute(ctx context.Context, userID, packageID uint) (*Result, error) {
	var result Result
	var price int64

	err := uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		pkg, err := uc.packages.GetByID(ctx, packageID)
		if err != nil {
			return apperror.Internal("load package", err)
		}
		if pkg == nil {
			return apperror.NotFound("package not found")
		}
		if err := pkg.EnsurePurchasable(); err != nil {
			return err
		}

		u, err := uc.users.GetByIDForUpdate(ctx, userID)
		if err != nil {
			return apperror.Internal("load user for update", err)
		}
		if u == nil {
			return apperror.NotFound("user not found")
		}
		if !u.IsActive() {
			return apperror.Forbidden("account disabled")
		}
		if u.CoinBalance < pkg.Price {
			return apperror.Business("insufficient balance")
		}
		price = pkg.Price

		now := time.Now()
		o := &order.Order{
			OrderNo:   order.NewOrderNo(userID, now.UnixMilli()),
			UserID:    userID,
			PackageID: packageID,
			Amount:    pkg.Price,
			Status:    order.StatusPending,
			CreatedAt: now,
		}
		if err := uc.orders.Create(ctx, o); err != nil {
			return apperror.Internal("create order", err)
		}

		if err := u.Debit(pkg.Price); err != nil {
			return err
		}
		if err := uc.transactions.Create(ctx, &payment.CoinTransaction{
			UserID:      userID,
			Amount:      -pkg.Price,
			Type:        payment.TypePurchase,
			Description: "Purchase: " + pkg.Name,
		}); err != nil {
			return apperror.Internal("record purchase transaction", err)
		}

		u.GrantTraffic(pkg.TrafficAmount)
		if err := uc.users.Update(ctx, u); err != nil {
			return apperror.Internal("update user", err)
		}

		expiresAt := now.AddDate(0, 0, pkg.DurationDays)
		up := &entitlement.UserPackage{
			UserID:       userID,
			PackageID:    packageID,
			OrderID:      o.ID,
			TrafficQuota: pkg.TrafficAmount,
			TrafficUsed:  0,
			ExpiresAt:    expiresAt,
			Status:       entitlement.StatusActive,
			CreatedAt:    now,
		}
		if err := uc.entitlements.Create(ctx, up); err != nil {
			return apperror.Internal("create entitlement", err)
		}

		o.Complete(now)
		if err := uc.orders.Update(ctx, o); err != nil {
			return apperror.Internal("complete order", err)
		}

		result = Result{
			OrderID:    o.ID,
			OrderNo:    o.OrderNo,
			NewBalance: u.CoinBalance,
			NewQuota:   u.TrafficQuota,
			ExpiresAt:  expiresAt,
		}
		return nil
	})
	if err != nil {
		if uc.metrics != nil {
			uc.metrics.ObservePurchase("failed")
		}
		return nil, err
	}
	if uc.metrics != nil {
		uc.metrics.ObservePurchase("completed")
	}

	if uc.cache != nil {
		uc.dispatcher.Submit("invalidate-user-package-cache", func(ctx context.Context) {
			_ = uc.cache.Invalidate(ctx, userID)
		})
	}
	if uc.rebate != nil {
		uc.dispatcher.Submit("referral-rebate", func(ctx context.Context) {
			uc.rebate.Execute(ctx, userID, price)
		})
	}

	return &result, nil
}
