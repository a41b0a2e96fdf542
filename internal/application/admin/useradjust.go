package admin

import (
	"context"

	"nodal/internal/domain/payment"
	domainuser "nodal/internal/domain/user"
	"nodal/internal/infrastructure/database"
	"nodal/internal/shared/apperror"
)

// CacheInvalidator drops the entitlement cache for one user, the same
// invalidation the purchase protocol performs on balance/quota changes.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, userID uint) error
}

type AdjustBalanceRequest struct {
	UserID      uint
	Amount      int64 // signed: positive credits, negative debits
	Description string
}

// AdjustBalanceUseCase lets an admin correct a user's coin balance,
// going through the same row-lock + ledger-entry shape every other
// balance mutation in the system uses (spec.md §8 invariant 1: ledger sum
// always equals the balance delta).
type AdjustBalanceUseCase struct {
	users        domainuser.Repository
	transactions payment.Repository
	txManager    *database.TransactionManager
}

func NewAdjustBalanceUseCase(users domainuser.Repository, transactions payment.Repository, txManager *database.TransactionManager) *AdjustBalanceUseCase {
	return &AdjustBalanceUseCase{users: users, transactions: transactions, txManager: txManager}
}

func (uc *AdjustBalanceUseCase) Execute(ctx context.Context, req AdjustBalanceRequest) error {
	return uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		u, err := uc.users.GetByIDForUpdate(ctx, req.UserID)
		if err != nil {
			return apperror.Internal("lookup user", err)
		}
		if u == nil {
			return apperror.NotFound("user not found")
		}

		if req.Amount >= 0 {
			u.Credit(req.Amount)
		} else if err := u.Debit(-req.Amount); err != nil {
			return err
		}

		if err := uc.users.Update(ctx, u); err != nil {
			return apperror.Internal("update user balance", err)
		}
		if err := uc.transactions.Create(ctx, &payment.CoinTransaction{
			UserID:      u.ID,
			Amount:      req.Amount,
			Type:        payment.TypeAdmin,
			Description: req.Description,
		}); err != nil {
			return apperror.Internal("record ledger entry", err)
		}
		return nil
	})
}

type AdjustTrafficRequest struct {
	QuotaDelta int64 // signed bytes adjustment to traffic_quota
	UserID     uint
}

// AdjustTrafficUseCase lets an admin grant or revoke traffic quota
// outside the purchase flow (e.g. goodwill credit, abuse correction).
type AdjustTrafficUseCase struct {
	users     domainuser.Repository
	cache     CacheInvalidator
	txManager *database.TransactionManager
}

func NewAdjustTrafficUseCase(users domainuser.Repository, cache CacheInvalidator, txManager *database.TransactionManager) *AdjustTrafficUseCase {
	return &AdjustTrafficUseCase{users: users, cache: cache, txManager: txManager}
}

func (uc *AdjustTrafficUseCase) Execute(ctx context.Context, req AdjustTrafficRequest) error {
	err := uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		u, err := uc.users.GetByIDForUpdate(ctx, req.UserID)
		if err != nil {
			return apperror.Internal("lookup user", err)
		}
		if u == nil {
			return apperror.NotFound("user not found")
		}

		switch {
		case req.QuotaDelta > 0:
			u.GrantTraffic(uint64(req.QuotaDelta))
		case req.QuotaDelta < 0:
			delta := uint64(-req.QuotaDelta)
			if delta > u.TrafficQuota {
				return apperror.Business("cannot reduce quota below zero")
			}
			u.TrafficQuota -= delta
		}

		if err := uc.users.Update(ctx, u); err != nil {
			return apperror.Internal("update user traffic quota", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if uc.cache != nil {
		_ = uc.cache.Invalidate(ctx, req.UserID)
	}
	return nil
}
