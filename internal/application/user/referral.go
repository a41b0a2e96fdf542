package user

import (
	"context"
	"fmt"

	"nodal/internal/domain/payment"
	domainuser "nodal/internal/domain/user"
	"nodal/internal/shared/apperror"
)

type ReferralResult struct {
	ReferralCode string `json:"referral_code"`
	ReferralLink string `json:"referral_link"`
}

type ReferralStatsResult struct {
	ReferredCount     int   `json:"referred_count"`
	TotalRebateEarned int64 `json:"total_rebate_earned"`
}

type GetReferralUseCase struct {
	users       domainuser.Repository
	frontendURL string
}

func NewGetReferralUseCase(users domainuser.Repository, frontendURL string) *GetReferralUseCase {
	return &GetReferralUseCase{users: users, frontendURL: frontendURL}
}

func (uc *GetReferralUseCase) Execute(ctx context.Context, userID uint) (*ReferralResult, error) {
	u, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, apperror.Internal("lookup user", err)
	}
	if u == nil {
		return nil, apperror.NotFound("user not found")
	}
	return &ReferralResult{
		ReferralCode: u.ReferralCode,
		ReferralLink: fmt.Sprintf("%s/register?referral_code=%s", uc.frontendURL, u.ReferralCode),
	}, nil
}

type GetReferralStatsUseCase struct {
	users        domainuser.Repository
	transactions payment.Repository
}

func NewGetReferralStatsUseCase(users domainuser.Repository, transactions payment.Repository) *GetReferralStatsUseCase {
	return &GetReferralStatsUseCase{users: users, transactions: transactions}
}

func (uc *GetReferralStatsUseCase) Execute(ctx context.Context, userID uint) (*ReferralStatsResult, error) {
	count, err := uc.users.CountByReferredBy(ctx, userID)
	if err != nil {
		return nil, apperror.Internal("count referred users", err)
	}
	earned, err := uc.transactions.SumReferralEarnings(ctx, userID)
	if err != nil {
		return nil, apperror.Internal("sum referral earnings", err)
	}
	return &ReferralStatsResult{ReferredCount: count, TotalRebateEarned: earned}, nil
}
