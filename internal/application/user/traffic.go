package user

import (
	"context"

	domainuser "nodal/internal/domain/user"
	"nodal/internal/shared/apperror"
)

type TrafficResult struct {
	TrafficQuota uint64 `json:"traffic_quota"`
	TrafficUsed  uint64 `json:"traffic_used"`
	TrafficLeft  uint64 `json:"traffic_left"`
}

type GetTrafficUseCase struct {
	users domainuser.Repository
}

func NewGetTrafficUseCase(users domainuser.Repository) *GetTrafficUseCase {
	return &GetTrafficUseCase{users: users}
}

func (uc *GetTrafficUseCase) Execute(ctx context.Context, userID uint) (*TrafficResult, error) {
	u, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, apperror.Internal("lookup user", err)
	}
	if u == nil {
		return nil, apperror.NotFound("user not found")
	}
	var left uint64
	if u.TrafficQuota > u.TrafficUsed {
		left = u.TrafficQuota - u.TrafficUsed
	}
	return &TrafficResult{
		TrafficQuota: u.TrafficQuota,
		TrafficUsed:  u.TrafficUsed,
		TrafficLeft:  left,
	}, nil
}
