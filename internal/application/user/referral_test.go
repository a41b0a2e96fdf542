package user_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	appuser "nodal/internal/application/user"
	domainuser "nodal/internal/domain/user"
)

func TestGetReferralUseCase_UserNotFound(t *testing.T) {
	users := new(mockUserRepository)
	users.On("GetByID", mock.Anything, uint(1)).Return(nil, nil)

	uc := appuser.NewGetReferralUseCase(users, "https://nodal.example.com")
	_, err := uc.Execute(context.Background(), 1)

	assert.ErrorContains(t, err, "user not found")
}

func TestGetReferralUseCase_Success(t *testing.T) {
	users := new(mockUserRepository)
	users.On("GetByID", mock.Anything, uint(1)).Return(&domainuser.User{ID: 1, ReferralCode: "ABC123"}, nil)

	uc := appuser.NewGetReferralUseCase(users, "https://nodal.example.com")
	result, err := uc.Execute(context.Background(), 1)

	assert.NoError(t, err)
	assert.Equal(t, "ABC123", result.ReferralCode)
	assert.Equal(t, "https://nodal.example.com/register?referral_code=ABC123", result.ReferralLink)
}

func TestGetReferralStatsUseCase_Success(t *testing.T) {
	users := new(mockUserRepository)
	transactions := new(mockTransactionRepository)
	users.On("CountByReferredBy", mock.Anything, uint(1)).Return(3, nil)
	transactions.On("SumReferralEarnings", mock.Anything, uint(1)).Return(int64(450), nil)

	uc := appuser.NewGetReferralStatsUseCase(users, transactions)
	result, err := uc.Execute(context.Background(), 1)

	assert.NoError(t, err)
	assert.Equal(t, 3, result.ReferredCount)
	assert.Equal(t, int64(450), result.TotalRebateEarned)
}

func TestGetReferralStatsUseCase_CountError(t *testing.T) {
	users := new(mockUserRepository)
	transactions := new(mockTransactionRepository)
	users.On("CountByReferredBy", mock.Anything, uint(1)).Return(0, assert.AnError)

	uc := appuser.NewGetReferralStatsUseCase(users, transactions)
	_, err := uc.Execute(context.Background(), 1)

	assert.ErrorContains(t, err, "count referred users")
	transactions.AssertNotCalled(t, "SumReferralEarnings", mock.Anything, mock.Anything)
}
