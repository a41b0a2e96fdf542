package user_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	appuser "nodal/internal/application/user"
	domainuser "nodal/internal/domain/user"
)

func TestGetTrafficUseCase_UserNotFound(t *testing.T) {
	users := new(mockUserRepository)
	users.On("GetByID", mock.Anything, uint(1)).Return(nil, nil)

	uc := appuser.NewGetTrafficUseCase(users)
	_, err := uc.Execute(context.Background(), 1)

	assert.ErrorContains(t, err, "user not found")
}

func TestGetTrafficUseCase_RemainingQuota(t *testing.T) {
	users := new(mockUserRepository)
	users.On("GetByID", mock.Anything, uint(1)).Return(&domainuser.User{
		ID: 1, TrafficQuota: 100, TrafficUsed: 40,
	}, nil)

	uc := appuser.NewGetTrafficUseCase(users)
	result, err := uc.Execute(context.Background(), 1)

	assert.NoError(t, err)
	assert.Equal(t, uint64(100), result.TrafficQuota)
	assert.Equal(t, uint64(40), result.TrafficUsed)
	assert.Equal(t, uint64(60), result.TrafficLeft)
}

func TestGetTrafficUseCase_UsedExceedsQuotaClampsToZero(t *testing.T) {
	users := new(mockUserRepository)
	users.On("GetByID", mock.Anything, uint(1)).Return(&domainuser.User{
		ID: 1, TrafficQuota: 100, TrafficUsed: 150,
	}, nil)

	uc := appuser.NewGetTrafficUseCase(users)
	result, err := uc.Execute(context.Background(), 1)

	assert.NoError(t, err)
	assert.Equal(t, uint64(0), result.TrafficLeft)
}
