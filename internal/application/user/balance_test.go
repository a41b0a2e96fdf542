package user_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	appuser "nodal/internal/application/user"
	domainpayment "nodal/internal/domain/payment"
	domainuser "nodal/internal/domain/user"
)

type mockTransactionRepository struct {
	mock.Mock
}

func (m *mockTransactionRepository) Create(ctx context.Context, t *domainpayment.CoinTransaction) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *mockTransactionRepository) ListRecentByUser(ctx context.Context, userID uint, limit int) ([]*domainpayment.CoinTransaction, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domainpayment.CoinTransaction), args.Error(1)
}

func (m *mockTransactionRepository) ExistsReferralForReferee(ctx context.Context, refereeUserID uint) (bool, error) {
	args := m.Called(ctx, refereeUserID)
	return args.Bool(0), args.Error(1)
}

func (m *mockTransactionRepository) ExistsProcessedWebhookEvent(ctx context.Context, eventID string) (bool, error) {
	args := m.Called(ctx, eventID)
	return args.Bool(0), args.Error(1)
}

func (m *mockTransactionRepository) MarkWebhookEventProcessed(ctx context.Context, eventID string) error {
	args := m.Called(ctx, eventID)
	return args.Error(0)
}

func (m *mockTransactionRepository) SumReferralEarnings(ctx context.Context, referrerUserID uint) (int64, error) {
	args := m.Called(ctx, referrerUserID)
	return args.Get(0).(int64), args.Error(1)
}

func TestGetBalanceUseCase_UserNotFound(t *testing.T) {
	users := new(mockUserRepository)
	transactions := new(mockTransactionRepository)
	users.On("GetByID", mock.Anything, uint(1)).Return(nil, nil)

	uc := appuser.NewGetBalanceUseCase(users, transactions)
	_, err := uc.Execute(context.Background(), 1)

	assert.ErrorContains(t, err, "user not found")
	transactions.AssertNotCalled(t, "ListRecentByUser", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetBalanceUseCase_Success(t *testing.T) {
	users := new(mockUserRepository)
	transactions := new(mockTransactionRepository)
	users.On("GetByID", mock.Anything, uint(1)).Return(&domainuser.User{ID: 1, CoinBalance: 250}, nil)
	transactions.On("ListRecentByUser", mock.Anything, uint(1), 10).Return([]*domainpayment.CoinTransaction{
		{ID: 1, UserID: 1, Amount: -100, Type: domainpayment.TypePurchase, Description: "Purchase: starter", CreatedAt: time.Unix(0, 0)},
	}, nil)

	uc := appuser.NewGetBalanceUseCase(users, transactions)
	result, err := uc.Execute(context.Background(), 1)

	assert.NoError(t, err)
	assert.Equal(t, int64(250), result.CoinBalance)
	assert.Len(t, result.RecentTransactions, 1)
	assert.Equal(t, "purchase", result.RecentTransactions[0].Type)
}
