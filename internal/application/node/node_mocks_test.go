package node_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"nodal/internal/domain/node"
	domaintraffic "nodal/internal/domain/traffic"
	domainuser "nodal/internal/domain/user"
)

type mockNodeRepository struct {
	mock.Mock
}

func (m *mockNodeRepository) Create(ctx context.Context, n *node.Node) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *mockNodeRepository) GetByID(ctx context.Context, id uint) (*node.Node, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*node.Node), args.Error(1)
}

func (m *mockNodeRepository) Update(ctx context.Context, n *node.Node) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *mockNodeRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockNodeRepository) ListClashEligible(ctx context.Context) ([]*node.Node, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*node.Node), args.Error(1)
}

func (m *mockNodeRepository) ListOnline(ctx context.Context) ([]*node.Node, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*node.Node), args.Error(1)
}

func (m *mockNodeRepository) List(ctx context.Context) ([]*node.Node, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*node.Node), args.Error(1)
}

func (m *mockNodeRepository) UpdateHeartbeat(ctx context.Context, id uint, status node.Status, currentUsers *int, at time.Time) error {
	args := m.Called(ctx, id, status, currentUsers, at)
	return args.Error(0)
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, u *domainuser.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id uint) (*domainuser.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domainuser.User), args.Error(1)
}

func (m *mockUserRepository) GetByIDForUpdate(ctx context.Context, id uint) (*domainuser.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domainuser.User), args.Error(1)
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domainuser.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domainuser.User), args.Error(1)
}

func (m *mockUserRepository) GetByReferralCode(ctx context.Context, code string) (*domainuser.User, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domainuser.User), args.Error(1)
}

func (m *mockUserRepository) Update(ctx context.Context, u *domainuser.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepository) CountByReferredBy(ctx context.Context, userID uint) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *mockUserRepository) ListActiveEntitled(ctx context.Context, now time.Time) ([]domainuser.ActiveEntitledUser, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domainuser.ActiveEntitledUser), args.Error(1)
}

func (m *mockUserRepository) IncrementTrafficUsed(ctx context.Context, userID uint, delta uint64) error {
	args := m.Called(ctx, userID, delta)
	return args.Error(0)
}

type mockNodesCacheInvalidator struct {
	mock.Mock
}

func (m *mockNodesCacheInvalidator) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type mockTrafficPublisher struct {
	mock.Mock
}

func (m *mockTrafficPublisher) Publish(ctx context.Context, t domaintraffic.Tuple) (string, error) {
	args := m.Called(ctx, t)
	return args.String(0), args.Error(1)
}
