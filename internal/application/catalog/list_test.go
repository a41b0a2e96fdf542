package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	appcatalog "nodal/internal/application/catalog"
	domaincatalog "nodal/internal/domain/catalog"
)

type mockPackageRepository struct {
	mock.Mock
}

func (m *mockPackageRepository) Create(ctx context.Context, p *domaincatalog.Package) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockPackageRepository) GetByID(ctx context.Context, id uint) (*domaincatalog.Package, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domaincatalog.Package), args.Error(1)
}

func (m *mockPackageRepository) Update(ctx context.Context, p *domaincatalog.Package) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockPackageRepository) SoftDelete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockPackageRepository) ListActive(ctx context.Context) ([]*domaincatalog.Package, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domaincatalog.Package), args.Error(1)
}

func (m *mockPackageRepository) ListAll(ctx context.Context) ([]*domaincatalog.Package, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domaincatalog.Package), args.Error(1)
}

func TestListActiveUseCase_Success(t *testing.T) {
	packages := new(mockPackageRepository)
	packages.On("ListActive", mock.Anything).Return([]*domaincatalog.Package{
		{ID: 1, Name: "starter", Price: 100, TrafficAmount: 1 << 30, DurationDays: 30, IsActive: true},
		{ID: 2, Name: "pro", Price: 500, TrafficAmount: 10 << 30, DurationDays: 30, IsActive: true},
	}, nil)

	uc := appcatalog.NewListActiveUseCase(packages)
	out, err := uc.Execute(context.Background())

	assert.NoError(t, err)
	assert.Len(t, out, 2)
	assert.Equal(t, "starter", out[0].Name)
	assert.Equal(t, int64(500), out[1].Price)
	packages.AssertExpectations(t)
}

func TestListActiveUseCase_RepositoryError(t *testing.T) {
	packages := new(mockPackageRepository)
	packages.On("ListActive", mock.Anything).Return(nil, assert.AnError)

	uc := appcatalog.NewListActiveUseCase(packages)
	_, err := uc.Execute(context.Background())

	assert.ErrorContains(t, err, "list active packages")
}

func TestListActiveUseCase_Empty(t *testing.T) {
	packages := new(mockPackageRepository)
	packages.On("ListActive", mock.Anything).Return([]*domaincatalog.Package{}, nil)

	uc := appcatalog.NewListActiveUseCase(packages)
	out, err := uc.Execute(context.Background())

	assert.NoError(t, err)
	assert.Empty(t, out)
}
