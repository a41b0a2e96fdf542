package admin

import (
	"context"

	"nodal/internal/domain/catalog"
	"nodal/internal/shared/apperror"
)

type CreatePackageRequest struct {
	Name          string
	TrafficAmount uint64
	Price         int64
	DurationDays  int
	Description   map[string]any
	IsActive      bool
}

type PackageResult struct {
	ID            uint           `json:"id"`
	Name          string         `json:"name"`
	TrafficAmount uint64         `json:"traffic_amount"`
	Price         int64          `json:"price"`
	DurationDays  int            `json:"duration_days"`
	Description   map[string]any `json:"description"`
	IsActive      bool           `json:"is_active"`
}

// PackageMutationUseCase handles create/update/soft-delete for the
// catalog of purchasable plans.
type PackageMutationUseCase struct {
	packages catalog.Repository
}

func NewPackageMutationUseCase(packages catalog.Repository) *PackageMutationUseCase {
	return &PackageMutationUseCase{packages: packages}
}

func (uc *PackageMutationUseCase) Create(ctx context.Context, req CreatePackageRequest) (*PackageResult, error) {
	p := &catalog.Package{
		Name:          req.Name,
		TrafficAmount: req.TrafficAmount,
		Price:         req.Price,
		DurationDays:  req.DurationDays,
		Description:   req.Description,
		IsActive:      req.IsActive,
	}
	if err := uc.packages.Create(ctx, p); err != nil {
		return nil, apperror.Internal("create package", err)
	}
	return toPackageResult(p), nil
}

type UpdatePackageRequest struct {
	PackageID     uint
	Name          string
	TrafficAmount uint64
	Price         int64
	DurationDays  int
	Description   map[string]any
	IsActive      bool
}

func (uc *PackageMutationUseCase) Update(ctx context.Context, req UpdatePackageRequest) (*PackageResult, error) {
	p, err := uc.packages.GetByID(ctx, req.PackageID)
	if err != nil {
		return nil, apperror.Internal("lookup package", err)
	}
	if p == nil {
		return nil, apperror.NotFound("package not found")
	}
	p.Name = req.Name
	p.TrafficAmount = req.TrafficAmount
	p.Price = req.Price
	p.DurationDays = req.DurationDays
	p.Description = req.Description
	p.IsActive = req.IsActive

	if err := uc.packages.Update(ctx, p); err != nil {
		return nil, apperror.Internal("update package", err)
	}
	return toPackageResult(p), nil
}

func (uc *PackageMutationUseCase) Delete(ctx context.Context, packageID uint) error {
	if err := uc.packages.SoftDelete(ctx, packageID); err != nil {
		return apperror.Internal("delete package", err)
	}
	return nil
}

// ListPackagesUseCase serves GET /api/admin/... package listings,
// including inactive plans the public ListActive endpoint hides.
type ListPackagesUseCase struct {
	packages catalog.Repository
}

func NewListPackagesUseCase(packages catalog.Repository) *ListPackagesUseCase {
	return &ListPackagesUseCase{packages: packages}
}

func (uc *ListPackagesUseCase) Execute(ctx context.Context) ([]*PackageResult, error) {
	all, err := uc.packages.ListAll(ctx)
	if err != nil {
		return nil, apperror.Internal("list packages", err)
	}
	out := make([]*PackageResult, 0, len(all))
	for _, p := range all {
		out = append(out, toPackageResult(p))
	}
	return out, nil
}

func toPackageResult(p *catalog.Package) *PackageResult {
	return &PackageResult{
		ID:            p.ID,
		Name:          p.Name,
		TrafficAmount: p.TrafficAmount,
		Price:         p.Price,
		DurationDays:  p.DurationDays,
		Description:   p.Description,
		IsActive:      p.IsActive,
	}
}
