// Package catalog implements the public package-listing use case
// (spec.md §6 "GET /api/packages").
package catalog

import (
	"context"

	domaincatalog "nodal/internal/domain/catalog"
	"nodal/internal/shared/apperror"
)

type PackageDTO struct {
	ID            uint           `json:"id"`
	Name          string         `json:"name"`
	TrafficAmount uint64         `json:"traffic_amount"`
	Price         int64          `json:"price"`
	DurationDays  int            `json:"duration_days"`
	Description   map[string]any `json:"description"`
}

type ListActiveUseCase struct {
	packages domaincatalog.Repository
}

func NewListActiveUseCase(packages domaincatalog.Repository) *ListActiveUseCase {
	return &ListActiveUseCase{packages: packages}
}

func (uc *ListActiveUseCase) Execute(ctx context.Context) ([]PackageDTO, error) {
	active, err := uc.packages.ListActive(ctx)
	if err != nil {
		return nil, apperror.Internal("list active packages", err)
	}
	out := make([]PackageDTO, 0, len(active))
	for _, p := range active {
		out = append(out, PackageDTO{
			ID:            p.ID,
			Name:          p.Name,
			TrafficAmount: p.TrafficAmount,
			Price:         p.Price,
			DurationDays:  p.DurationDays,
			Description:   p.Description,
		})
	}
	return out, nil
}
