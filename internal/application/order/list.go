// Package order implements the caller-scoped order listing use cases
// (spec.md §6 "GET /api/orders", "GET /api/orders/:id").
package order

import (
	"context"
	"time"

	domainorder "nodal/internal/domain/order"
	"nodal/internal/shared/apperror"
)

type OrderDTO struct {
	ID          uint       `json:"id"`
	OrderNo     string     `json:"order_no"`
	PackageID   uint       `json:"package_id"`
	Amount      int64      `json:"amount"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

type ListUseCase struct {
	orders domainorder.Repository
}

func NewListUseCase(orders domainorder.Repository) *ListUseCase {
	return &ListUseCase{orders: orders}
}

func (uc *ListUseCase) Execute(ctx context.Context, userID uint) ([]OrderDTO, error) {
	orders, err := uc.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.Internal("list orders", err)
	}
	out := make([]OrderDTO, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderDTO(o))
	}
	return out, nil
}

type GetUseCase struct {
	orders domainorder.Repository
}

func NewGetUseCase(orders domainorder.Repository) *GetUseCase {
	return &GetUseCase{orders: orders}
}

func (uc *GetUseCase) Execute(ctx context.Context, orderID, userID uint) (*OrderDTO, error) {
	o, err := uc.orders.GetByIDForUser(ctx, orderID, userID)
	if err != nil {
		return nil, apperror.Internal("lookup order", err)
	}
	if o == nil {
		return nil, apperror.NotFound("order not found")
	}
	dto := toOrderDTO(o)
	return &dto, nil
}

func toOrderDTO(o *domainorder.Order) OrderDTO {
	return OrderDTO{
		ID:          o.ID,
		OrderNo:     o.OrderNo,
		PackageID:   o.PackageID,
		Amount:      o.Amount,
		Status:      string(o.Status),
		CreatedAt:   o.CreatedAt,
		CompletedAt: o.CompletedAt,
	}
}
