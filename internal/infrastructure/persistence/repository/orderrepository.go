package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"nodal/internal/domain/order"
	"nodal/internal/infrastructure/database"
	"nodal/internal/infrastructure/persistence/models"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) order.Repository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	m := toOrderModel(o)
	if err := database.TxFromContext(ctx, r.db).Create(m).Error; err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	o.ID = m.ID
	return nil
}

func (r *OrderRepository) Update(ctx context.Context, o *order.Order) error {
	m := toOrderModel(o)
	result := database.TxFromContext(ctx, r.db).Model(&models.OrderModel{}).
		Where("id = ?", m.ID).
		Updates(map[string]any{
			"status":       m.Status,
			"completed_at": m.CompletedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("update order: %w", result.Error)
	}
	return nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id uint) (*order.Order, error) {
	var m models.OrderModel
	if err := database.TxFromContext(ctx, r.db).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return fromOrderModel(&m), nil
}

func (r *OrderRepository) GetByIDForUser(ctx context.Context, id, userID uint) (*order.Order, error) {
	var m models.OrderModel
	err := database.TxFromContext(ctx, r.db).Where("id = ? AND user_id = ?", id, userID).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order for user: %w", err)
	}
	return fromOrderModel(&m), nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID uint) ([]*order.Order, error) {
	var rows []*models.OrderModel
	err := database.TxFromContext(ctx, r.db).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	out := make([]*order.Order, 0, len(rows))
	for _, m := range rows {
		out = append(out, fromOrderModel(m))
	}
	return out, nil
}

func (r *OrderRepository) CountCompleted(ctx context.Context, userID uint) (int, error) {
	var count int64
	err := database.TxFromContext(ctx, r.db).Model(&models.OrderModel{}).
		Where("user_id = ? AND status = ?", userID, string(order.StatusCompleted)).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count completed orders: %w", err)
	}
	return int(count), nil
}

func toOrderModel(o *order.Order) *models.OrderModel {
	return &models.OrderModel{
		ID:          o.ID,
		OrderNo:     o.OrderNo,
		UserID:      o.UserID,
		PackageID:   o.PackageID,
		Amount:      o.Amount,
		Status:      string(o.Status),
		CompletedAt: o.CompletedAt,
	}
}

func fromOrderModel(m *models.OrderModel) *order.Order {
	return &order.Order{
		ID:          m.ID,
		OrderNo:     m.OrderNo,
		UserID:      m.UserID,
		PackageID:   m.PackageID,
		Amount:      m.Amount,
		Status:      order.Status(m.Status),
		CreatedAt:   m.CreatedAt,
		CompletedAt: m.CompletedAt,
	}
}
