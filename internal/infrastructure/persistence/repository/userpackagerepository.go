package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"nodal/internal/domain/entitlement"
	"nodal/internal/infrastructure/database"
	"nodal/internal/infrastructure/persistence/models"
)

type UserPackageRepository struct {
	db *gorm.DB
}

func NewUserPackageRepository(db *gorm.DB) entitlement.Repository {
	return &UserPackageRepository{db: db}
}

func (r *UserPackageRepository) Create(ctx context.Context, e *entitlement.UserPackage) error {
	m := toUserPackageModel(e)
	if err := database.TxFromContext(ctx, r.db).Create(m).Error; err != nil {
		return fmt.Errorf("create user package: %w", err)
	}
	e.ID = m.ID
	return nil
}

func (r *UserPackageRepository) GetByOrderID(ctx context.Context, orderID uint) (*entitlement.UserPackage, error) {
	var m models.UserPackageModel
	err := database.TxFromContext(ctx, r.db).Where("order_id = ?", orderID).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user package by order: %w", err)
	}
	return fromUserPackageModel(&m), nil
}

// FindCurrent returns the active, unexpired, unexhausted entitlement whose
// expiry is furthest in the future (spec.md §4.1 step 5 tie-break).
func (r *UserPackageRepository) FindCurrent(ctx context.Context, userID uint, now time.Time) (*entitlement.UserPackage, error) {
	var m models.UserPackageModel
	err := database.TxFromContext(ctx, r.db).
		Where("user_id = ? AND status = ? AND expires_at > ? AND traffic_used < traffic_quota", userID, "active", now).
		Order("expires_at DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find current user package: %w", err)
	}
	return fromUserPackageModel(&m), nil
}

func (r *UserPackageRepository) ListByUser(ctx context.Context, userID uint) ([]*entitlement.UserPackage, error) {
	var rows []*models.UserPackageModel
	err := database.TxFromContext(ctx, r.db).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list user packages: %w", err)
	}
	out := make([]*entitlement.UserPackage, 0, len(rows))
	for _, m := range rows {
		out = append(out, fromUserPackageModel(m))
	}
	return out, nil
}

func toUserPackageModel(e *entitlement.UserPackage) *models.UserPackageModel {
	return &models.UserPackageModel{
		ID:           e.ID,
		UserID:       e.UserID,
		PackageID:    e.PackageID,
		OrderID:      e.OrderID,
		TrafficQuota: e.TrafficQuota,
		TrafficUsed:  e.TrafficUsed,
		ExpiresAt:    e.ExpiresAt,
		Status:       string(e.Status),
	}
}

func fromUserPackageModel(m *models.UserPackageModel) *entitlement.UserPackage {
	return &entitlement.UserPackage{
		ID:           m.ID,
		UserID:       m.UserID,
		PackageID:    m.PackageID,
		OrderID:      m.OrderID,
		TrafficQuota: m.TrafficQuota,
		TrafficUsed:  m.TrafficUsed,
		ExpiresAt:    m.ExpiresAt,
		Status:       entitlement.Status(m.Status),
		CreatedAt:    m.CreatedAt,
	}
}
