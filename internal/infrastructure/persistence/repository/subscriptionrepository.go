package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"nodal/internal/domain/subscription"
	"nodal/internal/infrastructure/database"
	"nodal/internal/infrastructure/persistence/models"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) subscription.Repository {
	return &SubscriptionRepository{db: db}
}

func (r *SubscriptionRepository) Create(ctx context.Context, s *subscription.Subscription) error {
	m := &models.SubscriptionModel{UserID: s.UserID(), Token: s.Token()}
	if err := database.TxFromContext(ctx, r.db).Create(m).Error; err != nil {
		return fmt.Errorf("create subscription: %w", err)
	}
	return nil
}

func (r *SubscriptionRepository) GetByUserID(ctx context.Context, userID uint) (*subscription.Subscription, error) {
	var m models.SubscriptionModel
	if err := database.TxFromContext(ctx, r.db).Where("user_id = ?", userID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get subscription by user: %w", err)
	}
	return subscription.ReconstructSubscription(m.ID, m.UserID, m.Token, m.LastAccessed, m.CreatedAt, m.UpdatedAt)
}

func (r *SubscriptionRepository) GetByToken(ctx context.Context, token string) (*subscription.Subscription, error) {
	var m models.SubscriptionModel
	if err := database.TxFromContext(ctx, r.db).Where("token = ?", token).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get subscription by token: %w", err)
	}
	return subscription.ReconstructSubscription(m.ID, m.UserID, m.Token, m.LastAccessed, m.CreatedAt, m.UpdatedAt)
}

func (r *SubscriptionRepository) Update(ctx context.Context, s *subscription.Subscription) error {
	result := database.TxFromContext(ctx, r.db).Model(&models.SubscriptionModel{}).
		Where("id = ?", s.ID()).
		Updates(map[string]any{"token": s.Token(), "last_accessed": s.LastAccessed()})
	if result.Error != nil {
		return fmt.Errorf("update subscription: %w", result.Error)
	}
	return nil
}
