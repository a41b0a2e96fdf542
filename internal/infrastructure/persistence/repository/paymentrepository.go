package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"nodal/internal/domain/payment"
	"nodal/internal/infrastructure/database"
	"nodal/internal/infrastructure/persistence/models"
)

type CoinTransactionRepository struct {
	db *gorm.DB
}

func NewCoinTransactionRepository(db *gorm.DB) payment.Repository {
	return &CoinTransactionRepository{db: db}
}

func (r *CoinTransactionRepository) Create(ctx context.Context, t *payment.CoinTransaction) error {
	m := &models.CoinTransactionModel{
		UserID:        t.UserID,
		Amount:        t.Amount,
		Type:          string(t.Type),
		Description:   t.Description,
		RelatedUserID: t.RelatedUserID,
	}
	if err := database.TxFromContext(ctx, r.db).Create(m).Error; err != nil {
		return fmt.Errorf("create coin transaction: %w", err)
	}
	t.ID = m.ID
	return nil
}

func (r *CoinTransactionRepository) ListRecentByUser(ctx context.Context, userID uint, limit int) ([]*payment.CoinTransaction, error) {
	var rows []*models.CoinTransactionModel
	err := database.TxFromContext(ctx, r.db).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list coin transactions: %w", err)
	}
	out := make([]*payment.CoinTransaction, 0, len(rows))
	for _, m := range rows {
		out = append(out, &payment.CoinTransaction{
			ID:            m.ID,
			UserID:        m.UserID,
			Amount:        m.Amount,
			Type:          payment.Type(m.Type),
			Description:   m.Description,
			RelatedUserID: m.RelatedUserID,
			CreatedAt:     m.CreatedAt,
		})
	}
	return out, nil
}

func (r *CoinTransactionRepository) ExistsReferralForReferee(ctx context.Context, refereeUserID uint) (bool, error) {
	var count int64
	err := database.TxFromContext(ctx, r.db).Model(&models.CoinTransactionModel{}).
		Where("type = ? AND related_user_id = ?", string(payment.TypeReferral), refereeUserID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check referral transaction existence: %w", err)
	}
	return count > 0, nil
}

func (r *CoinTransactionRepository) SumReferralEarnings(ctx context.Context, referrerUserID uint) (int64, error) {
	var total int64
	row := database.TxFromContext(ctx, r.db).Model(&models.CoinTransactionModel{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND type = ?", referrerUserID, string(payment.TypeReferral)).
		Row()
	if err := row.Scan(&total); err != nil {
		return 0, fmt.Errorf("sum referral earnings: %w", err)
	}
	return total, nil
}

func (r *CoinTransactionRepository) ExistsProcessedWebhookEvent(ctx context.Context, eventID string) (bool, error) {
	var m models.ProcessedWebhookEventModel
	err := database.TxFromContext(ctx, r.db).Where("event_id = ?", eventID).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("check webhook event: %w", err)
	}
	return true, nil
}

func (r *CoinTransactionRepository) MarkWebhookEventProcessed(ctx context.Context, eventID string) error {
	m := &models.ProcessedWebhookEventModel{EventID: eventID, ProcessedAt: time.Now()}
	if err := database.TxFromContext(ctx, r.db).Create(m).Error; err != nil {
		return fmt.Errorf("mark webhook event processed: %w", err)
	}
	return nil
}
