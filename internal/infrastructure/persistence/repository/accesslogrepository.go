package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"nodal/internal/domain/accesslog"
	"nodal/internal/infrastructure/database"
	"nodal/internal/infrastructure/persistence/models"
)

type AccessLogRepository struct {
	db *gorm.DB
}

func NewAccessLogRepository(db *gorm.DB) accesslog.AccessRepository {
	return &AccessLogRepository{db: db}
}

func (r *AccessLogRepository) Create(ctx context.Context, l *accesslog.AccessLog) error {
	m := &models.AccessLogModel{
		UserID:            l.UserID,
		SubscriptionToken: l.SubscriptionToken,
		IP:                l.IP,
		UserAgent:         l.UserAgent,
		Status:            string(l.Status),
		Ts:                l.Ts,
	}
	if err := database.TxFromContext(ctx, r.db).Create(m).Error; err != nil {
		return fmt.Errorf("create access log: %w", err)
	}
	l.ID = m.ID
	return nil
}

func (r *AccessLogRepository) List(ctx context.Context, limit, offset int) ([]*accesslog.AccessLog, error) {
	var rows []*models.AccessLogModel
	err := database.TxFromContext(ctx, r.db).
		Order("ts DESC").
		Limit(limit).Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list access logs: %w", err)
	}
	out := make([]*accesslog.AccessLog, 0, len(rows))
	for _, m := range rows {
		out = append(out, &accesslog.AccessLog{
			ID:                m.ID,
			UserID:            m.UserID,
			SubscriptionToken: m.SubscriptionToken,
			IP:                m.IP,
			UserAgent:         m.UserAgent,
			Status:            accesslog.AccessStatus(m.Status),
			Ts:                m.Ts,
		})
	}
	return out, nil
}

type AdminLogRepository struct {
	db *gorm.DB
}

func NewAdminLogRepository(db *gorm.DB) accesslog.AdminRepository {
	return &AdminLogRepository{db: db}
}

func (r *AdminLogRepository) Create(ctx context.Context, l *accesslog.AdminLog) error {
	m := &models.AdminLogModel{
		UserID:  l.UserID,
		Action:  l.Action,
		Target:  l.Target,
		Details: l.Details,
		IP:      l.IP,
		Ts:      l.Ts,
	}
	if err := database.TxFromContext(ctx, r.db).Create(m).Error; err != nil {
		return fmt.Errorf("create admin log: %w", err)
	}
	l.ID = m.ID
	return nil
}

func (r *AdminLogRepository) List(ctx context.Context, limit, offset int) ([]*accesslog.AdminLog, error) {
	var rows []*models.AdminLogModel
	err := database.TxFromContext(ctx, r.db).
		Order("ts DESC").
		Limit(limit).Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list admin logs: %w", err)
	}
	out := make([]*accesslog.AdminLog, 0, len(rows))
	for _, m := range rows {
		out = append(out, &accesslog.AdminLog{
			ID:      m.ID,
			UserID:  m.UserID,
			Action:  m.Action,
			Target:  m.Target,
			Details: m.Details,
			IP:      m.IP,
			Ts:      m.Ts,
		})
	}
	return out, nil
}
