package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"nodal/internal/domain/traffic"
	"nodal/internal/infrastructure/database"
	"nodal/internal/infrastructure/persistence/models"
)

type TrafficRepository struct {
	db *gorm.DB
}

func NewTrafficRepository(db *gorm.DB) traffic.Repository {
	return &TrafficRepository{db: db}
}

func (r *TrafficRepository) AppendBatch(ctx context.Context, logs []*traffic.Log) error {
	if len(logs) == 0 {
		return nil
	}
	rows := make([]*models.TrafficLogModel, 0, len(logs))
	for _, l := range logs {
		rows = append(rows, &models.TrafficLogModel{
			UserID:     l.UserID,
			NodeID:     l.NodeID,
			Upload:     l.Upload,
			Download:   l.Download,
			RecordedAt: l.RecordedAt,
		})
	}
	if err := database.TxFromContext(ctx, r.db).Create(&rows).Error; err != nil {
		return fmt.Errorf("append traffic logs: %w", err)
	}
	return nil
}
