package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"nodal/internal/domain/catalog"
	"nodal/internal/infrastructure/database"
	"nodal/internal/infrastructure/persistence/models"
)

type PackageRepository struct {
	db *gorm.DB
}

func NewPackageRepository(db *gorm.DB) catalog.Repository {
	return &PackageRepository{db: db}
}

func (r *PackageRepository) Create(ctx context.Context, p *catalog.Package) error {
	m, err := toPackageModel(p)
	if err != nil {
		return err
	}
	if err := database.TxFromContext(ctx, r.db).Create(m).Error; err != nil {
		return fmt.Errorf("create package: %w", err)
	}
	p.ID = m.ID
	return nil
}

func (r *PackageRepository) GetByID(ctx context.Context, id uint) (*catalog.Package, error) {
	var m models.PackageModel
	if err := database.TxFromContext(ctx, r.db).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get package: %w", err)
	}
	return fromPackageModel(&m)
}

func (r *PackageRepository) Update(ctx context.Context, p *catalog.Package) error {
	m, err := toPackageModel(p)
	if err != nil {
		return err
	}
	result := database.TxFromContext(ctx, r.db).Model(&models.PackageModel{}).
		Where("id = ?", m.ID).
		Updates(map[string]any{
			"name":           m.Name,
			"traffic_amount": m.TrafficAmount,
			"price":          m.Price,
			"duration_days":  m.DurationDays,
			"description":    m.Description,
			"is_active":      m.IsActive,
		})
	if result.Error != nil {
		return fmt.Errorf("update package: %w", result.Error)
	}
	return nil
}

func (r *PackageRepository) SoftDelete(ctx context.Context, id uint) error {
	if err := database.TxFromContext(ctx, r.db).Delete(&models.PackageModel{}, id).Error; err != nil {
		return fmt.Errorf("delete package: %w", err)
	}
	return nil
}

func (r *PackageRepository) ListActive(ctx context.Context) ([]*catalog.Package, error) {
	var rows []*models.PackageModel
	if err := database.TxFromContext(ctx, r.db).Where("is_active = ?", true).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list active packages: %w", err)
	}
	out := make([]*catalog.Package, 0, len(rows))
	for _, m := range rows {
		p, err := fromPackageModel(m)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *PackageRepository) ListAll(ctx context.Context) ([]*catalog.Package, error) {
	var rows []*models.PackageModel
	if err := database.TxFromContext(ctx, r.db).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list packages: %w", err)
	}
	out := make([]*catalog.Package, 0, len(rows))
	for _, m := range rows {
		p, err := fromPackageModel(m)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func toPackageModel(p *catalog.Package) (*models.PackageModel, error) {
	desc, err := json.Marshal(p.Description)
	if err != nil {
		return nil, fmt.Errorf("marshal package description: %w", err)
	}
	return &models.PackageModel{
		ID:            p.ID,
		Name:          p.Name,
		TrafficAmount: p.TrafficAmount,
		Price:         p.Price,
		DurationDays:  p.DurationDays,
		Description:   datatypes.JSON(desc),
		IsActive:      p.IsActive,
	}, nil
}

func fromPackageModel(m *models.PackageModel) (*catalog.Package, error) {
	var desc map[string]any
	if len(m.Description) > 0 {
		if err := json.Unmarshal(m.Description, &desc); err != nil {
			return nil, fmt.Errorf("unmarshal package description: %w", err)
		}
	}
	return &catalog.Package{
		ID:            m.ID,
		Name:          m.Name,
		TrafficAmount: m.TrafficAmount,
		Price:         m.Price,
		DurationDays:  m.DurationDays,
		Description:   desc,
		IsActive:      m.IsActive,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}, nil
}
