package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"nodal/internal/domain/node"
	"nodal/internal/infrastructure/database"
	"nodal/internal/infrastructure/persistence/models"
)

type NodeRepository struct {
	db *gorm.DB
}

func NewNodeRepository(db *gorm.DB) node.Repository {
	return &NodeRepository{db: db}
}

func (r *NodeRepository) Create(ctx context.Context, n *node.Node) error {
	m, err := toNodeModel(n)
	if err != nil {
		return err
	}
	if err := database.TxFromContext(ctx, r.db).Create(m).Error; err != nil {
		return fmt.Errorf("create node: %w", err)
	}
	n.ID = m.ID
	return nil
}

func (r *NodeRepository) GetByID(ctx context.Context, id uint) (*node.Node, error) {
	var m models.NodeModel
	if err := database.TxFromContext(ctx, r.db).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get node: %w", err)
	}
	return fromNodeModel(&m)
}

func (r *NodeRepository) Update(ctx context.Context, n *node.Node) error {
	m, err := toNodeModel(n)
	if err != nil {
		return err
	}
	result := database.TxFromContext(ctx, r.db).Model(&models.NodeModel{}).
		Where("id = ?", m.ID).
		Updates(map[string]any{
			"name":             m.Name,
			"host":             m.Host,
			"port":             m.Port,
			"protocol":         m.Protocol,
			"secret":           m.Secret,
			"config":           m.Config,
			"status":           m.Status,
			"max_users":        m.MaxUsers,
			"include_in_clash": m.IncludeInClash,
			"sort_order":       m.SortOrder,
		})
	if result.Error != nil {
		return fmt.Errorf("update node: %w", result.Error)
	}
	return nil
}

func (r *NodeRepository) Delete(ctx context.Context, id uint) error {
	if err := database.TxFromContext(ctx, r.db).Delete(&models.NodeModel{}, id).Error; err != nil {
		return fmt.Errorf("delete node: %w", err)
	}
	return nil
}

func (r *NodeRepository) ListClashEligible(ctx context.Context) ([]*node.Node, error) {
	var rows []*models.NodeModel
	err := database.TxFromContext(ctx, r.db).
		Where("include_in_clash = ?", true).
		Order("sort_order ASC, name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list clash-eligible nodes: %w", err)
	}
	return fromNodeModels(rows)
}

func (r *NodeRepository) ListOnline(ctx context.Context) ([]*node.Node, error) {
	var rows []*models.NodeModel
	err := database.TxFromContext(ctx, r.db).
		Where("status = ?", string(node.StatusOnline)).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list online nodes: %w", err)
	}
	return fromNodeModels(rows)
}

func (r *NodeRepository) List(ctx context.Context) ([]*node.Node, error) {
	var rows []*models.NodeModel
	if err := database.TxFromContext(ctx, r.db).Order("sort_order ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list nodes: %w", err)
	}
	return fromNodeModels(rows)
}

func (r *NodeRepository) UpdateHeartbeat(ctx context.Context, id uint, status node.Status, currentUsers *int, at time.Time) error {
	updates := map[string]any{
		"status":         string(status),
		"last_heartbeat": at,
	}
	if currentUsers != nil {
		updates["current_users"] = *currentUsers
	}
	result := database.TxFromContext(ctx, r.db).Model(&models.NodeModel{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("update node heartbeat: %w", result.Error)
	}
	return nil
}

func toNodeModel(n *node.Node) (*models.NodeModel, error) {
	cfg, err := json.Marshal(n.Config)
	if err != nil {
		return nil, fmt.Errorf("marshal node config: %w", err)
	}
	return &models.NodeModel{
		ID:             n.ID,
		Name:           n.Name,
		Host:           n.Host,
		Port:           n.Port,
		Protocol:       string(n.Protocol),
		Secret:         n.Secret,
		Config:         datatypes.JSON(cfg),
		Status:         string(n.Status),
		MaxUsers:       n.MaxUsers,
		CurrentUsers:   n.CurrentUsers,
		TotalUpload:    n.TotalUpload,
		TotalDownload:  n.TotalDownload,
		LastHeartbeat:  n.LastHeartbeat,
		IncludeInClash: n.IncludeInClash,
		SortOrder:      n.SortOrder,
	}, nil
}

func fromNodeModel(m *models.NodeModel) (*node.Node, error) {
	var cfg map[string]any
	if len(m.Config) > 0 {
		if err := json.Unmarshal(m.Config, &cfg); err != nil {
			return nil, fmt.Errorf("unmarshal node config: %w", err)
		}
	}
	return &node.Node{
		ID:             m.ID,
		Name:           m.Name,
		Host:           m.Host,
		Port:           m.Port,
		Protocol:       node.Protocol(m.Protocol),
		Secret:         m.Secret,
		Config:         cfg,
		Status:         node.Status(m.Status),
		MaxUsers:       m.MaxUsers,
		CurrentUsers:   m.CurrentUsers,
		TotalUpload:    m.TotalUpload,
		TotalDownload:  m.TotalDownload,
		LastHeartbeat:  m.LastHeartbeat,
		IncludeInClash: m.IncludeInClash,
		SortOrder:      m.SortOrder,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}, nil
}

func fromNodeModels(rows []*models.NodeModel) ([]*node.Node, error) {
	out := make([]*node.Node, 0, len(rows))
	for _, m := range rows {
		n, err := fromNodeModel(m)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}
