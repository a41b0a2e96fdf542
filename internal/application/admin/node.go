// Package admin implements the minimal admin CRUD surface
// adds around nodes, packages, user balances, and read-only stats/logs —
// the slice the data-plane invariants actually depend on (node mutations
// invalidate the nodes:active cache and publish a node-change event; balance
// adjustments must share the purchase protocol's row-lock + ledger shape).
package admin

import (
	"context"

	"nodal/internal/domain/node"
	"nodal/internal/shared/apperror"
)

// NodesCacheInvalidator drops the shared nodes:active cache entry.
type NodesCacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

// NodeConfigPublisher publishes a node-change event carrying the node's ID
// on the node:config:update channel (spec.md §4.5).
type NodeConfigPublisher interface {
	Publish(ctx context.Context, nodeID uint) error
}

type CreateNodeRequest struct {
	Name           string
	Host           string
	Port           int
	Protocol       string
	Secret         string
	Config         map[string]any
	MaxUsers       int
	IncludeInClash bool
	SortOrder      int
}

type NodeResult struct {
	ID             uint           `json:"id"`
	Name           string         `json:"name"`
	Host           string         `json:"host"`
	Port           int            `json:"port"`
	Protocol       string         `json:"protocol"`
	Config         map[string]any `json:"config"`
	Status         string         `json:"status"`
	MaxUsers       int            `json:"max_users"`
	CurrentUsers   int            `json:"current_users"`
	TotalUpload    uint64         `json:"total_upload"`
	TotalDownload  uint64         `json:"total_download"`
	IncludeInClash bool           `json:"include_in_clash"`
	SortOrder      int            `json:"sort_order"`
}

// NodeMutationUseCase handles create/update/delete, the three mutations
// that require cache invalidation and pub/sub fanout (spec.md §4.5 "node
// create/update/delete").
type NodeMutationUseCase struct {
	nodes     node.Repository
	cache     NodesCacheInvalidator
	publisher NodeConfigPublisher
}

func NewNodeMutationUseCase(nodes node.Repository, cache NodesCacheInvalidator, publisher NodeConfigPublisher) *NodeMutationUseCase {
	return &NodeMutationUseCase{nodes: nodes, cache: cache, publisher: publisher}
}

func (uc *NodeMutationUseCase) Create(ctx context.Context, req CreateNodeRequest) (*NodeResult, error) {
	protocol := node.Protocol(req.Protocol)
	if !protocol.Valid() {
		return nil, apperror.Validation("invalid protocol")
	}
	if err := node.ValidatePort(req.Port); err != nil {
		return nil, err
	}

	n := &node.Node{
		Name:           req.Name,
		Host:           req.Host,
		Port:           req.Port,
		Protocol:       protocol,
		Secret:         req.Secret,
		Config:         req.Config,
		Status:         node.StatusOffline,
		MaxUsers:       req.MaxUsers,
		IncludeInClash: req.IncludeInClash,
		SortOrder:      req.SortOrder,
	}
	if err := uc.nodes.Create(ctx, n); err != nil {
		return nil, apperror.Internal("create node", err)
	}
	uc.notify(ctx, n.ID)
	return toNodeResult(n), nil
}

type UpdateNodeRequest struct {
	NodeID         uint
	Name           string
	Host           string
	Port           int
	Config         map[string]any
	MaxUsers       int
	IncludeInClash bool
	SortOrder      int
}

func (uc *NodeMutationUseCase) Update(ctx context.Context, req UpdateNodeRequest) (*NodeResult, error) {
	if err := node.ValidatePort(req.Port); err != nil {
		return nil, err
	}
	n, err := uc.nodes.GetByID(ctx, req.NodeID)
	if err != nil {
		return nil, apperror.Internal("lookup node", err)
	}
	if n == nil {
		return nil, apperror.NotFound("node not found")
	}

	n.Name = req.Name
	n.Host = req.Host
	n.Port = req.Port
	n.Config = req.Config
	n.MaxUsers = req.MaxUsers
	n.IncludeInClash = req.IncludeInClash
	n.SortOrder = req.SortOrder

	if err := uc.nodes.Update(ctx, n); err != nil {
		return nil, apperror.Internal("update node", err)
	}
	uc.notify(ctx, n.ID)
	return toNodeResult(n), nil
}

func (uc *NodeMutationUseCase) Delete(ctx context.Context, nodeID uint) error {
	if err := uc.nodes.Delete(ctx, nodeID); err != nil {
		return apperror.Internal("delete node", err)
	}
	uc.notify(ctx, nodeID)
	return nil
}

// notify drops the nodes:active cache entry and publishes a node-change
// event, swallowing failures: a stale cache self-heals on TTL expiry.
func (uc *NodeMutationUseCase) notify(ctx context.Context, nodeID uint) {
	if uc.cache != nil {
		_ = uc.cache.Invalidate(ctx)
	}
	if uc.publisher != nil {
		_ = uc.publisher.Publish(ctx, nodeID)
	}
}

// ListNodesUseCase serves GET /api/admin/nodes, bypassing the
// nodes:active cache since it must show offline/maintenance nodes too.
type ListNodesUseCase struct {
	nodes node.Repository
}

func NewListNodesUseCase(nodes node.Repository) *ListNodesUseCase {
	return &ListNodesUseCase{nodes: nodes}
}

func (uc *ListNodesUseCase) Execute(ctx context.Context) ([]*NodeResult, error) {
	all, err := uc.nodes.List(ctx)
	if err != nil {
		return nil, apperror.Internal("list nodes", err)
	}
	out := make([]*NodeResult, 0, len(all))
	for _, n := range all {
		out = append(out, toNodeResult(n))
	}
	return out, nil
}

func toNodeResult(n *node.Node) *NodeResult {
	return &NodeResult{
		ID:             n.ID,
		Name:           n.Name,
		Host:           n.Host,
		Port:           n.Port,
		Protocol:       string(n.Protocol),
		Config:         n.Config,
		Status:         string(n.Status),
		MaxUsers:       n.MaxUsers,
		CurrentUsers:   n.CurrentUsers,
		TotalUpload:    n.TotalUpload,
		TotalDownload:  n.TotalDownload,
		IncludeInClash: n.IncludeInClash,
		SortOrder:      n.SortOrder,
	}
}
