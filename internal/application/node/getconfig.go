// Package node implements the Node Sync Fabric's control-plane side
// (spec.md §4.4): the agent config pull and heartbeat endpoints.
package node

import (
	"context"
	"crypto/subtle"
	"time"

	"nodal/internal/domain/node"
	domainuser "nodal/internal/domain/user"
	"nodal/internal/shared/apperror"
)

type UserRef struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

type ConfigResult struct {
	NodeID   uint           `json:"node_id"`
	Name     string         `json:"name"`
	Host     string         `json:"host"`
	Port     int            `json:"port"`
	Protocol string         `json:"protocol"`
	Config   map[string]any `json:"config"`
	Users    []UserRef      `json:"users"`
	MaxUsers int            `json:"max_users"`
}

// GetConfigUseCase authenticates a node by its shared secret and returns
// its config plus the active-user projection (spec.md §4.4 "Agent pull").
type GetConfigUseCase struct {
	nodes node.Repository
	users domainuser.Repository
}

func NewGetConfigUseCase(nodes node.Repository, users domainuser.Repository) *GetConfigUseCase {
	return &GetConfigUseCase{nodes: nodes, users: users}
}

func (uc *GetConfigUseCase) Execute(ctx context.Context, nodeID uint, secret string) (*ConfigResult, error) {
	n, err := uc.nodes.GetByID(ctx, nodeID)
	if err != nil {
		return nil, apperror.Internal("lookup node", err)
	}
	if n == nil {
		return nil, apperror.NotFound("node not found")
	}
	if subtle.ConstantTimeCompare([]byte(n.Secret), []byte(secret)) != 1 {
		return nil, apperror.Unauthorized("invalid node secret")
	}

	active, err := uc.users.ListActiveEntitled(ctx, time.Now())
	if err != nil {
		return nil, apperror.Internal("list active entitled users", err)
	}
	refs := make([]UserRef, 0, len(active))
	for _, u := range active {
		refs = append(refs, UserRef{ID: u.ID, Email: u.Email})
	}

	return &ConfigResult{
		NodeID:   n.ID,
		Name:     n.Name,
		Host:     n.Host,
		Port:     n.Port,
		Protocol: string(n.Protocol),
		Config:   n.Config,
		Users:    refs,
		MaxUsers: n.MaxUsers,
	}, nil
}
