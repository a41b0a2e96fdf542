package node

import (
	"context"
	"crypto/subtle"
	"time"

	"nodal/internal/domain/node"
	"nodal/internal/shared/apperror"
	applogger "nodal/internal/shared/logger"
)

type HeartbeatRequest struct {
	NodeID            uint
	Secret            string
	Status            string
	ActiveConnections *int
}

// NodesCacheInvalidator drops the `nodes:active` projection; declared
// locally so this use case does not import the Redis client directly
// (spec.md §4.5 invalidation rule "node create/update/delete").
type NodesCacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

// HeartbeatUseCase records an agent's liveness ping and status, and
// invalidates the active-nodes cache on any status transition (spec.md
// §4.4 "Heartbeat").
type HeartbeatUseCase struct {
	nodes node.Repository
	cache NodesCacheInvalidator
}

func NewHeartbeatUseCase(nodes node.Repository, cache NodesCacheInvalidator) *HeartbeatUseCase {
	return &HeartbeatUseCase{nodes: nodes, cache: cache}
}

func (uc *HeartbeatUseCase) Execute(ctx context.Context, req HeartbeatRequest) error {
	n, err := uc.nodes.GetByID(ctx, req.NodeID)
	if err != nil {
		return apperror.Internal("lookup node", err)
	}
	if n == nil {
		return apperror.NotFound("node not found")
	}
	if subtle.ConstantTimeCompare([]byte(n.Secret), []byte(req.Secret)) != 1 {
		return apperror.Unauthorized("invalid node secret")
	}

	status := node.Status(req.Status)
	transitioned := status != n.Status

	if err := uc.nodes.UpdateHeartbeat(ctx, n.ID, status, req.ActiveConnections, time.Now()); err != nil {
		return apperror.Internal("update heartbeat", err)
	}

	if transitioned && uc.cache != nil {
		if err := uc.cache.Invalidate(ctx); err != nil {
			applogger.Get().Warn("nodes cache invalidation failed", "error", err)
		}
	}
	return nil
}
