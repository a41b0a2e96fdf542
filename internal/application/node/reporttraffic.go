package node

import (
	"context"
	"crypto/subtle"
	"time"

	"nodal/internal/domain/node"
	"nodal/internal/domain/traffic"
	"nodal/internal/shared/apperror"
)

// TrafficSample is one user's upload/download delta since the agent's last
// report, as posted to POST /api/node/traffic.
type TrafficSample struct {
	UserID   uint   `json:"user_id"`
	Upload   uint64 `json:"upload"`
	Download uint64 `json:"download"`
}

// TrafficPublisher appends one tuple per sample onto the durable traffic
// stream; declared locally so this use case does not import the Redis
// stream package directly.
type TrafficPublisher interface {
	Publish(ctx context.Context, t traffic.Tuple) (string, error)
}

// ReportTrafficUseCase authenticates the reporting node by its shared
// secret and publishes one stream tuple per sample, for the Traffic
// Aggregator to later fold into per-user traffic_used totals and the
// traffic log (spec.md §4.3, §4.4).
type ReportTrafficUseCase struct {
	nodes     node.Repository
	publisher TrafficPublisher
}

func NewReportTrafficUseCase(nodes node.Repository, publisher TrafficPublisher) *ReportTrafficUseCase {
	return &ReportTrafficUseCase{nodes: nodes, publisher: publisher}
}

func (uc *ReportTrafficUseCase) Execute(ctx context.Context, nodeID uint, secret string, samples []TrafficSample) error {
	n, err := uc.nodes.GetByID(ctx, nodeID)
	if err != nil {
		return apperror.Internal("lookup node", err)
	}
	if n == nil {
		return apperror.NotFound("node not found")
	}
	if subtle.ConstantTimeCompare([]byte(n.Secret), []byte(secret)) != 1 {
		return apperror.Unauthorized("invalid node secret")
	}

	now := time.Now()
	for _, s := range samples {
		if s.Upload == 0 && s.Download == 0 {
			continue
		}
		if _, err := uc.publisher.Publish(ctx, traffic.Tuple{
			NodeID:   n.ID,
			UserID:   s.UserID,
			Upload:   s.Upload,
			Download: s.Download,
			Ts:       now,
		}); err != nil {
			return apperror.Internal("publish traffic tuple", err)
		}
	}
	return nil
}
