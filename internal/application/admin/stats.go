package admin

import (
	"context"
	"time"

	"nodal/internal/domain/accesslog"
	"nodal/internal/domain/node"
	"nodal/internal/shared/apperror"
)

// OverviewResult backs GET /api/admin/stats/overview.
type OverviewResult struct {
	OnlineNodes int `json:"online_nodes"`
	TotalNodes  int `json:"total_nodes"`
}

type GetOverviewUseCase struct {
	nodes node.Repository
}

func NewGetOverviewUseCase(nodes node.Repository) *GetOverviewUseCase {
	return &GetOverviewUseCase{nodes: nodes}
}

func (uc *GetOverviewUseCase) Execute(ctx context.Context) (*OverviewResult, error) {
	online, err := uc.nodes.ListOnline(ctx)
	if err != nil {
		return nil, apperror.Internal("list online nodes", err)
	}
	all, err := uc.nodes.List(ctx)
	if err != nil {
		return nil, apperror.Internal("list nodes", err)
	}
	return &OverviewResult{OnlineNodes: len(online), TotalNodes: len(all)}, nil
}

// TrafficStatsResult backs GET /api/admin/stats/traffic: the sum of every
// node's total_upload/total_download columns. Neither UpdateHeartbeat nor
// the traffic aggregator writes those columns.
type TrafficStatsResult struct {
	TotalUpload   uint64 `json:"total_upload"`
	TotalDownload uint64 `json:"total_download"`
}

type GetTrafficStatsUseCase struct {
	nodes node.Repository
}

func NewGetTrafficStatsUseCase(nodes node.Repository) *GetTrafficStatsUseCase {
	return &GetTrafficStatsUseCase{nodes: nodes}
}

func (uc *GetTrafficStatsUseCase) Execute(ctx context.Context) (*TrafficStatsResult, error) {
	all, err := uc.nodes.List(ctx)
	if err != nil {
		return nil, apperror.Internal("list nodes", err)
	}
	result := &TrafficStatsResult{}
	for _, n := range all {
		result.TotalUpload += n.TotalUpload
		result.TotalDownload += n.TotalDownload
	}
	return result, nil
}

type AccessLogEntry struct {
	UserID            *uint     `json:"user_id,omitempty"`
	SubscriptionToken string    `json:"subscription_token"`
	IP                string    `json:"ip"`
	UserAgent         string    `json:"user_agent"`
	Status            string    `json:"status"`
	Ts                time.Time `json:"ts"`
}

// ListAccessLogsUseCase serves GET /api/admin/access-logs, the audit
// trail for every subscription fetch spec.md §4.1 step 2/4/5 logs.
type ListAccessLogsUseCase struct {
	logs accesslog.AccessRepository
}

func NewListAccessLogsUseCase(logs accesslog.AccessRepository) *ListAccessLogsUseCase {
	return &ListAccessLogsUseCase{logs: logs}
}

func (uc *ListAccessLogsUseCase) Execute(ctx context.Context, limit, offset int) ([]AccessLogEntry, error) {
	entries, err := uc.logs.List(ctx, limit, offset)
	if err != nil {
		return nil, apperror.Internal("list access logs", err)
	}
	out := make([]AccessLogEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, AccessLogEntry{
			UserID:            e.UserID,
			SubscriptionToken: e.SubscriptionToken,
			IP:                e.IP,
			UserAgent:         e.UserAgent,
			Status:            string(e.Status),
			Ts:                e.Ts,
		})
	}
	return out, nil
}

type AdminLogEntry struct {
	UserID  uint      `json:"user_id"`
	Action  string    `json:"action"`
	Target  string    `json:"target"`
	Details string    `json:"details"`
	IP      string    `json:"ip"`
	Ts      time.Time `json:"ts"`
}

// ListAdminLogsUseCase serves the admin-mutation audit trail every
// node/package/balance change writes via RecordAdminActionUseCase.
type ListAdminLogsUseCase struct {
	logs accesslog.AdminRepository
}

func NewListAdminLogsUseCase(logs accesslog.AdminRepository) *ListAdminLogsUseCase {
	return &ListAdminLogsUseCase{logs: logs}
}

func (uc *ListAdminLogsUseCase) Execute(ctx context.Context, limit, offset int) ([]AdminLogEntry, error) {
	entries, err := uc.logs.List(ctx, limit, offset)
	if err != nil {
		return nil, apperror.Internal("list admin logs", err)
	}
	out := make([]AdminLogEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, AdminLogEntry{
			UserID:  e.UserID,
			Action:  e.Action,
			Target:  e.Target,
			Details: e.Details,
			IP:      e.IP,
			Ts:      e.Ts,
		})
	}
	return out, nil
}

// RecordAdminActionUseCase appends one AdminLog row; the handler layer
// calls this after every successful node/package/balance mutation.
type RecordAdminActionUseCase struct {
	logs accesslog.AdminRepository
}

func NewRecordAdminActionUseCase(logs accesslog.AdminRepository) *RecordAdminActionUseCase {
	return &RecordAdminActionUseCase{logs: logs}
}

func (uc *RecordAdminActionUseCase) Execute(ctx context.Context, adminUserID uint, action, target, details, ip string) error {
	err := uc.logs.Create(ctx, &accesslog.AdminLog{
		UserID:  adminUserID,
		Action:  action,
		Target:  target,
		Details: details,
		IP:      ip,
		Ts:      time.Now(),
	})
	if err != nil {
		return apperror.Internal("record admin action", err)
	}
	return nil
}
