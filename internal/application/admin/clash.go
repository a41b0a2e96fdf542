package admin

import (
	"context"

	appsubscription "nodal/internal/application/subscription"
	"nodal/internal/domain/node"
	"nodal/internal/shared/apperror"
)

// ClashPreviewResult holds the three top-level Clash document sections,
// split apart so /api/admin/clash/{proxy-groups,rules,generate} can each
// return just the slice they advertise.
type ClashPreviewResult struct {
	Proxies     []map[string]any `json:"proxies,omitempty"`
	ProxyGroups []map[string]any `json:"proxy_groups,omitempty"`
	Rules       []string         `json:"rules,omitempty"`
}

// ClashPreviewUseCase renders the same Clash document the subscription
// materializer would produce for a user entitled to every clash-eligible
// node, so admins can inspect it without owning a subscription token.
type ClashPreviewUseCase struct {
	nodes node.Repository
}

func NewClashPreviewUseCase(nodes node.Repository) *ClashPreviewUseCase {
	return &ClashPreviewUseCase{nodes: nodes}
}

func (uc *ClashPreviewUseCase) render(ctx context.Context) ([]map[string]any, []map[string]any, []string, error) {
	eligible, err := uc.nodes.ListClashEligible(ctx)
	if err != nil {
		return nil, nil, nil, apperror.Internal("list clash eligible nodes", err)
	}
	proxies, groups, rules, err := appsubscription.RenderClashDocument(eligible)
	if err != nil {
		return nil, nil, nil, apperror.Internal("render clash document", err)
	}
	return proxies, groups, rules, nil
}

func (uc *ClashPreviewUseCase) ProxyGroups(ctx context.Context) ([]map[string]any, error) {
	_, groups, _, err := uc.render(ctx)
	return groups, err
}

func (uc *ClashPreviewUseCase) Rules(ctx context.Context) ([]string, error) {
	_, _, rules, err := uc.render(ctx)
	return rules, err
}

func (uc *ClashPreviewUseCase) Generate(ctx context.Context) (*ClashPreviewResult, error) {
	proxies, groups, rules, err := uc.render(ctx)
	if err != nil {
		return nil, err
	}
	return &ClashPreviewResult{Proxies: proxies, ProxyGroups: groups, Rules: rules}, nil
}
