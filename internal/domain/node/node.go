// Package node holds the Node aggregate: a proxy server the control plane
// projects entitlements onto (spec.md §3).
package node

import (
	"context"
	"time"

	"nodal/internal/shared/apperror"
)

type Protocol string

const (
	ProtocolShadowsocks Protocol = "shadowsocks"
	ProtocolVMess       Protocol = "vmess"
	ProtocolTrojan      Protocol = "trojan"
	ProtocolHysteria2   Protocol = "hysteria2"
	ProtocolVLESS       Protocol = "vless"
)

func (p Protocol) Valid() bool {
	switch p {
	case ProtocolShadowsocks, ProtocolVMess, ProtocolTrojan, ProtocolHysteria2, ProtocolVLESS:
		return true
	}
	return false
}

type Status string

const (
	StatusOnline      Status = "online"
	StatusOffline     Status = "offline"
	StatusMaintenance Status = "maintenance"
)

// Node never serializes Secret to end users; only the paired agent ever
// receives it, and only over its own authenticated config-pull endpoint.
type Node struct {
	ID             uint
	Name           string
	Host           string
	Port           int
	Protocol       Protocol
	Secret         string
	Config         map[string]any // opaque keyed document, spec.md §9
	Status         Status
	MaxUsers       int
	CurrentUsers   int
	TotalUpload    uint64
	TotalDownload  uint64
	LastHeartbeat  *time.Time
	IncludeInClash bool
	SortOrder      int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ValidatePort enforces spec.md §8's boundary: 0 and 65536 rejected, 1 and
// 65535 accepted.
func ValidatePort(port int) error {
	if port < 1 || port > 65535 {
		return apperror.Validation("port must be between 1 and 65535")
	}
	return nil
}

func (n *Node) IsOnline() bool { return n.Status == StatusOnline }

type Repository interface {
	Create(ctx context.Context, n *Node) error
	GetByID(ctx context.Context, id uint) (*Node, error)
	Update(ctx context.Context, n *Node) error
	Delete(ctx context.Context, id uint) error
	// ListClashEligible returns nodes with include_in_clash=true ordered by
	// (sort_order asc, name asc), per spec.md §4.1 step 6.
	ListClashEligible(ctx context.Context) ([]*Node, error)
	// ListOnline returns nodes with status='online', backing the
	// nodes:active cache key (spec.md §4.5).
	ListOnline(ctx context.Context) ([]*Node, error)
	List(ctx context.Context) ([]*Node, error)
	UpdateHeartbeat(ctx context.Context, id uint, status Status, currentUsers *int, at time.Time) error
}
