package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	activeNodesKey = "nodes:active"
	activeNodesTTL = 60 * time.Second
)

// CachedNode is the subset of node.Node the Clash renderer and the
// node-lookup handlers need, serialized as a single JSON blob keyed by
// nodes:active so a config pull never has to join across many small keys.
type CachedNode struct {
	ID       uint           `json:"id"`
	Name     string         `json:"name"`
	Host     string         `json:"host"`
	Port     int            `json:"port"`
	Protocol string         `json:"protocol"`
	Config   map[string]any `json:"config"`
}

type NodesCache struct {
	client *redis.Client
}

func NewNodesCache(client *redis.Client) *NodesCache {
	return &NodesCache{client: client}
}

func (c *NodesCache) GetActive(ctx context.Context) ([]*CachedNode, bool, error) {
	raw, err := c.client.Get(ctx, activeNodesKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get active nodes cache: %w", err)
	}
	var nodes []*CachedNode
	if err := json.Unmarshal(raw, &nodes); err != nil {
		return nil, false, fmt.Errorf("unmarshal active nodes cache: %w", err)
	}
	return nodes, true, nil
}

func (c *NodesCache) SetActive(ctx context.Context, nodes []*CachedNode) error {
	raw, err := json.Marshal(nodes)
	if err != nil {
		return fmt.Errorf("marshal active nodes: %w", err)
	}
	if err := c.client.Set(ctx, activeNodesKey, raw, activeNodesTTL).Err(); err != nil {
		return fmt.Errorf("set active nodes cache: %w", err)
	}
	return nil
}

func (c *NodesCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, activeNodesKey).Err(); err != nil {
		return fmt.Errorf("invalidate active nodes cache: %w", err)
	}
	return nil
}
