// Package pubsub publishes node-change events over Redis Pub/Sub and
// delivers received events to a subscriber's handler.
package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	applogger "nodal/internal/shared/logger"
)

const nodeConfigChannel = "node:config:update"

type NodeConfigEvent struct {
	NodeID    uint  `json:"node_id"`
	Timestamp int64 `json:"timestamp"`
}

type NodeConfigHandler func(ctx context.Context, event NodeConfigEvent)

// NodeConfigBus publishes a {node_id, timestamp} event on
// node:config:update when a node is created, updated, or deleted, and
// Subscribe hands each received event to a handler (spec.md §4.5).
type NodeConfigBus struct {
	client *redis.Client
}

func NewNodeConfigBus(client *redis.Client) *NodeConfigBus {
	return &NodeConfigBus{client: client}
}

func (b *NodeConfigBus) Publish(ctx context.Context, nodeID uint) error {
	data, err := json.Marshal(NodeConfigEvent{NodeID: nodeID, Timestamp: time.Now().Unix()})
	if err != nil {
		return fmt.Errorf("marshal node config event: %w", err)
	}
	if err := b.client.Publish(ctx, nodeConfigChannel, data).Err(); err != nil {
		return fmt.Errorf("publish node config event: %w", err)
	}
	return nil
}

func (b *NodeConfigBus) Subscribe(ctx context.Context, handler NodeConfigHandler) error {
	sub := b.client.Subscribe(ctx, nodeConfigChannel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe to node config channel: %w", err)
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var event NodeConfigEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				applogger.Get().Warn("failed to unmarshal node config event", "error", err)
				continue
			}
			go handler(context.Background(), event)
		}
	}
}
