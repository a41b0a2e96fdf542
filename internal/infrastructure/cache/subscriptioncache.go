package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	subscriptionBodyKeyPrefix = "subscription:"
	subscriptionBodyTTL       = 300 * time.Second
)

// SubscriptionCache caches the fully-rendered Clash YAML document per
// token (spec.md §4.5 `subscription:{token}`), so a repeat pull of the
// same subscription skips node lookup and rendering entirely.
type SubscriptionCache struct {
	client *redis.Client
}

func NewSubscriptionCache(client *redis.Client) *SubscriptionCache {
	return &SubscriptionCache{client: client}
}

func (c *SubscriptionCache) key(token string) string {
	return subscriptionBodyKeyPrefix + token
}

func (c *SubscriptionCache) GetBody(ctx context.Context, token string) (string, bool, error) {
	body, err := c.client.Get(ctx, c.key(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get cached subscription body: %w", err)
	}
	return body, true, nil
}

func (c *SubscriptionCache) SetBody(ctx context.Context, token, body string) error {
	if err := c.client.Set(ctx, c.key(token), body, subscriptionBodyTTL).Err(); err != nil {
		return fmt.Errorf("set cached subscription body: %w", err)
	}
	return nil
}

func (c *SubscriptionCache) Invalidate(ctx context.Context, token string) error {
	if err := c.client.Del(ctx, c.key(token)).Err(); err != nil {
		return fmt.Errorf("invalidate cached subscription body: %w", err)
	}
	return nil
}
