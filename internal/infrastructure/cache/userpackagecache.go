package cache

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	userPackageKeyPrefix = "user:package:"
	userPackageBaseTTL   = 5 * time.Minute
	userPackageJitter    = 2 * time.Minute // anti-stampede: TTL lands in [5,7) minutes
	nullMarkerField      = "_null"
	nullMarkerTTL        = 30 * time.Second
)

// CachedEntitlement mirrors entitlement.UserPackage's fields the
// subscription-materialization hot path actually reads.
type CachedEntitlement struct {
	ID           uint
	PackageID    uint
	TrafficQuota uint64
	TrafficUsed  uint64
	ExpiresAt    time.Time
	NotFound     bool
}

// UserPackageCache caches each user's current entitlement so materializing
// a Clash config doesn't hit the database on every subscription fetch.
type UserPackageCache struct {
	client *redis.Client
}

func NewUserPackageCache(client *redis.Client) *UserPackageCache {
	return &UserPackageCache{client: client}
}

func (c *UserPackageCache) key(userID uint) string {
	return fmt.Sprintf("%s%d", userPackageKeyPrefix, userID)
}

func (c *UserPackageCache) Get(ctx context.Context, userID uint) (*CachedEntitlement, error) {
	result, err := c.client.HGetAll(ctx, c.key(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("get cached entitlement: %w", err)
	}
	if len(result) == 0 {
		return nil, nil
	}
	if result[nullMarkerField] == "1" {
		return &CachedEntitlement{NotFound: true}, nil
	}

	e := &CachedEntitlement{}
	if v, ok := result["id"]; ok {
		id, _ := strconv.ParseUint(v, 10, 64)
		e.ID = uint(id)
	}
	if v, ok := result["package_id"]; ok {
		pid, _ := strconv.ParseUint(v, 10, 64)
		e.PackageID = uint(pid)
	}
	if v, ok := result["traffic_quota"]; ok {
		e.TrafficQuota, _ = strconv.ParseUint(v, 10, 64)
	}
	if v, ok := result["traffic_used"]; ok {
		e.TrafficUsed, _ = strconv.ParseUint(v, 10, 64)
	}
	if v, ok := result["expires_at"]; ok {
		unix, _ := strconv.ParseInt(v, 10, 64)
		e.ExpiresAt = time.Unix(unix, 0)
	}
	return e, nil
}

func (c *UserPackageCache) Set(ctx context.Context, userID uint, e *CachedEntitlement) error {
	fields := map[string]any{
		"id":            e.ID,
		"package_id":    e.PackageID,
		"traffic_quota": e.TrafficQuota,
		"traffic_used":  e.TrafficUsed,
		"expires_at":    e.ExpiresAt.Unix(),
	}
	pipe := c.client.Pipeline()
	pipe.HSet(ctx, c.key(userID), fields)
	pipe.Expire(ctx, c.key(userID), ttlWithJitter(userPackageBaseTTL, userPackageJitter))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("set cached entitlement: %w", err)
	}
	return nil
}

// SetNullMarker records a short-lived "no current entitlement" result so a
// user with no package can't be used to repeatedly miss the cache
// (cache penetration protection).
func (c *UserPackageCache) SetNullMarker(ctx context.Context, userID uint) error {
	pipe := c.client.Pipeline()
	pipe.HSet(ctx, c.key(userID), nullMarkerField, "1")
	pipe.Expire(ctx, c.key(userID), nullMarkerTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("set null marker: %w", err)
	}
	return nil
}

func (c *UserPackageCache) Invalidate(ctx context.Context, userID uint) error {
	if err := c.client.Del(ctx, c.key(userID)).Err(); err != nil {
		return fmt.Errorf("invalidate entitlement cache: %w", err)
	}
	return nil
}

func ttlWithJitter(base, jitter time.Duration) time.Duration {
	return base + time.Duration(rand.Int64N(int64(jitter)))
}
