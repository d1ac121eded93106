package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
)

// SnapshotCache keeps the serialized fetch-all response per (user, kind).
// Replaces invalidate the key; entries also age out on their own, so a stale
// snapshot can survive at most one TTL after an out-of-band write.
type SnapshotCache struct {
	client      *redisv9.Client
	snapshotTTL time.Duration
}

func NewSnapshotCache(client *redisv9.Client, snapshotTTL time.Duration) *SnapshotCache {
	if snapshotTTL <= 0 {
		snapshotTTL = 60 * time.Second
	}
	return &SnapshotCache{
		client:      client,
		snapshotTTL: snapshotTTL,
	}
}

func (c *SnapshotCache) Get(ctx context.Context, userID, kind string, out interface{}) (bool, error) {
	raw, err := c.client.Get(ctx, c.key(userID, kind)).Result()
	if err == redisv9.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get snapshot failed: %w", err)
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false, fmt.Errorf("unmarshal cached snapshot failed: %w", err)
	}
	return true, nil
}

func (c *SnapshotCache) Set(ctx context.Context, userID, kind string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal snapshot failed: %w", err)
	}
	if err := c.client.Set(ctx, c.key(userID, kind), payload, c.snapshotTTL).Err(); err != nil {
		return fmt.Errorf("redis set snapshot failed: %w", err)
	}
	return nil
}

func (c *SnapshotCache) Delete(ctx context.Context, userID string, kinds ...string) error {
	if len(kinds) == 0 {
		return nil
	}
	keys := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		keys = append(keys, c.key(userID, kind))
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis delete snapshot failed: %w", err)
	}
	return nil
}

func (c *SnapshotCache) key(userID, kind string) string {
	return fmt.Sprintf("sync:snapshot:%s:%s", userID, kind)
}
