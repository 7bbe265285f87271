// internal/catalog/snapshot_cache.go
package catalog

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"sake-reco/internal/models"

	"github.com/redis/go-redis/v9"
)

// SnapshotKey is the Redis key holding the last-known-good catalog.
const SnapshotKey = "sake:catalog:snapshot"

type cachedSnapshot struct {
	Items    []models.CatalogItem `json:"items"`
	LoadedAt time.Time            `json:"loadedAt"`
}

// SnapshotCache keeps the last successful catalog in Redis so a fresh
// process can serve matches before its first fetch resolves.
type SnapshotCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewSnapshotCache stores snapshots with ttl; 0 means no expiry.
func NewSnapshotCache(client redis.Cmdable, ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{client: client, ttl: ttl}
}

func (c *SnapshotCache) Save(ctx context.Context, snap *Snapshot) error {
	data, err := json.Marshal(cachedSnapshot{Items: snap.Items, LoadedAt: snap.LoadedAt})
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := c.client.Set(ctx, SnapshotKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Load returns nil, nil when nothing is cached.
func (c *SnapshotCache) Load(ctx context.Context) (*Snapshot, error) {
	raw, err := c.client.Get(ctx, SnapshotKey).Result()
	if stderrors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	var cached cachedSnapshot
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if cached.Items == nil {
		cached.Items = []models.CatalogItem{}
	}
	return &Snapshot{Items: cached.Items, LoadedAt: cached.LoadedAt}, nil
}
