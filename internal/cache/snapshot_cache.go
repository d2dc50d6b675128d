package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"mindprofile/internal/model"
)

// SnapshotCache keeps rendered catalog snapshots in Redis so a
// submission resolves against the exact question list the visitor saw.
// Expiry bounds how long a rendered test stays submittable.
type SnapshotCache interface {
	Set(ctx context.Context, snapshot *model.Snapshot) error
	Get(ctx context.Context, id string) (*model.Snapshot, error)
}

type snapshotCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSnapshotCache creates a new snapshot cache with the given TTL.
func NewSnapshotCache(client *redis.Client, ttl time.Duration) SnapshotCache {
	return &snapshotCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *snapshotCache) Set(ctx context.Context, snapshot *model.Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, "snapshot:"+snapshot.ID, data, c.ttl).Err()
}

func (c *snapshotCache) Get(ctx context.Context, id string) (*model.Snapshot, error) {
	data, err := c.client.Get(ctx, "snapshot:"+id).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var snapshot model.Snapshot
	if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}
