package memory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const snapshotTTL = 5 * time.Minute

// SnapshotCache holds the most recent queue snapshot per property so a
// freshly connected dashboard can paint without waiting for the next
// refresh cycle. Payloads are stored as the marshaled websocket frame.
type SnapshotCache struct {
	rdb *redis.Client
}

func NewSnapshotCache(rdb *redis.Client) *SnapshotCache {
	return &SnapshotCache{rdb: rdb}
}

func snapshotKey(propertyId uuid.UUID) string {
	return "queue_snapshot:" + propertyId.String()
}

func (c *SnapshotCache) Store(ctx context.Context, propertyId uuid.UUID, payload []byte) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Set(ctx, snapshotKey(propertyId), payload, snapshotTTL).Err()
}

func (c *SnapshotCache) Load(ctx context.Context, propertyId uuid.UUID) ([]byte, bool) {
	if c.rdb == nil {
		return nil, false
	}
	data, err := c.rdb.Get(ctx, snapshotKey(propertyId)).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}
