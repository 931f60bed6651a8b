package memory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

const selectionTTL = 30 * 24 * time.Hour

// SelectionStore keeps the last-used property id per user. Redis is the
// durable copy (shared across instances); the in-process cache covers the
// window where redis is unavailable. Cleared on sign-out.
type SelectionStore struct {
	rdb   *redis.Client
	local *cache.Cache
}

func NewSelectionStore(rdb *redis.Client) *SelectionStore {
	// Local fallback purges stale entries every 10 minutes.
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &SelectionStore{
		rdb:   rdb,
		local: c,
	}
}

func key(userId uuid.UUID) string {
	return "active_property:" + userId.String()
}

func (s *SelectionStore) Get(ctx context.Context, userId uuid.UUID) (uuid.UUID, bool) {
	if s.rdb != nil {
		if val, err := s.rdb.Get(ctx, key(userId)).Result(); err == nil {
			if id, err := uuid.Parse(val); err == nil {
				return id, true
			}
		}
	}
	if x, found := s.local.Get(key(userId)); found {
		return x.(uuid.UUID), true
	}
	return uuid.Nil, false
}

func (s *SelectionStore) Set(ctx context.Context, userId, propertyId uuid.UUID) error {
	s.local.Set(key(userId), propertyId, cache.DefaultExpiration)
	if s.rdb == nil {
		return nil
	}
	return s.rdb.Set(ctx, key(userId), propertyId.String(), selectionTTL).Err()
}

func (s *SelectionStore) Clear(ctx context.Context, userId uuid.UUID) error {
	s.local.Delete(key(userId))
	if s.rdb == nil {
		return nil
	}
	return s.rdb.Del(ctx, key(userId)).Err()
}
