package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/chexseeds/chexseeds-backend/pkg/redis"
)

// snapshotStore is the slice of the redis client the persister needs.
type snapshotStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	CartKey(sessionID string) string
}

// RedisPersister stores cart snapshots as JSON under the session's cart key.
type RedisPersister struct {
	store snapshotStore
	ttl   time.Duration
}

// NewRedisPersister builds a persister over the shared redis client.
func NewRedisPersister(client *redis.Client, ttl time.Duration) (*RedisPersister, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	return newRedisPersister(client, ttl), nil
}

func newRedisPersister(store snapshotStore, ttl time.Duration) *RedisPersister {
	return &RedisPersister{store: store, ttl: ttl}
}

func (p *RedisPersister) Save(ctx context.Context, sessionID string, snap Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal cart snapshot: %w", err)
	}
	if err := p.store.Set(ctx, p.store.CartKey(sessionID), payload, p.ttl); err != nil {
		return fmt.Errorf("write cart snapshot: %w", err)
	}
	return nil
}

func (p *RedisPersister) Load(ctx context.Context, sessionID string) (*Snapshot, error) {
	raw, err := p.store.Get(ctx, p.store.CartKey(sessionID))
	if err != nil {
		if errors.Is(err, redis.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("read cart snapshot: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return nil, fmt.Errorf("decode cart snapshot: %w", err)
	}
	return &snap, nil
}

func (p *RedisPersister) Delete(ctx context.Context, sessionID string) error {
	if err := p.store.Del(ctx, p.store.CartKey(sessionID)); err != nil {
		return fmt.Errorf("delete cart snapshot: %w", err)
	}
	return nil
}
