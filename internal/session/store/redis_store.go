package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"commerce-admin-console/client/internal/session/domain"
)

// RedisStore persists the session in Redis, for headless deployments where
// several console processes share one sign-in (e.g. scripted batch runs).
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore returns a Redis-backed store. prefix namespaces the key so
// consoles for different environments can share one Redis.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "adminconsole"
	}
	return &RedisStore{client: client, key: prefix + ":session"}
}

// Load reads the stored session, or (nil, nil) when the key is absent.
func (r *RedisStore) Load(ctx context.Context) (*domain.Session, error) {
	val, err := r.client.Get(ctx, r.key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: redis get: %w", err)
	}
	var s domain.Session
	if err := json.Unmarshal([]byte(val), &s); err != nil {
		return nil, fmt.Errorf("store: decode session: %w", err)
	}
	return &s, nil
}

// Save writes the session. No TTL: expiry is a property of the token, and
// the manager treats an expired token as absent.
func (r *RedisStore) Save(ctx context.Context, s *domain.Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("store: encode session: %w", err)
	}
	if err := r.client.Set(ctx, r.key, raw, 0).Err(); err != nil {
		return fmt.Errorf("store: redis set: %w", err)
	}
	return nil
}

// Clear deletes the session key.
func (r *RedisStore) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("store: redis del: %w", err)
	}
	return nil
}
