package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis implements Store on a Redis instance using per-key TTLs.
type Redis struct {
	client *redis.Client
	prefix string
}

// NewRedis constructs a Redis-backed store. Keys are namespaced with prefix.
func NewRedis(client *redis.Client, prefix string) *Redis {
	return &Redis{client: client, prefix: prefix}
}

func (r *Redis) key(token string) string { return r.prefix + token }

// Save stores token -> userID with TTL via SET EX.
func (r *Redis) Save(ctx context.Context, token, userID string, ttl time.Duration) error {
	if err := r.client.Set(ctx, r.key(token), userID, ttl).Err(); err != nil {
		return fmt.Errorf("tokenstore: save: %w", err)
	}
	return nil
}

// Get returns the owning user id or "" when the key is missing or expired.
func (r *Redis) Get(ctx context.Context, token string) (string, error) {
	val, err := r.client.Get(ctx, r.key(token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("tokenstore: get: %w", err)
	}
	return val, nil
}

// Delete removes the token; DEL on a missing key is a no-op. The removed-key
// count tells rotation whether someone else consumed the token first.
func (r *Redis) Delete(ctx context.Context, token string) (bool, error) {
	n, err := r.client.Del(ctx, r.key(token)).Result()
	if err != nil {
		return false, fmt.Errorf("tokenstore: delete: %w", err)
	}
	return n > 0, nil
}
