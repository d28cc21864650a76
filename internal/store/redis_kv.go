package store

import (
	"context"
	"errors"

	"edugen/internal/cache"
	"edugen/internal/domain"

	"github.com/redis/go-redis/v9"
)

// RedisKV implements domain.KeyValueStore on Redis. Slot keys are namespaced
// with the configured prefix; values never expire.
type RedisKV struct {
	client *redis.Client
	prefix string
}

// NewRedisKV expects a connected *redis.Client.
func NewRedisKV(client *redis.Client, prefix string) *RedisKV {
	return &RedisKV{client: client, prefix: prefix}
}

func (r *RedisKV) key(name string) string {
	return cache.GenerateCacheKey(r.prefix, "slot", name)
}

// Get translates redis.Nil to domain.ErrSlotEmpty.
func (r *RedisKV) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, r.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrSlotEmpty
		}
		return "", err
	}
	return val, nil
}

func (r *RedisKV) Set(ctx context.Context, key string, value string) error {
	return r.client.Set(ctx, r.key(key), value, 0).Err()
}

func (r *RedisKV) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

var _ domain.KeyValueStore = (*RedisKV)(nil)
