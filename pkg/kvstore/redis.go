package kvstore

import (
	"context"

	"github.com/greenbasket/farmmarket-backend/pkg/redis"
)

// Redis adapts the shared redis client to the Store surface. Values are
// stored without TTL: durable client state lives until explicitly cleared.
type Redis struct {
	client *redis.Client
}

// NewRedis wraps an established redis client.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (r *Redis) Get(ctx context.Context, key string) (string, error) {
	value, err := r.client.Get(ctx, r.client.BuildKey(key))
	if err != nil {
		if redis.ErrNotFound(err) {
			return "", ErrNotFound
		}
		return "", err
	}
	return value, nil
}

func (r *Redis) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, r.client.BuildKey(key), value, 0)
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.client.BuildKey(key))
}
