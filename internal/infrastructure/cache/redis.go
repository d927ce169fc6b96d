package cache

import (
	"context"
	"encoding/json"

	"github.com/go-redis/redis/v8"
	"github.com/sangkips/yumzee-api/internal/config"
)

// RedisClient wraps a go-redis client with JSON helpers
type RedisClient struct {
	client *redis.Client
}

// NewRedisClient creates a pooled client from configuration
func NewRedisClient(cfg *config.RedisConfig) *RedisClient {
	return &RedisClient{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
			PoolSize: cfg.PoolSize,
		}),
	}
}

func (r *RedisClient) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// GetJSON decodes the value at key into dest. It returns redis.Nil when the
// key does not exist.
func (r *RedisClient) GetJSON(ctx context.Context, key string, dest interface{}) error {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}
