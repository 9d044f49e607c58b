package narrative

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache shares narratives between replicas. Entries expire after the
// configured TTL so threshold or prompt changes eventually flush old text.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

const redisKeyPrefix = "armada-insight:narrative:"

func NewRedisCache(ctx context.Context, addr string, db int, ttl time.Duration) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, DB: db})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisCache{client: client, ttl: ttl}, nil
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}

func (r *RedisCache) Get(ctx context.Context, key string) (string, bool, error) {
	text, err := r.client.Get(ctx, redisKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return text, true, nil
}

func (r *RedisCache) Set(ctx context.Context, key, text string) error {
	return r.client.Set(ctx, redisKeyPrefix+key, text, r.ttl).Err()
}

var _ Cache = (*RedisCache)(nil)
