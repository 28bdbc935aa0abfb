package documents

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	dnderr "github.com/KirkDiggler/dnd-creation-engine/internal/errors"
)

const (
	documentKeyPrefix = "document:"

	// Cached documents expire after a day unless configured otherwise
	documentTTL = 24 * time.Hour
)

// RedisRepoConfig holds configuration for the Redis document cache
type RedisRepoConfig struct {
	Client redis.UniversalClient
	TTL    time.Duration
}

type redisRepository struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedis creates a Redis-backed document cache with the default TTL
func NewRedis(client redis.UniversalClient) Repository {
	return NewRedisRepository(&RedisRepoConfig{
		Client: client,
		TTL:    documentTTL,
	})
}

// NewRedisRepository creates a Redis-backed document cache
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg.Client == nil {
		panic("redis client is required")
	}

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = documentTTL
	}

	return &redisRepository{
		client: cfg.Client,
		ttl:    ttl,
	}
}

func documentKey(path string) string {
	return documentKeyPrefix + path
}

func (r *redisRepository) Get(ctx context.Context, path string) ([]byte, error) {
	if path == "" {
		return nil, dnderr.InvalidArgument("path is required")
	}

	data, err := r.client.Get(ctx, documentKey(path)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, dnderr.NotFoundf("document '%s' not cached", path).
				WithMeta("path", path)
		}
		return nil, dnderr.WrapWithCode(err, dnderr.CodeUnavailable, "failed to read cached document").
			WithMeta("path", path)
	}

	return data, nil
}

func (r *redisRepository) Set(ctx context.Context, path string, data []byte) error {
	if path == "" {
		return dnderr.InvalidArgument("path is required")
	}

	if err := r.client.Set(ctx, documentKey(path), data, r.ttl).Err(); err != nil {
		return dnderr.WrapWithCode(err, dnderr.CodeUnavailable, "failed to cache document").
			WithMeta("path", path)
	}

	return nil
}

func (r *redisRepository) Delete(ctx context.Context, path string) error {
	if err := r.client.Del(ctx, documentKey(path)).Err(); err != nil {
		return dnderr.WrapWithCode(err, dnderr.CodeUnavailable, "failed to delete cached document").
			WithMeta("path", path)
	}
	return nil
}
