// AngelaMos | 2026
// redis.go

package core

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lalonstore/lalon-store-api/internal/config"
)

// blacklistKeyPrefix namespaces revoked-token keys away from the rate
// limiter's keyspace.
const blacklistKeyPrefix = "blacklist:"

type Redis struct {
	Client *redis.Client
}

func NewRedis(ctx context.Context, cfg config.RedisConfig) (*Redis, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns
	opts.PoolTimeout = 30 * time.Second
	opts.ConnMaxIdleTime = 5 * time.Minute

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &Redis{Client: client}, nil
}

func (r *Redis) Close() error {
	if r.Client != nil {
		return r.Client.Close()
	}
	return nil
}

func (r *Redis) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := r.Client.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}

	return nil
}

func (r *Redis) PoolStats() *redis.PoolStats {
	return r.Client.PoolStats()
}

// BlacklistToken mirrors a revoked token with the same retention as the
// durable record, so the per-request check stays off the database.
func (r *Redis) BlacklistToken(
	ctx context.Context,
	token string,
	ttl time.Duration,
) error {
	err := r.Client.Set(ctx, blacklistKeyPrefix+token, "1", ttl).Err()
	if err != nil {
		return fmt.Errorf("blacklist token in redis: %w", err)
	}
	return nil
}

// IsTokenBlacklisted reports cache hits only. A miss or a Redis error
// means nothing; the caller falls back to durable storage.
func (r *Redis) IsTokenBlacklisted(ctx context.Context, token string) bool {
	n, err := r.Client.Exists(ctx, blacklistKeyPrefix+token).Result()
	return err == nil && n > 0
}
