package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"mortgage-risk/config"
)

type RedisCounterStore struct {
	client *redis.Client
	prefix string
}

func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  config.GetDuration(cfg.DialTimeout),
		ReadTimeout:  config.GetDuration(cfg.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.WriteTimeout),
		PoolSize:     cfg.PoolSize,
	})
}

// NewRedisCounterStore namespaces every key under prefix.
func NewRedisCounterStore(client *redis.Client, prefix string) *RedisCounterStore {
	return &RedisCounterStore{
		client: client,
		prefix: prefix,
	}
}

func (r *RedisCounterStore) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	k := r.prefix + key

	var (
		incr *redis.IntCmd
		ttl  *redis.DurationCmd
	)
	_, err := r.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, k)
		ttl = pipe.PTTL(ctx, k)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("incr %s: %w", k, err)
	}

	// A negative TTL means the key was just created or lost its expiry.
	if ttl.Val() < 0 {
		if err := r.client.PExpire(ctx, k, window).Err(); err != nil {
			return 0, fmt.Errorf("pexpire %s: %w", k, err)
		}
	}
	return incr.Val(), nil
}

func (r *RedisCounterStore) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisCounterStore) Close() error {
	return r.client.Close()
}
