// Package storage is the local key-value store bookmarks and the current
// location are persisted in.
package storage

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"eTEats_recipes/config"
)

// Store is a string key-value store. Get reports whether the key exists.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Open builds the store selected by cfg.Driver. The returned close func is
// never nil.
func Open(ctx context.Context, cfg config.StorageConfig) (Store, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Driver {
	case "file":
		return NewFileStore(cfg.Path), noop, nil
	case "memory":
		return NewMemoryStore(), noop, nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddress,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, connectionTimeout)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			client.Close()
			return nil, noop, fmt.Errorf("redis ping failed: %w", err)
		}
		return NewRedisStore(client, cfg.RedisPrefix), client.Close, nil
	default:
		return nil, noop, fmt.Errorf("storage: unknown driver %q", cfg.Driver)
	}
}
