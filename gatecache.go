// Package gatecache mirrors the mutable state of a chat-platform gateway
// into Redis: per-entity records in a zero-copy archive format, the index
// sets tying them together, and the background repair that keeps those
// indices honest under TTL expiry.
package gatecache

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/gatecache/gatecache/config"
	"github.com/gatecache/gatecache/internal/cache"
	"github.com/gatecache/gatecache/internal/expiry"
	"github.com/gatecache/gatecache/internal/telemetry"
)

type Cache struct {
	*cache.Cache
	expiry.Listener
	telemetry.Logger
	client redis.UniversalClient
	cls    context.CancelFunc
}

// New connects to the store described by the configuration and assembles
// the engine, the expiry listener (when any kind expires), and the stats
// reporter (when enabled).
func New(ctx context.Context, cfg *config.Cache, logger *slog.Logger) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Username: cfg.Redis.Username,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	c, err := NewWithClient(ctx, client, cfg, logger)
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	return c, nil
}

// NewWithClient assembles the cache over a caller-owned client. Close still
// closes the client.
func NewWithClient(ctx context.Context, client redis.UniversalClient, cfg *config.Cache, logger *slog.Logger) (*Cache, error) {
	ctx, cancel := context.WithCancel(ctx)

	engine := cache.New(client, cfg, logger)
	if cfg.FreshCache {
		if err := engine.Flush(ctx); err != nil {
			cancel()
			return nil, err
		}
	}

	var listener expiry.Listener = expiry.NoOpListener{}
	if cfg.Entities.AnyExpires() {
		l, err := expiry.New(ctx, client, engine, logger)
		if err != nil {
			cancel()
			return nil, err
		}
		listener = l
	}

	telemeter := telemetry.New(ctx, cfg.Stats, logger, engine)

	return &Cache{
		Cache:    engine,
		Listener: listener,
		Logger:   telemeter,
		client:   client,
		cls:      cancel,
	}, nil
}

func (c *Cache) Close() error {
	c.cls()
	_ = c.Listener.Close()
	_ = c.Logger.Close()
	return c.client.Close()
}
