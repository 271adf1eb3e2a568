// Package cache implements the indexed cache-consistency engine: the write
// fan-out, the cascading delete with shared-user refcounting, expiry-driven
// index repair, and the batched query layer on top of one Redis keyspace.
package cache

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/gatecache/gatecache/config"
)

type Cache struct {
	client redis.UniversalClient
	cfg    *config.Cache
	logger *slog.Logger
}

func New(client redis.UniversalClient, cfg *config.Cache, logger *slog.Logger) *Cache {
	return &Cache{client: client, cfg: cfg, logger: logger}
}

// Client exposes the underlying connection for collaborators that need
// their own command stream (the expiry listener's subscription).
func (c *Cache) Client() redis.UniversalClient { return c.client }

// Flush wipes the selected database. Used on startup when the caller asked
// for a fresh cache instead of resuming over stale state.
func (c *Cache) Flush(ctx context.Context) error {
	return c.client.FlushDB(ctx).Err()
}
