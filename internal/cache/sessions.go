package cache

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/gatecache/gatecache/internal/keys"
	"github.com/gatecache/gatecache/model"
)

// StoreSessions snapshots the gateway resume state. Written on shutdown so
// the next start can resume shards instead of re-identifying.
func (c *Cache) StoreSessions(ctx context.Context, sessions model.Sessions) error {
	buf, err := msgpack.Marshal(sessions)
	if err != nil {
		return &MetaError{Key: keys.Sessions, Err: err}
	}
	return c.client.Set(ctx, keys.Sessions, buf, 0).Err()
}

// Sessions fetches and deletes the stored resume state; a snapshot resumes
// at most once. Returns nil when none was stored.
func (c *Cache) Sessions(ctx context.Context) (model.Sessions, error) {
	buf, err := c.client.GetDel(ctx, keys.Sessions).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var sessions model.Sessions
	if err := msgpack.Unmarshal(buf, &sessions); err != nil {
		return nil, &MetaError{Key: keys.Sessions, Err: err}
	}
	return sessions, nil
}
