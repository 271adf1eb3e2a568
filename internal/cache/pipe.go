package cache

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// pipe accumulates the store commands of one logical unit of work and sends
// them as a single round trip. Nothing touches the network while staging;
// if translating an event fails halfway, the store has seen none of it.
//
// Staged reads (SMembers, SCard) return live command handles whose results
// become valid after exec. Consumers rely on staging order, so repair and
// delete code must never reorder or skip reads it has staged.
type pipe struct {
	p redis.Pipeliner
}

func (c *Cache) newPipe() *pipe {
	return &pipe{p: c.client.Pipeline()}
}

func (p *pipe) len() int { return p.p.Len() }

func (p *pipe) set(ctx context.Context, key string, val []byte, ttl time.Duration) {
	p.p.Set(ctx, key, val, ttl)
}

func (p *pipe) del(ctx context.Context, keys ...string) {
	if len(keys) > 0 {
		p.p.Del(ctx, keys...)
	}
}

func (p *pipe) sAdd(ctx context.Context, key string, ids ...uint64) {
	if len(ids) > 0 {
		p.p.SAdd(ctx, key, idArgs(ids)...)
	}
}

func (p *pipe) sRem(ctx context.Context, key string, ids ...uint64) {
	if len(ids) > 0 {
		p.p.SRem(ctx, key, idArgs(ids)...)
	}
}

func (p *pipe) sCard(ctx context.Context, key string) *redis.IntCmd {
	return p.p.SCard(ctx, key)
}

func (p *pipe) sMembers(ctx context.Context, key string) *redis.StringSliceCmd {
	return p.p.SMembers(ctx, key)
}

func (p *pipe) zAdd(ctx context.Context, key string, score float64, id uint64) {
	p.p.ZAdd(ctx, key, redis.Z{Score: score, Member: formatID(id)})
}

func (p *pipe) zRem(ctx context.Context, key string, ids ...uint64) {
	if len(ids) > 0 {
		p.p.ZRem(ctx, key, idArgs(ids)...)
	}
}

// exec sends the staged batch and clears it. An empty batch skips the round
// trip entirely.
func (p *pipe) exec(ctx context.Context) error {
	if p.p.Len() == 0 {
		return nil
	}
	if _, err := p.p.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	return nil
}

func formatID(id uint64) string { return strconv.FormatUint(id, 10) }

func idArgs(ids []uint64) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = formatID(id)
	}
	return args
}

// parseIDs converts a set-members reply back into ids, dropping anything
// that is not a decimal id.
func parseIDs(members []string) []uint64 {
	ids := make([]uint64, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseUint(m, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
