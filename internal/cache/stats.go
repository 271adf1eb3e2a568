package cache

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/gatecache/gatecache/internal/keys"
)

// Counts is a snapshot of the global index cardinalities.
type Counts struct {
	Guilds            int64
	UnavailableGuilds int64
	Channels          int64
	Roles             int64
	Users             int64
	Messages          int64
	Stickers          int64
	Emojis            int64
	StageInstances    int64
	ScheduledEvents   int64
}

// Counts reads every global set size in one round trip.
func (c *Cache) Counts(ctx context.Context) (Counts, error) {
	p := c.newPipe()
	cmds := map[string]*redis.IntCmd{
		keys.Guilds:            p.sCard(ctx, keys.Guilds),
		keys.UnavailableGuilds: p.sCard(ctx, keys.UnavailableGuilds),
		keys.Channels:          p.sCard(ctx, keys.Channels),
		keys.Roles:             p.sCard(ctx, keys.Roles),
		keys.Users:             p.sCard(ctx, keys.Users),
		keys.Messages:          p.sCard(ctx, keys.Messages),
		keys.Stickers:          p.sCard(ctx, keys.Stickers),
		keys.Emojis:            p.sCard(ctx, keys.Emojis),
		keys.StageInstances:    p.sCard(ctx, keys.StageInstances),
		keys.ScheduledEvents:   p.sCard(ctx, keys.ScheduledEvents),
	}
	if err := p.exec(ctx); err != nil {
		return Counts{}, err
	}

	return Counts{
		Guilds:            cmds[keys.Guilds].Val(),
		UnavailableGuilds: cmds[keys.UnavailableGuilds].Val(),
		Channels:          cmds[keys.Channels].Val(),
		Roles:             cmds[keys.Roles].Val(),
		Users:             cmds[keys.Users].Val(),
		Messages:          cmds[keys.Messages].Val(),
		Stickers:          cmds[keys.Stickers].Val(),
		Emojis:            cmds[keys.Emojis].Val(),
		StageInstances:    cmds[keys.StageInstances].Val(),
		ScheduledEvents:   cmds[keys.ScheduledEvents].Val(),
	}, nil
}
