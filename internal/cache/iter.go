package cache

import (
	"context"
	"iter"

	"github.com/gatecache/gatecache/internal/keys"
	"github.com/gatecache/gatecache/model"
)

// iterRecords resolves ids to records with one batched multi-get and yields
// them lazily. Ids whose record is missing (or no longer decodes) yield the
// zero value; the index is allowed to run ahead of primary data.
func iterRecords[T any](ctx context.Context, c *Cache, ids []uint64, key func(uint64) string, decode func([]byte) (T, error)) (iter.Seq2[uint64, T], error) {
	if len(ids) == 0 {
		return func(func(uint64, T) bool) {}, nil
	}

	ks := make([]string, len(ids))
	for i, id := range ids {
		ks[i] = key(id)
	}
	vals, err := c.client.MGet(ctx, ks...).Result()
	if err != nil {
		return nil, err
	}
	if len(vals) != len(ids) {
		return nil, ErrInvalidResponse
	}

	return func(yield func(uint64, T) bool) {
		for i, id := range ids {
			var rec T
			if s, ok := vals[i].(string); ok {
				decoded, err := decode([]byte(s))
				if err != nil {
					c.logger.Warn("skipping undecodable record", "key", ks[i], "error", err)
				} else {
					rec = decoded
				}
			}
			if !yield(id, rec) {
				return
			}
		}
	}, nil
}

func (c *Cache) IterGuilds(ctx context.Context) (iter.Seq2[uint64, *model.ArchivedGuild], error) {
	ids, err := c.GuildIDs(ctx)
	if err != nil {
		return nil, err
	}
	return iterRecords(ctx, c, ids, keys.Guild, model.DecodeGuild)
}

func (c *Cache) IterChannels(ctx context.Context) (iter.Seq2[uint64, *model.ArchivedChannel], error) {
	ids, err := c.ChannelIDs(ctx)
	if err != nil {
		return nil, err
	}
	return iterRecords(ctx, c, ids, keys.Channel, model.DecodeChannel)
}

func (c *Cache) IterGuildChannels(ctx context.Context, guild uint64) (iter.Seq2[uint64, *model.ArchivedChannel], error) {
	ids, err := c.GuildChannelIDs(ctx, guild)
	if err != nil {
		return nil, err
	}
	return iterRecords(ctx, c, ids, keys.Channel, model.DecodeChannel)
}

func (c *Cache) IterUsers(ctx context.Context) (iter.Seq2[uint64, *model.ArchivedUser], error) {
	ids, err := c.UserIDs(ctx)
	if err != nil {
		return nil, err
	}
	return iterRecords(ctx, c, ids, keys.User, model.DecodeUser)
}

// UsersByIDs resolves an explicit id list, skipping the index read.
func (c *Cache) UsersByIDs(ctx context.Context, ids []uint64) (iter.Seq2[uint64, *model.ArchivedUser], error) {
	return iterRecords(ctx, c, ids, keys.User, model.DecodeUser)
}

func (c *Cache) IterGuildMembers(ctx context.Context, guild uint64) (iter.Seq2[uint64, *model.ArchivedMember], error) {
	ids, err := c.GuildMemberIDs(ctx, guild)
	if err != nil {
		return nil, err
	}
	return iterRecords(ctx, c, ids, func(user uint64) string { return keys.Member(guild, user) }, model.DecodeMember)
}

func (c *Cache) IterGuildRoles(ctx context.Context, guild uint64) (iter.Seq2[uint64, *model.ArchivedRole], error) {
	ids, err := c.GuildRoleIDs(ctx, guild)
	if err != nil {
		return nil, err
	}
	return iterRecords(ctx, c, ids, keys.Role, model.DecodeRole)
}

// IterChannelMessages yields a channel's messages newest first, ordered by
// the timestamp-scored index rather than an unordered set.
func (c *Cache) IterChannelMessages(ctx context.Context, channel uint64) (iter.Seq2[uint64, *model.ArchivedMessage], error) {
	ids, err := c.ChannelMessageIDs(ctx, channel)
	if err != nil {
		return nil, err
	}
	return iterRecords(ctx, c, ids, keys.Message, model.DecodeMessage)
}
