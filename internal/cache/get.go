package cache

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/gatecache/gatecache/internal/keys"
	"github.com/gatecache/gatecache/model"
)

// Record getters return (nil, nil) when the key is absent. An id present in
// an index whose record is gone reads the same as absent; indices may lag
// behind primary data and that is never an error.

func getRecord[T any](ctx context.Context, c *Cache, key string, decode func([]byte) (T, error)) (T, error) {
	var zero T
	buf, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return zero, nil
	}
	if err != nil {
		return zero, err
	}
	return decode(buf)
}

func (c *Cache) Guild(ctx context.Context, id uint64) (*model.ArchivedGuild, error) {
	return getRecord(ctx, c, keys.Guild(id), model.DecodeGuild)
}

func (c *Cache) Channel(ctx context.Context, id uint64) (*model.ArchivedChannel, error) {
	return getRecord(ctx, c, keys.Channel(id), model.DecodeChannel)
}

func (c *Cache) Role(ctx context.Context, id uint64) (*model.ArchivedRole, error) {
	return getRecord(ctx, c, keys.Role(id), model.DecodeRole)
}

func (c *Cache) Member(ctx context.Context, guild, user uint64) (*model.ArchivedMember, error) {
	return getRecord(ctx, c, keys.Member(guild, user), model.DecodeMember)
}

func (c *Cache) User(ctx context.Context, id uint64) (*model.ArchivedUser, error) {
	return getRecord(ctx, c, keys.User(id), model.DecodeUser)
}

func (c *Cache) CurrentUser(ctx context.Context) (*model.ArchivedCurrentUser, error) {
	return getRecord(ctx, c, keys.CurrentUser, model.DecodeCurrentUser)
}

func (c *Cache) Presence(ctx context.Context, guild, user uint64) (*model.ArchivedPresence, error) {
	return getRecord(ctx, c, keys.Presence(guild, user), model.DecodePresence)
}

func (c *Cache) VoiceState(ctx context.Context, guild, user uint64) (*model.ArchivedVoiceState, error) {
	return getRecord(ctx, c, keys.VoiceState(guild, user), model.DecodeVoiceState)
}

func (c *Cache) Message(ctx context.Context, id uint64) (*model.ArchivedMessage, error) {
	return getRecord(ctx, c, keys.Message(id), model.DecodeMessage)
}

func (c *Cache) Sticker(ctx context.Context, id uint64) (*model.ArchivedSticker, error) {
	return getRecord(ctx, c, keys.Sticker(id), model.DecodeSticker)
}

func (c *Cache) Emoji(ctx context.Context, id uint64) (*model.ArchivedEmoji, error) {
	return getRecord(ctx, c, keys.Emoji(id), model.DecodeEmoji)
}

func (c *Cache) Integration(ctx context.Context, guild, id uint64) (*model.ArchivedIntegration, error) {
	return getRecord(ctx, c, keys.Integration(guild, id), model.DecodeIntegration)
}

func (c *Cache) StageInstance(ctx context.Context, id uint64) (*model.ArchivedStageInstance, error) {
	return getRecord(ctx, c, keys.StageInstance(id), model.DecodeStageInstance)
}

func (c *Cache) ScheduledEvent(ctx context.Context, id uint64) (*model.ArchivedScheduledEvent, error) {
	return getRecord(ctx, c, keys.ScheduledEvent(id), model.DecodeScheduledEvent)
}

// Index getters.

func (c *Cache) setIDs(ctx context.Context, key string) ([]uint64, error) {
	members, err := c.client.SMembers(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return parseIDs(members), nil
}

func (c *Cache) GuildIDs(ctx context.Context) ([]uint64, error) {
	return c.setIDs(ctx, keys.Guilds)
}

func (c *Cache) UnavailableGuildIDs(ctx context.Context) ([]uint64, error) {
	return c.setIDs(ctx, keys.UnavailableGuilds)
}

func (c *Cache) ChannelIDs(ctx context.Context) ([]uint64, error) {
	return c.setIDs(ctx, keys.Channels)
}

func (c *Cache) RoleIDs(ctx context.Context) ([]uint64, error) {
	return c.setIDs(ctx, keys.Roles)
}

func (c *Cache) UserIDs(ctx context.Context) ([]uint64, error) {
	return c.setIDs(ctx, keys.Users)
}

func (c *Cache) MessageIDs(ctx context.Context) ([]uint64, error) {
	return c.setIDs(ctx, keys.Messages)
}

func (c *Cache) StickerIDs(ctx context.Context) ([]uint64, error) {
	return c.setIDs(ctx, keys.Stickers)
}

func (c *Cache) EmojiIDs(ctx context.Context) ([]uint64, error) {
	return c.setIDs(ctx, keys.Emojis)
}

func (c *Cache) StageInstanceIDs(ctx context.Context) ([]uint64, error) {
	return c.setIDs(ctx, keys.StageInstances)
}

func (c *Cache) ScheduledEventIDs(ctx context.Context) ([]uint64, error) {
	return c.setIDs(ctx, keys.ScheduledEvents)
}

func (c *Cache) GuildChannelIDs(ctx context.Context, guild uint64) ([]uint64, error) {
	return c.setIDs(ctx, keys.GuildChannels(guild))
}

func (c *Cache) GuildRoleIDs(ctx context.Context, guild uint64) ([]uint64, error) {
	return c.setIDs(ctx, keys.GuildRoles(guild))
}

func (c *Cache) GuildMemberIDs(ctx context.Context, guild uint64) ([]uint64, error) {
	return c.setIDs(ctx, keys.GuildMembers(guild))
}

func (c *Cache) GuildPresenceUserIDs(ctx context.Context, guild uint64) ([]uint64, error) {
	return c.setIDs(ctx, keys.GuildPresences(guild))
}

func (c *Cache) GuildVoiceStateUserIDs(ctx context.Context, guild uint64) ([]uint64, error) {
	return c.setIDs(ctx, keys.GuildVoiceStates(guild))
}

func (c *Cache) GuildStickerIDs(ctx context.Context, guild uint64) ([]uint64, error) {
	return c.setIDs(ctx, keys.GuildStickers(guild))
}

func (c *Cache) GuildEmojiIDs(ctx context.Context, guild uint64) ([]uint64, error) {
	return c.setIDs(ctx, keys.GuildEmojis(guild))
}

func (c *Cache) GuildIntegrationIDs(ctx context.Context, guild uint64) ([]uint64, error) {
	return c.setIDs(ctx, keys.GuildIntegrations(guild))
}

func (c *Cache) GuildStageInstanceIDs(ctx context.Context, guild uint64) ([]uint64, error) {
	return c.setIDs(ctx, keys.GuildStageInstances(guild))
}

func (c *Cache) GuildScheduledEventIDs(ctx context.Context, guild uint64) ([]uint64, error) {
	return c.setIDs(ctx, keys.GuildScheduledEvents(guild))
}

// CommonGuildIDs lists the guilds a user is currently a member of.
func (c *Cache) CommonGuildIDs(ctx context.Context, user uint64) ([]uint64, error) {
	return c.setIDs(ctx, keys.UserGuilds(user))
}

// ChannelMessageIDs lists a channel's message ids newest first.
func (c *Cache) ChannelMessageIDs(ctx context.Context, channel uint64) ([]uint64, error) {
	members, err := c.client.ZRevRange(ctx, keys.ChannelMessages(channel), 0, -1).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return parseIDs(members), nil
}
