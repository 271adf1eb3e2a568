package cache

import (
	"context"

	"github.com/gatecache/gatecache/internal/keys"
	"github.com/gatecache/gatecache/model"
)

// HandleExpiredKey repairs the indices around one TTL-expired primary key.
// The record itself is already gone; what is left is its membership in
// global and guild-scoped sets, and for some kinds a metadata record that
// names the scope to repair. Unknown or non-record keys report handled=false.
//
// Cleanup is best effort: a missing metadata record means the scoped index
// entry is left for read-time tolerance to absorb.
func (c *Cache) HandleExpiredKey(ctx context.Context, key string) (bool, error) {
	parsed, ok := keys.Parse(key)
	if !ok {
		return false, nil
	}

	p := c.newPipe()
	switch parsed.Kind {
	case model.KindGuild:
		// children outlive the guild record; run the full cascade
		return true, c.DeleteGuild(ctx, parsed.ID)

	case model.KindMember:
		p.sRem(ctx, keys.GuildMembers(parsed.GuildID), parsed.ID)
		if err := p.exec(ctx); err != nil {
			return true, err
		}
		if !c.cfg.Entities.Kind(model.KindUser).Wanted() {
			return true, nil
		}
		return true, c.releaseMembership(ctx, parsed.GuildID, parsed.ID)

	case model.KindUser:
		p.sRem(ctx, keys.Users, parsed.ID)
		p.del(ctx, keys.UserGuilds(parsed.ID))

	case model.KindChannel:
		p.sRem(ctx, keys.Channels, parsed.ID)
		if guild, ok, err := c.takeGuildMeta(ctx, model.KindChannel, parsed.ID); err != nil {
			return true, err
		} else if ok {
			p.sRem(ctx, keys.GuildChannels(guild), parsed.ID)
		}

	case model.KindRole:
		p.sRem(ctx, keys.Roles, parsed.ID)
		if guild, ok, err := c.takeGuildMeta(ctx, model.KindRole, parsed.ID); err != nil {
			return true, err
		} else if ok {
			p.sRem(ctx, keys.GuildRoles(guild), parsed.ID)
		}

	case model.KindSticker:
		p.sRem(ctx, keys.Stickers, parsed.ID)
		if guild, ok, err := c.takeGuildMeta(ctx, model.KindSticker, parsed.ID); err != nil {
			return true, err
		} else if ok {
			p.sRem(ctx, keys.GuildStickers(guild), parsed.ID)
		}

	case model.KindEmoji:
		p.sRem(ctx, keys.Emojis, parsed.ID)
		if guild, ok, err := c.takeGuildMeta(ctx, model.KindEmoji, parsed.ID); err != nil {
			return true, err
		} else if ok {
			p.sRem(ctx, keys.GuildEmojis(guild), parsed.ID)
		}

	case model.KindStageInstance:
		p.sRem(ctx, keys.StageInstances, parsed.ID)
		if guild, ok, err := c.takeGuildMeta(ctx, model.KindStageInstance, parsed.ID); err != nil {
			return true, err
		} else if ok {
			p.sRem(ctx, keys.GuildStageInstances(guild), parsed.ID)
		}

	case model.KindScheduledEvent:
		p.sRem(ctx, keys.ScheduledEvents, parsed.ID)
		if guild, ok, err := c.takeGuildMeta(ctx, model.KindScheduledEvent, parsed.ID); err != nil {
			return true, err
		} else if ok {
			p.sRem(ctx, keys.GuildScheduledEvents(guild), parsed.ID)
		}

	case model.KindMessage:
		p.sRem(ctx, keys.Messages, parsed.ID)
		if channel, ok, err := c.takeMessageMeta(ctx, parsed.ID); err != nil {
			return true, err
		} else if ok {
			p.zRem(ctx, keys.ChannelMessages(channel), parsed.ID)
		}

	case model.KindPresence:
		p.sRem(ctx, keys.GuildPresences(parsed.GuildID), parsed.ID)

	case model.KindVoiceState:
		p.sRem(ctx, keys.GuildVoiceStates(parsed.GuildID), parsed.ID)

	case model.KindIntegration:
		p.sRem(ctx, keys.GuildIntegrations(parsed.GuildID), parsed.ID)

	case model.KindCurrentUser:
		// singleton with no indices

	default:
		return false, nil
	}

	return true, p.exec(ctx)
}

// releaseMembership drops one guild from a user's refcount index and
// reclaims the user at zero.
func (c *Cache) releaseMembership(ctx context.Context, guild, user uint64) error {
	p := c.newPipe()
	p.sRem(ctx, keys.UserGuilds(user), guild)
	card := p.sCard(ctx, keys.UserGuilds(user))
	if err := p.exec(ctx); err != nil {
		return err
	}

	n, err := card.Result()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	p = c.newPipe()
	p.del(ctx, keys.User(user), keys.UserGuilds(user))
	p.sRem(ctx, keys.Users, user)
	return p.exec(ctx)
}
