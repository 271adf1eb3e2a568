package cache

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/gatecache/gatecache/internal/keys"
	"github.com/gatecache/gatecache/model"
)

// childKind describes one guild-owned kind for the cascade: where its
// per-guild index lives, how to build a child's primary key, and which
// global set (if any) tracks it.
type childKind struct {
	kind       model.Kind
	indexKey   func(guild uint64) string
	primaryKey func(guild, id uint64) string
	globalSet  string
}

// cascadeKinds is the static staging order of the guild cascade. Response
// partitioning in DeleteGuilds depends on this exact order; never reorder.
//
// Members have no global set entry here: user removal goes through the
// UserGuilds refcount instead. Messages are absent because they are indexed
// per channel, not per guild.
var cascadeKinds = []childKind{
	{model.KindChannel, keys.GuildChannels, func(_, id uint64) string { return keys.Channel(id) }, keys.Channels},
	{model.KindEmoji, keys.GuildEmojis, func(_, id uint64) string { return keys.Emoji(id) }, keys.Emojis},
	{model.KindIntegration, keys.GuildIntegrations, keys.Integration, ""},
	{model.KindMember, keys.GuildMembers, keys.Member, ""},
	{model.KindPresence, keys.GuildPresences, keys.Presence, ""},
	{model.KindRole, keys.GuildRoles, func(_, id uint64) string { return keys.Role(id) }, keys.Roles},
	{model.KindScheduledEvent, keys.GuildScheduledEvents, func(_, id uint64) string { return keys.ScheduledEvent(id) }, keys.ScheduledEvents},
	{model.KindStageInstance, keys.GuildStageInstances, func(_, id uint64) string { return keys.StageInstance(id) }, keys.StageInstances},
	{model.KindSticker, keys.GuildStickers, func(_, id uint64) string { return keys.Sticker(id) }, keys.Stickers},
	{model.KindVoiceState, keys.GuildVoiceStates, keys.VoiceState, ""},
}

func (c *Cache) wantedCascadeKinds() []childKind {
	wanted := make([]childKind, 0, len(cascadeKinds))
	for _, ck := range cascadeKinds {
		if c.cfg.Entities.Kind(ck.kind).Wanted() {
			wanted = append(wanted, ck)
		}
	}
	return wanted
}

func (c *Cache) DeleteGuild(ctx context.Context, guild uint64) error {
	return c.DeleteGuilds(ctx, []uint64{guild})
}

// DeleteGuilds cascades over every wanted child kind of the given guilds in
// at most three round trips: one reading all child index sets, one for the
// member/user refcount pass, and one issuing every deletion.
func (c *Cache) DeleteGuilds(ctx context.Context, guilds []uint64) error {
	if len(guilds) == 0 {
		return nil
	}

	staged := c.wantedCascadeKinds()
	if len(staged) == 0 {
		p := c.newPipe()
		for _, g := range guilds {
			p.del(ctx, keys.Guild(g))
		}
		p.sRem(ctx, keys.Guilds, guilds...)
		return p.exec(ctx)
	}

	children, err := c.readChildSets(ctx, guilds, staged)
	if err != nil {
		return err
	}

	orphans, err := c.releaseMemberships(ctx, guilds, staged, children)
	if err != nil {
		return err
	}

	p := c.newPipe()
	for gi, g := range guilds {
		for ki, ck := range staged {
			ids := children[gi][ki]
			expires := c.cfg.Entities.Kind(ck.kind).Expires()
			for _, id := range ids {
				p.del(ctx, ck.primaryKey(g, id))
				if expires {
					if mk := metaKey(ck.kind, id); mk != "" {
						p.del(ctx, mk)
					}
				}
			}
			if ck.globalSet != "" {
				p.sRem(ctx, ck.globalSet, ids...)
			}
			p.del(ctx, ck.indexKey(g))
		}
		p.del(ctx, keys.Guild(g))
	}
	p.sRem(ctx, keys.Guilds, guilds...)
	for _, u := range orphans {
		p.del(ctx, keys.User(u), keys.UserGuilds(u))
	}
	p.sRem(ctx, keys.Users, orphans...)
	return p.exec(ctx)
}

// readChildSets stages one SMEMBERS per (guild, wanted kind) pair and
// partitions the flattened response by the static staging order.
func (c *Cache) readChildSets(ctx context.Context, guilds []uint64, staged []childKind) ([][][]uint64, error) {
	p := c.newPipe()
	cmds := make([]*redis.StringSliceCmd, 0, len(guilds)*len(staged))
	for _, g := range guilds {
		for _, ck := range staged {
			cmds = append(cmds, p.sMembers(ctx, ck.indexKey(g)))
		}
	}
	if err := p.exec(ctx); err != nil {
		return nil, err
	}

	children := make([][][]uint64, len(guilds))
	idx := 0
	for gi := range guilds {
		children[gi] = make([][]uint64, len(staged))
		for ki := range staged {
			members, err := cmds[idx].Result()
			if err != nil && !errors.Is(err, redis.Nil) {
				return nil, errors.Join(ErrInvalidResponse, err)
			}
			children[gi][ki] = parseIDs(members)
			idx++
		}
	}
	return children, nil
}

// releaseMemberships removes each guild from its members' UserGuilds index
// and returns the users whose guild count dropped to zero.
func (c *Cache) releaseMemberships(ctx context.Context, guilds []uint64, staged []childKind, children [][][]uint64) ([]uint64, error) {
	if !c.cfg.Entities.Kind(model.KindUser).Wanted() {
		return nil, nil
	}

	memberIdx := -1
	for ki, ck := range staged {
		if ck.kind == model.KindMember {
			memberIdx = ki
		}
	}
	if memberIdx == -1 {
		return nil, nil
	}

	type userRef struct {
		user uint64
		card *redis.IntCmd
	}

	p := c.newPipe()
	var refs []userRef
	for gi, g := range guilds {
		for _, u := range children[gi][memberIdx] {
			p.sRem(ctx, keys.UserGuilds(u), g)
			refs = append(refs, userRef{user: u, card: p.sCard(ctx, keys.UserGuilds(u))})
		}
	}
	if err := p.exec(ctx); err != nil {
		return nil, err
	}

	var orphans []uint64
	for _, ref := range refs {
		n, err := ref.card.Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return nil, errors.Join(ErrInvalidResponse, err)
		}
		if n == 0 {
			orphans = append(orphans, ref.user)
		}
	}
	return orphans, nil
}

// DeleteMember removes one membership, reclaiming the shared user record
// when this was its last guild.
func (c *Cache) DeleteMember(ctx context.Context, guild, user uint64) error {
	p := c.newPipe()
	if c.cfg.Entities.Kind(model.KindMember).Wanted() {
		p.del(ctx, keys.Member(guild, user))
		p.sRem(ctx, keys.GuildMembers(guild), user)
	}

	if !c.cfg.Entities.Kind(model.KindUser).Wanted() {
		return p.exec(ctx)
	}

	p.sRem(ctx, keys.UserGuilds(user), guild)
	card := p.sCard(ctx, keys.UserGuilds(user))
	if err := p.exec(ctx); err != nil {
		return err
	}

	n, err := card.Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return errors.Join(ErrInvalidResponse, err)
	}
	if n > 0 {
		return nil
	}

	p = c.newPipe()
	p.del(ctx, keys.User(user), keys.UserGuilds(user))
	p.sRem(ctx, keys.Users, user)
	return p.exec(ctx)
}

// Staged single-entity deletes, composed into a caller-owned pipe.

func (c *Cache) stageChannelDelete(ctx context.Context, p *pipe, guild, id uint64) {
	if !c.cfg.Entities.Kind(model.KindChannel).Wanted() {
		return
	}
	p.del(ctx, keys.Channel(id))
	p.sRem(ctx, keys.Channels, id)
	if guild != 0 {
		p.sRem(ctx, keys.GuildChannels(guild), id)
	}
	if c.cfg.Entities.Kind(model.KindChannel).Expires() {
		p.del(ctx, keys.ChannelMeta(id))
	}
}

func (c *Cache) stageRoleDelete(ctx context.Context, p *pipe, guild, id uint64) {
	if !c.cfg.Entities.Kind(model.KindRole).Wanted() {
		return
	}
	p.del(ctx, keys.Role(id))
	p.sRem(ctx, keys.Roles, id)
	p.sRem(ctx, keys.GuildRoles(guild), id)
	if c.cfg.Entities.Kind(model.KindRole).Expires() {
		p.del(ctx, keys.RoleMeta(id))
	}
}

func (c *Cache) stageMessageDelete(ctx context.Context, p *pipe, channel, id uint64) {
	if !c.cfg.Entities.Kind(model.KindMessage).Wanted() {
		return
	}
	p.del(ctx, keys.Message(id))
	p.sRem(ctx, keys.Messages, id)
	p.zRem(ctx, keys.ChannelMessages(channel), id)
	if c.cfg.Entities.Kind(model.KindMessage).Expires() {
		p.del(ctx, keys.MessageMeta(id))
	}
}

func (c *Cache) stageIntegrationDelete(ctx context.Context, p *pipe, guild, id uint64) {
	if !c.cfg.Entities.Kind(model.KindIntegration).Wanted() {
		return
	}
	p.del(ctx, keys.Integration(guild, id))
	p.sRem(ctx, keys.GuildIntegrations(guild), id)
}

func (c *Cache) stageStageInstanceDelete(ctx context.Context, p *pipe, guild, id uint64) {
	if !c.cfg.Entities.Kind(model.KindStageInstance).Wanted() {
		return
	}
	p.del(ctx, keys.StageInstance(id))
	p.sRem(ctx, keys.StageInstances, id)
	p.sRem(ctx, keys.GuildStageInstances(guild), id)
	if c.cfg.Entities.Kind(model.KindStageInstance).Expires() {
		p.del(ctx, keys.StageInstanceMeta(id))
	}
}

func (c *Cache) stageScheduledEventDelete(ctx context.Context, p *pipe, guild, id uint64) {
	if !c.cfg.Entities.Kind(model.KindScheduledEvent).Wanted() {
		return
	}
	p.del(ctx, keys.ScheduledEvent(id))
	p.sRem(ctx, keys.ScheduledEvents, id)
	p.sRem(ctx, keys.GuildScheduledEvents(guild), id)
	if c.cfg.Entities.Kind(model.KindScheduledEvent).Expires() {
		p.del(ctx, keys.ScheduledEventMeta(id))
	}
}
