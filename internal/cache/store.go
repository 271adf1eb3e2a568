package cache

import (
	"context"
	"fmt"

	"github.com/gatecache/gatecache/internal/archive"
	"github.com/gatecache/gatecache/internal/keys"
	"github.com/gatecache/gatecache/model"
)

// Store translates one gateway event into primary writes plus index updates
// and sends them as a single batch. Nothing reaches the store until the
// whole event has been staged, except the immediate reads that partial
// update events need to inspect the existing record.
func (c *Cache) Store(ctx context.Context, ev model.Event) error {
	p := c.newPipe()
	var enc archive.Encoder

	switch e := ev.(type) {
	case *model.Ready:
		return c.handleReady(ctx, e)

	case *model.GuildCreate:
		if err := c.stageGuildCreate(ctx, p, &enc, e); err != nil {
			return err
		}

	case *model.GuildUpdate:
		if err := c.stageGuildUpdate(ctx, p, &enc, &e.Guild); err != nil {
			return err
		}

	case *model.GuildDelete:
		return c.handleGuildDelete(ctx, e)

	case *model.ChannelCreate:
		if err := c.stageChannel(ctx, p, &enc, &e.Channel); err != nil {
			return err
		}
	case *model.ChannelUpdate:
		if err := c.stageChannel(ctx, p, &enc, &e.Channel); err != nil {
			return err
		}
	case *model.ThreadCreate:
		if err := c.stageChannel(ctx, p, &enc, &e.Channel); err != nil {
			return err
		}
	case *model.ThreadUpdate:
		if err := c.stageChannel(ctx, p, &enc, &e.Channel); err != nil {
			return err
		}

	case *model.ChannelDelete:
		c.stageChannelDelete(ctx, p, e.GuildID, e.ID)
	case *model.ThreadDelete:
		c.stageChannelDelete(ctx, p, e.GuildID, e.ID)

	case *model.ChannelPinsUpdate:
		if err := c.stageChannelPins(ctx, p, e); err != nil {
			return err
		}

	case *model.RoleCreate:
		if err := c.stageRole(ctx, p, &enc, &e.Role); err != nil {
			return err
		}
	case *model.RoleUpdate:
		if err := c.stageRole(ctx, p, &enc, &e.Role); err != nil {
			return err
		}
	case *model.RoleDelete:
		c.stageRoleDelete(ctx, p, e.GuildID, e.RoleID)

	case *model.MemberAdd:
		if err := c.stageMemberAndUser(ctx, p, &enc, &e.Member, e.User); err != nil {
			return err
		}

	case *model.MemberUpdate:
		if err := c.stageMemberUpdate(ctx, p, &enc, e); err != nil {
			return err
		}

	case *model.MemberRemove:
		return c.DeleteMember(ctx, e.GuildID, e.UserID)

	case *model.MemberChunk:
		for i := range e.Members {
			m := &e.Members[i]
			if err := c.stageMemberAndUser(ctx, p, &enc, &m.Member, m.User); err != nil {
				return err
			}
		}
		for i := range e.Presences {
			if err := c.stagePresence(ctx, p, &enc, &e.Presences[i]); err != nil {
				return err
			}
		}

	case *model.MessageCreate:
		if err := c.stageMessageCreate(ctx, p, &enc, e); err != nil {
			return err
		}

	case *model.MessageUpdate:
		if err := c.stageMessageUpdate(ctx, p, &enc, e); err != nil {
			return err
		}

	case *model.MessageDelete:
		c.stageMessageDelete(ctx, p, e.ChannelID, e.ID)
	case *model.MessageDeleteBulk:
		for _, id := range e.IDs {
			c.stageMessageDelete(ctx, p, e.ChannelID, id)
		}

	case *model.PresenceUpdate:
		if e.User != nil {
			if err := c.stageUser(ctx, p, &enc, e.User); err != nil {
				return err
			}
		}
		if err := c.stagePresence(ctx, p, &enc, &e.Presence); err != nil {
			return err
		}

	case *model.UserUpdate:
		if err := c.stageCurrentUser(ctx, p, &enc, &e.CurrentUser); err != nil {
			return err
		}

	case *model.VoiceStateUpdate:
		if e.Member != nil {
			if err := c.stageMemberAndUser(ctx, p, &enc, &e.Member.Member, e.Member.User); err != nil {
				return err
			}
		}
		if err := c.stageVoiceState(ctx, p, &enc, &e.VoiceState); err != nil {
			return err
		}

	case *model.StickersUpdate:
		for i := range e.Stickers {
			if err := c.stageSticker(ctx, p, &enc, &e.Stickers[i]); err != nil {
				return err
			}
		}

	case *model.EmojisUpdate:
		for i := range e.Emojis {
			if err := c.stageEmoji(ctx, p, &enc, &e.Emojis[i]); err != nil {
				return err
			}
		}

	case *model.IntegrationCreate:
		if err := c.stageIntegrationAndUser(ctx, p, &enc, &e.Integration, e.User); err != nil {
			return err
		}
	case *model.IntegrationUpdate:
		if err := c.stageIntegrationAndUser(ctx, p, &enc, &e.Integration, e.User); err != nil {
			return err
		}
	case *model.IntegrationDelete:
		c.stageIntegrationDelete(ctx, p, e.GuildID, e.ID)

	case *model.StageInstanceCreate:
		if err := c.stageStageInstance(ctx, p, &enc, &e.StageInstance); err != nil {
			return err
		}
	case *model.StageInstanceUpdate:
		if err := c.stageStageInstance(ctx, p, &enc, &e.StageInstance); err != nil {
			return err
		}
	case *model.StageInstanceDelete:
		c.stageStageInstanceDelete(ctx, p, e.GuildID, e.ID)

	case *model.ScheduledEventCreate:
		if err := c.stageScheduledEvent(ctx, p, &enc, &e.ScheduledEvent); err != nil {
			return err
		}
	case *model.ScheduledEventUpdate:
		if err := c.stageScheduledEvent(ctx, p, &enc, &e.ScheduledEvent); err != nil {
			return err
		}
	case *model.ScheduledEventDelete:
		c.stageScheduledEventDelete(ctx, p, e.GuildID, e.ID)

	case *model.ScheduledEventUserAdd:
		if err := c.stageScheduledEventUsers(ctx, p, e.GuildID, e.EventID, true); err != nil {
			return err
		}
	case *model.ScheduledEventUserRemove:
		if err := c.stageScheduledEventUsers(ctx, p, e.GuildID, e.EventID, false); err != nil {
			return err
		}

	case *model.ReactionAdd:
		if e.GuildID != 0 && e.Member != nil {
			if err := c.stageMemberAndUser(ctx, p, &enc, &e.Member.Member, e.Member.User); err != nil {
				return err
			}
		}
		if err := c.stageReaction(ctx, p, &enc, e.ChannelID, e.MessageID, func(m *model.Message) {
			m.AddReaction(e.Emoji)
		}); err != nil {
			return err
		}
	case *model.ReactionRemove:
		if e.GuildID != 0 && e.Member != nil {
			if err := c.stageMemberAndUser(ctx, p, &enc, &e.Member.Member, e.Member.User); err != nil {
				return err
			}
		}
		if err := c.stageReaction(ctx, p, &enc, e.ChannelID, e.MessageID, func(m *model.Message) {
			m.RemoveReaction(e.Emoji)
		}); err != nil {
			return err
		}
	case *model.ReactionRemoveAll:
		if err := c.stageReaction(ctx, p, &enc, e.ChannelID, e.MessageID, (*model.Message).RemoveAllReactions); err != nil {
			return err
		}
	case *model.ReactionRemoveEmoji:
		if err := c.stageReaction(ctx, p, &enc, e.ChannelID, e.MessageID, func(m *model.Message) {
			m.RemoveReactionEmoji(e.Emoji)
		}); err != nil {
			return err
		}

	case *model.BanAdd:
		if err := c.stageUser(ctx, p, &enc, &e.User); err != nil {
			return err
		}
	case *model.BanRemove:
		if err := c.stageUser(ctx, p, &enc, &e.User); err != nil {
			return err
		}

	case *model.TypingStart:
		if e.GuildID != 0 && e.Member != nil {
			if err := c.stageMemberAndUser(ctx, p, &enc, &e.Member.Member, e.Member.User); err != nil {
				return err
			}
		}

	case *model.InviteCreate:
		if e.Inviter != nil {
			if err := c.stageUser(ctx, p, &enc, e.Inviter); err != nil {
				return err
			}
		}
		if e.TargetUser != nil {
			if err := c.stageUser(ctx, p, &enc, e.TargetUser); err != nil {
				return err
			}
		}

	case *model.ThreadListSync:
		for i := range e.Threads {
			if err := c.stageChannel(ctx, p, &enc, &e.Threads[i]); err != nil {
				return err
			}
		}

	case *model.ThreadMemberUpdate:
		if e.Presence != nil {
			if err := c.stagePresence(ctx, p, &enc, e.Presence); err != nil {
				return err
			}
			if e.Member != nil {
				if err := c.stageMemberAndUser(ctx, p, &enc, &e.Member.Member, e.Member.User); err != nil {
					return err
				}
			}
		}

	case *model.InteractionCreate:
		if err := c.stageInteraction(ctx, p, &enc, e); err != nil {
			return err
		}

	default:
		return fmt.Errorf("store: unhandled event type %T", ev)
	}

	return p.exec(ctx)
}

// Private API.

// handleReady marks the session's guilds unavailable: whatever the cache
// held for them is stale until their snapshots arrive, so each one is
// cascade-deleted before joining the unavailable set. Keeps GUILDS and
// UNAVAILABLE_GUILDS disjoint across reconnects.
func (c *Cache) handleReady(ctx context.Context, e *model.Ready) error {
	if err := c.DeleteGuilds(ctx, e.GuildIDs); err != nil {
		return err
	}

	p := c.newPipe()
	var enc archive.Encoder
	p.sAdd(ctx, keys.UnavailableGuilds, e.GuildIDs...)
	if err := c.stageCurrentUser(ctx, p, &enc, &e.CurrentUser); err != nil {
		return err
	}
	return p.exec(ctx)
}

func (c *Cache) stageGuildCreate(ctx context.Context, p *pipe, enc *archive.Encoder, e *model.GuildCreate) error {
	cfg := c.cfg.Entities.Kind(model.KindGuild)
	g := e.Guild
	g.Unavailable = false

	if cfg.Wanted() {
		buf, err := enc.Encode(&g)
		if err != nil {
			return &SerializeError{Kind: model.KindGuild, Err: err}
		}
		p.set(ctx, keys.Guild(g.ID), buf, cfg.TTL)
		p.sAdd(ctx, keys.Guilds, g.ID)
	}
	// a guild that arrives in full is available again either way
	p.sRem(ctx, keys.UnavailableGuilds, g.ID)

	for i := range e.Channels {
		if err := c.stageChannel(ctx, p, enc, &e.Channels[i]); err != nil {
			return err
		}
	}
	for i := range e.Threads {
		if err := c.stageChannel(ctx, p, enc, &e.Threads[i]); err != nil {
			return err
		}
	}
	for i := range e.Roles {
		if err := c.stageRole(ctx, p, enc, &e.Roles[i]); err != nil {
			return err
		}
	}
	for i := range e.Members {
		m := &e.Members[i]
		if err := c.stageMemberAndUser(ctx, p, enc, &m.Member, m.User); err != nil {
			return err
		}
	}
	for i := range e.Presences {
		if err := c.stagePresence(ctx, p, enc, &e.Presences[i]); err != nil {
			return err
		}
	}
	for i := range e.VoiceStates {
		if err := c.stageVoiceState(ctx, p, enc, &e.VoiceStates[i]); err != nil {
			return err
		}
	}
	for i := range e.Stickers {
		if err := c.stageSticker(ctx, p, enc, &e.Stickers[i]); err != nil {
			return err
		}
	}
	for i := range e.Emojis {
		if err := c.stageEmoji(ctx, p, enc, &e.Emojis[i]); err != nil {
			return err
		}
	}
	for i := range e.StageInstances {
		if err := c.stageStageInstance(ctx, p, enc, &e.StageInstances[i]); err != nil {
			return err
		}
	}
	for i := range e.ScheduledEvents {
		if err := c.stageScheduledEvent(ctx, p, enc, &e.ScheduledEvents[i]); err != nil {
			return err
		}
	}
	return nil
}

// stageGuildUpdate patches the cached guild: the update payload has no
// member count, so the existing one is carried over. Without a cached
// record the payload is stored as is.
func (c *Cache) stageGuildUpdate(ctx context.Context, p *pipe, enc *archive.Encoder, g *model.Guild) error {
	cfg := c.cfg.Entities.Kind(model.KindGuild)
	if !cfg.Wanted() {
		return nil
	}

	existing, err := c.Guild(ctx, g.ID)
	if err != nil {
		return err
	}

	next := *g
	next.Unavailable = false
	if existing != nil {
		next.MemberCount = existing.MemberCount()
	}

	buf, err := enc.Encode(&next)
	if err != nil {
		return &SerializeError{Kind: model.KindGuild, Err: err}
	}
	p.set(ctx, keys.Guild(next.ID), buf, cfg.TTL)
	p.sAdd(ctx, keys.Guilds, next.ID)
	p.sRem(ctx, keys.UnavailableGuilds, next.ID)
	return nil
}

func (c *Cache) handleGuildDelete(ctx context.Context, e *model.GuildDelete) error {
	if err := c.DeleteGuild(ctx, e.ID); err != nil {
		return err
	}
	p := c.newPipe()
	if e.Unavailable {
		p.sAdd(ctx, keys.UnavailableGuilds, e.ID)
	} else {
		p.sRem(ctx, keys.UnavailableGuilds, e.ID)
	}
	return p.exec(ctx)
}

func (c *Cache) stageChannel(ctx context.Context, p *pipe, enc *archive.Encoder, ch *model.Channel) error {
	cfg := c.cfg.Entities.Kind(model.KindChannel)
	if !cfg.Wanted() {
		return nil
	}

	buf, err := enc.Encode(ch)
	if err != nil {
		return &SerializeError{Kind: model.KindChannel, Err: err}
	}
	p.set(ctx, keys.Channel(ch.ID), buf, cfg.TTL)
	p.sAdd(ctx, keys.Channels, ch.ID)
	if ch.GuildID != 0 {
		p.sAdd(ctx, keys.GuildChannels(ch.GuildID), ch.ID)
	}
	if cfg.Expires() {
		return c.stageGuildMeta(ctx, p, model.KindChannel, ch.ID, ch.GuildID)
	}
	return nil
}

// stageChannelPins patches the pin timestamp in place; absent channel means
// nothing to patch.
func (c *Cache) stageChannelPins(ctx context.Context, p *pipe, e *model.ChannelPinsUpdate) error {
	cfg := c.cfg.Entities.Kind(model.KindChannel)
	if !cfg.Wanted() {
		return nil
	}

	ch, err := c.Channel(ctx, e.ChannelID)
	if err != nil || ch == nil {
		return err
	}
	if err := ch.SetLastPinTimestamp(e.LastPinTimestamp); err != nil {
		return &UpdateError{Kind: model.KindChannel, Err: err}
	}
	p.set(ctx, keys.Channel(e.ChannelID), ch.Bytes(), cfg.TTL)
	return nil
}

func (c *Cache) stageRole(ctx context.Context, p *pipe, enc *archive.Encoder, r *model.Role) error {
	cfg := c.cfg.Entities.Kind(model.KindRole)
	if !cfg.Wanted() {
		return nil
	}

	buf, err := enc.Encode(r)
	if err != nil {
		return &SerializeError{Kind: model.KindRole, Err: err}
	}
	p.set(ctx, keys.Role(r.ID), buf, cfg.TTL)
	p.sAdd(ctx, keys.Roles, r.ID)
	p.sAdd(ctx, keys.GuildRoles(r.GuildID), r.ID)
	if cfg.Expires() {
		return c.stageGuildMeta(ctx, p, model.KindRole, r.ID, r.GuildID)
	}
	return nil
}

// stageMemberAndUser stores a member payload together with the user it
// embeds. The user is stored regardless of the member policy: nested
// payloads of other kinds stay reachable even when the outer kind is off.
func (c *Cache) stageMemberAndUser(ctx context.Context, p *pipe, enc *archive.Encoder, m *model.Member, u *model.User) error {
	if u != nil {
		if err := c.stageUser(ctx, p, enc, u); err != nil {
			return err
		}
	}
	return c.stageMember(ctx, p, enc, m)
}

func (c *Cache) stageMember(ctx context.Context, p *pipe, enc *archive.Encoder, m *model.Member) error {
	memberCfg := c.cfg.Entities.Kind(model.KindMember)
	userCfg := c.cfg.Entities.Kind(model.KindUser)

	// membership refcount is keyed off the user, so it is maintained even
	// when member records themselves are not stored
	if userCfg.Wanted() && m.GuildID != 0 {
		p.sAdd(ctx, keys.UserGuilds(m.UserID), m.GuildID)
	}

	if !memberCfg.Wanted() {
		return nil
	}

	buf, err := enc.Encode(m)
	if err != nil {
		return &SerializeError{Kind: model.KindMember, Err: err}
	}
	p.set(ctx, keys.Member(m.GuildID, m.UserID), buf, memberCfg.TTL)
	p.sAdd(ctx, keys.GuildMembers(m.GuildID), m.UserID)
	return nil
}

// stageMemberUpdate applies the diff to the cached member. Nick and roles
// are variable width, so the patch re-encodes rather than mutating bytes.
func (c *Cache) stageMemberUpdate(ctx context.Context, p *pipe, enc *archive.Encoder, e *model.MemberUpdate) error {
	if e.User != nil {
		if err := c.stageUser(ctx, p, enc, e.User); err != nil {
			return err
		}
	}

	memberCfg := c.cfg.Entities.Kind(model.KindMember)
	userCfg := c.cfg.Entities.Kind(model.KindUser)
	if userCfg.Wanted() && e.GuildID != 0 {
		p.sAdd(ctx, keys.UserGuilds(e.UserID), e.GuildID)
	}
	if !memberCfg.Wanted() {
		return nil
	}

	existing, err := c.Member(ctx, e.GuildID, e.UserID)
	if err != nil || existing == nil {
		return err
	}

	next := existing.Unarchive()
	next.Nick = e.Nick
	next.RoleIDs = e.RoleIDs

	buf, err := enc.Encode(next)
	if err != nil {
		return &SerializeError{Kind: model.KindMember, Err: err}
	}
	p.set(ctx, keys.Member(e.GuildID, e.UserID), buf, memberCfg.TTL)
	p.sAdd(ctx, keys.GuildMembers(e.GuildID), e.UserID)
	return nil
}

func (c *Cache) stageUser(ctx context.Context, p *pipe, enc *archive.Encoder, u *model.User) error {
	cfg := c.cfg.Entities.Kind(model.KindUser)
	if !cfg.Wanted() {
		return nil
	}

	buf, err := enc.Encode(u)
	if err != nil {
		return &SerializeError{Kind: model.KindUser, Err: err}
	}
	p.set(ctx, keys.User(u.ID), buf, cfg.TTL)
	p.sAdd(ctx, keys.Users, u.ID)
	return nil
}

func (c *Cache) stageCurrentUser(ctx context.Context, p *pipe, enc *archive.Encoder, u *model.CurrentUser) error {
	cfg := c.cfg.Entities.Kind(model.KindCurrentUser)
	if !cfg.Wanted() {
		return nil
	}

	buf, err := enc.Encode(u)
	if err != nil {
		return &SerializeError{Kind: model.KindCurrentUser, Err: err}
	}
	p.set(ctx, keys.CurrentUser, buf, cfg.TTL)
	return nil
}

func (c *Cache) stagePresence(ctx context.Context, p *pipe, enc *archive.Encoder, pr *model.Presence) error {
	cfg := c.cfg.Entities.Kind(model.KindPresence)
	if !cfg.Wanted() {
		return nil
	}

	buf, err := enc.Encode(pr)
	if err != nil {
		return &SerializeError{Kind: model.KindPresence, Err: err}
	}
	p.set(ctx, keys.Presence(pr.GuildID, pr.UserID), buf, cfg.TTL)
	p.sAdd(ctx, keys.GuildPresences(pr.GuildID), pr.UserID)
	return nil
}

// stageVoiceState stores the state, or removes it when the payload says the
// user disconnected (no channel).
func (c *Cache) stageVoiceState(ctx context.Context, p *pipe, enc *archive.Encoder, v *model.VoiceState) error {
	cfg := c.cfg.Entities.Kind(model.KindVoiceState)
	if !cfg.Wanted() {
		return nil
	}

	if v.ChannelID == 0 {
		p.del(ctx, keys.VoiceState(v.GuildID, v.UserID))
		p.sRem(ctx, keys.GuildVoiceStates(v.GuildID), v.UserID)
		return nil
	}

	buf, err := enc.Encode(v)
	if err != nil {
		return &SerializeError{Kind: model.KindVoiceState, Err: err}
	}
	p.set(ctx, keys.VoiceState(v.GuildID, v.UserID), buf, cfg.TTL)
	p.sAdd(ctx, keys.GuildVoiceStates(v.GuildID), v.UserID)
	return nil
}

func (c *Cache) stageMessageCreate(ctx context.Context, p *pipe, enc *archive.Encoder, e *model.MessageCreate) error {
	if e.Author != nil {
		if err := c.stageUser(ctx, p, enc, e.Author); err != nil {
			return err
		}
	}
	if e.Member != nil {
		if err := c.stageMember(ctx, p, enc, e.Member); err != nil {
			return err
		}
	}
	if e.Thread != nil {
		if err := c.stageChannel(ctx, p, enc, e.Thread); err != nil {
			return err
		}
	}

	return c.stageMessage(ctx, p, enc, &e.Message)
}

func (c *Cache) stageMessage(ctx context.Context, p *pipe, enc *archive.Encoder, m *model.Message) error {
	cfg := c.cfg.Entities.Kind(model.KindMessage)
	if !cfg.Wanted() {
		return nil
	}

	buf, err := enc.Encode(m)
	if err != nil {
		return &SerializeError{Kind: model.KindMessage, Err: err}
	}
	p.set(ctx, keys.Message(m.ID), buf, cfg.TTL)
	p.sAdd(ctx, keys.Messages, m.ID)
	p.zAdd(ctx, keys.ChannelMessages(m.ChannelID), float64(m.Timestamp), m.ID)
	if cfg.Expires() {
		return c.stageMessageMeta(ctx, p, m.ID, m.ChannelID)
	}
	return nil
}

// stageReaction patches the reaction tallies of a cached message; absent
// message means nothing to patch. Reaction lists are variable width, so the
// patch re-encodes. The write refreshes the TTL, so the metadata record is
// refreshed with it.
func (c *Cache) stageReaction(ctx context.Context, p *pipe, enc *archive.Encoder, channel, id uint64, apply func(*model.Message)) error {
	cfg := c.cfg.Entities.Kind(model.KindMessage)
	if !cfg.Wanted() {
		return nil
	}

	m, err := c.Message(ctx, id)
	if err != nil || m == nil {
		return err
	}

	next := m.Unarchive()
	apply(next)

	buf, err := enc.Encode(next)
	if err != nil {
		return &SerializeError{Kind: model.KindMessage, Err: err}
	}
	p.set(ctx, keys.Message(id), buf, cfg.TTL)
	p.sAdd(ctx, keys.Messages, id)
	if cfg.Expires() {
		return c.stageMessageMeta(ctx, p, id, channel)
	}
	return nil
}

// stageInteraction mines an interaction for the entity payloads it resolves.
func (c *Cache) stageInteraction(ctx context.Context, p *pipe, enc *archive.Encoder, e *model.InteractionCreate) error {
	if e.Channel != nil {
		if err := c.stageChannel(ctx, p, enc, e.Channel); err != nil {
			return err
		}
	}
	for i := range e.Roles {
		if err := c.stageRole(ctx, p, enc, &e.Roles[i]); err != nil {
			return err
		}
	}
	for i := range e.Users {
		if err := c.stageUser(ctx, p, enc, &e.Users[i]); err != nil {
			return err
		}
	}
	if e.GuildID != 0 && e.Member != nil {
		if err := c.stageMemberAndUser(ctx, p, enc, &e.Member.Member, e.Member.User); err != nil {
			return err
		}
	}
	if e.Message != nil {
		if err := c.stageMessage(ctx, p, enc, e.Message); err != nil {
			return err
		}
	}
	if e.User != nil {
		if err := c.stageUser(ctx, p, enc, e.User); err != nil {
			return err
		}
	}
	return nil
}

// stageMessageUpdate patches the cached message. Edits without new content
// (pin flips) mutate in place; content changes re-encode.
func (c *Cache) stageMessageUpdate(ctx context.Context, p *pipe, enc *archive.Encoder, e *model.MessageUpdate) error {
	cfg := c.cfg.Entities.Kind(model.KindMessage)
	if !cfg.Wanted() {
		return nil
	}

	m, err := c.Message(ctx, e.ID)
	if err != nil || m == nil {
		return err
	}

	if e.Content == "" {
		if err := m.SetPinned(e.Pinned); err != nil {
			return &UpdateError{Kind: model.KindMessage, Err: err}
		}
		if err := m.SetEditedTimestamp(e.EditedTimestamp); err != nil {
			return &UpdateError{Kind: model.KindMessage, Err: err}
		}
		p.set(ctx, keys.Message(e.ID), m.Bytes(), cfg.TTL)
		return nil
	}

	next := m.Unarchive()
	next.Content = e.Content
	next.EditedTimestamp = e.EditedTimestamp
	next.Pinned = e.Pinned

	buf, err := enc.Encode(next)
	if err != nil {
		return &SerializeError{Kind: model.KindMessage, Err: err}
	}
	p.set(ctx, keys.Message(e.ID), buf, cfg.TTL)
	return nil
}

func (c *Cache) stageSticker(ctx context.Context, p *pipe, enc *archive.Encoder, s *model.Sticker) error {
	cfg := c.cfg.Entities.Kind(model.KindSticker)
	if !cfg.Wanted() {
		return nil
	}

	buf, err := enc.Encode(s)
	if err != nil {
		return &SerializeError{Kind: model.KindSticker, Err: err}
	}
	p.set(ctx, keys.Sticker(s.ID), buf, cfg.TTL)
	p.sAdd(ctx, keys.Stickers, s.ID)
	p.sAdd(ctx, keys.GuildStickers(s.GuildID), s.ID)
	if cfg.Expires() {
		return c.stageGuildMeta(ctx, p, model.KindSticker, s.ID, s.GuildID)
	}
	return nil
}

func (c *Cache) stageEmoji(ctx context.Context, p *pipe, enc *archive.Encoder, e *model.Emoji) error {
	cfg := c.cfg.Entities.Kind(model.KindEmoji)
	if !cfg.Wanted() {
		return nil
	}

	buf, err := enc.Encode(e)
	if err != nil {
		return &SerializeError{Kind: model.KindEmoji, Err: err}
	}
	p.set(ctx, keys.Emoji(e.ID), buf, cfg.TTL)
	p.sAdd(ctx, keys.Emojis, e.ID)
	p.sAdd(ctx, keys.GuildEmojis(e.GuildID), e.ID)
	if cfg.Expires() {
		return c.stageGuildMeta(ctx, p, model.KindEmoji, e.ID, e.GuildID)
	}
	return nil
}

func (c *Cache) stageIntegrationAndUser(ctx context.Context, p *pipe, enc *archive.Encoder, in *model.Integration, u *model.User) error {
	if u != nil {
		if err := c.stageUser(ctx, p, enc, u); err != nil {
			return err
		}
	}

	cfg := c.cfg.Entities.Kind(model.KindIntegration)
	if !cfg.Wanted() {
		return nil
	}

	buf, err := enc.Encode(in)
	if err != nil {
		return &SerializeError{Kind: model.KindIntegration, Err: err}
	}
	p.set(ctx, keys.Integration(in.GuildID, in.ID), buf, cfg.TTL)
	p.sAdd(ctx, keys.GuildIntegrations(in.GuildID), in.ID)
	return nil
}

func (c *Cache) stageStageInstance(ctx context.Context, p *pipe, enc *archive.Encoder, s *model.StageInstance) error {
	cfg := c.cfg.Entities.Kind(model.KindStageInstance)
	if !cfg.Wanted() {
		return nil
	}

	buf, err := enc.Encode(s)
	if err != nil {
		return &SerializeError{Kind: model.KindStageInstance, Err: err}
	}
	p.set(ctx, keys.StageInstance(s.ID), buf, cfg.TTL)
	p.sAdd(ctx, keys.StageInstances, s.ID)
	p.sAdd(ctx, keys.GuildStageInstances(s.GuildID), s.ID)
	if cfg.Expires() {
		return c.stageGuildMeta(ctx, p, model.KindStageInstance, s.ID, s.GuildID)
	}
	return nil
}

func (c *Cache) stageScheduledEvent(ctx context.Context, p *pipe, enc *archive.Encoder, e *model.ScheduledEvent) error {
	cfg := c.cfg.Entities.Kind(model.KindScheduledEvent)
	if !cfg.Wanted() {
		return nil
	}

	buf, err := enc.Encode(e)
	if err != nil {
		return &SerializeError{Kind: model.KindScheduledEvent, Err: err}
	}
	p.set(ctx, keys.ScheduledEvent(e.ID), buf, cfg.TTL)
	p.sAdd(ctx, keys.ScheduledEvents, e.ID)
	p.sAdd(ctx, keys.GuildScheduledEvents(e.GuildID), e.ID)
	if cfg.Expires() {
		return c.stageGuildMeta(ctx, p, model.KindScheduledEvent, e.ID, e.GuildID)
	}
	return nil
}

// stageScheduledEventUsers bumps the subscriber count in place.
func (c *Cache) stageScheduledEventUsers(ctx context.Context, p *pipe, guild, id uint64, add bool) error {
	cfg := c.cfg.Entities.Kind(model.KindScheduledEvent)
	if !cfg.Wanted() {
		return nil
	}

	e, err := c.ScheduledEvent(ctx, id)
	if err != nil || e == nil {
		return err
	}

	if add {
		err = e.AddUser()
	} else {
		err = e.RemoveUser()
	}
	if err != nil {
		return &UpdateError{Kind: model.KindScheduledEvent, Err: err}
	}
	p.set(ctx, keys.ScheduledEvent(id), e.Bytes(), cfg.TTL)
	return nil
}
