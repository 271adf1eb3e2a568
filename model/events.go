package model

// Event is the closed set of gateway payloads the cache reacts to. The
// gateway hands these over already typed; the cache never parses transport
// frames itself.
type Event interface {
	isEvent()
}

// MemberWithUser pairs a member payload with the user it embeds.
type MemberWithUser struct {
	Member Member
	User   *User
}

// Ready opens a session: the current user plus the ids of guilds that will
// arrive as separate guild-create payloads (unavailable until then).
type Ready struct {
	CurrentUser CurrentUser
	GuildIDs    []uint64
}

// GuildCreate is the full guild snapshot with every nested entity the
// gateway includes.
type GuildCreate struct {
	Guild           Guild
	Channels        []Channel
	Threads         []Channel
	Roles           []Role
	Members         []MemberWithUser
	Presences       []Presence
	VoiceStates     []VoiceState
	Stickers        []Sticker
	Emojis          []Emoji
	StageInstances  []StageInstance
	ScheduledEvents []ScheduledEvent
}

// GuildUpdate carries the guild's own fields only, without a member count.
type GuildUpdate struct {
	Guild Guild
}

type GuildDelete struct {
	ID          uint64
	Unavailable bool
}

type ChannelCreate struct{ Channel Channel }
type ChannelUpdate struct{ Channel Channel }

type ChannelDelete struct {
	ID      uint64
	GuildID uint64
}

type ChannelPinsUpdate struct {
	ChannelID        uint64
	LastPinTimestamp int64
}

type ThreadCreate struct{ Channel Channel }
type ThreadUpdate struct{ Channel Channel }

type ThreadDelete struct {
	ID      uint64
	GuildID uint64
}

type RoleCreate struct{ Role Role }
type RoleUpdate struct{ Role Role }

type RoleDelete struct {
	GuildID uint64
	RoleID  uint64
}

type MemberAdd struct {
	Member Member
	User   *User
}

// MemberUpdate is a diff: only nick, roles, and the embedded user change.
type MemberUpdate struct {
	GuildID uint64
	UserID  uint64
	Nick    string
	RoleIDs []uint64
	User    *User
}

type MemberRemove struct {
	GuildID uint64
	UserID  uint64
}

type MemberChunk struct {
	GuildID   uint64
	Members   []MemberWithUser
	Presences []Presence
}

type MessageCreate struct {
	Message Message
	Author  *User
	Member  *Member
	Thread  *Channel
}

// MessageUpdate carries only the fields that can change after posting.
type MessageUpdate struct {
	ID              uint64
	ChannelID       uint64
	Content         string
	EditedTimestamp int64
	Pinned          bool
}

type MessageDelete struct {
	ID        uint64
	ChannelID uint64
}

type MessageDeleteBulk struct {
	ChannelID uint64
	IDs       []uint64
}

type PresenceUpdate struct {
	Presence Presence
	User     *User
}

type UserUpdate struct {
	CurrentUser CurrentUser
}

type VoiceStateUpdate struct {
	VoiceState VoiceState
	Member     *MemberWithUser
}

// StickersUpdate replaces the guild's sticker set.
type StickersUpdate struct {
	GuildID  uint64
	Stickers []Sticker
}

// EmojisUpdate replaces the guild's emoji set.
type EmojisUpdate struct {
	GuildID uint64
	Emojis  []Emoji
}

type IntegrationCreate struct {
	Integration Integration
	User        *User
}

type IntegrationUpdate struct {
	Integration Integration
	User        *User
}

type IntegrationDelete struct {
	GuildID uint64
	ID      uint64
}

type StageInstanceCreate struct{ StageInstance StageInstance }
type StageInstanceUpdate struct{ StageInstance StageInstance }

type StageInstanceDelete struct {
	ID      uint64
	GuildID uint64
}

type ScheduledEventCreate struct{ ScheduledEvent ScheduledEvent }
type ScheduledEventUpdate struct{ ScheduledEvent ScheduledEvent }

type ScheduledEventDelete struct {
	ID      uint64
	GuildID uint64
}

type ScheduledEventUserAdd struct {
	GuildID uint64
	EventID uint64
	UserID  uint64
}

type ScheduledEventUserRemove struct {
	GuildID uint64
	EventID uint64
	UserID  uint64
}

// ReactionAdd may carry the reacting member on guild messages.
type ReactionAdd struct {
	GuildID   uint64
	ChannelID uint64
	MessageID uint64
	UserID    uint64
	Emoji     string
	Member    *MemberWithUser
}

type ReactionRemove struct {
	GuildID   uint64
	ChannelID uint64
	MessageID uint64
	UserID    uint64
	Emoji     string
	Member    *MemberWithUser
}

// ReactionRemoveAll clears every reaction from one message.
type ReactionRemoveAll struct {
	GuildID   uint64
	ChannelID uint64
	MessageID uint64
}

// ReactionRemoveEmoji clears one emoji's reactions from one message.
type ReactionRemoveEmoji struct {
	GuildID   uint64
	ChannelID uint64
	MessageID uint64
	Emoji     string
}

// BanAdd only contributes the banned user's payload to the cache; the
// membership itself goes away through the member-remove event.
type BanAdd struct {
	GuildID uint64
	User    User
}

type BanRemove struct {
	GuildID uint64
	User    User
}

type TypingStart struct {
	GuildID   uint64
	ChannelID uint64
	UserID    uint64
	Member    *MemberWithUser
}

type InviteCreate struct {
	GuildID    uint64
	ChannelID  uint64
	Inviter    *User
	TargetUser *User
}

// ThreadListSync carries the active threads of the channels that came back
// into view.
type ThreadListSync struct {
	GuildID uint64
	Threads []Channel
}

type ThreadMemberUpdate struct {
	Presence *Presence
	Member   *MemberWithUser
}

// InteractionCreate is mined for the entity payloads it resolves; the
// interaction itself is never cached.
type InteractionCreate struct {
	GuildID uint64
	Channel *Channel
	Roles   []Role
	Users   []User
	Member  *MemberWithUser
	Message *Message
	User    *User
}

func (*Ready) isEvent()                    {}
func (*GuildCreate) isEvent()              {}
func (*GuildUpdate) isEvent()              {}
func (*GuildDelete) isEvent()              {}
func (*ChannelCreate) isEvent()            {}
func (*ChannelUpdate) isEvent()            {}
func (*ChannelDelete) isEvent()            {}
func (*ChannelPinsUpdate) isEvent()        {}
func (*ThreadCreate) isEvent()             {}
func (*ThreadUpdate) isEvent()             {}
func (*ThreadDelete) isEvent()             {}
func (*RoleCreate) isEvent()               {}
func (*RoleUpdate) isEvent()               {}
func (*RoleDelete) isEvent()               {}
func (*MemberAdd) isEvent()                {}
func (*MemberUpdate) isEvent()             {}
func (*MemberRemove) isEvent()             {}
func (*MemberChunk) isEvent()              {}
func (*MessageCreate) isEvent()            {}
func (*MessageUpdate) isEvent()            {}
func (*MessageDelete) isEvent()            {}
func (*MessageDeleteBulk) isEvent()        {}
func (*PresenceUpdate) isEvent()           {}
func (*UserUpdate) isEvent()               {}
func (*VoiceStateUpdate) isEvent()         {}
func (*StickersUpdate) isEvent()           {}
func (*EmojisUpdate) isEvent()             {}
func (*IntegrationCreate) isEvent()        {}
func (*IntegrationUpdate) isEvent()        {}
func (*IntegrationDelete) isEvent()        {}
func (*StageInstanceCreate) isEvent()      {}
func (*StageInstanceUpdate) isEvent()      {}
func (*StageInstanceDelete) isEvent()      {}
func (*ScheduledEventCreate) isEvent()     {}
func (*ScheduledEventUpdate) isEvent()     {}
func (*ScheduledEventDelete) isEvent()     {}
func (*ScheduledEventUserAdd) isEvent()    {}
func (*ScheduledEventUserRemove) isEvent() {}
func (*ReactionAdd) isEvent()              {}
func (*ReactionRemove) isEvent()           {}
func (*ReactionRemoveAll) isEvent()        {}
func (*ReactionRemoveEmoji) isEvent()      {}
func (*BanAdd) isEvent()                   {}
func (*BanRemove) isEvent()                {}
func (*TypingStart) isEvent()              {}
func (*InviteCreate) isEvent()             {}
func (*ThreadListSync) isEvent()           {}
func (*ThreadMemberUpdate) isEvent()       {}
func (*InteractionCreate) isEvent()        {}
