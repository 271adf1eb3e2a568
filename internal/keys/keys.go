// Package keys maps entity kinds and ids onto store keys. Keys are plain
// strings with fixed prefixes, decimal ids, and ":" as the delimiter;
// composite keys embed the guild id before the entity id.
package keys

import "strconv"

// Global keys and index sets.
const (
	CurrentUser       = "CURRENT_USER"
	Channels          = "CHANNELS"
	Emojis            = "EMOJIS"
	Guilds            = "GUILDS"
	Messages          = "MESSAGES"
	Roles             = "ROLES"
	ScheduledEvents   = "SCHEDULED_EVENTS"
	Sessions          = "SESSIONS"
	StageInstances    = "STAGE_INSTANCES"
	Stickers          = "STICKERS"
	UnavailableGuilds = "UNAVAILABLE_GUILDS"
	Users             = "USERS"
)

// Primary record keys.

func Guild(id uint64) string          { return "GUILD:" + u(id) }
func Channel(id uint64) string        { return "CHANNEL:" + u(id) }
func Role(id uint64) string           { return "ROLE:" + u(id) }
func User(id uint64) string           { return "USER:" + u(id) }
func Message(id uint64) string        { return "MESSAGE:" + u(id) }
func Sticker(id uint64) string        { return "STICKER:" + u(id) }
func Emoji(id uint64) string          { return "EMOJI:" + u(id) }
func StageInstance(id uint64) string  { return "STAGE_INSTANCE:" + u(id) }
func ScheduledEvent(id uint64) string { return "SCHEDULED_EVENT:" + u(id) }

func Member(guild, user uint64) string      { return "MEMBER:" + u(guild) + ":" + u(user) }
func Presence(guild, user uint64) string    { return "PRESENCE:" + u(guild) + ":" + u(user) }
func VoiceState(guild, user uint64) string  { return "VOICE_STATE:" + u(guild) + ":" + u(user) }
func Integration(guild, id uint64) string   { return "INTEGRATION:" + u(guild) + ":" + u(id) }

// Per-guild index sets.

func GuildChannels(guild uint64) string        { return "GUILD_CHANNELS:" + u(guild) }
func GuildEmojis(guild uint64) string          { return "GUILD_EMOJIS:" + u(guild) }
func GuildIntegrations(guild uint64) string    { return "GUILD_INTEGRATIONS:" + u(guild) }
func GuildMembers(guild uint64) string         { return "GUILD_MEMBERS:" + u(guild) }
func GuildPresences(guild uint64) string       { return "GUILD_PRESENCES:" + u(guild) }
func GuildRoles(guild uint64) string           { return "GUILD_ROLES:" + u(guild) }
func GuildScheduledEvents(guild uint64) string { return "GUILD_SCHEDULED_EVENTS:" + u(guild) }
func GuildStageInstances(guild uint64) string  { return "GUILD_STAGE_INSTANCES:" + u(guild) }
func GuildStickers(guild uint64) string        { return "GUILD_STICKERS:" + u(guild) }
func GuildVoiceStates(guild uint64) string     { return "GUILD_VOICE_STATES:" + u(guild) }

// UserGuilds is the refcount index: the set of guilds a user is currently a
// member of. Its cardinality gates user deletion during membership cleanup.
func UserGuilds(user uint64) string { return "USER_GUILDS:" + u(user) }

// Auxiliary metadata keys, written only for kinds whose primary key does not
// embed the owning guild or channel. The expiry listener GETDELs them to
// repair the scoped index after a TTL removal.

func ChannelMeta(id uint64) string        { return "CHANNEL_META:" + u(id) }
func EmojiMeta(id uint64) string          { return "EMOJI_META:" + u(id) }
func MessageMeta(id uint64) string        { return "MESSAGE_META:" + u(id) }
func RoleMeta(id uint64) string           { return "ROLE_META:" + u(id) }
func ScheduledEventMeta(id uint64) string { return "SCHEDULED_EVENT_META:" + u(id) }
func StageInstanceMeta(id uint64) string  { return "STAGE_INSTANCE_META:" + u(id) }
func StickerMeta(id uint64) string        { return "STICKER_META:" + u(id) }

// ChannelMessages is the per-channel sorted set of message ids scored by
// message timestamp.
func ChannelMessages(channel uint64) string { return "CHANNEL_MESSAGES_META:" + u(channel) }

func u(id uint64) string { return strconv.FormatUint(id, 10) }
