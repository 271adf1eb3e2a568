package cache

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/gatecache/gatecache/config"
	"github.com/gatecache/gatecache/internal/archive"
	"github.com/gatecache/gatecache/model"
)

func newTestCache(t *testing.T, cfg *config.Cache) (*Cache, redismock.ClientMock) {
	t.Helper()
	if cfg == nil {
		cfg = config.Default()
	}
	client, mock := redismock.NewClientMock()
	t.Cleanup(func() { _ = client.Close() })
	return New(client, cfg, slog.New(slog.DiscardHandler)), mock
}

func mustEncode(t *testing.T, m archive.Marshaler) []byte {
	t.Helper()
	buf, err := archive.Encode(m)
	require.NoError(t, err)
	return buf
}

func encodeMessageMeta(t *testing.T, channel uint64) []byte {
	t.Helper()
	buf, err := msgpack.Marshal(&messageMeta{Channel: channel})
	require.NoError(t, err)
	return buf
}

func encodeGuildMeta(t *testing.T, guild uint64) []byte {
	t.Helper()
	buf, err := msgpack.Marshal(&guildMeta{Guild: guild})
	require.NoError(t, err)
	return buf
}

func goredisZ(score float64, member string) redis.Z {
	return redis.Z{Score: score, Member: member}
}

func TestStoreGuildCreateFanOut(t *testing.T) {
	c, mock := newTestCache(t, nil)

	user := model.User{ID: 303, Name: "someone"}
	ev := &model.GuildCreate{
		Guild:    model.Guild{ID: 101, OwnerID: 303, Name: "hq", MemberCount: 1},
		Channels: []model.Channel{{ID: 9, GuildID: 101, Name: "general"}},
		Roles: []model.Role{
			{ID: 5, GuildID: 101, Name: "mods"},
			{ID: 6, GuildID: 101, Name: "everyone"},
		},
		Members: []model.MemberWithUser{
			{Member: model.Member{GuildID: 101, UserID: 303}, User: &user},
		},
	}

	mock.ExpectSet("GUILD:101", mustEncode(t, &ev.Guild), 0).SetVal("OK")
	mock.ExpectSAdd("GUILDS", "101").SetVal(1)
	mock.ExpectSRem("UNAVAILABLE_GUILDS", "101").SetVal(0)

	mock.ExpectSet("CHANNEL:9", mustEncode(t, &ev.Channels[0]), 0).SetVal("OK")
	mock.ExpectSAdd("CHANNELS", "9").SetVal(1)
	mock.ExpectSAdd("GUILD_CHANNELS:101", "9").SetVal(1)

	mock.ExpectSet("ROLE:5", mustEncode(t, &ev.Roles[0]), 0).SetVal("OK")
	mock.ExpectSAdd("ROLES", "5").SetVal(1)
	mock.ExpectSAdd("GUILD_ROLES:101", "5").SetVal(1)
	mock.ExpectSet("ROLE:6", mustEncode(t, &ev.Roles[1]), 0).SetVal("OK")
	mock.ExpectSAdd("ROLES", "6").SetVal(1)
	mock.ExpectSAdd("GUILD_ROLES:101", "6").SetVal(1)

	mock.ExpectSet("USER:303", mustEncode(t, &user), 0).SetVal("OK")
	mock.ExpectSAdd("USERS", "303").SetVal(1)
	mock.ExpectSAdd("USER_GUILDS:303", "101").SetVal(1)
	mock.ExpectSet("MEMBER:101:303", mustEncode(t, &ev.Members[0].Member), 0).SetVal("OK")
	mock.ExpectSAdd("GUILD_MEMBERS:101", "303").SetVal(1)

	require.NoError(t, c.Store(context.Background(), ev))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreDisabledKindWritesNothing(t *testing.T) {
	cfg := config.Default()
	cfg.Entities.Channels.Disabled = true
	c, mock := newTestCache(t, cfg)

	ev := &model.ChannelCreate{Channel: model.Channel{ID: 9, GuildID: 101, Name: "general"}}
	require.NoError(t, c.Store(context.Background(), ev))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreNestedUserSurvivesDisabledMember(t *testing.T) {
	cfg := config.Default()
	cfg.Entities.Members.Disabled = true
	c, mock := newTestCache(t, cfg)

	user := model.User{ID: 303, Name: "someone"}
	ev := &model.MemberAdd{
		Member: model.Member{GuildID: 101, UserID: 303},
		User:   &user,
	}

	// the user record and the membership refcount are written even though
	// member records themselves are off
	mock.ExpectSet("USER:303", mustEncode(t, &user), 0).SetVal("OK")
	mock.ExpectSAdd("USERS", "303").SetVal(1)
	mock.ExpectSAdd("USER_GUILDS:303", "101").SetVal(1)

	require.NoError(t, c.Store(context.Background(), ev))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreMessageWithTTLWritesMeta(t *testing.T) {
	cfg := config.Default()
	cfg.Entities.Messages.TTL = time.Minute
	c, mock := newTestCache(t, cfg)

	msg := model.Message{ID: 77, ChannelID: 9, GuildID: 101, AuthorID: 303, Timestamp: 1700, Content: "hi"}
	ev := &model.MessageCreate{Message: msg}

	metaBuf := encodeMessageMeta(t, 9)

	mock.ExpectSet("MESSAGE:77", mustEncode(t, &msg), time.Minute).SetVal("OK")
	mock.ExpectSAdd("MESSAGES", "77").SetVal(1)
	mock.ExpectZAdd("CHANNEL_MESSAGES_META:9", goredisZ(1700, "77")).SetVal(1)
	mock.ExpectSet("MESSAGE_META:77", metaBuf, 0).SetVal("OK")

	require.NoError(t, c.Store(context.Background(), ev))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreChannelPinsUpdatePatchesInPlace(t *testing.T) {
	c, mock := newTestCache(t, nil)

	original := mustEncode(t, &model.Channel{ID: 9, GuildID: 101, Name: "general"})

	patched, err := model.DecodeChannel(append([]byte(nil), original...))
	require.NoError(t, err)
	require.NoError(t, patched.SetLastPinTimestamp(1700))

	mock.ExpectGet("CHANNEL:9").SetVal(string(original))
	mock.ExpectSet("CHANNEL:9", patched.Bytes(), 0).SetVal("OK")

	require.NoError(t, c.Store(context.Background(), &model.ChannelPinsUpdate{ChannelID: 9, LastPinTimestamp: 1700}))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreChannelPinsUpdateSkipsAbsentChannel(t *testing.T) {
	c, mock := newTestCache(t, nil)

	mock.ExpectGet("CHANNEL:9").RedisNil()

	require.NoError(t, c.Store(context.Background(), &model.ChannelPinsUpdate{ChannelID: 9, LastPinTimestamp: 1700}))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreMessageUpdateReencodesContent(t *testing.T) {
	c, mock := newTestCache(t, nil)

	original := model.Message{ID: 77, ChannelID: 9, AuthorID: 303, Timestamp: 1700, Content: "hi"}
	next := original
	next.Content = "hello there"
	next.EditedTimestamp = 1800

	mock.ExpectGet("MESSAGE:77").SetVal(string(mustEncode(t, &original)))
	mock.ExpectSet("MESSAGE:77", mustEncode(t, &next), 0).SetVal("OK")

	require.NoError(t, c.Store(context.Background(), &model.MessageUpdate{
		ID: 77, ChannelID: 9, Content: "hello there", EditedTimestamp: 1800,
	}))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreMemberUpdateKeepsJoinedAt(t *testing.T) {
	c, mock := newTestCache(t, nil)

	existing := model.Member{GuildID: 101, UserID: 303, JoinedAt: 1600, Nick: "old", RoleIDs: []uint64{5}}
	next := existing
	next.Nick = "new"
	next.RoleIDs = []uint64{5, 6}

	// the immediate read happens before the staged batch is sent
	mock.ExpectGet("MEMBER:101:303").SetVal(string(mustEncode(t, &existing)))
	mock.ExpectSAdd("USER_GUILDS:303", "101").SetVal(0)
	mock.ExpectSet("MEMBER:101:303", mustEncode(t, &next), 0).SetVal("OK")
	mock.ExpectSAdd("GUILD_MEMBERS:101", "303").SetVal(0)

	require.NoError(t, c.Store(context.Background(), &model.MemberUpdate{
		GuildID: 101, UserID: 303, Nick: "new", RoleIDs: []uint64{5, 6},
	}))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreVoiceStateDisconnectRemoves(t *testing.T) {
	c, mock := newTestCache(t, nil)

	mock.ExpectDel("VOICE_STATE:101:303").SetVal(1)
	mock.ExpectSRem("GUILD_VOICE_STATES:101", "303").SetVal(1)

	require.NoError(t, c.Store(context.Background(), &model.VoiceStateUpdate{
		VoiceState: model.VoiceState{GuildID: 101, UserID: 303},
	}))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreReadyPurgesGuildsBeforeMarkingUnavailable(t *testing.T) {
	c, mock := newTestCache(t, nil)

	me := model.CurrentUser{ID: 1, Name: "me"}

	// whatever the cache held for these guilds is stale; the full cascade
	// runs before the ids enter UNAVAILABLE_GUILDS
	guilds := []string{"101", "102"}
	for _, g := range guilds {
		expectChildSetReads(mock, g, map[string][]string{
			"GUILD_MEMBERS:" + g: {"303"},
		})
	}
	for _, g := range guilds {
		mock.ExpectSRem("USER_GUILDS:303", g).SetVal(1)
		mock.ExpectSCard("USER_GUILDS:303").SetVal(1)
	}
	for _, g := range guilds {
		for _, key := range guildIndexKeys(g) {
			if key == "GUILD_MEMBERS:"+g {
				mock.ExpectDel("MEMBER:" + g + ":303").SetVal(1)
			}
			mock.ExpectDel(key).SetVal(0)
		}
		mock.ExpectDel("GUILD:" + g).SetVal(0)
	}
	mock.ExpectSRem("GUILDS", "101", "102").SetVal(0)

	mock.ExpectSAdd("UNAVAILABLE_GUILDS", "101", "102").SetVal(2)
	mock.ExpectSet("CURRENT_USER", mustEncode(t, &me), 0).SetVal("OK")

	require.NoError(t, c.Store(context.Background(), &model.Ready{
		CurrentUser: me,
		GuildIDs:    []uint64{101, 102},
	}))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreRoleDelete(t *testing.T) {
	c, mock := newTestCache(t, nil)

	mock.ExpectDel("ROLE:5").SetVal(1)
	mock.ExpectSRem("ROLES", "5").SetVal(1)
	mock.ExpectSRem("GUILD_ROLES:101", "5").SetVal(1)

	require.NoError(t, c.Store(context.Background(), &model.RoleDelete{GuildID: 101, RoleID: 5}))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreReactionAddBumpsTally(t *testing.T) {
	c, mock := newTestCache(t, nil)

	original := model.Message{
		ID: 77, ChannelID: 9, AuthorID: 303, Timestamp: 1700, Content: "hi",
		Reactions: []model.Reaction{{Emoji: "👀", Count: 1}},
	}
	next := original
	next.Reactions = []model.Reaction{{Emoji: "👀", Count: 2}}

	mock.ExpectGet("MESSAGE:77").SetVal(string(mustEncode(t, &original)))
	mock.ExpectSet("MESSAGE:77", mustEncode(t, &next), 0).SetVal("OK")
	mock.ExpectSAdd("MESSAGES", "77").SetVal(0)

	require.NoError(t, c.Store(context.Background(), &model.ReactionAdd{
		ChannelID: 9, MessageID: 77, UserID: 303, Emoji: "👀",
	}))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreReactionRemoveDropsEmptyTally(t *testing.T) {
	c, mock := newTestCache(t, nil)

	original := model.Message{
		ID: 77, ChannelID: 9, AuthorID: 303, Timestamp: 1700, Content: "hi",
		Reactions: []model.Reaction{{Emoji: "👀", Count: 1}},
	}
	next := original
	next.Reactions = nil

	mock.ExpectGet("MESSAGE:77").SetVal(string(mustEncode(t, &original)))
	mock.ExpectSet("MESSAGE:77", mustEncode(t, &next), 0).SetVal("OK")
	mock.ExpectSAdd("MESSAGES", "77").SetVal(0)

	require.NoError(t, c.Store(context.Background(), &model.ReactionRemove{
		ChannelID: 9, MessageID: 77, UserID: 303, Emoji: "👀",
	}))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreReactionRemoveAllClearsTallies(t *testing.T) {
	c, mock := newTestCache(t, nil)

	original := model.Message{
		ID: 77, ChannelID: 9, AuthorID: 303, Timestamp: 1700, Content: "hi",
		Reactions: []model.Reaction{{Emoji: "👀", Count: 3}, {Emoji: "🎉", Count: 1}},
	}
	next := original
	next.Reactions = nil

	mock.ExpectGet("MESSAGE:77").SetVal(string(mustEncode(t, &original)))
	mock.ExpectSet("MESSAGE:77", mustEncode(t, &next), 0).SetVal("OK")
	mock.ExpectSAdd("MESSAGES", "77").SetVal(0)

	require.NoError(t, c.Store(context.Background(), &model.ReactionRemoveAll{
		ChannelID: 9, MessageID: 77,
	}))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreReactionAddStoresMemberEvenWithoutMessage(t *testing.T) {
	c, mock := newTestCache(t, nil)

	user := model.User{ID: 303, Name: "someone"}
	member := model.Member{GuildID: 101, UserID: 303}

	// the immediate message read happens before the staged batch is sent
	mock.ExpectGet("MESSAGE:77").RedisNil()
	mock.ExpectSet("USER:303", mustEncode(t, &user), 0).SetVal("OK")
	mock.ExpectSAdd("USERS", "303").SetVal(0)
	mock.ExpectSAdd("USER_GUILDS:303", "101").SetVal(0)
	mock.ExpectSet("MEMBER:101:303", mustEncode(t, &member), 0).SetVal("OK")
	mock.ExpectSAdd("GUILD_MEMBERS:101", "303").SetVal(0)

	require.NoError(t, c.Store(context.Background(), &model.ReactionAdd{
		GuildID: 101, ChannelID: 9, MessageID: 77, UserID: 303, Emoji: "👀",
		Member: &model.MemberWithUser{Member: member, User: &user},
	}))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreBanAddStoresUser(t *testing.T) {
	c, mock := newTestCache(t, nil)

	user := model.User{ID: 303, Name: "someone"}

	mock.ExpectSet("USER:303", mustEncode(t, &user), 0).SetVal("OK")
	mock.ExpectSAdd("USERS", "303").SetVal(0)

	require.NoError(t, c.Store(context.Background(), &model.BanAdd{GuildID: 101, User: user}))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreThreadListSyncStoresThreads(t *testing.T) {
	c, mock := newTestCache(t, nil)

	threads := []model.Channel{
		{ID: 21, GuildID: 101, Name: "thread-a"},
		{ID: 22, GuildID: 101, Name: "thread-b"},
	}

	for i := range threads {
		th := &threads[i]
		mock.ExpectSet(fmt.Sprintf("CHANNEL:%d", th.ID), mustEncode(t, th), 0).SetVal("OK")
		mock.ExpectSAdd("CHANNELS", fmt.Sprint(th.ID)).SetVal(1)
		mock.ExpectSAdd("GUILD_CHANNELS:101", fmt.Sprint(th.ID)).SetVal(1)
	}

	require.NoError(t, c.Store(context.Background(), &model.ThreadListSync{GuildID: 101, Threads: threads}))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreInteractionMinesResolvedPayloads(t *testing.T) {
	c, mock := newTestCache(t, nil)

	ch := model.Channel{ID: 9, GuildID: 101, Name: "general"}
	user := model.User{ID: 303, Name: "someone"}
	msg := model.Message{ID: 77, ChannelID: 9, GuildID: 101, AuthorID: 303, Timestamp: 1700, Content: "hi"}

	mock.ExpectSet("CHANNEL:9", mustEncode(t, &ch), 0).SetVal("OK")
	mock.ExpectSAdd("CHANNELS", "9").SetVal(1)
	mock.ExpectSAdd("GUILD_CHANNELS:101", "9").SetVal(1)
	mock.ExpectSet("USER:303", mustEncode(t, &user), 0).SetVal("OK")
	mock.ExpectSAdd("USERS", "303").SetVal(1)
	mock.ExpectSet("MESSAGE:77", mustEncode(t, &msg), 0).SetVal("OK")
	mock.ExpectSAdd("MESSAGES", "77").SetVal(1)
	mock.ExpectZAdd("CHANNEL_MESSAGES_META:9", goredisZ(1700, "77")).SetVal(1)

	require.NoError(t, c.Store(context.Background(), &model.InteractionCreate{
		GuildID: 101,
		Channel: &ch,
		Users:   []model.User{user},
		Message: &msg,
	}))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreScheduledEventUserAdd(t *testing.T) {
	c, mock := newTestCache(t, nil)

	original := mustEncode(t, &model.ScheduledEvent{ID: 4, GuildID: 101, Name: "launch", UserCount: 2})

	patched, err := model.DecodeScheduledEvent(append([]byte(nil), original...))
	require.NoError(t, err)
	require.NoError(t, patched.AddUser())

	mock.ExpectGet("SCHEDULED_EVENT:4").SetVal(string(original))
	mock.ExpectSet("SCHEDULED_EVENT:4", patched.Bytes(), 0).SetVal("OK")

	require.NoError(t, c.Store(context.Background(), &model.ScheduledEventUserAdd{GuildID: 101, EventID: 4, UserID: 303}))
	require.NoError(t, mock.ExpectationsWereMet())
}
