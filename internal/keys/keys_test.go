package keys

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gatecache/gatecache/model"
)

func TestBuilders(t *testing.T) {
	require.Equal(t, "GUILD:101", Guild(101))
	require.Equal(t, "MEMBER:101:303", Member(101, 303))
	require.Equal(t, "PRESENCE:101:303", Presence(101, 303))
	require.Equal(t, "VOICE_STATE:101:303", VoiceState(101, 303))
	require.Equal(t, "INTEGRATION:101:8", Integration(101, 8))
	require.Equal(t, "GUILD_MEMBERS:101", GuildMembers(101))
	require.Equal(t, "USER_GUILDS:303", UserGuilds(303))
	require.Equal(t, "CHANNEL_META:9", ChannelMeta(9))
	require.Equal(t, "CHANNEL_MESSAGES_META:9", ChannelMessages(9))
}

func TestParsePrimaryKeys(t *testing.T) {
	cases := []struct {
		key  string
		want Parsed
	}{
		{"GUILD:101", Parsed{Kind: model.KindGuild, ID: 101}},
		{"CHANNEL:9", Parsed{Kind: model.KindChannel, ID: 9}},
		{"ROLE:5", Parsed{Kind: model.KindRole, ID: 5}},
		{"USER:303", Parsed{Kind: model.KindUser, ID: 303}},
		{"MESSAGE:77", Parsed{Kind: model.KindMessage, ID: 77}},
		{"STICKER:6", Parsed{Kind: model.KindSticker, ID: 6}},
		{"EMOJI:7", Parsed{Kind: model.KindEmoji, ID: 7}},
		{"STAGE_INSTANCE:10", Parsed{Kind: model.KindStageInstance, ID: 10}},
		{"SCHEDULED_EVENT:4", Parsed{Kind: model.KindScheduledEvent, ID: 4}},
		{"MEMBER:101:303", Parsed{Kind: model.KindMember, ID: 303, GuildID: 101}},
		{"PRESENCE:101:303", Parsed{Kind: model.KindPresence, ID: 303, GuildID: 101}},
		{"VOICE_STATE:101:303", Parsed{Kind: model.KindVoiceState, ID: 303, GuildID: 101}},
		{"INTEGRATION:101:8", Parsed{Kind: model.KindIntegration, ID: 8, GuildID: 101}},
		{"CURRENT_USER", Parsed{Kind: model.KindCurrentUser}},
	}

	for _, tc := range cases {
		t.Run(tc.key, func(t *testing.T) {
			got, ok := Parse(tc.key)
			require.True(t, ok)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestParseRejectsNonRecordKeys(t *testing.T) {
	for _, key := range []string{
		"",
		"GUILDS",
		"USERS",
		"UNAVAILABLE_GUILDS",
		"SESSIONS",
		"GUILD_MEMBERS:101",
		"USER_GUILDS:303",
		"CHANNEL_META:9",
		"CHANNEL_MESSAGES_META:9",
		"MESSAGE_META:77",
		"GUILD:",
		"GUILD:0",
		"GUILD:abc",
		"MEMBER:101",
		"MEMBER:101:0",
		"MEMBER:0:303",
		"SOMETHING:1",
	} {
		t.Run(key, func(t *testing.T) {
			_, ok := Parse(key)
			require.False(t, ok)
		})
	}
}
