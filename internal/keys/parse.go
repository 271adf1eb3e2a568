package keys

import (
	"strconv"
	"strings"

	"github.com/gatecache/gatecache/model"
)

// Parsed is the outcome of splitting an expired key back into its parts.
// ID is the entity id; for member, presence, and voice state keys it is the
// user id and GuildID carries the guild.
type Parsed struct {
	Kind    model.Kind
	ID      uint64
	GuildID uint64
}

// Parse recovers the entity behind a primary record key. Index sets, meta
// keys, and unrecognized prefixes return ok=false; expirations of those are
// not the listener's business.
func Parse(key string) (Parsed, bool) {
	prefix, rest, found := strings.Cut(key, ":")
	if !found {
		if key == CurrentUser {
			return Parsed{Kind: model.KindCurrentUser}, true
		}
		return Parsed{}, false
	}

	switch prefix {
	case "GUILD":
		return single(model.KindGuild, rest)
	case "CHANNEL":
		return single(model.KindChannel, rest)
	case "ROLE":
		return single(model.KindRole, rest)
	case "USER":
		return single(model.KindUser, rest)
	case "MESSAGE":
		return single(model.KindMessage, rest)
	case "STICKER":
		return single(model.KindSticker, rest)
	case "EMOJI":
		return single(model.KindEmoji, rest)
	case "STAGE_INSTANCE":
		return single(model.KindStageInstance, rest)
	case "SCHEDULED_EVENT":
		return single(model.KindScheduledEvent, rest)
	case "MEMBER":
		return composite(model.KindMember, rest)
	case "PRESENCE":
		return composite(model.KindPresence, rest)
	case "VOICE_STATE":
		return composite(model.KindVoiceState, rest)
	case "INTEGRATION":
		return composite(model.KindIntegration, rest)
	default:
		return Parsed{}, false
	}
}

func single(kind model.Kind, rest string) (Parsed, bool) {
	id, ok := parseID(rest)
	if !ok {
		return Parsed{}, false
	}
	return Parsed{Kind: kind, ID: id}, true
}

func composite(kind model.Kind, rest string) (Parsed, bool) {
	guildPart, idPart, found := strings.Cut(rest, ":")
	if !found {
		return Parsed{}, false
	}
	guild, ok := parseID(guildPart)
	if !ok {
		return Parsed{}, false
	}
	id, ok := parseID(idPart)
	if !ok {
		return Parsed{}, false
	}
	return Parsed{Kind: kind, ID: id, GuildID: guild}, true
}

func parseID(s string) (uint64, bool) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}
