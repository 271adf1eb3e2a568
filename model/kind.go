package model

// Kind tags one of the cached entity types. The set is closed: every piece
// of per-kind behavior (keys, config policy, expiry repair) dispatches on it.
type Kind uint8

const (
	KindGuild Kind = iota + 1
	KindChannel
	KindRole
	KindMember
	KindUser
	KindPresence
	KindVoiceState
	KindMessage
	KindSticker
	KindEmoji
	KindIntegration
	KindStageInstance
	KindScheduledEvent
	KindCurrentUser
)

// Kinds lists every entity kind once, in declaration order.
var Kinds = []Kind{
	KindGuild, KindChannel, KindRole, KindMember, KindUser,
	KindPresence, KindVoiceState, KindMessage, KindSticker, KindEmoji,
	KindIntegration, KindStageInstance, KindScheduledEvent, KindCurrentUser,
}

func (k Kind) String() string {
	switch k {
	case KindGuild:
		return "guild"
	case KindChannel:
		return "channel"
	case KindRole:
		return "role"
	case KindMember:
		return "member"
	case KindUser:
		return "user"
	case KindPresence:
		return "presence"
	case KindVoiceState:
		return "voice_state"
	case KindMessage:
		return "message"
	case KindSticker:
		return "sticker"
	case KindEmoji:
		return "emoji"
	case KindIntegration:
		return "integration"
	case KindStageInstance:
		return "stage_instance"
	case KindScheduledEvent:
		return "scheduled_event"
	case KindCurrentUser:
		return "current_user"
	default:
		return "unknown"
	}
}
