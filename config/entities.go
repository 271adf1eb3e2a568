package config

import (
	"time"

	"github.com/gatecache/gatecache/model"
)

// EntityCfg is one kind's storage policy.
type EntityCfg struct {
	// Disabled turns the kind off entirely: no primary record and no
	// per-kind index entries are ever written. Traversal into nested
	// payloads of other kinds still happens.
	Disabled bool `yaml:"disabled"`

	// TTL expires primary records after the given duration. Zero means
	// records never expire. Kinds with a TTL additionally write a small
	// metadata record so the expiry listener can repair guild-scoped
	// indices after the key is gone.
	TTL time.Duration `yaml:"ttl"`
}

// Wanted reports whether records of this kind are stored at all.
func (cfg EntityCfg) Wanted() bool { return !cfg.Disabled }

// Expires reports whether stored records carry a TTL.
func (cfg EntityCfg) Expires() bool { return !cfg.Disabled && cfg.TTL > 0 }

type EntitiesCfg struct {
	Guilds          EntityCfg `yaml:"guilds"`
	Channels        EntityCfg `yaml:"channels"`
	Roles           EntityCfg `yaml:"roles"`
	Members         EntityCfg `yaml:"members"`
	Users           EntityCfg `yaml:"users"`
	Presences       EntityCfg `yaml:"presences"`
	VoiceStates     EntityCfg `yaml:"voice_states"`
	Messages        EntityCfg `yaml:"messages"`
	Stickers        EntityCfg `yaml:"stickers"`
	Emojis          EntityCfg `yaml:"emojis"`
	Integrations    EntityCfg `yaml:"integrations"`
	StageInstances  EntityCfg `yaml:"stage_instances"`
	ScheduledEvents EntityCfg `yaml:"scheduled_events"`
	CurrentUser     EntityCfg `yaml:"current_user"`
}

// Kind returns the policy for one entity kind.
func (cfg *EntitiesCfg) Kind(k model.Kind) EntityCfg {
	switch k {
	case model.KindGuild:
		return cfg.Guilds
	case model.KindChannel:
		return cfg.Channels
	case model.KindRole:
		return cfg.Roles
	case model.KindMember:
		return cfg.Members
	case model.KindUser:
		return cfg.Users
	case model.KindPresence:
		return cfg.Presences
	case model.KindVoiceState:
		return cfg.VoiceStates
	case model.KindMessage:
		return cfg.Messages
	case model.KindSticker:
		return cfg.Stickers
	case model.KindEmoji:
		return cfg.Emojis
	case model.KindIntegration:
		return cfg.Integrations
	case model.KindStageInstance:
		return cfg.StageInstances
	case model.KindScheduledEvent:
		return cfg.ScheduledEvents
	case model.KindCurrentUser:
		return cfg.CurrentUser
	default:
		return EntityCfg{Disabled: true}
	}
}

// AnyExpires reports whether at least one kind carries a TTL; when false the
// expiry listener has nothing to repair and is not started.
func (cfg *EntitiesCfg) AnyExpires() bool {
	for _, k := range model.Kinds {
		if cfg.Kind(k).Expires() {
			return true
		}
	}
	return false
}
