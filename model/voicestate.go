package model

import "github.com/gatecache/gatecache/internal/archive"

type VoiceState struct {
	GuildID   uint64
	ChannelID uint64 // 0 = disconnected
	UserID    uint64
	Deaf      bool
	Mute      bool
	SelfDeaf  bool
	SelfMute  bool
	SessionID string
}

var voiceStateSchema = archive.NewSchema("voice_state",
	archive.Field{Name: "guild_id", Type: archive.U64},
	archive.Field{Name: "channel_id", Type: archive.U64},
	archive.Field{Name: "user_id", Type: archive.U64},
	archive.Field{Name: "deaf", Type: archive.Bool},
	archive.Field{Name: "mute", Type: archive.Bool},
	archive.Field{Name: "self_deaf", Type: archive.Bool},
	archive.Field{Name: "self_mute", Type: archive.Bool},
	archive.Field{Name: "session_id", Type: archive.Str},
)

const (
	voiceStateFieldGuildID = iota
	voiceStateFieldChannelID
	voiceStateFieldUserID
	voiceStateFieldDeaf
	voiceStateFieldMute
	voiceStateFieldSelfDeaf
	voiceStateFieldSelfMute
	voiceStateFieldSessionID
)

func (v *VoiceState) Schema() *archive.Schema { return voiceStateSchema }

func (v *VoiceState) MarshalArchive(w *archive.Writer) {
	w.U64(v.GuildID)
	w.U64(v.ChannelID)
	w.U64(v.UserID)
	w.Bool(v.Deaf)
	w.Bool(v.Mute)
	w.Bool(v.SelfDeaf)
	w.Bool(v.SelfMute)
	w.Str(v.SessionID)
}

type ArchivedVoiceState struct {
	v *archive.View
}

func DecodeVoiceState(buf []byte) (*ArchivedVoiceState, error) {
	v, err := voiceStateSchema.Decode(buf)
	if err != nil {
		return nil, err
	}
	return &ArchivedVoiceState{v: v}, nil
}

func (s *ArchivedVoiceState) GuildID() uint64    { return s.v.U64(voiceStateFieldGuildID) }
func (s *ArchivedVoiceState) ChannelID() uint64  { return s.v.U64(voiceStateFieldChannelID) }
func (s *ArchivedVoiceState) UserID() uint64     { return s.v.U64(voiceStateFieldUserID) }
func (s *ArchivedVoiceState) Deaf() bool         { return s.v.Bool(voiceStateFieldDeaf) }
func (s *ArchivedVoiceState) Mute() bool         { return s.v.Bool(voiceStateFieldMute) }
func (s *ArchivedVoiceState) SelfDeaf() bool     { return s.v.Bool(voiceStateFieldSelfDeaf) }
func (s *ArchivedVoiceState) SelfMute() bool     { return s.v.Bool(voiceStateFieldSelfMute) }
func (s *ArchivedVoiceState) SessionID() string  { return s.v.Str(voiceStateFieldSessionID) }
func (s *ArchivedVoiceState) Bytes() []byte      { return s.v.Bytes() }

func (s *ArchivedVoiceState) Unarchive() *VoiceState {
	return &VoiceState{
		GuildID:   s.GuildID(),
		ChannelID: s.ChannelID(),
		UserID:    s.UserID(),
		Deaf:      s.Deaf(),
		Mute:      s.Mute(),
		SelfDeaf:  s.SelfDeaf(),
		SelfMute:  s.SelfMute(),
		SessionID: s.SessionID(),
	}
}
