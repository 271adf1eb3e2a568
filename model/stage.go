package model

import "github.com/gatecache/gatecache/internal/archive"

type StageInstance struct {
	ID        uint64
	GuildID   uint64
	ChannelID uint64
	Topic     string
}

var stageInstanceSchema = archive.NewSchema("stage_instance",
	archive.Field{Name: "id", Type: archive.U64},
	archive.Field{Name: "guild_id", Type: archive.U64},
	archive.Field{Name: "channel_id", Type: archive.U64},
	archive.Field{Name: "topic", Type: archive.Str},
)

const (
	stageInstanceFieldID = iota
	stageInstanceFieldGuildID
	stageInstanceFieldChannelID
	stageInstanceFieldTopic
)

func (s *StageInstance) Schema() *archive.Schema { return stageInstanceSchema }

func (s *StageInstance) MarshalArchive(w *archive.Writer) {
	w.U64(s.ID)
	w.U64(s.GuildID)
	w.U64(s.ChannelID)
	w.Str(s.Topic)
}

type ArchivedStageInstance struct {
	v *archive.View
}

func DecodeStageInstance(buf []byte) (*ArchivedStageInstance, error) {
	v, err := stageInstanceSchema.Decode(buf)
	if err != nil {
		return nil, err
	}
	return &ArchivedStageInstance{v: v}, nil
}

func (s *ArchivedStageInstance) ID() uint64        { return s.v.U64(stageInstanceFieldID) }
func (s *ArchivedStageInstance) GuildID() uint64   { return s.v.U64(stageInstanceFieldGuildID) }
func (s *ArchivedStageInstance) ChannelID() uint64 { return s.v.U64(stageInstanceFieldChannelID) }
func (s *ArchivedStageInstance) Topic() string     { return s.v.Str(stageInstanceFieldTopic) }
func (s *ArchivedStageInstance) Bytes() []byte     { return s.v.Bytes() }

func (s *ArchivedStageInstance) Unarchive() *StageInstance {
	return &StageInstance{
		ID:        s.ID(),
		GuildID:   s.GuildID(),
		ChannelID: s.ChannelID(),
		Topic:     s.Topic(),
	}
}
