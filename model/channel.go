package model

import "github.com/gatecache/gatecache/internal/archive"

// Channel covers guild channels and threads; threads carry their parent
// channel id in ParentID.
type Channel struct {
	ID               uint64
	GuildID          uint64
	ParentID         uint64
	Type             uint8
	NSFW             bool
	LastPinTimestamp int64 // unix micros, 0 = no pins
	Name             string
	Topic            string
}

var channelSchema = archive.NewSchema("channel",
	archive.Field{Name: "id", Type: archive.U64},
	archive.Field{Name: "guild_id", Type: archive.U64},
	archive.Field{Name: "parent_id", Type: archive.U64},
	archive.Field{Name: "type", Type: archive.U8},
	archive.Field{Name: "nsfw", Type: archive.Bool},
	archive.Field{Name: "last_pin_timestamp", Type: archive.I64},
	archive.Field{Name: "name", Type: archive.Str},
	archive.Field{Name: "topic", Type: archive.Str},
)

const (
	channelFieldID = iota
	channelFieldGuildID
	channelFieldParentID
	channelFieldType
	channelFieldNSFW
	channelFieldLastPin
	channelFieldName
	channelFieldTopic
)

func (c *Channel) Schema() *archive.Schema { return channelSchema }

func (c *Channel) MarshalArchive(w *archive.Writer) {
	w.U64(c.ID)
	w.U64(c.GuildID)
	w.U64(c.ParentID)
	w.U8(c.Type)
	w.Bool(c.NSFW)
	w.I64(c.LastPinTimestamp)
	w.Str(c.Name)
	w.Str(c.Topic)
}

type ArchivedChannel struct {
	v *archive.View
}

func DecodeChannel(buf []byte) (*ArchivedChannel, error) {
	v, err := channelSchema.Decode(buf)
	if err != nil {
		return nil, err
	}
	return &ArchivedChannel{v: v}, nil
}

func (c *ArchivedChannel) ID() uint64              { return c.v.U64(channelFieldID) }
func (c *ArchivedChannel) GuildID() uint64         { return c.v.U64(channelFieldGuildID) }
func (c *ArchivedChannel) ParentID() uint64        { return c.v.U64(channelFieldParentID) }
func (c *ArchivedChannel) Type() uint8             { return c.v.U8(channelFieldType) }
func (c *ArchivedChannel) NSFW() bool              { return c.v.Bool(channelFieldNSFW) }
func (c *ArchivedChannel) LastPinTimestamp() int64 { return c.v.I64(channelFieldLastPin) }
func (c *ArchivedChannel) Name() string            { return c.v.Str(channelFieldName) }
func (c *ArchivedChannel) Topic() string           { return c.v.Str(channelFieldTopic) }
func (c *ArchivedChannel) Bytes() []byte           { return c.v.Bytes() }

func (c *ArchivedChannel) Unarchive() *Channel {
	return &Channel{
		ID:               c.ID(),
		GuildID:          c.GuildID(),
		ParentID:         c.ParentID(),
		Type:             c.Type(),
		NSFW:             c.NSFW(),
		LastPinTimestamp: c.LastPinTimestamp(),
		Name:             c.Name(),
		Topic:            c.Topic(),
	}
}

// SetLastPinTimestamp patches the pin timestamp without re-encoding.
func (c *ArchivedChannel) SetLastPinTimestamp(ts int64) error {
	return c.v.Mutate(func(s *archive.Seal) error {
		s.SetI64(channelFieldLastPin, ts)
		return nil
	})
}
