package model

import "github.com/gatecache/gatecache/internal/archive"

type Emoji struct {
	ID       uint64
	GuildID  uint64
	Animated bool
	Managed  bool
	Name     string
	RoleIDs  []uint64
}

var emojiSchema = archive.NewSchema("emoji",
	archive.Field{Name: "id", Type: archive.U64},
	archive.Field{Name: "guild_id", Type: archive.U64},
	archive.Field{Name: "animated", Type: archive.Bool},
	archive.Field{Name: "managed", Type: archive.Bool},
	archive.Field{Name: "name", Type: archive.Str},
	archive.Field{Name: "role_ids", Type: archive.U64Slice},
)

const (
	emojiFieldID = iota
	emojiFieldGuildID
	emojiFieldAnimated
	emojiFieldManaged
	emojiFieldName
	emojiFieldRoleIDs
)

func (e *Emoji) Schema() *archive.Schema { return emojiSchema }

func (e *Emoji) MarshalArchive(w *archive.Writer) {
	w.U64(e.ID)
	w.U64(e.GuildID)
	w.Bool(e.Animated)
	w.Bool(e.Managed)
	w.Str(e.Name)
	w.U64s(e.RoleIDs)
}

type ArchivedEmoji struct {
	v *archive.View
}

func DecodeEmoji(buf []byte) (*ArchivedEmoji, error) {
	v, err := emojiSchema.Decode(buf)
	if err != nil {
		return nil, err
	}
	return &ArchivedEmoji{v: v}, nil
}

func (e *ArchivedEmoji) ID() uint64        { return e.v.U64(emojiFieldID) }
func (e *ArchivedEmoji) GuildID() uint64   { return e.v.U64(emojiFieldGuildID) }
func (e *ArchivedEmoji) Animated() bool    { return e.v.Bool(emojiFieldAnimated) }
func (e *ArchivedEmoji) Managed() bool     { return e.v.Bool(emojiFieldManaged) }
func (e *ArchivedEmoji) Name() string      { return e.v.Str(emojiFieldName) }
func (e *ArchivedEmoji) RoleIDs() []uint64 { return e.v.U64s(emojiFieldRoleIDs) }
func (e *ArchivedEmoji) Bytes() []byte     { return e.v.Bytes() }

func (e *ArchivedEmoji) Unarchive() *Emoji {
	return &Emoji{
		ID:       e.ID(),
		GuildID:  e.GuildID(),
		Animated: e.Animated(),
		Managed:  e.Managed(),
		Name:     e.Name(),
		RoleIDs:  e.RoleIDs(),
	}
}
