package model

import "github.com/gatecache/gatecache/internal/archive"

// Presence status values.
const (
	StatusOffline uint8 = iota
	StatusOnline
	StatusIdle
	StatusDoNotDisturb
)

type Presence struct {
	GuildID  uint64
	UserID   uint64
	Status   uint8
	Activity string
}

var presenceSchema = archive.NewSchema("presence",
	archive.Field{Name: "guild_id", Type: archive.U64},
	archive.Field{Name: "user_id", Type: archive.U64},
	archive.Field{Name: "status", Type: archive.U8},
	archive.Field{Name: "activity", Type: archive.Str},
)

const (
	presenceFieldGuildID = iota
	presenceFieldUserID
	presenceFieldStatus
	presenceFieldActivity
)

func (p *Presence) Schema() *archive.Schema { return presenceSchema }

func (p *Presence) MarshalArchive(w *archive.Writer) {
	w.U64(p.GuildID)
	w.U64(p.UserID)
	w.U8(p.Status)
	w.Str(p.Activity)
}

type ArchivedPresence struct {
	v *archive.View
}

func DecodePresence(buf []byte) (*ArchivedPresence, error) {
	v, err := presenceSchema.Decode(buf)
	if err != nil {
		return nil, err
	}
	return &ArchivedPresence{v: v}, nil
}

func (p *ArchivedPresence) GuildID() uint64  { return p.v.U64(presenceFieldGuildID) }
func (p *ArchivedPresence) UserID() uint64   { return p.v.U64(presenceFieldUserID) }
func (p *ArchivedPresence) Status() uint8    { return p.v.U8(presenceFieldStatus) }
func (p *ArchivedPresence) Activity() string { return p.v.Str(presenceFieldActivity) }
func (p *ArchivedPresence) Bytes() []byte    { return p.v.Bytes() }

func (p *ArchivedPresence) Unarchive() *Presence {
	return &Presence{
		GuildID:  p.GuildID(),
		UserID:   p.UserID(),
		Status:   p.Status(),
		Activity: p.Activity(),
	}
}
