package model

import "github.com/gatecache/gatecache/internal/archive"

// Guild is the cached projection of a guild. Child entities are never stored
// inside the guild record; ownership lives in the index sets.
type Guild struct {
	ID          uint64
	OwnerID     uint64
	Name        string
	Description string
	MemberCount uint32
	Large       bool
	Unavailable bool
}

var guildSchema = archive.NewSchema("guild",
	archive.Field{Name: "id", Type: archive.U64},
	archive.Field{Name: "owner_id", Type: archive.U64},
	archive.Field{Name: "member_count", Type: archive.U32},
	archive.Field{Name: "large", Type: archive.Bool},
	archive.Field{Name: "unavailable", Type: archive.Bool},
	archive.Field{Name: "name", Type: archive.Str},
	archive.Field{Name: "description", Type: archive.Str},
)

const (
	guildFieldID = iota
	guildFieldOwnerID
	guildFieldMemberCount
	guildFieldLarge
	guildFieldUnavailable
	guildFieldName
	guildFieldDescription
)

func (g *Guild) Schema() *archive.Schema { return guildSchema }

func (g *Guild) MarshalArchive(w *archive.Writer) {
	w.U64(g.ID)
	w.U64(g.OwnerID)
	w.U32(g.MemberCount)
	w.Bool(g.Large)
	w.Bool(g.Unavailable)
	w.Str(g.Name)
	w.Str(g.Description)
}

// ArchivedGuild is a zero-copy view over an encoded guild record.
type ArchivedGuild struct {
	v *archive.View
}

func DecodeGuild(buf []byte) (*ArchivedGuild, error) {
	v, err := guildSchema.Decode(buf)
	if err != nil {
		return nil, err
	}
	return &ArchivedGuild{v: v}, nil
}

func (g *ArchivedGuild) ID() uint64          { return g.v.U64(guildFieldID) }
func (g *ArchivedGuild) OwnerID() uint64     { return g.v.U64(guildFieldOwnerID) }
func (g *ArchivedGuild) MemberCount() uint32 { return g.v.U32(guildFieldMemberCount) }
func (g *ArchivedGuild) Large() bool         { return g.v.Bool(guildFieldLarge) }
func (g *ArchivedGuild) Unavailable() bool   { return g.v.Bool(guildFieldUnavailable) }
func (g *ArchivedGuild) Name() string        { return g.v.Str(guildFieldName) }
func (g *ArchivedGuild) Description() string { return g.v.Str(guildFieldDescription) }
func (g *ArchivedGuild) Bytes() []byte       { return g.v.Bytes() }

func (g *ArchivedGuild) Unarchive() *Guild {
	return &Guild{
		ID:          g.ID(),
		OwnerID:     g.OwnerID(),
		Name:        g.Name(),
		Description: g.Description(),
		MemberCount: g.MemberCount(),
		Large:       g.Large(),
		Unavailable: g.Unavailable(),
	}
}

// SetMemberCount adjusts the cached member count in place.
func (g *ArchivedGuild) SetMemberCount(n uint32) error {
	return g.v.Mutate(func(s *archive.Seal) error {
		s.SetU32(guildFieldMemberCount, n)
		return nil
	})
}
