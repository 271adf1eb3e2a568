package model

import "github.com/gatecache/gatecache/internal/archive"

// Member is keyed by (guild, user); the referenced User record is stored
// separately and shared across guilds.
type Member struct {
	GuildID  uint64
	UserID   uint64
	JoinedAt int64 // unix micros
	Deaf     bool
	Mute     bool
	Pending  bool
	Nick     string
	RoleIDs  []uint64
}

var memberSchema = archive.NewSchema("member",
	archive.Field{Name: "guild_id", Type: archive.U64},
	archive.Field{Name: "user_id", Type: archive.U64},
	archive.Field{Name: "joined_at", Type: archive.I64},
	archive.Field{Name: "deaf", Type: archive.Bool},
	archive.Field{Name: "mute", Type: archive.Bool},
	archive.Field{Name: "pending", Type: archive.Bool},
	archive.Field{Name: "nick", Type: archive.Str},
	archive.Field{Name: "role_ids", Type: archive.U64Slice},
)

const (
	memberFieldGuildID = iota
	memberFieldUserID
	memberFieldJoinedAt
	memberFieldDeaf
	memberFieldMute
	memberFieldPending
	memberFieldNick
	memberFieldRoleIDs
)

func (m *Member) Schema() *archive.Schema { return memberSchema }

func (m *Member) MarshalArchive(w *archive.Writer) {
	w.U64(m.GuildID)
	w.U64(m.UserID)
	w.I64(m.JoinedAt)
	w.Bool(m.Deaf)
	w.Bool(m.Mute)
	w.Bool(m.Pending)
	w.Str(m.Nick)
	w.U64s(m.RoleIDs)
}

type ArchivedMember struct {
	v *archive.View
}

func DecodeMember(buf []byte) (*ArchivedMember, error) {
	v, err := memberSchema.Decode(buf)
	if err != nil {
		return nil, err
	}
	return &ArchivedMember{v: v}, nil
}

func (m *ArchivedMember) GuildID() uint64   { return m.v.U64(memberFieldGuildID) }
func (m *ArchivedMember) UserID() uint64    { return m.v.U64(memberFieldUserID) }
func (m *ArchivedMember) JoinedAt() int64   { return m.v.I64(memberFieldJoinedAt) }
func (m *ArchivedMember) Deaf() bool        { return m.v.Bool(memberFieldDeaf) }
func (m *ArchivedMember) Mute() bool        { return m.v.Bool(memberFieldMute) }
func (m *ArchivedMember) Pending() bool     { return m.v.Bool(memberFieldPending) }
func (m *ArchivedMember) Nick() string      { return m.v.Str(memberFieldNick) }
func (m *ArchivedMember) RoleIDs() []uint64 { return m.v.U64s(memberFieldRoleIDs) }
func (m *ArchivedMember) Bytes() []byte     { return m.v.Bytes() }

func (m *ArchivedMember) Unarchive() *Member {
	return &Member{
		GuildID:  m.GuildID(),
		UserID:   m.UserID(),
		JoinedAt: m.JoinedAt(),
		Deaf:     m.Deaf(),
		Mute:     m.Mute(),
		Pending:  m.Pending(),
		Nick:     m.Nick(),
		RoleIDs:  m.RoleIDs(),
	}
}
