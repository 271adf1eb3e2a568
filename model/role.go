package model

import "github.com/gatecache/gatecache/internal/archive"

type Role struct {
	ID          uint64
	GuildID     uint64
	Permissions uint64
	Position    int64
	Color       uint32
	Hoist       bool
	Managed     bool
	Name        string
}

var roleSchema = archive.NewSchema("role",
	archive.Field{Name: "id", Type: archive.U64},
	archive.Field{Name: "guild_id", Type: archive.U64},
	archive.Field{Name: "permissions", Type: archive.U64},
	archive.Field{Name: "position", Type: archive.I64},
	archive.Field{Name: "color", Type: archive.U32},
	archive.Field{Name: "hoist", Type: archive.Bool},
	archive.Field{Name: "managed", Type: archive.Bool},
	archive.Field{Name: "name", Type: archive.Str},
)

const (
	roleFieldID = iota
	roleFieldGuildID
	roleFieldPermissions
	roleFieldPosition
	roleFieldColor
	roleFieldHoist
	roleFieldManaged
	roleFieldName
)

func (r *Role) Schema() *archive.Schema { return roleSchema }

func (r *Role) MarshalArchive(w *archive.Writer) {
	w.U64(r.ID)
	w.U64(r.GuildID)
	w.U64(r.Permissions)
	w.I64(r.Position)
	w.U32(r.Color)
	w.Bool(r.Hoist)
	w.Bool(r.Managed)
	w.Str(r.Name)
}

type ArchivedRole struct {
	v *archive.View
}

func DecodeRole(buf []byte) (*ArchivedRole, error) {
	v, err := roleSchema.Decode(buf)
	if err != nil {
		return nil, err
	}
	return &ArchivedRole{v: v}, nil
}

func (r *ArchivedRole) ID() uint64          { return r.v.U64(roleFieldID) }
func (r *ArchivedRole) GuildID() uint64     { return r.v.U64(roleFieldGuildID) }
func (r *ArchivedRole) Permissions() uint64 { return r.v.U64(roleFieldPermissions) }
func (r *ArchivedRole) Position() int64     { return r.v.I64(roleFieldPosition) }
func (r *ArchivedRole) Color() uint32       { return r.v.U32(roleFieldColor) }
func (r *ArchivedRole) Hoist() bool         { return r.v.Bool(roleFieldHoist) }
func (r *ArchivedRole) Managed() bool       { return r.v.Bool(roleFieldManaged) }
func (r *ArchivedRole) Name() string        { return r.v.Str(roleFieldName) }
func (r *ArchivedRole) Bytes() []byte       { return r.v.Bytes() }

func (r *ArchivedRole) Unarchive() *Role {
	return &Role{
		ID:          r.ID(),
		GuildID:     r.GuildID(),
		Permissions: r.Permissions(),
		Position:    r.Position(),
		Color:       r.Color(),
		Hoist:       r.Hoist(),
		Managed:     r.Managed(),
		Name:        r.Name(),
	}
}
