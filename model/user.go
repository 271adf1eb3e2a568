package model

import "github.com/gatecache/gatecache/internal/archive"

// User is shared across guilds. Its lifetime during membership cleanup is
// governed by the UserGuilds refcount index; users written through other
// paths (message authors and the like) are retained once written.
type User struct {
	ID            uint64
	Discriminator uint16
	Bot           bool
	Name          string
	AvatarHash    string
}

var userSchema = archive.NewSchema("user",
	archive.Field{Name: "id", Type: archive.U64},
	archive.Field{Name: "discriminator", Type: archive.U16},
	archive.Field{Name: "bot", Type: archive.Bool},
	archive.Field{Name: "name", Type: archive.Str},
	archive.Field{Name: "avatar_hash", Type: archive.Str},
)

const (
	userFieldID = iota
	userFieldDiscriminator
	userFieldBot
	userFieldName
	userFieldAvatarHash
)

func (u *User) Schema() *archive.Schema { return userSchema }

func (u *User) MarshalArchive(w *archive.Writer) {
	w.U64(u.ID)
	w.U16(u.Discriminator)
	w.Bool(u.Bot)
	w.Str(u.Name)
	w.Str(u.AvatarHash)
}

type ArchivedUser struct {
	v *archive.View
}

func DecodeUser(buf []byte) (*ArchivedUser, error) {
	v, err := userSchema.Decode(buf)
	if err != nil {
		return nil, err
	}
	return &ArchivedUser{v: v}, nil
}

func (u *ArchivedUser) ID() uint64            { return u.v.U64(userFieldID) }
func (u *ArchivedUser) Discriminator() uint16 { return u.v.U16(userFieldDiscriminator) }
func (u *ArchivedUser) Bot() bool             { return u.v.Bool(userFieldBot) }
func (u *ArchivedUser) Name() string          { return u.v.Str(userFieldName) }
func (u *ArchivedUser) AvatarHash() string    { return u.v.Str(userFieldAvatarHash) }
func (u *ArchivedUser) Bytes() []byte         { return u.v.Bytes() }

func (u *ArchivedUser) Unarchive() *User {
	return &User{
		ID:            u.ID(),
		Discriminator: u.Discriminator(),
		Bot:           u.Bot(),
		Name:          u.Name(),
		AvatarHash:    u.AvatarHash(),
	}
}

// CurrentUser is the singleton identity of the connected gateway session.
type CurrentUser struct {
	ID            uint64
	Discriminator uint16
	Bot           bool
	MFAEnabled    bool
	Name          string
	AvatarHash    string
}

var currentUserSchema = archive.NewSchema("current_user",
	archive.Field{Name: "id", Type: archive.U64},
	archive.Field{Name: "discriminator", Type: archive.U16},
	archive.Field{Name: "bot", Type: archive.Bool},
	archive.Field{Name: "mfa_enabled", Type: archive.Bool},
	archive.Field{Name: "name", Type: archive.Str},
	archive.Field{Name: "avatar_hash", Type: archive.Str},
)

const (
	currentUserFieldID = iota
	currentUserFieldDiscriminator
	currentUserFieldBot
	currentUserFieldMFAEnabled
	currentUserFieldName
	currentUserFieldAvatarHash
)

func (u *CurrentUser) Schema() *archive.Schema { return currentUserSchema }

func (u *CurrentUser) MarshalArchive(w *archive.Writer) {
	w.U64(u.ID)
	w.U16(u.Discriminator)
	w.Bool(u.Bot)
	w.Bool(u.MFAEnabled)
	w.Str(u.Name)
	w.Str(u.AvatarHash)
}

type ArchivedCurrentUser struct {
	v *archive.View
}

func DecodeCurrentUser(buf []byte) (*ArchivedCurrentUser, error) {
	v, err := currentUserSchema.Decode(buf)
	if err != nil {
		return nil, err
	}
	return &ArchivedCurrentUser{v: v}, nil
}

func (u *ArchivedCurrentUser) ID() uint64            { return u.v.U64(currentUserFieldID) }
func (u *ArchivedCurrentUser) Discriminator() uint16 { return u.v.U16(currentUserFieldDiscriminator) }
func (u *ArchivedCurrentUser) Bot() bool             { return u.v.Bool(currentUserFieldBot) }
func (u *ArchivedCurrentUser) MFAEnabled() bool      { return u.v.Bool(currentUserFieldMFAEnabled) }
func (u *ArchivedCurrentUser) Name() string          { return u.v.Str(currentUserFieldName) }
func (u *ArchivedCurrentUser) AvatarHash() string    { return u.v.Str(currentUserFieldAvatarHash) }
func (u *ArchivedCurrentUser) Bytes() []byte         { return u.v.Bytes() }

func (u *ArchivedCurrentUser) Unarchive() *CurrentUser {
	return &CurrentUser{
		ID:            u.ID(),
		Discriminator: u.Discriminator(),
		Bot:           u.Bot(),
		MFAEnabled:    u.MFAEnabled(),
		Name:          u.Name(),
		AvatarHash:    u.AvatarHash(),
	}
}
