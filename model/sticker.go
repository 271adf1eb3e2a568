package model

import "github.com/gatecache/gatecache/internal/archive"

type Sticker struct {
	ID          uint64
	GuildID     uint64
	FormatType  uint8
	Available   bool
	Name        string
	Description string
}

var stickerSchema = archive.NewSchema("sticker",
	archive.Field{Name: "id", Type: archive.U64},
	archive.Field{Name: "guild_id", Type: archive.U64},
	archive.Field{Name: "format_type", Type: archive.U8},
	archive.Field{Name: "available", Type: archive.Bool},
	archive.Field{Name: "name", Type: archive.Str},
	archive.Field{Name: "description", Type: archive.Str},
)

const (
	stickerFieldID = iota
	stickerFieldGuildID
	stickerFieldFormatType
	stickerFieldAvailable
	stickerFieldName
	stickerFieldDescription
)

func (s *Sticker) Schema() *archive.Schema { return stickerSchema }

func (s *Sticker) MarshalArchive(w *archive.Writer) {
	w.U64(s.ID)
	w.U64(s.GuildID)
	w.U8(s.FormatType)
	w.Bool(s.Available)
	w.Str(s.Name)
	w.Str(s.Description)
}

type ArchivedSticker struct {
	v *archive.View
}

func DecodeSticker(buf []byte) (*ArchivedSticker, error) {
	v, err := stickerSchema.Decode(buf)
	if err != nil {
		return nil, err
	}
	return &ArchivedSticker{v: v}, nil
}

func (s *ArchivedSticker) ID() uint64          { return s.v.U64(stickerFieldID) }
func (s *ArchivedSticker) GuildID() uint64     { return s.v.U64(stickerFieldGuildID) }
func (s *ArchivedSticker) FormatType() uint8   { return s.v.U8(stickerFieldFormatType) }
func (s *ArchivedSticker) Available() bool     { return s.v.Bool(stickerFieldAvailable) }
func (s *ArchivedSticker) Name() string        { return s.v.Str(stickerFieldName) }
func (s *ArchivedSticker) Description() string { return s.v.Str(stickerFieldDescription) }
func (s *ArchivedSticker) Bytes() []byte       { return s.v.Bytes() }

func (s *ArchivedSticker) Unarchive() *Sticker {
	return &Sticker{
		ID:          s.ID(),
		GuildID:     s.GuildID(),
		FormatType:  s.FormatType(),
		Available:   s.Available(),
		Name:        s.Name(),
		Description: s.Description(),
	}
}
