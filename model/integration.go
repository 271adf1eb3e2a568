package model

import "github.com/gatecache/gatecache/internal/archive"

// Integration is keyed by (guild, integration id).
type Integration struct {
	ID      uint64
	GuildID uint64
	Enabled bool
	Name    string
	Type    string
}

var integrationSchema = archive.NewSchema("integration",
	archive.Field{Name: "id", Type: archive.U64},
	archive.Field{Name: "guild_id", Type: archive.U64},
	archive.Field{Name: "enabled", Type: archive.Bool},
	archive.Field{Name: "name", Type: archive.Str},
	archive.Field{Name: "type", Type: archive.Str},
)

const (
	integrationFieldID = iota
	integrationFieldGuildID
	integrationFieldEnabled
	integrationFieldName
	integrationFieldType
)

func (i *Integration) Schema() *archive.Schema { return integrationSchema }

func (i *Integration) MarshalArchive(w *archive.Writer) {
	w.U64(i.ID)
	w.U64(i.GuildID)
	w.Bool(i.Enabled)
	w.Str(i.Name)
	w.Str(i.Type)
}

type ArchivedIntegration struct {
	v *archive.View
}

func DecodeIntegration(buf []byte) (*ArchivedIntegration, error) {
	v, err := integrationSchema.Decode(buf)
	if err != nil {
		return nil, err
	}
	return &ArchivedIntegration{v: v}, nil
}

func (i *ArchivedIntegration) ID() uint64      { return i.v.U64(integrationFieldID) }
func (i *ArchivedIntegration) GuildID() uint64 { return i.v.U64(integrationFieldGuildID) }
func (i *ArchivedIntegration) Enabled() bool   { return i.v.Bool(integrationFieldEnabled) }
func (i *ArchivedIntegration) Name() string    { return i.v.Str(integrationFieldName) }
func (i *ArchivedIntegration) Type() string    { return i.v.Str(integrationFieldType) }
func (i *ArchivedIntegration) Bytes() []byte   { return i.v.Bytes() }

func (i *ArchivedIntegration) Unarchive() *Integration {
	return &Integration{
		ID:      i.ID(),
		GuildID: i.GuildID(),
		Enabled: i.Enabled(),
		Name:    i.Name(),
		Type:    i.Type(),
	}
}
