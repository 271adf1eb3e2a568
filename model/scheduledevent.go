package model

import "github.com/gatecache/gatecache/internal/archive"

// Scheduled event status values.
const (
	EventScheduled uint8 = iota + 1
	EventActive
	EventCompleted
	EventCanceled
)

type ScheduledEvent struct {
	ID        uint64
	GuildID   uint64
	ChannelID uint64 // 0 for external events
	StartTime int64  // unix micros
	UserCount uint32
	Status    uint8
	Name      string
}

var scheduledEventSchema = archive.NewSchema("scheduled_event",
	archive.Field{Name: "id", Type: archive.U64},
	archive.Field{Name: "guild_id", Type: archive.U64},
	archive.Field{Name: "channel_id", Type: archive.U64},
	archive.Field{Name: "start_time", Type: archive.I64},
	archive.Field{Name: "user_count", Type: archive.U32},
	archive.Field{Name: "status", Type: archive.U8},
	archive.Field{Name: "name", Type: archive.Str},
)

const (
	scheduledEventFieldID = iota
	scheduledEventFieldGuildID
	scheduledEventFieldChannelID
	scheduledEventFieldStartTime
	scheduledEventFieldUserCount
	scheduledEventFieldStatus
	scheduledEventFieldName
)

func (e *ScheduledEvent) Schema() *archive.Schema { return scheduledEventSchema }

func (e *ScheduledEvent) MarshalArchive(w *archive.Writer) {
	w.U64(e.ID)
	w.U64(e.GuildID)
	w.U64(e.ChannelID)
	w.I64(e.StartTime)
	w.U32(e.UserCount)
	w.U8(e.Status)
	w.Str(e.Name)
}

type ArchivedScheduledEvent struct {
	v *archive.View
}

func DecodeScheduledEvent(buf []byte) (*ArchivedScheduledEvent, error) {
	v, err := scheduledEventSchema.Decode(buf)
	if err != nil {
		return nil, err
	}
	return &ArchivedScheduledEvent{v: v}, nil
}

func (e *ArchivedScheduledEvent) ID() uint64        { return e.v.U64(scheduledEventFieldID) }
func (e *ArchivedScheduledEvent) GuildID() uint64   { return e.v.U64(scheduledEventFieldGuildID) }
func (e *ArchivedScheduledEvent) ChannelID() uint64 { return e.v.U64(scheduledEventFieldChannelID) }
func (e *ArchivedScheduledEvent) StartTime() int64  { return e.v.I64(scheduledEventFieldStartTime) }
func (e *ArchivedScheduledEvent) UserCount() uint32 { return e.v.U32(scheduledEventFieldUserCount) }
func (e *ArchivedScheduledEvent) Status() uint8     { return e.v.U8(scheduledEventFieldStatus) }
func (e *ArchivedScheduledEvent) Name() string      { return e.v.Str(scheduledEventFieldName) }
func (e *ArchivedScheduledEvent) Bytes() []byte     { return e.v.Bytes() }

func (e *ArchivedScheduledEvent) Unarchive() *ScheduledEvent {
	return &ScheduledEvent{
		ID:        e.ID(),
		GuildID:   e.GuildID(),
		ChannelID: e.ChannelID(),
		StartTime: e.StartTime(),
		UserCount: e.UserCount(),
		Status:    e.Status(),
		Name:      e.Name(),
	}
}

// AddUser bumps the subscriber count in place.
func (e *ArchivedScheduledEvent) AddUser() error {
	return e.v.Mutate(func(s *archive.Seal) error {
		s.SetU32(scheduledEventFieldUserCount, s.U32(scheduledEventFieldUserCount)+1)
		return nil
	})
}

// RemoveUser lowers the subscriber count in place, clamping at zero.
func (e *ArchivedScheduledEvent) RemoveUser() error {
	return e.v.Mutate(func(s *archive.Seal) error {
		if n := s.U32(scheduledEventFieldUserCount); n > 0 {
			s.SetU32(scheduledEventFieldUserCount, n-1)
		}
		return nil
	})
}
