package model

import "github.com/gatecache/gatecache/internal/archive"

type Message struct {
	ID              uint64
	ChannelID       uint64
	GuildID         uint64 // 0 for direct messages
	AuthorID        uint64
	Timestamp       int64 // unix micros
	EditedTimestamp int64 // 0 = never edited
	Pinned          bool
	Content         string
	Reactions       []Reaction
}

// Reaction is one emoji's tally on a message. Emoji holds the unicode emoji
// itself, or the decimal id of a custom emoji.
type Reaction struct {
	Emoji string
	Count uint64
}

var messageSchema = archive.NewSchema("message",
	archive.Field{Name: "id", Type: archive.U64},
	archive.Field{Name: "channel_id", Type: archive.U64},
	archive.Field{Name: "guild_id", Type: archive.U64},
	archive.Field{Name: "author_id", Type: archive.U64},
	archive.Field{Name: "timestamp", Type: archive.I64},
	archive.Field{Name: "edited_timestamp", Type: archive.I64},
	archive.Field{Name: "pinned", Type: archive.Bool},
	archive.Field{Name: "content", Type: archive.Str},
	archive.Field{Name: "reaction_emojis", Type: archive.StrSlice},
	archive.Field{Name: "reaction_counts", Type: archive.U64Slice},
)

const (
	messageFieldID = iota
	messageFieldChannelID
	messageFieldGuildID
	messageFieldAuthorID
	messageFieldTimestamp
	messageFieldEditedTimestamp
	messageFieldPinned
	messageFieldContent
	messageFieldReactionEmojis
	messageFieldReactionCounts
)

func (m *Message) Schema() *archive.Schema { return messageSchema }

func (m *Message) MarshalArchive(w *archive.Writer) {
	w.U64(m.ID)
	w.U64(m.ChannelID)
	w.U64(m.GuildID)
	w.U64(m.AuthorID)
	w.I64(m.Timestamp)
	w.I64(m.EditedTimestamp)
	w.Bool(m.Pinned)
	w.Str(m.Content)

	emojis := make([]string, len(m.Reactions))
	counts := make([]uint64, len(m.Reactions))
	for i, r := range m.Reactions {
		emojis[i] = r.Emoji
		counts[i] = r.Count
	}
	w.Strs(emojis)
	w.U64s(counts)
}

// AddReaction bumps the tally for one emoji, appending a fresh entry on its
// first occurrence.
func (m *Message) AddReaction(emoji string) {
	for i := range m.Reactions {
		if m.Reactions[i].Emoji == emoji {
			m.Reactions[i].Count++
			return
		}
	}
	m.Reactions = append(m.Reactions, Reaction{Emoji: emoji, Count: 1})
}

// RemoveReaction drops one tally for the emoji, removing the entry when it
// reaches zero. Unknown emojis are ignored.
func (m *Message) RemoveReaction(emoji string) {
	for i := range m.Reactions {
		if m.Reactions[i].Emoji != emoji {
			continue
		}
		if m.Reactions[i].Count--; m.Reactions[i].Count == 0 {
			m.Reactions = append(m.Reactions[:i], m.Reactions[i+1:]...)
		}
		return
	}
}

// RemoveReactionEmoji drops the emoji's entry entirely.
func (m *Message) RemoveReactionEmoji(emoji string) {
	for i := range m.Reactions {
		if m.Reactions[i].Emoji == emoji {
			m.Reactions = append(m.Reactions[:i], m.Reactions[i+1:]...)
			return
		}
	}
}

// RemoveAllReactions clears every tally.
func (m *Message) RemoveAllReactions() {
	m.Reactions = nil
}

type ArchivedMessage struct {
	v *archive.View
}

func DecodeMessage(buf []byte) (*ArchivedMessage, error) {
	v, err := messageSchema.Decode(buf)
	if err != nil {
		return nil, err
	}
	return &ArchivedMessage{v: v}, nil
}

func (m *ArchivedMessage) ID() uint64             { return m.v.U64(messageFieldID) }
func (m *ArchivedMessage) ChannelID() uint64      { return m.v.U64(messageFieldChannelID) }
func (m *ArchivedMessage) GuildID() uint64        { return m.v.U64(messageFieldGuildID) }
func (m *ArchivedMessage) AuthorID() uint64       { return m.v.U64(messageFieldAuthorID) }
func (m *ArchivedMessage) Timestamp() int64       { return m.v.I64(messageFieldTimestamp) }
func (m *ArchivedMessage) EditedTimestamp() int64 { return m.v.I64(messageFieldEditedTimestamp) }
func (m *ArchivedMessage) Pinned() bool           { return m.v.Bool(messageFieldPinned) }
func (m *ArchivedMessage) Content() string        { return m.v.Str(messageFieldContent) }
func (m *ArchivedMessage) Bytes() []byte          { return m.v.Bytes() }

func (m *ArchivedMessage) Reactions() []Reaction {
	emojis := m.v.Strs(messageFieldReactionEmojis)
	counts := m.v.U64s(messageFieldReactionCounts)
	if len(emojis) == 0 || len(emojis) != len(counts) {
		return nil
	}
	reactions := make([]Reaction, len(emojis))
	for i := range reactions {
		reactions[i] = Reaction{Emoji: emojis[i], Count: counts[i]}
	}
	return reactions
}

func (m *ArchivedMessage) Unarchive() *Message {
	return &Message{
		ID:              m.ID(),
		ChannelID:       m.ChannelID(),
		GuildID:         m.GuildID(),
		AuthorID:        m.AuthorID(),
		Timestamp:       m.Timestamp(),
		EditedTimestamp: m.EditedTimestamp(),
		Pinned:          m.Pinned(),
		Content:         m.Content(),
		Reactions:       m.Reactions(),
	}
}

// SetPinned flips the pinned flag in place.
func (m *ArchivedMessage) SetPinned(pinned bool) error {
	return m.v.Mutate(func(s *archive.Seal) error {
		s.SetBool(messageFieldPinned, pinned)
		return nil
	})
}

// SetEditedTimestamp patches the edit timestamp in place.
func (m *ArchivedMessage) SetEditedTimestamp(ts int64) error {
	return m.v.Mutate(func(s *archive.Seal) error {
		s.SetI64(messageFieldEditedTimestamp, ts)
		return nil
	})
}
