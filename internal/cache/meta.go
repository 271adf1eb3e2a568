package cache

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/gatecache/gatecache/internal/keys"
	"github.com/gatecache/gatecache/model"
)

// Metadata records are written next to TTL'd primary records whose key does
// not embed the owning scope. When the primary key expires the listener
// GETDELs the metadata to find the guild (or channel) index to repair. The
// records never carry a TTL themselves; GETDEL is their only cleanup.

type guildMeta struct {
	Guild uint64 `msgpack:"g"`
}

type messageMeta struct {
	Channel uint64 `msgpack:"c"`
}

// metaKey returns the metadata key for one primary record, or "" when the
// kind needs none.
func metaKey(kind model.Kind, id uint64) string {
	switch kind {
	case model.KindChannel:
		return keys.ChannelMeta(id)
	case model.KindRole:
		return keys.RoleMeta(id)
	case model.KindMessage:
		return keys.MessageMeta(id)
	case model.KindSticker:
		return keys.StickerMeta(id)
	case model.KindEmoji:
		return keys.EmojiMeta(id)
	case model.KindStageInstance:
		return keys.StageInstanceMeta(id)
	case model.KindScheduledEvent:
		return keys.ScheduledEventMeta(id)
	default:
		return ""
	}
}

// stageGuildMeta stages the guild-reference metadata write for one TTL'd
// record. Guild-less records (direct message channels) write nothing.
func (c *Cache) stageGuildMeta(ctx context.Context, p *pipe, kind model.Kind, id, guild uint64) error {
	key := metaKey(kind, id)
	if key == "" || guild == 0 {
		return nil
	}
	buf, err := msgpack.Marshal(&guildMeta{Guild: guild})
	if err != nil {
		return &MetaError{Key: key, Err: err}
	}
	p.set(ctx, key, buf, 0)
	return nil
}

func (c *Cache) stageMessageMeta(ctx context.Context, p *pipe, id, channel uint64) error {
	key := keys.MessageMeta(id)
	buf, err := msgpack.Marshal(&messageMeta{Channel: channel})
	if err != nil {
		return &MetaError{Key: key, Err: err}
	}
	p.set(ctx, key, buf, 0)
	return nil
}

// takeGuildMeta fetches and deletes the metadata for an expired record.
// Missing metadata returns (0, false, nil): cleanup is best effort.
func (c *Cache) takeGuildMeta(ctx context.Context, kind model.Kind, id uint64) (uint64, bool, error) {
	key := metaKey(kind, id)
	if key == "" {
		return 0, false, nil
	}
	buf, err := c.client.GetDel(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, &MetaError{Key: key, Err: err}
	}
	var m guildMeta
	if err := msgpack.Unmarshal(buf, &m); err != nil {
		return 0, false, &MetaError{Key: key, Err: err}
	}
	return m.Guild, m.Guild != 0, nil
}

func (c *Cache) takeMessageMeta(ctx context.Context, id uint64) (uint64, bool, error) {
	key := keys.MessageMeta(id)
	buf, err := c.client.GetDel(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, &MetaError{Key: key, Err: err}
	}
	var m messageMeta
	if err := msgpack.Unmarshal(buf, &m); err != nil {
		return 0, false, &MetaError{Key: key, Err: err}
	}
	return m.Channel, m.Channel != 0, nil
}
