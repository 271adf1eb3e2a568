package model

// Session is one shard's resume point.
type Session struct {
	ID       string `msgpack:"id"`
	Sequence uint64 `msgpack:"seq"`
}

// Sessions maps shard id to its resume session, snapshotted on shutdown and
// restored on the next start to resume the gateway without a full re-sync.
type Sessions map[uint32]Session
