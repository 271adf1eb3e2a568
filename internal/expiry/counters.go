package expiry

import "sync/atomic"

type listenerCounters struct {
	processed atomic.Int64 // expired keys whose indices were repaired
	ignored   atomic.Int64 // expirations of keys that are not primary records
	errors    atomic.Int64 // failed repair attempts (loop continues)
}

func newListenerCounters() *listenerCounters {
	return &listenerCounters{}
}

func (c *listenerCounters) snapshot() (processed, ignored, errors int64) {
	processed = c.processed.Load()
	ignored = c.ignored.Load()
	errors = c.errors.Load()
	return
}
