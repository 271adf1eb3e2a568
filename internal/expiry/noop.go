package expiry

// NoOpListener is used when no entity kind carries a TTL: nothing ever
// expires, so there is nothing to repair.
type NoOpListener struct{}

// ListenerMetrics always returns zero values.
func (NoOpListener) ListenerMetrics() (processed, ignored, errors int64) {
	return 0, 0, 0
}

// Close does nothing and returns nil.
func (NoOpListener) Close() error {
	return nil
}
