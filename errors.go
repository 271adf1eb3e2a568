package gatecache

import (
	"github.com/gatecache/gatecache/internal/archive"
	"github.com/gatecache/gatecache/internal/cache"
)

// Error types surfaced by Store/Delete/query operations.
type (
	SerializeError  = cache.SerializeError
	UpdateError     = cache.UpdateError
	MetaError       = cache.MetaError
	ValidationError = archive.ValidationError
)

// ErrInvalidResponse means the store answered a staged read with a response
// shape that does not match what was staged.
var ErrInvalidResponse = cache.ErrInvalidResponse

// Counts is a snapshot of the global index cardinalities.
type Counts = cache.Counts
