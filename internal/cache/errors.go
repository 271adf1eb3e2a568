package cache

import (
	"errors"
	"fmt"

	"github.com/gatecache/gatecache/model"
)

// ErrInvalidResponse means the store answered a staged read with a response
// shape that does not match what was staged.
var ErrInvalidResponse = errors.New("store returned a response with unexpected shape")

// SerializeError wraps an encode failure with the entity kind it happened on.
type SerializeError struct {
	Kind model.Kind
	Err  error
}

func (e *SerializeError) Error() string {
	return fmt.Sprintf("serialize %s: %s", e.Kind, e.Err)
}

func (e *SerializeError) Unwrap() error { return e.Err }

// UpdateError wraps a failed patch of an existing record.
type UpdateError struct {
	Kind model.Kind
	Err  error
}

func (e *UpdateError) Error() string {
	return fmt.Sprintf("update %s: %s", e.Kind, e.Err)
}

func (e *UpdateError) Unwrap() error { return e.Err }

// MetaError wraps a failure around the auxiliary metadata records that back
// expiry cleanup.
type MetaError struct {
	Key string
	Err error
}

func (e *MetaError) Error() string {
	return fmt.Sprintf("metadata %s: %s", e.Key, e.Err)
}

func (e *MetaError) Unwrap() error { return e.Err }
