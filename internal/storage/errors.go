package storage

import (
	"errors"
	"fmt"
)

// ErrCapabilityUnavailable signals that the store does not expose the atomic
// full-order primitive; callers fall back to per-item position writes.
var ErrCapabilityUnavailable = errors.New("atomic reorder capability unavailable")

// NotFoundError reports an operation that targeted an id no longer present
// in the store, typically because a concurrent delete raced it.
type NotFoundError struct {
	ID string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("item not found: %s", e.ID)
}

// IsNotFound reports whether err is a NotFoundError anywhere in its chain.
func IsNotFound(err error) bool {
	var nf NotFoundError
	return errors.As(err, &nf)
}
