package model

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Durable identifiers are canonical lowercase 8-4-4-4-12 UUIDv4 strings,
// assigned only on the durable write path. Anything else (notably the
// "local-" tokens below) is a placeholder and must never reach the store.

var placeholderSeq atomic.Int64

// NewDurableID returns a random version-4 UUID in canonical form.
func NewDurableID() string {
	return uuid.NewString()
}

// NewPlaceholderID returns a session-local temporary identifier. The counter
// keeps ids distinct even when two inserts land on the same nanosecond.
func NewPlaceholderID() string {
	return fmt.Sprintf("local-%d-%d", time.Now().UnixNano(), placeholderSeq.Add(1))
}

// IsDurableID reports whether id is a canonical 8-4-4-4-12 random UUID.
// The urn:, braced, and compact forms uuid.Parse would otherwise accept are
// rejected, as are non-v4 versions and non-RFC-4122 variants.
func IsDurableID(id string) bool {
	if len(id) != 36 {
		return false
	}
	if id[8] != '-' || id[13] != '-' || id[18] != '-' || id[23] != '-' {
		return false
	}
	u, err := uuid.Parse(id)
	if err != nil {
		return false
	}
	return u.Version() == 4 && u.Variant() == uuid.RFC4122
}

// FilterDurable returns the ids that match the durable format, preserving
// order. Placeholders are dropped; a reorder must never persist a position
// for an item that does not durably exist yet.
func FilterDurable(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if IsDurableID(id) {
			out = append(out, id)
		}
	}
	return out
}
