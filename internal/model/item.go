package model

import "time"

// Item is the persisted unit of the list. The visible order is Position
// ascending; values need not be contiguous, only relative order matters.
type Item struct {
	ID        string
	Text      string
	Completed bool
	Position  int64
	CreatedAt time.Time
}

// IsPlaceholder reports whether the item only exists in the local view and
// has not been durably created yet.
func (it Item) IsPlaceholder() bool {
	return !IsDurableID(it.ID)
}
