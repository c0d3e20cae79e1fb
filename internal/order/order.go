package order

import (
	"github.com/nagrohan579/todo-list/internal/model"
)

// AssignInsertPosition returns the position for a newly inserted item:
// strictly less than the minimum position currently present, so the item
// sorts first without renumbering anything else. An empty list yields 0.
func AssignInsertPosition(items []model.Item) int64 {
	if len(items) == 0 {
		return 0
	}
	min := items[0].Position
	for _, it := range items[1:] {
		if it.Position < min {
			min = it.Position
		}
	}
	return min - 1
}

// ComputeReorderPositions renumbers a desired final order as 0, 1, 2, ...
// regardless of prior position values. This is the fallback used when the
// store has no atomic full-order primitive or that primitive failed. Callers
// strip placeholder ids before invoking it.
func ComputeReorderPositions(orderedIDs []string) map[string]int64 {
	positions := make(map[string]int64, len(orderedIDs))
	for i, id := range orderedIDs {
		positions[id] = int64(i)
	}
	return positions
}
