package order

import (
	"testing"

	"github.com/nagrohan579/todo-list/internal/model"
)

func itemsWithPositions(positions ...int64) []model.Item {
	items := make([]model.Item, len(positions))
	for i, p := range positions {
		items[i] = model.Item{ID: model.NewDurableID(), Position: p}
	}
	return items
}

func TestAssignInsertPosition_EmptyList(t *testing.T) {
	if got := AssignInsertPosition(nil); got != 0 {
		t.Fatalf("AssignInsertPosition(nil) = %d, want 0", got)
	}
}

func TestAssignInsertPosition_BelowMinimum(t *testing.T) {
	cases := []struct {
		positions []int64
		want      int64
	}{
		{[]int64{5, 10}, 4},
		{[]int64{0}, -1},
		{[]int64{-3, 7, 2}, -4},
		{[]int64{100, 50, 75}, 49},
	}
	for _, tc := range cases {
		got := AssignInsertPosition(itemsWithPositions(tc.positions...))
		if got != tc.want {
			t.Errorf("AssignInsertPosition(%v) = %d, want %d", tc.positions, got, tc.want)
		}
		for _, p := range tc.positions {
			if got >= p {
				t.Errorf("AssignInsertPosition(%v) = %d, not strictly below %d", tc.positions, got, p)
			}
		}
	}
}

func TestComputeReorderPositions_ContiguousFromZero(t *testing.T) {
	ids := []string{"b", "a", "c"}
	got := ComputeReorderPositions(ids)
	want := map[string]int64{"b": 0, "a": 1, "c": 2}
	if len(got) != len(want) {
		t.Fatalf("got %d assignments, want %d", len(got), len(want))
	}
	for id, p := range want {
		if got[id] != p {
			t.Errorf("position[%q] = %d, want %d", id, got[id], p)
		}
	}
}

func TestComputeReorderPositions_NoDuplicates(t *testing.T) {
	ids := make([]string, 20)
	for i := range ids {
		ids[i] = model.NewDurableID()
	}
	got := ComputeReorderPositions(ids)
	seen := map[int64]string{}
	for id, p := range got {
		if prev, dup := seen[p]; dup {
			t.Fatalf("position %d assigned to both %q and %q", p, prev, id)
		}
		seen[p] = id
	}
	for i, id := range ids {
		if got[id] != int64(i) {
			t.Errorf("position[%q] = %d, want %d", id, got[id], i)
		}
	}
}

func TestComputeReorderPositions_Empty(t *testing.T) {
	if got := ComputeReorderPositions(nil); len(got) != 0 {
		t.Fatalf("expected no assignments, got %v", got)
	}
}
