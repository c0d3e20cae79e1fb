package order

import "testing"

// uniformRows builds n rows of equal height stacked without gaps.
func uniformRows(n int, height float64) []Bounds {
	rows := make([]Bounds, n)
	for i := range rows {
		rows[i] = Bounds{Top: float64(i) * height, Height: height}
	}
	return rows
}

func TestDeriveIndexFromGesture_NoMovement(t *testing.T) {
	rows := uniformRows(5, 40)
	for i := 0; i < 5; i++ {
		if got := DeriveIndexFromGesture(0, rows, i); got != i {
			t.Errorf("zero delta from %d gave %d", i, got)
		}
	}
}

func TestDeriveIndexFromGesture_MovingDown(t *testing.T) {
	rows := uniformRows(5, 40)

	// Centers sit at 20, 60, 100, 140, 180. The dragged center (20 + delta)
	// must strictly pass another row's center to claim its slot: delta 45
	// passes row 1 (center 60), delta 85 also passes row 2 (center 100).
	if got := DeriveIndexFromGesture(30, rows, 0); got != 0 {
		t.Errorf("delta 30 from 0 gave %d, want 0", got)
	}
	if got := DeriveIndexFromGesture(45, rows, 0); got != 1 {
		t.Errorf("delta 45 from 0 gave %d, want 1", got)
	}
	if got := DeriveIndexFromGesture(85, rows, 0); got != 2 {
		t.Errorf("delta 85 from 0 gave %d, want 2", got)
	}
	// Far past the end: clamped to the last index.
	if got := DeriveIndexFromGesture(10_000, rows, 0); got != 4 {
		t.Errorf("huge delta from 0 gave %d, want 4", got)
	}
}

func TestDeriveIndexFromGesture_MovingUp(t *testing.T) {
	rows := uniformRows(5, 40)
	if got := DeriveIndexFromGesture(-30, rows, 4); got != 4 {
		t.Errorf("delta -30 from 4 gave %d, want 4", got)
	}
	if got := DeriveIndexFromGesture(-45, rows, 4); got != 3 {
		t.Errorf("delta -45 from 4 gave %d, want 3", got)
	}
	if got := DeriveIndexFromGesture(-10_000, rows, 4); got != 0 {
		t.Errorf("huge upward delta from 4 gave %d, want 0", got)
	}
}

func TestDeriveIndexFromGesture_DirectionOnlyShiftsOneWay(t *testing.T) {
	rows := uniformRows(5, 40)
	// A downward delta from the last row cannot advance further, and an
	// upward delta from the first row cannot retreat.
	if got := DeriveIndexFromGesture(200, rows, 4); got != 4 {
		t.Errorf("downward from last row gave %d, want 4", got)
	}
	if got := DeriveIndexFromGesture(-200, rows, 0); got != 0 {
		t.Errorf("upward from first row gave %d, want 0", got)
	}
}

func TestDeriveIndexFromGesture_Idempotent(t *testing.T) {
	rows := []Bounds{
		{Top: 0, Height: 32},
		{Top: 32, Height: 48},
		{Top: 80, Height: 40},
		{Top: 120, Height: 40},
	}
	for _, delta := range []float64{-100, -37.5, 0, 12, 55, 300} {
		first := DeriveIndexFromGesture(delta, rows, 1)
		second := DeriveIndexFromGesture(delta, rows, 1)
		if first != second {
			t.Errorf("delta %v: first call %d, second call %d", delta, first, second)
		}
	}
}

func TestDeriveIndexFromGesture_DegenerateInput(t *testing.T) {
	if got := DeriveIndexFromGesture(50, nil, 0); got != 0 {
		t.Errorf("empty rows gave %d, want 0", got)
	}
	rows := uniformRows(3, 40)
	if got := DeriveIndexFromGesture(0, rows, 99); got != 2 {
		t.Errorf("out-of-range dragged index gave %d, want clamp to 2", got)
	}
	if got := DeriveIndexFromGesture(0, rows, -5); got != 0 {
		t.Errorf("negative dragged index gave %d, want clamp to 0", got)
	}
}
