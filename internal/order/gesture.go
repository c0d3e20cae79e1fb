package order

// Bounds is the vertical geometry of one rendered row. Keeping the gesture
// math over abstract bounds (instead of live layout queries) makes it a pure
// function the tests can drive directly.
type Bounds struct {
	Top    float64
	Height float64
}

func (b Bounds) center() float64 {
	return b.Top + b.Height/2
}

// DeriveIndexFromGesture returns the index the dragged row should occupy if
// dropped now, given its vertical displacement and the geometry of all rows
// in display order. The dragged row's displaced center is compared against
// the centers of the rows it travels over: moving down only advances the
// target past rows whose center has been crossed, moving up only retreats.
// The dragged row itself is excluded from the scan, and repeated calls with
// unchanged input return the same index.
func DeriveIndexFromGesture(deltaY float64, rows []Bounds, draggedIndex int) int {
	n := len(rows)
	if n == 0 {
		return 0
	}
	if draggedIndex < 0 {
		draggedIndex = 0
	}
	if draggedIndex >= n {
		draggedIndex = n - 1
	}

	center := rows[draggedIndex].center() + deltaY
	idx := draggedIndex
	switch {
	case deltaY > 0:
		for i := draggedIndex + 1; i < n; i++ {
			if center <= rows[i].center() {
				break
			}
			idx = i
		}
	case deltaY < 0:
		for i := draggedIndex - 1; i >= 0; i-- {
			if center >= rows[i].center() {
				break
			}
			idx = i
		}
	}
	return idx
}
