package gesture

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nagrohan579/todo-list/internal/order"
)

// recordingMover tracks splices and durable reorders. Its list is three rows
// of height 40 identified a, b, c.
type recordingMover struct {
	mu       sync.Mutex
	ids      []string
	moves    int
	reorders [][]string
}

func newRecordingMover(ids ...string) *recordingMover {
	return &recordingMover{ids: ids}
}

func (m *recordingMover) MoveItemLocal(id string, toIndex int) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.moves++
	from := -1
	for i, cur := range m.ids {
		if cur == id {
			from = i
			break
		}
	}
	if from >= 0 && toIndex >= 0 && toIndex < len(m.ids) && from != toIndex {
		moved := m.ids[from]
		rest := append(append([]string{}, m.ids[:from]...), m.ids[from+1:]...)
		next := append(append(append([]string{}, rest[:toIndex]...), moved), rest[toIndex:]...)
		m.ids = next
	}
	out := make([]string, len(m.ids))
	copy(out, m.ids)
	return out
}

func (m *recordingMover) Reorder(ctx context.Context, orderedIDs []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reorders = append(m.reorders, append([]string(nil), orderedIDs...))
}

func (m *recordingMover) snapshot() (moves int, reorders [][]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.moves, append([][]string(nil), m.reorders...)
}

func rows3() []order.Bounds {
	return []order.Bounds{
		{Top: 0, Height: 40},
		{Top: 40, Height: 40},
		{Top: 80, Height: 40},
	}
}

func TestDrag_IntermediateChangesAreLocalOnly(t *testing.T) {
	m := newRecordingMover("a", "b", "c")
	b := New(m, WithCommitDelay(5*time.Millisecond))

	b.DragStart("a", 0, rows3())
	require.Equal(t, 0, b.DragOver(10))
	require.Equal(t, 1, b.DragOver(45))
	require.Equal(t, 2, b.DragOver(90))

	_, reorders := m.snapshot()
	require.Empty(t, reorders, "no durable call before drop")
}

func TestDrag_FiveIndexChangesOneRelease_OneDurableCall(t *testing.T) {
	m := newRecordingMover("a", "b", "c")
	b := New(m, WithCommitDelay(5*time.Millisecond))

	b.DragStart("a", 0, rows3())
	for _, delta := range []float64{45, 90, 45, 90, 45} {
		b.DragOver(delta)
	}
	b.Drop(context.Background())
	b.FlushPending()

	_, reorders := m.snapshot()
	require.Len(t, reorders, 1, "exactly one durable reorder per gesture")
	require.Equal(t, []string{"b", "a", "c"}, reorders[0])
}

func TestDrop_WithoutIndexChangeIsNoOp(t *testing.T) {
	m := newRecordingMover("a", "b", "c")
	b := New(m, WithCommitDelay(5*time.Millisecond))

	b.DragStart("b", 1, rows3())
	b.DragOver(5)
	b.Drop(context.Background())
	b.FlushPending()

	moves, reorders := m.snapshot()
	require.Zero(t, moves)
	require.Empty(t, reorders)
}

func TestTouch_DeltasRelativeToStart(t *testing.T) {
	m := newRecordingMover("a", "b", "c")
	b := New(m, WithCommitDelay(5*time.Millisecond))

	b.TouchStart("c", 2, rows3(), 100)
	require.Equal(t, 2, b.TouchMove(90))  // delta -10: inside own row
	require.Equal(t, 1, b.TouchMove(55))  // delta -45: crossed b's center
	require.Equal(t, 0, b.TouchMove(15))  // delta -85: crossed a's center
	b.TouchEnd(context.Background())
	b.FlushPending()

	_, reorders := m.snapshot()
	require.Len(t, reorders, 1)
	require.Equal(t, []string{"c", "a", "b"}, reorders[0])
}

func TestCancel_DiscardsPendingCommit(t *testing.T) {
	m := newRecordingMover("a", "b", "c")
	b := New(m, WithCommitDelay(5*time.Millisecond))

	b.DragStart("a", 0, rows3())
	b.DragOver(45)
	b.Cancel()
	b.Drop(context.Background())
	b.FlushPending()

	_, reorders := m.snapshot()
	require.Empty(t, reorders, "cancelled gesture must not persist")
}

func TestMoveWithoutSession(t *testing.T) {
	m := newRecordingMover("a")
	b := New(m)
	require.Equal(t, -1, b.DragOver(40))
	require.Equal(t, -1, b.TouchMove(40))
}

func TestDoubleDropCoalesces(t *testing.T) {
	m := newRecordingMover("a", "b", "c")
	b := New(m, WithCommitDelay(30*time.Millisecond))

	b.DragStart("a", 0, rows3())
	b.DragOver(45)
	ctx := context.Background()
	b.Drop(ctx)
	b.Drop(ctx) // stray duplicate release
	b.FlushPending()
	time.Sleep(80 * time.Millisecond)

	_, reorders := m.snapshot()
	require.Len(t, reorders, 1)
}
