// Package gesture translates raw drag and touch callbacks into local list
// splices and a single coalesced durable reorder per completed gesture.
package gesture

import (
	"context"
	"sync"
	"time"

	"github.com/nagrohan579/todo-list/internal/optimistic"
	"github.com/nagrohan579/todo-list/internal/order"
)

// Mover is the slice of the sync controller the bridge drives.
// Intermediate index changes go through MoveItemLocal; the end of a gesture
// issues one Reorder.
type Mover interface {
	MoveItemLocal(id string, toIndex int) []string
	Reorder(ctx context.Context, orderedIDs []string)
}

// session is the state of one in-progress drag. Geometry is captured at
// gesture start; every index derivation uses the start geometry plus the
// accumulated displacement, which keeps repeated derivations stable.
type session struct {
	id         string
	startIndex int
	curIndex   int
	rows       []order.Bounds
	startY     float64
	ids        []string
}

// Bridge owns at most one drag session at a time and debounces the durable
// reorder so rapid drop/release callbacks collapse into one store call.
type Bridge struct {
	mover Mover

	mu   sync.Mutex
	drag *session

	pendingMu  sync.Mutex
	pendingCtx context.Context
	pendingIDs []string
	committer  *optimistic.Debouncer
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithCommitDelay overrides how long the bridge waits for trailing release
// events before issuing the durable reorder.
func WithCommitDelay(d time.Duration) Option {
	return func(b *Bridge) {
		b.committer = optimistic.NewDebouncer(d, b.commit)
	}
}

func New(mover Mover, opts ...Option) *Bridge {
	b := &Bridge{mover: mover}
	b.committer = optimistic.NewDebouncer(10*time.Millisecond, b.commit)
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// DragStart begins a drag of the row with the given id at the given display
// index. rows is the geometry of all rendered rows in display order.
func (b *Bridge) DragStart(id string, index int, rows []order.Bounds) {
	b.mu.Lock()
	b.drag = &session{id: id, startIndex: index, curIndex: index, rows: rows}
	b.mu.Unlock()
}

// DragOver recomputes the target index for the accumulated vertical
// displacement and splices the local view when the target changed. It
// returns the current target index.
func (b *Bridge) DragOver(deltaY float64) int {
	return b.moveTo(deltaY)
}

// Drop finishes the drag and schedules the coalesced durable reorder.
func (b *Bridge) Drop(ctx context.Context) {
	b.finish(ctx)
}

// TouchStart mirrors DragStart for touch input; y is the initial touch
// coordinate, later TouchMove values are made relative to it.
func (b *Bridge) TouchStart(id string, index int, rows []order.Bounds, y float64) {
	b.mu.Lock()
	b.drag = &session{id: id, startIndex: index, curIndex: index, rows: rows, startY: y}
	b.mu.Unlock()
}

// TouchMove recomputes the target index from the touch position. Only a
// change in the derived index causes a splice; small movements inside the
// current row are ignored.
func (b *Bridge) TouchMove(y float64) int {
	b.mu.Lock()
	if b.drag == nil {
		b.mu.Unlock()
		return -1
	}
	delta := y - b.drag.startY
	b.mu.Unlock()
	return b.moveTo(delta)
}

// TouchEnd finishes the touch gesture and schedules the durable reorder.
func (b *Bridge) TouchEnd(ctx context.Context) {
	b.finish(ctx)
}

// Cancel abandons the session without a durable write. Local splices already
// applied stay in the view; the next Refresh reconciles them away.
func (b *Bridge) Cancel() {
	b.mu.Lock()
	b.drag = nil
	b.mu.Unlock()
}

// FlushPending forces a scheduled durable reorder to fire now. One-shot
// callers use it so the write is issued before they wait for the store.
func (b *Bridge) FlushPending() {
	b.committer.Flush()
}

func (b *Bridge) moveTo(deltaY float64) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.drag == nil {
		return -1
	}
	idx := order.DeriveIndexFromGesture(deltaY, b.drag.rows, b.drag.startIndex)
	if idx != b.drag.curIndex {
		b.drag.ids = b.mover.MoveItemLocal(b.drag.id, idx)
		b.drag.curIndex = idx
	}
	return idx
}

func (b *Bridge) finish(ctx context.Context) {
	b.mu.Lock()
	drag := b.drag
	b.drag = nil
	b.mu.Unlock()
	if drag == nil || drag.ids == nil || drag.curIndex == drag.startIndex {
		return
	}

	b.pendingMu.Lock()
	b.pendingCtx = context.WithoutCancel(ctx)
	b.pendingIDs = drag.ids
	b.pendingMu.Unlock()
	b.committer.Notify()
}

func (b *Bridge) commit() {
	b.pendingMu.Lock()
	ctx := b.pendingCtx
	ids := b.pendingIDs
	b.pendingIDs = nil
	b.pendingMu.Unlock()
	if len(ids) == 0 {
		return
	}
	b.mover.Reorder(ctx, ids)
}
