// Package optimistic owns the local-vs-remote reconciliation lifecycle for
// every mutating list operation: each mutation is applied to an in-memory
// view immediately and the corresponding durable write is dispatched without
// the caller waiting on it.
package optimistic

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/nagrohan579/todo-list/internal/model"
	"github.com/nagrohan579/todo-list/internal/order"
	"github.com/nagrohan579/todo-list/internal/storage"
)

// ErrEmptyText rejects an insert whose trimmed text is empty. It is the only
// error surfaced synchronously; durable-path failures are logged and
// swallowed.
var ErrEmptyText = errors.New("item text is empty")

// Store is the durable capability contract the controller writes through.
// *storage.Store satisfies it; tests substitute a recording fake.
type Store interface {
	ListItems(ctx context.Context) ([]model.Item, error)
	InsertItem(ctx context.Context, it model.Item) error
	UpdateItem(ctx context.Context, id string, fields storage.UpdateFields) error
	DeleteItem(ctx context.Context, id string) error
	DeleteCompleted(ctx context.Context) error
}

// FullOrderApplier is the optional atomic reorder primitive. Stores that do
// not implement it (or report storage.ErrCapabilityUnavailable) get the
// per-item renumbering fallback instead.
type FullOrderApplier interface {
	ApplyFullOrder(ctx context.Context, orderedIDs []string) error
}

// Controller bridges the presentation session's local view and the store.
// Local steps run synchronously under the mutex; persistence runs on
// goroutines the interaction path never waits for.
type Controller struct {
	store Store
	log   zerolog.Logger

	mu   sync.Mutex
	view []model.Item

	wg sync.WaitGroup
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger routes the controller's swallowed-error reporting.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Controller) { c.log = log }
}

func New(store Store, opts ...Option) *Controller {
	c := &Controller{
		store: store,
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Refresh replaces the local view with the store's current item set. This is
// the reconciliation pass: placeholders whose durable rows exist are replaced
// by them, and stale optimistic state is dropped.
func (c *Controller) Refresh(ctx context.Context) error {
	items, err := c.store.ListItems(ctx)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.view = items
	c.mu.Unlock()
	return nil
}

// View returns a copy of the local view in display order.
func (c *Controller) View() []model.Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.Item, len(c.view))
	copy(out, c.view)
	return out
}

// IDs returns the ids of the local view in display order.
func (c *Controller) IDs() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.idsLocked()
}

func (c *Controller) idsLocked() []string {
	ids := make([]string, len(c.view))
	for i, it := range c.view {
		ids[i] = it.ID
	}
	return ids
}

// Wait blocks until every dispatched durable write has finished. The
// interaction path never calls this; it exists for one-shot commands and
// tests that need the writes drained before reading the store.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// dispatch runs fn on its own goroutine with a context detached from the
// caller's, so cancelling the interaction never cancels a durable write.
// Errors are logged, not propagated, not retried: the local view stays the
// source of truth for the session until the next Refresh.
func (c *Controller) dispatch(ctx context.Context, op string, fn func(ctx context.Context) error) {
	ctx = context.WithoutCancel(ctx)
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		if err := fn(ctx); err != nil {
			c.log.Warn().Str("op", op).Err(err).Msg("durable write failed; local view unchanged")
		}
	}()
}

// Insert prepends a placeholder item synchronously and dispatches the
// durable creation with a freshly generated durable id. The placeholder is
// replaced, not merged, on the next Refresh. Empty trimmed text is rejected
// before any state change.
func (c *Controller) Insert(ctx context.Context, text string) (model.Item, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Item{}, ErrEmptyText
	}

	c.mu.Lock()
	pos := order.AssignInsertPosition(c.view)
	placeholder := model.Item{
		ID:        model.NewPlaceholderID(),
		Text:      text,
		Position:  pos,
		CreatedAt: time.Now(),
	}
	c.view = append([]model.Item{placeholder}, c.view...)
	c.mu.Unlock()

	durable := model.Item{
		ID:        model.NewDurableID(),
		Text:      text,
		Position:  pos,
		CreatedAt: placeholder.CreatedAt,
	}
	c.dispatch(ctx, "insert", func(ctx context.Context) error {
		return c.store.InsertItem(ctx, durable)
	})
	return placeholder, nil
}

// Toggle flips completion locally for every item matching id and dispatches
// a read-negate-write against the store. Two rapid toggles from different
// sessions can race; the store's last write wins.
func (c *Controller) Toggle(ctx context.Context, id string) {
	c.mu.Lock()
	for i := range c.view {
		if c.view[i].ID == id {
			c.view[i].Completed = !c.view[i].Completed
		}
	}
	c.mu.Unlock()

	if !model.IsDurableID(id) {
		return
	}
	c.dispatch(ctx, "toggle", func(ctx context.Context) error {
		items, err := c.store.ListItems(ctx)
		if err != nil {
			return err
		}
		for _, it := range items {
			if it.ID == id {
				next := !it.Completed
				return c.store.UpdateItem(ctx, id, storage.UpdateFields{Completed: &next})
			}
		}
		return storage.NotFoundError{ID: id}
	})
}

// Delete removes the item locally and dispatches the durable delete. The id
// disappears from the view without waiting for confirmation.
func (c *Controller) Delete(ctx context.Context, id string) {
	c.mu.Lock()
	kept := c.view[:0]
	for _, it := range c.view {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	c.view = kept
	c.mu.Unlock()

	if !model.IsDurableID(id) {
		return
	}
	c.dispatch(ctx, "delete", func(ctx context.Context) error {
		return c.store.DeleteItem(ctx, id)
	})
}

// ClearCompleted filters completed items out of the view and dispatches the
// bulk delete.
func (c *Controller) ClearCompleted(ctx context.Context) {
	c.mu.Lock()
	kept := c.view[:0]
	for _, it := range c.view {
		if !it.Completed {
			kept = append(kept, it)
		}
	}
	c.view = kept
	c.mu.Unlock()

	c.dispatch(ctx, "clear-completed", func(ctx context.Context) error {
		return c.store.DeleteCompleted(ctx)
	})
}

// MoveItemLocal splices the item to the target index in the local view only.
// Intermediate gesture updates go through here; the durable reorder is
// issued once per gesture via Reorder.
func (c *Controller) MoveItemLocal(id string, toIndex int) []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	from := -1
	for i := range c.view {
		if c.view[i].ID == id {
			from = i
			break
		}
	}
	if from < 0 {
		return c.idsLocked()
	}
	if toIndex < 0 {
		toIndex = 0
	}
	if toIndex >= len(c.view) {
		toIndex = len(c.view) - 1
	}
	if toIndex == from {
		return c.idsLocked()
	}

	moved := c.view[from]
	rest := append(c.view[:from:from], c.view[from+1:]...)
	next := make([]model.Item, 0, len(c.view))
	next = append(next, rest[:toIndex]...)
	next = append(next, moved)
	next = append(next, rest[toIndex:]...)
	c.view = next
	return c.idsLocked()
}

// Reorder splices the local view to match orderedIDs synchronously and
// dispatches one durable reorder. Placeholder ids are stripped before
// persistence; when nothing durable remains the operation is local-only.
func (c *Controller) Reorder(ctx context.Context, orderedIDs []string) {
	c.mu.Lock()
	byID := make(map[string]model.Item, len(c.view))
	for _, it := range c.view {
		byID[it.ID] = it
	}
	next := make([]model.Item, 0, len(c.view))
	taken := make(map[string]bool, len(orderedIDs))
	for _, id := range orderedIDs {
		if it, ok := byID[id]; ok && !taken[id] {
			next = append(next, it)
			taken[id] = true
		}
	}
	// Items the caller did not mention keep their relative order at the end.
	for _, it := range c.view {
		if !taken[it.ID] {
			next = append(next, it)
		}
	}
	c.view = next
	c.mu.Unlock()

	durableIDs := model.FilterDurable(orderedIDs)
	if len(durableIDs) == 0 {
		return
	}
	c.dispatch(ctx, "reorder", func(ctx context.Context) error {
		return c.persistOrder(ctx, durableIDs)
	})
}
