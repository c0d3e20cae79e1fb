package optimistic

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/nagrohan579/todo-list/internal/order"
	"github.com/nagrohan579/todo-list/internal/storage"
)

// persistOrder makes the store match orderedIDs. It first tries the atomic
// full-order primitive; if the store does not implement it, reports the
// capability missing, or fails outright, every id's position is rewritten
// individually. The target state is computed upfront so the per-item writes
// have no ordering dependency and run concurrently. A failed subset leaves
// those rows stale; siblings are neither retried nor rolled back.
func (c *Controller) persistOrder(ctx context.Context, orderedIDs []string) error {
	if applier, ok := c.store.(FullOrderApplier); ok {
		err := applier.ApplyFullOrder(ctx, orderedIDs)
		if err == nil {
			return nil
		}
		c.log.Debug().Err(err).Msg("atomic reorder unavailable; renumbering per item")
	}

	positions := order.ComputeReorderPositions(orderedIDs)
	var g errgroup.Group
	for id, pos := range positions {
		g.Go(func() error {
			err := c.store.UpdateItem(ctx, id, storage.UpdateFields{Position: &pos})
			if err != nil {
				c.log.Warn().Str("id", id).Int64("position", pos).Err(err).
					Msg("position write failed; row left stale")
			}
			return err
		})
	}
	return g.Wait()
}
