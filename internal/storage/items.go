package storage

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/nagrohan579/todo-list/internal/model"
)

// ListItems returns all items ordered by position ascending.
func (s *Store) ListItems(ctx context.Context) ([]model.Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, text, completed, position, created_at FROM items ORDER BY position ASC, created_at ASC;`)
	if err != nil {
		return nil, errors.Wrap(err, "list items")
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		var it model.Item
		var completed int
		var createdStr string
		if err := rows.Scan(&it.ID, &it.Text, &completed, &it.Position, &createdStr); err != nil {
			return nil, errors.Wrap(err, "scan item")
		}
		it.Completed = completed == 1
		if created, err := time.Parse(time.RFC3339Nano, createdStr); err == nil {
			it.CreatedAt = created
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "list items")
	}
	return items, nil
}

// InsertItem creates the durable row for it. The id must already be a
// durable identifier; placeholders never reach this layer.
func (s *Store) InsertItem(ctx context.Context, it model.Item) error {
	created := it.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	completed := 0
	if it.Completed {
		completed = 1
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO items (id, text, completed, position, created_at) VALUES (?, ?, ?, ?, ?);`,
		it.ID, it.Text, completed, it.Position, formatTime(created))
	return errors.Wrap(err, "insert item")
}

// UpdateItem applies the non-nil fields to the row with the given id and
// reports NotFoundError when no such row exists.
func (s *Store) UpdateItem(ctx context.Context, id string, fields UpdateFields) error {
	set := make([]string, 0, 3)
	args := make([]any, 0, 4)
	if fields.Text != nil {
		set = append(set, "text = ?")
		args = append(args, *fields.Text)
	}
	if fields.Completed != nil {
		val := 0
		if *fields.Completed {
			val = 1
		}
		set = append(set, "completed = ?")
		args = append(args, val)
	}
	if fields.Position != nil {
		set = append(set, "position = ?")
		args = append(args, *fields.Position)
	}
	if len(set) == 0 {
		return nil
	}
	args = append(args, id)

	res, err := s.db.ExecContext(ctx, "UPDATE items SET "+strings.Join(set, ", ")+" WHERE id = ?;", args...)
	if err != nil {
		return errors.Wrap(err, "update item")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "update item")
	}
	if n == 0 {
		return NotFoundError{ID: id}
	}
	return nil
}

// DeleteItem removes the row with the given id. Deleting an already-absent
// row is not an error; the caller's intent is satisfied either way.
func (s *Store) DeleteItem(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?;`, id)
	return errors.Wrap(err, "delete item")
}

// DeleteCompleted removes every completed row in one statement.
func (s *Store) DeleteCompleted(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE completed = 1;`)
	return errors.Wrap(err, "delete completed items")
}

// ApplyFullOrder renumbers the listed ids 0..N-1 inside one transaction.
// This is the optional atomic full-order primitive; when disabled it reports
// ErrCapabilityUnavailable so callers take the per-item fallback.
func (s *Store) ApplyFullOrder(ctx context.Context, orderedIDs []string) error {
	if !s.atomicReorder {
		return ErrCapabilityUnavailable
	}
	if len(orderedIDs) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin reorder")
	}
	for i, id := range orderedIDs {
		if _, err := tx.ExecContext(ctx, `UPDATE items SET position = ? WHERE id = ?;`, int64(i), id); err != nil {
			tx.Rollback()
			return errors.Wrap(err, "apply full order")
		}
	}
	return errors.Wrap(tx.Commit(), "commit reorder")
}
