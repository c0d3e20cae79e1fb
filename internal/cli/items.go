package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/nagrohan579/todo-list/internal/model"
)

// The one-shot commands go through the same optimistic controller as the
// TUI, so the controller is the only write path in the repo. Each command
// refreshes first (its "session" starts empty), mutates, then drains the
// dispatched writes before the process exits.

func newAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text>",
		Short: "Add an item to the top of the list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := app.controller()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if err := ctrl.Refresh(ctx); err != nil {
				return err
			}
			if _, err := ctrl.Insert(ctx, strings.Join(args, " ")); err != nil {
				return err
			}
			ctrl.Wait()
			return nil
		},
	}
}

func newListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the list in order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := app.controller()
			if err != nil {
				return err
			}
			if err := ctrl.Refresh(cmd.Context()); err != nil {
				return err
			}
			for _, it := range ctrl.View() {
				checkbox := "[ ]"
				if it.Completed {
					checkbox = "[x]"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s  %s\n", checkbox, it.ID, it.Text)
			}
			return nil
		},
	}
}

func newToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Flip an item's completion state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := app.controller()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if err := ctrl.Refresh(ctx); err != nil {
				return err
			}
			id, err := resolveID(ctrl.IDs(), args[0])
			if err != nil {
				return err
			}
			ctrl.Toggle(ctx, id)
			ctrl.Wait()
			return nil
		},
	}
}

func newDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := app.controller()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if err := ctrl.Refresh(ctx); err != nil {
				return err
			}
			id, err := resolveID(ctrl.IDs(), args[0])
			if err != nil {
				return err
			}
			ctrl.Delete(ctx, id)
			ctrl.Wait()
			return nil
		},
	}
}

func newClearCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every completed item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := app.controller()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if err := ctrl.Refresh(ctx); err != nil {
				return err
			}
			ctrl.ClearCompleted(ctx)
			ctrl.Wait()
			return nil
		},
	}
}

func newMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move <id> <index>",
		Short: "Move an item to a zero-based position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := app.controller()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if err := ctrl.Refresh(ctx); err != nil {
				return err
			}
			id, err := resolveID(ctrl.IDs(), args[0])
			if err != nil {
				return err
			}
			toIndex, err := strconv.Atoi(args[1])
			if err != nil {
				return errors.Wrapf(err, "bad index %q", args[1])
			}
			ctrl.Reorder(ctx, ctrl.MoveItemLocal(id, toIndex))
			ctrl.Wait()
			return nil
		},
	}
}

// resolveID accepts a full durable id or an unambiguous prefix of one.
func resolveID(ids []string, arg string) (string, error) {
	arg = strings.TrimSpace(arg)
	if model.IsDurableID(arg) {
		return arg, nil
	}
	var match string
	for _, id := range ids {
		if !strings.HasPrefix(id, arg) {
			continue
		}
		if match != "" {
			return "", errors.Errorf("id prefix %q is ambiguous", arg)
		}
		match = id
	}
	if match == "" {
		return "", errors.Errorf("no item with id %q", arg)
	}
	return match, nil
}
