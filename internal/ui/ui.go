package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nagrohan579/todo-list/internal/config"
	"github.com/nagrohan579/todo-list/internal/gesture"
	"github.com/nagrohan579/todo-list/internal/model"
	"github.com/nagrohan579/todo-list/internal/optimistic"
	"github.com/nagrohan579/todo-list/internal/order"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeGrab
)

// rowHeight is the synthetic geometry fed to the gesture bridge: every
// rendered row is one terminal line tall.
const rowHeight = 1

type Model struct {
	ctrl   *optimistic.Controller
	bridge *gesture.Bridge
	cfg    config.Config

	items      []model.Item
	cursor     int
	mode       mode
	input      textinput.Model
	status     string
	filterDone string
	confirmDel bool
	pendingDel *model.Item

	grabbedID  string
	grabStartY float64
	grabOffset int
}

func Run(ctrl *optimistic.Controller, cfg config.Config) error {
	if err := ctrl.Refresh(context.Background()); err != nil {
		return err
	}

	m := newModel(ctrl, cfg)
	program := tea.NewProgram(m)
	_, err := program.Run()
	m.bridge.FlushPending()
	ctrl.Wait()
	return err
}

func newModel(ctrl *optimistic.Controller, cfg config.Config) Model {
	ti := textinput.New()
	ti.Placeholder = "What needs doing?"
	ti.CharLimit = 256
	ti.Width = 40

	return Model{
		ctrl:       ctrl,
		bridge:     gesture.New(ctrl),
		cfg:        cfg,
		items:      ctrl.View(),
		status:     "Press 'a' to add, space to toggle, 'd' to delete, 'g' to grab and move.",
		input:      ti,
		mode:       modeList,
		filterDone: strings.ToLower(cfg.DefaultFilter),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.confirmDel {
			return m.updateDeleteConfirm(msg.String())
		}
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.input.Width = msg.Width - 10
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch m.mode {
	case modeAdd:
		return m.updateAddMode(key, msg)
	case modeGrab:
		return m.updateGrabMode(key)
	default:
		return m.updateListMode(key)
	}
}

func (m Model) updateAddMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel:
		m.mode = modeList
		m.input.SetValue("")
		m.status = "Cancelled"
		return m, nil
	case m.cfg.Keys.Confirm:
		_, err := m.ctrl.Insert(context.Background(), m.input.Value())
		if errors.Is(err, optimistic.ErrEmptyText) {
			m.status = "Title cannot be empty"
			return m, nil
		}
		m.items = m.ctrl.View()
		m.cursor = 0
		m.status = "Added (saving in background)"
		m.input.SetValue("")
		m.input.Blur()
		m.mode = modeList
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c", m.cfg.Keys.Quit:
		return m, tea.Quit
	case m.cfg.Keys.Down, "down":
		if len(m.visible()) == 0 {
			return m, nil
		}
		m.cursor = clampCursor(m.cursor+1, len(m.visible()))
	case m.cfg.Keys.Up, "up":
		if m.cursor > 0 {
			m.cursor = clampCursor(m.cursor-1, len(m.visible()))
		}
	case m.cfg.Keys.Add:
		m.mode = modeAdd
		m.input.Focus()
		m.status = "Add mode: type a title and press Enter"
	case m.cfg.Keys.Toggle:
		visible := m.visible()
		if len(visible) == 0 || m.cursor >= len(visible) {
			return m, nil
		}
		it := visible[m.cursor]
		m.ctrl.Toggle(context.Background(), it.ID)
		m.items = m.ctrl.View()
		// Under a filter the toggled item leaves the visible slice, so the
		// cursor can now point past its end.
		m.cursor = clampCursor(m.cursor, len(m.visible()))
		m.status = "Toggled"
	case m.cfg.Keys.Delete:
		visible := m.visible()
		if len(visible) == 0 || m.cursor >= len(visible) {
			return m, nil
		}
		it := visible[m.cursor]
		m.confirmDel = true
		m.pendingDel = &it
		m.status = fmt.Sprintf("Delete %q? y/n", it.Text)
	case m.cfg.Keys.Clear:
		m.ctrl.ClearCompleted(context.Background())
		m.items = m.ctrl.View()
		m.cursor = clampCursor(m.cursor, len(m.visible()))
		m.status = "Cleared completed"
	case m.cfg.Keys.Grab:
		// Grab only works on the unfiltered list: the persisted order is the
		// full list's order.
		if m.filterDone != "all" {
			m.status = "Switch filter to 'all' before reordering"
			return m, nil
		}
		if len(m.items) == 0 {
			return m, nil
		}
		it := m.items[m.cursor]
		m.grabbedID = it.ID
		m.grabStartY = float64(m.cursor) * rowHeight
		m.grabOffset = 0
		m.bridge.TouchStart(it.ID, m.cursor, m.rowBounds(), m.grabStartY)
		m.mode = modeGrab
		m.status = fmt.Sprintf("Moving %q: j/k to move, enter to drop, esc to cancel", it.Text)
	case m.cfg.Keys.Refresh:
		if err := m.ctrl.Refresh(context.Background()); err != nil {
			m.status = fmt.Sprintf("refresh failed: %v", err)
			return m, nil
		}
		m.items = m.ctrl.View()
		m.cursor = clampCursor(m.cursor, len(m.visible()))
		m.status = "Refreshed from store"
	case m.cfg.Keys.Filter:
		m.filterDone = nextFilter(m.filterDone)
		m.cursor = clampCursor(m.cursor, len(m.visible()))
		m.status = "Filter: " + m.filterDone
	}
	return m, nil
}

// updateGrabMode drives the gesture bridge with synthetic touch moves: each
// j/k press displaces the grabbed row by one row height from the grab point,
// like a slow touch drag. The extra half row makes sure the neighbor's
// center is strictly crossed.
func (m Model) updateGrabMode(key string) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Down, "down", m.cfg.Keys.Up, "up":
		if key == m.cfg.Keys.Up || key == "up" {
			m.grabOffset--
		} else {
			m.grabOffset++
		}
		y := m.grabStartY + float64(m.grabOffset)*rowHeight
		switch {
		case m.grabOffset > 0:
			y += rowHeight / 2.0
		case m.grabOffset < 0:
			y -= rowHeight / 2.0
		}
		idx := m.bridge.TouchMove(y)
		if idx >= 0 {
			m.cursor = clampCursor(idx, len(m.items))
		}
		m.items = m.ctrl.View()
		return m, nil
	case m.cfg.Keys.Confirm, "enter":
		m.bridge.TouchEnd(context.Background())
		m.mode = modeList
		m.grabbedID = ""
		m.items = m.ctrl.View()
		m.status = "Dropped (saving in background)"
		return m, nil
	case m.cfg.Keys.Cancel, "esc":
		m.bridge.Cancel()
		m.mode = modeList
		m.grabbedID = ""
		m.status = "Move cancelled; refresh to restore the stored order"
		return m, nil
	default:
		return m, nil
	}
}

func (m Model) updateDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "n", "N":
		m.status = "Delete cancelled"
		m.confirmDel = false
		m.pendingDel = nil
		return m, nil
	case "y", "Y":
		if m.pendingDel == nil {
			m.status = "Nothing to delete"
			m.confirmDel = false
			return m, nil
		}
		m.ctrl.Delete(context.Background(), m.pendingDel.ID)
		m.items = m.ctrl.View()
		m.cursor = clampCursor(m.cursor, len(m.visible()))
		m.status = "Deleted (saving in background)"
		m.confirmDel = false
		m.pendingDel = nil
		return m, nil
	default:
		return m, nil
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString("Todo")
	b.WriteString("\n\n")

	visible := m.visible()
	if len(visible) == 0 {
		b.WriteString("Nothing here. Press 'a' to add an item.")
	} else {
		b.WriteString(m.renderItems(visible))
	}

	b.WriteString("\n---\n")
	b.WriteString(m.status)
	b.WriteString("\n")

	if m.mode == modeAdd {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	b.WriteString(renderHelp(m.cfg.Keys))
	return b.String()
}

func (m Model) renderItems(visible []model.Item) string {
	var b strings.Builder
	for i, it := range visible {
		cursor := " "
		if m.cursor == i && m.mode != modeAdd {
			cursor = ">"
		}
		if m.mode == modeGrab && it.ID == m.grabbedID {
			cursor = "^"
		}

		checkbox := "[ ]"
		if it.Completed {
			checkbox = "[x]"
		}

		text := it.Text
		if it.IsPlaceholder() {
			text += " (saving...)"
		}

		fmt.Fprintf(&b, "%s %s %s\n", cursor, checkbox, text)
	}
	return b.String()
}

// rowBounds builds the abstract geometry for the current list: rows of one
// line each, stacked.
func (m Model) rowBounds() []order.Bounds {
	rows := make([]order.Bounds, len(m.items))
	for i := range rows {
		rows[i] = order.Bounds{Top: float64(i) * rowHeight, Height: rowHeight}
	}
	return rows
}

func (m Model) visible() []model.Item {
	switch m.filterDone {
	case "active":
		out := make([]model.Item, 0, len(m.items))
		for _, it := range m.items {
			if !it.Completed {
				out = append(out, it)
			}
		}
		return out
	case "done":
		out := make([]model.Item, 0, len(m.items))
		for _, it := range m.items {
			if it.Completed {
				out = append(out, it)
			}
		}
		return out
	default:
		return m.items
	}
}

func nextFilter(cur string) string {
	switch cur {
	case "all":
		return "active"
	case "active":
		return "done"
	default:
		return "all"
	}
}

func renderHelp(k config.Keymap) string {
	return fmt.Sprintf("%s/%s move • %s add • %s toggle • %s delete • %s clear done • %s grab • %s filter • %s refresh • %s quit",
		k.Up, k.Down, k.Add, k.Toggle, k.Delete, k.Clear, k.Grab, k.Filter, k.Refresh, k.Quit)
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
