// Package tui is an interactive grid editor for effort allocations: work
// categories down, days across, one editable cell per (category, day).
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tableflip.dev/tempo/pkg/civil"
	"tableflip.dev/tempo/pkg/draft"
	"tableflip.dev/tempo/pkg/plan"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	cursorStyle = lipgloss.NewStyle().Reverse(true)
	draftStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	faintStyle  = lipgloss.NewStyle().Faint(true)

	cellWidth = 6
	nameWidth = 18
)

// CommitResultMsg reports an asynchronous commit completion.
type CommitResultMsg struct {
	Key draft.CellKey
	Err error
}

// DeleteResultMsg reports an asynchronous delete completion.
type DeleteResultMsg struct {
	ID  string
	Err error
}

// ExternalChangeMsg signals that the cached snapshot changed on disk and the
// grid should reload.
type ExternalChangeMsg struct{}

// Reloader re-reads the filtered view and day columns, e.g. after an
// external cache change.
type Reloader func() (plan.View, []civil.Date, error)

// Model is the grid editor state.
type Model struct {
	board  *draft.Board
	reload Reloader

	categories []plan.WorkCategory
	days       []civil.Date

	row    int
	col    int
	offset int // first visible day column

	editing bool
	input   textinput.Model

	status string
	width  int
	height int
	closed bool
}

// NewModel builds the grid over a board and the filtered view.
func NewModel(board *draft.Board, view plan.View, days []civil.Date, reload Reloader) *Model {
	input := textinput.New()
	input.Prompt = ""
	input.Placeholder = "hours"
	input.CharLimit = 6
	input.Width = cellWidth

	return &Model{
		board:      board,
		reload:     reload,
		categories: view.WorkCategories,
		days:       days,
		input:      input,
	}
}

func (m *Model) Init() tea.Cmd { return nil }

// CursorKey returns the cell key under the cursor.
func (m *Model) CursorKey() (draft.CellKey, bool) {
	if m.row >= len(m.categories) || m.col >= len(m.days) {
		return draft.CellKey{}, false
	}
	return draft.CellKey{
		WorkCategoryID: m.categories[m.row].ID,
		Date:           m.days[m.col],
	}, !m.closed
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case CommitResultMsg:
		if m.closed {
			// The grid was torn down while the request was in flight; the
			// board already handled its own state, nothing to draw.
			return m, nil
		}
		if msg.Err != nil {
			if cellMsg, ok := m.board.CellError(msg.Key); ok {
				m.status = errorStyle.Render(cellMsg)
			} else {
				m.status = errorStyle.Render(msg.Err.Error())
			}
		} else {
			m.status = fmt.Sprintf("saved %s", msg.Key.Date)
		}
		return m, nil

	case DeleteResultMsg:
		if m.closed {
			return m, nil
		}
		if msg.Err != nil {
			m.status = errorStyle.Render(fmt.Sprintf("delete failed: %v", msg.Err))
		} else {
			m.status = fmt.Sprintf("deleted %s", msg.ID)
		}
		return m, nil

	case ExternalChangeMsg:
		if m.reload != nil {
			if view, days, err := m.reload(); err == nil {
				m.categories = view.WorkCategories
				m.days = days
				m.clampCursor()
				m.status = "reloaded"
			}
		}
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		return m.updateBrowsing(msg)
	}
	return m, nil
}

func (m *Model) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.closed = true
		return m, tea.Quit
	case "up", "k":
		m.row--
	case "down", "j":
		m.row++
	case "left", "h":
		m.col--
	case "right", "l":
		m.col++
	case "enter", "e":
		return m, m.startEditing()
	case "d", "x":
		return m, m.deleteUnderCursor()
	}
	m.clampCursor()
	return m, nil
}

func (m *Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key, ok := m.CursorKey()
	if !ok {
		m.editing = false
		return m, nil
	}
	switch msg.String() {
	case "esc":
		m.board.Cancel(key)
		m.editing = false
		m.input.Blur()
		m.status = "cancelled"
		return m, nil
	case "enter":
		value, err := strconv.ParseFloat(strings.TrimSpace(m.input.Value()), 64)
		if err != nil {
			m.status = errorStyle.Render("enter a number of hours")
			return m, nil
		}
		if err := m.board.Change(key, value, draft.UnitHours); err != nil {
			m.status = errorStyle.Render(err.Error())
			return m, nil
		}
		m.editing = false
		m.input.Blur()
		m.status = "saving…"
		return m, m.commit(key)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// startEditing opens a draft for the cursor cell: a creating draft on an
// empty cell, an editing draft seeded from the committed hours otherwise.
func (m *Model) startEditing() tea.Cmd {
	key, ok := m.CursorKey()
	if !ok {
		return nil
	}
	var err error
	if existing, occupied := m.board.AllocationAt(key); occupied {
		err = m.board.StartEdit(existing.ID, key.WorkCategoryID, key.Date, existing.EffortHours)
		m.input.SetValue(strconv.FormatFloat(existing.EffortHours, 'f', -1, 64))
	} else {
		err = m.board.StartCreate(key.WorkCategoryID, key.Date)
		m.input.SetValue("")
	}
	if err != nil {
		m.status = errorStyle.Render(err.Error())
		return nil
	}
	m.editing = true
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *Model) deleteUnderCursor() tea.Cmd {
	key, ok := m.CursorKey()
	if !ok {
		return nil
	}
	existing, occupied := m.board.AllocationAt(key)
	if !occupied {
		m.status = faintStyle.Render("nothing to delete")
		return nil
	}
	board := m.board
	id := existing.ID
	m.status = "deleting…"
	return func() tea.Msg {
		return DeleteResultMsg{ID: id, Err: board.Delete(context.Background(), id)}
	}
}

func (m *Model) commit(key draft.CellKey) tea.Cmd {
	board := m.board
	return func() tea.Msg {
		return CommitResultMsg{Key: key, Err: board.Commit(context.Background(), key)}
	}
}

func (m *Model) clampCursor() {
	if m.row < 0 {
		m.row = 0
	}
	if max := len(m.categories) - 1; m.row > max && max >= 0 {
		m.row = max
	}
	if m.col < 0 {
		m.col = 0
	}
	if max := len(m.days) - 1; m.col > max && max >= 0 {
		m.col = max
	}
	visible := m.visibleColumns()
	if m.col < m.offset {
		m.offset = m.col
	}
	if m.col >= m.offset+visible {
		m.offset = m.col - visible + 1
	}
}

func (m *Model) visibleColumns() int {
	if m.width <= nameWidth+cellWidth {
		return 7
	}
	return (m.width - nameWidth) / (cellWidth + 1)
}

func (m *Model) View() string {
	if len(m.categories) == 0 || len(m.days) == 0 {
		return faintStyle.Render("nothing to plan in this window") + "\n"
	}

	var b strings.Builder
	visible := m.visibleColumns()
	end := m.offset + visible
	if end > len(m.days) {
		end = len(m.days)
	}

	b.WriteString(pad("", nameWidth))
	for c := m.offset; c < end; c++ {
		label := fmt.Sprintf("%02d/%02d", m.days[c].Month, m.days[c].Day)
		b.WriteString(" " + headerStyle.Render(pad(label, cellWidth)))
	}
	b.WriteString("\n")

	for r, wc := range m.categories {
		b.WriteString(pad(truncate(wc.Name, nameWidth), nameWidth))
		for c := m.offset; c < end; c++ {
			b.WriteString(" " + m.renderCell(r, c))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if key, ok := m.CursorKey(); ok {
		if msg, bad := m.board.CellError(key); bad {
			b.WriteString(errorStyle.Render(msg) + "\n")
		}
	}
	if m.status != "" {
		b.WriteString(m.status + "\n")
	}
	b.WriteString(faintStyle.Render("arrows move · enter edit · esc cancel · d delete · q quit") + "\n")
	return b.String()
}

func (m *Model) renderCell(r, c int) string {
	key := draft.CellKey{WorkCategoryID: m.categories[r].ID, Date: m.days[c]}
	under := r == m.row && c == m.col

	if under && m.editing {
		return pad(m.input.View(), cellWidth)
	}

	var text string
	var style lipgloss.Style
	if d, open := m.board.Draft(key); open {
		text = fmt.Sprintf("%g*", d.EffortValue)
		style = draftStyle
	} else if a, occupied := m.board.AllocationAt(key); occupied {
		text = fmt.Sprintf("%g", a.EffortHours)
		style = lipgloss.NewStyle()
	} else {
		text = "·"
		style = faintStyle
	}
	if _, bad := m.board.CellError(key); bad {
		style = errorStyle
	}
	if under {
		style = cursorStyle
	}
	return style.Render(pad(text, cellWidth))
}

func pad(s string, width int) string {
	if lipgloss.Width(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-lipgloss.Width(s))
}

func truncate(s string, width int) string {
	if len(s) <= width {
		return s
	}
	if width <= 1 {
		return s[:width]
	}
	return s[:width-1] + "…"
}
