// Package tui is the terminal client: a task list with search, status
// filter, inline edit, delete confirmation and a creation dialog, all
// backed by a board.Board.
package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskboard/internal/board"
	"taskboard/internal/domain"
)

type mode int

const (
	modeList mode = iota
	modeSearch
	modeEdit
	modeConfirmDelete
	modeDialog
)

// Results of board operations run as commands.
type (
	refreshedMsg struct{ err error }
	addedMsg     struct{ err error }
	savedMsg     struct{ err error }
	changedMsg   struct{ err error }
)

// Notices collects board notifications until the model displays them.
type Notices struct {
	mu    sync.Mutex
	items []board.Notification
}

// Notify implements board.Notifier.
func (n *Notices) Notify(note board.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.items = append(n.items, note)
}

// drain returns the most recent notification and empties the queue.
func (n *Notices) drain() (board.Notification, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.items) == 0 {
		return board.Notification{}, false
	}
	last := n.items[len(n.items)-1]
	n.items = nil
	return last, true
}

// Model is the root bubbletea model.
type Model struct {
	ctx     context.Context
	board   *board.Board
	notices *Notices

	keys   keyMap
	help   help.Model
	search textinput.Model
	edit   taskForm
	dialog Dialog

	mode     mode
	cursor   int
	pending  *domain.Task // task awaiting delete confirmation
	notice   board.Notification
	hasNote  bool
	loadErr  error
	width    int
	quitting bool
}

// NewModel creates the TUI for b. notices must be the Notifier b was
// created with.
func NewModel(ctx context.Context, b *board.Board, notices *Notices) *Model {
	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search title or description"
	search.CharLimit = 100

	return &Model{
		ctx:     ctx,
		board:   b,
		notices: notices,
		keys:    defaultKeyMap(),
		help:    help.New(),
		search:  search,
		edit:    newTaskForm(),
		dialog:  NewDialog(),
	}
}

// Init loads the task list.
func (m *Model) Init() tea.Cmd {
	return m.refresh()
}

func (m *Model) refresh() tea.Cmd {
	return func() tea.Msg {
		return refreshedMsg{err: m.board.Refresh(m.ctx)}
	}
}

// Update handles messages and updates state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case refreshedMsg:
		m.loadErr = msg.err
		m.clampCursor()
		return m, nil

	case addedMsg:
		m.takeNotice()
		if msg.err == nil {
			m.dialog.Close()
			m.mode = modeList
		}
		m.clampCursor()
		return m, nil

	case savedMsg:
		m.takeNotice()
		if msg.err == nil {
			m.edit.Blur()
			m.mode = modeList
		}
		m.clampCursor()
		return m, nil

	case changedMsg:
		m.takeNotice()
		m.clampCursor()
		return m, nil

	case DialogSaveMsg:
		return m, m.addTask(msg.Draft)

	case DialogClosedMsg:
		m.mode = modeList
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg)
		case modeEdit:
			return m.updateEdit(msg)
		case modeConfirmDelete:
			return m.updateConfirm(msg)
		case modeDialog:
			var cmd tea.Cmd
			m.dialog, cmd = m.dialog.Update(msg)
			return m, cmd
		default:
			return m.updateList(msg)
		}
	}

	// Cursor blinks and other component messages.
	var cmd tea.Cmd
	switch m.mode {
	case modeSearch:
		m.search, cmd = m.search.Update(msg)
	case modeEdit:
		m.edit, cmd = m.edit.Update(msg)
	case modeDialog:
		m.dialog, cmd = m.dialog.Update(msg)
	}
	return m, cmd
}

func (m *Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := m.board.Visible()

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(visible)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.New):
		m.mode = modeDialog
		return m, m.dialog.Open()
	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.Filter):
		m.board.CycleStatusFilter()
		m.clampCursor()
	case key.Matches(msg, m.keys.Refresh):
		return m, m.refresh()
	case key.Matches(msg, m.keys.Complete):
		if t := m.selected(visible); t != nil && !t.IsCompleted() {
			return m, m.run(func() error { return m.board.Complete(m.ctx, t) })
		}
	case key.Matches(msg, m.keys.Edit):
		if t := m.selected(visible); t != nil {
			m.board.BeginEdit(t)
			m.edit.SetDraft(board.DraftOf(t))
			m.mode = modeEdit
			return m, m.edit.Focus(fieldTitle)
		}
	case key.Matches(msg, m.keys.Delete):
		if t := m.selected(visible); t != nil {
			m.pending = t
			m.mode = modeConfirmDelete
		}
	}
	return m, nil
}

func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.search.Blur()
		m.mode = modeList
		return m, nil
	case "esc":
		m.search.Reset()
		m.search.Blur()
		m.board.SetSearch("")
		m.mode = modeList
		m.clampCursor()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.board.SetSearch(m.search.Value())
	m.clampCursor()
	return m, cmd
}

func (m *Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.board.CancelEdit()
		m.edit.Blur()
		m.mode = modeList
		return m, nil
	case key.Matches(msg, m.keys.NextField):
		return m, m.edit.Next()
	case msg.String() == "shift+tab":
		return m, m.edit.Prev()
	case key.Matches(msg, m.keys.InProgress):
		return m, m.saveEdit(true)
	case key.Matches(msg, m.keys.Save):
		return m, m.saveEdit(false)
	}

	var cmd tea.Cmd
	m.edit, cmd = m.edit.Update(msg)
	m.board.EditDraft(m.edit.Draft())
	return m, cmd
}

func (m *Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	t := m.pending
	m.pending = nil
	m.mode = modeList

	if t == nil || strings.ToLower(msg.String()) != "y" {
		return m, nil
	}
	return m, m.run(func() error {
		_, err := m.board.Delete(m.ctx, t, board.AlwaysConfirm)
		return err
	})
}

func (m *Model) addTask(draft board.Draft) tea.Cmd {
	if _, err := domain.ParseDate(draft.DueDate); err != nil {
		m.showNotice(board.Notification{Kind: board.Failure, Message: board.MsgAddFailed})
		return nil
	}
	return func() tea.Msg {
		_, err := m.board.Add(m.ctx, draft)
		return addedMsg{err: err}
	}
}

func (m *Model) saveEdit(inProgress bool) tea.Cmd {
	m.board.EditDraft(m.edit.Draft())
	return func() tea.Msg {
		var err error
		if inProgress {
			_, err = m.board.SaveEditInProgress(m.ctx)
		} else {
			_, err = m.board.SaveEdit(m.ctx)
		}
		return savedMsg{err: err}
	}
}

func (m *Model) run(op func() error) tea.Cmd {
	return func() tea.Msg {
		return changedMsg{err: op()}
	}
}

func (m *Model) selected(visible []*domain.Task) *domain.Task {
	if m.cursor < 0 || m.cursor >= len(visible) {
		return nil
	}
	return visible[m.cursor]
}

func (m *Model) clampCursor() {
	n := len(m.board.Visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) takeNotice() {
	if n, ok := m.notices.drain(); ok {
		m.showNotice(n)
	}
}

func (m *Model) showNotice(n board.Notification) {
	m.notice = n
	m.hasNote = true
}

// View renders header, list, notice line and help.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var sections []string
	sections = append(sections, m.headerView())

	if m.mode == modeDialog {
		sections = append(sections, m.dialog.View())
	} else {
		sections = append(sections, m.listView())
	}

	if m.mode == modeConfirmDelete && m.pending != nil {
		sections = append(sections, errorStyle.Render(board.DeletePrompt(m.pending)+" [y/N]"))
	}
	if m.hasNote {
		sections = append(sections, noticeStyle(m.notice.Kind).Render(m.notice.Message))
	}
	if m.loadErr != nil {
		sections = append(sections, errorStyle.Render("Could not load tasks: "+m.loadErr.Error()))
	}

	if m.mode == modeEdit {
		sections = append(sections, m.help.View(editKeys{m.keys}))
	} else if m.mode != modeDialog {
		sections = append(sections, m.help.View(m.keys))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

func (m *Model) headerView() string {
	filter := m.board.Filter()
	status := "all"
	if filter.Status != "" {
		status = filter.Status.String()
	}
	line := titleStyle.Render("Taskboard") + mutedStyle.Render(fmt.Sprintf("  filter: %s", status))

	if m.mode == modeSearch || filter.Search != "" {
		line += "\n" + m.search.View()
	}
	return line
}

func (m *Model) listView() string {
	visible := m.board.Visible()
	if len(visible) == 0 {
		return mutedStyle.Render("No tasks.")
	}

	edit, editing := m.board.Editing()
	today := m.board.Today()

	rows := make([]string, 0, len(visible))
	for i, t := range visible {
		if editing && m.mode == modeEdit && edit.TaskID == t.ID {
			rows = append(rows, editStyle.Render(m.edit.View()))
			continue
		}
		rows = append(rows, m.rowView(t, i == m.cursor, today))
	}
	return strings.Join(rows, "\n")
}

func (m *Model) rowView(t *domain.Task, selected bool, today domain.Date) string {
	check := "[ ]"
	if t.IsCompleted() {
		check = "[x]"
	}
	due := ""
	if t.DueDate != nil {
		due = "  due " + t.DueDate.String()
	}

	text := fmt.Sprintf("%s %s%s  (%s)", check, t.Title, due, t.Status)
	style := categoryStyles[domain.Categorize(t, today)]
	if selected {
		return selectedStyle.Render("> ") + style.Bold(true).Render(text)
	}
	return "  " + style.Render(text)
}
