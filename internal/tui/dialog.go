package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"taskboard/internal/board"
)

// DialogSaveMsg carries a completed draft from the dialog to its parent.
// The dialog stays open until the parent calls Close.
type DialogSaveMsg struct {
	Draft board.Draft
}

// DialogClosedMsg is sent when the user dismisses the dialog.
type DialogClosedMsg struct{}

// Dialog is the modal task creation form.
type Dialog struct {
	form   taskForm
	active bool
}

// NewDialog creates a closed dialog.
func NewDialog() Dialog {
	return Dialog{form: newTaskForm()}
}

// Active reports whether the dialog is open.
func (d Dialog) Active() bool {
	return d.active
}

// Open shows the dialog with the title field focused.
func (d *Dialog) Open() tea.Cmd {
	d.active = true
	return d.form.Focus(fieldTitle)
}

// Close hides the dialog and discards its contents.
func (d *Dialog) Close() {
	d.active = false
	d.form.Reset()
	d.form.Blur()
}

// Draft returns what is currently typed in.
func (d Dialog) Draft() board.Draft {
	return d.form.Draft()
}

// Update handles dialog keys. Tab and shift+tab move between fields; enter
// advances, and saves from the last field; ctrl+s saves from anywhere; esc
// closes.
func (d Dialog) Update(msg tea.Msg) (Dialog, tea.Cmd) {
	if !d.active {
		return d, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			d.Close()
			return d, func() tea.Msg { return DialogClosedMsg{} }
		case "tab", "down":
			return d, d.form.Next()
		case "shift+tab", "up":
			return d, d.form.Prev()
		case "ctrl+s":
			return d.save()
		case "enter":
			if d.form.OnLastField() {
				return d.save()
			}
			return d, d.form.Next()
		}
	}

	var cmd tea.Cmd
	d.form, cmd = d.form.Update(msg)
	return d, cmd
}

// save hands a complete draft to the parent and clears the fields. An
// incomplete draft is ignored.
func (d Dialog) save() (Dialog, tea.Cmd) {
	draft := d.form.Draft()
	if !draft.IsComplete() {
		return d, nil
	}
	d.form.Reset()
	focus := d.form.Focus(fieldTitle)
	return d, tea.Batch(focus, func() tea.Msg { return DialogSaveMsg{Draft: draft} })
}

func (d Dialog) View() string {
	if !d.active {
		return ""
	}
	body := titleStyle.Render("New task") + "\n\n" +
		d.form.View() + "\n\n" +
		mutedStyle.Render("tab next • ctrl+s save • esc cancel")
	return dialogStyle.Render(body)
}
