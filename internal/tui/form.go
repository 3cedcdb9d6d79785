package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskboard/internal/board"
)

const (
	fieldTitle = iota
	fieldDescription
	fieldDueDate
	fieldCount
)

var fieldLabels = [fieldCount]string{"Title", "Description", "Due date"}

// taskForm is the three-field title/description/due date editor shared by
// the creation dialog and inline edit.
type taskForm struct {
	inputs [fieldCount]textinput.Model
	focus  int
}

func newTaskForm() taskForm {
	var f taskForm
	for i := range f.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 255
		f.inputs[i] = ti
	}
	f.inputs[fieldTitle].Placeholder = "What needs doing?"
	f.inputs[fieldDescription].Placeholder = "Details"
	f.inputs[fieldDescription].CharLimit = 2000
	f.inputs[fieldDueDate].Placeholder = "YYYY-MM-DD"
	f.inputs[fieldDueDate].CharLimit = 10
	return f
}

// Draft returns the current field values.
func (f taskForm) Draft() board.Draft {
	return board.Draft{
		Title:       f.inputs[fieldTitle].Value(),
		Description: f.inputs[fieldDescription].Value(),
		DueDate:     strings.TrimSpace(f.inputs[fieldDueDate].Value()),
	}
}

// SetDraft fills the fields from d.
func (f *taskForm) SetDraft(d board.Draft) {
	f.inputs[fieldTitle].SetValue(d.Title)
	f.inputs[fieldDescription].SetValue(d.Description)
	f.inputs[fieldDueDate].SetValue(d.DueDate)
	for i := range f.inputs {
		f.inputs[i].CursorEnd()
	}
}

// Reset empties every field.
func (f *taskForm) Reset() {
	for i := range f.inputs {
		f.inputs[i].Reset()
	}
}

// Focus moves the cursor to field i.
func (f *taskForm) Focus(i int) tea.Cmd {
	f.focus = (i + fieldCount) % fieldCount
	var cmd tea.Cmd
	for j := range f.inputs {
		if j == f.focus {
			cmd = f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
	return cmd
}

// Blur removes focus from every field.
func (f *taskForm) Blur() {
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
}

func (f *taskForm) Next() tea.Cmd { return f.Focus(f.focus + 1) }
func (f *taskForm) Prev() tea.Cmd { return f.Focus(f.focus - 1) }

// OnLastField reports whether the due date field has focus.
func (f taskForm) OnLastField() bool {
	return f.focus == fieldCount-1
}

// Update forwards msg to the focused field.
func (f taskForm) Update(msg tea.Msg) (taskForm, tea.Cmd) {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f taskForm) View() string {
	var b strings.Builder
	for i := range f.inputs {
		b.WriteString(labelStyle.Render(fieldLabels[i]))
		b.WriteString(f.inputs[i].View())
		if i < fieldCount-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
