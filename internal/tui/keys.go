package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	New        key.Binding
	Complete   key.Binding
	Edit       key.Binding
	Delete     key.Binding
	Search     key.Binding
	Filter     key.Binding
	Refresh    key.Binding
	Quit       key.Binding
	Save       key.Binding
	InProgress key.Binding
	Cancel     key.Binding
	NextField  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		New:        key.NewBinding(key.WithKeys("n", "a"), key.WithHelp("n", "new")),
		Complete:   key.NewBinding(key.WithKeys(" ", "space", "x"), key.WithHelp("space", "complete")),
		Edit:       key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Filter:     key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter")),
		Refresh:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Save:       key.NewBinding(key.WithKeys("enter", "ctrl+s"), key.WithHelp("ctrl+s", "save")),
		InProgress: key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "save as in progress")),
		Cancel:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		NextField:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
	}
}

// ShortHelp implements help.KeyMap for the list view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.New, k.Complete, k.Edit, k.Delete, k.Search, k.Filter, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Refresh, k.Quit},
		{k.New, k.Complete, k.Edit, k.Delete},
		{k.Search, k.Filter},
	}
}

// editKeys is the help shown during inline edit.
type editKeys struct{ keyMap }

func (k editKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.NextField, k.Save, k.InProgress, k.Cancel}
}

func (k editKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
