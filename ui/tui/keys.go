package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	NextFocus key.Binding
	PrevFocus key.Binding
	NextPage  key.Binding
	PrevPage  key.Binding
	JumpPage  key.Binding
	Help      key.Binding
	Quit      key.Binding

	// Shown in full help only; handled by the process widget.
	Navigate  key.Binding
	Sort      key.Binding
	Reverse   key.Binding
	Terminate key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		NextFocus: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next pane")),
		PrevFocus: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev pane")),
		NextPage:  key.NewBinding(key.WithKeys("]", "right"), key.WithHelp("]/→", "next page")),
		PrevPage:  key.NewBinding(key.WithKeys("[", "left"), key.WithHelp("[/←", "prev page")),
		JumpPage:  key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "page")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Navigate:  key.NewBinding(key.WithKeys("up", "down", "j", "k", "g", "G"), key.WithHelp("↑/↓ g/G", "move")),
		Sort:      key.NewBinding(key.WithKeys("c", "m", "n", "p"), key.WithHelp("c/m/n/p", "sort cpu/mem/name/pid")),
		Reverse:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reverse")),
		Terminate: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "terminate")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.NextFocus, k.NextPage, k.Help}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Quit, k.Help},
		{k.NextFocus, k.PrevFocus},
		{k.NextPage, k.PrevPage, k.JumpPage},
		{k.Navigate, k.Sort, k.Reverse, k.Terminate},
	}
}
