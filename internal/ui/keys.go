package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap collects the console's keyboard conventions. Pages reuse the
// same bindings so navigation feels uniform.
type KeyMap struct {
	NextPage key.Binding
	PrevPage key.Binding
	Up       key.Binding
	Down     key.Binding
	NextFld  key.Binding
	PrevFld  key.Binding
	Select   key.Binding
	Back     key.Binding
	Quit     key.Binding

	Generate key.Binding
	Save     key.Binding
	Download key.Binding
	Add      key.Binding
	Delete   key.Binding
	Edit     key.Binding
	Request  key.Binding
	Open     key.Binding
}

// DefaultKeyMap is the standard binding set.
var DefaultKeyMap = KeyMap{
	NextPage: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next page")),
	PrevPage: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous page")),
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "down")),
	NextFld:  key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next field")),
	PrevFld:  key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "previous field")),
	Select:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Quit:     key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),

	Generate: key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "generate")),
	Save:     key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
	Download: key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "download")),
	Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
	Delete:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
	Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
	Request:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "permission")),
	Open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
}
