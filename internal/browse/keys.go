package browse

import "github.com/charmbracelet/bubbles/key"

// KeyMap binds the gestures of a browse session.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	PrevPage   key.Binding
	NextPage   key.Binding
	Open       key.Binding
	Remove     key.Binding
	MoveUp     key.Binding
	MoveDown   key.Binding
	Rename     key.Binding
	DeletePage key.Binding
	Save       key.Binding
	Quit       key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:         key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		Down:       key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		PrevPage:   key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/←", "prev page")),
		NextPage:   key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l/→", "next page")),
		Open:       key.NewBinding(key.WithKeys("enter", "o"), key.WithHelp("enter", "open")),
		Remove:     key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "remove")),
		MoveUp:     key.NewBinding(key.WithKeys("K", "shift+up"), key.WithHelp("K", "move up")),
		MoveDown:   key.NewBinding(key.WithKeys("J", "shift+down"), key.WithHelp("J", "move down")),
		Rename:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename page")),
		DeletePage: key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "delete page")),
		Save:       key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "save")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "save & quit")),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.PrevPage, k.NextPage, k.Open, k.Remove, k.MoveDown, k.MoveUp, k.Rename, k.DeletePage, k.Quit}
}
