package modes

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the normal mode bindings. It doubles as the footer help.
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	NextTab   key.Binding
	Explore   key.Binding
	Category  key.Binding
	Favorites key.Binding
	Search    key.Binding
	Open      key.Binding
	Favorite  key.Binding
	Retry     key.Binding
	Artist    key.Binding
	Works     key.Binding
	Pager     key.Binding
	Back      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns the standard bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageUp:    key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "half page up")),
		PageDown:  key.NewBinding(key.WithKeys("pgdown", "ctrl+d", " "), key.WithHelp("pgdn", "half page down")),
		NextTab:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Explore:   key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "explore")),
		Category:  key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "categories")),
		Favorites: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "favorites")),
		Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Open:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Favorite:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
		Retry:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retry")),
		Artist:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "artist")),
		Works:     key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "works")),
		Pager:     key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "read")),
		Back:      key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp returns the bindings shown in the footer for screen
func (k KeyMap) ShortHelp(screen string) []key.Binding {
	switch screen {
	case "details":
		return []key.Binding{k.Up, k.Down, k.Favorite, k.Artist, k.Works, k.Pager, k.Back, k.Help, k.Quit}
	case "categories":
		return []key.Binding{k.Up, k.Down, k.Open, k.NextTab, k.Search, k.Help, k.Quit}
	default:
		return []key.Binding{k.Up, k.Down, k.Open, k.Favorite, k.Retry, k.NextTab, k.Search, k.Help, k.Quit}
	}
}
