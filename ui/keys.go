package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up            key.Binding
	Down          key.Binding
	Search        key.Binding
	Enter         key.Binding
	Back          key.Binding
	NextCategory  key.Binding
	PrevCategory  key.Binding
	Category      key.Binding
	Favorite      key.Binding
	FavoritesOnly key.Binding
	LoadMore      key.Binding
	Generate      key.Binding
	Resolution    key.Binding
	Credential    key.Binding
	Share         key.Binding
	Download      key.Binding
	Language      key.Binding
	Help          key.Binding
	Quit          key.Binding
}

var keys = keyMap{
	Up:            key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:          key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Search:        key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Enter:         key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "preview")),
	Back:          key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	NextCategory:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "category")),
	PrevCategory:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev category")),
	Category:      key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8"), key.WithHelp("1-8", "jump to category")),
	Favorite:      key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "favorite")),
	FavoritesOnly: key.NewBinding(key.WithKeys("F"), key.WithHelp("F", "favorites only")),
	LoadMore:      key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "load more")),
	Generate:      key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "AI studio")),
	Resolution:    key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "resolution")),
	Credential:    key.NewBinding(key.WithKeys("K"), key.WithHelp("K", "API key")),
	Share:         key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "share")),
	Download:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "download")),
	Language:      key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "language")),
	Help:          key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:          key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// ShortHelp returns short help key bindings (for help.Model)
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Search, k.NextCategory, k.Favorite, k.Generate, k.Help, k.Quit}
}

// FullHelp returns full help key bindings
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Enter, k.Back, k.Search},
		{k.NextCategory, k.PrevCategory, k.Category, k.FavoritesOnly, k.LoadMore},
		{k.Favorite, k.Share, k.Download, k.Language},
		{k.Generate, k.Resolution, k.Credential, k.Help, k.Quit},
	}
}
