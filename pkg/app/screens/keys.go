package screens

import "github.com/charmbracelet/bubbles/key"

type libraryKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Open    key.Binding
	Filter  key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

func (k libraryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Open, k.Filter, k.Refresh, k.Quit}
}

func (k libraryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var libraryKeys = libraryKeyMap{
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Open:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "read")),
	Filter:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
	Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

type readerKeyMap struct {
	Left        key.Binding
	Right       key.Binding
	Up          key.Binding
	Down        key.Binding
	NextChapter key.Binding
	PrevChapter key.Binding
	NextVolume  key.Binding
	FirstPage   key.Binding
	LastPage    key.Binding
	Oldest      key.Binding
	Newest      key.Binding
	Group       key.Binding
	Layout      key.Binding
	Scaling     key.Binding
	Export      key.Binding
	Back        key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func (k readerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.NextChapter, k.PrevChapter, k.Group, k.Export, k.Back, k.Help}
}

func (k readerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.NextChapter, k.PrevChapter, k.NextVolume},
		{k.FirstPage, k.LastPage, k.Oldest, k.Newest},
		{k.Group, k.Layout, k.Scaling, k.Export},
		{k.Back, k.Help, k.Quit},
	}
}

var readerKeys = readerKeyMap{
	Left:        key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "turn left")),
	Right:       key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "turn right")),
	Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll up")),
	Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll down")),
	NextChapter: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next chapter")),
	PrevChapter: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "previous chapter")),
	NextVolume:  key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "next volume")),
	FirstPage:   key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "first page")),
	LastPage:    key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "last page")),
	Oldest:      key.NewBinding(key.WithKeys("<"), key.WithHelp("<", "oldest chapter")),
	Newest:      key.NewBinding(key.WithKeys(">"), key.WithHelp(">", "newest chapter")),
	Group:       key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "next group")),
	Layout:      key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "layout")),
	Scaling:     key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "scaling")),
	Export:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export chapter")),
	Back:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "library")),
	Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
	Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}
