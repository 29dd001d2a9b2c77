package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Submit     key.Binding
	NextView   key.Binding
	PrevView   key.Binding
	TextView   key.Binding
	TableView  key.Binding
	ChartView  key.Binding
	QuickOne   key.Binding
	QuickTwo   key.Binding
	Copy       key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	Help       key.Binding
	Clear      key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Submit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "ask")),
		NextView:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next view")),
		PrevView:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous view")),
		TextView:   key.NewBinding(key.WithKeys("alt+t"), key.WithHelp("alt+t", "text")),
		TableView:  key.NewBinding(key.WithKeys("alt+b"), key.WithHelp("alt+b", "table")),
		ChartView:  key.NewBinding(key.WithKeys("alt+c"), key.WithHelp("alt+c", "chart")),
		QuickOne:   key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "top portfolios")),
		QuickTwo:   key.NewBinding(key.WithKeys("f2"), key.WithHelp("f2", "values per RM")),
		Copy:       key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "copy view")),
		ScrollUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll up")),
		ScrollDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "scroll down")),
		Help:       key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "more keys")),
		Clear:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear/quit")),
		Quit:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.NextView, k.QuickOne, k.QuickTwo, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Clear, k.Quit},
		{k.NextView, k.PrevView, k.TextView, k.TableView, k.ChartView},
		{k.QuickOne, k.QuickTwo, k.Copy},
		{k.ScrollUp, k.ScrollDown, k.Help},
	}
}
