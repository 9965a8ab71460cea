package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds every binding the dashboard responds to. It satisfies help.KeyMap.
type keyMap struct {
	Quit        key.Binding
	NextPage    key.Binding
	PrevPage    key.Binding
	Dashboard   key.Binding
	Models      key.Binding
	TestCases   key.Binding
	Results     key.Binding
	Refresh     key.Binding
	Demo        key.Binding
	Filter      key.Binding
	Search      key.Binding
	Category    key.Binding
	Open        key.Binding
	Close       key.Binding
	PrevRun     key.Binding
	NextRun     key.Binding
	pageContext page
}

func newKeyMap() keyMap {
	return keyMap{
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		NextPage:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next view")),
		PrevPage:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev view")),
		Dashboard: key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "dashboard")),
		Models:    key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "models")),
		TestCases: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "test cases")),
		Results:   key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "results")),
		Refresh:   key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "refresh")),
		Demo:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "run demo")),
		Filter:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "all/active/inactive")),
		Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Category:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "category")),
		Open:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Close:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		PrevRun:   key.NewBinding(key.WithKeys("["), key.WithHelp("[", "newer run")),
		NextRun:   key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "older run")),
	}
}

// ShortHelp returns the bindings relevant to the current page.
func (k keyMap) ShortHelp() []key.Binding {
	common := []key.Binding{k.NextPage, k.Refresh, k.Quit}
	switch k.pageContext {
	case pageDashboard:
		return append([]key.Binding{k.Demo}, common...)
	case pageModels:
		return append([]key.Binding{k.Filter}, common...)
	case pageTestCases:
		return append([]key.Binding{k.Search, k.Category, k.Open, k.Close}, common...)
	case pageResults:
		return append([]key.Binding{k.PrevRun, k.NextRun}, common...)
	}
	return common
}

// FullHelp returns every binding grouped by purpose.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Dashboard, k.Models, k.TestCases, k.Results, k.NextPage, k.PrevPage},
		{k.Demo, k.Filter, k.Search, k.Category, k.Open, k.Close, k.PrevRun, k.NextRun},
		{k.Refresh, k.Quit},
	}
}
