package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Consult    key.Binding
	Export     key.Binding
	PickClient key.Binding
	ToggleMode key.Binding
	NextField  key.Binding
	PrevField  key.Binding
	Close      key.Binding
	Quit       key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Consult:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "consult")),
		Export:     key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "export pdf")),
		PickClient: key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "pick client")),
		ToggleMode: key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "switch mode")),
		NextField:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		PrevField:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
		Close:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Quit:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ToggleMode, k.NextField, k.Consult, k.Export, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ToggleMode, k.NextField, k.PrevField},
		{k.Consult, k.Export, k.PickClient, k.Quit},
	}
}

func (k keyMap) clientHelp() []key.Binding {
	return []key.Binding{k.ToggleMode, k.PickClient, k.Consult, k.Export, k.Quit}
}

func (k keyMap) pickerHelp() []key.Binding {
	return []key.Binding{k.Consult, k.Close}
}
