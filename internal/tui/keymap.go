package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the reader's keybindings.
type KeyMap struct {
	Open      key.Binding
	Play      key.Binding
	Stop      key.Binding
	Pause     key.Binding
	Next      key.Binding
	Prev      key.Binding
	Faster    key.Binding
	Slower    key.Binding
	Louder    key.Binding
	Quieter   key.Binding
	Export    key.Binding
	Edit      key.Binding
	Quit      key.Binding
	Confirm   key.Binding
	Cancel    key.Binding
	EndEdit   key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open"),
		),
		Play: key.NewBinding(
			key.WithKeys(" ", "p"),
			key.WithHelp("space/p", "play"),
		),
		Stop: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "stop"),
		),
		Pause: key.NewBinding(
			key.WithKeys("P"),
			key.WithHelp("P", "pause"),
		),
		Next: key.NewBinding(
			key.WithKeys("n", "right"),
			key.WithHelp("n/→", "next page"),
		),
		Prev: key.NewBinding(
			key.WithKeys("b", "left"),
			key.WithHelp("b/←", "prev page"),
		),
		Faster: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "rate up"),
		),
		Slower: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "rate down"),
		),
		Louder: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "volume up"),
		),
		Quieter: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "volume down"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export"),
		),
		Edit: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "edit page"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "ok"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		EndEdit: key.NewBinding(
			key.WithKeys("tab", "esc"),
			key.WithHelp("tab/esc", "done editing"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Play, k.Stop, k.Next, k.Prev, k.Export, k.Edit, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Open, k.Export, k.Edit},
		{k.Play, k.Pause, k.Stop},
		{k.Next, k.Prev},
		{k.Faster, k.Slower, k.Louder, k.Quieter},
		{k.Quit},
	}
}
