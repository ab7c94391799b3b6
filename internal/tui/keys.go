package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit        key.Binding
	SwitchMode  key.Binding
	SelectAll   key.Binding
	DeselectAll key.Binding
	ChipLeft    key.Binding
	ChipRight   key.Binding
	ChipNext    key.Binding
	ChipPrev    key.Binding

	// Search mode.
	ScrollUp   key.Binding
	ScrollDown key.Binding
	PageUp     key.Binding
	PageDown   key.Binding

	// Random mode.
	NavLeft    key.Binding
	NavRight   key.Binding
	ChipToggle key.Binding
	Draw       key.Binding
	Pick       key.Binding
	Reset      key.Binding
	Confirm    key.Binding
	Cancel     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:        key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
		SwitchMode:  key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "random/search")),
		SelectAll:   key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "select all")),
		DeselectAll: key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "deselect all")),
		ChipLeft:    key.NewBinding(key.WithKeys("shift+left"), key.WithHelp("shift+←/→", "move")),
		ChipRight:   key.NewBinding(key.WithKeys("shift+right")),
		ChipNext:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "toggle group")),
		ChipPrev:    key.NewBinding(key.WithKeys("shift+tab")),

		ScrollUp:   key.NewBinding(key.WithKeys("up"), key.WithHelp("↑/↓", "scroll")),
		ScrollDown: key.NewBinding(key.WithKeys("down")),
		PageUp:     key.NewBinding(key.WithKeys("pgup")),
		PageDown:   key.NewBinding(key.WithKeys("pgdown")),

		NavLeft:    key.NewBinding(key.WithKeys("left", "h", "shift+left"), key.WithHelp("←/→", "move")),
		NavRight:   key.NewBinding(key.WithKeys("right", "l", "shift+right")),
		ChipToggle: key.NewBinding(key.WithKeys(" ", "tab"), key.WithHelp("space", "toggle group")),
		Draw:       key.NewBinding(key.WithKeys("enter", "d"), key.WithHelp("enter", "draw")),
		Pick:       key.NewBinding(key.WithKeys("1", "2", "3", "4", "5"), key.WithHelp("1-5", "pick card")),
		Reset:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset score")),
		Confirm:    key.NewBinding(key.WithKeys("y", "enter"), key.WithHelp("y", "reset")),
		Cancel:     key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "cancel")),
	}
}

// searchHelp is the short help line for search mode.
func (k keyMap) searchHelp() []key.Binding {
	return []key.Binding{k.ChipNext, k.ChipLeft, k.SelectAll, k.DeselectAll, k.ScrollUp, k.SwitchMode, k.Quit}
}

// randomHelp is the short help line for random mode.
func (k keyMap) randomHelp() []key.Binding {
	return []key.Binding{k.Draw, k.Pick, k.Reset, k.ChipToggle, k.NavLeft, k.SelectAll, k.DeselectAll, k.SwitchMode, k.Quit}
}

// dialogHelp is the short help line while the reset dialog is open.
func (k keyMap) dialogHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Cancel}
}
