package app

import (
	"github.com/Akashdeep-Patra/modpanel/internal/config"
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the global keybindings used across the application.
type KeyMap struct {
	Quit       key.Binding
	Help       key.Binding
	NextTab    key.Binding
	PrevTab    key.Binding
	Refresh    key.Binding
	Up         key.Binding
	Down       key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Home       key.Binding
	End        key.Binding
	Search     key.Binding
	ZoomIn     key.Binding
	ZoomOut    key.Binding
	ZoomReset  key.Binding
	Enter      key.Binding
	Back       key.Binding
	TabItems   key.Binding
	TabHistory key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return NewKeyMap(config.DefaultKeyBindings())
}

// NewKeyMap builds the keymap from configured primary keys. Arrow keys,
// ctrl chords and the other fixed aliases are always bound as well.
func NewKeyMap(kb config.KeyBindings) KeyMap {
	return KeyMap{
		Quit:     key.NewBinding(key.WithKeys(kb.Quit, "ctrl+c"), key.WithHelp(kb.Quit, "quit")),
		Help:     key.NewBinding(key.WithKeys(kb.Help), key.WithHelp(kb.Help, "help")),
		NextTab:  key.NewBinding(key.WithKeys(kb.Tab), key.WithHelp(kb.Tab, "next section")),
		PrevTab:  key.NewBinding(key.WithKeys(kb.ShiftTab), key.WithHelp(kb.ShiftTab, "prev section")),
		Refresh:  key.NewBinding(key.WithKeys(kb.Refresh, "ctrl+r"), key.WithHelp(kb.Refresh, "refresh")),
		Up:       key.NewBinding(key.WithKeys("up", kb.Up), key.WithHelp(kb.Up+"/↑", "up")),
		Down:     key.NewBinding(key.WithKeys("down", kb.Down), key.WithHelp(kb.Down+"/↓", "down")),
		PageUp:   key.NewBinding(key.WithKeys(kb.PageUp, "ctrl+u"), key.WithHelp(kb.PageUp, "page up")),
		PageDown: key.NewBinding(key.WithKeys(kb.PageDown, "ctrl+d"), key.WithHelp(kb.PageDown, "page down")),
		Home:     key.NewBinding(key.WithKeys("home", kb.Home), key.WithHelp(kb.Home, "top")),
		End:      key.NewBinding(key.WithKeys("end", kb.End), key.WithHelp(kb.End, "bottom")),
		Search:   key.NewBinding(key.WithKeys(kb.Search), key.WithHelp(kb.Search, "search")),
		ZoomIn:   key.NewBinding(key.WithKeys(kb.ZoomIn, "="), key.WithHelp(kb.ZoomIn, "zoom in")),
		ZoomOut:  key.NewBinding(key.WithKeys(kb.ZoomOut), key.WithHelp(kb.ZoomOut, "zoom out")),
		// 0 pairs with the zoom keys and is not configurable.
		ZoomReset: key.NewBinding(key.WithKeys("0"), key.WithHelp("0", "reset zoom")),
		Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		Back:      key.NewBinding(key.WithKeys(kb.Escape), key.WithHelp(kb.Escape, "back")),

		// Alt+key section shortcuts never conflict with the search box.
		TabItems:   key.NewBinding(key.WithKeys("alt+1"), key.WithHelp("alt+1", "items")),
		TabHistory: key.NewBinding(key.WithKeys("alt+2"), key.WithHelp("alt+2", "history")),
	}
}
