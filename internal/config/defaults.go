package config

// KeyBindings defines the mapping of actions to keys.
type KeyBindings struct {
	Quit     string
	Help     string
	Tab      string
	ShiftTab string
	Up       string
	Down     string
	PageUp   string
	PageDown string
	Home     string
	End      string
	Refresh  string
	Search   string
	ZoomIn   string
	ZoomOut  string
	Escape   string
}

// DefaultKeyBindings returns the default key bindings.
func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		Quit:     "q",
		Help:     "?",
		Tab:      "tab",
		ShiftTab: "shift+tab",
		Up:       "k",
		Down:     "j",
		PageUp:   "pgup",
		PageDown: "pgdown",
		Home:     "g",
		End:      "G",
		Refresh:  "r",
		Search:   "/",
		ZoomIn:   "+",
		ZoomOut:  "-",
		Escape:   "esc",
	}
}
