package ui

import "github.com/charmbracelet/lipgloss"

// Theme holds all colours for the application.
type Theme struct {
	Bg           lipgloss.Color
	Surface      lipgloss.Color
	SurfaceHover lipgloss.Color
	Border       lipgloss.Color

	Text        lipgloss.Color
	TextMuted   lipgloss.Color
	TextSubtle  lipgloss.Color
	TextInverse lipgloss.Color

	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color

	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color

	// BadgeColors are cycled through by badge name.
	BadgeColors []lipgloss.Color
}

// DarkTheme returns the default dark theme.
func DarkTheme() Theme {
	return Theme{
		Bg:           lipgloss.Color("#1e1e2e"),
		Surface:      lipgloss.Color("#282840"),
		SurfaceHover: lipgloss.Color("#313152"),
		Border:       lipgloss.Color("#3b3b5c"),

		Text:        lipgloss.Color("#cdd6f4"),
		TextMuted:   lipgloss.Color("#9399b2"),
		TextSubtle:  lipgloss.Color("#6c7086"),
		TextInverse: lipgloss.Color("#1e1e2e"),

		Primary:   lipgloss.Color("#89b4fa"),
		Secondary: lipgloss.Color("#b4befe"),
		Accent:    lipgloss.Color("#f5c2e7"),

		Success: lipgloss.Color("#a6e3a1"),
		Warning: lipgloss.Color("#f9e2af"),
		Error:   lipgloss.Color("#f38ba8"),
		Info:    lipgloss.Color("#89b4fa"),

		BadgeColors: []lipgloss.Color{
			"#89b4fa", "#a6e3a1", "#f5c2e7", "#f9e2af",
			"#89dceb", "#fab387", "#cba6f7", "#f38ba8",
		},
	}
}

// LightTheme returns a light variant for bright terminals.
func LightTheme() Theme {
	return Theme{
		Bg:           lipgloss.Color("#eff1f5"),
		Surface:      lipgloss.Color("#e6e9ef"),
		SurfaceHover: lipgloss.Color("#dce0e8"),
		Border:       lipgloss.Color("#bcc0cc"),

		Text:        lipgloss.Color("#4c4f69"),
		TextMuted:   lipgloss.Color("#6c6f85"),
		TextSubtle:  lipgloss.Color("#8c8fa1"),
		TextInverse: lipgloss.Color("#eff1f5"),

		Primary:   lipgloss.Color("#1e66f5"),
		Secondary: lipgloss.Color("#7287fd"),
		Accent:    lipgloss.Color("#ea76cb"),

		Success: lipgloss.Color("#40a02b"),
		Warning: lipgloss.Color("#df8e1d"),
		Error:   lipgloss.Color("#d20f39"),
		Info:    lipgloss.Color("#1e66f5"),

		BadgeColors: []lipgloss.Color{
			"#1e66f5", "#40a02b", "#ea76cb", "#df8e1d",
			"#04a5e5", "#fe640b", "#8839ef", "#d20f39",
		},
	}
}

// ThemeByName returns the named theme, falling back to dark.
func ThemeByName(name string) Theme {
	if name == "light" {
		return LightTheme()
	}
	return DarkTheme()
}

// Styles holds pre-computed lipgloss styles derived from a Theme.
type Styles struct {
	Theme Theme

	// Layout
	TabBar    lipgloss.Style
	TabActive lipgloss.Style
	TabItem   lipgloss.Style
	StatusBar lipgloss.Style
	Search    lipgloss.Style

	// List rows
	ListItem     lipgloss.Style
	ListSelected lipgloss.Style
	ListDimmed   lipgloss.Style
	Detail       lipgloss.Style
	Button       lipgloss.Style
	Pinned       lipgloss.Style

	// Text
	Title   lipgloss.Style
	Muted   lipgloss.Style
	KeyBind lipgloss.Style
	KeyDesc lipgloss.Style
}

// NewStyles builds all styles from the given theme.
func NewStyles(t Theme) Styles {
	s := Styles{Theme: t}

	s.TabBar = lipgloss.NewStyle().Background(t.Surface)
	s.TabActive = lipgloss.NewStyle().Foreground(t.Primary).Background(t.Bg).Bold(true).Underline(true)
	s.TabItem = lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	s.StatusBar = lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	s.Search = lipgloss.NewStyle().Foreground(t.Text)

	s.ListItem = lipgloss.NewStyle().Foreground(t.Text)
	s.ListSelected = lipgloss.NewStyle().Foreground(t.Text).Background(t.SurfaceHover).Bold(true)
	s.ListDimmed = lipgloss.NewStyle().Foreground(t.TextSubtle)
	s.Detail = lipgloss.NewStyle().Foreground(t.TextMuted)
	s.Button = lipgloss.NewStyle().Foreground(t.TextInverse).Background(t.Primary).Bold(true)
	s.Pinned = lipgloss.NewStyle().Foreground(t.Warning).Bold(true)

	s.Title = lipgloss.NewStyle().Foreground(t.Text).Bold(true)
	s.Muted = lipgloss.NewStyle().Foreground(t.TextMuted)
	s.KeyBind = lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	s.KeyDesc = lipgloss.NewStyle().Foreground(t.TextMuted)

	return s
}

// BadgeStyle returns a pill style for a badge, coloured by name.
func (s Styles) BadgeStyle(badge string) lipgloss.Style {
	colors := s.Theme.BadgeColors
	c := s.Theme.Secondary
	if len(colors) > 0 {
		h := 0
		for _, r := range badge {
			h = h*31 + int(r)
		}
		if h < 0 {
			h = -h
		}
		c = colors[h%len(colors)]
	}
	return lipgloss.NewStyle().Foreground(c)
}

// DefaultStyles returns styles using the dark theme.
func DefaultStyles() Styles {
	return NewStyles(DarkTheme())
}
