package components

import (
	"strings"

	"github.com/Akashdeep-Patra/modpanel/internal/ui"
	"github.com/charmbracelet/lipgloss"
)

// HelpEntry is a single key-description pair for the help overlay.
type HelpEntry struct {
	Key  string
	Desc string
}

// HelpSection is a titled group of entries.
type HelpSection struct {
	Title   string
	Entries []HelpEntry
}

// RenderHelp renders the help body: a title and the sections in order.
// The caller frames it (and scrolls it when taller than the screen).
func RenderHelp(styles ui.Styles, title string, sections []HelpSection, width int) string {
	t := styles.Theme

	titleStr := lipgloss.NewStyle().
		Foreground(t.Primary).Bold(true).
		Align(lipgloss.Center).
		Width(max(1, width)).
		Render(title)

	var body strings.Builder
	body.WriteString(titleStr + "\n\n")

	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true).Underline(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Primary).Bold(true).Width(16).Align(lipgloss.Right)
	descStyle := lipgloss.NewStyle().Foreground(t.Text)

	for _, section := range sections {
		if len(section.Entries) == 0 {
			continue
		}
		body.WriteString(sectionStyle.Render(section.Title) + "\n")
		for _, e := range section.Entries {
			body.WriteString("  " + keyStyle.Render(e.Key) + "  " + descStyle.Render(e.Desc) + "\n")
		}
		body.WriteString("\n")
	}
	return strings.TrimRight(body.String(), "\n")
}

// FrameHelp wraps rendered help content in the overlay border, centred.
func FrameHelp(styles ui.Styles, content string, width, height int) string {
	overlay := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(styles.Theme.Primary).
		Padding(1, 3).
		Render(content)
	return ui.PlaceCentre(width, height, overlay)
}

// GlobalHelpEntries returns the help sections for the panel's keybindings.
func GlobalHelpEntries() []HelpSection {
	return []HelpSection{
		{"Navigation", []HelpEntry{
			{Key: "j / ↓", Desc: "Scroll down one row"},
			{Key: "k / ↑", Desc: "Scroll up one row"},
			{Key: "g / Home", Desc: "Go to top"},
			{Key: "G / End", Desc: "Go to bottom"},
			{Key: "pgup / ctrl+u", Desc: "Page up"},
			{Key: "pgdn / ctrl+d", Desc: "Page down"},
			{Key: "wheel", Desc: "Scroll the list under the pointer"},
			{Key: "click", Desc: "Select a row, pin an item, switch tabs"},
		}},
		{"Sections", []HelpEntry{
			{Key: "tab", Desc: "Next section"},
			{Key: "shift+tab", Desc: "Previous section"},
			{Key: "/", Desc: "Search the lists"},
			{Key: "esc", Desc: "Clear search / close help"},
		}},
		{"Display", []HelpEntry{
			{Key: "+ / -", Desc: "Zoom in / out"},
			{Key: "0", Desc: "Reset zoom"},
		}},
		{"General", []HelpEntry{
			{Key: "r", Desc: "Refresh data"},
			{Key: "?", Desc: "Toggle this help"},
			{Key: "q / ctrl+c", Desc: "Quit"},
		}},
	}
}
