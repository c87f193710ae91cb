package components

import (
	"fmt"
	"strings"

	"github.com/Akashdeep-Patra/modpanel/internal/ui"
	"github.com/charmbracelet/lipgloss"
)

// Total is one reward total shown in the status bar.
type Total struct {
	Name  string
	Value float64
}

// StatusBarData carries the info displayed in the bottom status bar.
type StatusBarData struct {
	Source     string
	Totals     []Total
	Zoom       float64
	InputScale float64

	// Window of the active list.
	Start, End, Rows int

	Fixed, Corrected, Suppressed int

	Message string // transient info/error message
	IsError bool
}

// RenderStatusBar renders the bottom status bar with sections separated by
// dim vertical bars. Sections are dropped from the right as width shrinks.
//
//	demo │ rows 35–57/1000 │ zoom 1.00 · input 2.00 │ fix 1 cor 3 dup 1     Health +12
func RenderStatusBar(styles ui.Styles, data StatusBarData, width int) string {
	t := styles.Theme

	sep := lipgloss.NewStyle().Foreground(t.Border).Faint(true).Render(" │ ")

	sections := []string{
		" " + lipgloss.NewStyle().Foreground(t.Primary).Bold(true).Render(data.Source),
	}
	if data.Rows > 0 {
		sections = append(sections, fmt.Sprintf("rows %d–%d/%d", data.Start, data.End, data.Rows))
	}
	if width >= 60 {
		scale := fmt.Sprintf("zoom %.2f · input %.2f", data.Zoom, data.InputScale)
		if data.InputScale != 1 {
			scale = lipgloss.NewStyle().Foreground(t.Warning).Render(scale)
		}
		sections = append(sections, scale)
	}
	if width >= 90 {
		sections = append(sections, fmt.Sprintf("fix %d cor %d dup %d", data.Fixed, data.Corrected, data.Suppressed))
	}
	left := strings.Join(sections, sep)

	var right string
	switch {
	case data.Message != "":
		fg := t.Info
		if data.IsError {
			fg = t.Error
		}
		right = lipgloss.NewStyle().Foreground(fg).Render(data.Message) + " "
	case len(data.Totals) > 0 && width >= 40:
		parts := make([]string, 0, len(data.Totals))
		for _, tot := range data.Totals {
			parts = append(parts, fmt.Sprintf("%s %+g", tot.Name, tot.Value))
		}
		right = lipgloss.NewStyle().Foreground(t.Success).Render(strings.Join(parts, "  ")) + " "
	}

	leftW := lipgloss.Width(left)
	rightW := lipgloss.Width(right)
	gap := width - leftW - rightW
	if gap < 1 {
		gap = 1
		right = ""
	}

	content := ui.Truncate(left+strings.Repeat(" ", gap)+right, width)
	return styles.StatusBar.Width(width).Render(content)
}
