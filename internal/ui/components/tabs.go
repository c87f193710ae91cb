package components

import (
	"fmt"
	"strings"

	"github.com/Akashdeep-Patra/modpanel/internal/ui"
	"github.com/charmbracelet/lipgloss"
)

// TabInfo describes a single tab for rendering.
type TabInfo struct {
	Name   string
	Icon   string
	Count  int
	Active bool
}

// Span is the cell range a rendered tab bar element occupies on its row.
type Span struct {
	Start, End int // End is exclusive
	// LabelStart and LabelEnd bound the label text inside the padding.
	LabelStart, LabelEnd int
}

// Empty reports whether the element was not rendered.
func (s Span) Empty() bool { return s.End <= s.Start }

// TabBar is a rendered tab bar with the spans of its tabs and its trailing
// button, so callers can place hit boxes over them.
type TabBar struct {
	View   string
	Tabs   []Span
	Button Span
}

// RenderTabs renders the section tabs on one row followed by a
// right-aligned button. Tab labels shrink to their icon when the row is too
// narrow for full names.
func RenderTabs(styles ui.Styles, tabs []TabInfo, button string, width int) TabBar {
	btnText := " " + button + " "
	btnW := lipgloss.Width(btnText)

	labels := make([]string, len(tabs))
	need := 1 + btnW + 1
	for i, tab := range tabs {
		labels[i] = tabLabel(tab, true)
		need += lipgloss.Width(labels[i]) + 2
	}
	if need > width {
		for i, tab := range tabs {
			labels[i] = tabLabel(tab, false)
		}
	}

	var b strings.Builder
	bar := TabBar{Tabs: make([]Span, len(tabs))}
	b.WriteString(styles.TabBar.Render(" "))
	col := 1
	for i, tab := range tabs {
		style := styles.TabItem
		if tab.Active {
			style = styles.TabActive
		}
		text := " " + labels[i] + " "
		w := lipgloss.Width(text)
		bar.Tabs[i] = Span{Start: col, End: col + w, LabelStart: col + 1, LabelEnd: col + w - 1}
		b.WriteString(style.Render(text))
		col += w
	}

	if btnStart := width - btnW - 1; btnStart > col {
		b.WriteString(styles.TabBar.Render(strings.Repeat(" ", btnStart-col)))
		b.WriteString(styles.Button.Render(btnText))
		b.WriteString(styles.TabBar.Render(" "))
		bar.Button = Span{Start: btnStart, End: btnStart + btnW, LabelStart: btnStart + 1, LabelEnd: btnStart + btnW - 1}
	}

	bar.View = ui.Fit(b.String(), width)
	return bar
}

func tabLabel(tab TabInfo, withName bool) string {
	if !withName {
		return tab.Icon
	}
	if tab.Count > 0 {
		return fmt.Sprintf("%s %s (%d)", tab.Icon, tab.Name, tab.Count)
	}
	return tab.Icon + " " + tab.Name
}
