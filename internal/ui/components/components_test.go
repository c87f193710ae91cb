package components

import (
	"strings"
	"testing"

	"github.com/Akashdeep-Patra/modpanel/internal/ui"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTabsSpans(t *testing.T) {
	styles := ui.DefaultStyles()
	tabs := []TabInfo{
		{Name: "Items", Icon: "#", Count: 12, Active: true},
		{Name: "History", Icon: "~"},
	}
	bar := RenderTabs(styles, tabs, "Refresh", 60)

	assert.Equal(t, 60, lipgloss.Width(bar.View))
	require.Len(t, bar.Tabs, 2)
	// " # Items (12) " starts after the one-cell margin.
	assert.Equal(t, Span{Start: 1, End: 15, LabelStart: 2, LabelEnd: 14}, bar.Tabs[0])
	assert.Equal(t, 15, bar.Tabs[1].Start)
	assert.Equal(t, Span{Start: 50, End: 59, LabelStart: 51, LabelEnd: 58}, bar.Button)
}

func TestRenderTabsNarrowFallsBackToIcons(t *testing.T) {
	bar := RenderTabs(ui.DefaultStyles(), []TabInfo{{Name: "Items", Icon: "#"}, {Name: "History", Icon: "~"}}, "Refresh", 20)
	assert.Equal(t, 3, bar.Tabs[0].End-bar.Tabs[0].Start)
	assert.False(t, bar.Button.Empty())

	tiny := RenderTabs(ui.DefaultStyles(), []TabInfo{{Name: "Items", Icon: "#"}}, "Refresh", 8)
	assert.True(t, tiny.Button.Empty())
}

func TestRenderScrollbar(t *testing.T) {
	styles := ui.DefaultStyles()
	assert.Empty(t, RenderScrollbar(styles, 0, 0, 100, 1000))

	fits := RenderScrollbar(styles, 4, 0, 100, 100)
	assert.Equal(t, 4, len(strings.Split(fits, "\n")))
	assert.NotContains(t, fits, "█")

	top := strings.Split(RenderScrollbar(styles, 10, 0, 100, 1000), "\n")
	require.Len(t, top, 10)
	assert.Contains(t, top[0], "█")
	assert.NotContains(t, top[9], "█")

	bottom := strings.Split(RenderScrollbar(styles, 10, 900, 100, 1000), "\n")
	assert.Contains(t, bottom[9], "█")
	assert.NotContains(t, bottom[0], "█")
}

func TestRenderStatusBar(t *testing.T) {
	styles := ui.DefaultStyles()
	data := StatusBarData{
		Source: "demo", Zoom: 1, InputScale: 2,
		Start: 35, End: 57, Rows: 1000,
		Corrected: 3,
		Totals:    []Total{{Name: "Health", Value: 12}},
	}
	out := RenderStatusBar(styles, data, 120)
	assert.Equal(t, 120, lipgloss.Width(out))
	assert.Contains(t, out, "rows 35–57/1000")
	assert.Contains(t, out, "input 2.00")
	assert.Contains(t, out, "cor 3")
	assert.Contains(t, out, "Health +12")

	data.Message, data.IsError = "feed locked", true
	out = RenderStatusBar(styles, data, 120)
	assert.Contains(t, out, "feed locked")
	assert.NotContains(t, out, "Health")

	assert.Equal(t, 30, lipgloss.Width(RenderStatusBar(styles, data, 30)))
}

func TestRenderHelp(t *testing.T) {
	out := RenderHelp(ui.DefaultStyles(), "Keys", GlobalHelpEntries(), 60)
	assert.Contains(t, out, "Navigation")
	assert.Contains(t, out, "Zoom in / out")
	assert.Contains(t, out, "Keys")
}
