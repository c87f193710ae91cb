package components

import (
	"strings"

	"github.com/Akashdeep-Patra/modpanel/internal/ui"
	"github.com/charmbracelet/lipgloss"
)

// RenderScrollbar returns a vertical scrollbar track of the given height
// in rows. The thumb is proportional to clientPx/scrollPx and placed at
// topPx within the scrollable range.
//
// Returns a blank column if everything fits.
func RenderScrollbar(styles ui.Styles, height int, topPx, clientPx, scrollPx float64) string {
	if height < 1 {
		return ""
	}
	if scrollPx <= clientPx || clientPx <= 0 {
		return strings.TrimSuffix(strings.Repeat(" \n", height), "\n")
	}

	t := styles.Theme

	thumbSize := int(float64(height) * clientPx / scrollPx)
	thumbSize = max(1, min(thumbSize, height))

	maxOffset := height - thumbSize
	pct := topPx / (scrollPx - clientPx)
	thumbStart := int(pct*float64(maxOffset) + 0.5)
	thumbStart = max(0, min(thumbStart, maxOffset))

	thumbStyle := lipgloss.NewStyle().Foreground(t.Primary)
	trackStyle := lipgloss.NewStyle().Foreground(t.Border)

	var b strings.Builder
	b.Grow(height * 4)
	for i := 0; i < height; i++ {
		if i > 0 {
			b.WriteByte('\n')
		}
		if i >= thumbStart && i < thumbStart+thumbSize {
			b.WriteString(thumbStyle.Render("█"))
		} else {
			b.WriteString(trackStyle.Render("░"))
		}
	}
	return b.String()
}
