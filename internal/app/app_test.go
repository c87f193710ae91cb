package app

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Akashdeep-Patra/modpanel/internal/backend"
	"github.com/Akashdeep-Patra/modpanel/internal/common"
	"github.com/Akashdeep-Patra/modpanel/internal/config"
	"github.com/Akashdeep-Patra/modpanel/internal/geom"
	"github.com/Akashdeep-Patra/modpanel/internal/rows"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	snap        *backend.Snapshot
	invalidated int
}

func (s *fakeService) Source() string { return "fake" }

func (s *fakeService) Snapshot(context.Context) (*backend.Snapshot, error) { return s.snap, nil }

func (s *fakeService) Invalidate() { s.invalidated++ }

func records(prefix string, n int) []rows.Record {
	out := make([]rows.Record, n)
	for i := range out {
		out[i] = rows.Record{ID: fmt.Sprintf("%s-%d", prefix, i), Title: fmt.Sprintf("%s %d", prefix, i)}
	}
	return out
}

type harness struct {
	m   *Model
	svc *fakeService
	now time.Time
}

func testConfig(inputScale float64) *config.Config {
	return &config.Config{
		Theme: "dark",
		UI: config.UIConfig{
			Zoom: 1, InputScale: inputScale,
			CellWidthPx: 8, CellHeightPx: 16,
			WheelNotchPx: 4,
		},
		Virtual: config.VirtualConfig{
			MinRows: 24, Overscan: 6,
			MinSpacing:    32 * time.Millisecond,
			FrameInterval: 16 * time.Millisecond,
		},
		Click: config.ClickConfig{
			SuppressWindow:   250 * time.Millisecond,
			SuppressRadiusPx: 1,
			ScaleTolerance:   0.01,
		},
	}
}

// newHarness runs an 80×24 panel with 100 items and 40 history rows loaded.
// The lists start at screen row 2 and hold 21 lines.
func newHarness(t *testing.T, inputScale float64) *harness {
	t.Helper()
	h := &harness{
		svc: &fakeService{snap: &backend.Snapshot{
			Items:   records("Item", 100),
			History: records("Action", 40),
			Totals:  []backend.Reward{{Name: "Gold", Value: 12}},
		}},
		now: time.Unix(1_700_000_000, 0),
	}
	h.m = New(Deps{Service: h.svc, Config: testConfig(inputScale), Now: h.clock})
	t.Cleanup(h.m.Close)

	h.m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	snap, err := h.svc.Snapshot(context.Background())
	require.NoError(t, err)
	h.m.Update(common.SnapshotMsg{Snapshot: snap})
	h.settle()
	return h
}

func (h *harness) clock() time.Time { return h.now }

func (h *harness) settle() {
	for i := 0; i < 10 && h.m.frames.Pending() > 0; i++ {
		h.m.Update(frameMsg(h.now))
		h.now = h.now.Add(50 * time.Millisecond)
	}
}

func (h *harness) click(col, row int) {
	h.m.Update(tea.MouseMsg{X: col, Y: row, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	h.m.Update(tea.MouseMsg{X: col, Y: row, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	h.settle()
}

func (h *harness) key(s string) {
	var msg tea.KeyMsg
	switch s {
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEscape}
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	h.m.Update(msg)
	h.settle()
}

func TestSnapshotRendersActiveList(t *testing.T) {
	h := newHarness(t, 1)

	view := h.m.View()
	assert.Contains(t, view, "Item 0")
	assert.Contains(t, view, "Gold")
	assert.NotContains(t, view, "Action 0")

	data := h.m.statusData()
	assert.Equal(t, 100, data.Rows)
	assert.Equal(t, 1, data.Start)
	assert.Greater(t, data.End, 21)
	assert.Equal(t, "fake", data.Source)
}

func TestTabClickSwitchesSection(t *testing.T) {
	h := newHarness(t, 1)

	b := h.m.tabs[1].Bounds
	col, row := h.m.grid.Cell(geom.Point{X: b.X + b.W/2, Y: b.Y + b.H/2})
	require.Equal(t, 0, row)
	h.click(col, row)

	assert.Equal(t, rows.ListHistory, h.m.active)
	assert.True(t, h.m.panes[rows.ListItems].Container.Hidden)
	assert.Contains(t, h.m.View(), "Action 0")

	// The release lands on the label's text node, so the fallback delivers
	// the click and the native one is dropped.
	stats := h.m.engine.Corrector.Stats()
	assert.Equal(t, 1, stats.Fixed)
	assert.Equal(t, 1, stats.Suppressed)
	assert.Zero(t, stats.Corrected)
}

func TestScaledReleaseIsFixed(t *testing.T) {
	h := newHarness(t, 2)

	// The pointer at cell (10, 3) is reported at half its position, on the
	// search line where nothing is clickable. The release fallback finds
	// list row 1 by scaling the point back up.
	h.click(10, 3)

	stats := h.m.engine.Corrector.Stats()
	assert.Equal(t, 1, stats.Fixed)
	assert.Equal(t, 1, stats.Suppressed, "the native click duplicates the fix")
	assert.Equal(t, "Item-1", h.m.panes[rows.ListItems].Selected())
	assert.Equal(t, "Item 1", h.m.statusData().Message)
}

func TestWheelNotchScrollsList(t *testing.T) {
	h := newHarness(t, 1)
	c := h.m.panes[rows.ListItems].Container

	h.m.Update(tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	assert.Equal(t, 60.0, c.ScrollTop(), "an isolated small delta is one notch step")

	// 60px is three and three-quarter rows; the first visible row is 3.
	h.settle()
	view := h.m.View()
	assert.Contains(t, view, "Item 3 ")
	assert.NotContains(t, view, "Item 2 ")
}

func TestWheelOverTabBarCyclesSections(t *testing.T) {
	h := newHarness(t, 1)
	h.m.Update(tea.MouseMsg{X: 2, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	assert.Equal(t, rows.ListHistory, h.m.active)
}

func TestKeyboardScrollAndSections(t *testing.T) {
	h := newHarness(t, 1)
	c := h.m.panes[rows.ListItems].Container

	h.key("j")
	assert.Equal(t, 16.0, c.ScrollTop())
	h.key("G")
	assert.Equal(t, c.ScrollHeight()-c.ClientHeight(), c.ScrollTop())
	h.key("g")
	assert.Zero(t, c.ScrollTop())

	h.key("tab")
	assert.Equal(t, rows.ListHistory, h.m.active)
	h.key("tab")
	assert.Equal(t, rows.ListItems, h.m.active)
}

func TestZoomKeepsFirstRow(t *testing.T) {
	h := newHarness(t, 1)
	c := h.m.panes[rows.ListItems].Container
	c.SetScrollTop(160)
	h.settle()

	h.key("+")
	assert.Equal(t, 1.25, h.m.scale.UIZoom())
	assert.Equal(t, 20.0, h.m.grid.LineHeight())
	assert.Equal(t, 200.0, c.ScrollTop())

	h.key("0")
	assert.Equal(t, 1.0, h.m.scale.UIZoom())
	assert.Equal(t, 160.0, c.ScrollTop())
}

func TestSearchFiltersLists(t *testing.T) {
	h := newHarness(t, 1)

	h.key("/")
	require.True(t, h.m.search.Focused())
	h.key("Item 5")
	_, total := h.m.panes[rows.ListItems].Window()
	assert.Equal(t, 11, total, "Item 5 and Item 50-59")

	h.key("esc")
	assert.False(t, h.m.search.Focused())
	_, total = h.m.panes[rows.ListItems].Window()
	assert.Equal(t, 100, total)
}

func TestSnapshotErrorIsShown(t *testing.T) {
	h := newHarness(t, 1)
	h.m.Update(common.SnapshotMsg{Err: errors.New("boom")})

	data := h.m.statusData()
	assert.True(t, data.IsError)
	assert.Contains(t, data.Message, "load fake")
	assert.Equal(t, 100, data.Rows, "rows survive a failed reload")
}

func TestStaleRefreshInvalidatesCache(t *testing.T) {
	h := newHarness(t, 1)
	_, cmd := h.m.Update(common.RefreshMsg{})
	assert.NotNil(t, cmd)
	assert.Zero(t, h.svc.invalidated)

	h.m.Update(common.RefreshMsg{Stale: true})
	assert.Equal(t, 1, h.svc.invalidated)
}

func TestHelpOverlay(t *testing.T) {
	h := newHarness(t, 1)
	h.key("?")
	assert.Contains(t, h.m.View(), "Keyboard Shortcuts")
	h.key("esc")
	assert.NotContains(t, h.m.View(), "Keyboard Shortcuts")
}
