// Package views holds the panel's list panes.
package views

import (
	"math"
	"strconv"
	"strings"

	"github.com/Akashdeep-Patra/modpanel/internal/dom"
	"github.com/Akashdeep-Patra/modpanel/internal/geom"
	"github.com/Akashdeep-Patra/modpanel/internal/host"
	"github.com/Akashdeep-Patra/modpanel/internal/rows"
	"github.com/Akashdeep-Patra/modpanel/internal/ui"
	"github.com/Akashdeep-Patra/modpanel/internal/ui/components"
	"github.com/Akashdeep-Patra/modpanel/internal/virtual"
	"github.com/charmbracelet/lipgloss"
)

const (
	markW   = 2
	badgeW  = 12
	detailW = 10
	// narrowW is the content width below which badge and detail are hidden.
	narrowW = 36
)

// ListOptions configures a ListPane.
type ListOptions struct {
	// Empty is shown when the list has no rows.
	Empty string
	// Action labels a per-row button; empty means rows have none.
	Action string
	// OnSelect runs when a row is clicked.
	OnSelect func(rows.Record)
	// OnAction runs when a row's button is clicked.
	OnAction func(rows.Record)
}

// ListPane renders one virtualized list. It is the list's virtual.Body: the
// virtualizer paints the current window into it, and the pane mirrors the
// painted rows as nodes under its scroll container so pointer input can be
// hit-tested against them.
type ListPane struct {
	ID        rows.ListID
	Container *dom.Node

	styles ui.Styles
	grid   ui.Grid
	opts   ListOptions

	col, row, cols, lines int

	paint    virtual.Paint
	painted  bool
	selected string
	pinned   map[string]bool
}

// Compile-time checks.
var (
	_ virtual.Body     = (*ListPane)(nil)
	_ virtual.Measurer = (*ListPane)(nil)
)

// NewListPane creates a pane with an empty, clipped scroll container.
func NewListPane(id rows.ListID, styles ui.Styles, grid ui.Grid, opts ListOptions) *ListPane {
	p := &ListPane{
		ID:     id,
		styles: styles,
		grid:   grid,
		opts:   opts,
		pinned: make(map[string]bool),
	}
	p.Container = dom.NewElement("div").
		WithClass("list-scroll").
		WithAttr("data-list", id.String())
	p.Container.Clip = true
	p.Container.AddEventListener(host.EventScroll, func(*host.Event) { p.layout() }, false)
	return p
}

// SetArea places the pane at a cell rectangle. The last column holds the
// scrollbar.
func (p *ListPane) SetArea(col, row, cols, lines int) {
	p.col, p.row, p.cols, p.lines = col, row, max(0, cols), max(0, lines)
	p.Relayout()
}

// Relayout recomputes pixel geometry after a resize or zoom change.
func (p *ListPane) Relayout() {
	p.Container.Bounds = p.grid.Rect(p.col, p.row, p.cols, p.lines)
	p.updateMetrics()
	p.layout()
}

// SetHidden hides the pane from hit testing.
func (p *ListPane) SetHidden(hidden bool) { p.Container.Hidden = hidden }

// RowHeight implements virtual.Measurer. Every row is one terminal line.
func (p *ListPane) RowHeight() float64 { return p.grid.LineHeight() }

// TopOffset implements virtual.Measurer. Rows start at the top of the
// scroll content.
func (p *ListPane) TopOffset() float64 { return 0 }

// Window returns the last painted window and the list's total.
func (p *ListPane) Window() (virtual.Window, int) { return p.paint.Window, p.paint.Total }

// Selected returns the ID of the selected row.
func (p *ListPane) Selected() string { return p.selected }

// Pinned reports whether the row with id is pinned.
func (p *ListPane) Pinned(id string) bool { return p.pinned[id] }

// TogglePin flips the pin of id and reports the new state.
func (p *ListPane) TogglePin(id string) bool {
	p.pinned[id] = !p.pinned[id]
	if !p.pinned[id] {
		delete(p.pinned, id)
		return false
	}
	return true
}

// Paint implements virtual.Body: it replaces the container's children with
// the painted rows.
func (p *ListPane) Paint(paint virtual.Paint) {
	p.paint = paint
	p.painted = true
	p.updateMetrics()

	if paint.Kind == virtual.PaintEmpty {
		empty := dom.NewElement("div").WithClass("empty")
		empty.Append(dom.NewText(p.opts.Empty))
		p.Container.ReplaceChildren(empty)
		p.layout()
		return
	}

	nodes := make([]*dom.Node, 0, len(paint.Rows))
	for i, rec := range paint.Rows {
		nodes = append(nodes, p.rowNode(paint.Window.Start+i, rec))
	}
	p.Container.ReplaceChildren(nodes...)
	p.layout()
}

func (p *ListPane) rowNode(index int, rec rows.Record) *dom.Node {
	row := dom.NewElement("div").
		WithClass("row", "clickable").
		WithAttr("data-row", strconv.Itoa(index)).
		WithAttr("data-id", rec.ID)
	row.Append(dom.NewText(rec.Title))
	if p.opts.OnSelect != nil {
		row.OnClick(func(*host.Event) {
			p.selected = rec.ID
			p.opts.OnSelect(rec)
		})
	}
	if p.opts.Action != "" {
		btn := dom.NewElement("button").WithAttr("data-action", strings.ToLower(p.opts.Action))
		btn.Append(dom.NewText(p.opts.Action))
		btn.OnClick(func(ev *host.Event) {
			// The row's own click handler must not also select.
			ev.StopPropagation()
			if p.opts.OnAction != nil {
				p.opts.OnAction(rec)
			}
		})
		row.Append(btn)
	}
	return row
}

func (p *ListPane) updateMetrics() {
	lineH := p.grid.LineHeight()
	p.Container.SetScrollMetrics(float64(p.paint.Total)*lineH, float64(p.lines)*lineH)
}

// rowCols holds the [start, end) cell columns of a row's parts.
type rowCols struct {
	title, detail, action [2]int
	badge                 [2]int
}

func (p *ListPane) rowColumns() rowCols {
	w := max(0, p.cols-1)
	var c rowCols
	end := w
	if p.opts.Action != "" {
		aw := lipgloss.Width(p.opts.Action) + 2
		c.action = [2]int{max(0, end-aw-1), max(0, end-1)}
		end = c.action[0]
	}
	start := markW
	if w >= narrowW {
		c.badge = [2]int{start, start + badgeW}
		start += badgeW
		c.detail = [2]int{max(start, end-detailW), end}
		end = c.detail[0]
	}
	c.title = [2]int{min(start, end), max(start, end)}
	return c
}

// layout positions the row nodes for the current scroll offset.
func (p *ListPane) layout() {
	area := p.Container.Bounds
	lineH := p.grid.LineHeight()
	top := p.Container.ScrollTop()
	cols := p.rowColumns()
	cellW := 0.0
	if p.cols > 0 {
		cellW = area.W / float64(p.cols)
	}
	span := func(y float64, c [2]int) geom.Rect {
		return geom.Rect{X: area.X + float64(c[0])*cellW, Y: y, W: float64(c[1]-c[0]) * cellW, H: lineH}
	}

	for _, n := range p.Container.Children() {
		if n.HasClass("empty") {
			n.Bounds = geom.Rect{X: area.X, Y: area.Y, W: area.W, H: lineH}
			for _, t := range n.Children() {
				t.Bounds = span(area.Y, [2]int{markW, markW + lipgloss.Width(t.Text)})
			}
			continue
		}
		index, err := strconv.Atoi(n.Attrs["data-row"])
		if err != nil {
			continue
		}
		y := area.Y + float64(index)*lineH - top
		n.Bounds = geom.Rect{X: area.X, Y: y, W: max(0, area.W-cellW), H: lineH}
		for _, c := range n.Children() {
			if c.IsElement() {
				c.Bounds = span(y, cols.action)
				for _, t := range c.Children() {
					t.Bounds = span(y, [2]int{cols.action[0] + 1, cols.action[1] - 1})
				}
				continue
			}
			tw := min(lipgloss.Width(c.Text), cols.title[1]-cols.title[0])
			c.Bounds = span(y, [2]int{cols.title[0], cols.title[0] + tw})
		}
	}
}

// View renders the visible lines of the list plus its scrollbar.
func (p *ListPane) View() string {
	if p.cols <= 0 || p.lines <= 0 {
		return ""
	}
	w := p.cols - 1
	lineH := p.grid.LineHeight()
	top := p.Container.ScrollTop()
	first := int(math.Floor(top / lineH))

	lines := make([]string, p.lines)
	for l := range lines {
		lines[l] = strings.Repeat(" ", w)
	}
	switch {
	case !p.painted:
	case p.paint.Kind == virtual.PaintEmpty:
		lines[0] = ui.Fit(strings.Repeat(" ", markW)+p.styles.ListDimmed.Render(p.opts.Empty), w)
	default:
		win := p.paint.Window
		for l := range lines {
			i := first + l
			if i < win.Start || i >= win.End {
				continue
			}
			lines[l] = p.renderRow(p.paint.Rows[i-win.Start], w)
		}
	}

	bar := components.RenderScrollbar(p.styles, p.lines, top, p.Container.ClientHeight(), p.Container.ScrollHeight())
	return lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(lines, "\n"), bar)
}

func (p *ListPane) renderRow(rec rows.Record, w int) string {
	cols := p.rowColumns()
	style := p.styles.ListItem
	if rec.ID == p.selected {
		style = p.styles.ListSelected
	}

	mark := strings.Repeat(" ", markW)
	if p.pinned[rec.ID] {
		mark = p.styles.Pinned.Render("★") + " "
	}

	var b strings.Builder
	b.WriteString(mark)
	if cols.badge[1] > cols.badge[0] {
		b.WriteString(ui.Fit(p.styles.BadgeStyle(rec.Badge).Render(rec.Badge), cols.badge[1]-cols.badge[0]))
	}
	b.WriteString(style.Render(ui.Fit(rec.Title, cols.title[1]-cols.title[0])))
	if cols.detail[1] > cols.detail[0] {
		b.WriteString(p.styles.Detail.Render(ui.Fit(rec.Detail, cols.detail[1]-cols.detail[0])))
	}
	if cols.action[1] > cols.action[0] {
		b.WriteString(p.styles.Button.Render(ui.Fit(" "+p.opts.Action, cols.action[1]-cols.action[0])))
	}
	return ui.Fit(b.String(), w)
}
