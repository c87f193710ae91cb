package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/Akashdeep-Patra/modpanel/internal/backend"
	"github.com/Akashdeep-Patra/modpanel/internal/click"
	"github.com/Akashdeep-Patra/modpanel/internal/common"
	"github.com/Akashdeep-Patra/modpanel/internal/config"
	"github.com/Akashdeep-Patra/modpanel/internal/dom"
	"github.com/Akashdeep-Patra/modpanel/internal/engine"
	"github.com/Akashdeep-Patra/modpanel/internal/geom"
	"github.com/Akashdeep-Patra/modpanel/internal/host"
	"github.com/Akashdeep-Patra/modpanel/internal/rows"
	"github.com/Akashdeep-Patra/modpanel/internal/ui"
	"github.com/Akashdeep-Patra/modpanel/internal/ui/components"
	"github.com/Akashdeep-Patra/modpanel/internal/ui/views"
	"github.com/Akashdeep-Patra/modpanel/internal/virtual"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	// Screen rows above the lists: the tab bar and the search line.
	listRow = 2
	// chromeRows is every screen row that is not list content.
	chromeRows = 3

	minZoom  = 0.5
	maxZoom  = 3.0
	zoomStep = 0.25

	fetchTimeout = 10 * time.Second
	infoTTL      = 3 * time.Second
	errorTTL     = 5 * time.Second
)

// Deps is what the panel needs from its caller.
type Deps struct {
	Service backend.Service
	Config  *config.Config
	Logger  *log.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

// Model is the top-level Bubbletea model. It owns the host document the
// engines are installed on and translates terminal input into host events.
type Model struct {
	svc    backend.Service
	cfg    *config.Config
	log    *log.Logger
	now    func() time.Time
	styles ui.Styles
	keys   KeyMap

	width, height int

	scale *geom.Scale
	grid  ui.Grid
	doc   *dom.Document
	root  *dom.Node

	tabBar     *dom.Node
	tabs       []*dom.Node
	refreshBtn *dom.Node

	store   *rows.Store
	panes   map[rows.ListID]*views.ListPane
	engine  *engine.Engine
	frames  *virtual.FrameQueue
	ticking bool

	active rows.ListID
	search textinput.Model
	query  string

	showHelp bool
	help     viewport.Model

	// press is the reported point of an unreleased left press.
	press *geom.Point
	notch float64

	totals    []components.Total
	statusMsg string
	statusErr bool
	statusExp time.Time

	// pending collects commands produced by host event handlers.
	pending []tea.Cmd
}

// New builds the panel and installs the engines on its document.
func New(d Deps) *Model {
	cfg := d.Config
	if cfg == nil {
		cfg = &config.Config{}
	}
	logger := d.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	now := d.Now
	if now == nil {
		now = time.Now
	}

	m := &Model{
		svc:    d.Service,
		cfg:    cfg,
		log:    logger,
		now:    now,
		styles: ui.NewStyles(ui.ThemeByName(cfg.Theme)),
		keys:   DefaultKeyMap(),
		scale:  geom.NewScale(cfg.UI.Zoom, cfg.UI.InputScale),
		doc:    dom.NewDocument(0, 0),
		store:  rows.NewStore(),
		panes:  make(map[rows.ListID]*views.ListPane),
		frames: &virtual.FrameQueue{},
		active: common.AllSections[0].List,
		notch:  cfg.UI.WheelNotchPx,
	}
	if !(m.notch > 0) {
		m.notch = 4
	}
	m.grid = ui.Grid{CellW: cfg.UI.CellWidthPx, CellH: cfg.UI.CellHeightPx, Scale: m.scale}

	ti := textinput.New()
	ti.Placeholder = "search items and history"
	ti.Prompt = " / "
	ti.CharLimit = 64
	m.search = ti

	m.buildTree()

	lists := make([]*virtual.List, 0, len(common.AllSections))
	for _, s := range common.AllSections {
		id := s.List
		lists = append(lists, &virtual.List{
			ID:        id,
			Container: m.panes[id].Container,
			Body:      m.panes[id],
			Visible:   func() bool { return m.active == id },
			Filter:    m.filter,
		})
	}
	m.engine = engine.Install(m.doc, m.store, lists, engine.Options{
		Scale:  m.scale,
		Frames: m.frames,
		Now:    now,
		Logger: logger,
		Virtual: virtual.Options{
			MinRows:       cfg.Virtual.MinRows,
			Overscan:      cfg.Virtual.Overscan,
			MinSpacing:    cfg.Virtual.MinSpacing,
			BaseRowHeight: cfg.UI.CellHeightPx,
		},
		Click: click.Options{
			SuppressWindow: cfg.Click.SuppressWindow,
			SuppressRadius: cfg.Click.SuppressRadiusPx,
			ScaleTolerance: cfg.Click.ScaleTolerance,
		},
	})
	return m
}

// buildTree creates the panel root, the tab bar nodes and one list pane per
// section.
func (m *Model) buildTree() {
	m.root = dom.NewElement("div").WithID("panel")
	m.doc.Body().Append(m.root)
	m.doc.SetUIRoot(m.root)

	m.tabBar = dom.NewElement("div").WithClass("tab-bar")
	for _, s := range common.AllSections {
		id := s.List
		tab := dom.NewElement("button").WithClass("tab").WithAttr("data-section", id.String())
		tab.Append(dom.NewText(s.Name))
		tab.OnClick(func(*host.Event) { m.switchTo(id) })
		m.tabBar.Append(tab)
		m.tabs = append(m.tabs, tab)
	}
	m.refreshBtn = dom.NewElement("button").WithAttr("data-action", "refresh")
	m.refreshBtn.Append(dom.NewText("Refresh"))
	m.refreshBtn.OnClick(func(*host.Event) { m.pending = append(m.pending, m.fetch()) })
	m.tabBar.Append(m.refreshBtn)
	m.root.Append(m.tabBar)

	for _, s := range common.AllSections {
		id := s.List
		opts := views.ListOptions{
			Empty:    s.Empty,
			Action:   s.Action,
			OnSelect: func(r rows.Record) { m.setInfo(selectionText(r)) },
		}
		if s.Action != "" {
			opts.OnAction = func(r rows.Record) { m.togglePin(id, r) }
		}
		pane := views.NewListPane(id, m.styles, m.grid, opts)
		pane.SetHidden(id != m.active)
		m.panes[id] = pane
		m.root.Append(pane.Container)
	}
}

func selectionText(r rows.Record) string {
	if r.Detail == "" {
		return r.Title
	}
	return r.Title + " · " + r.Detail
}

func (m *Model) togglePin(id rows.ListID, r rows.Record) {
	if m.panes[id].TogglePin(r.ID) {
		m.setInfo("Pinned " + r.Title)
		return
	}
	m.setInfo("Unpinned " + r.Title)
}

func (m *Model) filter(recs []rows.Record) []rows.Record {
	return rows.Rank(recs, m.query)
}

// Close detaches the engines from the document.
func (m *Model) Close() { m.engine.Detach() }

// Init loads the first snapshot and starts the frame clock.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.fetch(), m.scheduleFrame())
}

// fetch loads a snapshot in the background.
func (m *Model) fetch() tea.Cmd {
	svc := m.svc
	if svc == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		snap, err := svc.Snapshot(ctx)
		return common.SnapshotMsg{Snapshot: snap, Err: err}
	}
}

// Update processes messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.engine.Virtualizer.Invalidate()

	case tea.MouseMsg:
		cmds = append(cmds, m.handleMouse(msg))

	case tea.KeyMsg:
		cmds = append(cmds, m.handleKey(msg))

	case frameMsg:
		m.ticking = false
		m.frames.Flush()

	case common.RefreshMsg:
		if inv, ok := m.svc.(interface{ Invalidate() }); ok && msg.Stale {
			inv.Invalidate()
		}
		cmds = append(cmds, m.fetch())

	case common.SnapshotMsg:
		m.applySnapshot(msg)

	case common.ErrMsg:
		m.setError(msg.Err)

	case common.InfoMsg:
		m.setInfo(msg.Text)

	case common.SwitchSectionMsg:
		m.switchTo(msg.List)

	case common.ToggleHelpMsg:
		m.toggleHelp()

	default:
		// Cursor blink and other textinput internals.
		if m.search.Focused() {
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	cmds = append(cmds, m.pending...)
	m.pending = nil
	cmds = append(cmds, m.scheduleFrame())
	return m, tea.Batch(cmds...)
}

func (m *Model) applySnapshot(msg common.SnapshotMsg) {
	if msg.Err != nil {
		m.setError(fmt.Errorf("load %s: %w", m.source(), msg.Err))
		return
	}
	snap := msg.Snapshot
	if snap == nil {
		snap = &backend.Snapshot{}
	}
	snap.Apply(m.store)
	m.totals = m.totals[:0]
	for _, r := range snap.Totals {
		m.totals = append(m.totals, components.Total{Name: r.Name, Value: r.Value})
	}
	m.log.Debug("snapshot applied", "items", len(snap.Items), "history", len(snap.History))
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.search.Focused() {
		switch {
		case key.Matches(msg, m.keys.Back):
			m.search.Blur()
			m.search.SetValue("")
			m.setQuery("")
		case key.Matches(msg, m.keys.Enter):
			m.search.Blur()
		default:
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			m.setQuery(m.search.Value())
			return cmd
		}
		return nil
	}

	if m.showHelp {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return tea.Quit
		case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Help):
			m.showHelp = false
			return nil
		}
		var cmd tea.Cmd
		m.help, cmd = m.help.Update(msg)
		return cmd
	}

	pane := m.activePane()
	lineH := m.grid.LineHeight()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.toggleHelp()
	case key.Matches(msg, m.keys.Refresh):
		return m.fetch()
	case key.Matches(msg, m.keys.NextTab):
		m.cycleSection(1)
	case key.Matches(msg, m.keys.PrevTab):
		m.cycleSection(-1)
	case key.Matches(msg, m.keys.TabItems):
		m.switchTo(rows.ListItems)
	case key.Matches(msg, m.keys.TabHistory):
		m.switchTo(rows.ListHistory)
	case key.Matches(msg, m.keys.Search):
		return m.search.Focus()
	case key.Matches(msg, m.keys.Back):
		if m.query != "" {
			m.search.SetValue("")
			m.setQuery("")
		}
	case key.Matches(msg, m.keys.Up):
		scrollBy(pane, -lineH)
	case key.Matches(msg, m.keys.Down):
		scrollBy(pane, lineH)
	case key.Matches(msg, m.keys.PageUp):
		scrollBy(pane, -pane.Container.ClientHeight())
	case key.Matches(msg, m.keys.PageDown):
		scrollBy(pane, pane.Container.ClientHeight())
	case key.Matches(msg, m.keys.Home):
		pane.Container.SetScrollTop(0)
	case key.Matches(msg, m.keys.End):
		pane.Container.SetScrollTop(pane.Container.ScrollHeight())
	case key.Matches(msg, m.keys.ZoomIn):
		m.setZoom(geom.Zoom(m.scale) + zoomStep)
	case key.Matches(msg, m.keys.ZoomOut):
		m.setZoom(geom.Zoom(m.scale) - zoomStep)
	case key.Matches(msg, m.keys.ZoomReset):
		m.setZoom(1)
	}
	return nil
}

// scrollBy writes scrollTop through the container, which fires the same
// scroll event a wheel scroll does.
func scrollBy(p *views.ListPane, px float64) {
	p.Container.SetScrollTop(p.Container.ScrollTop() + px)
}

func (m *Model) activePane() *views.ListPane { return m.panes[m.active] }

func (m *Model) setQuery(q string) {
	if q == m.query {
		return
	}
	m.query = q
	for _, s := range common.AllSections {
		m.panes[s.List].Container.SetScrollTop(0)
		m.engine.Virtualizer.Reload(s.List)
	}
}

func (m *Model) switchTo(id rows.ListID) {
	if _, ok := m.panes[id]; !ok || id == m.active {
		return
	}
	m.active = id
	for lid, p := range m.panes {
		p.SetHidden(lid != id)
	}
	// The newly visible list may hold a stale window.
	m.engine.Virtualizer.Resync()
}

func (m *Model) cycleSection(delta int) {
	n := len(common.AllSections)
	cur := 0
	for i, s := range common.AllSections {
		if s.List == m.active {
			cur = i
			break
		}
	}
	m.switchTo(common.AllSections[(cur+delta+n)%n].List)
}

// setZoom applies a new UI zoom, keeping each list's first visible row in
// place.
func (m *Model) setZoom(z float64) {
	z = geom.Clamp(z, minZoom, maxZoom)
	old := geom.Zoom(m.scale)
	if z == old {
		return
	}
	tops := make(map[rows.ListID]float64, len(m.panes))
	for id, p := range m.panes {
		tops[id] = p.Container.ScrollTop()
	}
	m.scale.SetZoom(z)
	m.layout()
	for id, p := range m.panes {
		p.Container.SetScrollTop(tops[id] * z / old)
	}
	m.engine.Virtualizer.Invalidate()
	m.setInfo(fmt.Sprintf("zoom %.2f", z))
}

func (m *Model) toggleHelp() {
	m.showHelp = !m.showHelp
	if !m.showHelp {
		return
	}
	w := max(20, min(m.width-10, 80))
	m.help = viewport.New(w, max(1, m.height-6))
	m.help.SetContent(components.RenderHelp(m.styles, "Keyboard Shortcuts", components.GlobalHelpEntries(), w))
}

// layout recomputes the pixel geometry of the whole tree for the current
// screen size and zoom.
func (m *Model) layout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	w, h := m.grid.Size(m.width, m.height)
	m.doc.SetViewportSize(w, h)
	m.root.Bounds = geom.Rect{W: w, H: h}
	m.renderTabs()
	for _, p := range m.panes {
		p.SetArea(0, listRow, m.width, m.listLines())
	}
}

func (m *Model) listLines() int { return max(1, m.height-chromeRows) }

func (m *Model) source() string {
	if m.svc == nil {
		return "none"
	}
	return m.svc.Source()
}

func (m *Model) setInfo(text string) {
	m.statusMsg = text
	m.statusErr = false
	m.statusExp = m.now().Add(infoTTL)
}

func (m *Model) setError(err error) {
	m.log.Error("panel error", "err", err)
	m.statusMsg = err.Error()
	m.statusErr = true
	m.statusExp = m.now().Add(errorTTL)
}

// View renders the entire UI.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.showHelp {
		return components.FrameHelp(m.styles, m.help.View(), m.width, m.height)
	}

	tabBar := m.renderTabs()

	var searchLine string
	if m.search.Focused() || m.query != "" {
		searchLine = m.styles.Search.Render(ui.Fit(m.search.View(), m.width))
	} else {
		searchLine = m.styles.Muted.Render(ui.Fit(" / search   ? help   +/- zoom", m.width))
	}

	content := lipgloss.NewStyle().Width(m.width).Height(m.listLines()).
		Render(m.activePane().View())
	statusBar := components.RenderStatusBar(m.styles, m.statusData(), m.width)

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, searchLine, content, statusBar)
}

func (m *Model) statusData() components.StatusBarData {
	win, total := m.activePane().Window()
	stats := m.engine.Corrector.Stats()
	data := components.StatusBarData{
		Source:     m.source(),
		Totals:     m.totals,
		Zoom:       geom.Zoom(m.scale),
		InputScale: geom.InputScale(m.scale),
		Rows:       total,
		Fixed:      stats.Fixed,
		Corrected:  stats.Corrected,
		Suppressed: stats.Suppressed,
	}
	if total > 0 {
		data.Start, data.End = win.Start+1, win.End
	}
	if m.statusMsg != "" && m.now().Before(m.statusExp) {
		data.Message = m.statusMsg
		data.IsError = m.statusErr
	}
	return data
}
