package app

import (
	"time"

	"github.com/Akashdeep-Patra/modpanel/internal/common"
	"github.com/Akashdeep-Patra/modpanel/internal/dom"
	"github.com/Akashdeep-Patra/modpanel/internal/geom"
	"github.com/Akashdeep-Patra/modpanel/internal/host"
	"github.com/Akashdeep-Patra/modpanel/internal/ui/components"
	tea "github.com/charmbracelet/bubbletea"
)

// frameMsg is one tick of the frame clock.
type frameMsg time.Time

// scheduleFrame starts a frame tick when frames are waiting and none is in
// flight.
func (m *Model) scheduleFrame() tea.Cmd {
	if m.ticking || m.frames.Pending() == 0 {
		return nil
	}
	m.ticking = true
	interval := m.cfg.Virtual.FrameInterval
	if interval <= 0 {
		interval = 16 * time.Millisecond
	}
	return tea.Tick(interval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// renderTabs renders the tab bar and moves the tab nodes over the rendered
// labels so pointer input hits what is on screen.
func (m *Model) renderTabs() string {
	infos := make([]components.TabInfo, len(common.AllSections))
	for i, s := range common.AllSections {
		_, total := m.panes[s.List].Window()
		infos[i] = components.TabInfo{Name: s.Name, Icon: s.Icon, Count: total, Active: s.List == m.active}
	}
	bar := components.RenderTabs(m.styles, infos, m.refreshBtn.Children()[0].Text, m.width)

	m.tabBar.Bounds = m.grid.Rect(0, 0, m.width, 1)
	for i, span := range bar.Tabs {
		m.placeSpan(m.tabs[i], span)
	}
	m.placeSpan(m.refreshBtn, bar.Button)
	return bar.View
}

func (m *Model) placeSpan(n *dom.Node, span components.Span) {
	n.Hidden = span.Empty()
	n.Bounds = m.grid.Rect(span.Start, 0, span.End-span.Start, 1)
	for _, t := range n.Children() {
		t.Bounds = m.grid.Rect(span.LabelStart, 0, span.LabelEnd-span.LabelStart, 1)
	}
}

// reported maps a terminal cell to the pointer coordinates the host
// reports: the cell's pixel centre divided by the input scale.
func (m *Model) reported(col, row int) geom.Point {
	c := m.grid.Center(col, row)
	s := geom.InputScale(m.scale)
	return geom.Point{X: c.X / s, Y: c.Y / s}
}

// hit is the host's raw pointer target, which may be a text node.
func (m *Model) hit(p geom.Point) host.Node {
	if n := m.doc.NodeFromPoint(p.X, p.Y); n != nil {
		return n
	}
	return nil
}

func modifiers(msg tea.MouseMsg) host.Modifiers {
	return host.Modifiers{Alt: msg.Alt, Ctrl: msg.Ctrl, Shift: msg.Shift}
}

// handleMouse translates terminal mouse input into host events on the
// document. A left press followed by a release yields mouseup then click,
// both at the release point.
func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.showHelp {
		var cmd tea.Cmd
		m.help, cmd = m.help.Update(msg)
		return cmd
	}

	at := m.reported(msg.X, msg.Y)
	switch {
	case tea.MouseEvent(msg).IsWheel():
		m.wheel(msg, at)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.press = &at
	case msg.Action == tea.MouseActionRelease:
		if m.press == nil {
			return nil
		}
		m.press = nil
		m.release(msg, at)
	}
	return nil
}

func (m *Model) release(msg tea.MouseMsg, at geom.Point) {
	now := m.now()
	m.doc.Dispatch(&host.Event{
		Type:      host.EventMouseUp,
		Target:    m.hit(at),
		X:         at.X,
		Y:         at.Y,
		Modifiers: modifiers(msg),
		Trusted:   true,
		TimeStamp: now,
	})
	m.doc.Dispatch(&host.Event{
		Type:      host.EventClick,
		Target:    m.hit(at),
		X:         at.X,
		Y:         at.Y,
		Modifiers: modifiers(msg),
		Trusted:   true,
		TimeStamp: now,
	})
}

// wheel delivers one notch as a small pixel delta, the way hosts with
// broken wheel deltas report it. When nothing prevents the event, the
// nearest list scrolls by the raw delta.
func (m *Model) wheel(msg tea.MouseMsg, at geom.Point) {
	var dx, dy float64
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		dy = -m.notch
	case tea.MouseButtonWheelDown:
		dy = m.notch
	case tea.MouseButtonWheelLeft:
		dx = -m.notch
	case tea.MouseButtonWheelRight:
		dx = m.notch
	}

	target := m.hit(at)
	if target != nil && m.tabBar.Contains(target) {
		switch {
		case dy < 0:
			m.cycleSection(-1)
		case dy > 0:
			m.cycleSection(1)
		}
		return
	}

	ev := &host.Event{
		Type:      host.EventWheel,
		Target:    target,
		X:         at.X,
		Y:         at.Y,
		Modifiers: modifiers(msg),
		DeltaX:    dx,
		DeltaY:    dy,
		DeltaMode: host.DeltaPixel,
		Trusted:   true,
		TimeStamp: m.now(),
	}
	if !m.doc.Dispatch(ev) || dy == 0 {
		return
	}
	n, ok := target.(*dom.Node)
	if !ok {
		return
	}
	if c, ok := n.Closest(".list-scroll").(*dom.Node); ok {
		c.SetScrollTop(c.ScrollTop() + dy)
	}
}
