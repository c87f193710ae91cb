package engine

import (
	"fmt"
	"testing"
	"time"

	"github.com/Akashdeep-Patra/modpanel/internal/dom"
	"github.com/Akashdeep-Patra/modpanel/internal/geom"
	"github.com/Akashdeep-Patra/modpanel/internal/host"
	"github.com/Akashdeep-Patra/modpanel/internal/rows"
	"github.com/Akashdeep-Patra/modpanel/internal/virtual"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingBody struct{ paints []virtual.Paint }

func (b *countingBody) Paint(p virtual.Paint) { b.paints = append(b.paints, p) }

type panel struct {
	doc        *dom.Document
	containers [2]*dom.Node
	bodies     [2]*countingBody
	lists      []*virtual.List
	button     *dom.Node
	text       *dom.Node
	frames     *virtual.FrameQueue
	store      *rows.Store
	clicks     int
	now        time.Time
}

func records(n int) []rows.Record {
	out := make([]rows.Record, n)
	for i := range out {
		out[i] = rows.Record{ID: fmt.Sprintf("id-%d", i), Title: fmt.Sprintf("Item %d", i)}
	}
	return out
}

func newPanel(t *testing.T) *panel {
	t.Helper()
	p := &panel{
		doc:    dom.NewDocument(400, 300),
		frames: &virtual.FrameQueue{},
		store:  rows.NewStore(),
		now:    time.Unix(1_700_000_000, 0),
	}
	root := dom.NewElement("div").WithID("panel").WithBounds(geom.Rect{W: 400, H: 300})
	p.doc.Body().Append(root)
	p.doc.SetUIRoot(root)

	for i, id := range rows.AllLists {
		c := dom.NewElement("div").WithClass("list-scroll").
			WithBounds(geom.Rect{X: float64(i) * 200, Y: 40, W: 200, H: 200})
		c.SetScrollMetrics(100*16, 200)
		root.Append(c)
		p.containers[i] = c
		p.bodies[i] = &countingBody{}
		p.lists = append(p.lists, &virtual.List{ID: id, Container: c, Body: p.bodies[i]})
	}
	p.button = dom.NewElement("button").WithBounds(geom.Rect{X: 8, Y: 8, W: 40, H: 16})
	p.text = dom.NewText("Refresh").WithBounds(p.button.Bounds)
	p.button.Append(p.text)
	p.button.OnClick(func(*host.Event) { p.clicks++ })
	root.Append(p.button)

	p.store.Replace(rows.ListItems, records(100))
	p.store.Replace(rows.ListHistory, records(100))
	return p
}

func (p *panel) clock() time.Time { return p.now }

func (p *panel) settle() {
	for i := 0; i < 10 && p.frames.Pending() > 0; i++ {
		p.frames.Flush()
		p.now = p.now.Add(50 * time.Millisecond)
	}
}

func (p *panel) install(scale geom.ScaleProvider) *Engine {
	return Install(p.doc, p.store, p.lists, Options{
		Scale:  scale,
		Frames: p.frames,
		Now:    p.clock,
	})
}

func (p *panel) listenerCount() int {
	n := p.doc.ListenerCount()
	for _, c := range p.containers {
		n += c.ListenerCount()
	}
	return n
}

func TestInstallRendersBothLists(t *testing.T) {
	p := newPanel(t)
	e := p.install(nil)
	p.settle()

	for i, b := range p.bodies {
		require.NotEmpty(t, b.paints, "list %d", i)
		assert.Equal(t, virtual.PaintWindow, b.paints[len(b.paints)-1].Kind)
	}
	// Two document handlers, one wheel and one scroll listener per list.
	assert.Equal(t, 6, p.listenerCount())
	assert.False(t, e.Detached())
}

func TestWheelScrollRerenders(t *testing.T) {
	p := newPanel(t)
	p.install(nil)
	p.settle()
	before := len(p.bodies[0].paints)

	// Each notch is capped at 0.45 of the 200px client height.
	for i := 0; i < 5; i++ {
		ev := &host.Event{Type: host.EventWheel, Target: p.containers[0], DeltaY: 120, Trusted: true,
			TimeStamp: p.now.Add(time.Duration(i) * 100 * time.Millisecond)}
		assert.False(t, p.doc.Dispatch(ev))
	}
	assert.Equal(t, 450.0, p.containers[0].ScrollTop())
	assert.Zero(t, p.containers[1].ScrollTop())

	p.settle()
	assert.Greater(t, len(p.bodies[0].paints), before)
}

func TestDetachTwiceLeavesNoEffects(t *testing.T) {
	p := newPanel(t)
	e := p.install(geom.StaticScale{Input: 2})
	p.settle()

	e.Detach()
	e.Detach()
	assert.True(t, e.Detached())
	assert.Zero(t, p.listenerCount())

	painted := [2]int{len(p.bodies[0].paints), len(p.bodies[1].paints)}

	wheelEv := &host.Event{Type: host.EventWheel, Target: p.containers[0], DeltaY: 120, Trusted: true}
	assert.True(t, p.doc.Dispatch(wheelEv))
	assert.Zero(t, p.containers[0].ScrollTop())

	up := &host.Event{Type: host.EventMouseUp, Target: p.text, X: 12, Y: 12, Trusted: true}
	assert.True(t, p.doc.Dispatch(up))
	click := &host.Event{Type: host.EventClick, Target: p.doc.Body(), X: 6, Y: 6, Trusted: true}
	assert.True(t, p.doc.Dispatch(click))
	assert.Zero(t, p.clicks)

	p.store.Replace(rows.ListItems, records(5))
	p.containers[1].SetScrollTop(400)
	p.settle()
	assert.Equal(t, painted, [2]int{len(p.bodies[0].paints), len(p.bodies[1].paints)})
	assert.Zero(t, e.Corrector.Stats())
}

func TestNilEngineDetach(t *testing.T) {
	var e *Engine
	assert.NotPanics(t, e.Detach)
}
