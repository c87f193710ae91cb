package dom

import (
	"testing"

	"github.com/Akashdeep-Patra/modpanel/internal/geom"
	"github.com/Akashdeep-Patra/modpanel/internal/host"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatches(t *testing.T) {
	n := NewElement("button").WithID("save").WithClass("primary", "clickable").WithAttr("data-action", "save")

	tests := []struct {
		sel  string
		want bool
	}{
		{"button", true},
		{"BUTTON", true},
		{"*", true},
		{"#save", true},
		{"button#save.primary", true},
		{".primary.clickable", true},
		{"[data-action]", true},
		{"[data-action=save]", true},
		{`[data-action="save"]`, true},
		{"[data-action=load]", false},
		{"a, .clickable", true},
		{"a, input", false},
		{".secondary", false},
		{"#load", false},
		{"div > button", false},
		{"", false},
		{"[", false},
	}
	for _, tt := range tests {
		t.Run(tt.sel, func(t *testing.T) {
			assert.Equal(t, tt.want, n.Matches(tt.sel))
		})
	}

	assert.False(t, NewText("x").Matches("*"))
}

func TestClosestAndContains(t *testing.T) {
	row := NewElement("div").WithAttr("data-row", "1")
	btn := NewElement("button")
	txt := NewText("Go")
	row.Append(btn)
	btn.Append(txt)

	assert.Same(t, btn, txt.Closest("button"))
	assert.Same(t, row, txt.Closest("[data-row]"))
	assert.Same(t, btn, btn.Closest("button"))
	assert.Nil(t, btn.Closest("a"))

	assert.True(t, row.Contains(txt))
	assert.True(t, row.Contains(row))
	assert.False(t, btn.Contains(row))
	assert.False(t, row.Contains(nil))

	btn.Remove()
	assert.False(t, row.Contains(txt))
	assert.Empty(t, row.Children())
}

func TestHitTesting(t *testing.T) {
	doc := NewDocument(100, 100)
	panel := NewElement("div").WithBounds(geom.Rect{X: 10, Y: 10, W: 80, H: 80})
	under := NewElement("div").WithBounds(geom.Rect{X: 20, Y: 20, W: 20, H: 20})
	over := NewElement("div").WithBounds(geom.Rect{X: 30, Y: 30, W: 20, H: 20})
	label := NewText("label").WithBounds(geom.Rect{X: 30, Y: 30, W: 10, H: 10})
	over.Append(label)
	panel.Append(under, over)
	doc.Body().Append(panel)

	assert.Same(t, over, doc.ElementFromPoint(35, 35), "later siblings are on top")
	assert.Same(t, label, doc.NodeFromPoint(35, 35))
	assert.Same(t, under, doc.ElementFromPoint(25, 25))
	assert.Same(t, panel, doc.ElementFromPoint(80, 80))
	assert.Same(t, doc.Body(), doc.ElementFromPoint(5, 5))
	assert.Nil(t, doc.ElementFromPoint(150, 5))

	over.Hidden = true
	assert.Same(t, under, doc.ElementFromPoint(35, 35))

	// Clipped containers hide overflowing children.
	over.Hidden = false
	spill := NewElement("span").WithBounds(geom.Rect{X: 60, Y: 60, W: 10, H: 10})
	over.Append(spill)
	assert.Same(t, spill, doc.ElementFromPoint(65, 65))
	over.Clip = true
	assert.Same(t, panel, doc.ElementFromPoint(65, 65))
}

func TestDispatchOrder(t *testing.T) {
	doc := NewDocument(100, 100)
	outer := NewElement("div")
	inner := NewElement("button")
	outer.Append(inner)
	doc.Body().Append(outer)

	var order []string
	record := func(name string) host.Listener {
		return func(*host.Event) { order = append(order, name) }
	}
	doc.AddEventListener(host.EventClick, record("doc-bubble"), false)
	doc.AddEventListener(host.EventClick, record("doc-capture"), true)
	outer.AddEventListener(host.EventClick, record("outer-bubble"), false)
	outer.AddEventListener(host.EventClick, record("outer-capture"), true)
	inner.AddEventListener(host.EventClick, record("inner-bubble"), false)
	inner.AddEventListener(host.EventClick, record("inner-capture"), true)
	inner.AddEventListener(host.EventWheel, record("inner-wheel"), false)

	assert.True(t, doc.Dispatch(&host.Event{Type: host.EventClick, Target: inner}))
	assert.Equal(t, []string{
		"doc-capture", "outer-capture", "inner-capture",
		"inner-bubble", "outer-bubble", "doc-bubble",
	}, order)
}

func TestDispatchStopsAndPrevents(t *testing.T) {
	doc := NewDocument(100, 100)
	btn := NewElement("button")
	doc.Body().Append(btn)

	reached := false
	btn.OnClick(func(*host.Event) { reached = true })
	remove := doc.AddEventListener(host.EventClick, func(ev *host.Event) { ev.Cancel() }, true)

	assert.False(t, doc.Dispatch(&host.Event{Type: host.EventClick, Target: btn}))
	assert.False(t, reached)

	remove()
	remove()
	assert.Zero(t, doc.ListenerCount())
	assert.True(t, doc.Dispatch(&host.Event{Type: host.EventClick, Target: btn}))
	assert.True(t, reached)
}

func TestListenerRemovedDuringDispatch(t *testing.T) {
	doc := NewDocument(10, 10)
	calls := 0
	var removeSecond func()
	doc.AddEventListener(host.EventClick, func(*host.Event) { removeSecond() }, true)
	removeSecond = doc.AddEventListener(host.EventClick, func(*host.Event) { calls++ }, true)

	doc.Dispatch(&host.Event{Type: host.EventClick})
	assert.Zero(t, calls)
	assert.Equal(t, 1, doc.ListenerCount())
}

func TestScroll(t *testing.T) {
	c := NewElement("div").WithBounds(geom.Rect{W: 100, H: 300})
	assert.Equal(t, 300.0, c.ScrollHeight())
	assert.Equal(t, 300.0, c.ClientHeight())

	fired := 0
	c.AddEventListener(host.EventScroll, func(*host.Event) { fired++ }, false)
	c.SetScrollMetrics(1000, 300)

	c.SetScrollTop(250)
	assert.Equal(t, 250.0, c.ScrollTop())
	c.SetScrollTop(250)
	assert.Equal(t, 1, fired, "unchanged offsets do not fire")

	c.SetScrollTop(5000)
	assert.Equal(t, 700.0, c.ScrollTop())
	c.SetScrollTop(-3)
	assert.Zero(t, c.ScrollTop())
	assert.Equal(t, 3, fired)

	c.SetScrollTop(600)
	c.SetScrollMetrics(500, 300)
	assert.Equal(t, 200.0, c.ScrollTop())
	assert.Equal(t, 4, fired)

	c.SetScrollMetrics(100, 300)
	assert.Equal(t, 300.0, c.ScrollHeight())
}

func TestReplaceChildren(t *testing.T) {
	parent := NewElement("div")
	a, b, c := NewElement("p"), NewElement("p"), NewElement("p")
	parent.Append(a, b)
	parent.ReplaceChildren(c)

	require.Len(t, parent.Children(), 1)
	assert.Same(t, c, parent.Children()[0])
	assert.Nil(t, a.Parent())
	assert.Same(t, parent, c.Parent())
}
