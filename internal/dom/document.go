package dom

import (
	"github.com/Akashdeep-Patra/modpanel/internal/geom"
	"github.com/Akashdeep-Patra/modpanel/internal/host"
)

// Document owns the node tree and implements the host capabilities the
// input-correction engines probe for.
type Document struct {
	html   *Node
	body   *Node
	uiRoot *Node

	width, height float64

	listeners listenerSet
}

// Compile-time checks.
var (
	_ host.EventSource = (*Document)(nil)
	_ host.HitTester   = (*Document)(nil)
	_ host.RootLocator = (*Document)(nil)
	_ host.Viewport    = (*Document)(nil)
	_ host.Dispatcher  = (*Document)(nil)
)

// NewDocument creates an HTML > BODY document with the given viewport.
func NewDocument(width, height float64) *Document {
	d := &Document{
		html: NewElement("html"),
		body: NewElement("body"),
	}
	d.html.Append(d.body)
	d.SetViewportSize(width, height)
	return d
}

// HTML returns the top-level element.
func (d *Document) HTML() *Node { return d.html }

// Body returns the body element.
func (d *Document) Body() *Node { return d.body }

// SetUIRoot marks the panel root. Corrected clicks must land inside it.
func (d *Document) SetUIRoot(n *Node) { d.uiRoot = n }

// UIRoot returns the panel root, or nil when unset.
func (d *Document) UIRoot() host.Element {
	if d.uiRoot == nil {
		return nil
	}
	return d.uiRoot
}

// SetViewportSize resizes the viewport; HTML and BODY span it.
func (d *Document) SetViewportSize(width, height float64) {
	d.width, d.height = max(0, width), max(0, height)
	r := geom.Rect{W: d.width, H: d.height}
	d.html.Bounds = r
	d.body.Bounds = r
}

// ViewportSize returns the viewport size in render pixels.
func (d *Document) ViewportSize() (float64, float64) { return d.width, d.height }

// ElementFromPoint returns the top-most visible element under (x, y), or
// nil outside the viewport. Text nodes are never returned.
func (d *Document) ElementFromPoint(x, y float64) host.Node {
	if n := d.nodeFromPoint(x, y, false); n != nil {
		return n
	}
	return nil
}

// NodeFromPoint is ElementFromPoint including text nodes. The terminal host
// uses it to resolve raw pointer targets, which may land on text.
func (d *Document) NodeFromPoint(x, y float64) *Node {
	return d.nodeFromPoint(x, y, true)
}

func (d *Document) nodeFromPoint(x, y float64, withText bool) *Node {
	p := geom.Point{X: x, Y: y}
	if !d.html.Bounds.Contains(p) {
		return nil
	}
	return d.html.hit(p, withText)
}

// AddEventListener registers a document-level listener. Capture listeners
// run before any node listener; bubble listeners run last.
func (d *Document) AddEventListener(typ host.EventType, fn host.Listener, capture bool) func() {
	return d.listeners.add(typ, fn, capture)
}

// ListenerCount returns the number of document-level listeners.
func (d *Document) ListenerCount() int { return d.listeners.len() }

// DispatchEvent implements host.Dispatcher.
func (d *Document) DispatchEvent(ev *host.Event) { d.Dispatch(ev) }

// Dispatch delivers ev through the capture phase (document, then ancestors
// top-down), the target, and the bubble phase (ancestors bottom-up, then
// document). It reports whether the default action may proceed.
func (d *Document) Dispatch(ev *host.Event) bool {
	var path []*Node
	if t, ok := ev.Target.(*Node); ok && t != nil {
		path = t.path()
	}

	d.listeners.call(ev, true)
	for i := 0; i < len(path)-1 && !ev.PropagationStopped(); i++ {
		path[i].listeners.call(ev, true)
	}
	if len(path) > 0 && !ev.PropagationStopped() {
		target := path[len(path)-1]
		target.listeners.call(ev, true)
		target.listeners.call(ev, false)
	}
	for i := len(path) - 2; i >= 0 && !ev.PropagationStopped(); i-- {
		path[i].listeners.call(ev, false)
	}
	if !ev.PropagationStopped() {
		d.listeners.call(ev, false)
	}
	return !ev.DefaultPrevented()
}
