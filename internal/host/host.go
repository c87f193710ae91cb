// Package host describes the environment the virtualizer and the input
// correction engines run inside.
//
// Only EventSource and ScrollContainer are required. Every other capability
// is optional: callers probe for it with a type assertion at the moment they
// need it and skip that contribution when the host does not provide it.
package host

import "github.com/Akashdeep-Patra/modpanel/internal/geom"

// Node is anything a hit test can return. Text nodes report false from
// IsElement and are treated as unresolvable targets.
type Node interface {
	IsElement() bool
}

// Element is a node that can be targeted by a click.
type Element interface {
	Node
	TagName() string
}

// Matcher is implemented by elements that support selector matching.
type Matcher interface {
	Matches(selector string) bool
}

// Ancestry is implemented by elements that can look up their nearest
// ancestor-or-self matching a selector. Closest returns nil when none match.
type Ancestry interface {
	Closest(selector string) Element
}

// Container is implemented by elements that can report descendants.
type Container interface {
	Contains(n Node) bool
}

// Bounded is implemented by elements with a known bounding box.
type Bounded interface {
	BoundingRect() (geom.Rect, bool)
}

// HitTester performs point-based element lookup.
type HitTester interface {
	ElementFromPoint(x, y float64) Node
}

// RootLocator returns the root element of the panel UI, or nil.
type RootLocator interface {
	UIRoot() Element
}

// Viewport reports the size of the visible area in render pixels.
type Viewport interface {
	ViewportSize() (width, height float64)
}

// Dispatcher delivers a (synthetic) event through the host's normal
// capture/bubble dispatch.
type Dispatcher interface {
	DispatchEvent(ev *Event)
}

// Listener receives events.
type Listener func(ev *Event)

// EventSource registers listeners. The returned func removes the listener
// and may be called any number of times.
type EventSource interface {
	AddEventListener(typ EventType, fn Listener, capture bool) (remove func())
}

// ScrollContainer is a scrollable box.
type ScrollContainer interface {
	ScrollTop() float64
	SetScrollTop(v float64)
	ScrollHeight() float64
	ClientHeight() float64
}
