// Package dom is a small retained node tree used as the panel's host
// document: nodes carry tags, classes, attributes and render-pixel bounds,
// support selector matching, point hit testing, scroll metrics, and
// capture/bubble event dispatch.
package dom

import (
	"slices"
	"strings"

	"github.com/Akashdeep-Patra/modpanel/internal/geom"
	"github.com/Akashdeep-Patra/modpanel/internal/host"
)

// TextTag is the tag of text nodes. Text nodes are never elements.
const TextTag = "#text"

// Node is one node in the tree.
type Node struct {
	Tag     string
	ID      string
	Classes []string
	Attrs   map[string]string
	Text    string

	// Bounds is the node's box in render pixels (viewport coordinates).
	Bounds geom.Rect
	// Hidden nodes and their subtrees are skipped by hit testing.
	Hidden bool
	// Clip restricts hit testing of descendants to Bounds.
	Clip bool

	parent    *Node
	children  []*Node
	listeners listenerSet
	scroll    *scrollState
}

// Compile-time checks.
var (
	_ host.Element         = (*Node)(nil)
	_ host.Matcher         = (*Node)(nil)
	_ host.Ancestry        = (*Node)(nil)
	_ host.Container       = (*Node)(nil)
	_ host.Bounded         = (*Node)(nil)
	_ host.EventSource     = (*Node)(nil)
	_ host.ScrollContainer = (*Node)(nil)
)

// NewElement creates an element node. Tags are stored upper-case.
func NewElement(tag string) *Node {
	return &Node{Tag: strings.ToUpper(tag)}
}

// NewText creates a text node.
func NewText(text string) *Node {
	return &Node{Tag: TextTag, Text: text}
}

// WithID sets the id and returns n.
func (n *Node) WithID(id string) *Node {
	n.ID = id
	return n
}

// WithClass adds classes and returns n.
func (n *Node) WithClass(classes ...string) *Node {
	n.Classes = append(n.Classes, classes...)
	return n
}

// WithAttr sets an attribute and returns n.
func (n *Node) WithAttr(name, value string) *Node {
	if n.Attrs == nil {
		n.Attrs = make(map[string]string, 2)
	}
	n.Attrs[name] = value
	return n
}

// WithBounds sets the bounds and returns n.
func (n *Node) WithBounds(r geom.Rect) *Node {
	n.Bounds = r
	return n
}

// IsElement reports whether n is a non-nil element.
func (n *Node) IsElement() bool { return n != nil && n.Tag != TextTag }

// TagName returns the upper-case tag.
func (n *Node) TagName() string { return n.Tag }

// HasClass reports whether n carries cls.
func (n *Node) HasClass(cls string) bool { return slices.Contains(n.Classes, cls) }

// Parent returns the parent node, or nil.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the child nodes. The slice must not be modified.
func (n *Node) Children() []*Node { return n.children }

// Append adds children to n, detaching them from any previous parent.
func (n *Node) Append(children ...*Node) *Node {
	for _, c := range children {
		if c == nil {
			continue
		}
		c.Remove()
		c.parent = n
		n.children = append(n.children, c)
	}
	return n
}

// ReplaceChildren removes every child of n and appends the given ones.
func (n *Node) ReplaceChildren(children ...*Node) {
	for _, c := range n.children {
		c.parent = nil
	}
	n.children = nil
	n.Append(children...)
}

// Remove detaches n from its parent.
func (n *Node) Remove() {
	p := n.parent
	if p == nil {
		return
	}
	if i := slices.Index(p.children, n); i >= 0 {
		p.children = slices.Delete(p.children, i, i+1)
	}
	n.parent = nil
}

// Matches reports whether n matches the selector. Invalid selectors never
// match.
func (n *Node) Matches(sel string) bool {
	s, err := compile(sel)
	if err != nil {
		return false
	}
	return s.match(n)
}

// Closest returns the nearest ancestor-or-self element matching sel. Text
// nodes start the search at their parent.
func (n *Node) Closest(sel string) host.Element {
	s, err := compile(sel)
	if err != nil {
		return nil
	}
	for cur := n; cur != nil; cur = cur.parent {
		if s.match(cur) {
			return cur
		}
	}
	return nil
}

// Contains reports whether other is n or one of its descendants.
func (n *Node) Contains(other host.Node) bool {
	o, ok := other.(*Node)
	if !ok || o == nil || n == nil {
		return false
	}
	for cur := o; cur != nil; cur = cur.parent {
		if cur == n {
			return true
		}
	}
	return false
}

// BoundingRect returns n's bounds; ok is false when they have no area.
func (n *Node) BoundingRect() (geom.Rect, bool) {
	return n.Bounds, !n.Bounds.Empty()
}

// AddEventListener registers fn on n.
func (n *Node) AddEventListener(typ host.EventType, fn host.Listener, capture bool) func() {
	return n.listeners.add(typ, fn, capture)
}

// OnClick registers a bubble-phase click listener.
func (n *Node) OnClick(fn host.Listener) *Node {
	n.AddEventListener(host.EventClick, fn, false)
	return n
}

// ListenerCount returns the number of registered listeners.
func (n *Node) ListenerCount() int { return n.listeners.len() }

// path returns the ancestors of n from the top down, ending with n.
func (n *Node) path() []*Node {
	var p []*Node
	for cur := n; cur != nil; cur = cur.parent {
		p = append(p, cur)
	}
	slices.Reverse(p)
	return p
}

// hit returns the deepest visible node under p, preferring later siblings.
// Text nodes are only returned when withText is set.
func (n *Node) hit(p geom.Point, withText bool) *Node {
	if n.Hidden || (!withText && !n.IsElement()) {
		return nil
	}
	inside := n.Bounds.Contains(p)
	if n.Clip && !inside {
		return nil
	}
	for i := len(n.children) - 1; i >= 0; i-- {
		if h := n.children[i].hit(p, withText); h != nil {
			return h
		}
	}
	if inside {
		return n
	}
	return nil
}
