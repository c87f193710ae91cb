package dom

import (
	"time"

	"github.com/Akashdeep-Patra/modpanel/internal/geom"
	"github.com/Akashdeep-Patra/modpanel/internal/host"
)

type scrollState struct {
	top    float64
	height float64
	client float64
}

func (n *Node) scrollState() *scrollState {
	if n.scroll == nil {
		n.scroll = &scrollState{}
	}
	return n.scroll
}

// ScrollTop returns the current vertical scroll offset.
func (n *Node) ScrollTop() float64 {
	if n.scroll == nil {
		return 0
	}
	return n.scroll.top
}

// ScrollHeight returns the height of the scrollable content.
func (n *Node) ScrollHeight() float64 {
	if n.scroll == nil {
		return n.Bounds.H
	}
	return max(n.scroll.height, n.scroll.client)
}

// ClientHeight returns the height of the visible area.
func (n *Node) ClientHeight() float64 {
	if n.scroll == nil {
		return n.Bounds.H
	}
	return n.scroll.client
}

// SetScrollTop moves the scroll offset, clamped to the scrollable range,
// and fires a scroll event on n when the offset changed.
func (n *Node) SetScrollTop(v float64) {
	s := n.scrollState()
	maxTop := max(0, s.height-s.client)
	next := geom.Clamp(geom.OrZero(v), 0, maxTop)
	if next == s.top {
		return
	}
	s.top = next
	n.fire(&host.Event{Type: host.EventScroll, Target: n, TimeStamp: time.Now()})
}

// SetScrollMetrics records the content and client heights. The current
// offset is re-clamped without firing a scroll event.
func (n *Node) SetScrollMetrics(scrollHeight, clientHeight float64) {
	s := n.scrollState()
	s.height = max(0, geom.OrZero(scrollHeight))
	s.client = max(0, geom.OrZero(clientHeight))
	s.top = geom.Clamp(s.top, 0, max(0, s.height-s.client))
}
