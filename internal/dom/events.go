package dom

import (
	"slices"

	"github.com/Akashdeep-Patra/modpanel/internal/host"
)

type listener struct {
	typ     host.EventType
	fn      host.Listener
	capture bool
}

type listenerSet struct {
	items []*listener
}

func (s *listenerSet) add(typ host.EventType, fn host.Listener, capture bool) func() {
	if fn == nil {
		return func() {}
	}
	l := &listener{typ: typ, fn: fn, capture: capture}
	s.items = append(s.items, l)
	return func() {
		if i := slices.Index(s.items, l); i >= 0 {
			s.items = slices.Delete(s.items, i, i+1)
		}
	}
}

func (s *listenerSet) len() int { return len(s.items) }

// call runs the matching listeners registered for the given phase. The set
// is snapshotted first so listeners may add or remove listeners.
func (s *listenerSet) call(ev *host.Event, capture bool) {
	if len(s.items) == 0 {
		return
	}
	snapshot := slices.Clone(s.items)
	for _, l := range snapshot {
		if l.typ != ev.Type || l.capture != capture {
			continue
		}
		if !slices.Contains(s.items, l) {
			continue
		}
		l.fn(ev)
	}
}

// fire delivers a non-bubbling event to the node's own listeners.
func (n *Node) fire(ev *host.Event) {
	n.listeners.call(ev, true)
	n.listeners.call(ev, false)
}
