package host

import "time"

// EventType names an event.
type EventType string

const (
	EventClick   EventType = "click"
	EventMouseUp EventType = "mouseup"
	EventWheel   EventType = "wheel"
	EventScroll  EventType = "scroll"
)

// DeltaMode is the unit of a wheel delta.
type DeltaMode int

const (
	DeltaPixel DeltaMode = iota
	DeltaLine
	DeltaPage
)

// Modifiers is the modifier-key state of a pointer event.
type Modifiers struct {
	Alt, Ctrl, Shift, Meta bool
}

// Event is a pointer, wheel or scroll event travelling through the host.
type Event struct {
	Type   EventType
	Target Node

	// X and Y are the reported client coordinates in render pixels.
	X, Y float64

	Button    int
	Modifiers Modifiers

	DeltaX, DeltaY float64
	DeltaMode      DeltaMode

	// Trusted is false for events synthesized by code rather than the user.
	Trusted bool
	// View is carried over verbatim into synthetic events.
	View any

	TimeStamp time.Time

	defaultPrevented   bool
	propagationStopped bool
}

// PreventDefault cancels the host's default action for the event.
func (e *Event) PreventDefault() { e.defaultPrevented = true }

// StopPropagation stops delivery to further nodes.
func (e *Event) StopPropagation() { e.propagationStopped = true }

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool { return e.defaultPrevented }

// PropagationStopped reports whether StopPropagation was called.
func (e *Event) PropagationStopped() bool { return e.propagationStopped }

// Cancel prevents the default action and stops propagation.
func (e *Event) Cancel() {
	e.PreventDefault()
	e.StopPropagation()
}

// Element returns the target as an Element, or nil when the target is
// missing or is not an element (e.g. a text node).
func (e *Event) Element() Element {
	return AsElement(e.Target)
}

// AsElement converts n to an Element when possible.
func AsElement(n Node) Element {
	if n == nil || !n.IsElement() {
		return nil
	}
	el, ok := n.(Element)
	if !ok {
		return nil
	}
	return el
}
