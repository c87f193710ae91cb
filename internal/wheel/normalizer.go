// Package wheel turns raw wheel events from a host with unreliable deltas
// into bounded pixel scrolls of one container.
//
// Some hosts report a whole notch as a delta of a few pixels. A small delta
// after a pause is therefore read as one notch and replaced by a fixed
// step; small deltas in a continuous stream (touchpads, inertial scrolling)
// are only boosted.
package wheel

import (
	"io"
	"math"
	"time"

	"github.com/Akashdeep-Patra/modpanel/internal/geom"
	"github.com/Akashdeep-Patra/modpanel/internal/host"
	"github.com/charmbracelet/log"
)

const (
	// LineHeightPx converts line-mode deltas to pixels.
	LineHeightPx = 16.0
	// NotchStepPx replaces a delta read as a single notch.
	NotchStepPx = 60.0
	// SmallDeltaPx is the magnitude below which an isolated event is a notch.
	SmallDeltaPx = 12.0
	// NotchGap is the minimum pause before a small delta counts as a notch.
	NotchGap = 24 * time.Millisecond
	// MediumDeltaPx is the magnitude below which deltas are boosted.
	MediumDeltaPx = 40.0
	// Boost multiplies medium deltas.
	Boost = 1.5
	// MaxJumpRatio bounds one event's scroll to this share of the
	// container's client height.
	MaxJumpRatio = 0.45
)

// Options configures a Normalizer.
type Options struct {
	Scale  geom.ScaleProvider
	Now    func() time.Time
	Logger *log.Logger
}

// Normalizer owns wheel scrolling of one container.
type Normalizer struct {
	container host.ScrollContainer
	scale     geom.ScaleProvider
	now       func() time.Time
	log       *log.Logger

	// lastEvent is the timestamp of the previous wheel event on this
	// container; zero before the first.
	lastEvent time.Time

	remove   func()
	detached bool
}

// New returns a Normalizer for container without registering it.
func New(container host.ScrollContainer, opts Options) *Normalizer {
	n := &Normalizer{
		container: container,
		scale:     opts.Scale,
		now:       opts.Now,
		log:       opts.Logger,
	}
	if n.now == nil {
		n.now = time.Now
	}
	if n.log == nil {
		n.log = log.New(io.Discard)
	}
	return n
}

// Install creates a Normalizer and registers it as a capture-phase wheel
// listener on container when the container can deliver events.
func Install(container host.ScrollContainer, opts Options) *Normalizer {
	n := New(container, opts)
	if src, ok := container.(host.EventSource); ok {
		n.remove = src.AddEventListener(host.EventWheel, n.OnWheel, true)
	}
	return n
}

// Detach unregisters the listener. Safe to call more than once.
func (n *Normalizer) Detach() {
	if n.detached {
		return
	}
	n.detached = true
	if n.remove != nil {
		n.remove()
		n.remove = nil
	}
}

// OnWheel handles one wheel event.
func (n *Normalizer) OnWheel(ev *host.Event) {
	if n.detached || ev == nil || !ev.Trusted || n.container == nil {
		return
	}

	client := max(0, geom.OrZero(n.container.ClientHeight()))
	maxScroll := geom.OrZero(n.container.ScrollHeight()) - client
	if maxScroll <= 0 {
		return
	}

	delta := PixelDelta(ev, client)
	if delta == 0 {
		return
	}

	at := ev.TimeStamp
	if at.IsZero() {
		at = n.now()
	}
	gap := time.Duration(math.MaxInt64)
	if !n.lastEvent.IsZero() {
		gap = at.Sub(n.lastEvent)
	}
	n.lastEvent = at

	delta = n.amplify(delta, gap)

	limit := MaxJumpRatio * client
	delta = geom.Clamp(delta, -limit, limit)
	if delta == 0 {
		return
	}

	top := geom.OrZero(n.container.ScrollTop())
	n.container.SetScrollTop(geom.Clamp(top+delta, 0, maxScroll))
	ev.Cancel()
	n.log.Debug("wheel", "raw", ev.DeltaY, "mode", ev.DeltaMode, "applied", delta, "gap", gap)
}

// amplify applies the notch and boost heuristics, scaled by UI zoom.
func (n *Normalizer) amplify(delta float64, gap time.Duration) float64 {
	zoom := geom.Zoom(n.scale)
	mag := math.Abs(delta)
	switch {
	case mag < SmallDeltaPx && gap > NotchGap:
		return math.Copysign(NotchStepPx, delta) * zoom
	case mag < MediumDeltaPx:
		return delta * Boost * zoom
	default:
		return delta * zoom
	}
}

// PixelDelta converts the event's vertical delta to pixels. Page deltas use
// the container's client height. Non-finite deltas read as zero.
func PixelDelta(ev *host.Event, clientHeight float64) float64 {
	d := geom.OrZero(ev.DeltaY)
	switch ev.DeltaMode {
	case host.DeltaLine:
		return d * LineHeightPx
	case host.DeltaPage:
		return d * clientHeight
	default:
		return d
	}
}
