// Package click recovers the intended click target on hosts that report
// mis-scaled pointer coordinates or unresolvable targets.
//
// Two capture-phase handlers run on the document. The release handler
// covers pointer releases that land on nothing clickable (typically a text
// node) by dispatching a synthetic click at the best candidate point. The
// click handler suppresses the native duplicate of such a fix and, when the
// input scale is off, redirects clicks to a better-scoring candidate.
package click

import (
	"io"
	"math"
	"time"

	"github.com/Akashdeep-Patra/modpanel/internal/geom"
	"github.com/Akashdeep-Patra/modpanel/internal/host"
	"github.com/charmbracelet/log"
)

const (
	// DefaultSuppressWindow is how long after a release fix a native click
	// at the same point is treated as its duplicate.
	DefaultSuppressWindow = 250 * time.Millisecond
	// DefaultSuppressRadius is the per-axis distance, in pixels, within
	// which a native click matches a release fix.
	DefaultSuppressRadius = 1.0
	// DefaultScaleTolerance is how far the input scale may drift from 1
	// before clicks are corrected.
	DefaultScaleTolerance = 0.01
)

// Options configures a Corrector. Zero values select the defaults.
type Options struct {
	Scale          geom.ScaleProvider
	Now            func() time.Time
	Logger         *log.Logger
	SuppressWindow time.Duration
	SuppressRadius float64
	ScaleTolerance float64
	Selectors      Selectors
}

// Stats counts what the corrector did.
type Stats struct {
	Fixed      int // synthetic clicks from the release fallback
	Corrected  int // native clicks redirected to a better candidate
	Suppressed int // native clicks dropped as duplicates of a fix
}

// fix is the most recent release fallback, in reported coordinates.
type fix struct {
	at   time.Time
	x, y float64
}

// Corrector holds the per-install click correction state.
type Corrector struct {
	doc       any
	scale     geom.ScaleProvider
	now       func() time.Time
	log       *log.Logger
	window    time.Duration
	radius    float64
	tolerance float64
	sel       Selectors

	last  fix
	stats Stats

	removers []func()
	detached bool
}

// New returns a Corrector for doc without registering it. doc is probed for
// the host capabilities it offers; missing ones only disable what needs them.
func New(doc any, opts Options) *Corrector {
	c := &Corrector{
		doc:       doc,
		scale:     opts.Scale,
		now:       opts.Now,
		log:       opts.Logger,
		window:    opts.SuppressWindow,
		radius:    opts.SuppressRadius,
		tolerance: opts.ScaleTolerance,
		sel:       opts.Selectors.withDefaults(),
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.log == nil {
		c.log = log.New(io.Discard)
	}
	if c.window <= 0 {
		c.window = DefaultSuppressWindow
	}
	if !(c.radius > 0) {
		c.radius = DefaultSuppressRadius
	}
	if !(c.tolerance > 0) {
		c.tolerance = DefaultScaleTolerance
	}
	return c
}

// Install creates a Corrector and registers its capture-phase mouseup and
// click handlers on doc when doc can deliver events.
func Install(doc any, opts Options) *Corrector {
	c := New(doc, opts)
	if src, ok := doc.(host.EventSource); ok {
		c.removers = append(c.removers,
			src.AddEventListener(host.EventMouseUp, c.OnMouseUp, true),
			src.AddEventListener(host.EventClick, c.OnClick, true),
		)
	}
	return c
}

// Detach unregisters both handlers and forgets the last fix. Safe to call
// more than once.
func (c *Corrector) Detach() {
	if c.detached {
		return
	}
	c.detached = true
	for _, remove := range c.removers {
		remove()
	}
	c.removers = nil
	c.last = fix{}
}

// Stats returns the counters.
func (c *Corrector) Stats() Stats { return c.stats }

// OnMouseUp handles a primary-button release whose target is not inside an
// interactive element.
func (c *Corrector) OnMouseUp(ev *host.Event) {
	if c.detached || ev == nil || !ev.Trusted || ev.Button != 0 {
		return
	}
	if Interactive(ev.Target, c.sel) != nil {
		return
	}
	dispatcher, ok := c.doc.(host.Dispatcher)
	if !ok {
		return
	}

	x, y := geom.OrZero(ev.X), geom.OrZero(ev.Y)
	best, ok := c.best(geom.Point{X: x, Y: y})
	if !ok {
		c.log.Debug("release fallback found no target", "x", x, "y", y)
		return
	}

	at := c.stamp(ev)
	c.last = fix{at: at, x: x, y: y}
	c.stats.Fixed++
	c.log.Debug("release fallback", "candidate", best.label, "x", best.point.X, "y", best.point.Y, "score", best.score)
	dispatcher.DispatchEvent(synthetic(ev, best, at))
}

// OnClick handles a native click.
func (c *Corrector) OnClick(ev *host.Event) {
	if c.detached || ev == nil || !ev.Trusted || ev.Button != 0 {
		return
	}
	at := c.stamp(ev)
	x, y := geom.OrZero(ev.X), geom.OrZero(ev.Y)

	if c.isDuplicate(at, x, y) {
		ev.Cancel()
		c.stats.Suppressed++
		c.log.Debug("suppressed duplicate click", "x", x, "y", y)
		return
	}

	target := host.AsElement(ev.Target)
	scale := geom.InputScale(c.scale)
	if target != nil && !needsScale(scale, c.tolerance) {
		return
	}
	dispatcher, ok := c.doc.(host.Dispatcher)
	if !ok {
		return
	}

	best, ok := c.best(geom.Point{X: x, Y: y})
	if !ok {
		return
	}
	orig := Unresolved
	if it := Interactive(target, c.sel); it != nil {
		orig = Score(it, uiRoot(c.doc), c.sel)
	}
	if !(best.score > orig) {
		return
	}

	ev.Cancel()
	c.stats.Corrected++
	c.log.Debug("corrected click", "candidate", best.label, "from_x", x, "from_y", y,
		"x", best.point.X, "y", best.point.Y, "score", best.score, "was", orig)
	dispatcher.DispatchEvent(synthetic(ev, best, at))
}

func (c *Corrector) isDuplicate(at time.Time, x, y float64) bool {
	if c.last.at.IsZero() {
		return false
	}
	age := at.Sub(c.last.at)
	if age < 0 || age >= c.window {
		return false
	}
	return math.Abs(x-c.last.x) <= c.radius && math.Abs(y-c.last.y) <= c.radius
}

func (c *Corrector) stamp(ev *host.Event) time.Time {
	if !ev.TimeStamp.IsZero() {
		return ev.TimeStamp
	}
	return c.now()
}

type choice struct {
	label  Label
	point  geom.Point
	target host.Element
	score  float64
}

// best hit-tests every candidate for p and returns the highest-scoring one
// that resolves to an interactive element inside the UI root. The interactive
// element is what gets scored, not the raw hit. Ties keep the earlier
// candidate.
func (c *Corrector) best(p geom.Point) (choice, bool) {
	ht, ok := c.doc.(host.HitTester)
	if !ok {
		return choice{}, false
	}
	root := uiRoot(c.doc)
	rootC, _ := root.(host.Container)
	scale := geom.InputScale(c.scale)

	var (
		win   choice
		found bool
	)
	for _, cand := range Candidates(c.doc, p, scale, needsScale(scale, c.tolerance)) {
		hit := ht.ElementFromPoint(cand.Point.X, cand.Point.Y)
		it := Interactive(hit, c.sel)
		if it == nil {
			continue
		}
		if rootC != nil && !rootC.Contains(it) {
			continue
		}
		s := Score(it, root, c.sel)
		if !found || s > win.score {
			win = choice{label: cand.Label, point: cand.Point, target: it, score: s}
			found = true
		}
	}
	return win, found
}

func synthetic(from *host.Event, ch choice, at time.Time) *host.Event {
	return &host.Event{
		Type:      host.EventClick,
		Target:    ch.target,
		X:         ch.point.X,
		Y:         ch.point.Y,
		Button:    from.Button,
		Modifiers: from.Modifiers,
		View:      from.View,
		TimeStamp: at,
	}
}
