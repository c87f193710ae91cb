package virtual

import (
	"io"
	"time"

	"github.com/Akashdeep-Patra/modpanel/internal/geom"
	"github.com/Akashdeep-Patra/modpanel/internal/host"
	"github.com/Akashdeep-Patra/modpanel/internal/rows"
	"github.com/charmbracelet/log"
)

// Defaults.
const (
	DefaultMinRows       = 24
	DefaultOverscan      = 6
	DefaultMinSpacing    = 32 * time.Millisecond
	DefaultBaseRowHeight = 16.0
)

// Options configures a Virtualizer. Non-positive values take the defaults
// above, except Overscan where only a negative value does.
type Options struct {
	MinRows    int
	Overscan   int
	MinSpacing time.Duration
	// BaseRowHeight is the unzoomed row height used when the body cannot
	// measure itself.
	BaseRowHeight float64

	Scale  geom.ScaleProvider
	Frames FrameScheduler
	Now    func() time.Time
	Logger *log.Logger
}

// Virtualizer renders a set of lists, at most once per frame and no more
// often than MinSpacing unless forced.
type Virtualizer struct {
	minRows       int
	overscan      int
	minSpacing    time.Duration
	baseRowHeight float64

	scale  geom.ScaleProvider
	frames FrameScheduler
	now    func() time.Time
	log    *log.Logger

	lists []*List
	store *rows.Store

	pending    bool
	force      bool
	lastRender time.Time
	flushes    int

	detached bool
	cleanup  []func()
}

// New returns a Virtualizer. A nil Frames gets a private FrameQueue that
// is only flushed through Frames().
func New(opts Options) *Virtualizer {
	v := &Virtualizer{
		minRows:       opts.MinRows,
		overscan:      opts.Overscan,
		minSpacing:    opts.MinSpacing,
		baseRowHeight: opts.BaseRowHeight,
		scale:         opts.Scale,
		frames:        opts.Frames,
		now:           opts.Now,
		log:           opts.Logger,
	}
	if v.minRows <= 0 {
		v.minRows = DefaultMinRows
	}
	if v.overscan < 0 {
		v.overscan = DefaultOverscan
	}
	if v.minSpacing <= 0 {
		v.minSpacing = DefaultMinSpacing
	}
	if v.baseRowHeight <= 0 {
		v.baseRowHeight = DefaultBaseRowHeight
	}
	if v.frames == nil {
		v.frames = &FrameQueue{}
	}
	if v.now == nil {
		v.now = time.Now
	}
	if v.log == nil {
		v.log = log.New(io.Discard)
	}
	return v
}

// Frames returns the scheduler the virtualizer requests frames from.
func (v *Virtualizer) Frames() FrameScheduler { return v.frames }

// AddList registers a list. Its state starts reset.
func (v *Virtualizer) AddList(l *List) *List {
	l.State = NewListState()
	v.lists = append(v.lists, l)
	return l
}

// List returns the registered list with the given id, or nil.
func (v *Virtualizer) List(id rows.ListID) *List {
	for _, l := range v.lists {
		if l.ID == id {
			return l
		}
	}
	return nil
}

// Flushes returns how many frame flushes actually rendered.
func (v *Virtualizer) Flushes() int { return v.flushes }

// Attach subscribes to store replacements and to scroll events of every
// list container that can deliver them, loads the current rows, and
// returns the idempotent detach.
func (v *Virtualizer) Attach(store *rows.Store) func() {
	v.store = store
	if store != nil {
		v.cleanup = append(v.cleanup, store.Subscribe(v.Reload))
	}
	for _, l := range v.lists {
		src, ok := l.Container.(host.EventSource)
		if !ok {
			continue
		}
		v.cleanup = append(v.cleanup, src.AddEventListener(host.EventScroll, func(*host.Event) {
			v.ScheduleRender(false)
		}, false))
	}
	if store != nil {
		for _, l := range v.lists {
			v.replace(l, v.rowsFor(l))
		}
		v.Resync()
	}
	return v.Detach
}

// Detach removes every listener and subscription. Pending frames become
// no-ops. Calling Detach again does nothing.
func (v *Virtualizer) Detach() {
	if v.detached {
		return
	}
	v.detached = true
	for _, fn := range v.cleanup {
		fn()
	}
	v.cleanup = nil
}

// Reload re-reads the rows of id from the attached store (through the
// list's Filter) and resyncs.
func (v *Virtualizer) Reload(id rows.ListID) {
	l := v.List(id)
	if l == nil || v.detached {
		return
	}
	v.Replace(id, v.rowsFor(l))
}

func (v *Virtualizer) rowsFor(l *List) []rows.Record {
	var recs []rows.Record
	if v.store != nil {
		recs = v.store.Rows(l.ID)
	}
	if l.Filter != nil {
		recs = l.Filter(recs)
	}
	return recs
}

// Replace substitutes the rows of list id wholesale and resyncs.
func (v *Virtualizer) Replace(id rows.ListID, recs []rows.Record) {
	l := v.List(id)
	if l == nil || v.detached {
		return
	}
	v.replace(l, recs)
	v.Resync()
}

func (v *Virtualizer) replace(l *List, recs []rows.Record) {
	l.State.Reset()
	l.State.Rows = recs
}

// Invalidate drops cached geometry of every list (zoom change, resize)
// and resyncs.
func (v *Virtualizer) Invalidate() {
	for _, l := range v.lists {
		l.State.InvalidateGeometry()
	}
	v.Resync()
}

// Resync schedules a forced render now and another on the following
// frame. The host may report stale container geometry within the frame
// that changed it; the second pass corrects for that.
func (v *Virtualizer) Resync() {
	if v.detached {
		return
	}
	v.ScheduleRender(true)
	v.frames.RequestFrame(func() { v.ScheduleRender(true) })
}

// ScheduleRender requests a render on the next frame. Calls made while a
// frame is already pending only accumulate the force flag.
func (v *Virtualizer) ScheduleRender(force bool) {
	if v.detached {
		return
	}
	if force {
		v.force = true
	}
	if v.pending {
		return
	}
	v.pending = true
	v.frames.RequestFrame(v.flush)
}

func (v *Virtualizer) flush() {
	v.pending = false
	if v.detached {
		return
	}
	now := v.now()
	force := v.force
	if !force && !v.lastRender.IsZero() && now.Sub(v.lastRender) < v.minSpacing {
		v.log.Debug("render throttled", "since", now.Sub(v.lastRender))
		v.pending = true
		v.frames.RequestFrame(v.flush)
		return
	}
	v.force = false
	v.lastRender = now
	v.flushes++
	for _, l := range v.lists {
		if !l.visible() {
			continue
		}
		v.render(l, force)
	}
}

func (v *Virtualizer) render(l *List, force bool) {
	st := &l.State
	total := len(st.Rows)

	switch {
	case total == 0:
		if !force && st.LastStart == 0 && st.LastEnd == 0 {
			return
		}
		st.LastStart, st.LastEnd = 0, 0
		v.paint(l, Paint{Kind: PaintEmpty})

	case total <= v.minRows:
		if !force && st.LastStart == 0 && st.LastEnd == total {
			return
		}
		st.LastStart, st.LastEnd = 0, total
		v.paint(l, Paint{Kind: PaintAll, Window: Window{0, total}, Rows: st.Rows, Total: total})

	default:
		v.ensureGeometry(l, force)
		var scrollTop, clientHeight float64
		if l.Container != nil {
			scrollTop, clientHeight = l.Container.ScrollTop(), l.Container.ClientHeight()
		}
		win := ComputeWindow(WindowInput{
			Total:        total,
			ScrollTop:    scrollTop,
			ContainerTop: st.ContainerTopOffsetPx,
			RowHeight:    st.RowHeightPx,
			ClientHeight: clientHeight,
			Overscan:     v.overscan,
		})
		if !force && win.Start == st.LastStart && win.End == st.LastEnd {
			return
		}
		st.LastStart, st.LastEnd = win.Start, win.End
		v.paint(l, Paint{
			Kind:      PaintWindow,
			Window:    win,
			Rows:      st.Rows[win.Start:win.End],
			Total:     total,
			TopPad:    float64(win.Start) * st.RowHeightPx,
			BottomPad: float64(total-win.End) * st.RowHeightPx,
			RowHeight: st.RowHeightPx,
		})
	}
}

// ensureGeometry refreshes the cached row height and container offset when
// forced, unmeasured, or when the row height is not positive. A zero offset
// is a valid measurement and is reused.
func (v *Virtualizer) ensureGeometry(l *List, force bool) {
	st := &l.State
	if !force && !st.geometryStale() {
		return
	}
	st.RowHeightPx, st.ContainerTopOffsetPx = v.measure(l)
}

// measure asks the body for its layout, falling back to the zoomed base
// row height and a zero offset.
func (v *Virtualizer) measure(l *List) (rowHeight, offset float64) {
	if m, ok := l.Body.(Measurer); ok {
		rowHeight, offset = m.RowHeight(), m.TopOffset()
	}
	if !geom.Finite(rowHeight) || rowHeight <= 0 {
		rowHeight = v.baseRowHeight * geom.Zoom(v.scale)
	}
	if !geom.Finite(offset) {
		offset = 0
	}
	return rowHeight, offset
}

func (v *Virtualizer) paint(l *List, p Paint) {
	if p.RowHeight == 0 {
		p.RowHeight = l.State.RowHeightPx
		if !geom.Finite(p.RowHeight) || p.RowHeight <= 0 {
			p.RowHeight, _ = v.measure(l)
		}
	}
	l.renders++
	v.log.Debug("render", "list", l.ID, "kind", p.Kind, "start", p.Window.Start, "end", p.Window.End)
	if l.Body != nil {
		l.Body.Paint(p)
	}
}
