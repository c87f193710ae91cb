package virtual

import (
	"math"

	"github.com/Akashdeep-Patra/modpanel/internal/host"
	"github.com/Akashdeep-Patra/modpanel/internal/rows"
)

// ListState is the per-list render memo. Once initialised,
// 0 <= LastStart <= LastEnd <= len(Rows); before the first render both
// window fields hold the -1 sentinel. The geometry fields are NaN whenever
// they must be measured again.
type ListState struct {
	Rows                 []rows.Record
	LastStart, LastEnd   int
	RowHeightPx          float64
	ContainerTopOffsetPx float64
}

// NewListState returns a state in its reset form.
func NewListState() ListState {
	var s ListState
	s.Reset()
	return s
}

// Reset restores the window sentinel and invalidates cached geometry.
func (s *ListState) Reset() {
	s.LastStart, s.LastEnd = -1, -1
	s.InvalidateGeometry()
}

// InvalidateGeometry forces the next render to re-measure.
func (s *ListState) InvalidateGeometry() {
	s.RowHeightPx = math.NaN()
	s.ContainerTopOffsetPx = math.NaN()
}

func (s *ListState) geometryStale() bool {
	return math.IsNaN(s.RowHeightPx) || s.RowHeightPx <= 0 ||
		math.IsNaN(s.ContainerTopOffsetPx)
}

// PaintKind says which of the three render shapes a Paint carries.
type PaintKind int

const (
	// PaintEmpty shows a single "no rows" placeholder.
	PaintEmpty PaintKind = iota
	// PaintAll shows every row with no padding (small lists).
	PaintAll
	// PaintWindow shows Rows between a top and a bottom padding block.
	PaintWindow
)

// Paint is one render of a list body.
type Paint struct {
	Kind   PaintKind
	Window Window
	// Rows holds the records of Window, in order.
	Rows []rows.Record
	// Total is the number of rows in the list.
	Total     int
	TopPad    float64
	BottomPad float64
	RowHeight float64
}

// Body receives renders. Implementations replace their whole content.
type Body interface {
	Paint(p Paint)
}

// Measurer is an optional Body capability reporting live layout. Either
// value may be non-positive when it cannot be measured.
type Measurer interface {
	RowHeight() float64
	TopOffset() float64
}

// List binds one list's state to its scroll container and body.
type List struct {
	ID        rows.ListID
	Container host.ScrollContainer
	Body      Body
	// Visible gates rendering; a nil Visible means always visible.
	Visible func() bool
	// Filter, when set, derives the rendered rows from the store's rows.
	Filter func([]rows.Record) []rows.Record

	State ListState

	renders int
}

// Renders returns how many times the body was painted.
func (l *List) Renders() int { return l.renders }

func (l *List) visible() bool { return l.Visible == nil || l.Visible() }
