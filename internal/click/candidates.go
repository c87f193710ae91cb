package click

import (
	"math"

	"github.com/Akashdeep-Patra/modpanel/internal/geom"
	"github.com/Akashdeep-Patra/modpanel/internal/host"
)

// Label says how a candidate point was derived from the reported point.
type Label int

const (
	Identity      Label = iota // the reported point
	ScaleMultiply              // reported × input scale, about the viewport origin
	ScaleDivide                // reported ÷ input scale, about the viewport origin
	RootMultiply               // × input scale, about the UI root's top-left corner
	RootDivide                 // ÷ input scale, about the UI root's top-left corner
)

func (l Label) String() string {
	switch l {
	case Identity:
		return "identity"
	case ScaleMultiply:
		return "scale-multiply"
	case ScaleDivide:
		return "scale-divide"
	case RootMultiply:
		return "root-multiply"
	case RootDivide:
		return "root-divide"
	default:
		return "unknown"
	}
}

// Candidate is one hypothesized true pointer position.
type Candidate struct {
	Label Label
	Point geom.Point
}

// Candidates returns the points to try for a reported position, in the
// order that breaks score ties: identity, scale-multiply, scale-divide,
// root-multiply, root-divide. The scaled variants are only produced when
// scaled is set; the root-anchored ones also need a root with a bounding
// box. Every point is clamped into the viewport when its size is known.
func Candidates(doc any, reported geom.Point, scale float64, scaled bool) []Candidate {
	out := make([]Candidate, 0, 5)
	out = append(out, Candidate{Identity, reported})

	if scaled && geom.Finite(scale) && scale > 0 {
		x, y := reported.X, reported.Y
		out = append(out,
			Candidate{ScaleMultiply, geom.Point{X: x * scale, Y: y * scale}},
			Candidate{ScaleDivide, geom.Point{X: x / scale, Y: y / scale}},
		)
		if r, ok := rootRect(doc); ok {
			out = append(out,
				Candidate{RootMultiply, geom.Point{X: r.X + (x-r.X)*scale, Y: r.Y + (y-r.Y)*scale}},
				Candidate{RootDivide, geom.Point{X: r.X + (x-r.X)/scale, Y: r.Y + (y-r.Y)/scale}},
			)
		}
	}

	if vp, ok := doc.(host.Viewport); ok {
		w, h := vp.ViewportSize()
		if w > 0 && h > 0 {
			for i := range out {
				out[i].Point.X = geom.Clamp(out[i].Point.X, 0, w-1)
				out[i].Point.Y = geom.Clamp(out[i].Point.Y, 0, h-1)
			}
		}
	}
	return out
}

func uiRoot(doc any) host.Element {
	loc, ok := doc.(host.RootLocator)
	if !ok {
		return nil
	}
	return loc.UIRoot()
}

func rootRect(doc any) (geom.Rect, bool) {
	root := uiRoot(doc)
	if root == nil {
		return geom.Rect{}, false
	}
	b, ok := root.(host.Bounded)
	if !ok {
		return geom.Rect{}, false
	}
	r, ok := b.BoundingRect()
	if !ok || !geom.Finite(r.X) || !geom.Finite(r.Y) {
		return geom.Rect{}, false
	}
	return r, true
}

// needsScale reports whether the input scale differs from 1 by at least
// tolerance.
func needsScale(scale, tolerance float64) bool {
	return math.Abs(scale-1) >= tolerance
}
