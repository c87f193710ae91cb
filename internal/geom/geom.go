// Package geom holds the small geometry helpers shared by the virtualizer and
// the input-correction engines: points, rects, clamping and scale lookup.
package geom

import "math"

// Point is a position in render pixels.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned box in render pixels.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether p lies inside r. The right and bottom edges are
// exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Clamp returns v limited to [lo, hi]. When hi < lo the result is hi.
func Clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// ClampInt is Clamp for ints.
func ClampInt(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

// Finite reports whether v is neither NaN nor infinite.
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// OrZero coerces NaN and infinities to 0.
func OrZero(v float64) float64 {
	if !Finite(v) {
		return 0
	}
	return v
}
