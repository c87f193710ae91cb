// Package virtual renders only the visible slice of a long row list while
// keeping scroll geometry correct: rows outside the window are replaced by
// two padding blocks whose heights stand in for the rows they hide.
package virtual

import (
	"math"

	"github.com/Akashdeep-Patra/modpanel/internal/geom"
)

// Window is a half-open row index range [Start, End).
type Window struct {
	Start, End int
}

// Len returns the number of rows in the window.
func (w Window) Len() int { return w.End - w.Start }

// WindowInput carries everything ComputeWindow needs. Pixel values are in
// render pixels.
type WindowInput struct {
	Total        int
	ScrollTop    float64
	ContainerTop float64 // offset of the list body inside the scroll container
	RowHeight    float64
	ClientHeight float64
	Overscan     int
	// MinRows disables virtualization for lists of at most this many rows.
	// Zero means always virtualize.
	MinRows int
}

// ComputeWindow returns the rows to materialize. It is pure: identical
// input always yields the identical window.
//
//	total == 0         → [0, 0]
//	total <= MinRows   → [0, total]
//	otherwise          → start = clamp(floor((scrollTop-containerTop)/rowHeight) - overscan, 0, total-1)
//	                     end   = clamp(start + ceil(clientHeight/rowHeight) + 2 + 2*overscan, 0, total)
func ComputeWindow(in WindowInput) Window {
	total := max(0, in.Total)
	if total == 0 {
		return Window{}
	}
	if in.MinRows > 0 && total <= in.MinRows {
		return Window{Start: 0, End: total}
	}

	rowHeight := in.RowHeight
	if !geom.Finite(rowHeight) || rowHeight <= 0 {
		rowHeight = 1
	}
	overscan := max(0, in.Overscan)

	startRaw := math.Floor((geom.OrZero(in.ScrollTop) - geom.OrZero(in.ContainerTop)) / rowHeight)
	visible := math.Ceil(max(0, geom.OrZero(in.ClientHeight))/rowHeight) + 2

	// Clamp in float space first so absurd inputs cannot overflow int.
	start := int(geom.Clamp(startRaw-float64(overscan), 0, float64(max(0, total-1))))
	end := int(geom.Clamp(float64(start)+visible+float64(2*overscan), 0, float64(total)))
	return Window{Start: start, End: end}
}
