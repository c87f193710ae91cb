package ui

import (
	"math"

	"github.com/Akashdeep-Patra/modpanel/internal/geom"
)

// Grid maps terminal cells to render pixels. One cell is CellW × CellH
// pixels at zoom 1 and scales linearly with the UI zoom.
type Grid struct {
	CellW, CellH float64
	Scale        geom.ScaleProvider
}

func (g Grid) cell() (w, h float64) {
	z := geom.Zoom(g.Scale)
	cw, ch := g.CellW, g.CellH
	if !(cw > 0) {
		cw = 8
	}
	if !(ch > 0) {
		ch = 16
	}
	return cw * z, ch * z
}

// LineHeight is the pixel height of one terminal row.
func (g Grid) LineHeight() float64 {
	_, h := g.cell()
	return h
}

// Rect converts a cell rectangle to pixels.
func (g Grid) Rect(col, row, cols, rows int) geom.Rect {
	w, h := g.cell()
	return geom.Rect{X: float64(col) * w, Y: float64(row) * h, W: float64(cols) * w, H: float64(rows) * h}
}

// Center returns the pixel centre of a cell.
func (g Grid) Center(col, row int) geom.Point {
	w, h := g.cell()
	return geom.Point{X: (float64(col) + 0.5) * w, Y: (float64(row) + 0.5) * h}
}

// Cell returns the cell containing a pixel point.
func (g Grid) Cell(p geom.Point) (col, row int) {
	w, h := g.cell()
	return int(math.Floor(p.X / w)), int(math.Floor(p.Y / h))
}

// Size returns the pixel size of a cols × rows screen.
func (g Grid) Size(cols, rows int) (float64, float64) {
	r := g.Rect(0, 0, cols, rows)
	return r.W, r.H
}
