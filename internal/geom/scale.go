package geom

import (
	"math"
	"sync/atomic"
)

// ScaleProvider exposes the two independent scale factors of the host:
// the UI zoom applied to the whole panel and the factor by which reported
// pointer coordinates are mis-scaled relative to rendered pixels.
type ScaleProvider interface {
	UIZoom() float64
	InputScale() float64
}

// Zoom returns the provider's UI zoom, or 1 when unavailable.
func Zoom(p ScaleProvider) float64 {
	if p == nil {
		return 1
	}
	return sanitize(p.UIZoom())
}

// InputScale returns the provider's input scale, or 1 when unavailable.
func InputScale(p ScaleProvider) float64 {
	if p == nil {
		return 1
	}
	return sanitize(p.InputScale())
}

func sanitize(v float64) float64 {
	if !Finite(v) || v <= 0 {
		return 1
	}
	return v
}

// StaticScale is a fixed ScaleProvider. Zero fields read as 1.
type StaticScale struct {
	Zoom  float64
	Input float64
}

func (s StaticScale) UIZoom() float64     { return s.Zoom }
func (s StaticScale) InputScale() float64 { return s.Input }

// Scale is a ScaleProvider whose factors can change at runtime, e.g. when
// the user zooms the panel. Safe for concurrent readers.
type Scale struct {
	zoom  atomic.Uint64
	input atomic.Uint64
}

// NewScale returns a Scale initialised to the given factors.
func NewScale(zoom, input float64) *Scale {
	s := &Scale{}
	s.SetZoom(zoom)
	s.SetInputScale(input)
	return s
}

func (s *Scale) UIZoom() float64     { return fromBits(s.zoom.Load()) }
func (s *Scale) InputScale() float64 { return fromBits(s.input.Load()) }

// SetZoom replaces the UI zoom factor.
func (s *Scale) SetZoom(v float64) { s.zoom.Store(toBits(v)) }

// SetInputScale replaces the input scale factor.
func (s *Scale) SetInputScale(v float64) { s.input.Store(toBits(v)) }

func toBits(v float64) uint64   { return math.Float64bits(v) }
func fromBits(b uint64) float64 { return math.Float64frombits(b) }
