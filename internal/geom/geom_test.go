package geom

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 10, W: 20, H: 10}
	assert.True(t, r.Contains(Point{10, 10}))
	assert.True(t, r.Contains(Point{29.9, 19.9}))
	assert.False(t, r.Contains(Point{30, 15}))
	assert.False(t, r.Contains(Point{15, 20}))
	assert.False(t, r.Contains(Point{9, 15}))
	assert.True(t, Rect{W: 0, H: 5}.Empty())
	assert.False(t, r.Empty())
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 5.0, Clamp(5, 0, 10))
	assert.Equal(t, 0.0, Clamp(-1, 0, 10))
	assert.Equal(t, 10.0, Clamp(11, 0, 10))
	assert.Equal(t, 3.0, Clamp(7, 5, 3))
	assert.Equal(t, 2, ClampInt(2, 0, 4))
	assert.Equal(t, 4, ClampInt(9, 0, 4))
	assert.Equal(t, 0.0, OrZero(math.NaN()))
	assert.Equal(t, 0.0, OrZero(math.Inf(1)))
	assert.Equal(t, 2.5, OrZero(2.5))
}

func TestScaleFallbacks(t *testing.T) {
	tests := []struct {
		name string
		p    ScaleProvider
		want float64
	}{
		{"nil provider", nil, 1},
		{"zero", StaticScale{}, 1},
		{"negative", StaticScale{Zoom: -2, Input: -2}, 1},
		{"nan", StaticScale{Zoom: math.NaN(), Input: math.NaN()}, 1},
		{"inf", StaticScale{Zoom: math.Inf(1), Input: math.Inf(1)}, 1},
		{"set", StaticScale{Zoom: 1.25, Input: 1.25}, 1.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Zoom(tt.p))
			assert.Equal(t, tt.want, InputScale(tt.p))
		})
	}
}

func TestScaleUpdates(t *testing.T) {
	s := NewScale(1.5, 2)
	assert.Equal(t, 1.5, Zoom(s))
	assert.Equal(t, 2.0, InputScale(s))

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.SetZoom(3)
			_ = s.UIZoom()
		}()
	}
	wg.Wait()
	assert.Equal(t, 3.0, s.UIZoom())
	s.SetInputScale(0)
	assert.Equal(t, 1.0, InputScale(s))
}
