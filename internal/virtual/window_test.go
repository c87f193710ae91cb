package virtual

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeWindow(t *testing.T) {
	tests := []struct {
		name string
		in   WindowInput
		want Window
	}{
		{
			name: "middle of a long list",
			in:   WindowInput{Total: 1000, ScrollTop: 2000, RowHeight: 50, ClientHeight: 500, Overscan: 5},
			want: Window{35, 57},
		},
		{
			name: "top clamps start to zero",
			in:   WindowInput{Total: 1000, ScrollTop: 0, RowHeight: 50, ClientHeight: 500, Overscan: 5},
			want: Window{0, 22},
		},
		{
			name: "bottom clamps end to total",
			in:   WindowInput{Total: 100, ScrollTop: 4800, RowHeight: 50, ClientHeight: 500, Overscan: 5},
			want: Window{91, 100},
		},
		{
			name: "scroll past the end keeps one row",
			in:   WindowInput{Total: 100, ScrollTop: 1e9, RowHeight: 50, ClientHeight: 500, Overscan: 5},
			want: Window{99, 100},
		},
		{
			name: "container offset shifts the window",
			in:   WindowInput{Total: 1000, ScrollTop: 2100, ContainerTop: 100, RowHeight: 50, ClientHeight: 500, Overscan: 5},
			want: Window{35, 57},
		},
		{
			name: "empty",
			in:   WindowInput{Total: 0, ScrollTop: 300, RowHeight: 50, ClientHeight: 500},
			want: Window{0, 0},
		},
		{
			name: "bad row height treated as one pixel",
			in:   WindowInput{Total: 1000, ScrollTop: 10, RowHeight: math.NaN(), ClientHeight: 5},
			want: Window{10, 17},
		},
		{
			name: "NaN scroll reads as zero",
			in:   WindowInput{Total: 1000, ScrollTop: math.NaN(), RowHeight: 50, ClientHeight: 500},
			want: Window{0, 12},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeWindow(tt.in))
		})
	}
}

func TestComputeWindowBypassesSmallLists(t *testing.T) {
	for total := 1; total <= DefaultMinRows; total++ {
		got := ComputeWindow(WindowInput{
			Total: total, ScrollTop: 400, RowHeight: 50, ClientHeight: 100, Overscan: 5, MinRows: DefaultMinRows,
		})
		assert.Equal(t, Window{0, total}, got, "total=%d", total)
	}
}

func TestComputeWindowInvariants(t *testing.T) {
	for _, total := range []int{25, 50, 1000} {
		for scroll := -500.0; scroll <= 60000; scroll += 137 {
			w := ComputeWindow(WindowInput{Total: total, ScrollTop: scroll, RowHeight: 24, ClientHeight: 300, Overscan: 3})
			assert.True(t, 0 <= w.Start && w.Start <= w.End && w.End <= total, "total=%d scroll=%v got %+v", total, scroll, w)
		}
	}
}
