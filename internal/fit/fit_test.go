package fit

import (
	"math"
	"testing"
)

func TestFit(t *testing.T) {
	testCases := []struct {
		name     string
		src      Size
		capacity Size
		noResize bool
		want     Size
	}{
		{name: "square into square", src: Size{100, 100}, capacity: Capacity(40, 20), want: Size{40, 40}},
		{name: "fits already", src: Size{30, 20}, capacity: Capacity(80, 24), want: Size{30, 20}},
		{name: "fits, odd height rounds down", src: Size{30, 21}, capacity: Capacity(80, 24), want: Size{30, 20}},
		{name: "width bound", src: Size{400, 100}, capacity: Capacity(80, 24), want: Size{80, 20}},
		{name: "height bound", src: Size{100, 400}, capacity: Capacity(80, 24), want: Size{12, 48}},
		{name: "no resize keeps size", src: Size{10, 10}, capacity: Size{5, 5}, noResize: true, want: Size{10, 10}},
		{name: "no resize odd height", src: Size{10, 11}, capacity: Size{5, 5}, noResize: true, want: Size{10, 10}},
		{name: "thin strip clamps width", src: Size{1, 1000}, capacity: Capacity(80, 10), want: Size{1, 20}},
		{name: "flat strip clamps height", src: Size{1000, 1}, capacity: Capacity(80, 10), want: Size{80, 2}},
		{name: "single pixel", src: Size{1, 1}, capacity: Capacity(80, 24), want: Size{1, 2}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Fit(tc.src, tc.capacity, tc.noResize)
			if got != tc.want {
				t.Errorf("Fit(%s, %s, %v) = %s, want %s", tc.src, tc.capacity, tc.noResize, got, tc.want)
			}
		})
	}
}

func TestFitProperties(t *testing.T) {
	for gx := 1; gx <= 120; gx += 7 {
		for gy := 1; gy <= 120; gy += 5 {
			for cols := 4; cols <= 64; cols += 12 {
				for rows := 2; rows <= 32; rows += 6 {
					src := Size{gx, gy}
					capacity := Capacity(cols, rows)
					got := Fit(src, capacity, false)

					if got.Height%2 != 0 {
						t.Fatalf("Fit(%s, %s) = %s: odd height", src, capacity, got)
					}
					if got.Width < 1 || got.Height < 2 {
						t.Fatalf("Fit(%s, %s) = %s: degenerate", src, capacity, got)
					}
					if got.Width > capacity.Width || got.Height > capacity.Height {
						t.Fatalf("Fit(%s, %s) = %s: exceeds capacity", src, capacity, got)
					}
					if got.Width > gx || (got.Height > gy && gy >= 2) {
						t.Fatalf("Fit(%s, %s) = %s: upscaled", src, capacity, got)
					}
					// aspect within one pixel of rounding on either side
					if got.Width > 1 && got.Height > 2 {
						wantW := float64(got.Height) * float64(gx) / float64(gy)
						if math.Abs(float64(got.Width)-wantW) > 2*float64(gx)/float64(gy)+1 {
							t.Fatalf("Fit(%s, %s) = %s: aspect drift", src, capacity, got)
						}
					}
				}
			}
		}
	}
}

func TestCells(t *testing.T) {
	got := Size{40, 40}.Cells()
	if got != (Size{40, 20}) {
		t.Errorf("got %s, want 40x20", got)
	}
}
