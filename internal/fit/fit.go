// Package fit computes the pixel size an animation is drawn at.
package fit

import (
	"fmt"

	cfg "github.com/nora2605/gifscii/internal/config"
)

// Size is a width x height pair in pixels.
type Size struct {
	Width  int
	Height int
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Cells is the terminal grid needed to show s.
func (s Size) Cells() Size {
	return Size{s.Width, s.Height / cfg.PixelsPerCell}
}

// Capacity converts a terminal grid to pixels. Each text row holds two pixel rows.
func Capacity(cols, rows int) Size {
	return Size{cols, rows * cfg.PixelsPerCell}
}

// Fit returns the target size for a source of size src shown in capacity.
// The source is shrunk uniformly until it fits and is never enlarged.
// With noResize the source size is kept even if it overflows.
// The height is always even and both sides are at least 1 (height 2).
func Fit(src, capacity Size, noResize bool) Size {
	target := src
	if !noResize && (src.Width > capacity.Width || src.Height > capacity.Height) {
		// scale = min(cw/sw, ch/sh), kept in integers so floor(side*scale) is exact
		if capacity.Width*src.Height <= capacity.Height*src.Width {
			target = Size{capacity.Width, src.Height * capacity.Width / src.Width}
		} else {
			target = Size{src.Width * capacity.Height / src.Height, capacity.Height}
		}
	}
	if target.Width < 1 {
		target.Width = 1
	}
	// round down so capacity still holds, a one pixel strip becomes one cell
	target.Height -= target.Height % cfg.PixelsPerCell
	if target.Height < cfg.PixelsPerCell {
		target.Height = cfg.PixelsPerCell
	}
	return target
}
