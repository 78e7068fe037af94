package resample

import (
	"fmt"
	"image"

	"github.com/nora2605/gifscii/internal/fit"
)

// Area is a box filter: every target pixel is the plain mean of the source
// pixels that map into it. It only shrinks.
type Area struct{}

func (*Area) String() string {
	return "area"
}

func (*Area) Resample(src *image.NRGBA, to fit.Size) (*image.NRGBA, error) {
	b := src.Bounds()
	gx, gy := b.Dx(), b.Dy()
	if to.Width <= 0 || to.Height <= 0 {
		return nil, fmt.Errorf("invalid target size %s", to)
	}
	if to.Width > gx || to.Height > gy {
		return nil, fmt.Errorf("%w: %dx%d to %s", ErrUpscale, gx, gy, to)
	}

	xs := spans(gx, to.Width)
	ys := spans(gy, to.Height)

	dst := image.NewNRGBA(image.Rect(0, 0, to.Width, to.Height))
	for y := 0; y < to.Height; y++ {
		y0, y1 := ys[y], ys[y+1]
		for x := 0; x < to.Width; x++ {
			x0, x1 := xs[x], xs[x+1]

			// uint64 holds 255 * any frame that fits in memory
			var r, g, bl, a uint64
			for sy := y0; sy < y1; sy++ {
				row := src.PixOffset(b.Min.X, b.Min.Y+sy)
				for sx := x0; sx < x1; sx++ {
					p := src.Pix[row+sx*4 : row+sx*4+4 : row+sx*4+4]
					r += uint64(p[0])
					g += uint64(p[1])
					bl += uint64(p[2])
					a += uint64(p[3])
				}
			}
			n := uint64((x1 - x0) * (y1 - y0))
			o := dst.PixOffset(x, y)
			dst.Pix[o+0] = uint8(r / n)
			dst.Pix[o+1] = uint8(g / n)
			dst.Pix[o+2] = uint8(bl / n)
			dst.Pix[o+3] = uint8(a / n)
		}
	}
	return dst, nil
}

// spans splits n source pixels into m boxes. Box i is [s[i], s[i+1]) where
// s[i] = floor(i*n/m). With m <= n every box holds at least one pixel.
func spans(n, m int) []int {
	s := make([]int, m+1)
	for i := 0; i <= m; i++ {
		s[i] = int(float64(i*n) / float64(m))
	}
	s[m] = n
	return s
}
