package encoder

import (
	"fmt"
	"image"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	cfg "github.com/nora2605/gifscii/internal/config"
)

// Glyph is drawn in every cell. Its foreground paints the lower half and
// the background the upper half.
const Glyph = '▄'

// Cell is one character position: the upper pixel goes to Bg, the lower one to Fg.
type Cell struct {
	Fg colorful.Color
	Bg colorful.Color
}

// RenderFrame is a grid of cells stored row by row, ready to be printed.
type RenderFrame struct {
	Width  int
	Height int
	Cells  []Cell
	Delay  time.Duration
}

func (f *RenderFrame) At(x, y int) Cell {
	return f.Cells[y*f.Width+x]
}

func (f *RenderFrame) Row(y int) []Cell {
	return f.Cells[y*f.Width : (y+1)*f.Width]
}

type FrameEncoder struct {
	width  int
	height int
}

// NewFrameEncoder encodes pixel frames of width x height.
// height must be even, it maps to height/2 cell rows.
func NewFrameEncoder(width, height int) *FrameEncoder {
	return &FrameEncoder{width, height}
}

// EncodeFrame packs two pixel rows into each cell row. Alpha is dropped.
func (f *FrameEncoder) EncodeFrame(img *image.NRGBA, delay time.Duration) (*RenderFrame, error) {
	b := img.Bounds()
	if b.Dx() != f.width || b.Dy() != f.height {
		return nil, fmt.Errorf("frame is %dx%d, encoder wants %dx%d", b.Dx(), b.Dy(), f.width, f.height)
	}
	if f.height%cfg.PixelsPerCell != 0 {
		return nil, fmt.Errorf("frame height %d is not even", f.height)
	}

	rows := f.height / cfg.PixelsPerCell
	out := &RenderFrame{
		Width:  f.width,
		Height: rows,
		Cells:  make([]Cell, f.width*rows),
		Delay:  delay,
	}
	for y := 0; y < rows; y++ {
		upper := img.PixOffset(b.Min.X, b.Min.Y+2*y)
		lower := img.PixOffset(b.Min.X, b.Min.Y+2*y+1)
		for x := 0; x < f.width; x++ {
			out.Cells[y*f.width+x] = Cell{
				Fg: rgb(img.Pix[lower+x*4:]),
				Bg: rgb(img.Pix[upper+x*4:]),
			}
		}
	}
	return out, nil
}

func rgb(p []uint8) colorful.Color {
	return colorful.Color{
		R: float64(p[0]) / 255.0,
		G: float64(p[1]) / 255.0,
		B: float64(p[2]) / 255.0,
	}
}
