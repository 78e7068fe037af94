package video

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"os"
	"path/filepath"
	"strings"
	"time"

	cfg "github.com/nora2605/gifscii/internal/config"
	"github.com/nora2605/gifscii/internal/logger"
)

var (
	ErrNotFound          = errors.New("file doesn't exist")
	ErrUnsupportedFormat = errors.New("file is not a gif")
	ErrCorrupt           = errors.New("corrupt gif")
	ErrDimensions        = errors.New("unreadable dimensions")
)

// RawFrame is one fully composited animation frame.
type RawFrame struct {
	Image *image.NRGBA
	Delay time.Duration
}

// Animation holds every frame in memory. All frames share Width x Height.
type Animation struct {
	Width     int
	Height    int
	Frames    []RawFrame
	LoopCount int
}

func (a *Animation) Validate() error {
	if a.Width <= 0 || a.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrDimensions, a.Width, a.Height)
	}
	if len(a.Frames) == 0 {
		return fmt.Errorf("%w: no frames", ErrCorrupt)
	}
	for i, f := range a.Frames {
		b := f.Image.Bounds()
		if b.Dx() != a.Width || b.Dy() != a.Height {
			return fmt.Errorf("%w: frame %d is %dx%d, want %dx%d", ErrDimensions, i, b.Dx(), b.Dy(), a.Width, a.Height)
		}
		if f.Delay < 0 {
			return fmt.Errorf("%w: frame %d has negative delay", ErrCorrupt, i)
		}
	}
	return nil
}

// Duration is the length of one loop.
func (a *Animation) Duration() time.Duration {
	var d time.Duration
	for _, f := range a.Frames {
		d += f.Delay
	}
	return d
}

// CheckPath fails fast on missing files and foreign extensions.
func CheckPath(path string) error {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if !strings.EqualFold(filepath.Ext(path), cfg.ExtGIF) {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	return nil
}

// ExtractFrames decodes the whole gif and composites every frame onto the
// logical screen, so each RawFrame is a complete picture.
func ExtractFrames(ctx context.Context, path string) (*Animation, error) {
	log := logger.Log.WithField("scope", "video extract")

	if err := CheckPath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	defer f.Close()

	g, err := gif.DecodeAll(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	log.Debugf("decoded %s: %d images, screen %dx%d", path, len(g.Image), g.Config.Width, g.Config.Height)

	return Composite(ctx, g)
}

// Composite renders the gif sub-images into full frames honoring disposal.
func Composite(ctx context.Context, g *gif.GIF) (*Animation, error) {
	if len(g.Image) == 0 {
		return nil, fmt.Errorf("%w: no frames", ErrCorrupt)
	}
	screen := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if screen.Empty() {
		// header without a logical screen, fall back to the frames
		screen = image.Rectangle{}
		for _, p := range g.Image {
			screen = screen.Union(p.Bounds())
		}
		screen = image.Rect(0, 0, screen.Max.X, screen.Max.Y)
	}
	if screen.Empty() {
		return nil, fmt.Errorf("%w: %dx%d", ErrDimensions, screen.Dx(), screen.Dy())
	}

	anim := &Animation{
		Width:     screen.Dx(),
		Height:    screen.Dy(),
		Frames:    make([]RawFrame, 0, len(g.Image)),
		LoopCount: g.LoopCount,
	}

	canvas := image.NewNRGBA(screen)
	var previous *image.NRGBA
	for i, p := range g.Image {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		disposal := byte(0)
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}
		if disposal == gif.DisposalPrevious {
			previous = cloneNRGBA(canvas)
		}

		rect := p.Bounds().Intersect(screen)
		draw.Draw(canvas, rect, p, rect.Min, draw.Over)

		delay := 0
		if i < len(g.Delay) {
			delay = g.Delay[i]
		}
		anim.Frames = append(anim.Frames, RawFrame{
			Image: cloneNRGBA(canvas),
			// gif delays are in 1/100s
			Delay: time.Duration(delay) * 10 * time.Millisecond,
		})

		switch disposal {
		case gif.DisposalBackground:
			draw.Draw(canvas, rect, image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			if previous != nil {
				canvas = previous
			}
		}
	}

	if err := anim.Validate(); err != nil {
		return nil, err
	}
	return anim, nil
}

func cloneNRGBA(src *image.NRGBA) *image.NRGBA {
	dst := image.NewNRGBA(src.Rect)
	copy(dst.Pix, src.Pix)
	return dst
}
