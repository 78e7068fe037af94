package resample

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/disintegration/gift"

	cfg "github.com/nora2605/gifscii/internal/config"
	"github.com/nora2605/gifscii/internal/fit"
)

var (
	ErrUnknownMode = errors.New("unknown resize mode")
	ErrUpscale     = errors.New("area averaging cannot upscale")
)

// Resampler turns one frame into a frame of exactly the target size.
// Implementations keep no state between calls and are safe for concurrent use.
type Resampler interface {
	Resample(src *image.NRGBA, to fit.Size) (*image.NRGBA, error)
}

// New returns the resampler for a resize mode name (aliases allowed).
func New(mode string) (Resampler, error) {
	m, err := cfg.NormalizeResizeMode(mode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknownMode, err)
	}
	switch m {
	case cfg.ResizeNearest:
		return &Kernel{name: m, resampling: gift.NearestNeighborResampling}, nil
	case cfg.ResizeTriangle:
		return &Kernel{name: m, resampling: gift.LinearResampling}, nil
	case cfg.ResizeCatmullRom:
		return &Kernel{name: m, resampling: gift.CubicResampling}, nil
	case cfg.ResizeGaussian:
		return &Kernel{name: m, resampling: GaussianResampling}, nil
	case cfg.ResizeLanczos3:
		return &Kernel{name: m, resampling: gift.LanczosResampling}, nil
	case cfg.ResizeArea:
		return &Area{}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownMode, mode)
}

// Kernel samples the source continuously through an interpolation kernel.
type Kernel struct {
	name       string
	resampling gift.Resampling
}

func (k *Kernel) String() string {
	return k.name
}

func (k *Kernel) Resample(src *image.NRGBA, to fit.Size) (*image.NRGBA, error) {
	if to.Width <= 0 || to.Height <= 0 {
		return nil, fmt.Errorf("invalid target size %s", to)
	}
	g := gift.New(gift.Resize(to.Width, to.Height, k.resampling))
	// frames are already spread over workers
	g.SetParallelization(false)
	dst := image.NewNRGBA(g.Bounds(src.Bounds()))
	g.Draw(dst, src)
	return dst, nil
}

// GaussianResampling is a gaussian kernel with sigma 0.5 and support 3.
var GaussianResampling gift.Resampling = gaussian{sigma: 0.5, support: 3}

type gaussian struct {
	sigma   float64
	support float32
}

func (g gaussian) Support() float32 {
	return g.support
}

func (g gaussian) Kernel(x float32) float32 {
	if x < 0 {
		x = -x
	}
	if x >= g.support {
		return 0
	}
	v := float64(x)
	return float32(math.Exp(-v*v/(2*g.sigma*g.sigma)) / math.Sqrt(2*math.Pi*g.sigma*g.sigma))
}
