package core

import (
	"context"
	"os"

	cfg "github.com/nora2605/gifscii/internal/config"
	"github.com/nora2605/gifscii/internal/fit"
	"github.com/nora2605/gifscii/internal/logger"
	"github.com/nora2605/gifscii/internal/resample"
	"github.com/nora2605/gifscii/internal/term"
)

var log = logger.Log

type Core struct {
	ctx context.Context
	cfg cfg.Config
	out *os.File
	// drawable area in pixels, the terminal behind out unless a test swaps it
	capacity func() (fit.Size, error)
}

func NewCore(ctx context.Context, c cfg.Config) *Core {
	core := &Core{
		ctx: ctx,
		cfg: c,
		out: os.Stdout,
	}
	core.capacity = core.terminalCapacity
	return core
}

func (c *Core) terminalCapacity() (fit.Size, error) {
	cols, rows, err := term.Size(c.out)
	if err != nil {
		return fit.Size{}, err
	}
	return fit.Capacity(cols, rows), nil
}

// resampler picks the configured strategy. Area averaging only shrinks, so a
// target taller than a one pixel source falls back to nearest.
func (c *Core) resampler(src, target fit.Size) (resample.Resampler, error) {
	r, err := resample.New(c.cfg.ResizeMode)
	if err != nil {
		return nil, err
	}
	if _, ok := r.(*resample.Area); ok && (target.Width > src.Width || target.Height > src.Height) {
		log.Warnf("area averaging cannot enlarge %s to %s, using %s", src, target, cfg.ResizeNearest)
		return resample.New(cfg.ResizeNearest)
	}
	return r, nil
}
