package core

import (
	"context"

	"github.com/nora2605/gifscii/internal/core/progress"
	"github.com/nora2605/gifscii/internal/encoder"
	"github.com/nora2605/gifscii/internal/fit"
	"github.com/nora2605/gifscii/internal/job"
	"github.com/nora2605/gifscii/internal/resample"
	"github.com/nora2605/gifscii/internal/video"
	"github.com/nora2605/gifscii/internal/workers"
)

// 1. decode the gif into full frames
// 2. fit the frame size into the terminal
// 3. resample + encode every frame on the workers
func (c *Core) Prepare(path string) ([]*encoder.RenderFrame, fit.Size, error) {
	log := log.WithField("scope", "core prepare")

	anim, err := video.ExtractFrames(c.ctx, path)
	if err != nil {
		return nil, fit.Size{}, err
	}
	src := fit.Size{Width: anim.Width, Height: anim.Height}
	log.Debugf("decoded %d frames of %s from %s", len(anim.Frames), src, path)

	target, err := c.Target(src)
	if err != nil {
		return nil, fit.Size{}, err
	}

	r, err := c.resampler(src, target)
	if err != nil {
		return nil, fit.Size{}, err
	}

	// anim is dropped when we return, only the render frames stay
	frames, err := c.Compile(anim, target, r)
	if err != nil {
		return nil, fit.Size{}, err
	}
	return frames, target, nil
}

// Target fits src into the terminal.
func (c *Core) Target(src fit.Size) (fit.Size, error) {
	capacity, err := c.capacity()
	if err != nil {
		return fit.Size{}, err
	}
	target := fit.Fit(src, capacity, c.cfg.NoResize)
	log.Debugf("source %s, terminal %s, target %s", src, capacity, target)
	return target, nil
}

// Compile resamples and encodes all frames in parallel. The result keeps the
// frame order; the first failing frame aborts the whole animation.
func (c *Core) Compile(anim *video.Animation, size fit.Size, r resample.Resampler) ([]*encoder.RenderFrame, error) {
	log := log.WithField("scope", "core compile")

	ctx, cancel := context.WithCancel(c.ctx)
	defer cancel()

	n := len(anim.Frames)
	cores := c.cfg.Workers
	if cores < 1 {
		cores = 1
	}
	if cores > n {
		cores = n
	}

	jobs := make(chan job.Job, cores) // buff by G count
	results := make(chan job.Result, cores)
	worker := workers.NewWorker(ctx, size, r)
	log.Debugf("Starting %d workers for %d frames", cores, n)
	for i := 0; i < cores; i++ {
		go worker.WorkerCompile(i+1, jobs, results)
	}

	// send all the jobs
	go func() {
		defer close(jobs)
		for i, f := range anim.Frames {
			select {
			case jobs <- job.New(f, i):
			case <-ctx.Done():
				return
			}
		}
	}()

	progress.ProgressReset(n, "Compiling frames...", c.cfg.Quiet)
	frames := make([]*encoder.RenderFrame, n)
	for done := 0; done < n; done++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case res := <-results:
			if res.Err != nil {
				return nil, res.Err
			}
			frames[res.Idx] = res.Frame
			progress.Add(1)
		}
	}
	progress.Finish()
	log.Debugf("compiled %d frames", n)
	return frames, nil
}
