package workers

import (
	"context"
	"fmt"
	"time"

	"github.com/nora2605/gifscii/internal/encoder"
	"github.com/nora2605/gifscii/internal/fit"
	"github.com/nora2605/gifscii/internal/job"
	"github.com/nora2605/gifscii/internal/logger"
	"github.com/nora2605/gifscii/internal/resample"
)

var log = logger.Log

// Worker resamples and encodes frames. Frames do not depend on each other,
// so any number of WorkerCompile loops can share one Worker.
type Worker struct {
	ctx       context.Context
	size      fit.Size
	resampler resample.Resampler
	encoder   *encoder.FrameEncoder
}

func NewWorker(ctx context.Context, size fit.Size, r resample.Resampler) *Worker {
	return &Worker{
		ctx:       ctx,
		size:      size,
		resampler: r,
		encoder:   encoder.NewFrameEncoder(size.Width, size.Height),
	}
}

// Compile turns one raw frame into a render frame.
func (w *Worker) Compile(j job.Job) (*encoder.RenderFrame, error) {
	img, err := w.resampler.Resample(j.Frame.Image, w.size)
	if err != nil {
		return nil, fmt.Errorf("resample frame %d: %w", j.Idx, err)
	}
	f, err := w.encoder.EncodeFrame(img, j.Frame.Delay)
	if err != nil {
		return nil, fmt.Errorf("encode frame %d: %w", j.Idx, err)
	}
	return f, nil
}

func (w *Worker) WorkerCompile(id int, jobs <-chan job.Job, results chan<- job.Result) {
	name := fmt.Sprintf("WorkerCompile #%d", id)
	log.Debugf("%s started", name)
	defer log.Debugf("%s finished", name)

	for {
		select {
		case <-w.ctx.Done():
			return
		case j, ok := <-jobs:
			if !ok {
				return
			}
			log.Debugf("%s got %s", name, j.Print())

			now := time.Now()
			f, err := w.Compile(j)
			log.Debugf("%s frame %d done. Took time: %s", name, j.Idx, time.Since(now))

			select {
			case results <- job.Result{Frame: f, Idx: j.Idx, Err: err}:
			case <-w.ctx.Done():
				return
			}
		}
	}
}
