package job

import (
	"fmt"

	"github.com/nora2605/gifscii/internal/encoder"
	"github.com/nora2605/gifscii/internal/video"
)

// job for the compile worker
type Job struct {
	Frame video.RawFrame
	Idx   int
}

// res from the compile worker
type Result struct {
	Frame *encoder.RenderFrame
	Idx   int
	Err   error
}

func New(f video.RawFrame, idx int) Job {
	return Job{
		Frame: f,
		Idx:   idx,
	}
}

func (j *Job) Print() string {
	b := j.Frame.Image.Bounds()
	return fmt.Sprintf("Job: Idx: %d, Size: %dx%d, Delay: %s", j.Idx, b.Dx(), b.Dy(), j.Frame.Delay)
}
