package meta

import (
	"fmt"
	"hash/fnv"
	"path/filepath"
	"time"

	"github.com/nora2605/gifscii/internal/logger"
	"github.com/nora2605/gifscii/internal/video"
)

// Metadata summarizes a decoded animation for the info command.
type Metadata struct {
	Filename  string
	Width     int
	Height    int
	Frames    int
	LoopCount int
	duration  time.Duration
	checksum  uint64
}

func New(path string, a *video.Animation) Metadata {
	return Metadata{
		Filename:  filepath.Base(path),
		Width:     a.Width,
		Height:    a.Height,
		Frames:    len(a.Frames),
		LoopCount: a.LoopCount,
		duration:  a.Duration(),
		checksum:  generateChecksum(a),
	}
}

func (m *Metadata) Duration() time.Duration {
	return m.duration
}

func (m *Metadata) Checksum() uint64 {
	return m.checksum
}

// FPS is the mean frame rate over one loop, 0 when the gif has no delays.
func (m *Metadata) FPS() float64 {
	if m.duration <= 0 {
		return 0
	}
	return float64(m.Frames) / m.duration.Seconds()
}

// FormatLoop describes the loop count the file asks for.
// Playback loops forever regardless.
func (m *Metadata) FormatLoop() string {
	switch {
	case m.LoopCount == 0:
		return "forever"
	case m.LoopCount < 0:
		return "once"
	default:
		return fmt.Sprintf("%d times", m.LoopCount+1)
	}
}

func (m *Metadata) Print() string {
	return fmt.Sprintf("Filename: %s, Size: %dx%d, Frames: %d, Duration: %s, Checksum: %016x",
		m.Filename, m.Width, m.Height, m.Frames, m.duration, m.checksum)
}

func generateChecksum(a *video.Animation) uint64 {
	log := logger.Log.WithField("scope", "meta hasher")
	hasher := fnv.New64a()
	for _, f := range a.Frames {
		// fnv never fails to write
		_, _ = hasher.Write(f.Image.Pix)
	}
	sum := hasher.Sum64()
	log.Debugf("checksum of %d frames: %016x", len(a.Frames), sum)
	return sum
}
