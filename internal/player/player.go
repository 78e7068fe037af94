package player

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/nora2605/gifscii/internal/encoder"
	"github.com/nora2605/gifscii/internal/term"
)

var ErrEmpty = errors.New("nothing to play")

// Clock is the wall clock the scheduler measures render time against.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type wallClock struct{}

func (wallClock) Now() time.Time        { return time.Now() }
func (wallClock) Sleep(d time.Duration) { time.Sleep(d) }

// Screen is where frames go. term.Terminal implements the cursor part.
type Screen interface {
	io.Writer
	Home() error
}

// Player loops over a fixed schedule forever.
type Player struct {
	screen   Screen
	clock    Clock
	payloads [][]byte
	delays   []time.Duration
}

// New encodes every frame once. The schedule is not modified afterwards.
func New(screen Screen, frames []*encoder.RenderFrame) (*Player, error) {
	if len(frames) == 0 {
		return nil, ErrEmpty
	}
	p := &Player{
		screen:   screen,
		clock:    wallClock{},
		payloads: make([][]byte, len(frames)),
		delays:   make([]time.Duration, len(frames)),
	}
	for i, f := range frames {
		p.payloads[i] = Encode(f)
		p.delays[i] = f.Delay
	}
	return p, nil
}

func (p *Player) Len() int {
	return len(p.payloads)
}

// Run plays frame 0..N-1 and starts over. It only returns if the screen
// stops accepting writes; interrupts end the process elsewhere.
func (p *Player) Run() error {
	for i := 0; ; i = (i + 1) % len(p.payloads) {
		if err := p.PlayFrame(i); err != nil {
			return err
		}
	}
}

// PlayFrame writes frame i in one batch, waits out what is left of its
// delay and moves the cursor back home.
func (p *Player) PlayFrame(i int) error {
	start := p.clock.Now()
	if _, err := p.screen.Write(p.payloads[i]); err != nil {
		return fmt.Errorf("write frame %d: %w", i, err)
	}
	if d := Remaining(p.delays[i], p.clock.Now().Sub(start)); d > 0 {
		p.clock.Sleep(d)
	}
	if err := p.screen.Home(); err != nil {
		return fmt.Errorf("move home: %w", err)
	}
	return nil
}

// Remaining is the sleep left after spending elapsed of delay. Never negative.
func Remaining(delay, elapsed time.Duration) time.Duration {
	if elapsed >= delay {
		return 0
	}
	return delay - elapsed
}

// Encode renders the cells row by row. Every cell sets both colors before
// the glyph; rows are separated by a color reset and a line break.
func Encode(f *encoder.RenderFrame) []byte {
	// ~40 bytes of SGR + 3 bytes of glyph per cell
	buf := make([]byte, 0, f.Width*f.Height*43+f.Height*len(term.ResetColor+"\n"))
	for y := 0; y < f.Height; y++ {
		for _, c := range f.Row(y) {
			buf = term.AppendColors(buf, c.Fg, c.Bg)
			buf = append(buf, string(encoder.Glyph)...)
		}
		if y != f.Height-1 {
			buf = append(buf, term.ResetColor+"\n"...)
		}
	}
	return buf
}
