package term

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/lucasb-eyer/go-colorful"
	xterm "golang.org/x/term"

	"github.com/nora2605/gifscii/internal/logger"
)

const (
	HideCursor  = "\x1b[?25l"
	ShowCursor  = "\x1b[?25h"
	ClearScreen = "\x1b[2J"
	MoveHome    = "\x1b[H"
	ResetColor  = "\x1b[0m"
)

var ErrNotTerminal = errors.New("stdout is not a terminal")

// Size returns the terminal grid of f in character cells.
func Size(f *os.File) (cols, rows int, err error) {
	fd := int(f.Fd())
	if !xterm.IsTerminal(fd) {
		return 0, 0, ErrNotTerminal
	}
	cols, rows, err = xterm.GetSize(fd)
	if err != nil {
		return 0, 0, fmt.Errorf("terminal size: %w", err)
	}
	if cols < 1 || rows < 1 {
		return 0, 0, fmt.Errorf("terminal size: %dx%d", cols, rows)
	}
	return cols, rows, nil
}

// AppendColors appends a single truecolor SGR setting fg and bg.
func AppendColors(buf []byte, fg, bg colorful.Color) []byte {
	r, g, b := fg.Clamped().RGB255()
	buf = append(buf, "\x1b[38;2;"...)
	buf = appendRGB(buf, r, g, b)
	buf = append(buf, ";48;2;"...)
	r, g, b = bg.Clamped().RGB255()
	buf = appendRGB(buf, r, g, b)
	return append(buf, 'm')
}

func appendRGB(buf []byte, r, g, b uint8) []byte {
	buf = strconv.AppendUint(buf, uint64(r), 10)
	buf = append(buf, ';')
	buf = strconv.AppendUint(buf, uint64(g), 10)
	buf = append(buf, ';')
	return strconv.AppendUint(buf, uint64(b), 10)
}

// Terminal owns the screen state shared by the player and the interrupt handler.
type Terminal struct {
	out  io.Writer
	exit func(code int)
}

// New wraps out, which must be unbuffered so Restore reaches the terminal
// before the process dies.
func New(out io.Writer) *Terminal {
	return &Terminal{out: out, exit: os.Exit}
}

// HandleInterrupt registers the shutdown path: on SIGINT or SIGTERM the
// cursor and colors are restored and the process exits with status 0.
// Call it once, before Setup.
func (t *Terminal) HandleInterrupt() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go t.watch(sigCh)
}

func (t *Terminal) watch(sigCh <-chan os.Signal) {
	sig := <-sigCh
	logger.Log.WithField("scope", "term").Debugf("got %s", sig)
	_ = t.Restore()
	t.exit(0)
}

// Setup hides the cursor and clears the screen.
func (t *Terminal) Setup() error {
	_, err := io.WriteString(t.out, HideCursor+ClearScreen+MoveHome)
	return err
}

func (t *Terminal) Write(p []byte) (int, error) {
	return t.out.Write(p)
}

// Home moves the cursor to the top-left cell.
func (t *Terminal) Home() error {
	_, err := io.WriteString(t.out, MoveHome)
	return err
}

// Restore shows the cursor and resets colors.
func (t *Terminal) Restore() error {
	_, err := io.WriteString(t.out, ShowCursor+ResetColor)
	return err
}
