package video

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"os"
	"path/filepath"
	"testing"
	"time"
)

var (
	transparent = color.NRGBA{0, 0, 0, 0}
	red         = color.NRGBA{255, 0, 0, 255}
	blue        = color.NRGBA{0, 0, 255, 255}
	palette     = color.Palette{transparent, red, blue}
)

func filled(r image.Rectangle, idx uint8) *image.Paletted {
	p := image.NewPaletted(r, palette)
	for i := range p.Pix {
		p.Pix[i] = idx
	}
	return p
}

func writeGIF(t *testing.T, name string, g *gif.GIF) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := gif.EncodeAll(f, g); err != nil {
		t.Fatal(err)
	}
	return path
}

func testGIF() *gif.GIF {
	return &gif.GIF{
		Image: []*image.Paletted{
			filled(image.Rect(0, 0, 4, 4), 1),
			filled(image.Rect(1, 1, 3, 3), 2),
			filled(image.Rect(0, 0, 1, 1), 2),
		},
		Delay:    []int{10, 5, 0},
		Disposal: []byte{gif.DisposalNone, gif.DisposalBackground, gif.DisposalNone},
		Config:   image.Config{Width: 4, Height: 4},
	}
}

func TestExtractFrames(t *testing.T) {
	path := writeGIF(t, "anim.gif", testGIF())

	anim, err := ExtractFrames(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if anim.Width != 4 || anim.Height != 4 {
		t.Fatalf("got %dx%d, want 4x4", anim.Width, anim.Height)
	}
	if len(anim.Frames) != 3 {
		t.Fatalf("got %d frames, want 3", len(anim.Frames))
	}

	wantDelays := []time.Duration{100 * time.Millisecond, 50 * time.Millisecond, 0}
	for i, want := range wantDelays {
		if got := anim.Frames[i].Delay; got != want {
			t.Errorf("frame %d delay = %s, want %s", i, got, want)
		}
	}
	if got := anim.Duration(); got != 150*time.Millisecond {
		t.Errorf("duration = %s, want 150ms", got)
	}

	testCases := []struct {
		name  string
		frame int
		x, y  int
		want  color.NRGBA
	}{
		{name: "first frame is red", frame: 0, x: 3, y: 3, want: red},
		{name: "second frame draws over", frame: 1, x: 1, y: 1, want: blue},
		{name: "second frame keeps the rest", frame: 1, x: 0, y: 0, want: red},
		{name: "disposal clears to transparent", frame: 2, x: 2, y: 2, want: transparent},
		{name: "third frame drawn", frame: 2, x: 0, y: 0, want: blue},
		{name: "outside disposed rect kept", frame: 2, x: 3, y: 3, want: red},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := anim.Frames[tc.frame].Image.NRGBAAt(tc.x, tc.y)
			if got != tc.want {
				t.Errorf("pixel (%d,%d) = %v, want %v", tc.x, tc.y, got, tc.want)
			}
		})
	}
}

func TestCompositeDisposalPrevious(t *testing.T) {
	g := &gif.GIF{
		Image: []*image.Paletted{
			filled(image.Rect(0, 0, 2, 2), 1),
			filled(image.Rect(0, 0, 1, 1), 2),
			filled(image.Rect(1, 1, 2, 2), 0),
		},
		Delay:    []int{1, 1, 1},
		Disposal: []byte{gif.DisposalNone, gif.DisposalPrevious, gif.DisposalNone},
		Config:   image.Config{Width: 2, Height: 2},
	}

	anim, err := Composite(context.Background(), g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := anim.Frames[1].Image.NRGBAAt(0, 0); got != blue {
		t.Errorf("frame 1 pixel = %v, want blue", got)
	}
	// frame 1 is undone before frame 2 is drawn
	if got := anim.Frames[2].Image.NRGBAAt(0, 0); got != red {
		t.Errorf("frame 2 pixel = %v, want red", got)
	}
}

func TestCompositeEmptyScreen(t *testing.T) {
	g := &gif.GIF{
		Image: []*image.Paletted{filled(image.Rect(0, 0, 3, 2), 1)},
		Delay: []int{0},
	}
	anim, err := Composite(context.Background(), g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if anim.Width != 3 || anim.Height != 2 {
		t.Errorf("got %dx%d, want 3x2", anim.Width, anim.Height)
	}
}

func TestExtractFramesErrors(t *testing.T) {
	dir := t.TempDir()
	notGIF := filepath.Join(dir, "image.png")
	if err := os.WriteFile(notGIF, []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}
	corrupt := filepath.Join(dir, "broken.gif")
	if err := os.WriteFile(corrupt, []byte("GIF89a garbage"), 0o644); err != nil {
		t.Fatal(err)
	}

	testCases := []struct {
		name string
		path string
		want error
	}{
		{name: "missing", path: filepath.Join(dir, "missing.gif"), want: ErrNotFound},
		{name: "directory", path: dir, want: ErrNotFound},
		{name: "wrong extension", path: notGIF, want: ErrUnsupportedFormat},
		{name: "corrupt", path: corrupt, want: ErrCorrupt},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ExtractFrames(context.Background(), tc.path)
			if !errors.Is(err, tc.want) {
				t.Errorf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestExtractFramesUpperCaseExtension(t *testing.T) {
	path := writeGIF(t, "ANIM.GIF", testGIF())
	if _, err := ExtractFrames(context.Background(), path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate(t *testing.T) {
	anim := &Animation{
		Width:  2,
		Height: 2,
		Frames: []RawFrame{{Image: image.NewNRGBA(image.Rect(0, 0, 2, 3))}},
	}
	if err := anim.Validate(); !errors.Is(err, ErrDimensions) {
		t.Errorf("got %v, want ErrDimensions", err)
	}
	empty := &Animation{Width: 2, Height: 2}
	if err := empty.Validate(); !errors.Is(err, ErrCorrupt) {
		t.Errorf("got %v, want ErrCorrupt", err)
	}
}
