package config

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"gopkg.in/yaml.v2"
)

const (
	// the only container we can decode
	ExtGIF = ".gif"

	// every cell packs 2 pixel rows
	PixelsPerCell = 2

	DefaultResizeMode = ResizeTriangle

	EnvConfig     = "GIFSCII_CONFIG"
	EnvResizeMode = "GIFSCII_RESIZE_MODE"
)

// resize modes, see resample.New
const (
	ResizeNearest    = "nearest"
	ResizeTriangle   = "triangle"
	ResizeCatmullRom = "catmullrom"
	ResizeGaussian   = "gaussian"
	ResizeLanczos3   = "lanczos3"
	ResizeArea       = "area"
)

// ResizeModes lists canonical mode names in the order they are shown in help.
var ResizeModes = []string{
	ResizeNearest,
	ResizeTriangle,
	ResizeCatmullRom,
	ResizeGaussian,
	ResizeLanczos3,
	ResizeArea,
}

var resizeAliases = map[string]string{
	"linear":  ResizeTriangle,
	"cubic":   ResizeCatmullRom,
	"sinc":    ResizeLanczos3,
	"lanczos": ResizeLanczos3,
	"box":     ResizeArea,
}

type Config struct {
	ResizeMode string `yaml:"resize_mode"`
	NoResize   bool   `yaml:"no_resize"`
	Workers    int    `yaml:"workers"`
	Quiet      bool   `yaml:"quiet"`
}

func Default() Config {
	return Config{
		ResizeMode: DefaultResizeMode,
		Workers:    runtime.NumCPU(),
	}
}

// Load reads a yaml config on top of the defaults.
// An empty path returns the defaults.
func Load(path string) (Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return c, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	err = yaml.NewDecoder(f).Decode(&c)
	if err != nil {
		return c, fmt.Errorf("parse config %s: %w", path, err)
	}
	return c, nil
}

// NormalizeResizeMode maps aliases to the canonical mode name.
func NormalizeResizeMode(mode string) (string, error) {
	m := strings.ToLower(strings.TrimSpace(mode))
	if m == "" {
		return DefaultResizeMode, nil
	}
	if alias, ok := resizeAliases[m]; ok {
		return alias, nil
	}
	for _, known := range ResizeModes {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("invalid resize mode %q, want one of %s", mode, strings.Join(ResizeModes, ", "))
}

// Validate normalizes the config in place.
func (c *Config) Validate() error {
	mode, err := NormalizeResizeMode(c.ResizeMode)
	if err != nil {
		return err
	}
	c.ResizeMode = mode
	if c.Workers < 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if c.Workers == 0 {
		c.Workers = runtime.NumCPU()
	}
	return nil
}
