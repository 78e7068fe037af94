package core

import (
	"fmt"

	"github.com/nora2605/gifscii/internal/meta"
	"github.com/nora2605/gifscii/internal/player"
	"github.com/nora2605/gifscii/internal/term"
	"github.com/nora2605/gifscii/internal/video"
)

// Play prepares the animation and loops it until the process is interrupted.
// Every input or environment error is returned before the screen is touched.
func (c *Core) Play(path string) error {
	log := log.WithField("scope", "core play")

	t := term.New(c.out)
	// before Setup, so an interrupt always finds a screen to restore
	t.HandleInterrupt()

	frames, size, err := c.Prepare(path)
	if err != nil {
		return err
	}
	p, err := player.New(t, frames)
	if err != nil {
		return err
	}
	// the player keeps its own encoded copy
	frames = nil
	log.Debugf("playing %d frames at %s", p.Len(), size.Cells())

	if err := t.Setup(); err != nil {
		return fmt.Errorf("terminal setup: %w", err)
	}
	err = p.Run()
	// only a dead stdout gets here
	_ = t.Restore()
	return err
}

// Info decodes the animation without playing it.
func (c *Core) Info(path string) (meta.Metadata, error) {
	anim, err := video.ExtractFrames(c.ctx, path)
	if err != nil {
		return meta.Metadata{}, err
	}
	return meta.New(path, anim), nil
}
