// Package sparkle has the random-sprinkle effects.
package sparkle

import (
	"time"

	"github.com/coreman2200/rgbshades/internal/render"
)

// Glitter shimmers every cell at one of five random levels of the global hue.
type Glitter struct{}

func NewGlitter() *Glitter { return &Glitter{} }

func (e *Glitter) Name() string { return "glitter" }

func (e *Glitter) Init(c *render.Context) {
	c.SetDelay(15 * time.Millisecond)
}

func (e *Glitter) Render(c *render.Context) {
	f := c.Frame
	for x := 0; x < f.Width(); x++ {
		for y := 0; y < f.Height(); y++ {
			f.Set(x, y, render.HSV(c.Hue, 255, c.Random8(5)*63))
		}
	}
}

// Confetti drops palette-coloured pixels at random cells and lets old ones
// decay. A random standard palette is faded in on activation.
type Confetti struct {
	Drops int
	Fade  uint8
}

func NewConfetti() *Confetti { return &Confetti{Drops: 4, Fade: 1} }

func (e *Confetti) Name() string { return "confetti" }

func (e *Confetti) Init(c *render.Context) {
	c.SetDelay(10 * time.Millisecond)
	c.SetTarget(render.RandomPalette(c.Rand))
}

func (e *Confetti) Render(c *render.Context) {
	f := c.Frame
	f.FadeAll(e.Fade)
	for i := 0; i < e.Drops; i++ {
		x := int(c.Random8(f.Width()))
		y := int(c.Random8(f.Height()))
		f.Set(x, y, render.ColorFromPalette(c.Palette, c.Random8(255), 255))
	}
}

// SideRain scrolls the panel sideways and seeds one random pixel per frame
// in the freed column.
type SideRain struct {
	Dir int // 0 rains right, anything else left
}

func NewSideRain() *SideRain { return &SideRain{} }

func (e *SideRain) Name() string { return "side-rain" }

func (e *SideRain) Init(c *render.Context) {
	c.SetDelay(30 * time.Millisecond)
}

func (e *SideRain) Render(c *render.Context) {
	f := c.Frame
	f.Scroll(e.Dir)
	col := 0
	if e.Dir != 0 {
		col = f.Width() - 1
	}
	f.FillColumn(col, render.Black)
	f.Set(col, int(c.Random8(f.Height())), render.HSV(c.Hue, 255, 255))
}
