package sparkle

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coreman2200/rgbshades/internal/layout"
	"github.com/coreman2200/rgbshades/internal/render"
)

func newContext() *render.Context {
	return &render.Context{
		Frame:   render.NewFrame(layout.Shades()),
		Palette: render.RainbowColors,
		Target:  render.RainbowColors,
		Hue:     0,
		Rand:    rand.New(rand.NewSource(7)),
	}
}

func TestGlitterUsesFiveLevels(t *testing.T) {
	c := newContext()
	e := NewGlitter()
	e.Init(c)
	e.Render(c)
	for _, px := range c.Frame.Pix {
		assert.Zero(t, px.G)
		assert.Zero(t, px.R%63, "red %d is not a glitter level", px.R)
	}
}

func TestConfettiFadesInARandomPalette(t *testing.T) {
	c := newContext()
	e := NewConfetti()
	e.Init(c)
	assert.Equal(t, render.RainbowColors, c.Palette, "palette switch must fade, not jump")
	assert.Contains(t, []render.Palette{
		render.RainbowColors, render.RainbowStripeColors, render.PartyColors, render.CloudColors,
		render.LavaColors, render.OceanColors, render.ForestColors, render.HeatColors,
	}, c.Target)

	e.Render(c)
	lit := 0
	for _, px := range c.Frame.Pix {
		if px != render.Black {
			lit++
		}
	}
	assert.True(t, lit > 0 && lit <= e.Drops, "lit=%d", lit)

	c.Frame.Fill(render.White)
	e.Drops = 0
	e.Render(c)
	assert.Less(t, c.Frame.Pix[0].R, uint8(255))
}

func TestSideRainSeedsOneCellPerFrame(t *testing.T) {
	c := newContext()
	e := NewSideRain()
	e.Init(c)
	for i := 0; i < 5; i++ {
		e.Render(c)
		lit := 0
		for y := 0; y < c.Frame.Height(); y++ {
			if c.Frame.At(0, y) != render.Black {
				lit++
			}
		}
		assert.Equal(t, 1, lit)
	}
	// the first drop has moved five columns right by now
	lit := 0
	for y := 0; y < c.Frame.Height(); y++ {
		if c.Frame.At(4, y) != render.Black {
			lit++
		}
	}
	assert.Equal(t, 1, lit)
}
