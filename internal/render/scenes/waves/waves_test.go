package waves

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/coreman2200/rgbshades/internal/layout"
	"github.com/coreman2200/rgbshades/internal/render"
)

func newContext() *render.Context {
	return &render.Context{
		Frame:   render.NewFrame(layout.Shades()),
		Palette: render.RainbowColors,
		Target:  render.RainbowColors,
	}
}

func snapshot(f *render.Frame) []render.Color {
	return append([]render.Color(nil), f.Pix...)
}

func TestDeclaredDelays(t *testing.T) {
	for _, tc := range []struct {
		fx    render.Effect
		delay time.Duration
	}{
		{NewThreeSine(), 20 * time.Millisecond},
		{NewPlasma(), 10 * time.Millisecond},
		{NewRider(), 5 * time.Millisecond},
		{NewSlantBars(), 5 * time.Millisecond},
		{NewPride(), 0},
		{NewColorWaves(), 0},
	} {
		c := newContext()
		tc.fx.Init(c)
		assert.Equal(t, tc.delay, c.Delay, tc.fx.Name())
	}
}

func TestThreeSinePeriodIs256Frames(t *testing.T) {
	c := newContext()
	e := NewThreeSine()
	e.Init(c)
	e.Render(c)
	first := snapshot(c.Frame)
	for i := 0; i < 255; i++ {
		e.Render(c)
	}
	e.Render(c)
	assert.Equal(t, first, c.Frame.Pix)
}

func TestRiderSweepsBothWays(t *testing.T) {
	c := newContext()
	e := NewRider()
	e.Init(c)

	brightest := func() int {
		best, at := -1, 0
		for x := 0; x < c.Frame.Width(); x++ {
			px := c.Frame.At(x, 2)
			if int(px.R) > best {
				best, at = int(px.R), x
			}
		}
		return at
	}
	e.Render(c)
	start := brightest()
	for i := 0; i < 64; i++ {
		e.Render(c)
	}
	mid := brightest()
	for i := 0; i < 64; i++ {
		e.Render(c)
	}
	assert.NotEqual(t, start, mid)
	assert.InDelta(t, start, brightest(), 1)
}

func TestPlasmaAndSlantFillEveryCell(t *testing.T) {
	for _, fx := range []render.Effect{NewPlasma(), NewSlantBars()} {
		c := newContext()
		fx.Init(c)
		fx.Render(c)
		fx.Render(c)
		lit := 0
		for _, px := range c.Frame.Pix {
			if px != render.Black {
				lit++
			}
		}
		assert.Greater(t, lit, len(c.Frame.Pix)/2, fx.Name())
	}
}

func TestPrideDrawsPhysicalLEDsOnly(t *testing.T) {
	c := newContext()
	e := NewPride()
	e.Init(c)
	for i := 0; i < 20; i++ {
		c.Now += time.Millisecond
		e.Render(c)
	}
	l := c.Frame.Layout
	lit := 0
	for i := 0; i < l.Physical; i++ {
		if c.Frame.Pix[i] != render.Black {
			lit++
		}
	}
	assert.Greater(t, lit, 0)
	for i := l.Physical; i < l.Count(); i++ {
		assert.Equal(t, render.Black, c.Frame.Pix[i])
	}
}

func TestColorWavesWalksPalettePlaylist(t *testing.T) {
	c := newContext()
	e := NewColorWaves()
	e.PaletteDwell = 100 * time.Millisecond
	e.Init(c)
	assert.Equal(t, render.Palette{}, c.Palette)
	assert.Equal(t, render.GradientPalettes[0], c.Target)
	assert.EqualValues(t, 16, c.Blend)

	for i := 0; i < 100; i++ {
		c.Now += time.Millisecond
		e.Render(c)
	}
	assert.Equal(t, 1, e.PaletteIndex())
	assert.Equal(t, render.GradientPalettes[1], c.Target)

	for i := 0; i < 100*(len(render.GradientPalettes)-1); i++ {
		c.Now += time.Millisecond
		e.Render(c)
	}
	assert.Equal(t, 0, e.PaletteIndex())
}
