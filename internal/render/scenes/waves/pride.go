package waves

import (
	"time"

	"github.com/coreman2200/rgbshades/internal/render"
)

// washState is the free-running clock shared by the rainbow washes. Both
// are drawn along the strip, last LED first, blending into what is there.
type washState struct {
	pseudotime uint16
	lastMillis uint16
	hue16      uint16
}

type washParams struct {
	hueLow, hueHigh uint16
	blend           uint8
}

// step advances the clock to now and calls draw with (hue16, brightness)
// for every physical LED in strip order.
func (s *washState) step(now time.Duration, p washParams, n int, draw func(i int, hue16 uint16, sat, bri uint8)) {
	sat8 := uint8(render.Beatsin88(87, 220, 250, now))
	brightdepth := uint8(render.Beatsin88(341, 96, 224, now))
	brightThetaInc := render.Beatsin88(203, 25*256, 40*256, now)
	msmultiplier := render.Beatsin88(147, 23, 60, now)

	hue16 := s.hue16
	hueinc16 := render.Beatsin88(113, p.hueLow, p.hueHigh, now)

	ms := uint16(now.Milliseconds())
	deltams := ms - s.lastMillis
	s.lastMillis = ms
	s.pseudotime += deltams * msmultiplier
	s.hue16 += deltams * render.Beatsin88(400, 5, 9, now)
	brightTheta := s.pseudotime

	for i := 0; i < n; i++ {
		hue16 += hueinc16
		brightTheta += brightThetaInc
		b16 := uint32(uint16(int32(render.Sin16(brightTheta)) + 32768))
		bri16 := b16 * b16 / 65536
		bri8 := uint8(bri16*uint32(brightdepth)/65536) + (255 - brightdepth)
		draw(n-1-i, hue16, sat8, bri8)
	}
}

// Pride draws ever-changing rainbows. It declares no delay and runs at the
// engine's minimum cadence.
type Pride struct {
	wash washState
}

func NewPride() *Pride { return &Pride{} }

func (e *Pride) Name() string { return "pride" }

func (e *Pride) Init(c *render.Context) {}

func (e *Pride) Render(c *render.Context) {
	pix := c.Frame.Pix
	p := washParams{hueLow: 1, hueHigh: 3000, blend: 64}
	e.wash.step(c.Now, p, c.Frame.Layout.Physical, func(i int, hue16 uint16, sat, bri uint8) {
		render.Nblend(&pix[i], render.HSV(uint8(hue16>>8), sat, bri), p.blend)
	})
}

// ColorWaves draws shifting colour waves through the gradient palette
// playlist, moving to the next palette every PaletteDwell. The engine's
// blend timer cross-fades between them at BlendStep per tick of that timer.
type ColorWaves struct {
	PaletteDwell time.Duration
	BlendStep    uint8

	wash    washState
	current int
	since   time.Duration
}

func NewColorWaves() *ColorWaves {
	return &ColorWaves{PaletteDwell: 10 * time.Second, BlendStep: 16}
}

func (e *ColorWaves) Name() string { return "color-waves" }

func (e *ColorWaves) Init(c *render.Context) {
	e.current = 0
	e.since = c.Now
	c.SetBlendStep(e.BlendStep)
	c.Palette = render.Palette{}
	c.SetTarget(render.GradientPalettes[0])
}

func (e *ColorWaves) Render(c *render.Context) {
	if c.Now-e.since >= e.PaletteDwell {
		e.since = c.Now
		e.current = int(render.Addmod8(uint8(e.current), 1, uint8(len(render.GradientPalettes))))
		c.SetTarget(render.GradientPalettes[e.current])
	}

	pix := c.Frame.Pix
	pal := c.Palette
	p := washParams{hueLow: 300, hueHigh: 1500, blend: 128}
	e.wash.step(c.Now, p, c.Frame.Layout.Physical, func(i int, hue16 uint16, _, bri uint8) {
		h := hue16 >> 7
		var idx uint8
		if h&0x100 != 0 {
			idx = 255 - uint8(h>>1)
		} else {
			idx = uint8(h >> 1)
		}
		render.Nblend(&pix[i], render.ColorFromPalette(pal, render.Scale8(idx, 240), bri), p.blend)
	})
}

// PaletteIndex is the position in the gradient playlist.
func (e *ColorWaves) PaletteIndex() int { return e.current }
