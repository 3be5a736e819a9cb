// Package calib has the wiring and colour-order checks used when bringing up
// a new strip.
package calib

import (
	"math"
	"time"

	"github.com/coreman2200/rgbshades/internal/render"
)

// IndexSweep lights one physical LED at a time in strip order, so a miswired
// cell shows up as a jump.
type IndexSweep struct {
	Step time.Duration
	idx  int
}

func NewIndexSweep() *IndexSweep { return &IndexSweep{Step: 100 * time.Millisecond} }

func (e *IndexSweep) Name() string       { return "index-sweep" }
func (e *IndexSweep) ClearsCanvas() bool { return true }

func (e *IndexSweep) Init(c *render.Context) {
	c.SetDelay(e.Step)
	e.idx = 0
}

func (e *IndexSweep) Render(c *render.Context) {
	n := c.Frame.Layout.Physical
	prev := (e.idx + n - 1) % n
	c.Frame.SetIndex(prev, render.Black)
	c.Frame.SetIndex(e.idx, render.White)
	e.idx = (e.idx + 1) % n
}

// Channels shows the whole panel red, green then blue, which catches a
// strip configured with the wrong colour order.
type Channels struct {
	Step  time.Duration
	phase int
}

func NewChannels() *Channels { return &Channels{Step: time.Second} }

func (e *Channels) Name() string { return "rgb-channels" }

func (e *Channels) Init(c *render.Context) {
	c.SetDelay(e.Step)
	e.phase = 0
}

func (e *Channels) Render(c *render.Context) {
	c.Frame.Fill([]render.Color{render.Red, render.Green, render.Blue}[e.phase])
	e.phase = (e.phase + 1) % 3
}

// Phase is the channel the next frame will show.
func (e *Channels) Phase() int { return e.phase }

// RowSweep gives each row a base channel (red, green, blue, repeating),
// darkens it left to right along a curve and pulls the last row to white.
// It makes row order, column direction and gamma visible in one still frame.
type RowSweep struct {
	LRGamma    float64 // left to right darkening curve, >1 is steeper at the right
	RightFloor float64 // minimum level at the right edge, 0..1
	Gamma      float64
}

func NewRowSweep() *RowSweep {
	return &RowSweep{LRGamma: 1.2, Gamma: 1.8}
}

func (e *RowSweep) Name() string { return "row-sweep" }

func (e *RowSweep) Init(c *render.Context) {
	c.SetDelay(time.Second)
}

func (e *RowSweep) Render(c *render.Context) {
	f := c.Frame
	X, Y := f.Width(), f.Height()
	gamma := e.Gamma
	if gamma <= 0 {
		gamma = 1
	}
	floor := clamp01(e.RightFloor)

	norm := func(i, n int) float64 {
		if n <= 1 {
			return 0
		}
		return float64(i) / float64(n-1)
	}

	for y := 0; y < Y; y++ {
		var base [3]float64
		base[y%3] = 1
		for x := 0; x < X; x++ {
			lr := 1.0 - math.Pow(norm(x, X), e.LRGamma)
			lr = floor + (1.0-floor)*lr

			var ch [3]float64
			for i := range ch {
				ch[i] = base[i] * lr
				if y == Y-1 {
					ch[i] = 1
				}
				ch[i] = math.Pow(clamp01(ch[i]), 1.0/gamma)
			}
			f.Set(x, y, render.Color{R: to8(ch[0]), G: to8(ch[1]), B: to8(ch[2])})
		}
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func to8(v float64) uint8 { return uint8(math.Round(clamp01(v) * 255)) }
