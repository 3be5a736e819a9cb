// Package waves holds the periodic-function colour fields: sine bands,
// plasma, scanners and the rainbow washes.
package waves

import (
	"math"
	"time"

	"github.com/coreman2200/rgbshades/internal/render"
)

// ThreeSine draws three sine bands, one per channel, each with its own period.
type ThreeSine struct {
	offset uint8
}

func NewThreeSine() *ThreeSine { return &ThreeSine{} }

func (e *ThreeSine) Name() string { return "three-sine" }

func (e *ThreeSine) Init(c *render.Context) {
	c.SetDelay(20 * time.Millisecond)
}

func (e *ThreeSine) Render(c *render.Context) {
	f := c.Frame
	rowStep := 255 / f.Height()
	for x := 0; x < f.Width(); x++ {
		for y := 0; y < f.Height(); y++ {
			dist := func(mul int) uint8 {
				s := render.Sin8(uint8(int(e.offset)*mul + x*16))
				return render.Qmul8(uint8(absInt(y*rowStep-int(s))), 2)
			}
			f.Set(x, y, render.Color{R: 255 - dist(9), G: 255 - dist(10), B: 255 - dist(11)})
		}
	}
	e.offset++
}

// Plasma is a radial hue field around a centre orbiting off-panel.
type Plasma struct {
	offset uint8
	vector uint16
}

func NewPlasma() *Plasma { return &Plasma{} }

func (e *Plasma) Name() string { return "plasma" }

func (e *Plasma) Init(c *render.Context) {
	c.SetDelay(10 * time.Millisecond)
}

func (e *Plasma) Render(c *render.Context) {
	f := c.Frame
	xOff := float64(render.Cos8(uint8(e.vector >> 8)))
	yOff := float64(render.Sin8(uint8(e.vector >> 8)))
	cx := float64(f.Width()-1) / 2
	cy := float64(f.Height()-1) / 2
	for x := 0; x < f.Width(); x++ {
		for y := 0; y < f.Height(); y++ {
			dx := (float64(x)-cx)*10 + xOff - 127
			dy := (float64(y)-cy)*10 + yOff - 127
			d := int(math.Sqrt(dx*dx + dy*dy))
			f.Set(x, y, render.HSV(render.Sin8(uint8(d+int(e.offset))), 255, 255))
		}
	}
	e.offset++
	e.vector += 16
}

// Rider sweeps a soft vertical bar left and right in the global hue.
type Rider struct {
	pos uint8
}

func NewRider() *Rider { return &Rider{} }

func (e *Rider) Name() string { return "rider" }

func (e *Rider) Init(c *render.Context) {
	c.SetDelay(5 * time.Millisecond)
	e.pos = 0
}

func (e *Rider) Render(c *render.Context) {
	f := c.Frame
	colStep := 256 / f.Width()
	for x := 0; x < f.Width(); x++ {
		b := absInt(x*colStep-int(render.Triwave8(e.pos))*2+127) * 3
		if b > 255 {
			b = 255
		}
		f.FillColumn(x, render.HSV(c.Hue, 255, uint8(255-b)))
	}
	e.pos++
}

// SlantBars scrolls diagonal bars across the panel in the global hue.
type SlantBars struct {
	pos uint8
}

func NewSlantBars() *SlantBars { return &SlantBars{} }

func (e *SlantBars) Name() string { return "slant-bars" }

func (e *SlantBars) Init(c *render.Context) {
	c.SetDelay(5 * time.Millisecond)
}

func (e *SlantBars) Render(c *render.Context) {
	f := c.Frame
	for x := 0; x < f.Width(); x++ {
		for y := 0; y < f.Height(); y++ {
			f.Set(x, y, render.HSV(c.Hue, 255, render.Quadwave8(uint8(x*32+y*32)+e.pos)))
		}
	}
	e.pos -= 4
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
