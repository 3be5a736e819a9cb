// Package outline traces the panel perimeter using the layout's outline
// table.
package outline

import (
	"time"

	"github.com/coreman2200/rgbshades/internal/render"
)

// Outline runs a pixel around the frame, filling the whole loop in one
// colour and then erasing it on the next lap.
type Outline struct {
	pos   int
	erase bool
	color uint8
}

func New() *Outline { return &Outline{} }

func (e *Outline) Name() string       { return "outline" }
func (e *Outline) ClearsCanvas() bool { return true }

func (e *Outline) Init(c *render.Context) {
	c.SetDelay(15 * time.Millisecond)
	c.SetPalette(render.RainbowColors)
	e.pos = 0
	e.erase = false
}

func (e *Outline) Render(c *render.Context) {
	ring := c.Frame.Layout.Outline
	if len(ring) == 0 {
		return
	}
	col := c.Palette[e.color]
	if e.erase {
		col = render.Black
	}
	c.Frame.SetIndex(ring[e.pos], col)

	e.pos++
	if e.pos == len(ring) {
		e.pos = 0
		e.erase = !e.erase
		e.color = (e.color + c.RandomRange(3, 6)) % 16
	}
}

// DefaultGap is the number of dark cells trailing the chase segment.
const DefaultGap = 24

// Chase runs a fixed-length lit segment around the frame: every frame it
// darkens the tail and lights one cell ahead, so exactly len(outline)-Gap
// cells stay lit.
type Chase struct {
	Gap int

	pos   int
	color uint8
}

func NewChase() *Chase { return &Chase{Gap: DefaultGap} }

func (e *Chase) Name() string       { return "outline-chase" }
func (e *Chase) ClearsCanvas() bool { return true }

func (e *Chase) gap(n int) int {
	if e.Gap < 0 {
		return 0
	}
	if e.Gap > n {
		return n
	}
	return e.Gap
}

func (e *Chase) Init(c *render.Context) {
	c.SetDelay(20 * time.Millisecond)
	c.SetPalette(render.PartyColors)
	e.pos = 0

	ring := c.Frame.Layout.Outline
	lit := len(ring) - e.gap(len(ring))
	for i := 0; i < lit; i++ {
		c.Frame.SetIndex(ring[i], c.Palette[e.color])
	}
}

func (e *Chase) Render(c *render.Context) {
	ring := c.Frame.Layout.Outline
	n := len(ring)
	if n == 0 {
		return
	}
	lit := n - e.gap(n)
	if lit == 0 {
		return
	}
	off := e.pos
	on := (e.pos + lit) % n
	c.Frame.SetIndex(ring[off], render.Black)
	c.Frame.SetIndex(ring[on], c.Palette[e.color])

	e.pos = (e.pos + 1) % n
	e.color = (e.color + 1) % 16
}
