// Package fill has the flood and split-panel effects.
package fill

import (
	"time"

	"github.com/coreman2200/rgbshades/internal/render"
)

// Direction of a ColorFill pass.
const (
	Down = iota
	Right
	Up
	Left
)

// ColorFill floods the panel one row or column at a time with a palette
// colour, turning a quarter each fill: down, right, up, left, then down again.
type ColorFill struct {
	color uint8
	row   int
	dir   int
	fills int
}

func NewColorFill() *ColorFill { return &ColorFill{} }

func (e *ColorFill) Name() string { return "color-fill" }

func (e *ColorFill) Init(c *render.Context) {
	c.SetDelay(45 * time.Millisecond)
	c.SetPalette(render.RainbowColors)
	e.color, e.row, e.dir, e.fills = 0, 0, Down, 0
}

func (e *ColorFill) Render(c *render.Context) {
	f := c.Frame
	col := c.Palette[e.color]

	span := f.Height()
	if e.dir&1 == 0 {
		// vertical passes have fewer lines, so they run slower
		c.SetDelay(45 * time.Millisecond)
		y := e.row
		if e.dir == Up {
			y = f.Height() - 1 - e.row
		}
		for x := 0; x < f.Width(); x++ {
			f.Set(x, y, col)
		}
	} else {
		c.SetDelay(20 * time.Millisecond)
		span = f.Width()
		x := e.row
		if e.dir == Left {
			x = f.Width() - 1 - e.row
		}
		f.FillColumn(x, col)
	}

	e.row++
	if e.row >= span {
		e.row = 0
		e.color = (e.color + c.RandomRange(3, 6)) % 16
		e.dir = (e.dir + 1) % 4
		e.fills++
		c.SetDelay(300 * time.Millisecond)
	}
}

// Direction is the direction of the pass in progress.
func (e *ColorFill) Direction() int { return e.dir }

// Fills counts completed passes since activation.
func (e *ColorFill) Fills() int { return e.fills }

// ThreeDee paints the two lenses like anaglyph glasses, blue left and red
// right. With Blink set the sides swap every frame.
type ThreeDee struct {
	Blink bool
	state uint8
}

func NewThreeDee() *ThreeDee      { return &ThreeDee{} }
func NewThreeDeeBlink() *ThreeDee { return &ThreeDee{Blink: true} }

func (e *ThreeDee) Name() string {
	if e.Blink {
		return "three-dee-blink"
	}
	return "three-dee"
}

func (e *ThreeDee) Init(c *render.Context) {
	if e.Blink {
		c.SetDelay(100 * time.Millisecond)
		return
	}
	c.SetDelay(50 * time.Millisecond)
}

func (e *ThreeDee) Render(c *render.Context) {
	left, right := render.Blue, render.Red
	if e.Blink {
		if e.state == 0 {
			left, right = render.Red, render.Blue
		}
		e.state = (e.state + 1) % 2
	}

	f := c.Frame
	mid := f.Width() / 2
	for x := 0; x < f.Width(); x++ {
		col := render.Black
		switch {
		case x < mid-1:
			col = left
		case x > mid:
			col = right
		}
		f.FillColumn(x, col)
	}
	// inner top corners of the lenses stay dark
	f.Set(mid-2, 0, render.Black)
	f.Set(mid+1, 0, render.Black)
}

// Blink is a turn signal: a red block opens outward from the bridge toward
// one temple and then wipes back.
type Blink struct {
	Right bool
	Color render.Color

	in    bool
	count int
}

func NewBlinkLeft() *Blink  { return &Blink{Color: render.Red} }
func NewBlinkRight() *Blink { return &Blink{Right: true, Color: render.Red} }

func (e *Blink) Name() string {
	if e.Right {
		return "blink-right"
	}
	return "blink-left"
}

func (e *Blink) ClearsCanvas() bool { return true }

func (e *Blink) Init(c *render.Context) {
	c.SetDelay(30 * time.Millisecond)
	e.in = true
	e.count = 0
	if e.Right {
		e.count = c.Frame.Width() - 1
	}
}

func (e *Blink) Render(c *render.Context) {
	f := c.Frame
	w := f.Width()
	step := 1
	turn, home := w/2, 0
	if e.Right {
		step = -1
		turn, home = w/2-1, w-1
	}

	if e.in {
		f.FillColumn(e.count, render.Black)
		e.count += step
	} else {
		f.FillColumn(e.count, e.Color)
		e.count -= step
	}
	switch e.count {
	case turn:
		e.in = false
	case home:
		e.in = true
	}
}
