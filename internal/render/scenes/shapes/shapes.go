// Package shapes draws fixed bitmaps addressed by LED index on the shades
// wiring.
package shapes

import (
	"time"

	"github.com/coreman2200/rgbshades/internal/render"
)

func paint(f *render.Frame, cells []int, c render.Color) {
	for _, i := range cells {
		f.SetIndex(i, c)
	}
}

var (
	smallHeart  = []int{46, 48, 53, 55, 60, 65}
	mediumHeart = []int{31, 32, 34, 35, 38, 39, 41, 42, 46, 47, 48, 55, 54, 53, 60, 65}
	largeHeart  = []int{15, 16, 18, 19, 24, 25, 27, 28, 31, 32, 33, 34, 35, 38, 39, 40, 41, 42,
		46, 47, 48, 53, 54, 55, 60, 65}
	hugeHeart = []int{0, 1, 3, 4, 9, 10, 12, 13, 14, 15, 16, 17, 18, 19, 20, 23, 24, 25, 26,
		27, 28, 29, 31, 32, 33, 34, 35, 38, 39, 40, 41, 42, 46, 47, 48, 53, 54, 55, 60, 65}
)

// Hearts grows a heart in each lens from small to huge, then blanks and
// starts again. The huge heart is held longer.
type Hearts struct {
	step int
}

func NewHearts() *Hearts { return &Hearts{} }

func (e *Hearts) Name() string       { return "hearts" }
func (e *Hearts) ClearsCanvas() bool { return true }

func (e *Hearts) Init(c *render.Context) {
	c.SetDelay(250 * time.Millisecond)
	e.step = 0
}

func (e *Hearts) Render(c *render.Context) {
	c.SetDelay(250 * time.Millisecond)
	f := c.Frame
	switch e.step {
	case 0:
		paint(f, smallHeart, render.White)
	case 1:
		paint(f, mediumHeart, render.Green)
	case 2:
		paint(f, largeHeart, render.Blue)
	case 3:
		paint(f, hugeHeart, render.Red)
		c.SetDelay(450 * time.Millisecond)
	case 4:
		f.Clear()
	}
	e.step = (e.step + 1) % 5
}

var peaceSign = []int{1, 2, 3, 28, 26, 24, 31, 33, 35, 56, 55, 53, 52, 59, 60, 61,
	10, 11, 12, 19, 17, 15, 38, 40, 42, 49, 48, 46, 45, 64, 65, 66}

// Peace draws a peace sign in each lens in the global hue.
type Peace struct{}

func NewPeace() *Peace { return &Peace{} }

func (e *Peace) Name() string       { return "peace" }
func (e *Peace) ClearsCanvas() bool { return true }

func (e *Peace) Init(c *render.Context) {
	c.SetDelay(30 * time.Millisecond)
}

func (e *Peace) Render(c *render.Context) {
	paint(c.Frame, peaceSign, render.HSV(c.Hue, 255, 255))
}

var (
	ghost     = []int{10, 11, 12, 19, 17, 15, 38, 39, 40, 41, 42, 49, 48, 47, 46, 45, 63, 65, 67}
	pacClosed = []int{1, 2, 3, 28, 27, 26, 25, 24, 31, 32, 33, 34, 35, 56, 55, 54, 53, 52, 59, 60, 61}
	pacMouth  = []int{25, 24, 33, 34, 35, 53, 52}
	pellets1  = []int{34, 36}
	pellets2  = []int{35, 37, 43}
)

// Pacman chases a ghost across the lenses: mouth open with near pellets,
// far pellets, then mouth closed.
type Pacman struct {
	step int
}

func NewPacman() *Pacman { return &Pacman{} }

func (e *Pacman) Name() string       { return "pacman" }
func (e *Pacman) ClearsCanvas() bool { return true }

func (e *Pacman) Init(c *render.Context) {
	c.SetDelay(175 * time.Millisecond)
	e.step = 0
}

func (e *Pacman) Render(c *render.Context) {
	f := c.Frame
	switch e.step {
	case 0:
		paint(f, pellets1, render.White)
		paint(f, pellets2, render.Black)
		paint(f, pacClosed, render.Yellow)
		paint(f, pacMouth, render.Black)
		paint(f, ghost, render.Blue)
	case 1:
		paint(f, pellets1, render.Black)
		paint(f, pellets2, render.White)
	case 2:
		paint(f, pellets1, render.White)
		paint(f, pellets2, render.Black)
		paint(f, pacClosed, render.Yellow)
	}
	e.step = (e.step + 1) % 3
}

// Step is the phase the next frame will draw.
func (e *Pacman) Step() int { return e.step }
