// Package text scrolls messages across the panel in a 5x5 font.
package text

import (
	"time"

	"github.com/coreman2200/rgbshades/internal/render"
)

// Style selects how lit dots are coloured.
type Style int

const (
	Solid Style = iota
	Rainbow
)

const (
	glyphWidth  = 5
	glyphHeight = 5
	charSpacing = 2
)

// Scroll feeds one column of the message per frame into a circular column
// buffer as wide as the panel and redraws the panel from it.
type Scroll struct {
	name    string
	message []rune
	style   Style
	fg, bg  render.Color

	char    int
	column  int
	glyph   [glyphWidth]byte
	cycle   uint8
	buf     []byte
	pointer int
}

func New(name, message string, style Style, fg, bg render.Color) *Scroll {
	if message == "" {
		message = " "
	}
	return &Scroll{name: name, message: []rune(message), style: style, fg: fg, bg: bg}
}

func (e *Scroll) Name() string { return e.name }

func (e *Scroll) Init(c *render.Context) {
	c.SetDelay(35 * time.Millisecond)
	c.SetPalette(render.RainbowColors)
	e.char, e.column, e.pointer = 0, 0, 0
	e.glyph = Glyph(e.message[0])
	e.buf = make([]byte, c.Frame.Width())
}

func (e *Scroll) Render(c *render.Context) {
	f := c.Frame
	w := len(e.buf)
	e.cycle += 15

	var col byte // spacing columns stay blank
	if e.column < glyphWidth {
		col = e.glyph[e.column]
	}
	e.buf[(e.pointer+w-1)%w] = col

	rows := glyphHeight
	if f.Height() < rows {
		rows = f.Height()
	}
	for x := 0; x < w; x++ {
		bits := e.buf[(e.pointer+x)%w]
		for y := 0; y < rows; y++ {
			px := e.bg
			if bits&(1<<uint(y)) != 0 {
				px = e.fg
				if e.style == Rainbow {
					px = render.ColorFromPalette(c.Palette, e.cycle+uint8(y*16), 255)
				}
			}
			f.Set(x, y, px)
		}
	}

	e.column++
	if e.column > glyphWidth-1+charSpacing {
		e.column = 0
		e.char = (e.char + 1) % len(e.message)
		e.glyph = Glyph(e.message[e.char])
	}
	e.pointer = (e.pointer + 1) % w
}

// Defaults returns the three stock scrollers: red on black, rainbow on
// black and green on a dim blue field.
func Defaults(messages [3]string) []*Scroll {
	return []*Scroll{
		New("scroll-text", messages[0], Solid, render.Red, render.Black),
		New("scroll-text-rainbow", messages[1], Rainbow, render.Black, render.Black),
		New("scroll-text-green", messages[2], Solid, render.Green, render.Color{B: 8}),
	}
}

// DefaultMessages are shown when no messages are configured.
var DefaultMessages = [3]string{"RGB SHADES  ", "HELLO <3  ", "FUNTIMES!  "}
