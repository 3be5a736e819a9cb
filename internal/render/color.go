package render

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is one 8-bit RGB pixel.
type Color struct{ R, G, B uint8 }

var (
	Black  = Color{}
	White  = Color{255, 255, 255}
	Red    = Color{R: 255}
	Green  = Color{G: 255}
	Blue   = Color{B: 255}
	Yellow = Color{R: 255, G: 255}
)

// HSV converts an 8-bit hue/saturation/value triple. Hue 0..255 covers the
// whole wheel.
func HSV(h, s, v uint8) Color {
	c := colorful.Hsv(float64(h)*360.0/256.0, float64(s)/255.0, float64(v)/255.0)
	r, g, b := c.Clamped().RGB255()
	return Color{r, g, b}
}

// Hex parses "#rrggbb"; malformed input yields black.
func Hex(s string) Color {
	c, err := colorful.Hex(s)
	if err != nil {
		return Black
	}
	r, g, b := c.RGB255()
	return Color{r, g, b}
}

func (c Color) toColorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255.0, G: float64(c.G) / 255.0, B: float64(c.B) / 255.0}
}

// Scale dims c by b/256.
func (c Color) Scale(b uint8) Color {
	return Color{Scale8(c.R, b), Scale8(c.G, b), Scale8(c.B, b)}
}
