package render

import "github.com/coreman2200/rgbshades/internal/layout"

// Frame is the shared pixel buffer, addressed by (x,y) through the layout
// table or directly by buffer index.
type Frame struct {
	Layout layout.Layout
	Pix    []Color
}

func NewFrame(l layout.Layout) *Frame {
	return &Frame{Layout: l, Pix: make([]Color, l.Count())}
}

func (f *Frame) Width() int  { return f.Layout.Dim.X }
func (f *Frame) Height() int { return f.Layout.Dim.Y }

// Set writes c at x,y; off-panel coordinates are ignored.
func (f *Frame) Set(x, y int, c Color) {
	if i := f.Layout.Index(x, y); i >= 0 {
		f.Pix[i] = c
	}
}

func (f *Frame) At(x, y int) Color {
	if i := f.Layout.Index(x, y); i >= 0 {
		return f.Pix[i]
	}
	return Black
}

// SetIndex writes c at a raw buffer index; out-of-range indices are ignored.
func (f *Frame) SetIndex(i int, c Color) {
	if i >= 0 && i < len(f.Pix) {
		f.Pix[i] = c
	}
}

func (f *Frame) Clear() { f.Fill(Black) }

func (f *Frame) Fill(c Color) {
	for i := range f.Pix {
		f.Pix[i] = c
	}
}

func (f *Frame) FillColumn(x int, c Color) {
	for y := 0; y < f.Height(); y++ {
		f.Set(x, y, c)
	}
}

// Scroll shifts every row one column. dir 0 moves content right leaving
// column 0 free, any other value moves it left leaving the last column free.
func (f *Frame) Scroll(dir int) {
	w, h := f.Width(), f.Height()
	for y := 0; y < h; y++ {
		if dir == 0 {
			for x := w - 1; x > 0; x-- {
				f.Set(x, y, f.At(x-1, y))
			}
		} else {
			for x := 0; x < w-1; x++ {
				f.Set(x, y, f.At(x+1, y))
			}
		}
	}
}

// FadeAll dims every cell by by/256.
func (f *Frame) FadeAll(by uint8) {
	keep := 255 - by
	for i := range f.Pix {
		f.Pix[i] = f.Pix[i].Scale(keep)
	}
}
