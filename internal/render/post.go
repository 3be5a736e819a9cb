package render

import "math"

// Post turns the logical frame into the bytes the strip receives:
// global brightness, then a two-stage limiter, then packing.
//
//  1. Per-LED white cap: scales (R,G,B) so R+G+B <= WhiteCap (765 = no cap).
//  2. Global current budget: estimates the frame current and scales the whole
//     frame to stay under BudgetMilliamps, compressing softly above
//     Knee*budget.
type Post struct {
	Brightness      uint8
	WhiteCap        int     // sum-of-channels cap, 0 or >= 765 disables
	ChanMilliamps   float64 // mA per channel at 255, WS2812 ~ 20
	BudgetMilliamps float64 // 0 disables the budget stage
	Knee            float64 // 0..1, default 0.9
}

func DefaultPost() Post {
	return Post{
		Brightness:    255,
		WhiteCap:      765,
		ChanMilliamps: 20,
		Knee:          0.9,
	}
}

// Apply writes 3 bytes per cell for the first n cells of src into dst and
// returns dst[:3n]. dst is grown when too short.
func (p Post) Apply(dst []byte, src []Color, n int) []byte {
	if n > len(src) {
		n = len(src)
	}
	if cap(dst) < 3*n {
		dst = make([]byte, 3*n)
	}
	dst = dst[:3*n]

	for i := 0; i < n; i++ {
		c := src[i]
		if p.Brightness != 255 {
			c = c.Scale(p.Brightness)
		}
		c = p.whiteCap(c)
		dst[3*i] = c.R
		dst[3*i+1] = c.G
		dst[3*i+2] = c.B
	}
	p.limit(dst)
	return dst
}

func (p Post) whiteCap(c Color) Color {
	if p.WhiteCap <= 0 || p.WhiteCap >= 765 {
		return c
	}
	s := int(c.R) + int(c.G) + int(c.B)
	if s <= p.WhiteCap {
		return c
	}
	return Color{
		R: uint8(int(c.R) * p.WhiteCap / s),
		G: uint8(int(c.G) * p.WhiteCap / s),
		B: uint8(int(c.B) * p.WhiteCap / s),
	}
}

// Current estimates the draw of packed rgb in mA.
func (p Post) Current(rgb []byte) float64 {
	chanmA := p.ChanMilliamps
	if chanmA <= 0 {
		chanmA = 20
	}
	var sum int
	for _, b := range rgb {
		sum += int(b)
	}
	return float64(sum) * chanmA / 255
}

func (p Post) limit(rgb []byte) {
	if p.BudgetMilliamps <= 0 {
		return
	}
	total := p.Current(rgb)
	if total <= 0 {
		return
	}
	knee := p.Knee
	if knee <= 0 || knee >= 1 {
		knee = 0.9
	}
	// Under knee*budget nothing changes; above it the excess is compressed
	// exponentially so the frame approaches but never exceeds the budget.
	kb := knee * p.BudgetMilliamps
	if total <= kb {
		return
	}
	span := p.BudgetMilliamps - kb
	want := kb + span*(1-math.Exp(-(total-kb)/span))
	s := want / total
	// floor keeps the result at or under budget
	for i := range rgb {
		rgb[i] = uint8(float64(rgb[i]) * s)
	}
}
