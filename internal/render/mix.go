package render

// Nblend moves dst toward src by amount/255 in place. Channels are blended
// in 8-bit space, no gamma assumed.
func Nblend(dst *Color, src Color, amount uint8) {
	if amount == 0 {
		return
	}
	if amount == 255 {
		*dst = src
		return
	}
	keep := 255 - amount
	dst.R = Scale8(dst.R, keep) + Scale8(src.R, amount)
	dst.G = Scale8(dst.G, keep) + Scale8(src.G, amount)
	dst.B = Scale8(dst.B, keep) + Scale8(src.B, amount)
}
