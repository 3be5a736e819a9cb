package layout

const (
	ShadesWidth    = 16
	ShadesHeight   = 5
	ShadesPhysical = 68
)

// shadesTable is the RGB Shades wiring: the strip starts top-left at x=1,
// snakes down through both lenses and leaves holes at the corners and the
// nose bridge. Holes are numbered 68..79 so the buffer stays dense.
var shadesTable = []int{
	68, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14,
	29, 28, 27, 26, 25, 24, 23, 22, 21, 20, 19, 18, 17, 16, 15, 69,
	30, 31, 32, 33, 34, 35, 36, 70, 71, 37, 38, 39, 40, 41, 42, 43,
	57, 56, 55, 54, 53, 52, 51, 72, 73, 50, 49, 48, 47, 46, 45, 44,
	74, 58, 59, 60, 61, 62, 75, 76, 77, 78, 63, 64, 65, 66, 67, 79,
}

// shadesOutline walks the frame clockwise: across the top, down the right
// temple, under the right lens, around the nose and back up the left side.
var shadesOutline = []int{
	0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 43,
	44, 67, 66, 65, 64, 63, 50, 37, 21, 22, 36, 51, 62, 61, 60, 59,
	58, 57, 30, 29,
}

// Shades returns the 16x5 glasses layout.
func Shades() Layout {
	return Layout{
		Name:     "shades",
		Dim:      Dim{X: ShadesWidth, Y: ShadesHeight},
		Table:    append([]int(nil), shadesTable...),
		Physical: ShadesPhysical,
		Outline:  append([]int(nil), shadesOutline...),
	}
}
