package layout

import (
	"errors"
	"fmt"
)

var (
	ErrTableSize      = errors.New("layout: table size does not match panel")
	ErrIndexRange     = errors.New("layout: index out of range")
	ErrDuplicateIndex = errors.New("layout: duplicate index")
)

type Dim struct{ X, Y int }

// Layout maps logical (x,y) cells to buffer indices through a fixed table
// that mirrors the physical wiring. Indices below Physical are real LEDs,
// the rest are virtual cells that are rendered but never flushed.
type Layout struct {
	Name     string
	Dim      Dim
	Table    []int // row-major, len == X*Y
	Physical int
	Outline  []int // buffer indices tracing the panel perimeter
}

// Index maps x,y -> buffer index, or -1 when x,y is off the panel.
func (l Layout) Index(x, y int) int {
	if x < 0 || y < 0 || x >= l.Dim.X || y >= l.Dim.Y {
		return -1
	}
	return l.Table[y*l.Dim.X+x]
}

// Count is the frame buffer length (physical + virtual cells).
func (l Layout) Count() int {
	return l.Dim.X * l.Dim.Y
}

// Validate checks the table is total and injective over the panel.
func (l Layout) Validate() error {
	n := l.Count()
	if n <= 0 || len(l.Table) != n {
		return fmt.Errorf("%w: %d entries for %dx%d", ErrTableSize, len(l.Table), l.Dim.X, l.Dim.Y)
	}
	if l.Physical <= 0 || l.Physical > n {
		return fmt.Errorf("%w: physical count %d of %d", ErrIndexRange, l.Physical, n)
	}
	seen := make([]bool, n)
	for i, idx := range l.Table {
		if idx < 0 || idx >= n {
			return fmt.Errorf("%w: (%d,%d) -> %d", ErrIndexRange, i%l.Dim.X, i/l.Dim.X, idx)
		}
		if seen[idx] {
			return fmt.Errorf("%w: (%d,%d) -> %d", ErrDuplicateIndex, i%l.Dim.X, i/l.Dim.X, idx)
		}
		seen[idx] = true
	}
	for _, idx := range l.Outline {
		if idx < 0 || idx >= n {
			return fmt.Errorf("%w: outline entry %d", ErrIndexRange, idx)
		}
	}
	return nil
}

// Coord is the inverse of Index; ok is false for indices outside the table.
func (l Layout) Coord(idx int) (x, y int, ok bool) {
	for i, v := range l.Table {
		if v == idx {
			return i % l.Dim.X, i / l.Dim.X, true
		}
	}
	return 0, 0, false
}

// Serpentine builds a zig-zag strip layout: rows run left to right, and
// every odd row runs right to left when flipEveryRow is set.
func Serpentine(x, y int, flipEveryRow bool) Layout {
	l := Layout{
		Name:     "serpentine",
		Dim:      Dim{X: x, Y: y},
		Table:    make([]int, x*y),
		Physical: x * y,
	}
	for yy := 0; yy < y; yy++ {
		for xx := 0; xx < x; xx++ {
			col := xx
			if flipEveryRow && yy%2 == 1 {
				col = x - 1 - xx
			}
			l.Table[yy*x+xx] = yy*x + col
		}
	}
	l.Outline = perimeter(l)
	return l
}

// perimeter traces the outer ring clockwise from the top-left corner.
func perimeter(l Layout) []int {
	X, Y := l.Dim.X, l.Dim.Y
	if X <= 0 || Y <= 0 {
		return nil
	}
	if Y == 1 || X == 1 {
		out := make([]int, 0, X*Y)
		for i := 0; i < X*Y; i++ {
			out = append(out, l.Table[i])
		}
		return out
	}
	out := make([]int, 0, 2*X+2*Y-4)
	for x := 0; x < X; x++ {
		out = append(out, l.Index(x, 0))
	}
	for y := 1; y < Y; y++ {
		out = append(out, l.Index(X-1, y))
	}
	for x := X - 2; x >= 0; x-- {
		out = append(out, l.Index(x, Y-1))
	}
	for y := Y - 2; y >= 1; y-- {
		out = append(out, l.Index(0, y))
	}
	return out
}
