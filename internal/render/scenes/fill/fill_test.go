package fill

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/rgbshades/internal/layout"
	"github.com/coreman2200/rgbshades/internal/render"
)

func newContext() *render.Context {
	return &render.Context{
		Frame: render.NewFrame(layout.Shades()),
		Rand:  rand.New(rand.NewSource(11)),
	}
}

func TestColorFillDirectionCycle(t *testing.T) {
	c := newContext()
	e := NewColorFill()
	e.Init(c)
	require.Equal(t, Down, e.Direction())

	var seen []int
	for e.Fills() < 4 {
		before := e.Fills()
		e.Render(c)
		if e.Fills() != before {
			seen = append(seen, e.Direction())
			assert.Equal(t, 300*time.Millisecond, c.Delay)
		}
	}
	assert.Equal(t, []int{Right, Up, Left, Down}, seen)
	assert.Equal(t, Down, e.Direction())
}

func TestColorFillPassLengths(t *testing.T) {
	c := newContext()
	e := NewColorFill()
	e.Init(c)

	renders := 0
	for e.Fills() < 1 {
		e.Render(c)
		renders++
	}
	assert.Equal(t, layout.ShadesHeight, renders)

	renders = 0
	for e.Fills() < 2 {
		e.Render(c)
		renders++
		if e.Fills() < 2 {
			assert.Equal(t, 20*time.Millisecond, c.Delay)
		}
	}
	assert.Equal(t, layout.ShadesWidth, renders)

	// a full downward pass leaves the panel in one colour
	first := c.Frame.At(0, 0)
	for x := 0; x < c.Frame.Width(); x++ {
		assert.Equal(t, first, c.Frame.At(x, 0))
	}
}

func TestThreeDeeLenses(t *testing.T) {
	c := newContext()
	e := NewThreeDee()
	e.Init(c)
	e.Render(c)
	assert.Equal(t, render.Blue, c.Frame.At(0, 2))
	assert.Equal(t, render.Red, c.Frame.At(15, 2))
	assert.Equal(t, render.Black, c.Frame.At(7, 2))
	assert.Equal(t, render.Black, c.Frame.At(8, 2))
	assert.Equal(t, render.Black, c.Frame.At(6, 0))
	assert.Equal(t, render.Black, c.Frame.At(9, 0))
	assert.Equal(t, 50*time.Millisecond, c.Delay)
}

func TestThreeDeeBlinkSwaps(t *testing.T) {
	c := newContext()
	e := NewThreeDeeBlink()
	assert.Equal(t, "three-dee-blink", e.Name())
	e.Init(c)
	e.Render(c)
	assert.Equal(t, render.Red, c.Frame.At(0, 2))
	e.Render(c)
	assert.Equal(t, render.Blue, c.Frame.At(0, 2))
	e.Render(c)
	assert.Equal(t, render.Red, c.Frame.At(0, 2))
}

func TestBlinkOpensAndWipes(t *testing.T) {
	c := newContext()
	e := NewBlinkLeft()
	e.Init(c)

	// 8 frames blank the left half, 8 more paint it back in from the bridge
	for i := 0; i < 8; i++ {
		e.Render(c)
	}
	assert.False(t, e.in)
	for i := 0; i < 8; i++ {
		e.Render(c)
	}
	assert.True(t, e.in)
	for x := 1; x <= 8; x++ {
		assert.Equal(t, render.Red, c.Frame.At(x, 2), "x=%d", x)
	}
	assert.Equal(t, render.Black, c.Frame.At(0, 2))
	assert.Equal(t, render.Black, c.Frame.At(9, 2))

	r := NewBlinkRight()
	r.Init(c)
	assert.Equal(t, 15, r.count)
	for i := 0; i < 16; i++ {
		r.Render(c)
	}
	assert.True(t, r.in)
	assert.Equal(t, render.Red, c.Frame.At(7, 2))
	assert.Equal(t, render.Red, c.Frame.At(14, 2))
}
