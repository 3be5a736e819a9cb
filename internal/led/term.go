package led

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/term"

	"github.com/coreman2200/rgbshades/internal/layout"
)

// Term previews frames as 24-bit ANSI blocks laid out on the logical grid.
// Virtual cells are drawn dim grey. Output is throttled to Interval.
type Term struct {
	Interval time.Duration

	mu       sync.Mutex
	w        io.Writer
	layout   layout.Layout
	tty      bool
	lastEmit time.Time
	now      func() time.Time
}

func NewTerm(w io.Writer, l layout.Layout) *Term {
	t := &Term{
		Interval: 50 * time.Millisecond, // ~20 FPS
		w:        w,
		layout:   l,
		now:      time.Now,
	}
	if f, ok := w.(*os.File); ok {
		t.tty = term.IsTerminal(int(f.Fd()))
	}
	return t
}

func (t *Term) Write(rgb []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	if !t.lastEmit.IsZero() && t.lastEmit.Add(t.Interval).After(now) {
		return nil
	}
	t.lastEmit = now
	return t.draw(rgb)
}

// Render draws rgb unconditionally.
func (t *Term) Render(rgb []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.draw(rgb)
}

func (t *Term) draw(rgb []byte) error {
	bw := bufio.NewWriter(t.w)
	if t.tty {
		// cursor home so frames overwrite each other
		bw.WriteString("\x1b[H")
	}
	for y := 0; y < t.layout.Dim.Y; y++ {
		for x := 0; x < t.layout.Dim.X; x++ {
			idx := t.layout.Index(x, y)
			r, g, b := 24, 24, 24
			if idx < t.layout.Physical && idx*3+2 < len(rgb) {
				r, g, b = int(rgb[idx*3]), int(rgb[idx*3+1]), int(rgb[idx*3+2])
			}
			fmt.Fprintf(bw, "\x1b[48;2;%d;%d;%dm  ", r, g, b)
		}
		bw.WriteString("\x1b[0m\r\n")
	}
	return bw.Flush()
}

func (t *Term) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.tty {
		_, err := io.WriteString(t.w, "\x1b[0m")
		return err
	}
	return nil
}
