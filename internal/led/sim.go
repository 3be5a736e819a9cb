package led

import (
	"github.com/rs/zerolog"
)

// Sim is the headless sink: it counts frames and logs a compact summary
// (average and first pixel) every Every frames at debug level.
type Sim struct {
	Every int
	Log   zerolog.Logger

	Frames uint64
	last   []byte
}

func NewSim(log zerolog.Logger, every int) *Sim {
	if every <= 0 {
		every = 1000
	}
	return &Sim{Every: every, Log: log}
}

func (d *Sim) Write(rgb []byte) error {
	d.Frames++
	d.last = append(d.last[:0], rgb...)
	if d.Frames%uint64(d.Every) != 0 {
		return nil
	}
	var r, g, b int
	for i := 0; i+2 < len(rgb); i += 3 {
		r += int(rgb[i])
		g += int(rgb[i+1])
		b += int(rgb[i+2])
	}
	n := len(rgb) / 3
	if n == 0 {
		n = 1
	}
	ev := d.Log.Debug().Uint64("frame", d.Frames).
		Ints("avg", []int{r / n, g / n, b / n})
	if len(rgb) >= 3 {
		ev = ev.Hex("first", rgb[:3])
	}
	ev.Msg("sim frame")
	return nil
}

// Last returns the most recent frame written.
func (d *Sim) Last() []byte { return d.last }

func (d *Sim) Close() error { return nil }
