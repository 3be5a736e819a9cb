package led

import (
	"bytes"
	"errors"
	"io"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi/spitest"
	"periph.io/x/devices/v3/nrzled"

	"github.com/coreman2200/rgbshades/internal/layout"
)

type failing struct{ closed bool }

func (f *failing) Write([]byte) error { return errors.New("nope") }
func (f *failing) Close() error       { f.closed = true; return nil }

func TestFanoutWritesEverySink(t *testing.T) {
	a := NewSim(zerolog.Nop(), 1)
	b := NewSim(zerolog.Nop(), 1)
	bad := &failing{}
	f := Fanout{a, bad, b}

	err := f.Write([]byte{1, 2, 3})
	require.Error(t, err)
	assert.Equal(t, []byte{1, 2, 3}, a.Last())
	assert.Equal(t, []byte{1, 2, 3}, b.Last())

	require.NoError(t, f.Close())
	assert.True(t, bad.closed)
}

func TestSimLogsSummary(t *testing.T) {
	var out bytes.Buffer
	s := NewSim(zerolog.New(&out).Level(zerolog.DebugLevel), 2)
	require.NoError(t, s.Write([]byte{255, 0, 0, 0, 0, 255}))
	assert.Zero(t, out.Len())
	require.NoError(t, s.Write([]byte{255, 0, 0, 0, 0, 255}))
	assert.Contains(t, out.String(), `"frame":2`)
	assert.Contains(t, out.String(), `"avg":[127,0,127]`)
	assert.EqualValues(t, 2, s.Frames)
}

func TestSPIEncodesFrames(t *testing.T) {
	var buf bytes.Buffer
	s, err := NewSPI(spitest.NewRecordRaw(&buf), SPIConfig{Count: 2, Freq: 2500 * physic.KiloHertz})
	require.NoError(t, err)
	assert.NotEqual(t, "spi{closed}", s.String())

	require.NoError(t, s.Write([]byte{255, 0, 0, 0, 255, 0}))
	assert.NotZero(t, buf.Len())

	assert.ErrorIs(t, s.Write([]byte{1, 2, 3}), ErrLength)

	require.NoError(t, s.Close())
	assert.ErrorIs(t, s.Write(make([]byte, 6)), ErrClosed)
	assert.Equal(t, "spi{closed}", s.String())
}

// nrzledWire is what nrzled itself puts on the wire for rgb.
func nrzledWire(t *testing.T, rgb []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	d, err := nrzled.NewSPI(spitest.NewRecordRaw(&buf), &nrzled.Opts{
		NumPixels: len(rgb) / 3,
		Channels:  3,
		Freq:      2500 * physic.KiloHertz,
	})
	require.NoError(t, err)
	_, err = d.Write(rgb)
	require.NoError(t, err)
	return buf.Bytes()
}

func spiWire(t *testing.T, order string, rgb []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	s, err := NewSPI(spitest.NewRecordRaw(&buf), SPIConfig{Count: len(rgb) / 3, ColorOrder: order})
	require.NoError(t, err)
	require.NoError(t, s.Write(rgb))
	return buf.Bytes()
}

func TestSPIWireMatchesNrzled(t *testing.T) {
	frame := []byte{255, 0, 0, 0, 255, 0, 0, 0, 255}

	// default order hands RGB straight to nrzled's GRB encoder
	assert.Equal(t, nrzledWire(t, frame), spiWire(t, "", frame))
	assert.Equal(t, nrzledWire(t, frame), spiWire(t, "RGB", frame))

	// other orders permute each pixel first
	assert.Equal(t, nrzledWire(t, []byte{0, 255, 0, 255, 0, 0, 0, 0, 255}), spiWire(t, "GRB", frame))
	assert.Equal(t, nrzledWire(t, []byte{0, 255, 0, 0, 0, 255, 255, 0, 0}), spiWire(t, "BRG", frame))

	var buf bytes.Buffer
	_, err := NewSPI(spitest.NewRecordRaw(&buf), SPIConfig{})
	assert.Error(t, err)
}

func TestTermDrawsGridAndThrottles(t *testing.T) {
	var out bytes.Buffer
	l := layout.Shades()
	tm := NewTerm(&out, l)
	clock := time.Unix(0, 0)
	tm.now = func() time.Time { return clock }

	rgb := make([]byte, l.Physical*3)
	rgb[0] = 255 // LED 0 sits at (1,0)
	require.NoError(t, tm.Write(rgb))

	lines := strings.Split(strings.TrimRight(out.String(), "\r\n"), "\r\n")
	require.Len(t, lines, l.Dim.Y)
	assert.Equal(t, l.Dim.X, strings.Count(lines[0], "\x1b[48;2;"))
	assert.True(t, strings.HasPrefix(lines[0], "\x1b[48;2;24;24;24m  \x1b[48;2;255;0;0m  "), lines[0])

	out.Reset()
	clock = clock.Add(10 * time.Millisecond)
	require.NoError(t, tm.Write(rgb))
	assert.Zero(t, out.Len())

	clock = clock.Add(tm.Interval)
	require.NoError(t, tm.Write(rgb))
	assert.NotZero(t, out.Len())
}

func TestOPCSendsSetPixelMessages(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	got := make(chan []byte, 1)
	go func() {
		c, err := ln.Accept()
		if err != nil {
			return
		}
		defer c.Close()
		buf := make([]byte, 10)
		if _, err := io.ReadFull(c, buf); err == nil {
			got <- buf
		}
	}()

	o := NewOPC(ln.Addr().String(), 1)
	o.Timeout = time.Second
	require.NoError(t, o.Write([]byte{9, 8, 7, 6, 5, 4}))
	defer o.Close()

	select {
	case msg := <-got:
		assert.Equal(t, []byte{1, 0, 0, 6, 9, 8, 7, 6, 5, 4}, msg)
	case <-time.After(2 * time.Second):
		t.Fatal("no OPC message received")
	}
}

func TestOPCDialFailure(t *testing.T) {
	o := NewOPC("127.0.0.1:1", 0)
	o.dial = func(string, string, time.Duration) (net.Conn, error) {
		return nil, errors.New("refused")
	}
	assert.Error(t, o.Write([]byte{1, 2, 3}))
	assert.NoError(t, o.Close())
}
