package render

import (
	"math"
	"time"
)

// 8- and 16-bit periodic helpers. Angles are a full turn per 256 (or 65536)
// so counters can free-run and wrap.

var sin8Table [256]uint8

func init() {
	for i := range sin8Table {
		v := 128.0 + 127.5*math.Sin(float64(i)*2*math.Pi/256.0)
		sin8Table[i] = uint8(math.Min(255, math.Max(0, math.Floor(v))))
	}
}

// Sin8 returns 128 + 127*sin(theta), theta in 1/256 turns.
func Sin8(theta uint8) uint8 { return sin8Table[theta] }

// Cos8 is Sin8 shifted a quarter turn.
func Cos8(theta uint8) uint8 { return sin8Table[theta+64] }

// Sin16 returns 32767*sin(theta), theta in 1/65536 turns.
func Sin16(theta uint16) int16 {
	return int16(math.Round(32767 * math.Sin(float64(theta)*2*math.Pi/65536.0)))
}

// Scale8 computes i * (scale+1) / 256, so Scale8(x, 255) == x.
func Scale8(i, scale uint8) uint8 {
	return uint8((uint16(i) * (1 + uint16(scale))) >> 8)
}

// Scale16 computes i * scale / 65536.
func Scale16(i, scale uint16) uint16 {
	return uint16((uint32(i) * uint32(scale)) >> 16)
}

// Qmul8 multiplies and saturates at 255.
func Qmul8(i, j uint8) uint8 {
	p := uint16(i) * uint16(j)
	if p > 255 {
		return 255
	}
	return uint8(p)
}

// Triwave8 is a triangle wave 0 -> 254 -> 0 over one turn.
func Triwave8(in uint8) uint8 {
	if in&0x80 != 0 {
		in = 255 - in
	}
	return in << 1
}

func ease8InOutQuad(i uint8) uint8 {
	j := i
	if j&0x80 != 0 {
		j = 255 - j
	}
	jj := Scale8(j, j)
	jj2 := jj << 1
	if i&0x80 != 0 {
		jj2 = 255 - jj2
	}
	return jj2
}

// Quadwave8 is a triangle wave with quadratic easing, close to a sine.
func Quadwave8(in uint8) uint8 { return ease8InOutQuad(Triwave8(in)) }

// Addmod8 adds and wraps at m.
func Addmod8(a, b, m uint8) uint8 {
	if m == 0 {
		return 0
	}
	return uint8((uint16(a) + uint16(b)) % uint16(m))
}

// Beat88 is a 16-bit sawtooth at bpm88/256 beats per minute.
func Beat88(bpm88 uint16, now time.Duration) uint16 {
	ms := uint64(now.Milliseconds())
	return uint16((ms * uint64(bpm88) * 280) >> 16)
}

// Beatsin88 oscillates between low and high at bpm88/256 beats per minute.
func Beatsin88(bpm88, low, high uint16, now time.Duration) uint16 {
	beat := Beat88(bpm88, now)
	s := uint16(int32(Sin16(beat)) + 32768)
	return low + Scale16(s, high-low)
}
