package render

import "math/rand"

// Palette is 16 reference colours for gradient lookup.
type Palette [16]Color

// ColorFromPalette looks up index (0..255) with linear blending between
// adjacent entries; the last entry blends back into the first.
func ColorFromPalette(p Palette, index, brightness uint8) Color {
	hi4 := index >> 4
	lo4 := index & 0x0F
	c := p[hi4]
	if lo4 != 0 {
		next := p[(hi4+1)&0x0F]
		f2 := lo4 << 4
		f1 := 255 - f2
		c = Color{
			R: Scale8(c.R, f1) + Scale8(next.R, f2),
			G: Scale8(c.G, f1) + Scale8(next.G, f2),
			B: Scale8(c.B, f1) + Scale8(next.B, f2),
		}
	}
	if brightness != 255 {
		c = c.Scale(brightness)
	}
	return c
}

func stepToward(cur, target, step uint8) uint8 {
	if cur < target {
		if target-cur <= step {
			return target
		}
		return cur + step
	}
	if cur-target <= step {
		return target
	}
	return cur - step
}

// BlendToward moves every channel of p at most step closer to target and
// reports whether p now equals target. From any start it converges within
// ceil(255/step) calls.
func (p *Palette) BlendToward(target Palette, step uint8) bool {
	if step == 0 {
		return *p == target
	}
	for i := range p {
		p[i].R = stepToward(p[i].R, target[i].R, step)
		p[i].G = stepToward(p[i].G, target[i].G, step)
		p[i].B = stepToward(p[i].B, target[i].B, step)
	}
	return *p == target
}

func hexPalette(hexes ...string) Palette {
	var p Palette
	for i := range p {
		p[i] = Hex(hexes[i%len(hexes)])
	}
	return p
}

// Stop is one anchor of a gradient palette.
type Stop struct {
	Pos   uint8
	Color Color
}

// GradientPalette samples a stop list into 16 entries, interpolating in Lab
// space. Stops must be sorted by Pos.
func GradientPalette(stops ...Stop) Palette {
	var p Palette
	if len(stops) == 0 {
		return p
	}
	for i := range p {
		pos := i * 255 / 15
		a, b := stops[0], stops[len(stops)-1]
		for j := 0; j < len(stops)-1; j++ {
			if pos >= int(stops[j].Pos) && pos <= int(stops[j+1].Pos) {
				a, b = stops[j], stops[j+1]
				break
			}
		}
		switch {
		case pos <= int(a.Pos):
			p[i] = a.Color
		case pos >= int(b.Pos):
			p[i] = b.Color
		default:
			t := float64(pos-int(a.Pos)) / float64(int(b.Pos)-int(a.Pos))
			r, g, bb := a.Color.toColorful().BlendLab(b.Color.toColorful(), t).Clamped().RGB255()
			p[i] = Color{r, g, bb}
		}
	}
	return p
}

var (
	RainbowColors = hexPalette(
		"#FF0000", "#D52A00", "#AB5500", "#AB7F00", "#ABAB00", "#56D500", "#00FF00", "#00D52A",
		"#00AB55", "#0056AA", "#0000FF", "#2A00D5", "#5500AB", "#7F0081", "#AB0055", "#D5002B")
	RainbowStripeColors = hexPalette(
		"#FF0000", "#000000", "#AB5500", "#000000", "#ABAB00", "#000000", "#00FF00", "#000000",
		"#00AB55", "#000000", "#0000FF", "#000000", "#5500AB", "#000000", "#AB0055", "#000000")
	PartyColors = hexPalette(
		"#5500AB", "#84007C", "#B5004B", "#E5001B", "#E81700", "#B84700", "#AB7700", "#ABAB00",
		"#AB5500", "#DD2200", "#F2000E", "#C2003E", "#8F0071", "#5F00A1", "#2F00D0", "#0007F9")
	CloudColors = hexPalette(
		"#0000FF", "#00008B", "#00008B", "#00008B", "#00008B", "#00008B", "#00008B", "#00008B",
		"#0000FF", "#00008B", "#87CEEB", "#87CEEB", "#ADD8E6", "#FFFFFF", "#ADD8E6", "#87CEEB")
	LavaColors = hexPalette(
		"#000000", "#800000", "#000000", "#800000", "#8B0000", "#800000", "#8B0000", "#8B0000",
		"#8B0000", "#FF0000", "#FFA500", "#FFFFFF", "#FFA500", "#FF0000", "#8B0000", "#000000")
	OceanColors = hexPalette(
		"#191970", "#00008B", "#191970", "#000080", "#00008B", "#0000CD", "#2E8B57", "#008080",
		"#5F9EA0", "#0000FF", "#008B8B", "#6495ED", "#7FFFD4", "#2E8B57", "#00FFFF", "#87CEFA")
	ForestColors = hexPalette(
		"#006400", "#006400", "#556B2F", "#006400", "#008000", "#228B22", "#6B8E23", "#008000",
		"#2E8B57", "#66CDAA", "#32CD32", "#9ACD32", "#90EE90", "#7CFC00", "#66CDAA", "#228B22")
	HeatColors = hexPalette(
		"#000000", "#330000", "#660000", "#990000", "#CC0000", "#FF0000", "#FF3300", "#FF6600",
		"#FF9900", "#FFCC00", "#FFFF00", "#FFFF33", "#FFFF66", "#FFFF99", "#FFFFCC", "#FFFFFF")
)

// standardPalettes is the pool RandomPalette draws from.
var standardPalettes = []Palette{
	RainbowColors, RainbowStripeColors, PartyColors, CloudColors,
	LavaColors, OceanColors, ForestColors, HeatColors,
}

func RandomPalette(rng *rand.Rand) Palette {
	return standardPalettes[rng.Intn(len(standardPalettes))]
}

// GradientPalettes is the playlist the colour-wave effect cross-fades through.
var GradientPalettes = []Palette{
	GradientPalette(
		Stop{0, Hex("#780000")}, Stop{22, Hex("#B31600")}, Stop{51, Hex("#FF6800")},
		Stop{85, Hex("#A7160C")}, Stop{135, Hex("#640767")}, Stop{198, Hex("#10095A")},
		Stop{255, Hex("#000028")}),
	GradientPalette(
		Stop{0, Hex("#FF2107")}, Stop{21, Hex("#FF4001")}, Stop{43, Hex("#FF6C00")},
		Stop{127, Hex("#FFFFFF")}, Stop{170, Hex("#00A7AE")}, Stop{255, Hex("#0063C8")}),
	GradientPalette(
		Stop{0, Hex("#020C1F")}, Stop{66, Hex("#0F4F8C")}, Stop{140, Hex("#62C4D9")},
		Stop{200, Hex("#C7F2F7")}, Stop{255, Hex("#FFFFFF")}),
	GradientPalette(
		Stop{0, Hex("#00FF00")}, Stop{64, Hex("#FFFF00")}, Stop{128, Hex("#FF00FF")},
		Stop{192, Hex("#00FFFF")}, Stop{255, Hex("#00FF00")}),
	GradientPalette(
		Stop{0, Hex("#1A0033")}, Stop{80, Hex("#B3005C")}, Stop{160, Hex("#FF8C1A")},
		Stop{255, Hex("#FFF2B3")}),
	GradientPalette(
		Stop{0, Hex("#001A0D")}, Stop{90, Hex("#00804D")}, Stop{170, Hex("#99E600")},
		Stop{255, Hex("#F2FFCC")}),
}
