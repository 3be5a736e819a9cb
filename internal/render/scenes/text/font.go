package text

import "strings"

// glyphRows is a 5x5 font drawn as rows, '#' for a lit dot. Lower case is
// folded to upper case; unknown runes render as '?'.
var glyphRows = map[rune][5]string{
	' ': {".....", ".....", ".....", ".....", "....."},
	'A': {".###.", "#...#", "#####", "#...#", "#...#"},
	'B': {"####.", "#...#", "####.", "#...#", "####."},
	'C': {".####", "#....", "#....", "#....", ".####"},
	'D': {"####.", "#...#", "#...#", "#...#", "####."},
	'E': {"#####", "#....", "####.", "#....", "#####"},
	'F': {"#####", "#....", "####.", "#....", "#...."},
	'G': {".####", "#....", "#..##", "#...#", ".###."},
	'H': {"#...#", "#...#", "#####", "#...#", "#...#"},
	'I': {"#####", "..#..", "..#..", "..#..", "#####"},
	'J': {"..###", "...#.", "...#.", "#..#.", ".##.."},
	'K': {"#...#", "#..#.", "###..", "#..#.", "#...#"},
	'L': {"#....", "#....", "#....", "#....", "#####"},
	'M': {"#...#", "##.##", "#.#.#", "#...#", "#...#"},
	'N': {"#...#", "##..#", "#.#.#", "#..##", "#...#"},
	'O': {".###.", "#...#", "#...#", "#...#", ".###."},
	'P': {"####.", "#...#", "####.", "#....", "#...."},
	'Q': {".###.", "#...#", "#.#.#", "#..#.", ".##.#"},
	'R': {"####.", "#...#", "####.", "#..#.", "#...#"},
	'S': {".####", "#....", ".###.", "....#", "####."},
	'T': {"#####", "..#..", "..#..", "..#..", "..#.."},
	'U': {"#...#", "#...#", "#...#", "#...#", ".###."},
	'V': {"#...#", "#...#", "#...#", ".#.#.", "..#.."},
	'W': {"#...#", "#...#", "#.#.#", "##.##", "#...#"},
	'X': {"#...#", ".#.#.", "..#..", ".#.#.", "#...#"},
	'Y': {"#...#", ".#.#.", "..#..", "..#..", "..#.."},
	'Z': {"#####", "...#.", "..#..", ".#...", "#####"},
	'0': {".###.", "#..##", "#.#.#", "##..#", ".###."},
	'1': {"..#..", ".##..", "..#..", "..#..", ".###."},
	'2': {"####.", "....#", ".###.", "#....", "#####"},
	'3': {"####.", "....#", ".###.", "....#", "####."},
	'4': {"#..#.", "#..#.", "#####", "...#.", "...#."},
	'5': {"#####", "#....", "####.", "....#", "####."},
	'6': {".###.", "#....", "####.", "#...#", ".###."},
	'7': {"#####", "....#", "...#.", "..#..", "..#.."},
	'8': {".###.", "#...#", ".###.", "#...#", ".###."},
	'9': {".###.", "#...#", ".####", "....#", ".###."},
	'!': {"..#..", "..#..", "..#..", ".....", "..#.."},
	'?': {".###.", "#...#", "..##.", ".....", "..#.."},
	'.': {".....", ".....", ".....", ".....", "..#.."},
	',': {".....", ".....", ".....", "..#..", ".#..."},
	'-': {".....", ".....", ".###.", ".....", "....."},
	'+': {".....", "..#..", ".###.", "..#..", "....."},
	':': {".....", "..#..", ".....", "..#..", "....."},
	'\'': {"..#..", "..#..", ".....", ".....", "....."},
	'<': {".#.#.", "#####", "#####", ".###.", "..#.."}, // heart
}

// font maps a rune to five column bytes, bit y set for a lit dot in row y.
var font = buildFont()

func buildFont() map[rune][5]byte {
	out := make(map[rune][5]byte, len(glyphRows))
	for r, rows := range glyphRows {
		var cols [5]byte
		for y, row := range rows {
			for x, ch := range row {
				if ch == '#' {
					cols[x] |= 1 << uint(y)
				}
			}
		}
		out[r] = cols
	}
	return out
}

// Glyph returns the column bytes for r.
func Glyph(r rune) [5]byte {
	if g, ok := font[r]; ok {
		return g
	}
	if g, ok := font[[]rune(strings.ToUpper(string(r)))[0]]; ok {
		return g
	}
	return font['?']
}
