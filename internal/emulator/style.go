package emulator

// ColorMode selects how a Color is interpreted.
type ColorMode uint8

const (
	// ColorDefault is the terminal's default foreground or background.
	ColorDefault ColorMode = iota
	// ColorIndexed is a palette color (0-255).
	ColorIndexed
	// ColorRGB is a 24-bit truecolor value.
	ColorRGB
)

// Color is a cell foreground or background color. The zero value is the
// terminal default.
type Color struct {
	Mode    ColorMode
	Index   uint8
	R, G, B uint8
}

// Indexed returns a palette color.
func Indexed(n uint8) Color {
	return Color{Mode: ColorIndexed, Index: n}
}

// RGB returns a truecolor value.
func RGB(r, g, b uint8) Color {
	return Color{Mode: ColorRGB, R: r, G: g, B: b}
}

// Style is the graphic rendition attached to a cell. The zero value is the
// unstyled default. Styles are comparable, which the segmenter relies on.
type Style struct {
	Bold      bool
	Underline bool
	Inverse   bool
	Fg        Color
	Bg        Color
}

// IsDefault reports whether the style is the unstyled zero value.
func (s Style) IsDefault() bool {
	return s == Style{}
}

// applySGR updates the style from the parameter groups of one SGR sequence.
// Groups are the semicolon- or colon-separated runs the parser hands us;
// extended color introducers (38/48) consume follow-up values, skipping the
// whole groups they swallowed.
func (s *Style) applySGR(groups [][]uint16) {
	for i := 0; i < len(groups); i++ {
		g := groups[i]
		if len(g) == 0 {
			g = []uint16{0}
		}
		switch p := g[0]; {
		case p == 0:
			*s = Style{}
		case p == 1:
			s.Bold = true
		case p == 4:
			s.Underline = true
		case p == 7:
			s.Inverse = true
		case p == 22:
			s.Bold = false
		case p == 24:
			s.Underline = false
		case p == 27:
			s.Inverse = false
		case p >= 30 && p <= 37:
			s.Fg = Indexed(uint8(p - 30))
		case p == 38:
			color, skip, ok := extendedColor(g, groups[i+1:])
			if ok {
				s.Fg = color
			}
			i += skip
		case p == 39:
			s.Fg = Color{}
		case p >= 40 && p <= 47:
			s.Bg = Indexed(uint8(p - 40))
		case p == 48:
			color, skip, ok := extendedColor(g, groups[i+1:])
			if ok {
				s.Bg = color
			}
			i += skip
		case p == 49:
			s.Bg = Color{}
		case p >= 90 && p <= 97:
			s.Fg = Indexed(uint8(p - 90 + 8))
		case p >= 100 && p <= 107:
			s.Bg = Indexed(uint8(p - 100 + 8))
		}
	}
}

// extendedColor decodes a 38/48 color. The colon form carries the whole
// selector in one group ("38:5:196"); the semicolon form spreads it over the
// following groups ("38;5;196"), which we then consume from rest.
func extendedColor(g []uint16, rest [][]uint16) (Color, int, bool) {
	if len(g) >= 2 {
		switch g[1] {
		case 5:
			if len(g) >= 3 {
				return Indexed(uint8(g[2])), 0, true
			}
		case 2:
			if len(g) >= 5 {
				return RGB(uint8(g[2]), uint8(g[3]), uint8(g[4])), 0, true
			}
		}
		return Color{}, 0, false
	}

	if len(rest) >= 1 && len(rest[0]) > 0 {
		switch rest[0][0] {
		case 5:
			if len(rest) >= 2 && len(rest[1]) > 0 {
				return Indexed(uint8(rest[1][0])), 2, true
			}
		case 2:
			if len(rest) >= 4 && len(rest[1]) > 0 && len(rest[2]) > 0 && len(rest[3]) > 0 {
				return RGB(uint8(rest[1][0]), uint8(rest[2][0]), uint8(rest[3][0])), 4, true
			}
		}
	}
	return Color{}, 0, false
}
