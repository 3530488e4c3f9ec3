package emulator

import (
	"strconv"
	"strings"
)

// ToASCII renders the grid as plain text: one line per row with trailing
// spaces trimmed, each followed by a newline.
func (s *Screen) ToASCII() string {
	var b strings.Builder
	for _, row := range s.cells {
		b.WriteString(trimRow(row))
		b.WriteByte('\n')
	}
	return b.String()
}

func trimRow(row []Cell) string {
	end := len(row)
	for end > 0 && row[end-1].Rune == ' ' {
		end--
	}
	runes := make([]rune, end)
	for i := 0; i < end; i++ {
		runes[i] = row[i].Rune
	}
	return string(runes)
}

// ToANSI renders the grid with SGR sequences emitted at style changes and a
// reset at the end of any row that carried styling. Trailing unstyled blanks
// are trimmed like ToASCII.
func (s *Screen) ToANSI() string {
	var b strings.Builder
	for _, row := range s.cells {
		end := len(row)
		for end > 0 && row[end-1].Rune == ' ' && row[end-1].Style.IsDefault() {
			end--
		}
		styled := false
		cur := Style{}
		for i := 0; i < end; i++ {
			cell := row[i]
			if cell.Style != cur {
				b.WriteString(sgr(cell.Style))
				cur = cell.Style
				if !cell.Style.IsDefault() {
					styled = true
				}
			}
			b.WriteRune(cell.Rune)
		}
		if styled && !cur.IsDefault() {
			b.WriteString("\x1b[0m")
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// sgr builds the escape sequence selecting style from scratch. A leading 0
// clears whatever was active so each transition is self-contained.
func sgr(st Style) string {
	params := []string{"0"}
	if st.Bold {
		params = append(params, "1")
	}
	if st.Underline {
		params = append(params, "4")
	}
	if st.Inverse {
		params = append(params, "7")
	}
	params = append(params, colorParams(st.Fg, false)...)
	params = append(params, colorParams(st.Bg, true)...)
	return "\x1b[" + strings.Join(params, ";") + "m"
}

func colorParams(c Color, background bool) []string {
	switch c.Mode {
	case ColorIndexed:
		n := int(c.Index)
		switch {
		case n < 8:
			if background {
				return []string{strconv.Itoa(40 + n)}
			}
			return []string{strconv.Itoa(30 + n)}
		case n < 16:
			if background {
				return []string{strconv.Itoa(100 + n - 8)}
			}
			return []string{strconv.Itoa(90 + n - 8)}
		default:
			if background {
				return []string{"48", "5", strconv.Itoa(n)}
			}
			return []string{"38", "5", strconv.Itoa(n)}
		}
	case ColorRGB:
		base := "38"
		if background {
			base = "48"
		}
		return []string{base, "2", strconv.Itoa(int(c.R)), strconv.Itoa(int(c.G)), strconv.Itoa(int(c.B))}
	}
	return nil
}
