package emulator

import (
	"github.com/cliofy/govte"
)

// Cell is one character cell of the grid.
type Cell struct {
	Rune  rune
	Style Style
}

// Screen is a fixed-size virtual terminal: a cell grid plus cursor, fed by a
// VTE parser. It implements govte.Performer; unknown sequences are dropped so
// feeding it arbitrary bytes never fails. Screen is not safe for concurrent
// use; the session guards it with its lock.
type Screen struct {
	rows, cols int
	cells      [][]Cell
	curRow     int
	curCol     int
	style      Style

	parser *govte.Parser
}

var _ govte.Performer = (*Screen)(nil)

// NewScreen creates a blank rows x cols screen with the cursor at the origin.
func NewScreen(rows, cols int) *Screen {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	return &Screen{
		rows:   rows,
		cols:   cols,
		cells:  blankCells(rows, cols),
		parser: govte.NewParser(),
	}
}

func blankCells(rows, cols int) [][]Cell {
	cells := make([][]Cell, rows)
	for r := range cells {
		cells[r] = blankRow(cols)
	}
	return cells
}

func blankRow(cols int) []Cell {
	row := make([]Cell, cols)
	for c := range row {
		row[c].Rune = ' '
	}
	return row
}

// Write feeds raw child output through the escape-sequence parser.
// It never returns an error.
func (s *Screen) Write(p []byte) (int, error) {
	s.parser.Advance(s, p)
	return len(p), nil
}

// Size returns the grid dimensions.
func (s *Screen) Size() (rows, cols int) {
	return s.rows, s.cols
}

// Cursor returns the 0-indexed cursor position.
func (s *Screen) Cursor() (row, col int) {
	return s.curRow, s.curCol
}

// Cell returns the rune and style at (row, col). ok is false outside the grid.
func (s *Screen) Cell(row, col int) (r rune, style Style, ok bool) {
	if row < 0 || row >= s.rows || col < 0 || col >= s.cols {
		return 0, Style{}, false
	}
	cell := s.cells[row][col]
	return cell.Rune, cell.Style, true
}

// Resize replaces the grid with a rows x cols one, preserving content in the
// intersection and clamping the cursor. Parser continuation state survives.
func (s *Screen) Resize(rows, cols int) {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	cells := blankCells(rows, cols)
	for r := 0; r < rows && r < s.rows; r++ {
		copy(cells[r], s.cells[r][:min(cols, s.cols)])
	}
	s.rows, s.cols = rows, cols
	s.cells = cells
	s.curRow = min(s.curRow, rows-1)
	s.curCol = min(s.curCol, cols-1)
}

// scrollUp drops row 0 and appends a blank row at the bottom.
func (s *Screen) scrollUp() {
	copy(s.cells, s.cells[1:])
	s.cells[s.rows-1] = blankRow(s.cols)
}

// Print writes one character at the cursor with the current style and
// advances, wrapping and scrolling as needed.
func (s *Screen) Print(c rune) {
	if s.curRow >= s.rows || s.curCol >= s.cols {
		return
	}
	s.cells[s.curRow][s.curCol] = Cell{Rune: c, Style: s.style}
	s.curCol++
	if s.curCol >= s.cols {
		s.curCol = 0
		s.curRow++
		if s.curRow >= s.rows {
			s.scrollUp()
			s.curRow = s.rows - 1
		}
	}
}

// Execute handles C0 control bytes.
func (s *Screen) Execute(b byte) {
	switch b {
	case '\n':
		s.curRow++
		if s.curRow >= s.rows {
			s.scrollUp()
			s.curRow = s.rows - 1
		}
		s.curCol = 0
	case '\r':
		s.curCol = 0
	case '\t':
		s.curCol = (s.curCol/8 + 1) * 8
		if s.curCol >= s.cols {
			s.curCol = s.cols - 1
		}
	case 0x08:
		if s.curCol > 0 {
			s.curCol--
		}
	}
}

// CsiDispatch handles the CSI subset: cursor movement, erase, line
// insert/delete, and SGR. Everything else is dropped.
func (s *Screen) CsiDispatch(params *govte.Params, intermediates []byte, ignore bool, action rune) {
	if ignore || len(intermediates) > 0 {
		return
	}
	var groups [][]uint16
	if params != nil {
		groups = params.Iter()
	}

	switch action {
	case 'H', 'f':
		row := int(param(groups, 0, 1))
		col := int(param(groups, 1, 1))
		s.curRow = clamp(row-1, 0, s.rows-1)
		s.curCol = clamp(col-1, 0, s.cols-1)
	case 'A':
		s.curRow = max(s.curRow-count(groups), 0)
	case 'B':
		s.curRow = min(s.curRow+count(groups), s.rows-1)
	case 'C':
		s.curCol = min(s.curCol+count(groups), s.cols-1)
	case 'D':
		s.curCol = max(s.curCol-count(groups), 0)
	case 'J':
		s.eraseDisplay(int(param(groups, 0, 0)))
	case 'K':
		s.eraseLine(int(param(groups, 0, 0)))
	case 'M':
		for i := 0; i < count(groups); i++ {
			copy(s.cells[s.curRow:], s.cells[s.curRow+1:])
			s.cells[s.rows-1] = blankRow(s.cols)
		}
	case 'L':
		for i := 0; i < count(groups); i++ {
			copy(s.cells[s.curRow+1:], s.cells[s.curRow:s.rows-1])
			s.cells[s.curRow] = blankRow(s.cols)
		}
	case 'm':
		if len(groups) == 0 {
			s.style = Style{}
			return
		}
		s.style.applySGR(groups)
	}
}

func (s *Screen) eraseDisplay(mode int) {
	switch mode {
	case 0:
		for c := s.curCol; c < s.cols; c++ {
			s.cells[s.curRow][c] = Cell{Rune: ' '}
		}
		for r := s.curRow + 1; r < s.rows; r++ {
			s.cells[r] = blankRow(s.cols)
		}
	case 2:
		s.cells = blankCells(s.rows, s.cols)
		s.curRow, s.curCol = 0, 0
	}
}

func (s *Screen) eraseLine(mode int) {
	switch mode {
	case 0:
		for c := s.curCol; c < s.cols; c++ {
			s.cells[s.curRow][c] = Cell{Rune: ' '}
		}
	case 2:
		s.cells[s.curRow] = blankRow(s.cols)
	}
}

// Hook, Put, Unhook, OscDispatch, and EscDispatch accept and ignore DCS, OSC,
// and bare escape sequences.
func (s *Screen) Hook(params *govte.Params, intermediates []byte, ignore bool, action rune) {}

func (s *Screen) Put(b byte) {}

func (s *Screen) Unhook() {}

func (s *Screen) OscDispatch(params [][]byte, bellTerminated bool) {}

func (s *Screen) EscDispatch(intermediates []byte, ignore bool, b byte) {}

// param returns groups[idx][0] or def when absent or zero-length.
func param(groups [][]uint16, idx int, def uint16) uint16 {
	if idx >= len(groups) || len(groups[idx]) == 0 {
		return def
	}
	return groups[idx][0]
}

// count returns the first parameter as a movement count, defaulting to 1.
func count(groups [][]uint16) int {
	n := param(groups, 0, 1)
	if n < 1 {
		n = 1
	}
	return int(n)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
