package rain

import (
	"slices"
	"strings"
)

// Blank is the content of an empty cell.
const Blank = ' '

// Point is a cell coordinate.
type Point struct {
	Col, Row int
}

// Frame is the character grid produced by one tick, together with the set of
// cells that hold a stream head.
type Frame struct {
	Cols, Rows int
	cells      [][]rune
	heads      map[Point]struct{}
}

func NewFrame(cols, rows int) *Frame {
	cols, rows = max(cols, 0), max(rows, 0)
	f := &Frame{
		Cols:  cols,
		Rows:  rows,
		cells: make([][]rune, rows),
		heads: make(map[Point]struct{}),
	}
	for i := range f.cells {
		f.cells[i] = make([]rune, cols)
	}
	f.Clear()
	return f
}

// Clear blanks every cell and empties the head set.
func (f *Frame) Clear() {
	for i := range f.cells {
		for j := range f.cells[i] {
			f.cells[i][j] = Blank
		}
	}
	clear(f.heads)
}

func (f *Frame) inBounds(col, row int) bool {
	return col >= 0 && row >= 0 && col < f.Cols && row < f.Rows
}

// Set writes r at (col, row). Out of bounds writes are dropped.
func (f *Frame) Set(col, row int, r rune) {
	if !f.inBounds(col, row) {
		return
	}
	f.cells[row][col] = r
}

// At returns the glyph at (col, row), or Blank outside the grid.
func (f *Frame) At(col, row int) rune {
	if !f.inBounds(col, row) {
		return Blank
	}
	return f.cells[row][col]
}

// MarkHead records (col, row) as a stream head. Heads may lie outside the grid.
func (f *Frame) MarkHead(col, row int) {
	f.heads[Point{Col: col, Row: row}] = struct{}{}
}

func (f *Frame) IsHead(col, row int) bool {
	_, ok := f.heads[Point{Col: col, Row: row}]
	return ok
}

// Heads returns the head set ordered by row, then column.
func (f *Frame) Heads() []Point {
	pts := make([]Point, 0, len(f.heads))
	for p := range f.heads {
		pts = append(pts, p)
	}
	slices.SortFunc(pts, func(a, b Point) int {
		if a.Row != b.Row {
			return a.Row - b.Row
		}
		return a.Col - b.Col
	})
	return pts
}

// NonBlank counts cells holding a glyph.
func (f *Frame) NonBlank() int {
	n := 0
	for _, row := range f.cells {
		for _, r := range row {
			if r != Blank {
				n++
			}
		}
	}
	return n
}

// Row returns a copy of one grid row.
func (f *Frame) Row(row int) []rune {
	if row < 0 || row >= f.Rows {
		return nil
	}
	return slices.Clone(f.cells[row])
}

func (f *Frame) Lines() []string {
	lines := make([]string, f.Rows)
	for i, row := range f.cells {
		lines[i] = string(row)
	}
	return lines
}

// String renders the grid as plain text, one line per row.
func (f *Frame) String() string {
	return strings.Join(f.Lines(), "\n")
}
