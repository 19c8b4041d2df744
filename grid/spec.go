// Package grid solves the pixel geometry of a named grid of cells.
//
// A Spec names the cells of a grid row by row. Each element drawn into the
// grid declares a Participant naming its cell and kind; the kind decides how
// much space the cell asks for. A Solver turns a Spec, its participants and
// the container size into one Rect per named cell.
package grid

import (
	"strings"
)

// Spec names the cells of a grid, row by row. An empty string leaves a
// position unnamed. Rows may have different lengths; missing trailing
// positions are unnamed.
type Spec [][]string

// Locate returns the position of the named cell.
func (s Spec) Locate(name string) (row, col int, ok bool) {
	if name == "" {
		return 0, 0, false
	}
	for r, cells := range s {
		for c, cell := range cells {
			if cell == name {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}

// Cols returns the number of columns of the widest row.
func (s Spec) Cols() int {
	cols := 0
	for _, row := range s {
		cols = max(cols, len(row))
	}
	return cols
}

// Names returns the named cells in row-major order.
func (s Spec) Names() []string {
	var names []string
	for _, row := range s {
		for _, cell := range row {
			if cell != "" {
				names = append(names, cell)
			}
		}
	}
	return names
}

// Validate reports the first cell name that appears more than once.
func (s Spec) Validate() error {
	seen := map[string]bool{}
	for _, name := range s.Names() {
		if seen[name] {
			return &CellError{Cell: name, Err: ErrDuplicateCell}
		}
		seen[name] = true
	}
	return nil
}

func (s Spec) key() string {
	var b strings.Builder
	for _, row := range s {
		for _, cell := range row {
			b.WriteString(cell)
			b.WriteByte(0)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
