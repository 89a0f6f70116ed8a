package sim

import (
	"fmt"
	"strings"
)

// Grid is a square N×N lattice of cells stored in row-major order.
// Dimensions never change after construction.
type Grid struct {
	n     int
	cells []CellState
}

// NewGrid allocates an all-Empty grid with side length n.
// Returns ErrInvalidGrid if n < 1.
func NewGrid(n int) (*Grid, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: side length must be positive, got %d", ErrInvalidGrid, n)
	}
	return &Grid{n: n, cells: make([]CellState, n*n)}, nil
}

// NewGridFromRows builds a grid from explicit rows. The rows are copied.
func NewGridFromRows(rows [][]CellState) (*Grid, error) {
	n := len(rows)
	if n == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidGrid)
	}
	g := &Grid{n: n, cells: make([]CellState, 0, n*n)}
	for r, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidGrid, r, len(row), n)
		}
		g.cells = append(g.cells, row...)
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// ParseGrid reads a grid from a compact text form: one line per row, '.' for
// Empty, 'T' for Tree and 'F' for Fire. Blank lines and surrounding spaces are ignored.
func ParseGrid(s string) (*Grid, error) {
	var rows [][]CellState
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		row := make([]CellState, 0, len(line))
		for _, ch := range line {
			switch ch {
			case '.':
				row = append(row, Empty)
			case 'T':
				row = append(row, Tree)
			case 'F':
				row = append(row, Fire)
			default:
				return nil, fmt.Errorf("%w: unknown cell symbol %q", ErrInvalidGrid, ch)
			}
		}
		rows = append(rows, row)
	}
	return NewGridFromRows(rows)
}

// Size returns the side length N.
func (g *Grid) Size() int { return g.n }

// Cells exposes the backing slice in row-major order.
func (g *Grid) Cells() []CellState { return g.cells }

// Index returns the linear slice index for (row, col).
func (g *Grid) Index(row, col int) int { return row*g.n + col }

// At returns the state at (row, col).
func (g *Grid) At(row, col int) CellState { return g.cells[row*g.n+col] }

// Set writes the state at (row, col).
func (g *Grid) Set(row, col int, s CellState) { g.cells[row*g.n+col] = s }

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	cells := make([]CellState, len(g.cells))
	copy(cells, g.cells)
	return &Grid{n: g.n, cells: cells}
}

// Count returns how many cells hold state s.
func (g *Grid) Count(s CellState) int {
	total := 0
	for _, c := range g.cells {
		if c == s {
			total++
		}
	}
	return total
}

// Density returns the fraction of cells holding state s.
func (g *Grid) Density(s CellState) float64 {
	return float64(g.Count(s)) / float64(len(g.cells))
}

// Rows returns a copy of the grid as a slice of rows.
func (g *Grid) Rows() [][]CellState {
	rows := make([][]CellState, g.n)
	for r := range rows {
		rows[r] = make([]CellState, g.n)
		copy(rows[r], g.cells[r*g.n:(r+1)*g.n])
	}
	return rows
}

// Equal reports whether both grids have the same size and cells.
func (g *Grid) Equal(other *Grid) bool {
	if g == nil || other == nil {
		return g == other
	}
	if g.n != other.n {
		return false
	}
	for i, c := range g.cells {
		if other.cells[i] != c {
			return false
		}
	}
	return true
}

// Validate checks that the grid is non-empty, square and holds only known states.
func (g *Grid) Validate() error {
	if g == nil {
		return fmt.Errorf("%w: nil grid", ErrInvalidGrid)
	}
	if g.n < 1 || len(g.cells) != g.n*g.n {
		return fmt.Errorf("%w: %d cells for side length %d", ErrInvalidGrid, len(g.cells), g.n)
	}
	for i, c := range g.cells {
		if !c.Valid() {
			return fmt.Errorf("%w: cell (%d,%d) holds %v", ErrInvalidGrid, i/g.n, i%g.n, c)
		}
	}
	return nil
}

// String renders the grid in the ParseGrid text form.
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow(g.n * (g.n + 1))
	for r := 0; r < g.n; r++ {
		for c := 0; c < g.n; c++ {
			switch g.At(r, c) {
			case Empty:
				b.WriteByte('.')
			case Tree:
				b.WriteByte('T')
			case Fire:
				b.WriteByte('F')
			default:
				b.WriteByte('?')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
