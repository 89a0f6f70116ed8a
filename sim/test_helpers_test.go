package sim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// mustGrid parses the '.', 'T', 'F' text form or fails the test.
func mustGrid(t *testing.T, s string) *Grid {
	t.Helper()
	g, err := ParseGrid(s)
	require.NoError(t, err)
	return g
}

// randomGrid fills an n×n grid with uniformly chosen states.
func randomGrid(rng *rand.Rand, n int) *Grid {
	g := &Grid{n: n, cells: make([]CellState, n*n)}
	for i := range g.cells {
		g.cells[i] = CellState(rng.Intn(3))
	}
	return g
}
