// Package clusters labels connected tree clusters and measures their size and
// radius of gyration, the observables of forest-fire criticality studies.
package clusters

import "github.com/inference-sim/forest-sim/sim"

// Labeling is the result of connected-component labeling over the Tree mask.
type Labeling struct {
	N int
	// Labels holds one entry per cell in row-major order: 0 for non-Tree cells,
	// otherwise the 1-based cluster label.
	Labels []int
	// Sizes[k] is the cell count of cluster k+1.
	Sizes []int
}

// NumClusters returns the number of clusters found.
func (l *Labeling) NumClusters() int { return len(l.Sizes) }

// Label finds 4-connected clusters of Tree cells. Labels are assigned in
// row-major order of each cluster's first cell.
func Label(g *sim.Grid) *Labeling {
	n := g.Size()
	cells := g.Cells()
	l := &Labeling{N: n, Labels: make([]int, len(cells)), Sizes: make([]int, 0)}

	stack := make([]int, 0, 64)
	for start, c := range cells {
		if c != sim.Tree || l.Labels[start] != 0 {
			continue
		}
		label := len(l.Sizes) + 1
		size := 0
		l.Labels[start] = label
		stack = append(stack[:0], start)
		for len(stack) > 0 {
			i := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			size++
			r, col := i/n, i%n
			if r > 0 {
				stack = l.visit(cells, i-n, label, stack)
			}
			if r < n-1 {
				stack = l.visit(cells, i+n, label, stack)
			}
			if col > 0 {
				stack = l.visit(cells, i-1, label, stack)
			}
			if col < n-1 {
				stack = l.visit(cells, i+1, label, stack)
			}
		}
		l.Sizes = append(l.Sizes, size)
	}
	return l
}

func (l *Labeling) visit(cells []sim.CellState, j, label int, stack []int) []int {
	if cells[j] == sim.Tree && l.Labels[j] == 0 {
		l.Labels[j] = label
		stack = append(stack, j)
	}
	return stack
}
