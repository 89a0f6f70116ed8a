// sim/stepper.go
package sim

import (
	"fmt"

	"golang.org/x/sync/errgroup"
)

// StepCounts holds the per-step event counters.
// A Tree cell that ignites spontaneously and also has a burning neighbor is
// counted in both fields.
type StepCounts struct {
	PropagationIgnitions int `yaml:"propagation_ignitions"`
	SpontaneousIgnitions int `yaml:"spontaneous_ignitions"`
}

// FireSize returns the sum of both counters.
func (c StepCounts) FireSize() int {
	return c.PropagationIgnitions + c.SpontaneousIgnitions
}

// Stepper applies the transition rule. The zero value is sequential.
type Stepper struct {
	// Workers is the number of row bands the propagation and burnout phases are
	// split into. Values <= 1 run on the calling goroutine. Output does not
	// depend on this value.
	Workers int
}

// Step advances grid by one step with a sequential Stepper.
func Step(grid *Grid, params Params, rng RandomSource) (*Grid, StepCounts, error) {
	return Stepper{}.Step(grid, params, rng)
}

// Step returns the successor of grid and the step's event counters.
//
// Every phase reads the pre-step snapshot; grid itself is never modified.
// Random draws happen in a fixed order: one per Empty cell (row-major) for growth,
// then one per Tree cell (row-major) for spontaneous ignition. Preconditions are
// checked before anything is drawn, so an error never consumes randomness.
func (st Stepper) Step(grid *Grid, params Params, rng RandomSource) (*Grid, StepCounts, error) {
	if err := params.Validate(); err != nil {
		return nil, StepCounts{}, err
	}
	if err := grid.Validate(); err != nil {
		return nil, StepCounts{}, err
	}
	if rng == nil {
		return nil, StepCounts{}, fmt.Errorf("%w: nil random source", ErrInvalidParameter)
	}

	cur := grid.cells
	empties, trees := 0, 0
	for _, c := range cur {
		switch c {
		case Empty:
			empties++
		case Tree:
			trees++
		}
	}
	if fs, ok := rng.(FiniteSource); ok {
		if need := empties + trees; fs.Remaining() < need {
			return nil, StepCounts{}, fmt.Errorf("%w: step needs %d draws, %d remaining", ErrRngExhaustion, need, fs.Remaining())
		}
	}

	next := grid.Clone()
	var counts StepCounts

	// Growth.
	for i, c := range cur {
		if c == Empty && rng.Float64() < params.P {
			next.cells[i] = Tree
		}
	}

	// Spontaneous ignition.
	for i, c := range cur {
		if c == Tree && rng.Float64() < params.F {
			next.cells[i] = Fire
			counts.SpontaneousIgnitions++
		}
	}

	// Propagation, then burnout.
	counts.PropagationIgnitions = st.spread(grid, next)

	return next, counts, nil
}

// spread runs propagation and burnout over row bands and returns the number of
// Tree cells ignited by a burning neighbor.
func (st Stepper) spread(snapshot, next *Grid) int {
	n := snapshot.n
	workers := st.Workers
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		return spreadRows(snapshot, next, 0, n)
	}

	ignited := make([]int, workers)
	band := (n + workers - 1) / workers
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		r0 := w * band
		r1 := min(r0+band, n)
		if r0 >= r1 {
			continue
		}
		g.Go(func() error {
			ignited[w] = spreadRows(snapshot, next, r0, r1)
			return nil
		})
	}
	_ = g.Wait() // bands never fail

	total := 0
	for _, v := range ignited {
		total += v
	}
	return total
}

// spreadRows handles rows [r0, r1). Writes touch only those rows of next.
func spreadRows(snapshot, next *Grid, r0, r1 int) int {
	n := snapshot.n
	mask := make([]bool, (r1-r0)*n)
	markFireNeighbors(snapshot, r0, r1, mask)

	ignited := 0
	for r := r0; r < r1; r++ {
		for c := 0; c < n; c++ {
			i := r*n + c
			switch snapshot.cells[i] {
			case Tree:
				if mask[(r-r0)*n+c] {
					next.cells[i] = Fire
					ignited++
				}
			case Fire:
				next.cells[i] = Empty
			}
		}
	}
	return ignited
}

// markFireNeighbors sets mask for every cell in rows [r0, r1) that has at least
// one Fire cell in its Moore neighborhood. Neighbors outside the grid do not exist.
func markFireNeighbors(g *Grid, r0, r1 int, mask []bool) {
	n := g.n
	for r := max(r0-1, 0); r < min(r1+1, n); r++ {
		for c := 0; c < n; c++ {
			if g.cells[r*n+c] != Fire {
				continue
			}
			for dr := -1; dr <= 1; dr++ {
				nr := r + dr
				if nr < r0 || nr >= r1 {
					continue
				}
				for dc := -1; dc <= 1; dc++ {
					nc := c + dc
					if (dr == 0 && dc == 0) || nc < 0 || nc >= n {
						continue
					}
					mask[(nr-r0)*n+nc] = true
				}
			}
		}
	}
}

// FireNeighborMask reports, for every cell, whether any Moore neighbor is Fire.
func FireNeighborMask(g *Grid) []bool {
	mask := make([]bool, len(g.cells))
	markFireNeighbors(g, 0, g.n, mask)
	return mask
}
