// sim/forest.go
package sim

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/forest-sim/sim/trace"
)

// StepObserver is called after every step with the 0-based index of that step
// and the grid it produced. The grid must not be modified or retained; use
// Clone to keep a snapshot. A non-nil error stops the run.
type StepObserver func(step int, grid *Grid) error

// Forest owns a grid and advances it one step at a time.
// Not safe for concurrent use; run independent forests on separate goroutines.
type Forest struct {
	Grid      *Grid
	Params    Params
	StepCount int
	Metrics   *Metrics
	Stepper   Stepper
	// Trace is nil unless tracing is enabled.
	Trace *trace.SimulationTrace

	rng RandomSource
}

// NewForest wraps grid with the given parameters and random source.
// The forest takes ownership of grid.
func NewForest(grid *Grid, params Params, rng RandomSource) (*Forest, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := grid.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidParameter)
	}
	return &Forest{
		Grid:    grid,
		Params:  params,
		Metrics: NewMetrics(),
		rng:     rng,
	}, nil
}

// NewForestFromConfig builds an all-Empty forest of cfg.Size, seeded through a
// PartitionedRNG on cfg.Seed.
func NewForestFromConfig(cfg ForestConfig, traceConfig trace.TraceConfig) (*Forest, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	grid, err := NewGrid(cfg.Size)
	if err != nil {
		return nil, err
	}
	rng := NewPartitionedRNG(NewSimulationKey(cfg.Seed)).ForSubsystem(SubsystemForest)
	f, err := NewForest(grid, cfg.Params(), rng)
	if err != nil {
		return nil, err
	}
	f.Stepper = Stepper{Workers: cfg.Workers}
	if traceConfig.Enabled() {
		f.Trace = trace.NewSimulationTrace(traceConfig)
	}
	return f, nil
}

// Advance performs one step and replaces the owned grid with its successor.
// On error the grid, counters and step index are left unchanged.
func (f *Forest) Advance() (StepCounts, error) {
	next, counts, err := f.Stepper.Step(f.Grid, f.Params, f.rng)
	if err != nil {
		return StepCounts{}, fmt.Errorf("step %d: %w", f.StepCount, err)
	}
	f.Grid = next
	f.Metrics.Record(counts, next)
	if f.Trace != nil {
		f.Trace.RecordStep(trace.StepRecord{
			Step:                 f.StepCount,
			Trees:                next.Count(Tree),
			Fires:                next.Count(Fire),
			SpontaneousIgnitions: counts.SpontaneousIgnitions,
			PropagationIgnitions: counts.PropagationIgnitions,
			TreeDensity:          next.Density(Tree),
		})
	}
	logrus.Debugf("[step %05d] spontaneous=%d propagation=%d", f.StepCount, counts.SpontaneousIgnitions, counts.PropagationIgnitions)
	f.StepCount++
	return counts, nil
}

// Run advances the forest for steps steps, calling observe (if non-nil) after each.
// Stops early with ctx.Err() when ctx is cancelled between steps.
func (f *Forest) Run(ctx context.Context, steps int, observe StepObserver) error {
	for i := 0; i < steps; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := f.Advance(); err != nil {
			return err
		}
		if observe != nil {
			if err := observe(i, f.Grid); err != nil {
				return err
			}
		}
	}
	return nil
}

// Snapshot returns a copy of the current grid.
func (f *Forest) Snapshot() *Grid {
	return f.Grid.Clone()
}
