// Tracks run-wide event counters such as spontaneous and propagated ignitions.

package sim

import (
	"fmt"
	"io"
)

// Metrics aggregates statistics about a forest run for final reporting.
type Metrics struct {
	Steps                int     `yaml:"steps"`
	SpontaneousIgnitions int     `yaml:"spontaneous_ignitions"` // sum over steps
	PropagationIgnitions int     `yaml:"propagation_ignitions"` // sum over steps
	FireSize             int     `yaml:"fire_size"`             // sum of both counters
	PeakFireSize         int     `yaml:"peak_fire_size"`        // largest single-step fire size
	StepsWithFire        int     `yaml:"steps_with_fire"`
	FinalTreeDensity     float64 `yaml:"final_tree_density"`

	FireSizes []int `yaml:"-"` // fire size of every step, in order
}

// NewMetrics returns an empty Metrics.
func NewMetrics() *Metrics {
	return &Metrics{FireSizes: make([]int, 0)}
}

// Record folds one step's counters and resulting grid into the totals.
func (m *Metrics) Record(counts StepCounts, next *Grid) {
	size := counts.FireSize()
	m.Steps++
	m.SpontaneousIgnitions += counts.SpontaneousIgnitions
	m.PropagationIgnitions += counts.PropagationIgnitions
	m.FireSize += size
	if size > m.PeakFireSize {
		m.PeakFireSize = size
	}
	if size > 0 {
		m.StepsWithFire++
	}
	m.FireSizes = append(m.FireSizes, size)
	m.FinalTreeDensity = next.Density(Tree)
}

// Print writes aggregated metrics at the end of a run.
func (m *Metrics) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Simulation Metrics ===")
	fmt.Fprintf(w, "Steps                 : %d\n", m.Steps)
	fmt.Fprintf(w, "Spontaneous Ignitions : %d\n", m.SpontaneousIgnitions)
	fmt.Fprintf(w, "Propagation Ignitions : %d\n", m.PropagationIgnitions)
	fmt.Fprintf(w, "Total Fire Size       : %d\n", m.FireSize)
	if m.Steps > 0 {
		fmt.Fprintf(w, "Mean Fire Size        : %.2f cells/step\n", CalculateMean(m.FireSizes))
		fmt.Fprintf(w, "P99 Fire Size         : %.2f cells\n", CalculatePercentile(m.FireSizes, 99))
		fmt.Fprintf(w, "Peak Fire Size        : %d cells\n", m.PeakFireSize)
		fmt.Fprintf(w, "Steps With Fire       : %d\n", m.StepsWithFire)
		fmt.Fprintf(w, "Final Tree Density    : %.4f\n", m.FinalTreeDensity)
	}
}
