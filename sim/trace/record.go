// Package trace provides per-step counter recording for forest runs.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// StepRecord captures the outcome of a single step.
type StepRecord struct {
	Step                 int // 0-based index of the step that produced this state
	Trees                int // Tree cells after the step
	Fires                int // Fire cells after the step
	SpontaneousIgnitions int
	PropagationIgnitions int
	TreeDensity          float64
}

// FireSize returns the combined ignition count of the step.
func (r StepRecord) FireSize() int {
	return r.SpontaneousIgnitions + r.PropagationIgnitions
}
