package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalSteps           int
	StepsWithFire        int
	TotalSpontaneous     int
	TotalPropagation     int
	MeanFireSize         float64
	MaxFireSize          int
	MaxFireStep          int // step of the first occurrence of MaxFireSize; -1 if no steps
	MeanTreeDensity      float64
	FireSizeDistribution map[int]int // fire size → number of steps with that size
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		MaxFireStep:          -1,
		FireSizeDistribution: make(map[int]int),
	}
	if st == nil || len(st.Steps) == 0 {
		return summary
	}

	summary.TotalSteps = len(st.Steps)
	totalFire := 0
	totalDensity := 0.0
	for _, r := range st.Steps {
		size := r.FireSize()
		summary.TotalSpontaneous += r.SpontaneousIgnitions
		summary.TotalPropagation += r.PropagationIgnitions
		summary.FireSizeDistribution[size]++
		totalFire += size
		totalDensity += r.TreeDensity
		if size > 0 {
			summary.StepsWithFire++
		}
		if summary.MaxFireStep < 0 || size > summary.MaxFireSize {
			summary.MaxFireSize = size
			summary.MaxFireStep = r.Step
		}
	}
	summary.MeanFireSize = float64(totalFire) / float64(summary.TotalSteps)
	summary.MeanTreeDensity = totalDensity / float64(summary.TotalSteps)

	return summary
}
