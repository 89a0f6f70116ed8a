package clusters

import (
	"sort"
	"sync"
)

// AggregateStat is the average behaviour of one cluster size over many snapshots.
type AggregateStat struct {
	Size        int     `yaml:"size"`
	MeanCount   float64 `yaml:"mean_count"`  // N(s): mean clusters of this size per snapshot where it occurred
	MeanRadius  float64 `yaml:"mean_radius"` // R(s): mean of the per-snapshot mean radii
	Occurrences int     `yaml:"occurrences"` // snapshots in which this size occurred
}

type sizeSums struct {
	count       float64
	radius      float64
	occurrences int
}

// Accumulator averages per-snapshot SizeStat rows by cluster size.
// Safe for concurrent use.
type Accumulator struct {
	mu        sync.Mutex
	sums      map[int]*sizeSums
	snapshots int
}

// NewAccumulator returns an empty Accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{sums: make(map[int]*sizeSums)}
}

// Add folds in the statistics of one snapshot.
func (a *Accumulator) Add(stats []SizeStat) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.snapshots++
	for _, s := range stats {
		sum, ok := a.sums[s.Size]
		if !ok {
			sum = &sizeSums{}
			a.sums[s.Size] = sum
		}
		sum.count += float64(s.Count)
		sum.radius += s.MeanRadius
		sum.occurrences++
	}
}

// Snapshots returns how many snapshots were added.
func (a *Accumulator) Snapshots() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snapshots
}

// Results returns one AggregateStat per observed size, sorted by size ascending.
// Sizes are averaged only over the snapshots in which they occurred.
func (a *Accumulator) Results() []AggregateStat {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]AggregateStat, 0, len(a.sums))
	for size, sum := range a.sums {
		occ := float64(sum.occurrences)
		out = append(out, AggregateStat{
			Size:        size,
			MeanCount:   sum.count / occ,
			MeanRadius:  sum.radius / occ,
			Occurrences: sum.occurrences,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Size < out[j].Size })
	return out
}
