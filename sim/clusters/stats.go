package clusters

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/inference-sim/forest-sim/sim"
)

// SizeStat describes all clusters of one size in a single snapshot.
type SizeStat struct {
	Size       int     `yaml:"size"`
	Count      int     `yaml:"count"`       // clusters with this size
	MeanRadius float64 `yaml:"mean_radius"` // mean radius of gyration over those clusters
}

// RadiusOfGyration returns sqrt(mean(|x - cm|^2)) for the given cell coordinates.
// A single cell has radius 0. Returns 0 for no cells.
func RadiusOfGyration(rows, cols []float64) float64 {
	if len(rows) == 0 {
		return 0
	}
	cmRow := stat.Mean(rows, nil)
	cmCol := stat.Mean(cols, nil)
	sq := make([]float64, len(rows))
	for i := range rows {
		dr, dc := rows[i]-cmRow, cols[i]-cmCol
		sq[i] = dr*dr + dc*dc
	}
	return math.Sqrt(stat.Mean(sq, nil))
}

// Radii returns the radius of gyration of every cluster in l, indexed by label-1.
func Radii(l *Labeling) []float64 {
	rows := make([][]float64, l.NumClusters())
	cols := make([][]float64, l.NumClusters())
	for k, size := range l.Sizes {
		rows[k] = make([]float64, 0, size)
		cols[k] = make([]float64, 0, size)
	}
	for i, label := range l.Labels {
		if label == 0 {
			continue
		}
		rows[label-1] = append(rows[label-1], float64(i/l.N))
		cols[label-1] = append(cols[label-1], float64(i%l.N))
	}
	radii := make([]float64, l.NumClusters())
	for k := range radii {
		radii[k] = RadiusOfGyration(rows[k], cols[k])
	}
	return radii
}

// Analyze labels the Tree clusters of g and groups them by size, sorted by size ascending.
func Analyze(g *sim.Grid) []SizeStat {
	l := Label(g)
	radii := Radii(l)

	bySize := make(map[int][]float64)
	for k, size := range l.Sizes {
		bySize[size] = append(bySize[size], radii[k])
	}

	out := make([]SizeStat, 0, len(bySize))
	for size, rs := range bySize {
		out = append(out, SizeStat{Size: size, Count: len(rs), MeanRadius: stat.Mean(rs, nil)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Size < out[j].Size })
	return out
}
