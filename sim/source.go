package sim

// RandomSource yields independent uniform variates in [0,1).
// *math/rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}

// FiniteSource is implemented by random sources that can run dry.
// Step checks Remaining before drawing so a short source never yields a partial grid.
type FiniteSource interface {
	RandomSource
	Remaining() int
}

// SequenceSource replays a fixed list of variates in order.
type SequenceSource struct {
	values []float64
	pos    int
}

// NewSequenceSource returns a source that yields values in order. The slice is copied.
func NewSequenceSource(values ...float64) *SequenceSource {
	v := make([]float64, len(values))
	copy(v, values)
	return &SequenceSource{values: v}
}

// Float64 returns the next value. Drawing past the end panics; callers that
// respect Remaining never do.
func (s *SequenceSource) Float64() float64 {
	if s.pos >= len(s.values) {
		panic("sim: SequenceSource drawn past its end")
	}
	v := s.values[s.pos]
	s.pos++
	return v
}

// Remaining reports how many values are left.
func (s *SequenceSource) Remaining() int { return len(s.values) - s.pos }
