package sim

import (
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStep_ClosedStates_AndBurnout(t *testing.T) {
	// GIVEN random grids and a spread of parameters
	params := []Params{{0, 0}, {1, 1}, {0.5, 0.5}, {0.01, 0.0001}, {1, 0}, {0, 1}}
	for seed := int64(0); seed < 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		g := randomGrid(rng, 1+int(seed)%9)
		for _, p := range params {
			// WHEN stepped
			next, counts, err := Step(g, p, rng)
			require.NoError(t, err)

			// THEN every cell is a known state and every Fire cell burned out
			require.NoError(t, next.Validate())
			for i, c := range g.cells {
				if c == Fire {
					assert.Equal(t, Empty, next.cells[i], "seed %d params %+v cell %d", seed, p, i)
				}
				// no Empty cell jumps straight to Fire
				if c == Empty {
					assert.NotEqual(t, Fire, next.cells[i])
				}
			}
			// THEN counters are non-negative and bounded by the snapshot's trees
			trees := g.Count(Tree)
			assert.GreaterOrEqual(t, counts.PropagationIgnitions, 0)
			assert.GreaterOrEqual(t, counts.SpontaneousIgnitions, 0)
			assert.LessOrEqual(t, counts.PropagationIgnitions, trees)
			assert.LessOrEqual(t, counts.SpontaneousIgnitions, trees)
		}
	}
}

func TestStep_NoEventsIsFixedPoint(t *testing.T) {
	// GIVEN a grid without fire and p=f=0
	g := mustGrid(t, `
		T.T.
		.TT.
		....
		TTTT`)
	before := g.Clone()

	// WHEN stepped
	next, counts, err := Step(g, Params{P: 0, F: 0}, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	// THEN nothing changes
	if diff := cmp.Diff(g.Rows(), next.Rows()); diff != "" {
		t.Errorf("grid changed (-want +got):\n%s", diff)
	}
	assert.Equal(t, StepCounts{}, counts)
	assert.True(t, g.Equal(before), "input grid must not be modified")
}

func TestStep_FullGrowth_EveryEmptyBecomesTree(t *testing.T) {
	// GIVEN an all-Empty 5×5 grid
	g, err := NewGrid(5)
	require.NoError(t, err)

	// WHEN stepped with p=1, f=0
	next, counts, err := Step(g, Params{P: 1, F: 0}, rand.New(rand.NewSource(7)))
	require.NoError(t, err)

	// THEN all 25 cells are Tree and nothing ignited
	assert.Equal(t, 25, next.Count(Tree))
	assert.Equal(t, StepCounts{}, counts)
}

func TestStep_FullGrowth_BurnoutWins(t *testing.T) {
	// GIVEN Empty cells next to a Fire cell
	g := mustGrid(t, `
		...
		.F.
		...`)

	// WHEN stepped with p=1, f=1
	next, counts, err := Step(g, Params{P: 1, F: 1}, rand.New(rand.NewSource(7)))
	require.NoError(t, err)

	// THEN the empties grow (never ignite) and the fire burns out
	want := mustGrid(t, `
		TTT
		T.T
		TTT`)
	if diff := cmp.Diff(want.Rows(), next.Rows()); diff != "" {
		t.Errorf("unexpected grid (-want +got):\n%s", diff)
	}
	assert.Equal(t, StepCounts{}, counts)
}

func TestStep_CenterFireIgnitesMooreNeighborhood(t *testing.T) {
	// GIVEN a 3×3 grid with a burning center and 8 trees
	g := mustGrid(t, `
		TTT
		TFT
		TTT`)

	// WHEN stepped with p=f=0
	next, counts, err := Step(g, Params{}, rand.New(rand.NewSource(3)))
	require.NoError(t, err)

	// THEN the center burns out and all 8 neighbors ignite
	want := mustGrid(t, `
		FFF
		F.F
		FFF`)
	if diff := cmp.Diff(want.Rows(), next.Rows()); diff != "" {
		t.Errorf("unexpected grid (-want +got):\n%s", diff)
	}
	assert.Equal(t, StepCounts{PropagationIgnitions: 8, SpontaneousIgnitions: 0}, counts)
}

func TestStep_PropagationReachesOnlyNeighbors(t *testing.T) {
	// GIVEN a single fire inside a 5×5 forest
	g := mustGrid(t, `
		TTTTT
		TTTTT
		TTFTT
		TTTTT
		TTTTT`)

	// WHEN stepped with p=f=0
	next, counts, err := Step(g, Params{}, rand.New(rand.NewSource(3)))
	require.NoError(t, err)

	// THEN exactly the ring around the fire ignites
	want := mustGrid(t, `
		TTTTT
		TFFFT
		TF.FT
		TFFFT
		TTTTT`)
	if diff := cmp.Diff(want.Rows(), next.Rows()); diff != "" {
		t.Errorf("unexpected grid (-want +got):\n%s", diff)
	}
	assert.Equal(t, 8, counts.PropagationIgnitions)
}

func TestStep_Boundaries(t *testing.T) {
	tests := []struct {
		name      string
		grid      string
		params    Params
		want      string
		wantCount StepCounts
	}{
		{
			name: "corner fire has three neighbors",
			grid: `
				FTT
				TTT
				TTT`,
			want: `
				.FT
				FFT
				TTT`,
			wantCount: StepCounts{PropagationIgnitions: 3},
		},
		{
			name: "edge fire has five neighbors",
			grid: `
				TTT
				FTT
				TTT`,
			want: `
				FFT
				.FT
				FFT`,
			wantCount: StepCounts{PropagationIgnitions: 5},
		},
		{
			name: "no wraparound across opposite edges",
			grid: `
				F..T
				....
				....
				T..T`,
			want: `
				...T
				....
				....
				T..T`,
		},
		{
			name:   "1x1 fire burns out",
			grid:   "F",
			params: Params{P: 1, F: 1},
			want:   ".",
		},
		{
			name:   "1x1 empty grows",
			grid:   ".",
			params: Params{P: 1},
			want:   "T",
		},
		{
			name:      "1x1 tree ignites spontaneously",
			grid:      "T",
			params:    Params{F: 1},
			want:      "F",
			wantCount: StepCounts{SpontaneousIgnitions: 1},
		},
		{
			name: "2x2 fire ignites the rest",
			grid: `
				FT
				TT`,
			want: `
				.F
				FF`,
			wantCount: StepCounts{PropagationIgnitions: 3},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustGrid(t, tt.grid)
			next, counts, err := Step(g, tt.params, rand.New(rand.NewSource(11)))
			require.NoError(t, err)
			want := mustGrid(t, tt.want)
			if diff := cmp.Diff(want.Rows(), next.Rows()); diff != "" {
				t.Errorf("unexpected grid (-want +got):\n%s", diff)
			}
			assert.Equal(t, tt.wantCount, counts)
		})
	}
}

func TestStep_CellIgnitedBothWaysCountsTwice(t *testing.T) {
	// GIVEN three trees next to a fire and f=1
	g := mustGrid(t, `
		FT
		TT`)

	// WHEN stepped
	_, counts, err := Step(g, Params{P: 0, F: 1}, rand.New(rand.NewSource(5)))
	require.NoError(t, err)

	// THEN each tree appears in both counters
	assert.Equal(t, StepCounts{PropagationIgnitions: 3, SpontaneousIgnitions: 3}, counts)
	assert.Equal(t, 6, counts.FireSize())
}

func TestStep_DrawOrder_GrowthThenIgnitionRowMajor(t *testing.T) {
	// GIVEN two empties and two trees, and a scripted source
	g := mustGrid(t, `
		.T
		.T`)
	// growth draws for (0,0), (1,0); ignition draws for (0,1), (1,1)
	src := NewSequenceSource(0.4, 0.6, 0.9, 0.1)

	// WHEN stepped with p=f=0.5
	next, counts, err := Step(g, Params{P: 0.5, F: 0.5}, src)
	require.NoError(t, err)

	// THEN each draw lands on the expected cell
	want := mustGrid(t, `
		TT
		.F`)
	if diff := cmp.Diff(want.Rows(), next.Rows()); diff != "" {
		t.Errorf("unexpected grid (-want +got):\n%s", diff)
	}
	assert.Equal(t, StepCounts{SpontaneousIgnitions: 1}, counts)
	assert.Equal(t, 0, src.Remaining())
}

func TestStep_DrawsEvenWhenProbabilityIsZero(t *testing.T) {
	// GIVEN a grid with 1 Empty, 2 Tree and 1 Fire cell
	g := mustGrid(t, `
		.T
		TF`)
	src := NewSequenceSource(0.5, 0.5, 0.5, 0.5)

	// WHEN stepped with p=f=0
	_, _, err := Step(g, Params{}, src)
	require.NoError(t, err)

	// THEN one variate per eligible cell was consumed (fire cells draw nothing)
	assert.Equal(t, 1, src.Remaining())
}

func TestStep_ThresholdIsStrict(t *testing.T) {
	// GIVEN a draw exactly equal to p
	g := mustGrid(t, ".")
	next, _, err := Step(g, Params{P: 0.5}, NewSequenceSource(0.5))
	require.NoError(t, err)

	// THEN the cell does not grow (variate must be < p)
	assert.Equal(t, Empty, next.At(0, 0))
}

func TestStep_InvalidParameter(t *testing.T) {
	g := mustGrid(t, "T.\n.T")
	tests := []struct {
		name   string
		params Params
	}{
		{"negative p", Params{P: -0.1}},
		{"p above one", Params{P: 1.0001}},
		{"NaN p", Params{P: math.NaN()}},
		{"negative f", Params{F: -1}},
		{"f above one", Params{F: 2}},
		{"NaN f", Params{F: math.NaN()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := NewSequenceSource(0.1, 0.2, 0.3, 0.4)
			next, counts, err := Step(g, tt.params, src)
			assert.ErrorIs(t, err, ErrInvalidParameter)
			assert.Nil(t, next)
			assert.Equal(t, StepCounts{}, counts)
			assert.Equal(t, 4, src.Remaining(), "no randomness consumed on error")
		})
	}
}

func TestStep_InvalidGrid(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	_, _, err := Step(nil, Params{}, rng)
	assert.ErrorIs(t, err, ErrInvalidGrid)

	_, _, err = Step(&Grid{}, Params{}, rng)
	assert.ErrorIs(t, err, ErrInvalidGrid)

	_, _, err = Step(&Grid{n: 2, cells: make([]CellState, 3)}, Params{}, rng)
	assert.ErrorIs(t, err, ErrInvalidGrid)

	// GIVEN a grid holding an illegal state
	g := mustGrid(t, "TT\nTF")
	g.Cells()[1] = CellState(7)
	before := g.Clone()
	_, _, err = Step(g, Params{}, rng)
	assert.ErrorIs(t, err, ErrInvalidGrid)
	assert.True(t, g.Equal(before), "input grid must not be modified")
}

func TestStep_RngExhaustion(t *testing.T) {
	// GIVEN a grid needing 3 draws and a source holding 2
	g := mustGrid(t, `
		.T
		.F`)
	src := NewSequenceSource(0.1, 0.2)

	// WHEN stepped
	next, _, err := Step(g, Params{P: 0.5, F: 0.5}, src)

	// THEN the step fails before drawing anything
	assert.ErrorIs(t, err, ErrRngExhaustion)
	assert.Nil(t, next)
	assert.Equal(t, 2, src.Remaining())
}

func TestStep_NilRandomSource(t *testing.T) {
	_, _, err := Step(mustGrid(t, "T"), Params{}, nil)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestStepper_WorkersDoNotChangeResults(t *testing.T) {
	// GIVEN a dense random grid
	g := randomGrid(rand.New(rand.NewSource(99)), 37)
	params := Params{P: 0.3, F: 0.05}

	want, wantCounts, err := Stepper{}.Step(g, params, rand.New(rand.NewSource(1234)))
	require.NoError(t, err)

	// WHEN stepped with various worker counts and the same stream
	for _, w := range []int{0, 1, 2, 3, 4, 7, 37, 100} {
		got, gotCounts, err := Stepper{Workers: w}.Step(g, params, rand.New(rand.NewSource(1234)))
		require.NoError(t, err)

		// THEN results are identical
		assert.True(t, want.Equal(got), "workers=%d changed the grid", w)
		assert.Equal(t, wantCounts, gotCounts, "workers=%d changed the counters", w)
	}
}

func TestFireNeighborMask(t *testing.T) {
	g := mustGrid(t, `
		F...
		....
		...F
		....`)
	mask := FireNeighborMask(g)
	want := []bool{
		false, true, false, false,
		true, true, true, true,
		false, false, true, false,
		false, false, true, true,
	}
	assert.Equal(t, want, mask)
}

func BenchmarkStep_300(b *testing.B) {
	rng := rand.New(rand.NewSource(42))
	g := randomGrid(rng, 300)
	params := Params{P: 0.01, F: 0.0001}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := Step(g, params, rng); err != nil {
			b.Fatal(err)
		}
	}
}
