package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/cubesolver"
)

func moves(t *testing.T, s string) []cubesolver.Move {
	t.Helper()
	m, err := cubesolver.ParseMoves(s)
	require.NoError(t, err)
	return m
}

func TestMineNGrams(t *testing.T) {
	// The sexy move three times.
	seq := moves(t, "R U R' U' R U R' U' R U R' U'")
	grams := MineNGrams(seq, 4, 4, 3)

	require.NotEmpty(t, grams[4])
	top := grams[4][0]
	assert.Equal(t, []string{"R", "U", "R'", "U'"}, top.Sequence)
	assert.Equal(t, 3, top.Count)
	assert.Equal(t, []int{0, 4, 8}, top.Starts)
	for _, g := range grams[4] {
		assert.GreaterOrEqual(t, g.Count, 2)
	}
}

func TestMineNGramsNoRepeats(t *testing.T) {
	grams := MineNGrams(moves(t, "R U F D L B"), 2, 4, 5)
	assert.Empty(t, grams)

	assert.Empty(t, MineNGrams(moves(t, "R U"), 4, 8, 5), "shorter than n")
}

func TestMineNGramsDistinguishesTurns(t *testing.T) {
	grams := MineNGrams(moves(t, "R U R U' R U R U'"), 2, 2, 10)
	require.Len(t, grams[2], 3)

	var got []string
	for _, g := range grams[2] {
		assert.Equal(t, 2, g.Count, "%v", g.Sequence)
		got = append(got, g.Sequence[0]+" "+g.Sequence[1])
	}
	assert.ElementsMatch(t, []string{"R U", "U R", "R U'"}, got)
}

func TestAnalyzeCancellationsAndMerges(t *testing.T) {
	sol := &cubesolver.Solution{Moves: moves(t, "R R' U U U F")}
	r := Analyze(sol, Options{})

	assert.Equal(t, 6, r.TotalMoves)
	assert.Equal(t, 2, r.CompactSteps, "R R' cancels, U U U folds to U'")
	assert.InDelta(t, 2.0/6.0, r.Efficiency, 1e-9)

	require.Len(t, r.Cancellations, 1)
	assert.Equal(t, Cancellation{Index: 0, Moves: "R R'"}, r.Cancellations[0])

	require.Len(t, r.Merges, 1)
	assert.Equal(t, Merge{Index: 2, Length: 3, Step: "U'"}, r.Merges[0])

	assert.Equal(t, map[string]int{"R": 2, "U": 3, "F": 1}, r.LayerCounts)
	assert.Equal(t, "U", r.MostUsedLayer)
	assert.Nil(t, r.NGrams)
}

func TestAnalyzeSample(t *testing.T) {
	sol, err := cubesolver.Solve(cubesolver.SampleGrid())
	require.NoError(t, err)

	r := Analyze(sol, DefaultOptions)
	assert.Equal(t, len(sol.Moves), r.TotalMoves)
	assert.LessOrEqual(t, r.CompactSteps, r.TotalMoves)

	require.Len(t, r.Phases, len(sol.Segments))
	total, share := 0, 0.0
	for i, ps := range r.Phases {
		assert.Equal(t, sol.Segments[i].Phase.String(), ps.Phase)
		total += ps.MoveCount
		share += ps.Share
	}
	assert.Equal(t, r.TotalMoves, total)
	assert.InDelta(t, 1.0, share, 1e-9)

	sum := 0
	for _, n := range r.LayerCounts {
		sum += n
	}
	assert.Equal(t, r.TotalMoves, sum)

	// The last layer algorithms repeat trigger sequences.
	assert.NotEmpty(t, r.NGrams)
}

func TestAnalyzeEmpty(t *testing.T) {
	r := Analyze(&cubesolver.Solution{}, DefaultOptions)
	assert.Zero(t, r.TotalMoves)
	assert.Zero(t, r.Efficiency)
	assert.Empty(t, r.MostUsedLayer)
	assert.Empty(t, r.NGrams)
}
