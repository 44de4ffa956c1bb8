package cubesolver

import (
	"errors"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// replay applies moves to a fresh cube holding g.
func replay(t *testing.T, g Grid, moves []Move) *Cube {
	t.Helper()
	c, err := FromGrid(g)
	require.NoError(t, err)
	c.Apply(moves...)
	return c
}

func TestSolveSample(t *testing.T) {
	sol, err := Solve(SampleGrid())
	require.NoError(t, err)

	c := replay(t, SampleGrid(), sol.Moves)
	assert.True(t, c.IsSolved(), "replayed sample solution should solve the cube:\n%s", c)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "sample_solution", []byte(sol.String()+"\n"))
}

func TestSolveRandomScrambles(t *testing.T) {
	for seed := int64(1); seed <= 200; seed++ {
		g := ScrambledGrid(seed, 25)
		sol, err := Solve(g)
		require.NoError(t, err, "seed %d", seed)
		assert.LessOrEqual(t, len(sol.Moves), DefaultMaxRotations, "seed %d", seed)

		c := replay(t, g, sol.Moves)
		assert.True(t, c.IsSolved(), "seed %d: replay did not solve", seed)
	}
}

func TestSolveSolvedCube(t *testing.T) {
	sol, err := Solve(SolvedGrid())
	require.NoError(t, err)
	assert.True(t, replay(t, SolvedGrid(), sol.Moves).IsSolved())
}

func TestSolveOtherColorScheme(t *testing.T) {
	// Same cube with every color renamed; the solver reads centers only.
	rename := map[Color]Color{Blue: Orange, Green: Red, Orange: Yellow, Red: White, Yellow: Blue, White: Green}
	src := ScrambledGrid(99, 30)
	var g Grid
	for f := 0; f < 6; f++ {
		for r := 0; r < 3; r++ {
			for c := 0; c < 3; c++ {
				g[f][r][c] = rename[src[f][r][c]]
			}
		}
	}

	sol, err := Solve(g)
	require.NoError(t, err)
	assert.True(t, replay(t, g, sol.Moves).IsSolved())
}

func TestSolveRejectsInvalidGrid(t *testing.T) {
	g := SolvedGrid()
	g[Front][0][0] = g[Back][0][0]

	_, err := Solve(g)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidCubeState))
}

func TestSolveRotationFuse(t *testing.T) {
	_, err := Solve(SampleGrid(), WithMaxRotations(10))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConvergence))

	var pe *PhaseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 10, pe.Rotations)
	assert.Equal(t, PhaseCrossCenterAlignment, pe.Phase)
}

func TestSolveUnsolvableTwistedCorner(t *testing.T) {
	// A single twisted corner passes validation but no sequence of turns
	// can solve it.
	g := SolvedGrid()
	slot := topCorners[Front]
	a, b, c := g[slot[0].Face][slot[0].Row][slot[0].Col], g[slot[1].Face][slot[1].Row][slot[1].Col], g[slot[2].Face][slot[2].Row][slot[2].Col]
	g[slot[0].Face][slot[0].Row][slot[0].Col] = c
	g[slot[1].Face][slot[1].Row][slot[1].Col] = a
	g[slot[2].Face][slot[2].Row][slot[2].Col] = b

	_, err := Solve(g)
	require.Error(t, err)
	var pe *PhaseError
	require.True(t, errors.As(err, &pe))
	assert.True(t, errors.Is(err, ErrConvergence) || errors.Is(err, ErrLocatorExhausted))
}

func TestPhaseHookAndSegments(t *testing.T) {
	var phases []Phase
	var counts []int
	hook := func(p Phase, rotations int) {
		phases = append(phases, p)
		counts = append(counts, rotations)
	}

	sol, err := Solve(SampleGrid(), WithPhaseHook(hook))
	require.NoError(t, err)

	assert.Equal(t, []Phase{
		PhaseCrossEdges,
		PhaseCrossCenterAlignment,
		PhaseFirstLayerCorners,
		PhaseSecondLayerEdges,
		PhaseLastLayerOrientation,
		PhaseLastLayerPermutation,
	}, phases)
	assert.IsNonDecreasing(t, counts)

	require.Len(t, sol.Segments, len(phases))
	start := 0
	for i, seg := range sol.Segments {
		assert.Equal(t, phases[i], seg.Phase)
		assert.Equal(t, start, seg.Start)
		assert.Equal(t, counts[i], seg.End)
		start = seg.End
	}
	assert.Equal(t, len(sol.Moves), start)
}

func TestPhasePredicatesAfterEachSegment(t *testing.T) {
	sol, err := Solve(SampleGrid())
	require.NoError(t, err)

	c, err := FromGrid(SampleGrid())
	require.NoError(t, err)
	for _, seg := range sol.Segments {
		c.Apply(sol.Moves[seg.Start:seg.End]...)
		switch seg.Phase {
		case PhaseCrossEdges:
			assert.True(t, c.IsDaisyComplete())
		case PhaseCrossCenterAlignment:
			assert.True(t, c.IsCrossComplete())
		case PhaseFirstLayerCorners:
			assert.True(t, c.IsFirstLayerComplete())
		case PhaseSecondLayerEdges:
			assert.True(t, c.IsSecondLayerComplete())
		case PhaseLastLayerOrientation:
			assert.True(t, c.IsTopCrossComplete())
			assert.Equal(t, ShapePlus, c.TopShape())
		case PhaseLastLayerPermutation:
			assert.True(t, c.IsSolved())
		}
	}
}

// solveThrough runs the pipeline up to and including phase p.
func solveThrough(t *testing.T, g Grid, p Phase) *Solver {
	t.Helper()
	c, err := FromGrid(g)
	require.NoError(t, err)
	s := NewSolver(c)
	for _, st := range pipeline {
		s.phase = st.phase
		require.NoError(t, st.run(s))
		if st.phase == p {
			break
		}
	}
	return s
}

func TestOrientationStrictlyImproves(t *testing.T) {
	for seed := int64(1); seed <= 100; seed++ {
		s := solveThrough(t, ScrambledGrid(seed, 25), PhaseSecondLayerEdges)
		s.phase = PhaseLastLayerOrientation

		for i := 0; i < 4; i++ {
			before := len(s.cube.orientedTopEdges())
			done, err := s.orientStep()
			require.NoError(t, err)
			if done {
				break
			}
			after := len(s.cube.orientedTopEdges())
			assert.Greater(t, after, before, "seed %d step %d", seed, i)
			assert.True(t, s.cube.IsSecondLayerComplete(), "seed %d: orientation broke the first two layers", seed)
		}
		assert.Equal(t, ShapePlus, s.cube.TopShape(), "seed %d", seed)
	}
}

func TestMakePlaceEmpty(t *testing.T) {
	s := NewSolver(New())
	cell := topEdges[Front][0]

	// Nothing to clear.
	require.NoError(t, s.makePlaceEmpty(cell, s.cube.Center(Bottom)))
	assert.Equal(t, 0, s.cube.Recorder().Len())

	// Every Top edge holds the color, so three turns never clear it.
	err := s.makePlaceEmpty(cell, s.cube.Center(Top))
	assert.True(t, errors.Is(err, ErrLocatorExhausted))
	assert.Equal(t, 3, s.cube.Recorder().Len())
}

func TestMakePlaceEmptyDuringDaisy(t *testing.T) {
	// With at most three daisy petals placed a free Top edge cell is
	// always reached within three turns.
	for seed := int64(1); seed <= 50; seed++ {
		s := solveThrough(t, ScrambledGrid(seed, 25), PhaseCrossEdges)
		target := s.cube.Center(Bottom)
		for _, f := range sideFaces {
			c := s.cube.Clone()
			probe := NewSolver(c)
			// Knock one petal out so a free cell exists.
			c.Apply(faceMove(f, CW), faceMove(f, CW))
			for _, x := range sideFaces {
				start := c.Recorder().Len()
				require.NoError(t, probe.makePlaceEmpty(topEdges[x][0], target), "seed %d", seed)
				assert.LessOrEqual(t, c.Recorder().Len()-start, 3)
			}
		}
	}
}

func TestCarryMovesTopEdge(t *testing.T) {
	for _, src := range sideFaces {
		for _, dst := range sideFaces {
			c := FromMoves(Scramble(21, 30))
			want := c.At(topEdges[src][1])
			wantTop := c.At(topEdges[src][0])
			c.Apply(carry(src, dst)...)
			assert.Equal(t, want, c.At(topEdges[dst][1]), "%s -> %s", src, dst)
			assert.Equal(t, wantTop, c.At(topEdges[dst][0]), "%s -> %s", src, dst)
		}
	}
}

func TestDetectPhase(t *testing.T) {
	c := New()
	assert.Equal(t, PhaseSolved, c.DetectPhase())

	c.Apply(U)
	assert.Equal(t, PhaseLastLayerPermutation, c.DetectPhase())

	c = FromMoves(Scramble(8, 30))
	assert.Less(t, c.DetectPhase(), PhaseSolved)
}

func TestTrackerReachesSolved(t *testing.T) {
	sol, err := Solve(SampleGrid())
	require.NoError(t, err)

	start, err := FromGrid(SampleGrid())
	require.NoError(t, err)
	tr := NewTracker(start)

	var reached []Phase
	tr.SetPhaseCallback(func(p Phase, _ int) { reached = append(reached, p) })
	tr.ApplyMoves(sol.Moves)

	assert.True(t, tr.IsSolved())
	assert.Equal(t, PhaseSolved, tr.HighestPhase())
	require.NotEmpty(t, reached)
	assert.IsIncreasing(t, reached)
	assert.Equal(t, 0, start.Recorder().Len(), "tracker must not touch the source cube")
}

func TestScrambleDeterministic(t *testing.T) {
	a := Scramble(1234, 40)
	b := Scramble(1234, 40)
	assert.Equal(t, a, b)
	require.Len(t, a, 40)
	for i := 1; i < len(a); i++ {
		assert.NotEqual(t, a[i-1].Inverse(), a[i], "move %d undoes move %d", i, i-1)
	}
}

func TestParseMoves(t *testing.T) {
	moves, err := ParseMoves("R U2 F' M E' S2'")
	require.NoError(t, err)
	assert.Equal(t, []Move{R, U, U, FPrime, M, EPrime, S, S}, moves)

	for _, bad := range []string{"X", "R3", "U''", "2", "r", "u'", "m2"} {
		_, err := ParseMoves(bad)
		assert.True(t, errors.Is(err, ErrInvalidNotation), "input %q", bad)
	}
}

func TestApplyNotationMatchesApply(t *testing.T) {
	a := New()
	require.NoError(t, a.ApplyNotation("R U R' U'"))
	b := New()
	b.Apply(R, U, RPrime, UPrime)
	assert.Equal(t, b.Grid(), a.Grid())
	assert.Equal(t, b.Moves(), a.Moves())
}

func TestApplyRejectsUnknownMoves(t *testing.T) {
	for _, m := range []Move{{Layer: LayerU, Turn: 2}, {Layer: "X", Turn: CW}, {}} {
		assert.False(t, m.Valid(), "move %+v", m)

		c := New()
		assert.PanicsWithError(t, fmt.Sprintf("%v: move %q turn %d", ErrInvalidRotation, m.Layer, m.Turn), func() {
			c.Apply(m)
		})
		assert.Empty(t, c.Moves())
		assert.True(t, c.IsSolved())
	}
	for _, m := range FaceMoves {
		assert.True(t, m.Valid(), "move %s", m)
	}
}

func TestOrientStepRejectsOddTopEdges(t *testing.T) {
	g := SolvedGrid()
	top, side := topEdges[Front][0], topEdges[Front][1]
	g[top.Face][top.Row][top.Col], g[side.Face][side.Row][side.Col] =
		g[side.Face][side.Row][side.Col], g[top.Face][top.Row][top.Col]

	c, err := FromGrid(g)
	require.NoError(t, err)

	s := NewSolver(c)
	s.phase = PhaseLastLayerOrientation
	done, err := s.orientStep()
	assert.False(t, done)
	assert.True(t, errors.Is(err, ErrLocatorExhausted), "got %v", err)
	assert.Empty(t, c.Moves(), "nothing is turned for an unsolvable top")
}
