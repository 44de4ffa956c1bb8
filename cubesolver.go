// Package cubesolver models a 3x3x3 puzzle cube and solves it with a
// deterministic layer-by-layer method.
//
// # Quick Start
//
// Solve a grid of sticker colors:
//
//	sol, err := cubesolver.Solve(grid)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(sol) // e.g. "B L U R U U ..."
//
// The grid lists the faces in Back, Top, Front, Bottom, Left, Right order,
// each a 3x3 array of color codes 1 through 6.
//
// # Cube Simulation
//
// The Cube type can be turned directly:
//
//	cube := cubesolver.New()
//	cube.Apply(cubesolver.R, cubesolver.U, cubesolver.RPrime, cubesolver.UPrime)
//	cube.ApplyNotation("F B2 L' D")
//	fmt.Println("Solved:", cube.IsSolved())
//
// Every turn is recorded; Moves returns the log. Half turns are always
// recorded as two quarter turns.
//
// # Solving Phases
//
// The solver runs these phases in order:
//
//   - PhaseCrossEdges: Bottom colored edges gathered around the Top center
//   - PhaseCrossCenterAlignment: edges dropped onto Bottom as a cross
//   - PhaseFirstLayerCorners: Bottom corners inserted
//   - PhaseSecondLayerEdges: middle layer edges inserted
//   - PhaseLastLayerOrientation: plus built on Top
//   - PhaseLastLayerPermutation: Top edges and corners placed and twisted
//   - PhaseSolved: terminal
//
// Each phase works with bounded loops. A solve that exceeds the rotation
// limit (see WithMaxRotations) fails with ErrConvergence instead of
// looping.
package cubesolver
