package cubesolver

import "math/rand"

// Scramble returns n random outer quarter turns drawn from a source
// seeded with seed. A move never directly undoes the previous one.
func Scramble(seed int64, n int) []Move {
	rng := rand.New(rand.NewSource(seed))
	moves := make([]Move, 0, n)
	for len(moves) < n {
		m := FaceMoves[rng.Intn(len(FaceMoves))]
		if len(moves) > 0 && moves[len(moves)-1] == m.Inverse() {
			continue
		}
		moves = append(moves, m)
	}
	return moves
}

// ScrambledGrid returns the grid reached by applying Scramble(seed, n) to
// the solved cube.
func ScrambledGrid(seed int64, n int) Grid {
	return FromMoves(Scramble(seed, n)).Grid()
}

// SampleGrid returns a fixed scrambled state used in examples and tests.
func SampleGrid() Grid {
	return Grid{
		{{6, 2, 3}, {2, 5, 6}, {4, 3, 6}},
		{{5, 2, 4}, {2, 1, 3}, {4, 5, 2}},
		{{1, 4, 5}, {1, 6, 3}, {2, 6, 3}},
		{{5, 1, 6}, {1, 3, 5}, {1, 1, 6}},
		{{3, 5, 5}, {6, 2, 5}, {2, 4, 1}},
		{{3, 4, 1}, {6, 4, 4}, {2, 3, 4}},
	}
}
