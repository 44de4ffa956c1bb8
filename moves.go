package cubesolver

import (
	"fmt"
	"strings"
)

// Predefined moves for convenience.
//
// Example:
//
//	cube.Apply(cubesolver.R, cubesolver.U, cubesolver.RPrime, cubesolver.UPrime)
var (
	R      = Move{Layer: LayerR, Turn: CW}
	RPrime = Move{Layer: LayerR, Turn: CCW}
	L      = Move{Layer: LayerL, Turn: CW}
	LPrime = Move{Layer: LayerL, Turn: CCW}
	U      = Move{Layer: LayerU, Turn: CW}
	UPrime = Move{Layer: LayerU, Turn: CCW}
	D      = Move{Layer: LayerD, Turn: CW}
	DPrime = Move{Layer: LayerD, Turn: CCW}
	F      = Move{Layer: LayerF, Turn: CW}
	FPrime = Move{Layer: LayerF, Turn: CCW}
	B      = Move{Layer: LayerB, Turn: CW}
	BPrime = Move{Layer: LayerB, Turn: CCW}

	// Middle slices. These also move centers.
	M      = Move{Layer: LayerM, Turn: CW}
	MPrime = Move{Layer: LayerM, Turn: CCW}
	E      = Move{Layer: LayerE, Turn: CW}
	EPrime = Move{Layer: LayerE, Turn: CCW}
	S      = Move{Layer: LayerS, Turn: CW}
	SPrime = Move{Layer: LayerS, Turn: CCW}
)

// FaceMoves lists the twelve outer quarter turns.
var FaceMoves = []Move{R, RPrime, L, LPrime, U, UPrime, D, DPrime, F, FPrime, B, BPrime}

// algorithm is a sequence written relative to a front face: F is the
// front, R and L its neighbours, B the face behind it. U and D stay Top
// and Bottom in every frame.
type algorithm []relMove

type relMove struct {
	letter byte
	turn   Turn
}

// mustAlgorithm parses a relative sequence. Half turns expand into two
// quarter turns.
func mustAlgorithm(s string) algorithm {
	var alg algorithm
	for _, tok := range strings.Fields(s) {
		switch {
		case len(tok) == 1:
			alg = append(alg, relMove{tok[0], CW})
		case tok[1:] == "'":
			alg = append(alg, relMove{tok[0], CCW})
		case tok[1:] == "2":
			alg = append(alg, relMove{tok[0], CW}, relMove{tok[0], CW})
		default:
			panic(fmt.Sprintf("cubesolver: bad algorithm token %q", tok))
		}
	}
	return alg
}

// framed returns the absolute moves of alg when front is the front face.
func (alg algorithm) framed(front Face) []Move {
	moves := make([]Move, len(alg))
	for i, rm := range alg {
		var f Face
		switch rm.letter {
		case 'F':
			f = front
		case 'R':
			f = rightOf(front)
		case 'B':
			f = front.Opposite()
		case 'L':
			f = leftOf(front)
		case 'U':
			f = Top
		case 'D':
			f = Bottom
		}
		moves[i] = faceMove(f, rm.turn)
	}
	return moves
}

var (
	// trigger inserts or pops the bottom corner below the front-right
	// top corner.
	trigger = mustAlgorithm("R U R' U'")

	insertRight = mustAlgorithm("U R U' R' U' F' U F")
	insertLeft  = mustAlgorithm("U' L' U L U F U' F'")

	// topLine flips the Top edges so a line becomes a plus and a dot
	// becomes an L.
	topLine = mustAlgorithm("F R U R' U' F'")
	// topL turns an L with its arms at back and left into a plus.
	topL = mustAlgorithm("F U R U' R' F'")

	// edgeCycle cycles three Top edges, keeping back and right fixed.
	edgeCycle = mustAlgorithm("R U R' U R U2 R' U")
	// cornerCycle cycles three Top corners, keeping front-right fixed.
	cornerCycle = mustAlgorithm("U R U' L' U R' U' L")
	// twist turns the front-right Top corner in place, scrambling the
	// bottom layer until it has been applied a multiple of six times.
	twist = mustAlgorithm("R' D' R D")
)
