package cubesolver

// sideFaces lists the four faces around the Top-Bottom axis. Each face is
// followed by the one on its right when looking at it with Top up.
var sideFaces = [4]Face{Front, Right, Back, Left}

func rightOf(f Face) Face {
	switch f {
	case Front:
		return Right
	case Right:
		return Back
	case Back:
		return Left
	case Left:
		return Front
	default:
		return NoFace
	}
}

func leftOf(f Face) Face {
	switch f {
	case Front:
		return Left
	case Left:
		return Back
	case Back:
		return Right
	case Right:
		return Front
	default:
		return NoFace
	}
}

func isSide(f Face) bool {
	return f == Front || f == Right || f == Back || f == Left
}

// edgeSlot lists the two stickers of an edge position.
type edgeSlot [2]Piece

// cornerSlot lists the three stickers of a corner position: the Top or
// Bottom sticker first, then the side face, then the face on its right.
type cornerSlot [3]Piece

// topEdges[f] is the Top layer edge above side face f, Top sticker first.
var topEdges = [6]edgeSlot{
	Front: {{Top, 2, 1}, {Front, 0, 1}},
	Right: {{Top, 1, 2}, {Right, 0, 1}},
	Back:  {{Top, 0, 1}, {Back, 2, 1}},
	Left:  {{Top, 1, 0}, {Left, 0, 1}},
}

// bottomEdges[f] is the Bottom layer edge below side face f, Bottom
// sticker first.
var bottomEdges = [6]edgeSlot{
	Front: {{Bottom, 0, 1}, {Front, 2, 1}},
	Right: {{Bottom, 1, 2}, {Right, 2, 1}},
	Back:  {{Bottom, 2, 1}, {Back, 0, 1}},
	Left:  {{Bottom, 1, 0}, {Left, 2, 1}},
}

// middleEdges[f] is the middle layer edge between f and rightOf(f).
var middleEdges = [6]edgeSlot{
	Front: {{Front, 1, 2}, {Right, 1, 0}},
	Right: {{Right, 1, 2}, {Back, 1, 2}},
	Back:  {{Back, 1, 0}, {Left, 1, 0}},
	Left:  {{Left, 1, 2}, {Front, 1, 0}},
}

// topCorners[f] is the Top layer corner between f and rightOf(f).
var topCorners = [6]cornerSlot{
	Front: {{Top, 2, 2}, {Front, 0, 2}, {Right, 0, 0}},
	Right: {{Top, 0, 2}, {Right, 0, 2}, {Back, 2, 2}},
	Back:  {{Top, 0, 0}, {Back, 2, 0}, {Left, 0, 0}},
	Left:  {{Top, 2, 0}, {Left, 0, 2}, {Front, 0, 0}},
}

// bottomCorners[f] is the Bottom layer corner between f and rightOf(f).
var bottomCorners = [6]cornerSlot{
	Front: {{Bottom, 0, 2}, {Front, 2, 2}, {Right, 2, 0}},
	Right: {{Bottom, 2, 2}, {Right, 2, 2}, {Back, 0, 2}},
	Back:  {{Bottom, 2, 0}, {Back, 0, 0}, {Left, 2, 0}},
	Left:  {{Bottom, 0, 0}, {Left, 2, 2}, {Front, 2, 0}},
}

// cubieIndex maps every edge and corner sticker to the other stickers of
// its cubie.
var cubieIndex = buildCubieIndex()

func allCubies() [][]Piece {
	cubies := make([][]Piece, 0, 20)
	for _, f := range sideFaces {
		cubies = append(cubies,
			topEdges[f][:], bottomEdges[f][:], middleEdges[f][:],
			topCorners[f][:], bottomCorners[f][:])
	}
	return cubies
}

func buildCubieIndex() map[Piece][]Piece {
	index := make(map[Piece][]Piece, 48)
	for _, cubie := range allCubies() {
		for i, p := range cubie {
			others := make([]Piece, 0, len(cubie)-1)
			for j, q := range cubie {
				if j != i {
					others = append(others, q)
				}
			}
			index[p] = others
		}
	}
	return index
}

// partners returns the other stickers on the cubie that carries p, or nil
// for a center.
func partners(p Piece) []Piece {
	return cubieIndex[p]
}

// slotFront returns the face of the pair {a, b} whose right neighbour is
// the other one. It frames algorithms for the slot between the two.
func slotFront(a, b Face) Face {
	if rightOf(a) == b {
		return a
	}
	return b
}
