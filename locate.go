package cubesolver

// Read-only queries used by the pipeline to find the next piece to work
// on. None of them mutate the cube.

// FaceOfCenter returns the face whose center is col, or NoFace.
func (c *Cube) FaceOfCenter(col Color) Face {
	for f := Back; f <= Right; f++ {
		if c.Center(f) == col {
			return f
		}
	}
	return NoFace
}

// IsOccupied reports whether the sticker at p has color col.
func (c *Cube) IsOccupied(p Piece, col Color) bool {
	return c.At(p) == col
}

// FirstUnsolvedCrossPiece returns the first edge sticker of color col
// outside the Top face, scanning faces in index order and cells row by
// row.
func (c *Cube) FirstUnsolvedCrossPiece(col Color) (Piece, bool) {
	for f := Back; f <= Right; f++ {
		if f == Top {
			continue
		}
		for r := 0; r < 3; r++ {
			for cc := 0; cc < 3; cc++ {
				p := Piece{f, r, cc}
				if p.isEdge() && c.At(p) == col {
					return p, true
				}
			}
		}
	}
	return Piece{}, false
}

// FirstUnsolvedCornerPiece returns the first corner sticker of color col
// outside the Bottom face.
func (c *Cube) FirstUnsolvedCornerPiece(col Color) (Piece, bool) {
	for f := Back; f <= Right; f++ {
		if f == Bottom {
			continue
		}
		for _, r := range [2]int{0, 2} {
			for _, cc := range [2]int{0, 2} {
				p := Piece{f, r, cc}
				if c.At(p) == col {
					return p, true
				}
			}
		}
	}
	return Piece{}, false
}

// FirstUnsolvedSecondLayerEdge returns the first middle row edge sticker
// of a side face that differs from its own center.
func (c *Cube) FirstUnsolvedSecondLayerEdge() (Piece, bool) {
	for _, f := range [4]Face{Back, Front, Left, Right} {
		for _, cc := range [2]int{0, 2} {
			p := Piece{f, 1, cc}
			if c.At(p) != c.Center(f) {
				return p, true
			}
		}
	}
	return Piece{}, false
}

// topEdgeScan orders the side faces by the position of their edge on the
// Top grid, row by row.
var topEdgeScan = [4]Face{Back, Left, Right, Front}

// orientedTopEdges returns the side faces whose Top edge shows the Top
// color on Top.
func (c *Cube) orientedTopEdges() []Face {
	var out []Face
	for _, f := range sideFaces {
		if c.At(topEdges[f][0]) == c.Center(Top) {
			out = append(out, f)
		}
	}
	return out
}

// matchedTopEdges returns the side faces whose Top edge side sticker
// matches the face center.
func (c *Cube) matchedTopEdges() []Face {
	var out []Face
	for _, f := range sideFaces {
		if c.At(topEdges[f][1]) == c.Center(f) {
			out = append(out, f)
		}
	}
	return out
}

// positionedTopCorners returns the side faces f whose Top corner between
// f and rightOf(f) holds the matching cubie in any twist.
func (c *Cube) positionedTopCorners() []Face {
	var out []Face
	for _, f := range sideFaces {
		if c.holdsCubie(topCorners[f][:]) {
			out = append(out, f)
		}
	}
	return out
}

// holdsCubie reports whether the colors in slot equal the centers of the
// faces the slot touches.
func (c *Cube) holdsCubie(slot []Piece) bool {
	var have, want uint32
	for _, p := range slot {
		have |= 1 << c.At(p)
		want |= 1 << c.Center(p.Face)
	}
	return have == want
}
