package cubesolver

import (
	"fmt"
	"strings"
)

// Layer names the slice a move turns in standard notation.
type Layer string

const (
	LayerR Layer = "R" // Right
	LayerL Layer = "L" // Left
	LayerU Layer = "U" // Up (Top)
	LayerD Layer = "D" // Down (Bottom)
	LayerF Layer = "F" // Front
	LayerB Layer = "B" // Back
	LayerM Layer = "M" // between L and R, turns like L
	LayerE Layer = "E" // between U and D, turns like D
	LayerS Layer = "S" // between F and B, turns like F
)

// Turn is the direction of a quarter turn.
type Turn int

const (
	CW  Turn = 1  // Clockwise (90 degrees)
	CCW Turn = -1 // Counter-clockwise (90 degrees)
)

// Move is a single quarter turn. Half turns are always expressed as two
// moves.
type Move struct {
	Layer Layer
	Turn  Turn
}

// Notation returns the standard notation string for this move.
// Examples: R, R', M
func (m Move) Notation() string {
	if m.Turn == CCW {
		return string(m.Layer) + "'"
	}
	return string(m.Layer)
}

// String returns the notation string (alias for Notation).
func (m Move) String() string {
	return m.Notation()
}

// Inverse returns the move that undoes m.
func (m Move) Inverse() Move {
	return Move{Layer: m.Layer, Turn: -m.Turn}
}

// ParseMove parses a single quarter turn such as R or U'.
func ParseMove(s string) (Move, error) {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return Move{}, ErrInvalidNotation
	}

	layer := Layer(s[:1])
	switch layer {
	case LayerR, LayerL, LayerU, LayerD, LayerF, LayerB, LayerM, LayerE, LayerS:
	default:
		return Move{}, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
	}

	switch s[1:] {
	case "":
		return Move{Layer: layer, Turn: CW}, nil
	case "'", "`":
		return Move{Layer: layer, Turn: CCW}, nil
	default:
		return Move{}, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
	}
}

// ParseMoves parses a whitespace separated sequence. A half turn such as
// R2 expands into two quarter turns.
func ParseMoves(s string) ([]Move, error) {
	parts := strings.Fields(s)
	moves := make([]Move, 0, len(parts))

	for _, part := range parts {
		if strings.HasSuffix(part, "2") || strings.HasSuffix(part, "2'") {
			m, err := ParseMove(part[:1])
			if err != nil {
				return nil, fmt.Errorf("%w: %q", ErrInvalidNotation, part)
			}
			if len(part) > 3 || (len(part) == 3 && part[2] != '\'') {
				return nil, fmt.Errorf("%w: %q", ErrInvalidNotation, part)
			}
			moves = append(moves, m, m)
			continue
		}
		m, err := ParseMove(part)
		if err != nil {
			return nil, err
		}
		moves = append(moves, m)
	}

	return moves, nil
}

// FormatMoves formats moves as a space separated notation string.
func FormatMoves(moves []Move) string {
	return strings.Join(Notations(moves), " ")
}

// Notations returns the notation string of each move.
func Notations(moves []Move) []string {
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.Notation()
	}
	return parts
}

// Apply performs moves on the cube and records them. It panics on a move
// outside the quarter turn set, which only a caller building Move values
// by hand can produce.
func (c *Cube) Apply(moves ...Move) {
	for _, m := range moves {
		p, ok := primitiveOf[m]
		if !ok {
			panic(fmt.Errorf("%w: move %q turn %d", ErrInvalidRotation, m.Layer, m.Turn))
		}
		c.rotate(p)
	}
}

// Valid reports whether m is one of the quarter turns Apply accepts.
func (m Move) Valid() bool {
	_, ok := primitiveOf[m]
	return ok
}

// ApplyNotation parses s and applies it.
func (c *Cube) ApplyNotation(s string) error {
	moves, err := ParseMoves(s)
	if err != nil {
		return err
	}
	c.Apply(moves...)
	return nil
}

// primitiveOf maps each move to the slice turn that performs it.
var primitiveOf = map[Move]primitive{
	U:      {axisSide, SliceFirst, Backward},
	UPrime: {axisSide, SliceFirst, Forward},
	D:      {axisSide, SliceLast, Forward},
	DPrime: {axisSide, SliceLast, Backward},
	L:      {axisVertical, SliceFirst, Forward},
	LPrime: {axisVertical, SliceFirst, Backward},
	R:      {axisVertical, SliceLast, Backward},
	RPrime: {axisVertical, SliceLast, Forward},
	F:      {axisDepth, SliceLast, Backward},
	FPrime: {axisDepth, SliceLast, Forward},
	B:      {axisDepth, SliceFirst, Forward},
	BPrime: {axisDepth, SliceFirst, Backward},
	M:      {axisVertical, SliceMiddle, Forward},
	MPrime: {axisVertical, SliceMiddle, Backward},
	E:      {axisSide, SliceMiddle, Forward},
	EPrime: {axisSide, SliceMiddle, Backward},
	S:      {axisDepth, SliceMiddle, Backward},
	SPrime: {axisDepth, SliceMiddle, Forward},
}

var moveOf = func() map[primitive]Move {
	m := make(map[primitive]Move, len(primitiveOf))
	for mv, p := range primitiveOf {
		m[p] = mv
	}
	return m
}()

// faceMove returns the quarter turn of face f.
func faceMove(f Face, t Turn) Move {
	return Move{Layer: Layer(f.Notation()), Turn: t}
}
