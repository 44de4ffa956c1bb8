package cubesolver

import (
	"fmt"
	"strings"
)

// Color is a sticker color code. Valid codes are 1 through 6.
type Color byte

const (
	Blue   Color = 1
	Yellow Color = 2
	Green  Color = 3
	White  Color = 4
	Orange Color = 5
	Red    Color = 6
)

func (c Color) String() string {
	switch c {
	case Blue:
		return "B"
	case Yellow:
		return "Y"
	case Green:
		return "G"
	case White:
		return "W"
	case Orange:
		return "O"
	case Red:
		return "R"
	default:
		return "?"
	}
}

// Valid reports whether c is one of the six palette codes.
func (c Color) Valid() bool {
	return c >= Blue && c <= Red
}

// Opposite returns the color that belongs on the opposite face.
func (c Color) Opposite() Color {
	switch c {
	case Blue:
		return Green
	case Green:
		return Blue
	case Yellow:
		return White
	case White:
		return Yellow
	case Orange:
		return Red
	case Red:
		return Orange
	default:
		return 0
	}
}

// Face identifies one of the six faces of the grid.
type Face int

const (
	Back Face = iota
	Top
	Front
	Bottom
	Left
	Right
)

// NoFace is returned by lookups that find nothing.
const NoFace Face = -1

func (f Face) String() string {
	switch f {
	case Back:
		return "Back"
	case Top:
		return "Top"
	case Front:
		return "Front"
	case Bottom:
		return "Bottom"
	case Left:
		return "Left"
	case Right:
		return "Right"
	default:
		return "None"
	}
}

// Notation returns the Singmaster letter of the face.
func (f Face) Notation() string {
	switch f {
	case Back:
		return "B"
	case Top:
		return "U"
	case Front:
		return "F"
	case Bottom:
		return "D"
	case Left:
		return "L"
	case Right:
		return "R"
	default:
		return "?"
	}
}

// Opposite returns the face across the cube.
func (f Face) Opposite() Face {
	switch f {
	case Back:
		return Front
	case Front:
		return Back
	case Top:
		return Bottom
	case Bottom:
		return Top
	case Left:
		return Right
	case Right:
		return Left
	default:
		return NoFace
	}
}

// Grid holds the stickers of all six faces in Back, Top, Front, Bottom,
// Left, Right order. Each face is indexed [row][col].
//
// Top, Front, Bottom and Back form a band around the left-right axis:
// Top row 2 touches Front row 0, Front row 2 touches Bottom row 0, Bottom
// row 2 touches Back row 0 and Back row 2 touches Top row 0. Column 0 of
// those faces lies against Left. Left and Right have row 0 at the top,
// with Left column 2 and Right column 0 against Front.
type Grid [6][3][3]Color

// SolvedGrid returns the solved grid where face f carries color f+1.
func SolvedGrid() Grid {
	var g Grid
	for f := 0; f < 6; f++ {
		for r := 0; r < 3; r++ {
			for c := 0; c < 3; c++ {
				g[f][r][c] = Color(f + 1)
			}
		}
	}
	return g
}

// Piece addresses a single sticker.
type Piece struct {
	Face Face
	Row  int
	Col  int
}

func (p Piece) String() string {
	return fmt.Sprintf("%s(%d,%d)", p.Face, p.Row, p.Col)
}

func (p Piece) isCorner() bool {
	return p.Row != 1 && p.Col != 1
}

func (p Piece) isEdge() bool {
	return (p.Row == 1) != (p.Col == 1)
}

// Cube is a 3x3x3 puzzle state together with the log of every turn
// applied to it.
type Cube struct {
	grid     Grid
	recorder *Recorder
}

// New returns a solved cube.
func New() *Cube {
	return &Cube{grid: SolvedGrid(), recorder: NewRecorder()}
}

// FromGrid validates g and returns a cube holding it.
func FromGrid(g Grid) (*Cube, error) {
	if err := Validate(g); err != nil {
		return nil, err
	}
	return &Cube{grid: g, recorder: NewRecorder()}, nil
}

// FromMoves returns the solved cube after applying moves. The returned
// cube starts with an empty recorder.
func FromMoves(moves []Move) *Cube {
	c := New()
	c.Apply(moves...)
	c.recorder.Reset()
	return c
}

// Validate checks that g is a legal cube: valid colors, nine of each,
// distinct centers with opposite colors on opposite faces, and every
// edge and corner cubie a real piece that appears exactly once.
func Validate(g Grid) error {
	var counts [7]int
	for f := 0; f < 6; f++ {
		for r := 0; r < 3; r++ {
			for c := 0; c < 3; c++ {
				col := g[f][r][c]
				if !col.Valid() {
					return fmt.Errorf("%w: color code %d at %s", ErrInvalidCubeState, col, Piece{Face(f), r, c})
				}
				counts[col]++
			}
		}
	}
	for col := Blue; col <= Red; col++ {
		if counts[col] != 9 {
			return fmt.Errorf("%w: color %s appears %d times", ErrInvalidCubeState, col, counts[col])
		}
	}

	var seen [7]bool
	for f := Back; f <= Right; f++ {
		col := g[f][1][1]
		if seen[col] {
			return fmt.Errorf("%w: duplicate center %s", ErrInvalidCubeState, col)
		}
		seen[col] = true
		if g[f.Opposite()][1][1] != col.Opposite() {
			return fmt.Errorf("%w: center %s on %s is not opposite %s", ErrInvalidCubeState,
				g[f.Opposite()][1][1], f.Opposite(), col)
		}
	}

	return validatePieces(g)
}

func validatePieces(g Grid) error {
	centers := func(f Face) Color { return g[f][1][1] }
	used := make(map[uint32]bool, 20)
	for _, slot := range allCubies() {
		var key uint32
		for _, p := range slot {
			key |= 1 << g[p.Face][p.Row][p.Col]
		}
		if popcount(key) != len(slot) {
			return fmt.Errorf("%w: cubie at %s repeats a color", ErrInvalidCubeState, slot[0])
		}
		if !isPieceSet(key, len(slot), centers) {
			return fmt.Errorf("%w: cubie at %s has no matching piece", ErrInvalidCubeState, slot[0])
		}
		if used[key] {
			return fmt.Errorf("%w: cubie at %s appears twice", ErrInvalidCubeState, slot[0])
		}
		used[key] = true
	}
	return nil
}

// isPieceSet reports whether the color set key belongs to some slot of
// the solved arrangement defined by centers.
func isPieceSet(key uint32, size int, centers func(Face) Color) bool {
	for _, slot := range allCubies() {
		if len(slot) != size {
			continue
		}
		var want uint32
		for _, p := range slot {
			want |= 1 << centers(p.Face)
		}
		if want == key {
			return true
		}
	}
	return false
}

func popcount(v uint32) int {
	n := 0
	for ; v != 0; v &= v - 1 {
		n++
	}
	return n
}

// Grid returns a copy of the sticker grid.
func (c *Cube) Grid() Grid {
	return c.grid
}

// At returns the color at p.
func (c *Cube) At(p Piece) Color {
	return c.grid[p.Face][p.Row][p.Col]
}

// Center returns the center color of f.
func (c *Cube) Center(f Face) Color {
	return c.grid[f][1][1]
}

// Recorder returns the move log of the cube.
func (c *Cube) Recorder() *Recorder {
	return c.recorder
}

// Moves returns a copy of the recorded moves.
func (c *Cube) Moves() []Move {
	return c.recorder.Moves()
}

// Clone returns a deep copy of the cube, including its move log.
func (c *Cube) Clone() *Cube {
	clone := &Cube{grid: c.grid, recorder: NewRecorder()}
	clone.recorder.moves = append(clone.recorder.moves, c.recorder.moves...)
	return clone
}

// IsSolved reports whether every sticker matches its face center.
func (c *Cube) IsSolved() bool {
	for f := Back; f <= Right; f++ {
		center := c.Center(f)
		for r := 0; r < 3; r++ {
			for col := 0; col < 3; col++ {
				if c.grid[f][r][col] != center {
					return false
				}
			}
		}
	}
	return true
}

// String returns an unfolded net of the cube: Back and Top above the
// Left, Front, Right band and Bottom below it.
func (c *Cube) String() string {
	var b strings.Builder

	writeRow := func(f Face, r int) {
		for col := 0; col < 3; col++ {
			b.WriteString(c.grid[f][r][col].String())
			b.WriteByte(' ')
		}
	}

	for _, f := range []Face{Back, Top} {
		for r := 0; r < 3; r++ {
			b.WriteString("      ")
			writeRow(f, r)
			b.WriteByte('\n')
		}
	}
	for r := 0; r < 3; r++ {
		for _, f := range []Face{Left, Front, Right} {
			writeRow(f, r)
		}
		b.WriteByte('\n')
	}
	for r := 0; r < 3; r++ {
		b.WriteString("      ")
		writeRow(Bottom, r)
		b.WriteByte('\n')
	}

	return b.String()
}
