package cubesolver

import "fmt"

// Direction selects which way a slice turns. Forward carries stickers
// along the ring order documented on each Rotate method.
type Direction int

const (
	Forward  Direction = 1
	Backward Direction = -1
)

// Slice selects one of the three layers along an axis.
type Slice int

const (
	SliceFirst  Slice = 0
	SliceMiddle Slice = 1
	SliceLast   Slice = 2
)

type axis int

const (
	axisVertical axis = iota
	axisDepth
	axisSide
)

func (a axis) String() string {
	switch a {
	case axisVertical:
		return "vertical"
	case axisDepth:
		return "depth"
	default:
		return "side"
	}
}

// primitive is one quarter turn of one slice.
type primitive struct {
	axis  axis
	slice Slice
	dir   Direction
}

// sliceTable describes a slice: four sticker triplets that cycle on a
// Forward turn, and the face spun along with outer slices.
type sliceTable struct {
	ring [4][3]Piece
	face Face
	// clockwise is the grid rotation applied to face on a Forward turn.
	clockwise bool
}

var sliceTables = [3][3]sliceTable{
	axisVertical: {
		{
			ring: [4][3]Piece{
				{{Top, 0, 0}, {Top, 1, 0}, {Top, 2, 0}},
				{{Front, 0, 0}, {Front, 1, 0}, {Front, 2, 0}},
				{{Bottom, 0, 0}, {Bottom, 1, 0}, {Bottom, 2, 0}},
				{{Back, 0, 0}, {Back, 1, 0}, {Back, 2, 0}},
			},
			face:      Left,
			clockwise: true,
		},
		{
			ring: [4][3]Piece{
				{{Top, 0, 1}, {Top, 1, 1}, {Top, 2, 1}},
				{{Front, 0, 1}, {Front, 1, 1}, {Front, 2, 1}},
				{{Bottom, 0, 1}, {Bottom, 1, 1}, {Bottom, 2, 1}},
				{{Back, 0, 1}, {Back, 1, 1}, {Back, 2, 1}},
			},
			face: NoFace,
		},
		{
			ring: [4][3]Piece{
				{{Top, 0, 2}, {Top, 1, 2}, {Top, 2, 2}},
				{{Front, 0, 2}, {Front, 1, 2}, {Front, 2, 2}},
				{{Bottom, 0, 2}, {Bottom, 1, 2}, {Bottom, 2, 2}},
				{{Back, 0, 2}, {Back, 1, 2}, {Back, 2, 2}},
			},
			face:      Right,
			clockwise: false,
		},
	},
	axisDepth: {
		{
			ring: [4][3]Piece{
				{{Top, 0, 0}, {Top, 0, 1}, {Top, 0, 2}},
				{{Left, 2, 0}, {Left, 1, 0}, {Left, 0, 0}},
				{{Bottom, 2, 2}, {Bottom, 2, 1}, {Bottom, 2, 0}},
				{{Right, 0, 2}, {Right, 1, 2}, {Right, 2, 2}},
			},
			face:      Back,
			clockwise: true,
		},
		{
			ring: [4][3]Piece{
				{{Top, 1, 0}, {Top, 1, 1}, {Top, 1, 2}},
				{{Left, 2, 1}, {Left, 1, 1}, {Left, 0, 1}},
				{{Bottom, 1, 2}, {Bottom, 1, 1}, {Bottom, 1, 0}},
				{{Right, 0, 1}, {Right, 1, 1}, {Right, 2, 1}},
			},
			face: NoFace,
		},
		{
			ring: [4][3]Piece{
				{{Top, 2, 0}, {Top, 2, 1}, {Top, 2, 2}},
				{{Left, 2, 2}, {Left, 1, 2}, {Left, 0, 2}},
				{{Bottom, 0, 2}, {Bottom, 0, 1}, {Bottom, 0, 0}},
				{{Right, 0, 0}, {Right, 1, 0}, {Right, 2, 0}},
			},
			face:      Front,
			clockwise: false,
		},
	},
	axisSide: {
		{
			ring: [4][3]Piece{
				{{Front, 0, 0}, {Front, 0, 1}, {Front, 0, 2}},
				{{Right, 0, 0}, {Right, 0, 1}, {Right, 0, 2}},
				{{Back, 2, 2}, {Back, 2, 1}, {Back, 2, 0}},
				{{Left, 0, 0}, {Left, 0, 1}, {Left, 0, 2}},
			},
			face:      Top,
			clockwise: false,
		},
		{
			ring: [4][3]Piece{
				{{Front, 1, 0}, {Front, 1, 1}, {Front, 1, 2}},
				{{Right, 1, 0}, {Right, 1, 1}, {Right, 1, 2}},
				{{Back, 1, 2}, {Back, 1, 1}, {Back, 1, 0}},
				{{Left, 1, 0}, {Left, 1, 1}, {Left, 1, 2}},
			},
			face: NoFace,
		},
		{
			ring: [4][3]Piece{
				{{Front, 2, 0}, {Front, 2, 1}, {Front, 2, 2}},
				{{Right, 2, 0}, {Right, 2, 1}, {Right, 2, 2}},
				{{Back, 0, 2}, {Back, 0, 1}, {Back, 0, 0}},
				{{Left, 2, 0}, {Left, 2, 1}, {Left, 2, 2}},
			},
			face:      Bottom,
			clockwise: true,
		},
	},
}

// RotateVertical turns column col around the left-right axis. Forward
// carries the column Top to Front to Bottom to Back. Column 0 spins Left,
// column 2 spins Right.
func (c *Cube) RotateVertical(dir Direction, col Slice) error {
	return c.rotateChecked(primitive{axisVertical, col, dir})
}

// RotateDepth turns row row around the front-back axis. Forward carries
// the ring Top to Left to Bottom to Right. Row 0 spins Back, row 2 spins
// Front.
func (c *Cube) RotateDepth(dir Direction, row Slice) error {
	return c.rotateChecked(primitive{axisDepth, row, dir})
}

// RotateSide turns row row around the top-bottom axis. Forward carries
// the ring Front to Right to Back to Left. Row 0 spins Top, row 2 spins
// Bottom.
func (c *Cube) RotateSide(dir Direction, row Slice) error {
	return c.rotateChecked(primitive{axisSide, row, dir})
}

func (c *Cube) rotateChecked(p primitive) error {
	if p.dir != Forward && p.dir != Backward {
		return fmt.Errorf("%w: direction %d", ErrInvalidRotation, p.dir)
	}
	if p.slice < SliceFirst || p.slice > SliceLast {
		return fmt.Errorf("%w: %s slice %d", ErrInvalidRotation, p.axis, p.slice)
	}
	c.rotate(p)
	return nil
}

// rotate applies p and records its move.
func (c *Cube) rotate(p primitive) {
	t := &sliceTables[p.axis][p.slice]
	c.cycle(t.ring, p.dir)
	if t.face != NoFace {
		c.spin(t.face, t.clockwise == (p.dir == Forward))
	}
	c.recorder.record(moveOf[p])
}

// cycle moves the content of each triplet to the next one in ring order
// (Forward) or the previous one (Backward). Only one triplet is buffered.
func (c *Cube) cycle(ring [4][3]Piece, dir Direction) {
	if dir == Forward {
		saved := c.triplet(ring[3])
		c.copyTriplet(ring[3], ring[2])
		c.copyTriplet(ring[2], ring[1])
		c.copyTriplet(ring[1], ring[0])
		c.setTriplet(ring[0], saved)
		return
	}
	saved := c.triplet(ring[0])
	c.copyTriplet(ring[0], ring[1])
	c.copyTriplet(ring[1], ring[2])
	c.copyTriplet(ring[2], ring[3])
	c.setTriplet(ring[3], saved)
}

func (c *Cube) triplet(t [3]Piece) [3]Color {
	return [3]Color{c.At(t[0]), c.At(t[1]), c.At(t[2])}
}

func (c *Cube) setTriplet(t [3]Piece, v [3]Color) {
	for i, p := range t {
		c.grid[p.Face][p.Row][p.Col] = v[i]
	}
}

func (c *Cube) copyTriplet(dst, src [3]Piece) {
	c.setTriplet(dst, c.triplet(src))
}

// spin rotates the grid of f by 90 degrees in grid coordinates.
func (c *Cube) spin(f Face, clockwise bool) {
	src := c.grid[f]
	var dst [3][3]Color
	for r := 0; r < 3; r++ {
		for col := 0; col < 3; col++ {
			if clockwise {
				dst[r][col] = src[2-col][r]
			} else {
				dst[r][col] = src[col][2-r]
			}
		}
	}
	c.grid[f] = dst
}
