package cubesolver

import (
	"errors"
	"testing"
)

func TestNewCubeIsSolved(t *testing.T) {
	c := New()
	if !c.IsSolved() {
		t.Error("New cube should be solved")
	}
}

func TestSingleMoveBreaksSolved(t *testing.T) {
	c := New()
	c.Apply(R)
	if c.IsSolved() {
		t.Error("Cube should not be solved after R move")
	}
}

func TestQuarterTurnOrderFour_AllMoves(t *testing.T) {
	all := append(append([]Move{}, FaceMoves...), M, MPrime, E, EPrime, S, SPrime)
	for _, m := range all {
		c := FromMoves(Scramble(7, 30))
		start := c.Grid()
		c.Apply(m, m, m, m)
		if c.Grid() != start {
			t.Errorf("%v x 4 should be the identity", m)
			t.Log(c.String())
		}
	}
}

func TestMoveThenInverse_RoundTrip(t *testing.T) {
	for _, m := range FaceMoves {
		c := FromMoves(Scramble(11, 30))
		start := c.Grid()
		c.Apply(m, m.Inverse())
		if c.Grid() != start {
			t.Errorf("%v then %v should restore the state", m, m.Inverse())
			t.Log(c.String())
		}
	}
}

func TestPrimitiveRoundTrip(t *testing.T) {
	type rotateFn func(*Cube, Direction, Slice) error
	axes := map[string]rotateFn{
		"vertical": (*Cube).RotateVertical,
		"depth":    (*Cube).RotateDepth,
		"side":     (*Cube).RotateSide,
	}
	for name, rotate := range axes {
		for s := SliceFirst; s <= SliceLast; s++ {
			c := FromMoves(Scramble(3, 40))
			start := c.Grid()
			if err := rotate(c, Forward, s); err != nil {
				t.Fatalf("%s %d: %v", name, s, err)
			}
			if err := rotate(c, Backward, s); err != nil {
				t.Fatalf("%s %d: %v", name, s, err)
			}
			if c.Grid() != start {
				t.Errorf("%s slice %d: forward then backward should restore the state", name, s)
			}
			if c.Recorder().Len() != 2 {
				t.Errorf("%s slice %d: expected 2 recorded moves, got %d", name, s, c.Recorder().Len())
			}
		}
	}
}

func TestCentersFixedUnderOuterTurns(t *testing.T) {
	c := New()
	var centers [6]Color
	for f := Back; f <= Right; f++ {
		centers[f] = c.Center(f)
	}
	c.Apply(Scramble(42, 200)...)
	for f := Back; f <= Right; f++ {
		if c.Center(f) != centers[f] {
			t.Errorf("center of %s moved: got %s, want %s", f, c.Center(f), centers[f])
		}
	}
}

func TestColorCountsPreserved(t *testing.T) {
	c := New()
	c.Apply(Scramble(5, 100)...)
	c.Apply(M, E, S, SPrime)
	var counts [7]int
	g := c.Grid()
	for f := 0; f < 6; f++ {
		for r := 0; r < 3; r++ {
			for col := 0; col < 3; col++ {
				counts[g[f][r][col]]++
			}
		}
	}
	for col := Blue; col <= Red; col++ {
		if counts[col] != 9 {
			t.Errorf("color %s: got %d stickers, want 9", col, counts[col])
		}
	}
}

// labeledCube gives every sticker a distinct value so tests can see
// exactly which cells a turn touches.
func labeledCube() *Cube {
	c := &Cube{recorder: NewRecorder()}
	n := 0
	for f := 0; f < 6; f++ {
		for r := 0; r < 3; r++ {
			for col := 0; col < 3; col++ {
				c.grid[f][r][col] = Color(n)
				n++
			}
		}
	}
	return c
}

func changedCells(a, b Grid) int {
	n := 0
	for f := 0; f < 6; f++ {
		for r := 0; r < 3; r++ {
			for col := 0; col < 3; col++ {
				if a[f][r][col] != b[f][r][col] {
					n++
				}
			}
		}
	}
	return n
}

func TestTurnTouchesExpectedCells(t *testing.T) {
	for p := range moveOf {
		c := labeledCube()
		before := c.Grid()
		c.rotate(p)
		got := changedCells(before, c.Grid())

		// Outer slices move 12 ring stickers and 8 face stickers; the
		// middle slice moves its 12 ring stickers, centers included.
		want := 20
		if p.slice == SliceMiddle {
			want = 12
		}
		if got != want {
			t.Errorf("%s slice %d dir %d: changed %d cells, want %d", p.axis, p.slice, p.dir, got, want)
		}
	}
}

func TestSexyMove_6Times_ReturnsToSolved(t *testing.T) {
	c := New()
	for i := 0; i < 6; i++ {
		c.Apply(trigger.framed(Front)...)
	}
	if !c.IsSolved() {
		t.Error("(R U R' U') x 6 should return to solved")
		t.Log(c.String())
	}
}

func TestSliceMovesShiftCenters(t *testing.T) {
	c := New()
	c.Apply(M)
	if c.Center(Front) != Color(Top+1) {
		t.Errorf("M should carry the Top center to Front, got %s", c.Center(Front))
	}
	c.Apply(MPrime)
	if !c.IsSolved() {
		t.Error("M M' should return to solved")
	}
}

func TestRecordedNotationMatchesMove(t *testing.T) {
	c := New()
	c.Apply(R, UPrime, F, DPrime, L, B, M, EPrime, S)
	got := FormatMoves(c.Moves())
	want := "R U' F D' L B M E' S"
	if got != want {
		t.Errorf("recorded %q, want %q", got, want)
	}

	c = New()
	if err := c.RotateVertical(Backward, SliceLast); err != nil {
		t.Fatal(err)
	}
	if err := c.RotateSide(Backward, SliceFirst); err != nil {
		t.Fatal(err)
	}
	if got := FormatMoves(c.Moves()); got != "R U" {
		t.Errorf("primitive calls recorded %q, want %q", got, "R U")
	}
}

func TestRotateRejectsBadArguments(t *testing.T) {
	c := New()
	if err := c.RotateDepth(Direction(2), SliceFirst); !errors.Is(err, ErrInvalidRotation) {
		t.Errorf("expected ErrInvalidRotation for bad direction, got %v", err)
	}
	if err := c.RotateSide(Forward, Slice(3)); !errors.Is(err, ErrInvalidRotation) {
		t.Errorf("expected ErrInvalidRotation for bad slice, got %v", err)
	}
	if c.Recorder().Len() != 0 {
		t.Error("rejected rotations must not be recorded")
	}
}

func TestFromGrid_SampleIsValid(t *testing.T) {
	if _, err := FromGrid(SampleGrid()); err != nil {
		t.Errorf("sample grid should be valid: %v", err)
	}
}

func TestFromGrid_Rejects(t *testing.T) {
	badCode := SolvedGrid()
	badCode[0][0][0] = 9

	badCount := SolvedGrid()
	badCount[0][0][0] = Yellow

	dupCenter := SolvedGrid()
	dupCenter[Top][1][1], dupCenter[Front][1][1] = dupCenter[Front][1][1], dupCenter[Top][1][1]

	swappedStickers := SolvedGrid()
	swappedStickers[Front][0][1], swappedStickers[Back][0][1] = swappedStickers[Back][0][1], swappedStickers[Front][0][1]

	tests := map[string]Grid{
		"color code out of range": badCode,
		"wrong color count":       badCount,
		"centers not opposite":    dupCenter,
		"impossible cubie":        swappedStickers,
	}
	for name, g := range tests {
		if _, err := FromGrid(g); !errors.Is(err, ErrInvalidCubeState) {
			t.Errorf("%s: expected ErrInvalidCubeState, got %v", name, err)
		}
	}
}

func TestFromMovesHasEmptyLog(t *testing.T) {
	c := FromMoves([]Move{R, U})
	if c.Recorder().Len() != 0 {
		t.Errorf("expected empty log, got %d moves", c.Recorder().Len())
	}
	if c.IsSolved() {
		t.Error("R U should leave the cube scrambled")
	}
}
