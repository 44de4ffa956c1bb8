package cubesolver

// Tracker replays moves on a cube and reports phase transitions. It is
// used to step through a recorded solution.
type Tracker struct {
	cube          *Cube
	highestPhase  Phase // Monotonic - never goes backwards
	phaseCallback func(phase Phase, rotations int)
}

// NewTracker returns a tracker starting from c. The cube is cloned.
func NewTracker(c *Cube) *Tracker {
	t := &Tracker{cube: c.Clone()}
	t.cube.recorder.Reset()
	t.highestPhase = t.cube.DetectPhase()
	return t
}

// SetPhaseCallback sets a callback that fires when a later phase is
// reached.
func (t *Tracker) SetPhaseCallback(cb func(phase Phase, rotations int)) {
	t.phaseCallback = cb
}

// ApplyMove applies a move and checks for a phase transition.
func (t *Tracker) ApplyMove(m Move) {
	t.cube.Apply(m)
	t.checkPhaseTransition()
}

// ApplyMoves applies multiple moves.
func (t *Tracker) ApplyMoves(moves []Move) {
	for _, m := range moves {
		t.ApplyMove(m)
	}
}

func (t *Tracker) checkPhaseTransition() {
	current := t.cube.DetectPhase()
	// Phases are ordered, so only a new high fires the callback. Algorithms
	// briefly break finished layers while they run.
	if current > t.highestPhase {
		t.highestPhase = current
		if t.phaseCallback != nil {
			t.phaseCallback(current, t.cube.recorder.Len())
		}
	}
}

// CurrentPhase returns the phase detected on the current state. It may go
// backwards while an algorithm is half applied.
func (t *Tracker) CurrentPhase() Phase {
	return t.cube.DetectPhase()
}

// HighestPhase returns the highest phase reached.
func (t *Tracker) HighestPhase() Phase {
	return t.highestPhase
}

// GetProgress returns the detailed progress.
func (t *Tracker) GetProgress() Progress {
	return t.cube.GetProgress()
}

// IsSolved reports whether the cube is solved.
func (t *Tracker) IsSolved() bool {
	return t.cube.IsSolved()
}

// Cube returns the underlying cube for inspection.
func (t *Tracker) Cube() *Cube {
	return t.cube
}
