package cubesolver

// Recorder is the ordered log of moves applied to a cube. The log only
// grows through rotations; callers get copies.
type Recorder struct {
	moves []Move
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{moves: make([]Move, 0, 256)}
}

// record appends m to the log.
func (r *Recorder) record(m Move) {
	r.moves = append(r.moves, m)
}

// Len returns the number of recorded moves.
func (r *Recorder) Len() int {
	return len(r.moves)
}

// Moves returns a copy of the log.
func (r *Recorder) Moves() []Move {
	out := make([]Move, len(r.moves))
	copy(out, r.moves)
	return out
}

// Since returns a copy of the moves recorded from index start on.
func (r *Recorder) Since(start int) []Move {
	if start >= len(r.moves) {
		return nil
	}
	out := make([]Move, len(r.moves)-start)
	copy(out, r.moves[start:])
	return out
}

// Notation returns the log as notation strings.
func (r *Recorder) Notation() []string {
	return Notations(r.moves)
}

// Reset clears the log.
func (r *Recorder) Reset() {
	r.moves = r.moves[:0]
}
