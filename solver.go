package cubesolver

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Segment is the run of moves one phase produced: Moves[Start:End] of the
// solution.
type Segment struct {
	Phase Phase
	Start int
	End   int
}

// Solution is the result of a successful solve.
type Solution struct {
	Moves    []Move
	Segments []Segment
}

// Notation returns the moves as notation strings.
func (s *Solution) Notation() []string {
	return Notations(s.Moves)
}

// String returns the moves as one space separated string.
func (s *Solution) String() string {
	return FormatMoves(s.Moves)
}

// Solve validates g and solves it with a fresh cube.
func Solve(g Grid, opts ...Option) (*Solution, error) {
	c, err := FromGrid(g)
	if err != nil {
		return nil, err
	}
	return NewSolver(c, opts...).Run()
}

// Solver drives one cube through the phases in order. A Solver owns its
// cube for the duration of Run and is not safe for concurrent use.
type Solver struct {
	cube   *Cube
	cfg    *config
	log    *zap.Logger
	phase  Phase
	start  int
	phases []Segment
}

// NewSolver returns a solver for c.
func NewSolver(c *Cube, opts ...Option) *Solver {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return &Solver{
		cube: c,
		cfg:  cfg,
		log:  cfg.logger,
	}
}

// Cube returns the cube being solved.
func (s *Solver) Cube() *Cube {
	return s.cube
}

// Phase returns the phase the solver is in.
func (s *Solver) Phase() Phase {
	return s.phase
}

type step struct {
	phase Phase
	run   func(*Solver) error
}

var pipeline = []step{
	{PhaseCrossEdges, (*Solver).crossEdges},
	{PhaseCrossCenterAlignment, (*Solver).crossCenterAlignment},
	{PhaseFirstLayerCorners, (*Solver).firstLayerCorners},
	{PhaseSecondLayerEdges, (*Solver).secondLayerEdges},
	{PhaseLastLayerOrientation, (*Solver).lastLayerOrientation},
	{PhaseLastLayerPermutation, (*Solver).lastLayerPermutation},
}

// Run solves the cube. Faults come back as *PhaseError wrapping
// ErrLocatorExhausted or ErrConvergence.
func (s *Solver) Run() (*Solution, error) {
	s.start = s.cube.recorder.Len()
	s.phases = s.phases[:0]

	for _, st := range pipeline {
		s.phase = st.phase
		begin := s.rotations()
		s.log.Debug("phase started",
			zap.Stringer("phase", st.phase),
			zap.Int("rotations", begin),
		)

		if err := st.run(s); err != nil {
			return nil, s.fail(err)
		}

		end := s.rotations()
		s.phases = append(s.phases, Segment{Phase: st.phase, Start: begin, End: end})
		s.log.Debug("phase completed",
			zap.Stringer("phase", st.phase),
			zap.Int("moves", end-begin),
		)
		if s.cfg.phaseHook != nil {
			s.cfg.phaseHook(st.phase, end)
		}
	}

	if !s.cube.IsSolved() {
		return nil, s.fail(fmt.Errorf("%w: pipeline finished on an unsolved cube", ErrLocatorExhausted))
	}
	s.phase = PhaseSolved

	sol := &Solution{
		Moves:    s.cube.recorder.Since(s.start),
		Segments: append([]Segment(nil), s.phases...),
	}
	s.log.Debug("cube solved", zap.Int("moves", len(sol.Moves)))
	return sol, nil
}

func (s *Solver) fail(err error) error {
	var pe *PhaseError
	if errors.As(err, &pe) {
		return err
	}
	s.log.Debug("phase failed",
		zap.Stringer("phase", s.phase),
		zap.Int("rotations", s.rotations()),
		zap.Error(err),
	)
	return &PhaseError{Phase: s.phase, Rotations: s.rotations(), Err: err}
}

// rotations counts the moves made by this solve.
func (s *Solver) rotations() int {
	return s.cube.recorder.Len() - s.start
}

// turn applies moves one at a time, stopping at the rotation fuse.
func (s *Solver) turn(moves ...Move) error {
	for _, m := range moves {
		if s.rotations() >= s.cfg.maxRotations {
			return fmt.Errorf("%w: %d rotations", ErrConvergence, s.cfg.maxRotations)
		}
		s.cube.Apply(m)
	}
	return nil
}

// run applies alg framed on front.
func (s *Solver) run(front Face, alg algorithm) error {
	return s.turn(alg.framed(front)...)
}

// stalled is returned when a phase loop hits its iteration bound.
func (s *Solver) stalled(iterations int) error {
	return fmt.Errorf("%w: %s not done after %d steps", ErrConvergence, s.phase, iterations)
}

// makePlaceEmpty turns Top until p no longer holds col.
func (s *Solver) makePlaceEmpty(p Piece, col Color) error {
	for n := 0; s.cube.At(p) == col; n++ {
		if n == 3 {
			return fmt.Errorf("%w: %s still holds %s after 3 turns", ErrLocatorExhausted, p, col)
		}
		if err := s.turn(U); err != nil {
			return err
		}
	}
	return nil
}

// carryTurns holds the Top turns that carry a Top edge from the lower
// indexed face of the pair to the other one.
var carryTurns = map[[2]Face][]Move{
	{Back, Left}:   {UPrime},
	{Front, Left}:  {U},
	{Left, Right}:  {U, U},
	{Back, Right}:  {U},
	{Back, Front}:  {U, U},
	{Front, Right}: {UPrime},
}

// carry returns the Top turns that move the Top edge above src to dst.
func carry(src, dst Face) []Move {
	if src == dst {
		return nil
	}
	if src < dst {
		return carryTurns[[2]Face{src, dst}]
	}
	seq := carryTurns[[2]Face{dst, src}]
	out := make([]Move, len(seq))
	for i, m := range seq {
		out[len(seq)-1-i] = m.Inverse()
	}
	return out
}

func faceMask(faces ...Face) uint8 {
	var m uint8
	for _, f := range faces {
		m |= 1 << uint(f)
	}
	return m
}

func (c *Cube) colorMask(slot []Piece) uint32 {
	var m uint32
	for _, p := range slot {
		m |= 1 << c.At(p)
	}
	return m
}
