package cubesolver

import (
	"fmt"

	"go.uber.org/zap"
)

// TopShape classifies the Top edges that show the Top color.
type TopShape int

const (
	ShapeDot TopShape = iota
	ShapeL
	ShapeLine
	ShapePlus
)

func (t TopShape) String() string {
	switch t {
	case ShapePlus:
		return "plus"
	case ShapeLine:
		return "line"
	case ShapeL:
		return "L"
	default:
		return "dot"
	}
}

// TopShape returns the shape of the oriented Top edges. Shapes are
// checked in the order plus, line, L; anything else is a dot.
func (c *Cube) TopShape() TopShape {
	shape, _ := c.topShape()
	return shape
}

func (c *Cube) topShape() (TopShape, uint8) {
	oriented := c.orientedTopEdges()
	mask := faceMask(oriented...)
	switch {
	case len(oriented) == 4:
		return ShapePlus, mask
	case mask == faceMask(Left, Right) || mask == faceMask(Front, Back):
		return ShapeLine, mask
	case len(oriented) == 2:
		return ShapeL, mask
	default:
		return ShapeDot, mask
	}
}

const (
	maxOrientationSteps = 6
	maxPermutationSteps = 10
)

// lastLayerOrientation turns dot, L and line into the Top plus.
func (s *Solver) lastLayerOrientation() error {
	for i := 0; i < maxOrientationSteps; i++ {
		done, err := s.orientStep()
		if err != nil || done {
			return err
		}
	}
	return s.stalled(maxOrientationSteps)
}

// orientStep applies the algorithm for the current Top shape once. It
// reports done when the plus is already there.
func (s *Solver) orientStep() (bool, error) {
	shape, mask := s.cube.topShape()
	s.log.Debug("top shape", zap.Stringer("shape", shape))

	if n := len(s.cube.orientedTopEdges()); n%2 != 0 {
		return false, fmt.Errorf("%w: %d top edges oriented", ErrLocatorExhausted, n)
	}

	switch shape {
	case ShapePlus:
		return true, nil
	case ShapeLine:
		front := Right
		if mask == faceMask(Left, Right) {
			front = Front
		}
		return false, s.run(front, topLine)
	case ShapeL:
		for _, f := range sideFaces {
			if mask == faceMask(f.Opposite(), leftOf(f)) {
				return false, s.run(f, topL)
			}
		}
		return false, fmt.Errorf("%w: no frame for top L mask %04b", ErrLocatorExhausted, mask)
	default:
		return false, s.run(Front, topLine)
	}
}

// lastLayerPermutation places the Top edges, then the Top corners, then
// twists each corner into place.
func (s *Solver) lastLayerPermutation() error {
	if err := s.permuteTopEdges(); err != nil {
		return err
	}
	if err := s.positionTopCorners(); err != nil {
		return err
	}
	return s.orientTopCorners()
}

func (s *Solver) permuteTopEdges() error {
	for i := 0; i < maxPermutationSteps; i++ {
		best := -1
		for n := 0; n < 4; n++ {
			matched := s.cube.matchedTopEdges()
			if len(matched) == 4 {
				return nil
			}
			if len(matched) == 2 && best < 0 && adjacent(matched[0], matched[1]) {
				best = n
			}
			if err := s.turn(U); err != nil {
				return err
			}
		}

		if best < 0 {
			s.log.Debug("no adjacent top edges")
			if err := s.run(Front, edgeCycle); err != nil {
				return err
			}
			continue
		}

		for n := 0; n < best; n++ {
			if err := s.turn(U); err != nil {
				return err
			}
		}
		mask := faceMask(s.cube.matchedTopEdges()...)
		for _, f := range sideFaces {
			if mask == faceMask(f.Opposite(), rightOf(f)) {
				s.log.Debug("cycle top edges", zap.Stringer("front", f))
				if err := s.run(f, edgeCycle); err != nil {
					return err
				}
				break
			}
		}
	}
	return s.stalled(maxPermutationSteps)
}

func (s *Solver) positionTopCorners() error {
	for i := 0; i < maxPermutationSteps; i++ {
		placed := s.cube.positionedTopCorners()
		if len(placed) == 4 {
			return nil
		}
		front := Front
		if len(placed) > 0 {
			front = placed[0]
		}
		s.log.Debug("cycle top corners", zap.Stringer("front", front), zap.Int("placed", len(placed)))
		if err := s.run(front, cornerCycle); err != nil {
			return err
		}
	}
	return s.stalled(maxPermutationSteps)
}

// orientTopCorners twists the front-right Top corner with the trigger
// until it shows the Top color, then brings the next corner in with U.
// After four corners the bottom layers are restored.
func (s *Solver) orientTopCorners() error {
	top := s.cube.Center(Top)
	corner := topCorners[Front][0]
	for i := 0; i < 4; i++ {
		for n := 0; s.cube.At(corner) != top; n++ {
			if n == maxTriggerRepeats {
				return s.stalled(maxTriggerRepeats)
			}
			if err := s.run(Front, twist); err != nil {
				return err
			}
		}
		if err := s.turn(U); err != nil {
			return err
		}
	}
	return nil
}

func adjacent(a, b Face) bool {
	return rightOf(a) == b || rightOf(b) == a
}
