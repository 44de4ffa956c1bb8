package cubesolver

import (
	"fmt"

	"go.uber.org/zap"
)

const (
	maxCornerSteps    = 40
	maxTriggerRepeats = 6
)

// firstLayerCorners inserts the Bottom colored corners until the whole
// first layer matches its centers.
func (s *Solver) firstLayerCorners() error {
	target := s.cube.Center(Bottom)
	for i := 0; i < maxCornerSteps; i++ {
		if s.cube.IsFirstLayerComplete() {
			return nil
		}

		p, ok := s.cube.FirstUnsolvedCornerPiece(target)
		if !ok {
			// Every Bottom sticker faces down but some corner sits in the
			// wrong slot.
			front := NoFace
			for _, x := range sideFaces {
				if !s.cube.slotSolved(bottomCorners[x][:]) {
					front = x
					break
				}
			}
			if front == NoFace {
				return fmt.Errorf("%w: first layer incomplete with every corner placed", ErrLocatorExhausted)
			}
			s.log.Debug("pop misplaced corner", zap.Stringer("front", front))
			if err := s.run(front, trigger); err != nil {
				return err
			}
			continue
		}

		s.log.Debug("first layer corner", zap.Stringer("piece", p))
		cubie := append([]Piece{p}, partners(p)...)
		if touches(cubie, Top) {
			if err := s.insertCorner(cubie, target); err != nil {
				return err
			}
			continue
		}

		// Twisted in the bottom layer: pop it up into Top.
		var sides []Face
		for _, q := range cubie {
			if isSide(q.Face) {
				sides = append(sides, q.Face)
			}
		}
		if err := s.run(slotFront(sides[0], sides[1]), trigger); err != nil {
			return err
		}
	}
	return s.stalled(maxCornerSteps)
}

// insertCorner turns Top until the corner cubie sits above its slot, then
// repeats the trigger until the slot is solved.
func (s *Solver) insertCorner(cubie []Piece, target Color) error {
	var faces []Face
	for _, q := range cubie {
		if col := s.cube.At(q); col != target {
			faces = append(faces, s.cube.FaceOfCenter(col))
		}
	}
	if len(faces) != 2 || !isSide(faces[0]) || !isSide(faces[1]) {
		return fmt.Errorf("%w: corner at %s is not a first layer corner", ErrLocatorExhausted, cubie[0])
	}
	front := slotFront(faces[0], faces[1])
	want := uint32(1)<<target | uint32(1)<<s.cube.Center(faces[0]) | uint32(1)<<s.cube.Center(faces[1])

	aligned := false
	for n := 0; n < 4; n++ {
		if s.cube.colorMask(topCorners[front][:]) == want {
			aligned = true
			break
		}
		if err := s.turn(U); err != nil {
			return err
		}
	}
	if !aligned {
		return fmt.Errorf("%w: corner never reached the slot above %s", ErrLocatorExhausted, front)
	}

	for n := 0; !s.cube.slotSolved(bottomCorners[front][:]); n++ {
		if n == maxTriggerRepeats {
			return fmt.Errorf("%w: slot below %s not solved by the trigger", ErrLocatorExhausted, front)
		}
		if err := s.run(front, trigger); err != nil {
			return err
		}
	}
	return nil
}

func touches(cubie []Piece, f Face) bool {
	for _, q := range cubie {
		if q.Face == f {
			return true
		}
	}
	return false
}
