package cubesolver

import (
	"fmt"

	"go.uber.org/zap"
)

const maxMiddleSteps = 40

// secondLayerEdges inserts every middle layer edge from the Top layer.
func (s *Solver) secondLayerEdges() error {
	top := s.cube.Center(Top)
	for i := 0; i < maxMiddleSteps; i++ {
		wrong, unsolved := s.cube.FirstUnsolvedSecondLayerEdge()
		if !unsolved {
			return nil
		}

		src := NoFace
		for _, x := range topEdgeScan {
			if s.cube.At(topEdges[x][0]) != top && s.cube.At(topEdges[x][1]) != top {
				src = x
				break
			}
		}

		if src == NoFace {
			// The edge is stuck in a wrong slot or flipped: pop it out.
			other := partners(wrong)[0]
			front := slotFront(wrong.Face, other.Face)
			s.log.Debug("pop middle edge", zap.Stringer("piece", wrong), zap.Stringer("front", front))
			if err := s.run(front, insertRight); err != nil {
				return err
			}
			continue
		}

		dst := s.cube.FaceOfCenter(s.cube.At(topEdges[src][1]))
		if err := s.turn(carry(src, dst)...); err != nil {
			return err
		}

		up := s.cube.At(topEdges[dst][0])
		switch up {
		case s.cube.Center(rightOf(dst)):
			s.log.Debug("insert middle edge right", zap.Stringer("front", dst))
			if err := s.run(dst, insertRight); err != nil {
				return err
			}
		case s.cube.Center(leftOf(dst)):
			s.log.Debug("insert middle edge left", zap.Stringer("front", dst))
			if err := s.run(dst, insertLeft); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: edge above %s shows %s on Top", ErrLocatorExhausted, dst, up)
		}
	}
	return s.stalled(maxMiddleSteps)
}
