package cubesolver

import (
	"fmt"

	"go.uber.org/zap"
)

const maxCrossSteps = 20

// crossEdges builds the daisy: every edge carrying the Bottom color is
// brought to the Top face, Bottom color up.
func (s *Solver) crossEdges() error {
	target := s.cube.Center(Bottom)
	for i := 0; i < maxCrossSteps; i++ {
		p, ok := s.cube.FirstUnsolvedCrossPiece(target)
		if !ok {
			return nil
		}
		s.log.Debug("daisy edge", zap.Stringer("piece", p))
		if err := s.raiseEdge(p, target); err != nil {
			return err
		}
	}
	return s.stalled(maxCrossSteps)
}

// raiseEdge moves the edge with the target sticker at p into the Top
// layer, target up. Each committing turn is preceded by clearing the Top
// cell it lands on.
func (s *Solver) raiseEdge(p Piece, target Color) error {
	other := partners(p)
	if len(other) != 1 {
		return fmt.Errorf("%w: %s is not an edge sticker", ErrLocatorExhausted, p)
	}
	partner := other[0]
	f := p.Face

	switch {
	case f == Bottom:
		// Straight up with a half turn of the side face.
		x := partner.Face
		if err := s.makePlaceEmpty(topEdges[x][0], target); err != nil {
			return err
		}
		return s.turn(faceMove(x, CW), faceMove(x, CW))

	case partner.Face == Top:
		// Upper row, flipped: bring it to the right-hand column first.
		if err := s.turn(faceMove(f, CW)); err != nil {
			return err
		}
		y := rightOf(f)
		if err := s.makePlaceEmpty(topEdges[y][0], target); err != nil {
			return err
		}
		return s.turn(faceMove(y, CW))

	case partner.Face == Bottom:
		// Lower row: lift it to the left-hand column.
		if err := s.makePlaceEmpty(topEdges[f][0], target); err != nil {
			return err
		}
		if err := s.turn(faceMove(f, CW)); err != nil {
			return err
		}
		y := leftOf(f)
		if err := s.makePlaceEmpty(topEdges[y][0], target); err != nil {
			return err
		}
		return s.turn(faceMove(y, CCW))

	default:
		// Side column: turn the neighbouring face it touches.
		y := partner.Face
		if err := s.makePlaceEmpty(topEdges[y][0], target); err != nil {
			return err
		}
		if y == rightOf(f) {
			return s.turn(faceMove(y, CW))
		}
		return s.turn(faceMove(y, CCW))
	}
}

// crossCenterAlignment drops each daisy edge onto Bottom under the face
// whose center matches its side sticker.
func (s *Solver) crossCenterAlignment() error {
	target := s.cube.Center(Bottom)
	for i := 0; i < maxCrossSteps; i++ {
		src := NoFace
		for _, x := range topEdgeScan {
			if s.cube.At(topEdges[x][0]) == target {
				src = x
				break
			}
		}
		if src == NoFace {
			if !s.cube.IsCrossComplete() {
				return fmt.Errorf("%w: no daisy edge left but cross is incomplete", ErrLocatorExhausted)
			}
			return nil
		}

		side := s.cube.At(topEdges[src][1])
		dst := s.cube.FaceOfCenter(side)
		if !isSide(dst) {
			return fmt.Errorf("%w: daisy edge above %s has side color %s", ErrLocatorExhausted, src, side)
		}
		s.log.Debug("cross edge",
			zap.Stringer("from", src),
			zap.Stringer("to", dst),
		)
		if err := s.turn(carry(src, dst)...); err != nil {
			return err
		}
		if err := s.turn(faceMove(dst, CW), faceMove(dst, CW)); err != nil {
			return err
		}
	}
	return s.stalled(maxCrossSteps)
}
