// Package notation converts solver move lists into the forms other tools
// and people read: compacted standard notation, spoken phrases and key
// sequences for external visualizers.
package notation

import (
	"strings"

	"github.com/SeamusWaldron/cubesolver"
)

// Step is a run of quarter turns of one layer, folded into a net turn.
type Step struct {
	Layer cubesolver.Layer
	// Turn is 1, 2 or -1 (three quarter turns fold to -1).
	Turn int
}

// Notation returns the standard notation of the step: R, R2 or R'.
func (s Step) Notation() string {
	switch s.Turn {
	case 2:
		return string(s.Layer) + "2"
	case -1:
		return string(s.Layer) + "'"
	default:
		return string(s.Layer)
	}
}

// NormalizeTurn folds a count of clockwise quarter turns into [-1, 2].
// Multiples of four give 0.
func NormalizeTurn(turn int) int {
	turn = ((turn % 4) + 4) % 4
	if turn == 3 {
		return -1
	}
	return turn
}

// Compact folds consecutive moves of the same layer. Runs that cancel
// out disappear, which can bring two runs of another layer together:
// U R R' U compacts to U2.
func Compact(moves []cubesolver.Move) []Step {
	var out []Step
	for _, m := range moves {
		if n := len(out); n > 0 && out[n-1].Layer == m.Layer {
			t := NormalizeTurn(out[n-1].Turn + int(m.Turn))
			if t == 0 {
				out = out[:n-1]
			} else {
				out[n-1].Turn = t
			}
			continue
		}
		out = append(out, Step{Layer: m.Layer, Turn: int(m.Turn)})
	}
	return out
}

// CompactString returns the compacted moves as one space separated string.
func CompactString(moves []cubesolver.Move) string {
	steps := Compact(moves)
	parts := make([]string, len(steps))
	for i, s := range steps {
		parts[i] = s.Notation()
	}
	return strings.Join(parts, " ")
}

// Expand turns steps back into quarter turns.
func Expand(steps []Step) []cubesolver.Move {
	var out []cubesolver.Move
	for _, s := range steps {
		switch s.Turn {
		case 2:
			m := cubesolver.Move{Layer: s.Layer, Turn: cubesolver.CW}
			out = append(out, m, m)
		case -1:
			out = append(out, cubesolver.Move{Layer: s.Layer, Turn: cubesolver.CCW})
		case 1:
			out = append(out, cubesolver.Move{Layer: s.Layer, Turn: cubesolver.CW})
		}
	}
	return out
}
