package notation

import (
	"github.com/SeamusWaldron/cubesolver"
)

// spoken holds the phrase for each clockwise layer turn and its inverse,
// as said when holding the cube with Top up and Front facing you.
var spoken = map[cubesolver.Layer][2]string{
	cubesolver.LayerR: {"R up", "R down"},
	cubesolver.LayerL: {"L down", "L up"},
	cubesolver.LayerU: {"T rotate right", "T rotate left"},
	cubesolver.LayerD: {"B rotate right", "B rotate left"},
	cubesolver.LayerF: {"F rotate clockwise", "F rotate anti-clockwise"},
	cubesolver.LayerB: {"Back rotate clockwise", "Back rotate anti-clockwise"},
	cubesolver.LayerM: {"M down", "M up"},
	cubesolver.LayerE: {"E rotate right", "E rotate left"},
	cubesolver.LayerS: {"S rotate clockwise", "S rotate anti-clockwise"},
}

// Spoken returns the phrase for a compacted step, e.g. "R up x 2".
func Spoken(s Step) string {
	words, ok := spoken[s.Layer]
	if !ok {
		return s.Notation()
	}
	switch s.Turn {
	case 2:
		return words[0] + " x 2"
	case -1:
		return words[1]
	default:
		return words[0]
	}
}

// SpokenSequence compacts moves and returns one phrase per step.
func SpokenSequence(moves []cubesolver.Move) []string {
	steps := Compact(moves)
	result := make([]string, len(steps))
	for i, s := range steps {
		result[i] = Spoken(s)
	}
	return result
}
