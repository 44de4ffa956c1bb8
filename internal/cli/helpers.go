package cli

import (
	"fmt"

	"github.com/SeamusWaldron/cubesolver"
	"github.com/SeamusWaldron/cubesolver/internal/input"
	"github.com/SeamusWaldron/cubesolver/internal/notation"
)

// cubeSource collects the ways a command can be given a cube.
type cubeSource struct {
	sample   bool
	scramble string
}

// grid returns the cube named by exactly one of a file argument, --sample
// or --scramble.
func (s *cubeSource) grid(args []string) (cubesolver.Grid, error) {
	n := len(args)
	if s.sample {
		n++
	}
	if s.scramble != "" {
		n++
	}
	if n != 1 {
		return cubesolver.Grid{}, fmt.Errorf("give exactly one of a cube file, --sample or --scramble")
	}

	switch {
	case s.sample:
		return cubesolver.SampleGrid(), nil
	case s.scramble != "":
		moves, err := cubesolver.ParseMoves(s.scramble)
		if err != nil {
			return cubesolver.Grid{}, err
		}
		return cubesolver.FromMoves(moves).Grid(), nil
	default:
		return input.ReadFile(args[0])
	}
}

// loadKeymap returns the keymap at path, or the default one.
func loadKeymap(path string) (notation.Keymap, error) {
	if path == "" {
		return notation.DefaultKeymap(), nil
	}
	return notation.LoadKeymap(path)
}

// solverOptions returns the options every solve in the CLI uses.
func solverOptions() []cubesolver.Option {
	return []cubesolver.Option{
		cubesolver.WithMaxRotations(cfg.Solver.MaxRotations),
		cubesolver.WithLogger(logger),
	}
}
