package notation

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/SeamusWaldron/cubesolver"
)

// ErrUnmapped is returned when a move has no key in the keymap.
var ErrUnmapped = errors.New("notation: move has no key")

// Keymap maps move notation (R, R') to the command an external
// visualizer expects for it.
type Keymap map[string]string

// DefaultKeymap is the key vocabulary of the 3-D cube game the solver
// was first paired with.
func DefaultKeymap() Keymap {
	return Keymap{
		"L": "a", "D": "s", "R": "d", "U": "w", "F": "q", "B": "e",
		"L'": "p", "D'": "o", "R'": "i", "U'": "l", "F'": "k", "B'": "j",
	}
}

// LoadKeymap reads a YAML mapping of notation to command.
func LoadKeymap(path string) (Keymap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read keymap: %w", err)
	}
	var km Keymap
	if err := yaml.Unmarshal(data, &km); err != nil {
		return nil, fmt.Errorf("failed to parse keymap %s: %w", path, err)
	}
	for k := range km {
		if _, err := cubesolver.ParseMove(k); err != nil {
			return nil, fmt.Errorf("keymap %s: %w", path, err)
		}
	}
	return km, nil
}

// Remap translates each move through km. The first move without a key
// stops the translation.
func Remap(moves []cubesolver.Move, km Keymap) ([]string, error) {
	out := make([]string, len(moves))
	for i, m := range moves {
		key, ok := km[m.Notation()]
		if !ok {
			return nil, fmt.Errorf("%w: %s at %d", ErrUnmapped, m, i)
		}
		out[i] = key
	}
	return out, nil
}
