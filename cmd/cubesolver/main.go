// cubesolver - solve, replay and serve layer-by-layer Rubik's Cube solutions.
package main

import (
	"github.com/SeamusWaldron/cubesolver/internal/cli"
)

func main() {
	cli.Execute()
}
