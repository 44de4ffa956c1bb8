package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubesolver"
	"github.com/SeamusWaldron/cubesolver/internal/storage"
)

var (
	replaySrc   cubeSource
	replayID    string
	replayLast  bool
	replaySpeed float64
	replayStep  bool
)

var replayCmd = &cobra.Command{
	Use:   "replay [cube-file]",
	Short: "Step through a solution in the terminal",
	Long: `Replay a solution move by move on a colored cube net.

The cube comes from a file, --sample, --scramble, or a recorded solve
(--id or --last).

Usage:
  cubesolver replay --sample
  cubesolver replay cube.json --speed 2.0
  cubesolver replay --last --step`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)
	f := replayCmd.Flags()
	f.BoolVar(&replaySrc.sample, "sample", false, "Replay the built-in sample scramble")
	f.StringVar(&replaySrc.scramble, "scramble", "", "Replay the cube reached by this move sequence")
	f.StringVar(&replayID, "id", "", "Replay a recorded solve")
	f.BoolVar(&replayLast, "last", false, "Replay the last recorded solve")
	f.Float64VarP(&replaySpeed, "speed", "s", 1.0, "Playback speed multiplier")
	f.BoolVarP(&replayStep, "step", "t", false, "Step through moves manually")
}

func runReplay(cmd *cobra.Command, args []string) error {
	g, sol, err := solutionSource(cmd, &replaySrc, replayID, replayLast, args)
	if err != nil {
		return err
	}

	model, err := newReplayModel(g, sol, replaySpeed, replayStep)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("replay error: %w", err)
	}
	return nil
}

// solutionSource loads a recorded solve when id or last is set, and
// otherwise solves the cube named by src and args.
func solutionSource(cmd *cobra.Command, src *cubeSource, id string, last bool, args []string) (cubesolver.Grid, *cubesolver.Solution, error) {
	if id == "" && !last {
		g, err := src.grid(args)
		if err != nil {
			return g, nil, err
		}
		sol, err := cubesolver.Solve(g, solverOptions()...)
		if err != nil {
			return g, nil, solveError(err)
		}
		return g, sol, nil
	}
	if len(args) > 0 || src.sample || src.scramble != "" {
		return cubesolver.Grid{}, nil, fmt.Errorf("--id and --last cannot be combined with another cube source")
	}

	var rec *storage.SolveRecord
	err := withStore(cmd, func(st storage.Store) error {
		var err error
		if last {
			rec, err = st.LastSolve(cmd.Context())
		} else {
			rec, err = st.GetSolve(cmd.Context(), id)
		}
		return err
	})
	if err != nil {
		return cubesolver.Grid{}, nil, err
	}
	sol, err := rec.Solution()
	if err != nil {
		return cubesolver.Grid{}, nil, err
	}
	return rec.Grid, sol, nil
}
